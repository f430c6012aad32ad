package media

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/desertthunder/castaway/internal/models"
)

// vttHeaderRe matches the WEBVTT file header line.
var vttHeaderRe = regexp.MustCompile(`^WEBVTT\b.*$`)

// timingLineRe matches cue timings like "00:00:01.234 --> 00:00:03.456",
// including the comma-separated variant SRT files use.
var timingLineRe = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}[.,]\d{3}\s*-->\s*\d{2}:\d{2}:\d{2}[.,]\d{3}`)

// tagRe matches markup tags found in caption files (<c>, <i>, <font>, ...).
var tagRe = regexp.MustCompile(`<[^>]+>`)

// cueIDRe matches standalone numeric cue identifiers.
var cueIDRe = regexp.MustCompile(`^\d+$`)

// metadataLineRe matches VTT metadata lines like "Kind:" and "Language:".
var metadataLineRe = regexp.MustCompile(`^(Kind|Language|NOTE)\b`)

// FindTranscript scans a conversion workspace for a transcript artifact left
// behind by retrieval. It is a pure directory lookup with no network I/O and
// never fails: a missing transcript is (nil, false), not an error.
//
// VTT files win over SRT when both exist; ties break lexicographically so the
// result is stable across runs.
func FindTranscript(workspace string) (*models.Transcript, bool) {
	entries, err := os.ReadDir(workspace)
	if err != nil {
		return nil, false
	}

	var vtt, srt []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".vtt":
			vtt = append(vtt, entry.Name())
		case ".srt":
			srt = append(srt, entry.Name())
		}
	}

	sort.Strings(vtt)
	sort.Strings(srt)

	if len(vtt) > 0 {
		return &models.Transcript{Path: filepath.Join(workspace, vtt[0]), Format: "vtt"}, true
	}
	if len(srt) > 0 {
		return &models.Transcript{Path: filepath.Join(workspace, srt[0]), Format: "srt"}, true
	}
	return nil, false
}

// CleanVTT takes raw caption file content and produces plain readable text
// for summarization. Headers, cue timings, cue IDs, and markup tags are
// stripped, and the rolling duplicate lines that auto-generated subtitles
// repeat across overlapping segments are collapsed.
func CleanVTT(raw string) string {
	if raw == "" {
		return ""
	}

	lines := strings.Split(raw, "\n")
	cleaned := make([]string, 0, len(lines)/2)
	prev := ""

	for _, line := range lines {
		line = strings.TrimRight(line, "\r")

		if vttHeaderRe.MatchString(line) || metadataLineRe.MatchString(line) || timingLineRe.MatchString(line) {
			continue
		}
		if cueIDRe.MatchString(strings.TrimSpace(line)) {
			continue
		}

		line = strings.TrimSpace(tagRe.ReplaceAllString(line, ""))
		if line == "" || line == prev {
			continue
		}

		cleaned = append(cleaned, line)
		prev = line
	}

	return strings.Join(cleaned, "\n")
}
