// yt-dlp backed [Searcher] and [Retriever] implementation
//
// Wraps the yt-dlp binary through go-ytdlp. Search uses the ytsearchN:
// pseudo-URL with a flat-playlist JSON dump; retrieval extracts mp3 audio
// and best-effort English subtitles into the request workspace.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/castaway/internal/models"
	"github.com/desertthunder/castaway/internal/shared"
	"github.com/lrstanley/go-ytdlp"
)

const defaultMaxResults = 10

// YTDLP implements [Searcher] and [Retriever] using the yt-dlp binary.
type YTDLP struct {
	logger *log.Logger
}

// NewYTDLP creates a new yt-dlp service instance.
func NewYTDLP(logger *log.Logger) *YTDLP {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &YTDLP{logger: logger}
}

// searchEntry is the subset of yt-dlp's flat-playlist entry JSON we consume.
type searchEntry struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Duration    float64 `json:"duration"`
	Channel     string  `json:"channel"`
	Uploader    string  `json:"uploader"`
	ViewCount   int64   `json:"view_count"`
	UploadDate  string  `json:"upload_date"`
	Description string  `json:"description"`
}

type searchDump struct {
	Entries []searchEntry `json:"entries"`
}

// Search runs a ytsearchN: query and maps the flat-playlist dump to
// [models.SearchResult], preserving yt-dlp's ranking.
func (y *YTDLP) Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	if maxResults < 1 {
		maxResults = defaultMaxResults
	}

	dl := ytdlp.New().
		DumpSingleJSON().
		FlatPlaylist().
		SkipDownload().
		NoWarnings()

	target := fmt.Sprintf("ytsearch%d:%s", maxResults, query)
	y.logger.Debug("running platform search", "target", target)

	result, err := dl.Run(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrSearch, err)
	}

	var dump searchDump
	if err := json.Unmarshal([]byte(result.Stdout), &dump); err != nil {
		return nil, fmt.Errorf("%w: malformed search payload: %v", shared.ErrSearch, err)
	}

	results := make([]models.SearchResult, 0, len(dump.Entries))
	for _, entry := range dump.Entries {
		if len(results) == maxResults {
			break
		}
		results = append(results, models.SearchResult{
			Title:       entry.Title,
			URL:         entryURL(entry),
			Duration:    FormatDuration(entry.Duration),
			Channel:     entryChannel(entry),
			ViewCount:   entry.ViewCount,
			UploadDate:  entry.UploadDate,
			Description: entry.Description,
		})
	}

	return results, nil
}

// Fetch extracts mp3 audio for url into workspace, downloading English
// subtitles when the platform has them. Subtitle failures never fail the
// fetch; the transcript lookup simply finds nothing afterwards.
func (y *YTDLP) Fetch(ctx context.Context, url, workspace string) (*models.Download, error) {
	dl := ytdlp.New().
		NoPlaylist().
		ExtractAudio().
		AudioFormat("mp3").
		AudioQuality("0").
		WriteSubs().
		WriteAutoSubs().
		SubFormat("vtt").
		SubLangs("en.*,en").
		NoWarnings().
		Paths(workspace).
		Output("%(title)s.%(ext)s")

	y.logger.Info("retrieving audio", "url", url)

	result, err := y.runWithRetry(ctx, dl, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRetrieval, err)
	}

	download := &models.Download{}
	if info, err := result.GetExtractedInfo(); err == nil && len(info) > 0 {
		if info[0].Title != nil {
			download.Title = *info[0].Title
		}
		if info[0].Duration != nil {
			download.Duration = FormatDuration(*info[0].Duration)
		}
	}

	audioPath, err := findAudio(workspace)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRetrieval, err)
	}
	download.AudioPath = audioPath

	return download, nil
}

// runWithRetry attempts the download once more after a transient failure.
//
// Retrying is safe: yt-dlp overwrites its own partial output, so no
// duplicate workspace files are left behind.
func (y *YTDLP) runWithRetry(ctx context.Context, dl *ytdlp.Command, url string) (*ytdlp.Result, error) {
	result, err := dl.Run(ctx, url)
	if err == nil {
		return result, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	select {
	case <-time.After(2 * time.Second):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	y.logger.Warn("retrying retrieval", "url", url, "error", err)
	return dl.Run(ctx, url)
}

// findAudio locates the transcoded mp3 in the workspace.
func findAudio(workspace string) (string, error) {
	entries, err := os.ReadDir(workspace)
	if err != nil {
		return "", fmt.Errorf("failed to read workspace: %v", err)
	}

	var audio []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".mp3") {
			audio = append(audio, entry.Name())
		}
	}
	if len(audio) == 0 {
		return "", fmt.Errorf("no mp3 produced in workspace")
	}

	sort.Strings(audio)
	return filepath.Join(workspace, audio[0]), nil
}

// entryURL prefers the canonical URL from the dump, falling back to the
// watch URL for entries that only carry a video ID.
func entryURL(entry searchEntry) string {
	if entry.URL != "" {
		return entry.URL
	}
	if entry.ID != "" {
		return "https://www.youtube.com/watch?v=" + entry.ID
	}
	return ""
}

func entryChannel(entry searchEntry) string {
	if entry.Channel != "" {
		return entry.Channel
	}
	return entry.Uploader
}

// FormatDuration renders a duration in seconds as H:MM:SS or M:SS.
func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return ""
	}

	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
