package media

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// Artifact roles understood by [ArtifactName].
const (
	RoleAudio      = "audio"
	RoleTranscript = "transcript"
)

const maxBaseNameLen = 120

// SanitizeTitle derives a filesystem- and URL-safe base name from a title.
//
// The function is deterministic and idempotent: sanitizing an already
// sanitized name yields the same name. Whitespace runs collapse to a single
// underscore and characters outside [A-Za-z0-9._-] are dropped. The result
// may be empty; callers wanting a guaranteed non-empty name use [BaseName].
func SanitizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	inGap := false
	for _, r := range title {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			inGap = true
		case isSafeRune(r):
			if inGap && b.Len() > 0 {
				b.WriteByte('_')
			}
			inGap = false
			b.WriteRune(r)
		default:
			// dropped, does not count as a gap
		}
	}

	name := strings.Trim(b.String(), "._-")
	if runes := []rune(name); len(runes) > maxBaseNameLen {
		name = strings.Trim(string(runes[:maxBaseNameLen]), "._-")
	}
	return name
}

// BaseName returns the shared artifact stem for a conversion.
//
// When the title sanitizes to nothing, the stem is derived from the source
// URL so the uploader is never handed an empty name and repeated conversions
// of the same URL map to the same blob.
func BaseName(title, sourceURL string) string {
	if name := SanitizeTitle(title); name != "" {
		return name
	}
	sum := sha1.Sum([]byte(sourceURL))
	return "media-" + hex.EncodeToString(sum[:6])
}

// ArtifactName returns the full blob/file name for a sanitized base and role.
//
// Both artifacts of one conversion share the same stem so they sort together
// in the container.
func ArtifactName(base, role string) string {
	switch role {
	case RoleTranscript:
		return base + ".vtt"
	default:
		return base + ".mp3"
	}
}

func isSafeRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.' || r == '_' || r == '-':
		return true
	default:
		return false
	}
}
