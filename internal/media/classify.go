package media

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/desertthunder/castaway/internal/shared"
)

// Platform tags assigned by [Classify].
const (
	PlatformYouTube      = "youtube"
	PlatformYouTubeMusic = "youtube-music"
	PlatformSpotify      = "spotify"
	PlatformOther        = "other"
)

// spotifyReason is returned verbatim in the error body so clients see why the
// source was refused rather than a generic validation message.
const spotifyReason = "Spotify episodes cannot be downloaded due to DRM protection. Please provide the original podcast source URL instead."

// Verdict is the result of classifying a source URL.
type Verdict struct {
	Platform  string
	Permitted bool
	Reason    string // set when Permitted is false
}

// Classify determines the hosting platform of rawURL and whether retrieval is permitted.
//
// Spotify-family hosts are always refused: their content is DRM-restricted
// and categorically off limits. Every other well-formed http(s) URL is
// provisionally permitted; whether it is actually retrievable is only proven
// by the retriever.
func Classify(rawURL string) (Verdict, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return Verdict{}, fmt.Errorf("%w: could not parse URL: %v", shared.ErrValidation, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Verdict{}, fmt.Errorf("%w: URL must be absolute http(s), got %q", shared.ErrValidation, rawURL)
	}
	if parsed.Host == "" {
		return Verdict{}, fmt.Errorf("%w: URL has no host: %q", shared.ErrValidation, rawURL)
	}

	host := strings.ToLower(parsed.Hostname())

	switch {
	case isSpotifyHost(host):
		return Verdict{Platform: PlatformSpotify, Permitted: false, Reason: spotifyReason}, nil
	case host == "music.youtube.com":
		return Verdict{Platform: PlatformYouTubeMusic, Permitted: true}, nil
	case isYouTubeHost(host):
		return Verdict{Platform: PlatformYouTube, Permitted: true}, nil
	default:
		return Verdict{Platform: PlatformOther, Permitted: true}, nil
	}
}

func isSpotifyHost(host string) bool {
	return host == "spotify.com" || host == "spotify.link" ||
		strings.HasSuffix(host, ".spotify.com") || strings.HasSuffix(host, ".spotify.link")
}

func isYouTubeHost(host string) bool {
	return host == "youtube.com" || host == "youtu.be" || strings.HasSuffix(host, ".youtube.com")
}
