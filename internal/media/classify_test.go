package media

import (
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/castaway/internal/shared"
)

func TestClassify(t *testing.T) {
	t.Run("Platforms", func(t *testing.T) {
		cases := []struct {
			name     string
			url      string
			platform string
		}{
			{"YouTubeWatch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", PlatformYouTube},
			{"YouTubeBare", "https://youtube.com/watch?v=abc123", PlatformYouTube},
			{"YouTubeShort", "https://youtu.be/dQw4w9WgXcQ", PlatformYouTube},
			{"YouTubeMobile", "https://m.youtube.com/watch?v=abc123", PlatformYouTube},
			{"YouTubeMusic", "https://music.youtube.com/watch?v=abc123", PlatformYouTubeMusic},
			{"Vimeo", "https://vimeo.com/123456", PlatformOther},
			{"SoundCloud", "http://soundcloud.com/artist/track", PlatformOther},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				verdict, err := Classify(tc.url)
				if err != nil {
					t.Fatalf("Classify(%q) failed: %v", tc.url, err)
				}
				if verdict.Platform != tc.platform {
					t.Errorf("expected platform %s, got %s", tc.platform, verdict.Platform)
				}
				if !verdict.Permitted {
					t.Errorf("expected %q to be permitted", tc.url)
				}
			})
		}
	})

	t.Run("SpotifyRefused", func(t *testing.T) {
		urls := []string{
			"https://open.spotify.com/episode/4rOoJ6Egrf8K2IrywzwOMk",
			"https://spotify.com/episode/abc",
			"https://spotify.link/xyz",
			"https://play.spotify.link/xyz",
		}

		for _, url := range urls {
			verdict, err := Classify(url)
			if err != nil {
				t.Fatalf("Classify(%q) failed: %v", url, err)
			}
			if verdict.Platform != PlatformSpotify {
				t.Errorf("expected platform spotify, got %s", verdict.Platform)
			}
			if verdict.Permitted {
				t.Errorf("expected %q to be refused", url)
			}
			if !strings.Contains(verdict.Reason, "DRM protection") {
				t.Errorf("refusal reason should mention DRM protection, got %q", verdict.Reason)
			}
		}
	})

	t.Run("SpotifyLookalikeAllowed", func(t *testing.T) {
		// A host merely containing "spotify" is not the Spotify domain.
		verdict, err := Classify("https://notspotify.com/episode/abc")
		if err != nil {
			t.Fatalf("Classify failed: %v", err)
		}
		if !verdict.Permitted {
			t.Error("lookalike host should be permitted")
		}
		if verdict.Platform != PlatformOther {
			t.Errorf("expected platform other, got %s", verdict.Platform)
		}
	})

	t.Run("MalformedURLs", func(t *testing.T) {
		urls := []string{
			"",
			"not a url",
			"ftp://example.com/file.mp3",
			"//missing-scheme.com/path",
			"https://",
		}

		for _, url := range urls {
			if _, err := Classify(url); !errors.Is(err, shared.ErrValidation) {
				t.Errorf("Classify(%q) should fail with validation error, got %v", url, err)
			}
		}
	})

	t.Run("HostCaseInsensitive", func(t *testing.T) {
		verdict, err := Classify("https://OPEN.SPOTIFY.COM/episode/abc")
		if err != nil {
			t.Fatalf("Classify failed: %v", err)
		}
		if verdict.Permitted {
			t.Error("uppercase spotify host should still be refused")
		}
	})
}
