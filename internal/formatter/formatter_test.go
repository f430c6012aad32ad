package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/castaway/internal/models"
)

func sampleResults() []models.SearchResult {
	return []models.SearchResult{
		{
			Title:      "Episode One",
			URL:        "https://www.youtube.com/watch?v=a",
			Duration:   "12:34",
			Channel:    "Acme Podcast",
			ViewCount:  1500,
			UploadDate: "20240101",
		},
		{
			Title:   "Episode Two",
			URL:     "https://www.youtube.com/watch?v=b",
			Channel: "Acme Podcast",
		},
	}
}

func TestSearchResults(t *testing.T) {
	t.Run("Text", func(t *testing.T) {
		output := SearchResultsText("acme", sampleResults())

		if !strings.Contains(output, "Episode One") {
			t.Errorf("text missing first title, got: %s", output)
		}
		if !strings.Contains(output, "12:34") {
			t.Errorf("text missing duration")
		}
		if !strings.Contains(output, "1500 views") {
			t.Errorf("text missing view count")
		}
		if !strings.Contains(output, "https://www.youtube.com/watch?v=b") {
			t.Errorf("text missing second URL")
		}
	})

	t.Run("TextEmpty", func(t *testing.T) {
		output := SearchResultsText("nothing", nil)
		if !strings.Contains(output, "no results") {
			t.Errorf("expected empty-state message, got: %s", output)
		}
	})

	t.Run("CSV", func(t *testing.T) {
		data, err := SearchResultsCSV(sampleResults())
		if err != nil {
			t.Fatalf("SearchResultsCSV failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Rank,Title,URL,Duration,Channel,ViewCount,UploadDate") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "1,Episode One") {
			t.Errorf("CSV missing first row")
		}
		if !strings.Contains(output, "2,Episode Two") {
			t.Errorf("CSV missing second row")
		}
	})
}

func TestHistoryText(t *testing.T) {
	t.Run("MixedOutcomes", func(t *testing.T) {
		now := time.Now().UTC()
		completed := models.RestoreConversion("id-1", 1, "https://www.youtube.com/watch?v=a", "youtube",
			"Episode One", models.ConversionCompleted, "",
			"https://acct.blob.core.windows.net/media/Episode_One.mp3", "", "", now, now, nil)
		failed := models.RestoreConversion("id-2", 2, "https://open.spotify.com/episode/x", "spotify",
			"", models.ConversionFailed, "validating",
			"", "", "refused", now, now, nil)

		output := HistoryText([]*models.Conversion{completed, failed})

		if !strings.Contains(output, "Episode One") {
			t.Errorf("history missing completed title")
		}
		if !strings.Contains(output, "Episode_One.mp3") {
			t.Errorf("history missing audio URL")
		}
		if !strings.Contains(output, "failed (validating)") {
			t.Errorf("history missing failure stage, got: %s", output)
		}
		// Untitled rows fall back to the source URL.
		if !strings.Contains(output, "https://open.spotify.com/episode/x") {
			t.Errorf("history missing source URL fallback")
		}
	})

	t.Run("Empty", func(t *testing.T) {
		output := HistoryText(nil)
		if !strings.Contains(output, "no conversions recorded") {
			t.Errorf("expected empty-state message, got: %s", output)
		}
	})
}

func TestOutcomeText(t *testing.T) {
	t.Run("WithTranscript", func(t *testing.T) {
		outcome := &models.ConversionOutcome{
			AudioURL:      "https://acct.blob.core.windows.net/media/ep.mp3",
			TranscriptURL: "https://acct.blob.core.windows.net/media/ep.vtt",
		}

		output := OutcomeText(outcome)
		if !strings.Contains(output, "ep.mp3") || !strings.Contains(output, "ep.vtt") {
			t.Errorf("outcome missing artifact URLs, got: %s", output)
		}
	})

	t.Run("AudioOnly", func(t *testing.T) {
		outcome := &models.ConversionOutcome{AudioURL: "https://acct.blob.core.windows.net/media/ep.mp3"}

		output := OutcomeText(outcome)
		if strings.Contains(output, "transcript") {
			t.Errorf("outcome should omit the transcript line, got: %s", output)
		}
	})
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleResults())
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	output := string(data)
	if !strings.Contains(output, `"Episode One"`) {
		t.Errorf("JSON missing title")
	}
	if !strings.Contains(output, `"view_count": 1500`) {
		t.Errorf("JSON missing view count, got: %s", output)
	}
}
