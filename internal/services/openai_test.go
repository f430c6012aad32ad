package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/castaway/internal/shared"
)

// summaryServer fakes the chat completions API, returning content as the
// model's message.
func summaryServer(t *testing.T, content string, capture *string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode chat request: %v", err)
		}
		if capture != nil && len(req.Messages) > 0 {
			*capture = req.Messages[len(req.Messages)-1].Content
		}

		resp := map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func newTestSummarizer(t *testing.T, baseURL string) *OpenAISummarizer {
	t.Helper()
	summarizer, err := NewOpenAISummarizer("sk-test", "gpt-4o-mini", baseURL+"/v1")
	if err != nil {
		t.Fatalf("failed to create summarizer: %v", err)
	}
	return summarizer
}

func TestOpenAISummarizer(t *testing.T) {
	t.Run("MissingAPIKey", func(t *testing.T) {
		if _, err := NewOpenAISummarizer("", "", ""); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected missing credentials error, got %v", err)
		}
	})

	t.Run("Success", func(t *testing.T) {
		content := `{"bullet_points": ["Acme shipped a new product", "Revenue grew"], "companies": [{"name": "Acme Corp", "summary": "Shipped a new product this quarter."}]}`
		srv := summaryServer(t, content, nil)
		defer srv.Close()

		summarizer := newTestSummarizer(t, srv.URL)

		summary, err := summarizer.Summarize(context.Background(), "The hosts discussed Acme Corp at length.")
		if err != nil {
			t.Fatalf("Summarize failed: %v", err)
		}

		if len(summary.BulletPoints) != 2 {
			t.Errorf("expected 2 bullet points, got %d", len(summary.BulletPoints))
		}
		if len(summary.Companies) != 1 || summary.Companies[0].Name != "Acme Corp" {
			t.Errorf("unexpected companies: %+v", summary.Companies)
		}
	})

	t.Run("NilSlicesNormalized", func(t *testing.T) {
		srv := summaryServer(t, `{"bullet_points": null, "companies": null}`, nil)
		defer srv.Close()

		summarizer := newTestSummarizer(t, srv.URL)

		summary, err := summarizer.Summarize(context.Background(), "A quiet episode.")
		if err != nil {
			t.Fatalf("Summarize failed: %v", err)
		}
		if summary.BulletPoints == nil || summary.Companies == nil {
			t.Error("summary slices must never be nil")
		}
	})

	t.Run("MalformedModelOutput", func(t *testing.T) {
		srv := summaryServer(t, "sorry, I cannot do that", nil)
		defer srv.Close()

		summarizer := newTestSummarizer(t, srv.URL)

		if _, err := summarizer.Summarize(context.Background(), "Some transcript."); !errors.Is(err, shared.ErrSummarization) {
			t.Errorf("expected summarization error, got %v", err)
		}
	})

	t.Run("EmptyTranscript", func(t *testing.T) {
		summarizer := newTestSummarizer(t, "http://127.0.0.1:0")

		if _, err := summarizer.Summarize(context.Background(), "   \n  "); !errors.Is(err, shared.ErrSummarization) {
			t.Errorf("expected summarization error, got %v", err)
		}
	})

	t.Run("UpstreamFailure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error": {"message": "overloaded"}}`, http.StatusInternalServerError)
		}))
		defer srv.Close()

		summarizer := newTestSummarizer(t, srv.URL)

		if _, err := summarizer.Summarize(context.Background(), "Some transcript."); !errors.Is(err, shared.ErrSummarization) {
			t.Errorf("expected summarization error, got %v", err)
		}
	})

	t.Run("LongTranscriptTruncated", func(t *testing.T) {
		var sent string
		srv := summaryServer(t, `{"bullet_points": [], "companies": []}`, &sent)
		defer srv.Close()

		summarizer := newTestSummarizer(t, srv.URL)

		long := strings.Repeat("words and more words. ", 5000)
		if _, err := summarizer.Summarize(context.Background(), long); err != nil {
			t.Fatalf("Summarize failed: %v", err)
		}

		if len(sent) != maxTranscriptChars {
			t.Errorf("expected transcript truncated to %d chars, sent %d", maxTranscriptChars, len(sent))
		}
	})
}
