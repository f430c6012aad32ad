// OpenAI backed [Summarizer] implementation
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/desertthunder/castaway/internal/models"
	"github.com/desertthunder/castaway/internal/shared"
	openai "github.com/sashabaranov/go-openai"
)

const defaultSummaryModel = openai.GPT4oMini

// Transcripts beyond this length are truncated before summarization to stay
// inside the model context window.
const maxTranscriptChars = 48_000

const summarySystemPrompt = `You summarize podcast and video transcripts.
Respond with a JSON object of the form:
{"bullet_points": ["..."], "companies": [{"name": "...", "summary": "..."}]}
bullet_points: 5-10 concise takeaways in transcript order.
companies: every company discussed, each with a one-sentence summary of what was said about it. Use an empty array when none are mentioned.`

// OpenAISummarizer implements [Summarizer] via the chat completions API.
type OpenAISummarizer struct {
	client *openai.Client
	model  string
}

// NewOpenAISummarizer creates a summarizer for the given credentials.
//
// baseURL is empty in production; tests point it at an httptest server.
func NewOpenAISummarizer(apiKey, model, baseURL string) (*OpenAISummarizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: summarizer API key is required", shared.ErrMissingCredentials)
	}
	if model == "" {
		model = defaultSummaryModel
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &OpenAISummarizer{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

// Summarize produces structured bullet points and company mentions for a transcript.
func (s *OpenAISummarizer) Summarize(ctx context.Context, transcript string) (*models.Summary, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return nil, fmt.Errorf("%w: transcript is empty", shared.ErrSummarization)
	}
	if len(transcript) > maxTranscriptChars {
		transcript = transcript[:maxTranscriptChars]
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: transcript},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrSummarization, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: model returned no choices", shared.ErrSummarization)
	}

	var summary models.Summary
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &summary); err != nil {
		return nil, fmt.Errorf("%w: malformed model output: %v", shared.ErrSummarization, err)
	}
	if summary.BulletPoints == nil {
		summary.BulletPoints = []string{}
	}
	if summary.Companies == nil {
		summary.Companies = []models.CompanyMention{}
	}

	return &summary, nil
}
