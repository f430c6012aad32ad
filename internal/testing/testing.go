// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/desertthunder/castaway/internal/models"
)

// FakeSearcher is a scriptable test double for [services.Searcher]
type FakeSearcher struct {
	Results []models.SearchResult
	Err     error
	Queries []string
}

func (f *FakeSearcher) Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	f.Queries = append(f.Queries, query)
	if f.Err != nil {
		return nil, f.Err
	}
	if len(f.Results) > maxResults {
		return f.Results[:maxResults], nil
	}
	return f.Results, nil
}

// FakeRetriever is a scriptable test double for [services.Retriever].
//
// On success it writes an audio file (and optionally a transcript) into the
// workspace, mimicking the real retriever's side effects.
type FakeRetriever struct {
	Title       string
	Duration    string
	Transcript  string // VTT content written alongside the audio when non-empty
	Err         error
	FetchedURLs []string
	Workspaces  []string
	mu          sync.Mutex
}

func (f *FakeRetriever) Fetch(ctx context.Context, url, workspace string) (*models.Download, error) {
	f.mu.Lock()
	f.FetchedURLs = append(f.FetchedURLs, url)
	f.Workspaces = append(f.Workspaces, workspace)
	f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}

	audioPath := filepath.Join(workspace, "episode.mp3")
	if err := os.WriteFile(audioPath, []byte("audio"), 0644); err != nil {
		return nil, err
	}

	if f.Transcript != "" {
		if err := os.WriteFile(filepath.Join(workspace, "episode.en.vtt"), []byte(f.Transcript), 0644); err != nil {
			return nil, err
		}
	}

	return &models.Download{AudioPath: audioPath, Duration: f.Duration, Title: f.Title}, nil
}

// FakeSummarizer is a scriptable test double for [services.Summarizer]
type FakeSummarizer struct {
	Summary *models.Summary
	Err     error
	Inputs  []string
}

func (f *FakeSummarizer) Summarize(ctx context.Context, transcript string) (*models.Summary, error) {
	f.Inputs = append(f.Inputs, transcript)
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Summary != nil {
		return f.Summary, nil
	}
	return &models.Summary{BulletPoints: []string{}, Companies: []models.CompanyMention{}}, nil
}

// FakeUploader is a scriptable test double for [services.Uploader].
//
// ErrFor fails uploads of one specific blob name, which tests use to degrade
// the transcript upload while the audio upload succeeds.
type FakeUploader struct {
	Err      error
	ErrFor   string
	Uploaded []string
	mu       sync.Mutex
}

func (f *FakeUploader) Upload(ctx context.Context, localPath, blobName string) (*models.StorageObject, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if f.ErrFor != "" && f.ErrFor == blobName {
		return nil, errors.New("upload refused for " + blobName)
	}

	f.mu.Lock()
	f.Uploaded = append(f.Uploaded, blobName)
	f.mu.Unlock()

	return &models.StorageObject{
		URL:       "https://testaccount.blob.core.windows.net/media/" + blobName,
		Container: "media",
		Blob:      blobName,
	}, nil
}

// FakeRecorder captures conversion records for [pipeline.Recorder]
type FakeRecorder struct {
	Records []*models.Conversion
	Err     error
}

func (f *FakeRecorder) Create(conversion *models.Conversion) error {
	if f.Err != nil {
		return f.Err
	}
	f.Records = append(f.Records, conversion)
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (FWriter) Write(p []byte) (int, error) {
	return 0, errors.New("write failed")
}
