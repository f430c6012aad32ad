// package services defines narrow capability interfaces for the external
// collaborators of the conversion pipeline
//
// yt-dlp (search + retrieval), OpenAI (summarization), Azure Blob Storage (upload)
package services

import (
	"context"

	"github.com/desertthunder/castaway/internal/models"
)

// Searcher queries the video platform by free text.
type Searcher interface {
	// Search returns up to maxResults platform-ranked results.
	// An empty slice is a valid response, not an error.
	// Failures wrap shared.ErrSearch.
	Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error)
}

// Retriever produces a local audio artifact for one permitted URL.
type Retriever interface {
	// Fetch extracts audio into the workspace directory as mp3 and
	// opportunistically downloads a transcript alongside it. A missing
	// transcript is not an error. Failures wrap shared.ErrRetrieval.
	//
	// All files are written inside workspace; the caller owns cleanup.
	Fetch(ctx context.Context, url, workspace string) (*models.Download, error)
}

// Summarizer converts transcript text into structured bullet points and
// company mentions.
type Summarizer interface {
	// Summarize fails with an error wrapping shared.ErrSummarization on
	// transport failure or malformed model output.
	Summarize(ctx context.Context, transcript string) (*models.Summary, error)
}

// Uploader persists a local artifact to durable blob storage.
type Uploader interface {
	// Upload creates (or overwrites) the named blob and returns its public
	// URL. Failures wrap shared.ErrStorageUpload. No local cleanup.
	Upload(ctx context.Context, localPath, blobName string) (*models.StorageObject, error)
}
