// package models defines the data model for the media conversion service
package models

import (
	"time"
)

// Model defines the base interface for all persistent models in the conversion service.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// SearchResult represents one ranked result from a platform search.
//
// Ordering is platform-ranked and must not be re-sorted.
type SearchResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Duration    string `json:"duration"`
	Channel     string `json:"channel"`
	ViewCount   int64  `json:"view_count"`
	UploadDate  string `json:"upload_date"`
	Description string `json:"description"`
}

// Download represents the local audio artifact produced by retrieval.
//
// AudioPath lives inside the request workspace and is deleted with it.
type Download struct {
	AudioPath string
	Duration  string
	Title     string // discovered title, used when the request supplies none
}

// Transcript represents an optional local transcript artifact.
type Transcript struct {
	Path   string
	Format string // "vtt" or "srt"
}

// CompanyMention is a company referenced in a transcript, with a short summary.
type CompanyMention struct {
	Name    string `json:"name"`
	Summary string `json:"summary"`
}

// Summary is the structured output of the AI summarization stage.
type Summary struct {
	BulletPoints []string         `json:"bullet_points"`
	Companies    []CompanyMention `json:"companies"`
}

// StorageObject describes one uploaded blob.
type StorageObject struct {
	URL       string
	Container string
	Blob      string
}

// ConversionOutcome is the user-facing result of a completed conversion.
//
// TranscriptURL is empty when no transcript was produced or its upload failed.
type ConversionOutcome struct {
	AudioURL      string `json:"audio_url"`
	TranscriptURL string `json:"transcript_url,omitempty"`
}
