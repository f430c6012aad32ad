package models

import (
	"fmt"
	"time"
)

// Conversion statuses.
const (
	ConversionCompleted = "completed"
	ConversionFailed    = "failed"
)

// Conversion is the persisted record of one pipeline run.
//
// Records exist for observability only; the pipeline never consults them
// before running, so repeated conversions of the same URL each get a row.
type Conversion struct {
	id            string
	sequence      int
	sourceURL     string
	platform      string
	title         string
	status        string
	stage         string // terminal stage for failed runs
	audioURL      string
	transcriptURL string
	detail        string
	createdAt     time.Time
	updatedAt     time.Time
	deletedAt     *time.Time
}

// NewConversion creates an unsaved Conversion for the given source URL and platform.
func NewConversion(sourceURL, platform string) *Conversion {
	now := time.Now().UTC()
	return &Conversion{
		sourceURL: sourceURL,
		platform:  platform,
		createdAt: now,
		updatedAt: now,
	}
}

// RestoreConversion rebuilds a Conversion from database columns.
func RestoreConversion(id string, sequence int, sourceURL, platform, title, status, stage, audioURL, transcriptURL, detail string, createdAt, updatedAt time.Time, deletedAt *time.Time) *Conversion {
	return &Conversion{
		id:            id,
		sequence:      sequence,
		sourceURL:     sourceURL,
		platform:      platform,
		title:         title,
		status:        status,
		stage:         stage,
		audioURL:      audioURL,
		transcriptURL: transcriptURL,
		detail:        detail,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		deletedAt:     deletedAt,
	}
}

func (c *Conversion) ID() string            { return c.id }
func (c *Conversion) Sequence() int         { return c.sequence }
func (c *Conversion) SourceURL() string     { return c.sourceURL }
func (c *Conversion) Platform() string      { return c.platform }
func (c *Conversion) Title() string         { return c.title }
func (c *Conversion) Status() string        { return c.status }
func (c *Conversion) Stage() string         { return c.stage }
func (c *Conversion) AudioURL() string      { return c.audioURL }
func (c *Conversion) TranscriptURL() string { return c.transcriptURL }
func (c *Conversion) Detail() string        { return c.detail }
func (c *Conversion) CreatedAt() time.Time  { return c.createdAt }
func (c *Conversion) UpdatedAt() time.Time  { return c.updatedAt }
func (c *Conversion) DeletedAt() *time.Time { return c.deletedAt }

// SetID assigns the generated identifier before insert.
func (c *Conversion) SetID(id string) { c.id = id }

// SetSequence assigns the table sequence number before insert.
func (c *Conversion) SetSequence(seq int) { c.sequence = seq }

// SetTitle records the resolved title (custom or discovered).
func (c *Conversion) SetTitle(title string) {
	c.title = title
	c.touch()
}

// MarkCompleted records a successful run and its artifact URLs.
func (c *Conversion) MarkCompleted(audioURL, transcriptURL string) {
	c.status = ConversionCompleted
	c.audioURL = audioURL
	c.transcriptURL = transcriptURL
	c.touch()
}

// MarkFailed records a failed run with its terminal stage and error detail.
func (c *Conversion) MarkFailed(stage, detail string) {
	c.status = ConversionFailed
	c.stage = stage
	c.detail = detail
	c.touch()
}

// Validate checks if the model's data is valid.
func (c *Conversion) Validate() error {
	if c.sourceURL == "" {
		return fmt.Errorf("conversion requires a source URL")
	}
	if c.status != ConversionCompleted && c.status != ConversionFailed {
		return fmt.Errorf("invalid conversion status: %q", c.status)
	}
	return nil
}

func (c *Conversion) touch() {
	c.updatedAt = time.Now().UTC()
}
