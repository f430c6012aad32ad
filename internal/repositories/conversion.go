package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/castaway/internal/models"
	"github.com/desertthunder/castaway/internal/shared"
)

// ConversionRepository implements models.Repository[*models.Conversion] for
// conversion history records.
//
// Handles conversion CRUD with soft delete support and recency listings.
type ConversionRepository struct {
	db *sql.DB
}

// NewConversionRepository creates a new ConversionRepository with the given database connection
func NewConversionRepository(db *sql.DB) *ConversionRepository {
	return &ConversionRepository{db: db}
}

const conversionColumns = "id, sequence, source_url, platform, title, status, stage, audio_url, transcript_url, detail, created_at, updated_at, deleted_at"

// Create inserts a new conversion into the database with generated ID and sequence
func (r *ConversionRepository) Create(conversion *models.Conversion) error {
	sequence, err := NextSequence(r.db, "conversions")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	conversion.SetID(id)
	conversion.SetSequence(sequence)

	if err := conversion.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO conversions (` + conversionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		conversion.SourceURL(),
		conversion.Platform(),
		conversion.Title(),
		conversion.Status(),
		conversion.Stage(),
		conversion.AudioURL(),
		conversion.TranscriptURL(),
		conversion.Detail(),
		conversion.CreatedAt(),
		conversion.UpdatedAt(),
		conversion.DeletedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert conversion: %w", err)
	}

	return nil
}

// Get retrieves a conversion by ID, excluding soft-deleted rows
func (r *ConversionRepository) Get(id string) (*models.Conversion, error) {
	query := "SELECT " + conversionColumns + " FROM conversions WHERE id = ? AND deleted_at IS NULL"
	return r.scanOne(r.db.QueryRow(query, id))
}

// Update modifies an existing conversion's mutable fields
func (r *ConversionRepository) Update(conversion *models.Conversion) error {
	if err := conversion.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE conversions
		SET title = ?, status = ?, stage = ?, audio_url = ?, transcript_url = ?, detail = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		conversion.Title(),
		conversion.Status(),
		conversion.Stage(),
		conversion.AudioURL(),
		conversion.TranscriptURL(),
		conversion.Detail(),
		conversion.UpdatedAt(),
		conversion.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update conversion: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("conversion not found: %s", conversion.ID())
	}

	return nil
}

// Delete soft-deletes a conversion by ID
func (r *ConversionRepository) Delete(id string) error {
	result, err := r.db.Exec("UPDATE conversions SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete conversion: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("conversion not found: %s", id)
	}

	return nil
}

// List retrieves conversions matching the given criteria (status, platform),
// newest first
func (r *ConversionRepository) List(criteria map[string]any) ([]*models.Conversion, error) {
	query := "SELECT " + conversionColumns + " FROM conversions WHERE deleted_at IS NULL"
	args := []any{}

	if status, ok := criteria["status"]; ok {
		query += " AND status = ?"
		args = append(args, status)
	}
	if platform, ok := criteria["platform"]; ok {
		query += " AND platform = ?"
		args = append(args, platform)
	}

	query += " ORDER BY created_at DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversions: %w", err)
	}
	defer rows.Close()

	var conversions []*models.Conversion
	for rows.Next() {
		conversion, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		conversions = append(conversions, conversion)
	}

	return conversions, rows.Err()
}

// ListRecent returns the most recent conversions up to limit.
func (r *ConversionRepository) ListRecent(limit int) ([]*models.Conversion, error) {
	if limit <= 0 {
		limit = 20
	}
	return r.List(map[string]any{"limit": limit})
}

type scannable interface {
	Scan(dest ...any) error
}

func (r *ConversionRepository) scanOne(row *sql.Row) (*models.Conversion, error) {
	conversion, err := r.scanRow(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("conversion not found")
	}
	return conversion, err
}

func (r *ConversionRepository) scanRow(row scannable) (*models.Conversion, error) {
	var (
		id, sourceURL, platform, title, status, stage string
		audioURL, transcriptURL, detail               string
		sequence                                      int
		createdAt, updatedAt                          time.Time
		deletedAt                                     sql.NullTime
	)

	err := row.Scan(&id, &sequence, &sourceURL, &platform, &title, &status, &stage,
		&audioURL, &transcriptURL, &detail, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	var deleted *time.Time
	if deletedAt.Valid {
		deleted = &deletedAt.Time
	}

	return models.RestoreConversion(id, sequence, sourceURL, platform, title, status, stage,
		audioURL, transcriptURL, detail, createdAt, updatedAt, deleted), nil
}
