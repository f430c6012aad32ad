package repositories

import (
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/castaway/internal/models"
	"github.com/desertthunder/castaway/internal/shared"
)

func setupTestDB(t *testing.T) *ConversionRepository {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return NewConversionRepository(db)
}

func completedConversion(url, title string) *models.Conversion {
	conversion := models.NewConversion(url, "youtube")
	conversion.SetTitle(title)
	conversion.MarkCompleted("https://acct.blob.core.windows.net/media/"+title+".mp3", "")
	return conversion
}

func TestConversionRepository(t *testing.T) {
	t.Run("CreateAndGet", func(t *testing.T) {
		repo := setupTestDB(t)

		conversion := completedConversion("https://www.youtube.com/watch?v=abc", "Episode_One")
		if err := repo.Create(conversion); err != nil {
			t.Fatalf("failed to create conversion: %v", err)
		}

		if conversion.ID() == "" {
			t.Fatal("Create should assign an ID")
		}
		if conversion.Sequence() != 1 {
			t.Errorf("expected sequence 1, got %d", conversion.Sequence())
		}

		got, err := repo.Get(conversion.ID())
		if err != nil {
			t.Fatalf("failed to get conversion: %v", err)
		}
		if got.SourceURL() != "https://www.youtube.com/watch?v=abc" {
			t.Errorf("unexpected source URL: %s", got.SourceURL())
		}
		if got.Status() != models.ConversionCompleted {
			t.Errorf("unexpected status: %s", got.Status())
		}
		if got.Title() != "Episode_One" {
			t.Errorf("unexpected title: %s", got.Title())
		}
	})

	t.Run("SequenceIncrements", func(t *testing.T) {
		repo := setupTestDB(t)

		first := completedConversion("https://example.com/a", "A")
		second := completedConversion("https://example.com/b", "B")

		if err := repo.Create(first); err != nil {
			t.Fatalf("failed to create first: %v", err)
		}
		if err := repo.Create(second); err != nil {
			t.Fatalf("failed to create second: %v", err)
		}

		if first.Sequence() != 1 || second.Sequence() != 2 {
			t.Errorf("expected sequences 1 and 2, got %d and %d", first.Sequence(), second.Sequence())
		}
	})

	t.Run("RepeatedURLsEachGetARow", func(t *testing.T) {
		repo := setupTestDB(t)

		url := "https://www.youtube.com/watch?v=same"
		for range 3 {
			if err := repo.Create(completedConversion(url, "Same_Episode")); err != nil {
				t.Fatalf("failed to create conversion: %v", err)
			}
		}

		conversions, err := repo.List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(conversions) != 3 {
			t.Errorf("expected 3 rows for repeated URL, got %d", len(conversions))
		}
	})

	t.Run("CreateInvalid", func(t *testing.T) {
		repo := setupTestDB(t)

		// Never marked completed or failed.
		conversion := models.NewConversion("https://example.com/a", "other")
		if err := repo.Create(conversion); err == nil || !strings.Contains(err.Error(), "validation") {
			t.Errorf("expected validation failure, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		repo := setupTestDB(t)

		conversion := completedConversion("https://example.com/a", "Before")
		if err := repo.Create(conversion); err != nil {
			t.Fatalf("failed to create: %v", err)
		}

		conversion.SetTitle("After")
		if err := repo.Update(conversion); err != nil {
			t.Fatalf("failed to update: %v", err)
		}

		got, err := repo.Get(conversion.ID())
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if got.Title() != "After" {
			t.Errorf("expected updated title, got %s", got.Title())
		}
	})

	t.Run("SoftDelete", func(t *testing.T) {
		repo := setupTestDB(t)

		conversion := completedConversion("https://example.com/a", "Gone")
		if err := repo.Create(conversion); err != nil {
			t.Fatalf("failed to create: %v", err)
		}

		if err := repo.Delete(conversion.ID()); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}

		if _, err := repo.Get(conversion.ID()); err == nil {
			t.Error("deleted conversion should not be retrievable")
		}

		if err := repo.Delete(conversion.ID()); err == nil {
			t.Error("deleting twice should fail")
		}

		conversions, err := repo.List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(conversions) != 0 {
			t.Errorf("deleted conversions should not be listed, got %d", len(conversions))
		}
	})

	t.Run("ListFilters", func(t *testing.T) {
		repo := setupTestDB(t)

		completed := completedConversion("https://www.youtube.com/watch?v=ok", "Worked")
		if err := repo.Create(completed); err != nil {
			t.Fatalf("failed to create: %v", err)
		}

		failed := models.NewConversion("https://open.spotify.com/episode/no", "spotify")
		failed.MarkFailed("validating", "refused")
		if err := repo.Create(failed); err != nil {
			t.Fatalf("failed to create: %v", err)
		}

		byStatus, err := repo.List(map[string]any{"status": models.ConversionFailed})
		if err != nil {
			t.Fatalf("failed to list by status: %v", err)
		}
		if len(byStatus) != 1 || byStatus[0].Stage() != "validating" {
			t.Errorf("unexpected status filter result: %d rows", len(byStatus))
		}

		byPlatform, err := repo.List(map[string]any{"platform": "youtube"})
		if err != nil {
			t.Fatalf("failed to list by platform: %v", err)
		}
		if len(byPlatform) != 1 || byPlatform[0].Title() != "Worked" {
			t.Errorf("unexpected platform filter result: %d rows", len(byPlatform))
		}
	})

	t.Run("ListRecent", func(t *testing.T) {
		repo := setupTestDB(t)

		for i := range 5 {
			conversion := completedConversion("https://example.com/ep", "Episode")
			if err := repo.Create(conversion); err != nil {
				t.Fatalf("failed to create conversion %d: %v", i, err)
			}
			// created_at ordering needs distinct timestamps
			time.Sleep(2 * time.Millisecond)
		}

		recent, err := repo.ListRecent(3)
		if err != nil {
			t.Fatalf("failed to list recent: %v", err)
		}
		if len(recent) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(recent))
		}

		for i := 1; i < len(recent); i++ {
			if recent[i].CreatedAt().After(recent[i-1].CreatedAt()) {
				t.Error("recent listing should be newest first")
			}
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		repo := setupTestDB(t)

		if _, err := repo.Get("no-such-id"); err == nil {
			t.Error("getting a missing conversion should fail")
		}
	})
}

func TestNextSequence(t *testing.T) {
	repo := setupTestDB(t)

	for want := 1; want <= 3; want++ {
		got, err := NextSequence(repo.db, "conversions")
		if err != nil {
			t.Fatalf("NextSequence failed: %v", err)
		}
		if got != want {
			t.Errorf("expected sequence %d, got %d", want, got)
		}
	}
}
