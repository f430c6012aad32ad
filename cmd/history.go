package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/castaway/internal/formatter"
	"github.com/desertthunder/castaway/internal/repositories"
	"github.com/desertthunder/castaway/internal/shared"
	"github.com/urfave/cli/v3"
)

// History lists recorded conversions, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open history database (run `castaway setup` first): %w", err)
	}
	defer db.Close()

	repo := repositories.NewConversionRepository(db)

	criteria := map[string]any{"limit": cmd.Int("limit")}
	if status := cmd.String("status"); status != "" {
		criteria["status"] = status
	}

	conversions, err := repo.List(criteria)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		rows := make([]map[string]any, 0, len(conversions))
		for _, c := range conversions {
			rows = append(rows, map[string]any{
				"id":             c.ID(),
				"source_url":     c.SourceURL(),
				"platform":       c.Platform(),
				"title":          c.Title(),
				"status":         c.Status(),
				"stage":          c.Stage(),
				"audio_url":      c.AudioURL(),
				"transcript_url": c.TranscriptURL(),
				"detail":         c.Detail(),
				"created_at":     c.CreatedAt(),
			})
		}
		return r.writeJSON(rows, true)
	}

	return r.writePlain("%s", formatter.HistoryText(conversions))
}
