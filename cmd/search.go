package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/castaway/internal/formatter"
	"github.com/desertthunder/castaway/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search queries the video platform and prints ranked results.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: query argument is required", shared.ErrMissingArgument)
	}

	r.reloadConfig(cmd)

	limit := cmd.Int("limit")
	if limit < 1 {
		return fmt.Errorf("%w: limit must be at least 1", shared.ErrInvalidFlag)
	}

	sctx, cancel := context.WithTimeout(ctx, r.config.Timeouts.SearchTimeout())
	defer cancel()

	results, err := r.ytdlp.Search(sctx, query, limit)
	if err != nil {
		return err
	}

	switch {
	case cmd.Bool("json"):
		return r.writeJSON(results, true)
	case cmd.Bool("csv"):
		data, err := formatter.SearchResultsCSV(results)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	default:
		return r.writePlain("%s", formatter.SearchResultsText(query, results))
	}
}
