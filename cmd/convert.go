package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/castaway/internal/formatter"
	"github.com/desertthunder/castaway/internal/pipeline"
	"github.com/desertthunder/castaway/internal/shared"
	"github.com/urfave/cli/v3"
)

// Convert runs the full pipeline for one URL from the terminal.
func (r *Runner) Convert(ctx context.Context, cmd *cli.Command) error {
	url := cmd.StringArg("url")
	if url == "" {
		return fmt.Errorf("%w: url argument is required", shared.ErrMissingArgument)
	}

	r.reloadConfig(cmd)

	orchestrator, db, err := r.buildOrchestrator()
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	r.logger.Info("converting", "url", url)

	outcome, err := orchestrator.Convert(ctx, pipeline.Request{URL: url, Title: cmd.String("title")})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(outcome, true)
	}
	return r.writePlain("%s", formatter.OutcomeText(outcome))
}

// Summarize retrieves a URL's transcript and prints its structured summary.
func (r *Runner) Summarize(ctx context.Context, cmd *cli.Command) error {
	url := cmd.StringArg("url")
	if url == "" {
		return fmt.Errorf("%w: url argument is required", shared.ErrMissingArgument)
	}

	r.reloadConfig(cmd)

	// Summaries never upload, so the orchestrator is built without storage.
	orchestrator := pipeline.New(pipeline.Opts{
		Retriever:  r.ytdlp,
		Summarizer: r.buildSummarizer(),
		Timeouts:   r.config.Timeouts,
		Logger:     r.logger,
	})

	r.logger.Info("summarizing", "url", url)

	summary, err := orchestrator.Summarize(ctx, pipeline.Request{URL: url})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(summary, true)
	}

	for _, point := range summary.BulletPoints {
		r.writePlain("• %s\n", point)
	}
	if len(summary.Companies) > 0 {
		r.writePlain("\nCompanies:\n")
		for _, company := range summary.Companies {
			r.writePlain("  %s — %s\n", company.Name, company.Summary)
		}
	}
	return nil
}
