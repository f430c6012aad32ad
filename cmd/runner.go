package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/castaway/internal/pipeline"
	"github.com/desertthunder/castaway/internal/repositories"
	"github.com/desertthunder/castaway/internal/services"
	"github.com/desertthunder/castaway/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config    *shared.Config
	ytdlp     *services.YTDLP
	logger    *log.Logger
	output    io.Writer
	uploader  services.Uploader   // overridable for tests, built from config when nil
	summarize services.Summarizer // overridable for tests, built from config when nil
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Retriever  *services.YTDLP
	Logger     *log.Logger
	Output     io.Writer
	Uploader   services.Uploader
	Summarizer services.Summarizer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Retriever == nil {
		opts.Retriever = services.NewYTDLP(opts.Logger)
	}

	return &Runner{
		config:    opts.Config,
		ytdlp:     opts.Retriever,
		logger:    opts.Logger,
		output:    opts.Output,
		uploader:  opts.Uploader,
		summarize: opts.Summarizer,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, convertCommand, summarizeCommand, searchCommand, historyCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// reloadConfig swaps in the config file named by the command flag when it exists.
func (r *Runner) reloadConfig(cmd *cli.Command) {
	configPath := cmd.String("config")
	if configPath == "" {
		return
	}
	if _, err := os.Stat(configPath); err != nil {
		return
	}
	if config, err := shared.LoadConfig(configPath); err == nil {
		r.config = config
	} else {
		r.logger.Warn("failed to load config, keeping current", "path", configPath, "error", err)
	}
}

// buildUploader returns the configured uploader, constructing the Azure
// client on first use so commands that never upload need no credentials.
func (r *Runner) buildUploader() (services.Uploader, error) {
	if r.uploader != nil {
		return r.uploader, nil
	}

	uploader, err := services.NewAzureUploader(r.config.Storage)
	if err != nil {
		return nil, err
	}
	r.uploader = uploader
	return uploader, nil
}

// buildSummarizer returns the configured summarizer, or nil when no API key
// is present; the pipeline reports the missing capability per request.
func (r *Runner) buildSummarizer() services.Summarizer {
	if r.summarize != nil {
		return r.summarize
	}
	if r.config.Summarizer.APIKey == "" {
		return nil
	}

	summarizer, err := services.NewOpenAISummarizer(r.config.Summarizer.APIKey, r.config.Summarizer.Model, r.config.Summarizer.BaseURL)
	if err != nil {
		r.logger.Warn("summarizer unavailable", "error", err)
		return nil
	}
	r.summarize = summarizer
	return summarizer
}

// openRecorder opens the history database when configured. A missing or
// broken database disables history rather than failing the command.
func (r *Runner) openRecorder() (pipeline.Recorder, *sql.DB) {
	if r.config.Database.Path == "" {
		return nil, nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		r.logger.Warn("history disabled, database unavailable", "path", r.config.Database.Path, "error", err)
		return nil, nil
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		r.logger.Warn("history disabled, migrations failed", "error", err)
		db.Close()
		return nil, nil
	}

	return repositories.NewConversionRepository(db), db
}

// buildOrchestrator assembles the pipeline from config. The recorder's
// database handle is returned so callers can close it.
func (r *Runner) buildOrchestrator() (*pipeline.Orchestrator, *sql.DB, error) {
	uploader, err := r.buildUploader()
	if err != nil {
		return nil, nil, err
	}

	recorder, db := r.openRecorder()

	orchestrator := pipeline.New(pipeline.Opts{
		Retriever:  r.ytdlp,
		Summarizer: r.buildSummarizer(),
		Uploader:   uploader,
		Recorder:   recorder,
		Timeouts:   r.config.Timeouts,
		Logger:     r.logger,
	})

	return orchestrator, db, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
