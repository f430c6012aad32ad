package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/castaway/internal/media"
	"github.com/desertthunder/castaway/internal/models"
	"github.com/desertthunder/castaway/internal/services"
	"github.com/desertthunder/castaway/internal/shared"
)

// Stage identifies one step of the conversion state machine.
type Stage string

const (
	StageValidating   Stage = "validating"
	StageRetrieving   Stage = "retrieving"
	StageTranscribing Stage = "transcribing"
	StageSummarizing  Stage = "summarizing"
	StageNaming       Stage = "naming"
	StageUploading    Stage = "uploading"
	StageCompleted    Stage = "completed"
)

// StageError is a pipeline failure tagged with the stage it occurred in.
//
// The wrapped error always carries one of the shared stage sentinels, so
// callers can map failures to the error taxonomy with errors.Is.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func fail(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}

// Request is one conversion request.
type Request struct {
	URL   string
	Title string // optional custom title; discovered title used when empty
}

// Recorder persists conversion outcome records. The conversion repository
// satisfies it; a nil recorder disables history.
type Recorder interface {
	Create(conversion *models.Conversion) error
}

// Orchestrator sequences the conversion stages for one request at a time.
//
// It holds no mutable state of its own, so one Orchestrator serves any
// number of concurrent requests; each run owns an isolated workspace.
type Orchestrator struct {
	retriever  services.Retriever
	summarizer services.Summarizer
	uploader   services.Uploader
	recorder   Recorder
	timeouts   shared.TimeoutConfig
	logger     *log.Logger
}

// Opts contains the collaborators for creating an Orchestrator.
type Opts struct {
	Retriever  services.Retriever
	Summarizer services.Summarizer
	Uploader   services.Uploader
	Recorder   Recorder
	Timeouts   shared.TimeoutConfig
	Logger     *log.Logger
}

// New creates an Orchestrator with the provided collaborators.
func New(opts Opts) *Orchestrator {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &Orchestrator{
		retriever:  opts.Retriever,
		summarizer: opts.Summarizer,
		uploader:   opts.Uploader,
		recorder:   opts.Recorder,
		timeouts:   opts.Timeouts,
		logger:     opts.Logger,
	}
}

// Convert runs the full pipeline for req and returns the artifact URLs.
//
// Stage order is fixed: validate, retrieve, transcribe, name, upload. The
// audio artifact always uploads first; a transcript upload failure degrades
// the response instead of failing it. Summarization never runs here — it has
// its own entry point.
func (o *Orchestrator) Convert(ctx context.Context, req Request) (*models.ConversionOutcome, error) {
	verdict, err := o.validate(req.URL)
	if err != nil {
		o.record(req, verdict, nil, func(c *models.Conversion) {
			c.MarkFailed(string(StageValidating), err.Error())
		})
		return nil, fail(StageValidating, err)
	}

	workspace, cleanup, err := o.makeWorkspace()
	if err != nil {
		return nil, fail(StageRetrieving, err)
	}
	defer cleanup()

	download, err := o.retrieve(ctx, req.URL, workspace)
	if err != nil {
		o.record(req, verdict, nil, func(c *models.Conversion) {
			c.MarkFailed(string(StageRetrieving), err.Error())
		})
		return nil, fail(StageRetrieving, err)
	}

	// Transcribing never fails; absence just means nothing to upload later.
	transcript, _ := media.FindTranscript(workspace)

	base := o.baseName(req, download)
	audioName := media.ArtifactName(base, media.RoleAudio)
	transcriptName := media.ArtifactName(base, media.RoleTranscript)

	audioObj, err := o.upload(ctx, download.AudioPath, audioName)
	if err != nil {
		o.record(req, verdict, download, func(c *models.Conversion) {
			c.MarkFailed(string(StageUploading), err.Error())
		})
		return nil, fail(StageUploading, err)
	}

	outcome := &models.ConversionOutcome{AudioURL: audioObj.URL}

	if transcript != nil {
		transcriptObj, err := o.upload(ctx, transcript.Path, transcriptName)
		if err != nil {
			// Degrade rather than fail: the primary artifact is already durable.
			o.logger.Warn("transcript upload failed, omitting transcript_url", "blob", transcriptName, "error", err)
		} else {
			outcome.TranscriptURL = transcriptObj.URL
		}
	}

	o.record(req, verdict, download, func(c *models.Conversion) {
		c.MarkCompleted(outcome.AudioURL, outcome.TranscriptURL)
	})

	return outcome, nil
}

// Summarize retrieves the source, requires a transcript, and produces a
// structured summary. Nothing is uploaded; the workspace is discarded.
func (o *Orchestrator) Summarize(ctx context.Context, req Request) (*models.Summary, error) {
	if _, err := o.validate(req.URL); err != nil {
		return nil, fail(StageValidating, err)
	}

	if o.summarizer == nil {
		return nil, fail(StageSummarizing, fmt.Errorf("%w: summarizer is not configured", shared.ErrSummarization))
	}

	workspace, cleanup, err := o.makeWorkspace()
	if err != nil {
		return nil, fail(StageRetrieving, err)
	}
	defer cleanup()

	if _, err := o.retrieve(ctx, req.URL, workspace); err != nil {
		return nil, fail(StageRetrieving, err)
	}

	transcript, ok := media.FindTranscript(workspace)
	if !ok {
		return nil, fail(StageSummarizing, fmt.Errorf("%w: source has no retrievable transcript", shared.ErrSummarization))
	}

	raw, err := os.ReadFile(transcript.Path)
	if err != nil {
		return nil, fail(StageSummarizing, fmt.Errorf("%w: failed to read transcript: %v", shared.ErrSummarization, err))
	}

	text := media.CleanVTT(string(raw))

	sctx, cancel := context.WithTimeout(ctx, o.timeouts.SummarizeTimeout())
	defer cancel()

	summary, err := o.summarizer.Summarize(sctx, text)
	if err != nil {
		return nil, fail(StageSummarizing, err)
	}

	return summary, nil
}

// validate classifies the URL and enforces platform policy. It runs before
// any workspace or network activity so refused sources have no side effects.
func (o *Orchestrator) validate(rawURL string) (media.Verdict, error) {
	verdict, err := media.Classify(rawURL)
	if err != nil {
		return verdict, err
	}
	if !verdict.Permitted {
		return verdict, fmt.Errorf("%w: %s", shared.ErrValidation, verdict.Reason)
	}
	return verdict, nil
}

func (o *Orchestrator) makeWorkspace() (string, func(), error) {
	workspace, err := os.MkdirTemp("", "castaway-"+shared.ShortID()+"-")
	if err != nil {
		return "", nil, fmt.Errorf("%w: failed to create workspace: %v", shared.ErrRetrieval, err)
	}

	cleanup := func() {
		if err := os.RemoveAll(workspace); err != nil {
			o.logger.Error("failed to remove workspace", "path", workspace, "error", err)
		}
	}
	return workspace, cleanup, nil
}

func (o *Orchestrator) retrieve(ctx context.Context, url, workspace string) (*models.Download, error) {
	fctx, cancel := context.WithTimeout(ctx, o.timeouts.FetchTimeout())
	defer cancel()
	return o.retriever.Fetch(fctx, url, workspace)
}

func (o *Orchestrator) upload(ctx context.Context, localPath, blobName string) (*models.StorageObject, error) {
	uctx, cancel := context.WithTimeout(ctx, o.timeouts.UploadTimeout())
	defer cancel()
	return o.uploader.Upload(uctx, localPath, blobName)
}

// baseName resolves the shared artifact stem: custom title, then discovered
// title, then a URL-derived fallback.
func (o *Orchestrator) baseName(req Request, download *models.Download) string {
	title := req.Title
	if title == "" && download != nil {
		title = download.Title
	}
	return media.BaseName(title, req.URL)
}

// record writes a history row when a recorder is configured. Recording
// failures are logged and never surfaced to the request.
func (o *Orchestrator) record(req Request, verdict media.Verdict, download *models.Download, mark func(*models.Conversion)) {
	if o.recorder == nil {
		return
	}

	platform := verdict.Platform
	if platform == "" {
		platform = media.PlatformOther
	}

	conversion := models.NewConversion(req.URL, platform)
	title := req.Title
	if title == "" && download != nil {
		title = download.Title
	}
	conversion.SetTitle(title)
	mark(conversion)

	if err := o.recorder.Create(conversion); err != nil {
		o.logger.Warn("failed to record conversion", "url", req.URL, "error", err)
	}
}
