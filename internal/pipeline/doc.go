// Package pipeline implements the conversion state machine.
//
// One [Orchestrator] serves all requests; each run is strictly linear:
//
//	Validating → Retrieving → Transcribing → (Summarizing) → Naming → Uploading → Completed
//
// or Failed(stage) from any state, surfaced as a [StageError] wrapping one of
// the shared stage sentinels.
//
// # Failure containment
//
//   - Validating refuses malformed URLs and DRM-restricted platforms before
//     any workspace or network activity exists.
//   - Retrieving failures are fatal: there is no audio without this stage.
//   - Transcribing never fails; a missing transcript skips summarization and
//     transcript upload.
//   - Summarizing only runs through [Orchestrator.Summarize] and its failure
//     is fatal to that request alone.
//   - Uploading the audio artifact is fatal on failure; a transcript upload
//     failure degrades the response by omitting transcript_url.
//
// # Resources
//
// Each run owns a temporary workspace created before retrieval and removed
// on every exit path. External calls are bounded by the configured timeouts
// and aborted on client disconnect via context cancellation. Outcomes are
// recorded through an optional [Recorder]; recording is observability, never
// consulted before a run, so identical requests always re-run the pipeline.
package pipeline
