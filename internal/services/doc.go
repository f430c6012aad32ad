// Package services wraps the external capabilities the conversion pipeline depends on.
//
// # Capability Interfaces
//
// Each collaborator is abstracted behind a narrow interface — [Searcher],
// [Retriever], [Summarizer], [Uploader] — so the pipeline's control flow is
// testable without network access. The pipeline only sees these interfaces;
// wiring happens in cmd.
//
// # yt-dlp
//
// [YTDLP] implements [Searcher] and [Retriever] over the yt-dlp binary via
// go-ytdlp. Search issues a ytsearchN: query with a flat-playlist JSON dump
// and preserves the platform's ranking. Fetch extracts mp3 audio plus
// best-effort English subtitles into the request workspace and retries once
// on transient failure.
//
// # OpenAI
//
// [OpenAISummarizer] calls the chat completions API with a JSON-object
// response format and parses the result into [models.Summary]. A
// configurable base URL lets tests stand in an httptest server.
//
// # Azure Blob Storage
//
// [AzureUploader] uploads artifacts with shared-key credentials. Blob-name
// collisions overwrite: last write wins.
//
// # Error Handling
//
// Implementations wrap the stage sentinels from the shared package —
// [shared.ErrSearch], [shared.ErrRetrieval], [shared.ErrSummarization],
// [shared.ErrStorageUpload] — so the HTTP layer can map failures to status
// codes without inspecting messages.
package services
