// Package media implements source URL policy and artifact handling for the conversion pipeline.
//
// # URL Classification
//
// [Classify] maps a raw URL to a [Verdict]: a platform tag plus whether
// retrieval is permitted. Spotify-family hosts are categorically refused
// because their content is DRM-restricted; every other well-formed http(s)
// URL is provisionally permitted.
//
// Classification is pure string policy with no side effects, so a refused
// URL is rejected before any retrieval or storage activity happens.
//
// # Artifact Naming
//
// [SanitizeTitle] and [BaseName] derive the deterministic stem shared by a
// conversion's artifacts; [ArtifactName] attaches the role-specific
// extension. Colliding stems are allowed: the uploader overwrites, last
// write wins.
//
// # Transcripts
//
// [FindTranscript] locates the caption file retrieval may have left in the
// workspace, and [CleanVTT] reduces raw VTT/SRT content to plain text for
// summarization. Transcript absence is a normal outcome, never an error.
package media
