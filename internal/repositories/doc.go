// Package repositories implements SQLite-backed persistence for conversion history.
//
// [ConversionRepository] stores one row per pipeline run — completed or
// failed — with the terminal stage and artifact URLs. Rows are soft-deleted
// (deleted_at) and ordered by recency. History is observability only: the
// pipeline writes records but never reads them, so it cannot become an
// accidental cache.
package repositories
