// Package models defines domain entities and persistence interfaces for the castaway conversion service.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs passed between pipeline stages
//   - [SearchResult] : One ranked platform search hit
//   - [Download] : The workspace-local audio artifact from retrieval
//   - [Transcript] : An optional workspace-local transcript artifact
//   - [Summary] : Bullet points and company mentions from summarization
//   - [StorageObject] : One uploaded blob with its public URL
//   - [ConversionOutcome] : The user-facing conversion response
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [Conversion] : The outcome record of one pipeline run
//
// All persistent entities implement the Model interface providing ID generation, timestamps, validation, and soft delete support.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
