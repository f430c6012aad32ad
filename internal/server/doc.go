// Package server provides HTTP routing, middleware, and the conversion service endpoints.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Endpoints
//
// [ConversionHandler] implements the [Handler] interface and serves the four
// endpoints: POST /search, POST /convert, POST /summarize, GET /health.
// Request and response bodies are JSON; error responses carry a single
// "detail" field.
//
// # Error Mapping
//
// Pipeline failures are translated to exactly one user-facing error with a
// stable status per kind: validation failures (malformed URLs, DRM-restricted
// platforms) are 400, search backend failures are 502, and retrieval,
// summarization, and storage failures are 500. Success and error fields are
// never mixed in one body.
//
// # Concurrency
//
// net/http serves each request on its own goroutine; the handler holds only
// immutable collaborators, so pipeline runs are isolated by construction.
// Request contexts propagate client disconnects into the pipeline, which
// aborts external calls best-effort and always cleans its workspace.
//
// [RateLimit] applies a process-wide token bucket to the conversion
// endpoints; /health is exempt so liveness probes always succeed.
package server
