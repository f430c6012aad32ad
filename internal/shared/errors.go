package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Pipeline stage errors
	ErrValidation    = fmt.Errorf("validation failed")
	ErrSearch        = fmt.Errorf("search failed")
	ErrRetrieval     = fmt.Errorf("retrieval failed")
	ErrSummarization = fmt.Errorf("summarization failed")
	ErrStorageUpload = fmt.Errorf("storage upload failed")
	ErrTimeout       = fmt.Errorf("operation timed out")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
