package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures for the HTTP layer. Validation errors are
// always the caller's fault, retrieval errors come from the metadata query,
// extraction errors from the download/transcode pipeline.
var (
	ErrTagValidation = goerr.NewTag("validation")
	ErrTagRetrieval  = goerr.NewTag("retrieval")
	ErrTagExtraction = goerr.NewTag("extraction")
)
