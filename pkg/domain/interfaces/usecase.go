package interfaces

import (
	"context"

	"github.com/tubetap/tubetap/pkg/domain/model"
)

// MetadataUseCase defines the read-only metadata lookup
type MetadataUseCase interface {
	// Fetch queries the external source and returns best-effort metadata
	Fetch(ctx context.Context, rawURL string) (*model.VideoMetadata, error)
}

// ExtractionUseCase defines the audio extraction operation
type ExtractionUseCase interface {
	// Extract downloads and transcodes the audio as one non-resumable
	// operation. The progress observer may be nil.
	Extract(ctx context.Context, req *model.ExtractionRequest, progress model.ProgressFunc) (*model.ExtractionResult, error)
}
