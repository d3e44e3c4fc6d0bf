package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"

	"github.com/tubetap/tubetap/pkg/domain/interfaces"
	"github.com/tubetap/tubetap/pkg/domain/model"
)

type metadataUseCase struct {
	extractor interfaces.MediaExtractor
}

// NewMetadata creates a new instance of MetadataUseCase
func NewMetadata(extractor interfaces.MediaExtractor) interfaces.MetadataUseCase {
	return &metadataUseCase{
		extractor: extractor,
	}
}

// Fetch queries the external source for video metadata. Failures carry the
// extractor's message through untouched; there is no retry and no failure
// classification beyond the retrieval tag.
func (uc *metadataUseCase) Fetch(ctx context.Context, rawURL string) (*model.VideoMetadata, error) {
	logger := ctxlog.From(ctx)

	meta, err := uc.extractor.FetchMetadata(ctx, rawURL)
	if err != nil {
		logger.Error("metadata query failed", "url", rawURL, "error", err)
		return nil, err
	}

	logger.Info("fetched video metadata",
		"url", rawURL,
		"title", meta.Title,
		"channel", meta.Channel,
		"duration_sec", meta.Duration,
	)

	return meta, nil
}
