package interfaces

import (
	"context"

	"github.com/tubetap/tubetap/pkg/domain/model"
)

// MediaExtractor is the boundary to the external extraction tool. It is an
// opaque collaborator: callers only see mapped metadata, files appearing in
// destDir and a coarse download fraction in the 0..1 range.
type MediaExtractor interface {
	// FetchMetadata performs a read-only query without downloading
	FetchMetadata(ctx context.Context, rawURL string) (*model.VideoMetadata, error)

	// DownloadAudio fetches the best available audio stream and transcodes
	// it to MP3 at the given bitrate into destDir. Returns the video title
	// when the tool reported one, otherwise an empty string.
	DownloadAudio(ctx context.Context, rawURL, destDir string, bitrate model.Bitrate, onProgress func(fraction float64)) (string, error)
}
