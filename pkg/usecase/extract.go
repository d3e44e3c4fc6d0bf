package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/tubetap/tubetap/pkg/domain/interfaces"
	"github.com/tubetap/tubetap/pkg/domain/model"
	"github.com/tubetap/tubetap/pkg/domain/types"
	"github.com/tubetap/tubetap/pkg/utils/format"
)

type extractionUseCase struct {
	extractor interfaces.MediaExtractor
}

// NewExtraction creates a new instance of ExtractionUseCase
func NewExtraction(extractor interfaces.MediaExtractor) interfaces.ExtractionUseCase {
	return &extractionUseCase{
		extractor: extractor,
	}
}

// Extract runs the whole download-transcode-collect pipeline as one
// operation. The working directory is removed on every exit path. Every
// invocation starts from scratch; there is no partial result or resume.
func (uc *extractionUseCase) Extract(ctx context.Context, req *model.ExtractionRequest, progress model.ProgressFunc) (*model.ExtractionResult, error) {
	logger := ctxlog.From(ctx)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	report := func(fraction float64, stage model.ExtractionStage) {
		if progress != nil {
			progress(fraction, stage)
		}
	}

	opID := uuid.NewString()

	workDir, err := os.MkdirTemp("", "tubetap-*")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create working directory",
			goerr.T(types.ErrTagExtraction))
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			logger.Warn("failed to remove working directory",
				"operation_id", opID, "dir", workDir, "error", err)
		}
	}()

	logger.Info("starting audio extraction",
		"operation_id", opID,
		"url", req.URL,
		"bitrate_kbps", int(req.Bitrate),
		"work_dir", workDir,
	)

	title, err := uc.extractor.DownloadAudio(ctx, req.URL, workDir, req.Bitrate, func(fraction float64) {
		if fraction < 0 {
			fraction = 0
		} else if fraction > 1 {
			fraction = 1
		}
		stage := model.StageDownloading
		if fraction >= 1 {
			stage = model.StageConverting
		}
		report(fraction*model.ProgressDownloadWeight, stage)
	})
	if err != nil {
		logger.Error("audio download failed",
			"operation_id", opID, "url", req.URL, "error", err)
		return nil, goerr.Wrap(err, "audio download failed",
			goerr.T(types.ErrTagExtraction))
	}

	matches, err := filepath.Glob(filepath.Join(workDir, "*.mp3"))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to scan working directory",
			goerr.T(types.ErrTagExtraction))
	}
	if len(matches) == 0 {
		logger.Error("extraction produced no output file",
			"operation_id", opID, "url", req.URL)
		return nil, goerr.New("no output file was produced",
			goerr.T(types.ErrTagExtraction), goerr.V("url", req.URL))
	}

	// filepath.Glob returns sorted matches; take the first one
	outputPath := matches[0]
	report(model.ProgressFileLocated, model.StageProcessing)

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read output file",
			goerr.T(types.ErrTagExtraction))
	}

	if title == "" {
		title = strings.TrimSuffix(filepath.Base(outputPath), ".mp3")
	}
	filename := format.SanitizeFilename(title)

	report(model.ProgressComplete, model.StageDone)

	logger.Info("audio extraction complete",
		"operation_id", opID,
		"filename", filename,
		"size_bytes", len(data),
	)

	return &model.ExtractionResult{
		Audio:    data,
		Filename: filename,
	}, nil
}
