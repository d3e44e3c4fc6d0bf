package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/tubetap/tubetap/pkg/domain/types"
)

// Bitrate is the target MP3 encoding quality in kbps
type Bitrate int

const (
	Bitrate128 Bitrate = 128
	Bitrate192 Bitrate = 192
	Bitrate320 Bitrate = 320

	DefaultBitrate = Bitrate192
)

// IsValid reports whether the bitrate is one of the offered qualities
func (b Bitrate) IsValid() bool {
	switch b {
	case Bitrate128, Bitrate192, Bitrate320:
		return true
	}
	return false
}

// ParseBitrate converts a user supplied kbps value into a Bitrate. Zero
// selects the default quality.
func ParseBitrate(kbps int) (Bitrate, error) {
	if kbps == 0 {
		return DefaultBitrate, nil
	}
	b := Bitrate(kbps)
	if !b.IsValid() {
		return 0, goerr.New("bitrate must be one of 128, 192 or 320 kbps",
			goerr.T(types.ErrTagValidation), goerr.V("kbps", kbps))
	}
	return b, nil
}

// ExtractionRequest describes one audio extraction. Created per user action
// and discarded after the response is returned.
type ExtractionRequest struct {
	URL     string  `json:"url"`
	Bitrate Bitrate `json:"bitrate"`
}

// Validate checks the request before any work starts
func (r *ExtractionRequest) Validate() error {
	if r.URL == "" {
		return goerr.New("URL is required", goerr.T(types.ErrTagValidation))
	}
	if !IsValidVideoURL(r.URL) {
		return goerr.New("Invalid YouTube URL", goerr.T(types.ErrTagValidation))
	}
	if !r.Bitrate.IsValid() {
		return goerr.New("bitrate must be one of 128, 192 or 320 kbps",
			goerr.T(types.ErrTagValidation), goerr.V("kbps", int(r.Bitrate)))
	}
	return nil
}

// ExtractionResult carries the transcoded audio fully in memory together
// with a filesystem-safe filename. The working directory it was produced in
// is already gone by the time the caller sees this.
type ExtractionResult struct {
	Audio    []byte
	Filename string
}

// ExtractionStage labels the phase a progress report belongs to
type ExtractionStage string

const (
	StageDownloading ExtractionStage = "downloading"
	StageConverting  ExtractionStage = "converting"
	StageProcessing  ExtractionStage = "processing"
	StageDone        ExtractionStage = "done"
)

// Progress scale: the download maps onto the first 70%, locating the output
// file reports 90% and loading it into memory completes at 100%.
const (
	ProgressDownloadWeight = 0.7
	ProgressFileLocated    = 0.9
	ProgressComplete       = 1.0
)

// ProgressFunc observes extraction progress. It is invoked synchronously
// from within the blocking extraction call; implementations must not block.
type ProgressFunc func(fraction float64, stage ExtractionStage)
