package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	goytdlp "github.com/lrstanley/go-ytdlp"
	"github.com/m-mizutani/goerr/v2"

	"github.com/tubetap/tubetap/pkg/domain/model"
	"github.com/tubetap/tubetap/pkg/domain/types"
)

// Client drives the yt-dlp tool. A cookies file is passed through only when
// it actually exists; its absence is not an error.
type Client struct {
	cookiesPath      string
	ffmpegPath       string
	progressInterval time.Duration
}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithCookies sets the path of a cookies file used to authenticate requests
func WithCookies(path string) Option {
	return func(c *Client) {
		c.cookiesPath = path
	}
}

// WithFFmpegLocation overrides where yt-dlp looks for ffmpeg
func WithFFmpegLocation(path string) Option {
	return func(c *Client) {
		c.ffmpegPath = path
	}
}

// New creates a new yt-dlp client
func New(opts ...Option) *Client {
	c := &Client{
		progressInterval: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) newCommand() *goytdlp.Command {
	dl := goytdlp.New().
		NoPlaylist().
		NoWarnings().
		Quiet()

	if c.cookiesPath != "" {
		if _, err := os.Stat(c.cookiesPath); err == nil {
			dl = dl.Cookies(c.cookiesPath)
		}
	}
	if c.ffmpegPath != "" {
		dl = dl.FFmpegLocation(c.ffmpegPath)
	}

	return dl
}

// videoInfo is the slice of yt-dlp's info dict this service cares about
type videoInfo struct {
	Title      string  `json:"title"`
	Duration   float64 `json:"duration"`
	Thumbnail  string  `json:"thumbnail"`
	Channel    string  `json:"channel"`
	Uploader   string  `json:"uploader"`
	ViewCount  int64   `json:"view_count"`
	UploadDate string  `json:"upload_date"`
}

// FetchMetadata performs a read-only metadata query without downloading
func (c *Client) FetchMetadata(ctx context.Context, rawURL string) (*model.VideoMetadata, error) {
	dl := c.newCommand().
		SkipDownload().
		DumpJSON()

	result, err := dl.Run(ctx, rawURL)
	if err != nil {
		// The tool's message reaches API callers verbatim, so no wrap prefix
		return nil, goerr.New(err.Error(),
			goerr.T(types.ErrTagRetrieval), goerr.V("url", rawURL))
	}

	var info videoInfo
	if err := json.Unmarshal([]byte(result.Stdout), &info); err != nil {
		return nil, goerr.New(err.Error(),
			goerr.T(types.ErrTagRetrieval), goerr.V("url", rawURL))
	}

	return metadataFromInfo(info), nil
}

func metadataFromInfo(info videoInfo) *model.VideoMetadata {
	meta := &model.VideoMetadata{
		Title:      "Unknown",
		Channel:    "Unknown",
		Duration:   int(info.Duration),
		Thumbnail:  info.Thumbnail,
		ViewCount:  info.ViewCount,
		UploadDate: info.UploadDate,
	}

	if info.Title != "" {
		meta.Title = info.Title
	}
	switch {
	case info.Channel != "":
		meta.Channel = info.Channel
	case info.Uploader != "":
		meta.Channel = info.Uploader
	}

	return meta
}

// DownloadAudio fetches the best available audio stream and transcodes it
// to MP3 at the requested bitrate into destDir. onProgress receives the raw
// download fraction; the total may come from an exact or estimated size,
// whichever yt-dlp reports.
func (c *Client) DownloadAudio(ctx context.Context, rawURL, destDir string, bitrate model.Bitrate, onProgress func(fraction float64)) (string, error) {
	dl := c.newCommand().
		Format("bestaudio/best").
		ExtractAudio().
		AudioFormat("mp3").
		AudioQuality(fmt.Sprintf("%dK", int(bitrate))).
		Output(filepath.Join(destDir, "%(title)s.%(ext)s"))

	var title string
	dl = dl.ProgressFunc(c.progressInterval, func(update goytdlp.ProgressUpdate) {
		if update.Info != nil && update.Info.Title != nil && title == "" {
			title = *update.Info.Title
		}

		if onProgress == nil {
			return
		}
		switch update.Status {
		case goytdlp.ProgressStatusDownloading:
			if update.TotalBytes > 0 {
				onProgress(float64(update.DownloadedBytes) / float64(update.TotalBytes))
			}
		case goytdlp.ProgressStatusFinished, goytdlp.ProgressStatusPostProcessing:
			onProgress(1)
		}
	})

	if _, err := dl.Run(ctx, rawURL); err != nil {
		return "", goerr.Wrap(err, "yt-dlp download failed",
			goerr.T(types.ErrTagExtraction), goerr.V("url", rawURL))
	}

	return title, nil
}
