package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/tubetap/tubetap/pkg/cli/config"
	"github.com/tubetap/tubetap/pkg/domain/model"
	"github.com/tubetap/tubetap/pkg/domain/types"
	"github.com/tubetap/tubetap/pkg/usecase"
	"github.com/tubetap/tubetap/pkg/utils/format"
)

func cmdInfo() *cli.Command {
	var extractorCfg config.Extractor

	return &cli.Command{
		Name:      "info",
		Usage:     "Show metadata for a video URL",
		ArgsUsage: "<url>",
		Flags:     extractorCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			rawURL := c.Args().First()
			if rawURL == "" {
				return goerr.New("URL is required", goerr.T(types.ErrTagValidation))
			}
			if !model.IsValidVideoURL(rawURL) {
				return goerr.New("Invalid YouTube URL", goerr.T(types.ErrTagValidation))
			}

			metadataUC := usecase.NewMetadata(newExtractor(extractorCfg))
			meta, err := metadataUC.Fetch(ctx, rawURL)
			if err != nil {
				return err
			}

			fmt.Printf("Title:    %s\n", meta.Title)
			fmt.Printf("Channel:  %s\n", meta.Channel)
			fmt.Printf("Duration: %s\n", format.Duration(meta.Duration))
			fmt.Printf("Views:    %s\n", format.Views(meta.ViewCount))
			if meta.UploadDate != "" {
				fmt.Printf("Uploaded: %s\n", meta.UploadDate)
			}
			if meta.Thumbnail != "" {
				fmt.Printf("Thumbnail: %s\n", meta.Thumbnail)
			}
			return nil
		},
	}
}
