package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/tubetap/tubetap/pkg/cli/config"
	"github.com/tubetap/tubetap/pkg/domain/model"
	"github.com/tubetap/tubetap/pkg/domain/types"
	"github.com/tubetap/tubetap/pkg/usecase"
)

func cmdExtract() *cli.Command {
	var (
		extractorCfg config.Extractor
		bitrateStr   string
		outputPath   string
	)

	flags := append(extractorCfg.Flags(),
		&cli.StringFlag{
			Name:        "bitrate",
			Aliases:     []string{"b"},
			Usage:       "Target bitrate in kbps (128, 192 or 320)",
			Value:       "192",
			Destination: &bitrateStr,
			Sources:     cli.EnvVars("TUBETAP_BITRATE"),
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output file path (defaults to the sanitized title)",
			Destination: &outputPath,
		},
	)

	return &cli.Command{
		Name:      "extract",
		Aliases:   []string{"x"},
		Usage:     "Extract audio from a video URL into an MP3 file",
		ArgsUsage: "<url>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			rawURL := c.Args().First()
			if rawURL == "" {
				return goerr.New("URL is required", goerr.T(types.ErrTagValidation))
			}

			kbps, err := strconv.Atoi(bitrateStr)
			if err != nil {
				return goerr.New("bitrate must be a number", goerr.T(types.ErrTagValidation))
			}
			bitrate, err := model.ParseBitrate(kbps)
			if err != nil {
				return err
			}

			req := &model.ExtractionRequest{URL: rawURL, Bitrate: bitrate}
			extractionUC := usecase.NewExtraction(newExtractor(extractorCfg))

			result, err := extractionUC.Extract(ctx, req, func(fraction float64, stage model.ExtractionStage) {
				fmt.Printf("\r%-12s %3.0f%%", stage, fraction*100)
			})
			fmt.Println()
			if err != nil {
				return err
			}

			path := outputPath
			if path == "" {
				path = result.Filename
			}
			if err := os.WriteFile(path, result.Audio, 0644); err != nil {
				return goerr.Wrap(err, "failed to write output file")
			}

			fmt.Printf("Saved %s (%d bytes)\n", path, len(result.Audio))
			return nil
		},
	}
}
