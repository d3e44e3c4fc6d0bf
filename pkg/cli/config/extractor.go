package config

import "github.com/urfave/cli/v3"

// Extractor holds configuration passed through to the extraction tool
type Extractor struct {
	CookiesPath string
	FFmpegPath  string
}

// Flags returns CLI flags for extractor configuration
func (c *Extractor) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "cookies",
			Usage:       "Path to a cookies file for authenticated requests (ignored when missing)",
			Value:       "cookies.txt",
			Destination: &c.CookiesPath,
			Sources:     cli.EnvVars("TUBETAP_COOKIES"),
		},
		&cli.StringFlag{
			Name:        "ffmpeg-location",
			Usage:       "Path to the ffmpeg binary (defaults to PATH lookup)",
			Destination: &c.FFmpegPath,
			Sources:     cli.EnvVars("TUBETAP_FFMPEG_LOCATION"),
		},
	}
}
