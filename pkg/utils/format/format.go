package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
)

// Duration renders seconds as H:MM:SS, or M:SS below one hour. Negative
// input means the source did not report a duration.
func Duration(seconds int) string {
	if seconds < 0 {
		return "Unknown"
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// Views renders a view count in human scale: one decimal with an M or K
// suffix above a million / a thousand, comma-grouped below that.
func Views(count int64) string {
	switch {
	case count >= 1_000_000:
		return fmt.Sprintf("%.1fM views", float64(count)/1_000_000)
	case count >= 1_000:
		return fmt.Sprintf("%.1fK views", float64(count)/1_000)
	}
	return humanize.Comma(count) + " views"
}

var (
	unsafeChars    = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// SanitizeFilename turns a video title into a filesystem-safe MP3 filename:
// everything outside alphanumerics, whitespace and hyphens is stripped, then
// whitespace runs collapse into single underscores.
func SanitizeFilename(title string) string {
	safe := unsafeChars.ReplaceAllString(title, "")
	safe = whitespaceRuns.ReplaceAllString(strings.TrimSpace(safe), "_")
	if safe == "" {
		safe = "audio"
	}
	return safe + ".mp3"
}
