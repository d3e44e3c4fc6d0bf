package model

import (
	"regexp"
	"strings"
)

// Accepted URL shapes: watch page, embed, legacy /v/, shorts, short link and
// the mobile subdomain watch page. Scheme and www. prefix are optional.
// Patterns anchor at the start of the trimmed input only, so trailing query
// parameters after the video ID are accepted.
var videoURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(https?://)?(www\.)?youtube\.com/watch\?.*v=[\w-]+`),
	regexp.MustCompile(`^(https?://)?(www\.)?youtube\.com/embed/[\w-]+`),
	regexp.MustCompile(`^(https?://)?(www\.)?youtube\.com/v/[\w-]+`),
	regexp.MustCompile(`^(https?://)?(www\.)?youtube\.com/shorts/[\w-]+`),
	regexp.MustCompile(`^(https?://)?(www\.)?youtu\.be/[\w-]+(\?.*)?$`),
	regexp.MustCompile(`^(https?://)?(m\.)?youtube\.com/watch\?.*v=[\w-]+`),
}

// IsValidVideoURL reports whether the input looks like a supported video
// page URL. Pure string check, no network access.
func IsValidVideoURL(rawURL string) bool {
	trimmed := strings.TrimSpace(rawURL)
	for _, re := range videoURLPatterns {
		if re.MatchString(trimmed) {
			return true
		}
	}
	return false
}
