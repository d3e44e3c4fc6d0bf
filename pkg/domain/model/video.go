package model

// VideoMetadata holds the per-request snapshot of a video's public
// attributes. Fields the source did not provide carry best-effort defaults:
// "Unknown" for title/channel, zero for numeric values, empty strings
// otherwise. Never persisted.
type VideoMetadata struct {
	Title      string `json:"title"`
	Duration   int    `json:"duration"`    // seconds
	Thumbnail  string `json:"thumbnail"`   // may be empty
	Channel    string `json:"channel"`
	ViewCount  int64  `json:"view_count"`
	UploadDate string `json:"upload_date"` // opaque format, may be empty
}
