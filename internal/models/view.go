package models

// PlayerArgs are handed to the front-end player bootstrap.
type PlayerArgs struct {
	CourseID string `json:"course_id"`
	VideoID  string `json:"video_id"`
}

// ViewContext is everything the rendering side needs to display a video
// block. Messages keep the order in which they were raised.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ViewContext struct {
	DisplayName   string             `json:"display_name"`
	Video         *VideoMetadata     `json:"video"`
	Sources       []PlayerSource     `json:"sources"`
	Messages      []LocalizedMessage `json:"messages"`
	Downloads     []DownloadEntry    `json:"downloads"`
	AllowDownload bool               `json:"allow_download"`
	Player        PlayerArgs         `json:"player"`
	Locale        string             `json:"locale"`
}
