package models

// ProcessingStatus is the transcoding state reported by Videofront.
type ProcessingStatus string

// ProcessingStatus constants. Anything Videofront reports outside of this
// set is folded into ProcessingStatusUnknown.
const (
	ProcessingStatusQueued     ProcessingStatus = "queued"
	ProcessingStatusProcessing ProcessingStatus = "processing"
	ProcessingStatusReady      ProcessingStatus = "ready"
	ProcessingStatusFailed     ProcessingStatus = "failed"
	ProcessingStatusUnknown    ProcessingStatus = "unknown"
)

// ParseProcessingStatus maps a raw status string. Matching is exact:
// Videofront only emits lowercase values.
func ParseProcessingStatus(raw string) ProcessingStatus {
	switch s := ProcessingStatus(raw); s {
	case ProcessingStatusQueued, ProcessingStatusProcessing, ProcessingStatusReady, ProcessingStatusFailed:
		return s
	default:
		return ProcessingStatusUnknown
	}
}

// Quality codes used by Videofront for its renditions.
const (
	QualityHD = "HD"
	QualitySD = "SD"
	QualityLD = "LD"
)

// Credentials locate and authenticate against a Videofront server.
type Credentials struct {
	Host  string `json:"host"`
	Token string `json:"token"`
}

// Processing is the processing section of a video record.
type Processing struct {
	Status   ProcessingStatus `json:"status"`
	Progress float64          `json:"progress"`
}

// RenditionSource is one transcoded variant of a video. Name holds the
// quality code.
type RenditionSource struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// VideoMetadata is a video record as returned by the Videofront API.
// Formats come in ascending bitrate order.
type VideoMetadata struct {
	ID         string            `json:"id"`
	Title      string            `json:"title,omitempty"`
	Processing Processing        `json:"processing"`
	Formats    []RenditionSource `json:"formats"`
}

// DownloadEntry is a download link offered to the viewer.
type DownloadEntry struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// PlayerSource is a <source> entry of the video player.
type PlayerSource struct {
	URL   string `json:"url"`
	Label string `json:"label"`
	Res   string `json:"res"`
}
