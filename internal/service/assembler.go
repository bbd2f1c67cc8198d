package service

import "github.com/videofront/videofront-embed-go/internal/models"

var downloadLabels = map[string]string{
	models.QualityHD: "High (720p)",
	models.QualitySD: "Standard (480p)",
	models.QualityLD: "Mobile (320p)",
}

var playerResolutions = map[string]string{
	models.QualityHD: "720",
	models.QualitySD: "480",
	models.QualityLD: "320",
}

// QualityLabel returns the human label of a quality code. Unknown codes are
// their own label.
func QualityLabel(code string) string {
	if label, ok := downloadLabels[code]; ok {
		return label
	}
	return code
}

// AssembleDownloads lists the download links of a video, highest quality
// first. Videofront delivers formats by ascending bitrate, so the order is
// simply reversed. The input is not modified.
func AssembleDownloads(video *models.VideoMetadata) []models.DownloadEntry {
	if video == nil {
		return []models.DownloadEntry{}
	}

	downloads := make([]models.DownloadEntry, 0, len(video.Formats))
	for i := len(video.Formats) - 1; i >= 0; i-- {
		source := video.Formats[i]
		downloads = append(downloads, models.DownloadEntry{
			URL:   source.URL,
			Label: QualityLabel(source.Name),
		})
	}
	return downloads
}

// PlayerSources lists the player sources in delivery order. The player's
// resolution switcher sorts them itself using Res.
func PlayerSources(video *models.VideoMetadata) []models.PlayerSource {
	if video == nil {
		return []models.PlayerSource{}
	}

	sources := make([]models.PlayerSource, 0, len(video.Formats))
	for _, source := range video.Formats {
		sources = append(sources, models.PlayerSource{
			URL:   source.URL,
			Label: QualityLabel(source.Name),
			Res:   playerResolutions[source.Name],
		})
	}
	return sources
}
