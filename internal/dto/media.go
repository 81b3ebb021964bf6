package dto

// MediaUploadResponse POST /api/Courses/upload-media
type MediaUploadResponse struct {
	MediaURL string `json:"mediaUrl"`
}

// YouTubeCheckRequest POST /api/Courses/test-youtube
type YouTubeCheckRequest struct {
	URL string `json:"url"`
}

// YouTubeCheckResponse reports the accepted URL and its video id when one
// could be extracted.
type YouTubeCheckResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	VideoID string `json:"videoId,omitempty"`
}

// BlobCheckResponse GET /api/Courses/test-blob
type BlobCheckResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
}
