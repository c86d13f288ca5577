package httpdto

type PresignUploadRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	SizeBytes   int64  `json:"size_bytes"`
}

type PresignUploadResponse struct {
	UploadURL string            `json:"upload_url"`
	ObjectKey string            `json:"object_key"`
	FileURL   string            `json:"file_url,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`
}

type PresignDownloadResponse struct {
	DownloadURL string `json:"download_url"`
}
