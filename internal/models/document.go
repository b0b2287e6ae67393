package models

import "time"

// Document is a file attached to an event or a preset. Bytes live in object
// storage; this is the metadata row.
type Document struct {
	ID         string    `json:"id"`
	EventID    *int      `json:"eventId,omitempty"`
	PresetID   *int      `json:"presetId,omitempty"`
	FileName   string    `json:"fileName"`
	FileURL    string    `json:"fileUrl"`
	FileSize   int64     `json:"fileSize"`
	FileType   string    `json:"fileType"`
	UploadedBy int       `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// UploadResult is returned per file by the multipart upload endpoints.
type UploadResult struct {
	FileName string `json:"fileName"`
	FileURL  string `json:"fileUrl,omitempty"`
	FileSize int64  `json:"fileSize,omitempty"`
	FileType string `json:"fileType,omitempty"`
	Error    string `json:"error,omitempty"`
}
