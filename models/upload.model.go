package models

import "gorm.io/gorm"

// Upload stores media inline as base64. Size ceilings are enforced before
// persistence: 5MB for images, 50MB for videos and documents.
type Upload struct {
	gorm.Model
	FileID       string `json:"file_id" gorm:"uniqueIndex;not null"` // uuid, used in URLs
	Filename     string `json:"filename"`
	MimeType     string `json:"mime_type"`
	Base64Data   string `json:"-" gorm:"type:text"`
	Size         int64  `json:"size"` // decoded size in bytes
	Type         string `json:"type"` // image, video, document
	UploadedByID *uint  `json:"uploaded_by_id"`
}
