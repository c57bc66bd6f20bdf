package domain

import "time"

type UploadKind string

const (
	UploadIDFront UploadKind = "id_front"
	UploadIDBack  UploadKind = "id_back"
)

// Upload is an ID-card image stored on local disk and served statically.
type Upload struct {
	ID        string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Kind      UploadKind `gorm:"size:16" json:"kind"`
	FilePath  string     `json:"-"`
	URL       string     `json:"url"`
	MimeType  string     `json:"mimeType"`
	Size      int64      `json:"size"`
	ClientIP  string     `json:"-"`
	CreatedAt time.Time  `json:"createdAt"`
}
