package models

import (
	"time"

	"github.com/google/uuid"
)

// UploadedFile records a stored CV upload. Uploads are analyzed in a one-shot
// flow and carry no relation to any conversation. UserID survives user removal
// as NULL.
type UploadedFile struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Filename         string     `gorm:"type:text;not null" json:"filename"`
	OriginalFileName string     `gorm:"type:text" json:"original_filename"`
	FilePath         string     `gorm:"type:text;not null" json:"file_path"`
	UserID           *uuid.UUID `gorm:"type:uuid" json:"user_id,omitempty"`
	CreatedAt        time.Time  `gorm:"type:timestamp;default:now()" json:"created_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
}

func (UploadedFile) TableName() string {
	return "uploaded_files"
}
