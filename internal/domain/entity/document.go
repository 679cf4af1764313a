package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document type choices
const (
	DocumentTypeLaboratory = "laboratory"
	DocumentTypeImage      = "image"
	DocumentTypeOther      = "other"
)

// Document stores metadata for a file attached to a referral. The bytes live
// in the external file store; only the opaque reference is persisted here.
type Document struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ReferralID   uint      `gorm:"not null;index" json:"referral_id"`
	DocumentType string    `gorm:"type:varchar(50);not null" json:"document_type"`
	Description  string    `gorm:"type:varchar(200)" json:"description,omitempty"`
	StorageID    string    `gorm:"type:varchar(255);not null" json:"storage_id"`
	FileURL      string    `gorm:"type:text;not null" json:"file_url"`
	UploadedByID uuid.UUID `gorm:"type:uuid;not null" json:"uploaded_by_id"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	// Relationships
	Referral   *Referral `gorm:"foreignKey:ReferralID" json:"referral,omitempty"`
	UploadedBy User      `gorm:"foreignKey:UploadedByID" json:"uploaded_by,omitempty"`
}

func (Document) TableName() string {
	return "referral_documents"
}
