package entity

import (
	"time"

	"github.com/google/uuid"
)

// StatusHistory is an append-only audit record of a status transition.
// Rows are created exactly once per transition and never mutated.
type StatusHistory struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ReferralID  uint           `gorm:"not null;index" json:"referral_id"`
	OldStatus   ReferralStatus `gorm:"type:varchar(20);not null" json:"old_status"`
	NewStatus   ReferralStatus `gorm:"type:varchar(20);not null" json:"new_status"`
	ChangedByID uuid.UUID      `gorm:"type:uuid;not null" json:"changed_by_id"`
	ChangedAt   time.Time      `gorm:"autoCreateTime;index" json:"changed_at"`
	Notes       string         `gorm:"type:text" json:"notes,omitempty"`

	// Relationships
	Referral  *Referral `gorm:"foreignKey:ReferralID" json:"referral,omitempty"`
	ChangedBy User      `gorm:"foreignKey:ChangedByID" json:"changed_by,omitempty"`
}

func (StatusHistory) TableName() string {
	return "referral_status_histories"
}
