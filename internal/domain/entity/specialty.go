package entity

import "time"

// Specialty represents a medical specialty. Reference data.
type Specialty struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Referrals []Referral `gorm:"foreignKey:SpecialtyID" json:"referrals,omitempty"`
}

func (Specialty) TableName() string {
	return "specialties"
}
