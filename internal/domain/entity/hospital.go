package entity

import "time"

// Hospital represents a referring hospital or facility. Reference data,
// maintained by administrators.
type Hospital struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"type:varchar(200);not null;index" json:"name"`
	IsInsideCity  bool      `gorm:"not null;default:true" json:"is_inside_city"`
	Location      string    `gorm:"type:varchar(100)" json:"location,omitempty"`
	Address       string    `gorm:"type:text" json:"address,omitempty"`
	ContactNumber string    `gorm:"type:varchar(20)" json:"contact_number,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Referrals []Referral `gorm:"foreignKey:HospitalID" json:"referrals,omitempty"`
}

func (Hospital) TableName() string {
	return "hospitals"
}
