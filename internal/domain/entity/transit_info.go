package entity

import "time"

// TransitInfo holds transport, watcher and escort details for a transfer.
// At most one per referral.
type TransitInfo struct {
	ID         uint `gorm:"primaryKey;autoIncrement" json:"id"`
	ReferralID uint `gorm:"uniqueIndex;not null" json:"referral_id"`

	// Watcher information
	WatcherName       string `gorm:"type:varchar(200)" json:"watcher_name"`
	WatcherAge        int    `json:"watcher_age"`
	RelationToPatient string `gorm:"type:varchar(100)" json:"relation_to_patient"`
	ContactNumber     string `gorm:"type:varchar(20)" json:"contact_number"`

	// Transit team
	EscortNurse       string `gorm:"type:varchar(200)" json:"escort_nurse,omitempty"`
	Driver            string `gorm:"type:varchar(200)" json:"driver,omitempty"`
	ReferringMD       string `gorm:"type:varchar(200)" json:"referring_md,omitempty"`
	ReferringFacility string `gorm:"type:varchar(200)" json:"referring_facility,omitempty"`

	// Transit details
	LatestVS          string    `gorm:"type:text" json:"latest_vs,omitempty"`
	GCS               string    `gorm:"type:varchar(50)" json:"gcs,omitempty"`
	TimeAmbulanceLeft string    `gorm:"type:varchar(20)" json:"time_ambulance_left,omitempty"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Referral *Referral `gorm:"foreignKey:ReferralID" json:"referral,omitempty"`
}

func (TransitInfo) TableName() string {
	return "transit_infos"
}
