package dto

import "time"

// TransitInfoPayload carries transit details, embedded in referral create and
// update requests and usable standalone through the transit-info endpoints.
type TransitInfoPayload struct {
	WatcherName       string `json:"watcher_name" validate:"required,max=200"`
	WatcherAge        int    `json:"watcher_age" validate:"required,min=0"`
	RelationToPatient string `json:"relation_to_patient" validate:"required,max=100"`
	ContactNumber     string `json:"contact_number" validate:"required,max=20"`
	EscortNurse       string `json:"escort_nurse" validate:"max=200"`
	Driver            string `json:"driver" validate:"max=200"`
	ReferringMD       string `json:"referring_md" validate:"max=200"`
	ReferringFacility string `json:"referring_facility" validate:"max=200"`
	LatestVS          string `json:"latest_vs"`
	GCS               string `json:"gcs" validate:"max=50"`
	TimeAmbulanceLeft string `json:"time_ambulance_left" validate:"max=20"`
}

type CreateTransitInfoRequest struct {
	ReferralID uint `json:"referral_id" validate:"required,min=1"`
	TransitInfoPayload
}

type TransitInfoResponse struct {
	ID                uint      `json:"id"`
	ReferralID        uint      `json:"referral_id"`
	ReferralCode      string    `json:"referral_code,omitempty"`
	WatcherName       string    `json:"watcher_name"`
	WatcherAge        int       `json:"watcher_age"`
	RelationToPatient string    `json:"relation_to_patient"`
	ContactNumber     string    `json:"contact_number"`
	EscortNurse       string    `json:"escort_nurse,omitempty"`
	Driver            string    `json:"driver,omitempty"`
	ReferringMD       string    `json:"referring_md,omitempty"`
	ReferringFacility string    `json:"referring_facility,omitempty"`
	LatestVS          string    `json:"latest_vs,omitempty"`
	GCS               string    `json:"gcs,omitempty"`
	TimeAmbulanceLeft string    `json:"time_ambulance_left,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type TransitInfoListResponse struct {
	TransitInfos []TransitInfoResponse `json:"transit_infos"`
	Total        int                   `json:"total"`
}
