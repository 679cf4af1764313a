package entity

import "github.com/google/uuid"

// ReferralFilter is a domain-level filter for querying referrals.
// Used by repository layer to avoid coupling with delivery DTOs.
type ReferralFilter struct {
	Status      string
	Priority    string
	IsUrgent    *bool
	Gender      string
	SpecialtyID uint
	HospitalID  uint
	Search      string // matches referral_id, patient name, hrn, complaint, referrer
	StartDate   string // Format: YYYY-MM-DD
	EndDate     string // Format: YYYY-MM-DD
	AssignedTo  *uuid.UUID
}
