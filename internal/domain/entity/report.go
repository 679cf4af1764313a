package entity

import "time"

// StatusCount is a group-by-count row over referral status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// PriorityCount is a group-by-count row over referral priority.
type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int64  `json:"count"`
}

// NameCount is a group-by-count row keyed by a reference-data name
// (hospital, specialty).
type NameCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// PatientSummary aggregates referrals sharing a patient name.
type PatientSummary struct {
	PatientFullName string    `json:"patient_full_name"`
	TotalReferrals  int64     `json:"total_referrals"`
	LatestReferral  time.Time `json:"latest_referral_date"`
}
