package dto

import (
	"time"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"
)

type DashboardStatsResponse struct {
	TotalReferrals        int64 `json:"total_referrals"`
	PendingReferrals      int64 `json:"pending_referrals"`
	InTransitReferrals    int64 `json:"in_transit_referrals"`
	CriticalReferrals     int64 `json:"critical_referrals"`
	UrgentReferrals       int64 `json:"urgent_referrals"`
	EmergentReferrals     int64 `json:"emergent_referrals"`
	UrgentTriageReferrals int64 `json:"urgent_triage_referrals"`
	ScheduledOPDReferrals int64 `json:"scheduled_opd_referrals"`
	RecentReferrals       int64 `json:"recent_referrals"`
}

type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type HospitalVolume struct {
	Name       string  `json:"name"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

type ReportsSummary struct {
	TotalReferrals         int64   `json:"total_referrals"`
	SuccessfulReferrals    int64   `json:"successful_referrals"`
	PendingReferrals       int64   `json:"pending_referrals"`
	CancelledReferrals     int64   `json:"cancelled_referrals"`
	SuccessRate            float64 `json:"success_rate"`
	CancellationRate       float64 `json:"cancellation_rate"`
	RecentReferrals        int64   `json:"recent_referrals"`
	AvgProcessingTimeHours float64 `json:"avg_processing_time_hours"`
}

type ReportsAnalyticsResponse struct {
	Summary               ReportsSummary         `json:"summary"`
	MonthlyTrends         []MonthlyCount         `json:"monthly_trends"`
	TopHospitals          []HospitalVolume       `json:"top_hospitals"`
	StatusDistribution    []entity.StatusCount   `json:"status_distribution"`
	PriorityDistribution  []entity.PriorityCount `json:"priority_distribution"`
	SpecialtyDistribution []entity.NameCount     `json:"specialty_distribution"`
}

type PatientSummaryResponse struct {
	PatientFullName  string    `json:"patient_full_name"`
	Age              int       `json:"age"`
	Gender           string    `json:"gender"`
	HRN              string    `json:"hrn,omitempty"`
	PatientCategory  string    `json:"patient_category"`
	CurrentAddress   string    `json:"current_address"`
	Birthday         string    `json:"birthday"`
	TotalReferrals   int64     `json:"total_referrals"`
	LatestReferralAt time.Time `json:"latest_referral_date"`
	LatestReferralID string    `json:"latest_referral_id"`
	LatestStatus     string    `json:"latest_status"`
	LatestSpecialty  string    `json:"latest_specialty,omitempty"`
	LatestHospital   string    `json:"latest_hospital,omitempty"`
}

type PatientListResponse struct {
	Patients []PatientSummaryResponse `json:"patients"`
	Total    int                      `json:"total"`
}
