package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReferralStatus represents the workflow status of a referral
type ReferralStatus string

const (
	ReferralStatusPending     ReferralStatus = "pending"
	ReferralStatusInTransit   ReferralStatus = "in_transit"
	ReferralStatusWaiting     ReferralStatus = "waiting"
	ReferralStatusAccepted    ReferralStatus = "accepted"
	ReferralStatusEmergent    ReferralStatus = "emergent"
	ReferralStatusUrgent      ReferralStatus = "urgent"
	ReferralStatusScheduleOPD ReferralStatus = "schedule_opd"
	ReferralStatusCompleted   ReferralStatus = "completed"
	ReferralStatusCancelled   ReferralStatus = "cancelled"
)

// Valid reports whether s is one of the enumerated statuses.
func (s ReferralStatus) Valid() bool {
	switch s {
	case ReferralStatusPending, ReferralStatusInTransit, ReferralStatusWaiting,
		ReferralStatusAccepted, ReferralStatusEmergent, ReferralStatusUrgent,
		ReferralStatusScheduleOPD, ReferralStatusCompleted, ReferralStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s ends the workflow.
func (s ReferralStatus) Terminal() bool {
	return s == ReferralStatusCompleted || s == ReferralStatusCancelled
}

// TriageDecision is the call-triage categorization of urgency. The decision
// value doubles as the resulting referral status.
type TriageDecision string

const (
	TriageDecisionEmergent    TriageDecision = "emergent"
	TriageDecisionUrgent      TriageDecision = "urgent"
	TriageDecisionScheduleOPD TriageDecision = "schedule_opd"
)

func (d TriageDecision) Valid() bool {
	switch d {
	case TriageDecisionEmergent, TriageDecisionUrgent, TriageDecisionScheduleOPD:
		return true
	}
	return false
}

// ReferralPriority represents the referral priority level
type ReferralPriority string

const (
	PriorityRoutine  ReferralPriority = "routine"
	PriorityUrgent   ReferralPriority = "urgent"
	PriorityCritical ReferralPriority = "critical"
)

func (p ReferralPriority) Valid() bool {
	switch p {
	case PriorityRoutine, PriorityUrgent, PriorityCritical:
		return true
	}
	return false
}

// Admission status choices
const (
	AdmissionEmergencyRoom     = "emergency_room"
	AdmissionWard              = "ward"
	AdmissionIntensiveCareUnit = "intensive_care_unit"
)

// RT-PCR result choices
const (
	RTPCRPositive = "positive"
	RTPCRNegative = "negative"
	RTPCRNotDone  = "not_done"
)

// Patient category choices
const (
	PatientCategoryNew   = "new_patient"
	PatientCategoryKnown = "known_patient"
)

// Referral is the aggregate root of the intake and triage workflow. It owns
// its TransitInfo, StatusHistory entries and Documents.
type Referral struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ReferralID string         `gorm:"type:varchar(20);uniqueIndex;not null" json:"referral_id"`
	Status     ReferralStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Priority   ReferralPriority `gorm:"type:varchar(20);not null;default:'routine';index" json:"priority"`

	// Patient status information
	ChiefComplaint        string `gorm:"type:text;not null" json:"chief_complaint"`
	PertinentHistory      string `gorm:"type:text" json:"pertinent_history"`
	PertinentPhysicalExam string `gorm:"type:text" json:"pertinent_physical_exam"`

	// Vital signs
	BP    string          `gorm:"type:varchar(20)" json:"bp"`
	HR    int             `json:"hr"`
	RR    int             `json:"rr"`
	Temp  decimal.Decimal `gorm:"type:decimal(4,1)" json:"temp"`
	O2Sat int             `json:"o2_sat"`

	GCSScore          string `gorm:"type:varchar(50)" json:"gcs_score"`
	O2Support         string `gorm:"type:varchar(100)" json:"o2_support"`
	AdmissionStatus   string `gorm:"type:varchar(30)" json:"admission_status"`
	RTPCRResult       string `gorm:"type:varchar(20)" json:"rtpcr_result"`
	WorkingImpression string `gorm:"type:text" json:"working_impression"`
	ManagementDone    string `gorm:"type:text" json:"management_done"`

	// Patient general information
	PatientCategory string    `gorm:"type:varchar(20)" json:"patient_category"`
	HRN             string    `gorm:"type:varchar(50)" json:"hrn,omitempty"`
	PatientFullName string    `gorm:"type:varchar(200);not null;index" json:"patient_full_name"`
	CurrentAddress  string    `gorm:"type:text" json:"current_address"`
	Birthday        time.Time `gorm:"type:date" json:"birthday"`
	Age             int       `json:"age"`
	Gender          string    `gorm:"type:varchar(10)" json:"gender"`

	// Specialty needed
	SpecialtyID       uint   `gorm:"not null;index" json:"specialty_id"`
	OtherSpecialty    string `gorm:"type:varchar(100)" json:"other_specialty,omitempty"`
	IsUrgent          bool   `gorm:"not null;default:false;index" json:"is_urgent"`
	ReasonForReferral string `gorm:"type:text" json:"reason_for_referral"`

	// Referring hospital information
	HospitalID           uint   `gorm:"not null;index" json:"hospital_id"`
	ReferrerName         string `gorm:"type:varchar(200)" json:"referrer_name"`
	ReferrerProfession   string `gorm:"type:varchar(100)" json:"referrer_profession"`
	ReferrerCellphone    string `gorm:"type:varchar(20)" json:"referrer_cellphone"`
	ModeOfTransportation string `gorm:"type:varchar(100)" json:"mode_of_transportation"`

	ConsentSecured bool `gorm:"not null;default:false" json:"consent_secured"`

	// Triage outcome, set only by the triage-decide action
	TriageDecision *TriageDecision `gorm:"type:varchar(20)" json:"triage_decision,omitempty"`
	TriageNotes    string          `gorm:"type:text" json:"triage_notes,omitempty"`

	// System fields
	CreatedByID uuid.UUID  `gorm:"type:uuid;not null;index" json:"created_by_id"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid;index" json:"assigned_to,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Specialty      Specialty       `gorm:"foreignKey:SpecialtyID" json:"specialty,omitempty"`
	Hospital       Hospital        `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	CreatedBy      User            `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	AssignedUser   *User           `gorm:"foreignKey:AssignedTo" json:"assigned_user,omitempty"`
	TransitInfo    *TransitInfo    `gorm:"foreignKey:ReferralID;constraint:OnDelete:CASCADE" json:"transit_info,omitempty"`
	StatusHistory  []StatusHistory `gorm:"foreignKey:ReferralID;constraint:OnDelete:CASCADE" json:"status_history,omitempty"`
	Documents      []Document      `gorm:"foreignKey:ReferralID;constraint:OnDelete:CASCADE" json:"documents,omitempty"`
}

func (Referral) TableName() string {
	return "referrals"
}

// IsPending checks if the referral has not yet been forwarded to triage
func (r *Referral) IsPending() bool {
	return r.Status == ReferralStatusPending
}

// IsCompleted checks if the referral reached the completed terminal state
func (r *Referral) IsCompleted() bool {
	return r.Status == ReferralStatusCompleted
}

// IsCancelled checks if the referral was cancelled
func (r *Referral) IsCancelled() bool {
	return r.Status == ReferralStatusCancelled
}
