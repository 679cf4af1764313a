package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateReferralRequest struct {
	Priority string `json:"priority" validate:"omitempty,oneof=routine urgent critical"`

	ChiefComplaint        string `json:"chief_complaint" validate:"required"`
	PertinentHistory      string `json:"pertinent_history" validate:"required"`
	PertinentPhysicalExam string `json:"pertinent_physical_exam" validate:"required"`

	BP    string          `json:"bp" validate:"required,max=20"`
	HR    int             `json:"hr" validate:"required"`
	RR    int             `json:"rr" validate:"required"`
	Temp  decimal.Decimal `json:"temp" validate:"required"`
	O2Sat int             `json:"o2_sat" validate:"required"`

	GCSScore          string `json:"gcs_score" validate:"required,max=50"`
	O2Support         string `json:"o2_support" validate:"required,max=100"`
	AdmissionStatus   string `json:"admission_status" validate:"required,oneof=emergency_room ward intensive_care_unit"`
	RTPCRResult       string `json:"rtpcr_result" validate:"required,oneof=positive negative not_done"`
	WorkingImpression string `json:"working_impression" validate:"required"`
	ManagementDone    string `json:"management_done" validate:"required"`

	PatientCategory string `json:"patient_category" validate:"required,oneof=new_patient known_patient"`
	HRN             string `json:"hrn" validate:"max=50"`
	PatientFullName string `json:"patient_full_name" validate:"required,max=200"`
	CurrentAddress  string `json:"current_address" validate:"required"`
	Birthday        string `json:"birthday" validate:"required"`
	Age             int    `json:"age" validate:"required,min=0"`
	Gender          string `json:"gender" validate:"required,oneof=male female"`

	SpecialtyID       uint   `json:"specialty_id" validate:"required,min=1"`
	OtherSpecialty    string `json:"other_specialty" validate:"max=100"`
	IsUrgent          bool   `json:"is_urgent"`
	ReasonForReferral string `json:"reason_for_referral" validate:"required"`

	HospitalID           uint   `json:"hospital_id" validate:"required,min=1"`
	ReferrerName         string `json:"referrer_name" validate:"required,max=200"`
	ReferrerProfession   string `json:"referrer_profession" validate:"required,max=100"`
	ReferrerCellphone    string `json:"referrer_cellphone" validate:"required,max=20"`
	ModeOfTransportation string `json:"mode_of_transportation" validate:"required,max=100"`

	ConsentSecured bool `json:"consent_secured"`

	TransitInfo *TransitInfoPayload `json:"transit_info" validate:"omitempty"`
}

// UpdateReferralRequest is the explicit allow-list of editable referral
// fields. Identifier, creator and audit timestamps are not reachable here.
type UpdateReferralRequest struct {
	Priority *string `json:"priority" validate:"omitempty,oneof=routine urgent critical"`

	ChiefComplaint        *string `json:"chief_complaint"`
	PertinentHistory      *string `json:"pertinent_history"`
	PertinentPhysicalExam *string `json:"pertinent_physical_exam"`

	BP    *string          `json:"bp" validate:"omitempty,max=20"`
	HR    *int             `json:"hr"`
	RR    *int             `json:"rr"`
	Temp  *decimal.Decimal `json:"temp"`
	O2Sat *int             `json:"o2_sat"`

	GCSScore          *string `json:"gcs_score" validate:"omitempty,max=50"`
	O2Support         *string `json:"o2_support" validate:"omitempty,max=100"`
	AdmissionStatus   *string `json:"admission_status" validate:"omitempty,oneof=emergency_room ward intensive_care_unit"`
	RTPCRResult       *string `json:"rtpcr_result" validate:"omitempty,oneof=positive negative not_done"`
	WorkingImpression *string `json:"working_impression"`
	ManagementDone    *string `json:"management_done"`

	PatientCategory *string `json:"patient_category" validate:"omitempty,oneof=new_patient known_patient"`
	HRN             *string `json:"hrn" validate:"omitempty,max=50"`
	PatientFullName *string `json:"patient_full_name" validate:"omitempty,max=200"`
	CurrentAddress  *string `json:"current_address"`
	Birthday        *string `json:"birthday"`
	Age             *int    `json:"age" validate:"omitempty,min=0"`
	Gender          *string `json:"gender" validate:"omitempty,oneof=male female"`

	SpecialtyID       *uint   `json:"specialty_id" validate:"omitempty,min=1"`
	OtherSpecialty    *string `json:"other_specialty" validate:"omitempty,max=100"`
	IsUrgent          *bool   `json:"is_urgent"`
	ReasonForReferral *string `json:"reason_for_referral"`

	HospitalID           *uint   `json:"hospital_id" validate:"omitempty,min=1"`
	ReferrerName         *string `json:"referrer_name" validate:"omitempty,max=200"`
	ReferrerProfession   *string `json:"referrer_profession" validate:"omitempty,max=100"`
	ReferrerCellphone    *string `json:"referrer_cellphone" validate:"omitempty,max=20"`
	ModeOfTransportation *string `json:"mode_of_transportation" validate:"omitempty,max=100"`

	ConsentSecured *bool `json:"consent_secured"`

	TransitInfo *TransitInfoPayload `json:"transit_info" validate:"omitempty"`
}

type StatusUpdateRequest struct {
	NewStatus string `json:"new_status" validate:"required"`
	Notes     string `json:"notes"`
}

type TriageDecisionRequest struct {
	TriageDecision string `json:"triage_decision" validate:"required"`
	TriageNotes    string `json:"triage_notes"`
}

// Response DTOs

type ReferralListItem struct {
	ID                uint      `json:"id"`
	ReferralID        string    `json:"referral_id"`
	PatientFullName   string    `json:"patient_full_name"`
	Age               int       `json:"age"`
	Gender            string    `json:"gender"`
	ChiefComplaint    string    `json:"chief_complaint"`
	WorkingImpression string    `json:"working_impression"`
	SpecialtyName     string    `json:"specialty_name"`
	HospitalName      string    `json:"hospital_name"`
	ReferrerName      string    `json:"referrer_name"`
	Status            string    `json:"status"`
	Priority          string    `json:"priority"`
	IsUrgent          bool      `json:"is_urgent"`
	CreatedAt         time.Time `json:"created_at"`
	CreatedByName     string    `json:"created_by_name,omitempty"`
	AssignedToName    string    `json:"assigned_to_name,omitempty"`
}

type ReferralListResponse struct {
	Referrals []ReferralListItem `json:"referrals"`
	Total     int                `json:"total"`
}

type StatusHistoryResponse struct {
	ID            uint      `json:"id"`
	OldStatus     string    `json:"old_status"`
	NewStatus     string    `json:"new_status"`
	ChangedByName string    `json:"changed_by_name"`
	ChangedAt     time.Time `json:"changed_at"`
	Notes         string    `json:"notes,omitempty"`
}

type DocumentResponse struct {
	ID             uint      `json:"id"`
	ReferralID     uint      `json:"referral_id"`
	DocumentType   string    `json:"document_type"`
	Description    string    `json:"description,omitempty"`
	FileURL        string    `json:"file_url"`
	UploadedByName string    `json:"uploaded_by_name"`
	UploadedAt     time.Time `json:"uploaded_at"`
}

type DocumentListResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Total     int                `json:"total"`
}

type ReferralDetailResponse struct {
	ID         uint   `json:"id"`
	ReferralID string `json:"referral_id"`
	Status     string `json:"status"`
	Priority   string `json:"priority"`

	ChiefComplaint        string `json:"chief_complaint"`
	PertinentHistory      string `json:"pertinent_history"`
	PertinentPhysicalExam string `json:"pertinent_physical_exam"`

	BP    string          `json:"bp"`
	HR    int             `json:"hr"`
	RR    int             `json:"rr"`
	Temp  decimal.Decimal `json:"temp"`
	O2Sat int             `json:"o2_sat"`

	GCSScore          string `json:"gcs_score"`
	O2Support         string `json:"o2_support"`
	AdmissionStatus   string `json:"admission_status"`
	RTPCRResult       string `json:"rtpcr_result"`
	WorkingImpression string `json:"working_impression"`
	ManagementDone    string `json:"management_done"`

	PatientCategory string `json:"patient_category"`
	HRN             string `json:"hrn,omitempty"`
	PatientFullName string `json:"patient_full_name"`
	CurrentAddress  string `json:"current_address"`
	Birthday        string `json:"birthday"`
	Age             int    `json:"age"`
	Gender          string `json:"gender"`

	SpecialtyID       uint   `json:"specialty_id"`
	SpecialtyName     string `json:"specialty_name"`
	OtherSpecialty    string `json:"other_specialty,omitempty"`
	IsUrgent          bool   `json:"is_urgent"`
	ReasonForReferral string `json:"reason_for_referral"`

	HospitalID           uint   `json:"hospital_id"`
	HospitalName         string `json:"hospital_name"`
	HospitalLocation     string `json:"hospital_location,omitempty"`
	HospitalIsInsideCity bool   `json:"hospital_is_inside_city"`
	ReferrerName         string `json:"referrer_name"`
	ReferrerProfession   string `json:"referrer_profession"`
	ReferrerCellphone    string `json:"referrer_cellphone"`
	ModeOfTransportation string `json:"mode_of_transportation"`

	ConsentSecured bool `json:"consent_secured"`

	TriageDecision string `json:"triage_decision,omitempty"`
	TriageNotes    string `json:"triage_notes,omitempty"`

	CreatedByName  string `json:"created_by_name,omitempty"`
	AssignedToName string `json:"assigned_to_name,omitempty"`

	TransitInfo   *TransitInfoResponse    `json:"transit_info,omitempty"`
	StatusHistory []StatusHistoryResponse `json:"status_history"`
	Documents     []DocumentResponse      `json:"documents"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkflowActionResponse echoes the outcome of a workflow action.
type WorkflowActionResponse struct {
	Message        string `json:"message"`
	NewStatus      string `json:"new_status,omitempty"`
	TriageDecision string `json:"triage_decision,omitempty"`
	AssignedTo     string `json:"assigned_to,omitempty"`
}
