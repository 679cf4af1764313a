package converter

import (
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/delivery/dto"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"

	"github.com/google/uuid"
)

// ReferralToListItem converts a Referral entity to its list DTO
func ReferralToListItem(referral *entity.Referral) *dto.ReferralListItem {
	if referral == nil {
		return nil
	}

	item := &dto.ReferralListItem{
		ID:                referral.ID,
		ReferralID:        referral.ReferralID,
		PatientFullName:   referral.PatientFullName,
		Age:               referral.Age,
		Gender:            referral.Gender,
		ChiefComplaint:    referral.ChiefComplaint,
		WorkingImpression: referral.WorkingImpression,
		SpecialtyName:     referral.Specialty.Name,
		HospitalName:      referral.Hospital.Name,
		ReferrerName:      referral.ReferrerName,
		Status:            string(referral.Status),
		Priority:          string(referral.Priority),
		IsUrgent:          referral.IsUrgent,
		CreatedAt:         referral.CreatedAt,
	}

	if referral.CreatedBy.ID != uuid.Nil {
		item.CreatedByName = referral.CreatedBy.FullName()
	}
	if referral.AssignedUser != nil {
		item.AssignedToName = referral.AssignedUser.FullName()
	}

	return item
}

// ReferralsToListItems converts a slice of Referral entities to list DTOs
func ReferralsToListItems(referrals []entity.Referral) []dto.ReferralListItem {
	items := make([]dto.ReferralListItem, len(referrals))
	for i, referral := range referrals {
		items[i] = *ReferralToListItem(&referral)
	}
	return items
}

// ReferralToDetailResponse converts a Referral entity with its owned records
// to the detail DTO
func ReferralToDetailResponse(referral *entity.Referral) *dto.ReferralDetailResponse {
	if referral == nil {
		return nil
	}

	response := &dto.ReferralDetailResponse{
		ID:         referral.ID,
		ReferralID: referral.ReferralID,
		Status:     string(referral.Status),
		Priority:   string(referral.Priority),

		ChiefComplaint:        referral.ChiefComplaint,
		PertinentHistory:      referral.PertinentHistory,
		PertinentPhysicalExam: referral.PertinentPhysicalExam,

		BP:    referral.BP,
		HR:    referral.HR,
		RR:    referral.RR,
		Temp:  referral.Temp,
		O2Sat: referral.O2Sat,

		GCSScore:          referral.GCSScore,
		O2Support:         referral.O2Support,
		AdmissionStatus:   referral.AdmissionStatus,
		RTPCRResult:       referral.RTPCRResult,
		WorkingImpression: referral.WorkingImpression,
		ManagementDone:    referral.ManagementDone,

		PatientCategory: referral.PatientCategory,
		HRN:             referral.HRN,
		PatientFullName: referral.PatientFullName,
		CurrentAddress:  referral.CurrentAddress,
		Birthday:        referral.Birthday.Format("2006-01-02"),
		Age:             referral.Age,
		Gender:          referral.Gender,

		SpecialtyID:       referral.SpecialtyID,
		SpecialtyName:     referral.Specialty.Name,
		OtherSpecialty:    referral.OtherSpecialty,
		IsUrgent:          referral.IsUrgent,
		ReasonForReferral: referral.ReasonForReferral,

		HospitalID:           referral.HospitalID,
		HospitalName:         referral.Hospital.Name,
		HospitalLocation:     referral.Hospital.Location,
		HospitalIsInsideCity: referral.Hospital.IsInsideCity,
		ReferrerName:         referral.ReferrerName,
		ReferrerProfession:   referral.ReferrerProfession,
		ReferrerCellphone:    referral.ReferrerCellphone,
		ModeOfTransportation: referral.ModeOfTransportation,

		ConsentSecured: referral.ConsentSecured,
		TriageNotes:    referral.TriageNotes,

		TransitInfo:   TransitInfoToResponse(referral.TransitInfo),
		StatusHistory: StatusHistoriesToResponses(referral.StatusHistory),
		Documents:     DocumentsToResponses(referral.Documents),

		CreatedAt: referral.CreatedAt,
		UpdatedAt: referral.UpdatedAt,
	}

	if referral.TriageDecision != nil {
		response.TriageDecision = string(*referral.TriageDecision)
	}
	if referral.CreatedBy.ID != uuid.Nil {
		response.CreatedByName = referral.CreatedBy.FullName()
	}
	if referral.AssignedUser != nil {
		response.AssignedToName = referral.AssignedUser.FullName()
	}

	return response
}

// StatusHistoryToResponse converts a StatusHistory entity to its DTO
func StatusHistoryToResponse(history *entity.StatusHistory) *dto.StatusHistoryResponse {
	if history == nil {
		return nil
	}
	return &dto.StatusHistoryResponse{
		ID:            history.ID,
		OldStatus:     string(history.OldStatus),
		NewStatus:     string(history.NewStatus),
		ChangedByName: history.ChangedBy.FullName(),
		ChangedAt:     history.ChangedAt,
		Notes:         history.Notes,
	}
}

// StatusHistoriesToResponses converts a slice of StatusHistory entities to DTOs
func StatusHistoriesToResponses(histories []entity.StatusHistory) []dto.StatusHistoryResponse {
	responses := make([]dto.StatusHistoryResponse, len(histories))
	for i, history := range histories {
		responses[i] = *StatusHistoryToResponse(&history)
	}
	return responses
}

// DocumentToResponse converts a Document entity to its DTO
func DocumentToResponse(doc *entity.Document) *dto.DocumentResponse {
	if doc == nil {
		return nil
	}
	return &dto.DocumentResponse{
		ID:             doc.ID,
		ReferralID:     doc.ReferralID,
		DocumentType:   doc.DocumentType,
		Description:    doc.Description,
		FileURL:        doc.FileURL,
		UploadedByName: doc.UploadedBy.FullName(),
		UploadedAt:     doc.UploadedAt,
	}
}

// DocumentsToResponses converts a slice of Document entities to DTOs
func DocumentsToResponses(docs []entity.Document) []dto.DocumentResponse {
	responses := make([]dto.DocumentResponse, len(docs))
	for i, doc := range docs {
		responses[i] = *DocumentToResponse(&doc)
	}
	return responses
}
