package converter

import (
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/delivery/dto"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"
)

// HospitalToResponse converts a Hospital entity to HospitalResponse DTO
func HospitalToResponse(hospital *entity.Hospital) *dto.HospitalResponse {
	if hospital == nil {
		return nil
	}
	return &dto.HospitalResponse{
		ID:            hospital.ID,
		Name:          hospital.Name,
		IsInsideCity:  hospital.IsInsideCity,
		Location:      hospital.Location,
		Address:       hospital.Address,
		ContactNumber: hospital.ContactNumber,
		CreatedAt:     hospital.CreatedAt,
		UpdatedAt:     hospital.UpdatedAt,
	}
}

// HospitalsToResponses converts a slice of Hospital entities to DTOs
func HospitalsToResponses(hospitals []entity.Hospital) []dto.HospitalResponse {
	responses := make([]dto.HospitalResponse, len(hospitals))
	for i, hospital := range hospitals {
		responses[i] = *HospitalToResponse(&hospital)
	}
	return responses
}

// SpecialtyToResponse converts a Specialty entity to SpecialtyResponse DTO
func SpecialtyToResponse(specialty *entity.Specialty) *dto.SpecialtyResponse {
	if specialty == nil {
		return nil
	}
	return &dto.SpecialtyResponse{
		ID:          specialty.ID,
		Name:        specialty.Name,
		Description: specialty.Description,
		CreatedAt:   specialty.CreatedAt,
		UpdatedAt:   specialty.UpdatedAt,
	}
}

// SpecialtiesToResponses converts a slice of Specialty entities to DTOs
func SpecialtiesToResponses(specialties []entity.Specialty) []dto.SpecialtyResponse {
	responses := make([]dto.SpecialtyResponse, len(specialties))
	for i, specialty := range specialties {
		responses[i] = *SpecialtyToResponse(&specialty)
	}
	return responses
}
