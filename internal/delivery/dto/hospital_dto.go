package dto

import "time"

// Request DTOs

type CreateHospitalRequest struct {
	Name          string `json:"name" validate:"required,max=200"`
	IsInsideCity  *bool  `json:"is_inside_city"`
	Location      string `json:"location" validate:"max=100"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number" validate:"max=20"`
}

type UpdateHospitalRequest struct {
	Name          *string `json:"name" validate:"omitempty,max=200"`
	IsInsideCity  *bool   `json:"is_inside_city"`
	Location      *string `json:"location" validate:"omitempty,max=100"`
	Address       *string `json:"address"`
	ContactNumber *string `json:"contact_number" validate:"omitempty,max=20"`
}

type CreateSpecialtyRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

type UpdateSpecialtyRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description"`
}

// Response DTOs

type HospitalResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	IsInsideCity  bool      `json:"is_inside_city"`
	Location      string    `json:"location,omitempty"`
	Address       string    `json:"address,omitempty"`
	ContactNumber string    `json:"contact_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type HospitalListResponse struct {
	Hospitals []HospitalResponse `json:"hospitals"`
	Total     int                `json:"total"`
}

type SpecialtyResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SpecialtyListResponse struct {
	Specialties []SpecialtyResponse `json:"specialties"`
	Total       int                 `json:"total"`
}
