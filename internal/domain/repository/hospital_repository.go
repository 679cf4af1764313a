package repository

import (
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"

	"gorm.io/gorm"
)

type HospitalRepository interface {
	Create(db *gorm.DB, hospital *entity.Hospital) error
	FindAll(db *gorm.DB, search string) ([]entity.Hospital, error)
	FindByID(db *gorm.DB, id uint) (*entity.Hospital, error)
	Update(db *gorm.DB, hospital *entity.Hospital) error
	Delete(db *gorm.DB, id uint) error
}

type SpecialtyRepository interface {
	Create(db *gorm.DB, specialty *entity.Specialty) error
	FindAll(db *gorm.DB, search string) ([]entity.Specialty, error)
	FindByID(db *gorm.DB, id uint) (*entity.Specialty, error)
	Update(db *gorm.DB, specialty *entity.Specialty) error
	Delete(db *gorm.DB, id uint) error
}
