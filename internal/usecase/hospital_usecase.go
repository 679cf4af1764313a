package usecase

import (
	"context"
	"errors"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/converter"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/delivery/dto"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrHospitalNotFound       = errors.New("hospital not found")
	ErrSpecialtyNotFound      = errors.New("specialty not found")
	ErrSpecialtyAlreadyExists = errors.New("specialty name already exists")
	ErrReferenceInUse         = errors.New("record is referenced by existing referrals")
)

type HospitalUsecase interface {
	Create(ctx context.Context, req *dto.CreateHospitalRequest) (*dto.HospitalResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.HospitalResponse, error)
	List(ctx context.Context, search string) (*dto.HospitalListResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateHospitalRequest) (*dto.HospitalResponse, error)
	Delete(ctx context.Context, id uint) error
}

type SpecialtyUsecase interface {
	Create(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.SpecialtyResponse, error)
	List(ctx context.Context, search string) (*dto.SpecialtyListResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	Delete(ctx context.Context, id uint) error
}

type hospitalUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	hospitalRepo repository.HospitalRepository
}

func NewHospitalUsecase(db *gorm.DB, log *logrus.Logger, hospitalRepo repository.HospitalRepository) HospitalUsecase {
	return &hospitalUsecase{
		db:           db,
		log:          log,
		hospitalRepo: hospitalRepo,
	}
}

func (u *hospitalUsecase) Create(ctx context.Context, req *dto.CreateHospitalRequest) (*dto.HospitalResponse, error) {
	hospital := &entity.Hospital{
		Name:          req.Name,
		Location:      req.Location,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
	}
	if req.IsInsideCity != nil {
		hospital.IsInsideCity = *req.IsInsideCity
	}

	if err := u.hospitalRepo.Create(u.db.WithContext(ctx), hospital); err != nil {
		u.log.Warnf("Failed to create hospital: %+v", err)
		return nil, err
	}

	return converter.HospitalToResponse(hospital), nil
}

func (u *hospitalUsecase) GetByID(ctx context.Context, id uint) (*dto.HospitalResponse, error) {
	hospital, err := u.hospitalRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find hospital by ID: %+v", err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}
	return converter.HospitalToResponse(hospital), nil
}

func (u *hospitalUsecase) List(ctx context.Context, search string) (*dto.HospitalListResponse, error) {
	hospitals, err := u.hospitalRepo.FindAll(u.db.WithContext(ctx), search)
	if err != nil {
		u.log.Warnf("Failed to list hospitals: %+v", err)
		return nil, err
	}
	return &dto.HospitalListResponse{
		Hospitals: converter.HospitalsToResponses(hospitals),
		Total:     len(hospitals),
	}, nil
}

func (u *hospitalUsecase) Update(ctx context.Context, id uint, req *dto.UpdateHospitalRequest) (*dto.HospitalResponse, error) {
	hospital, err := u.hospitalRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find hospital by ID: %+v", err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	if req.Name != nil {
		hospital.Name = *req.Name
	}
	if req.IsInsideCity != nil {
		hospital.IsInsideCity = *req.IsInsideCity
	}
	if req.Location != nil {
		hospital.Location = *req.Location
	}
	if req.Address != nil {
		hospital.Address = *req.Address
	}
	if req.ContactNumber != nil {
		hospital.ContactNumber = *req.ContactNumber
	}

	if err := u.hospitalRepo.Update(u.db.WithContext(ctx), hospital); err != nil {
		u.log.Warnf("Failed to update hospital: %+v", err)
		return nil, err
	}

	return converter.HospitalToResponse(hospital), nil
}

func (u *hospitalUsecase) Delete(ctx context.Context, id uint) error {
	hospital, err := u.hospitalRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find hospital by ID: %+v", err)
		return err
	}
	if hospital == nil {
		return ErrHospitalNotFound
	}

	if err := u.hospitalRepo.Delete(u.db.WithContext(ctx), id); err != nil {
		if isForeignKeyError(err, "referrals") {
			return ErrReferenceInUse
		}
		u.log.Warnf("Failed to delete hospital: %+v", err)
		return err
	}
	return nil
}

type specialtyUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	specialtyRepo repository.SpecialtyRepository
}

func NewSpecialtyUsecase(db *gorm.DB, log *logrus.Logger, specialtyRepo repository.SpecialtyRepository) SpecialtyUsecase {
	return &specialtyUsecase{
		db:            db,
		log:           log,
		specialtyRepo: specialtyRepo,
	}
}

func (u *specialtyUsecase) Create(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	specialty := &entity.Specialty{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := u.specialtyRepo.Create(u.db.WithContext(ctx), specialty); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrSpecialtyAlreadyExists
		}
		u.log.Warnf("Failed to create specialty: %+v", err)
		return nil, err
	}

	return converter.SpecialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) GetByID(ctx context.Context, id uint) (*dto.SpecialtyResponse, error) {
	specialty, err := u.specialtyRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find specialty by ID: %+v", err)
		return nil, err
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}
	return converter.SpecialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) List(ctx context.Context, search string) (*dto.SpecialtyListResponse, error) {
	specialties, err := u.specialtyRepo.FindAll(u.db.WithContext(ctx), search)
	if err != nil {
		u.log.Warnf("Failed to list specialties: %+v", err)
		return nil, err
	}
	return &dto.SpecialtyListResponse{
		Specialties: converter.SpecialtiesToResponses(specialties),
		Total:       len(specialties),
	}, nil
}

func (u *specialtyUsecase) Update(ctx context.Context, id uint, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	specialty, err := u.specialtyRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find specialty by ID: %+v", err)
		return nil, err
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}

	if req.Name != nil {
		specialty.Name = *req.Name
	}
	if req.Description != nil {
		specialty.Description = *req.Description
	}

	if err := u.specialtyRepo.Update(u.db.WithContext(ctx), specialty); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrSpecialtyAlreadyExists
		}
		u.log.Warnf("Failed to update specialty: %+v", err)
		return nil, err
	}

	return converter.SpecialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) Delete(ctx context.Context, id uint) error {
	specialty, err := u.specialtyRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find specialty by ID: %+v", err)
		return err
	}
	if specialty == nil {
		return ErrSpecialtyNotFound
	}

	if err := u.specialtyRepo.Delete(u.db.WithContext(ctx), id); err != nil {
		if isForeignKeyError(err, "referrals") {
			return ErrReferenceInUse
		}
		u.log.Warnf("Failed to delete specialty: %+v", err)
		return err
	}
	return nil
}
