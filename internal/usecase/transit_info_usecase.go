package usecase

import (
	"context"
	"errors"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/converter"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/delivery/dto"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrTransitInfoNotFound      = errors.New("transit info not found")
	ErrTransitInfoAlreadyExists = errors.New("transit info already exists for this referral")
)

type TransitInfoUsecase interface {
	Create(ctx context.Context, req *dto.CreateTransitInfoRequest) (*dto.TransitInfoResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.TransitInfoResponse, error)
	List(ctx context.Context) (*dto.TransitInfoListResponse, error)
	Update(ctx context.Context, id uint, req *dto.TransitInfoPayload) (*dto.TransitInfoResponse, error)
	Delete(ctx context.Context, id uint) error
}

type transitInfoUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	transitRepo  repository.TransitInfoRepository
	referralRepo repository.ReferralRepository
}

func NewTransitInfoUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	transitRepo repository.TransitInfoRepository,
	referralRepo repository.ReferralRepository,
) TransitInfoUsecase {
	return &transitInfoUsecase{
		db:           db,
		log:          log,
		transitRepo:  transitRepo,
		referralRepo: referralRepo,
	}
}

func (u *transitInfoUsecase) Create(ctx context.Context, req *dto.CreateTransitInfoRequest) (*dto.TransitInfoResponse, error) {
	referral, err := u.referralRepo.FindByID(u.db.WithContext(ctx), req.ReferralID)
	if err != nil {
		u.log.Warnf("Failed to find referral by ID: %+v", err)
		return nil, err
	}
	if referral == nil {
		return nil, ErrReferralNotFound
	}

	info := converter.TransitInfoFromPayload(req.ReferralID, &req.TransitInfoPayload)
	if err := u.transitRepo.Create(u.db.WithContext(ctx), info); err != nil {
		if isDuplicateKeyError(err, "referral_id") {
			return nil, ErrTransitInfoAlreadyExists
		}
		u.log.Warnf("Failed to create transit info: %+v", err)
		return nil, err
	}

	return converter.TransitInfoToResponse(info), nil
}

func (u *transitInfoUsecase) GetByID(ctx context.Context, id uint) (*dto.TransitInfoResponse, error) {
	info, err := u.transitRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find transit info by ID: %+v", err)
		return nil, err
	}
	if info == nil {
		return nil, ErrTransitInfoNotFound
	}
	return converter.TransitInfoToResponse(info), nil
}

func (u *transitInfoUsecase) List(ctx context.Context) (*dto.TransitInfoListResponse, error) {
	infos, err := u.transitRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list transit infos: %+v", err)
		return nil, err
	}
	return &dto.TransitInfoListResponse{
		TransitInfos: converter.TransitInfosToResponses(infos),
		Total:        len(infos),
	}, nil
}

func (u *transitInfoUsecase) Update(ctx context.Context, id uint, req *dto.TransitInfoPayload) (*dto.TransitInfoResponse, error) {
	existing, err := u.transitRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find transit info by ID: %+v", err)
		return nil, err
	}
	if existing == nil {
		return nil, ErrTransitInfoNotFound
	}

	updated := converter.TransitInfoFromPayload(existing.ReferralID, req)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := u.transitRepo.Update(u.db.WithContext(ctx), updated); err != nil {
		u.log.Warnf("Failed to update transit info: %+v", err)
		return nil, err
	}

	return converter.TransitInfoToResponse(updated), nil
}

func (u *transitInfoUsecase) Delete(ctx context.Context, id uint) error {
	existing, err := u.transitRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find transit info by ID: %+v", err)
		return err
	}
	if existing == nil {
		return ErrTransitInfoNotFound
	}

	if err := u.transitRepo.Delete(u.db.WithContext(ctx), id); err != nil {
		u.log.Warnf("Failed to delete transit info: %+v", err)
		return err
	}
	return nil
}
