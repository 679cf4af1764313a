package usecase

import (
	"context"
	"errors"
	"io"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/converter"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/delivery/dto"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/delivery/http/middleware"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/repository"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/infrastructure/storage"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrInvalidDocumentType = errors.New("invalid document type")

type DocumentUsecase interface {
	Upload(ctx context.Context, referralID uint, documentType, description, filename string, file io.Reader) (*dto.DocumentResponse, error)
	ListByReferral(ctx context.Context, referralID uint) (*dto.DocumentListResponse, error)
}

type documentUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	documentRepo repository.DocumentRepository
	referralRepo repository.ReferralRepository
	fileStore    storage.FileStore
}

func NewDocumentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	documentRepo repository.DocumentRepository,
	referralRepo repository.ReferralRepository,
	fileStore storage.FileStore,
) DocumentUsecase {
	return &documentUsecase{
		db:           db,
		log:          log,
		documentRepo: documentRepo,
		referralRepo: referralRepo,
		fileStore:    fileStore,
	}
}

// Upload pushes the file to the external store first and records the
// metadata row only after the upload succeeds.
func (u *documentUsecase) Upload(ctx context.Context, referralID uint, documentType, description, filename string, file io.Reader) (*dto.DocumentResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	switch documentType {
	case entity.DocumentTypeLaboratory, entity.DocumentTypeImage, entity.DocumentTypeOther:
	default:
		return nil, ErrInvalidDocumentType
	}

	referral, err := u.referralRepo.FindByID(u.db.WithContext(ctx), referralID)
	if err != nil {
		u.log.Warnf("Failed to find referral by ID: %+v", err)
		return nil, err
	}
	if referral == nil {
		return nil, ErrReferralNotFound
	}

	stored, err := u.fileStore.Put(ctx, file, filename)
	if err != nil {
		u.log.Warnf("Failed to upload document: %+v", err)
		return nil, err
	}

	doc := &entity.Document{
		ReferralID:   referralID,
		DocumentType: documentType,
		Description:  description,
		StorageID:    stored.ID,
		FileURL:      stored.URL,
		UploadedByID: actor.UserID,
	}

	if err := u.documentRepo.Create(u.db.WithContext(ctx), doc); err != nil {
		u.log.Warnf("Failed to create document record: %+v", err)
		return nil, err
	}

	return converter.DocumentToResponse(doc), nil
}

func (u *documentUsecase) ListByReferral(ctx context.Context, referralID uint) (*dto.DocumentListResponse, error) {
	referral, err := u.referralRepo.FindByID(u.db.WithContext(ctx), referralID)
	if err != nil {
		u.log.Warnf("Failed to find referral by ID: %+v", err)
		return nil, err
	}
	if referral == nil {
		return nil, ErrReferralNotFound
	}

	docs, err := u.documentRepo.FindByReferralID(u.db.WithContext(ctx), referralID)
	if err != nil {
		u.log.Warnf("Failed to list documents: %+v", err)
		return nil, err
	}

	return &dto.DocumentListResponse{
		Documents: converter.DocumentsToResponses(docs),
		Total:     len(docs),
	}, nil
}
