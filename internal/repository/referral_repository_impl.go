package repository

import (
	"errors"
	"time"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"
	domainRepo "github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/repository"

	"gorm.io/gorm"
)

type referralRepository struct{}

func NewReferralRepository() domainRepo.ReferralRepository {
	return &referralRepository{}
}

func (r *referralRepository) Create(db *gorm.DB, referral *entity.Referral) error {
	return db.Create(referral).Error
}

func (r *referralRepository) FindByID(db *gorm.DB, id uint) (*entity.Referral, error) {
	var referral entity.Referral
	err := db.Preload("Specialty").
		Preload("Hospital").
		Preload("CreatedBy").
		Preload("AssignedUser").
		Preload("TransitInfo").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("changed_at DESC")
		}).
		Preload("StatusHistory.ChangedBy").
		Preload("Documents").
		Preload("Documents.UploadedBy").
		Where("id = ?", id).First(&referral).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &referral, nil
}

func (r *referralRepository) FindAll(db *gorm.DB, filter *entity.ReferralFilter) ([]entity.Referral, error) {
	var referrals []entity.Referral
	query := db.Preload("Specialty").
		Preload("Hospital").
		Preload("CreatedBy").
		Preload("AssignedUser").
		Order("created_at DESC")

	if filter != nil {
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		if filter.Priority != "" {
			query = query.Where("priority = ?", filter.Priority)
		}
		if filter.IsUrgent != nil {
			query = query.Where("is_urgent = ?", *filter.IsUrgent)
		}
		if filter.Gender != "" {
			query = query.Where("gender = ?", filter.Gender)
		}
		if filter.SpecialtyID != 0 {
			query = query.Where("specialty_id = ?", filter.SpecialtyID)
		}
		if filter.HospitalID != 0 {
			query = query.Where("hospital_id = ?", filter.HospitalID)
		}
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			query = query.Where(
				"referral_id ILIKE ? OR patient_full_name ILIKE ? OR hrn ILIKE ? OR chief_complaint ILIKE ? OR referrer_name ILIKE ? OR referrer_cellphone ILIKE ?",
				pattern, pattern, pattern, pattern, pattern, pattern,
			)
		}
		if filter.StartDate != "" {
			query = query.Where("created_at::date >= ?", filter.StartDate)
		}
		if filter.EndDate != "" {
			query = query.Where("created_at::date <= ?", filter.EndDate)
		}
		if filter.AssignedTo != nil {
			query = query.Where("assigned_to = ?", *filter.AssignedTo)
		}
	}

	if err := query.Find(&referrals).Error; err != nil {
		return nil, err
	}
	return referrals, nil
}

func (r *referralRepository) FindByPatientName(db *gorm.DB, patientName string) ([]entity.Referral, error) {
	var referrals []entity.Referral
	err := db.Preload("Specialty").
		Preload("Hospital").
		Where("patient_full_name = ?", patientName).
		Order("created_at DESC").
		Find(&referrals).Error
	if err != nil {
		return nil, err
	}
	return referrals, nil
}

func (r *referralRepository) LatestByPatientName(db *gorm.DB, patientName string) (*entity.Referral, error) {
	var referral entity.Referral
	err := db.Preload("Specialty").
		Preload("Hospital").
		Where("patient_full_name = ?", patientName).
		Order("created_at DESC").
		First(&referral).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &referral, nil
}

func (r *referralRepository) Update(db *gorm.DB, referral *entity.Referral) error {
	return db.Save(referral).Error
}

func (r *referralRepository) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&entity.Referral{}, id).Error
}

func (r *referralRepository) CountCreatedOn(db *gorm.DB, day time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Referral{}).
		Where("created_at::date = ?", day.Format("2006-01-02")).
		Count(&count).Error
	return count, err
}

type statusHistoryRepository struct{}

func NewStatusHistoryRepository() domainRepo.StatusHistoryRepository {
	return &statusHistoryRepository{}
}

func (r *statusHistoryRepository) Create(db *gorm.DB, history *entity.StatusHistory) error {
	return db.Create(history).Error
}

func (r *statusHistoryRepository) FindByReferralID(db *gorm.DB, referralID uint) ([]entity.StatusHistory, error) {
	var histories []entity.StatusHistory
	err := db.Preload("ChangedBy").
		Where("referral_id = ?", referralID).
		Order("changed_at DESC").
		Find(&histories).Error
	if err != nil {
		return nil, err
	}
	return histories, nil
}

type transitInfoRepository struct{}

func NewTransitInfoRepository() domainRepo.TransitInfoRepository {
	return &transitInfoRepository{}
}

func (r *transitInfoRepository) Create(db *gorm.DB, info *entity.TransitInfo) error {
	return db.Create(info).Error
}

func (r *transitInfoRepository) FindByID(db *gorm.DB, id uint) (*entity.TransitInfo, error) {
	var info entity.TransitInfo
	err := db.Preload("Referral").Where("id = ?", id).First(&info).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

func (r *transitInfoRepository) FindByReferralID(db *gorm.DB, referralID uint) (*entity.TransitInfo, error) {
	var info entity.TransitInfo
	err := db.Where("referral_id = ?", referralID).First(&info).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

func (r *transitInfoRepository) FindAll(db *gorm.DB) ([]entity.TransitInfo, error) {
	var infos []entity.TransitInfo
	if err := db.Preload("Referral").Order("created_at DESC").Find(&infos).Error; err != nil {
		return nil, err
	}
	return infos, nil
}

func (r *transitInfoRepository) Update(db *gorm.DB, info *entity.TransitInfo) error {
	return db.Save(info).Error
}

func (r *transitInfoRepository) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&entity.TransitInfo{}, id).Error
}

type documentRepository struct{}

func NewDocumentRepository() domainRepo.DocumentRepository {
	return &documentRepository{}
}

func (r *documentRepository) Create(db *gorm.DB, doc *entity.Document) error {
	return db.Create(doc).Error
}

func (r *documentRepository) FindByReferralID(db *gorm.DB, referralID uint) ([]entity.Document, error) {
	var docs []entity.Document
	err := db.Preload("UploadedBy").
		Where("referral_id = ?", referralID).
		Order("uploaded_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}
