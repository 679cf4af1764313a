package repository

import (
	"time"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReferralRepository interface {
	Create(db *gorm.DB, referral *entity.Referral) error
	FindByID(db *gorm.DB, id uint) (*entity.Referral, error)
	FindAll(db *gorm.DB, filter *entity.ReferralFilter) ([]entity.Referral, error)
	FindByPatientName(db *gorm.DB, patientName string) ([]entity.Referral, error)
	LatestByPatientName(db *gorm.DB, patientName string) (*entity.Referral, error)
	Update(db *gorm.DB, referral *entity.Referral) error
	Delete(db *gorm.DB, id uint) error
	// CountCreatedOn counts referrals created on the given calendar day;
	// feeds the REF-YYYYMMDD-NNN sequence.
	CountCreatedOn(db *gorm.DB, day time.Time) (int64, error)
}

type StatusHistoryRepository interface {
	Create(db *gorm.DB, history *entity.StatusHistory) error
	FindByReferralID(db *gorm.DB, referralID uint) ([]entity.StatusHistory, error)
}

type TransitInfoRepository interface {
	Create(db *gorm.DB, info *entity.TransitInfo) error
	FindByID(db *gorm.DB, id uint) (*entity.TransitInfo, error)
	FindByReferralID(db *gorm.DB, referralID uint) (*entity.TransitInfo, error)
	FindAll(db *gorm.DB) ([]entity.TransitInfo, error)
	Update(db *gorm.DB, info *entity.TransitInfo) error
	Delete(db *gorm.DB, id uint) error
}

type DocumentRepository interface {
	Create(db *gorm.DB, doc *entity.Document) error
	FindByReferralID(db *gorm.DB, referralID uint) ([]entity.Document, error)
}

// ReportRepository exposes the read-only aggregates behind the dashboard and
// analytics endpoints. All methods read committed data at call time.
type ReportRepository interface {
	CountAll(db *gorm.DB) (int64, error)
	CountByStatus(db *gorm.DB, status entity.ReferralStatus) (int64, error)
	CountByPriority(db *gorm.DB, priority entity.ReferralPriority) (int64, error)
	CountUrgent(db *gorm.DB) (int64, error)
	CountCreatedSince(db *gorm.DB, since time.Time) (int64, error)
	CountCreatedBetween(db *gorm.DB, start, end time.Time) (int64, error)
	CountAssignedTo(db *gorm.DB, userID uuid.UUID) (int64, error)
	StatusDistribution(db *gorm.DB) ([]entity.StatusCount, error)
	PriorityDistribution(db *gorm.DB) ([]entity.PriorityCount, error)
	TopHospitals(db *gorm.DB, limit int) ([]entity.NameCount, error)
	SpecialtyDistribution(db *gorm.DB, limit int) ([]entity.NameCount, error)
	// AvgProcessingHours is the mean of updated_at - created_at in hours over
	// completed referrals, zero when none exist.
	AvgProcessingHours(db *gorm.DB) (float64, error)
	PatientSummaries(db *gorm.DB) ([]entity.PatientSummary, error)
}
