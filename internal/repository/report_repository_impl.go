package repository

import (
	"time"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"
	domainRepo "github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reportRepository struct{}

func NewReportRepository() domainRepo.ReportRepository {
	return &reportRepository{}
}

func (r *reportRepository) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Referral{}).Count(&count).Error
	return count, err
}

func (r *reportRepository) CountByStatus(db *gorm.DB, status entity.ReferralStatus) (int64, error) {
	var count int64
	err := db.Model(&entity.Referral{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *reportRepository) CountByPriority(db *gorm.DB, priority entity.ReferralPriority) (int64, error) {
	var count int64
	err := db.Model(&entity.Referral{}).Where("priority = ?", priority).Count(&count).Error
	return count, err
}

func (r *reportRepository) CountUrgent(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&entity.Referral{}).Where("is_urgent = ?", true).Count(&count).Error
	return count, err
}

func (r *reportRepository) CountCreatedSince(db *gorm.DB, since time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Referral{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

func (r *reportRepository) CountCreatedBetween(db *gorm.DB, start, end time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Referral{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	return count, err
}

func (r *reportRepository) CountAssignedTo(db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.Referral{}).Where("assigned_to = ?", userID).Count(&count).Error
	return count, err
}

func (r *reportRepository) StatusDistribution(db *gorm.DB) ([]entity.StatusCount, error) {
	var rows []entity.StatusCount
	err := db.Model(&entity.Referral{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) PriorityDistribution(db *gorm.DB) ([]entity.PriorityCount, error) {
	var rows []entity.PriorityCount
	err := db.Model(&entity.Referral{}).
		Select("priority, COUNT(*) AS count").
		Group("priority").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) TopHospitals(db *gorm.DB, limit int) ([]entity.NameCount, error) {
	var rows []entity.NameCount
	err := db.Model(&entity.Referral{}).
		Select("hospitals.name AS name, COUNT(*) AS count").
		Joins("JOIN hospitals ON hospitals.id = referrals.hospital_id").
		Group("hospitals.name").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) SpecialtyDistribution(db *gorm.DB, limit int) ([]entity.NameCount, error) {
	var rows []entity.NameCount
	err := db.Model(&entity.Referral{}).
		Select("specialties.name AS name, COUNT(*) AS count").
		Joins("JOIN specialties ON specialties.id = referrals.specialty_id").
		Group("specialties.name").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) AvgProcessingHours(db *gorm.DB) (float64, error) {
	var hours float64
	err := db.Model(&entity.Referral{}).
		Select("COALESCE(AVG(EXTRACT(EPOCH FROM (updated_at - created_at)) / 3600), 0)").
		Where("status = ?", entity.ReferralStatusCompleted).
		Scan(&hours).Error
	return hours, err
}

func (r *reportRepository) PatientSummaries(db *gorm.DB) ([]entity.PatientSummary, error) {
	var rows []entity.PatientSummary
	err := db.Model(&entity.Referral{}).
		Select("patient_full_name, COUNT(*) AS total_referrals, MAX(created_at) AS latest_referral").
		Group("patient_full_name").
		Order("latest_referral DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
