package usecase

import (
	"context"
	"math"
	"time"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/converter"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/delivery/dto"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Leaderboard caps for the analytics payload.
const (
	topHospitalLimit   = 5
	specialtyDistLimit = 10
)

// Recency windows. The dashboard counter covers the last day, the analytics
// summary the last week.
const (
	dashboardRecentWindow = 24 * time.Hour
	analyticsRecentWindow = 7 * 24 * time.Hour
)

type ReportUsecase interface {
	DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
	ReportsAnalytics(ctx context.Context) (*dto.ReportsAnalyticsResponse, error)
	Patients(ctx context.Context) (*dto.PatientListResponse, error)
	PatientHistory(ctx context.Context, patientName string) (*dto.ReferralListResponse, error)
}

type reportUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	reportRepo   repository.ReportRepository
	referralRepo repository.ReferralRepository
}

func NewReportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	reportRepo repository.ReportRepository,
	referralRepo repository.ReferralRepository,
) ReportUsecase {
	return &reportUsecase{
		db:           db,
		log:          log,
		reportRepo:   reportRepo,
		referralRepo: referralRepo,
	}
}

// DashboardStats computes the landing-page counters. Recent means the last
// 24 hours.
func (u *reportUsecase) DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	db := u.db.WithContext(ctx)
	stats := &dto.DashboardStatsResponse{}

	var err error
	if stats.TotalReferrals, err = u.reportRepo.CountAll(db); err != nil {
		return nil, u.logged("count total referrals", err)
	}
	if stats.PendingReferrals, err = u.reportRepo.CountByStatus(db, entity.ReferralStatusPending); err != nil {
		return nil, u.logged("count pending referrals", err)
	}
	if stats.InTransitReferrals, err = u.reportRepo.CountByStatus(db, entity.ReferralStatusInTransit); err != nil {
		return nil, u.logged("count in-transit referrals", err)
	}
	if stats.CriticalReferrals, err = u.reportRepo.CountByPriority(db, entity.PriorityCritical); err != nil {
		return nil, u.logged("count critical referrals", err)
	}
	if stats.UrgentReferrals, err = u.reportRepo.CountUrgent(db); err != nil {
		return nil, u.logged("count urgent referrals", err)
	}
	if stats.EmergentReferrals, err = u.reportRepo.CountByStatus(db, entity.ReferralStatusEmergent); err != nil {
		return nil, u.logged("count emergent referrals", err)
	}
	if stats.UrgentTriageReferrals, err = u.reportRepo.CountByStatus(db, entity.ReferralStatusUrgent); err != nil {
		return nil, u.logged("count urgent-triage referrals", err)
	}
	if stats.ScheduledOPDReferrals, err = u.reportRepo.CountByStatus(db, entity.ReferralStatusScheduleOPD); err != nil {
		return nil, u.logged("count scheduled-OPD referrals", err)
	}
	if stats.RecentReferrals, err = u.reportRepo.CountCreatedSince(db, time.Now().Add(-dashboardRecentWindow)); err != nil {
		return nil, u.logged("count recent referrals", err)
	}

	return stats, nil
}

// ReportsAnalytics assembles the full analytics payload. Rates are
// percentages rounded to one decimal and zero when no referrals exist.
func (u *reportUsecase) ReportsAnalytics(ctx context.Context) (*dto.ReportsAnalyticsResponse, error) {
	db := u.db.WithContext(ctx)

	total, err := u.reportRepo.CountAll(db)
	if err != nil {
		return nil, u.logged("count total referrals", err)
	}
	completed, err := u.reportRepo.CountByStatus(db, entity.ReferralStatusCompleted)
	if err != nil {
		return nil, u.logged("count completed referrals", err)
	}
	pending, err := u.reportRepo.CountByStatus(db, entity.ReferralStatusPending)
	if err != nil {
		return nil, u.logged("count pending referrals", err)
	}
	cancelled, err := u.reportRepo.CountByStatus(db, entity.ReferralStatusCancelled)
	if err != nil {
		return nil, u.logged("count cancelled referrals", err)
	}
	recent, err := u.reportRepo.CountCreatedSince(db, time.Now().Add(-analyticsRecentWindow))
	if err != nil {
		return nil, u.logged("count recent referrals", err)
	}
	avgHours, err := u.reportRepo.AvgProcessingHours(db)
	if err != nil {
		return nil, u.logged("compute average processing time", err)
	}

	trends, err := u.monthlyTrends(db, time.Now())
	if err != nil {
		return nil, err
	}

	hospitals, err := u.reportRepo.TopHospitals(db, topHospitalLimit)
	if err != nil {
		return nil, u.logged("compute top hospitals", err)
	}
	topHospitals := make([]dto.HospitalVolume, len(hospitals))
	for i, h := range hospitals {
		topHospitals[i] = dto.HospitalVolume{
			Name:       h.Name,
			Count:      h.Count,
			Percentage: percentage(h.Count, total),
		}
	}

	statusDist, err := u.reportRepo.StatusDistribution(db)
	if err != nil {
		return nil, u.logged("compute status distribution", err)
	}
	priorityDist, err := u.reportRepo.PriorityDistribution(db)
	if err != nil {
		return nil, u.logged("compute priority distribution", err)
	}
	specialtyDist, err := u.reportRepo.SpecialtyDistribution(db, specialtyDistLimit)
	if err != nil {
		return nil, u.logged("compute specialty distribution", err)
	}

	return &dto.ReportsAnalyticsResponse{
		Summary: dto.ReportsSummary{
			TotalReferrals:         total,
			SuccessfulReferrals:    completed,
			PendingReferrals:       pending,
			CancelledReferrals:     cancelled,
			SuccessRate:            percentage(completed, total),
			CancellationRate:       percentage(cancelled, total),
			RecentReferrals:        recent,
			AvgProcessingTimeHours: round1(avgHours),
		},
		MonthlyTrends:         trends,
		TopHospitals:          topHospitals,
		StatusDistribution:    statusDist,
		PriorityDistribution:  priorityDist,
		SpecialtyDistribution: specialtyDist,
	}, nil
}

// monthlyTrends counts referrals per calendar month over the trailing six
// months, ordered oldest first.
func (u *reportUsecase) monthlyTrends(db *gorm.DB, now time.Time) ([]dto.MonthlyCount, error) {
	trends := make([]dto.MonthlyCount, 0, 6)
	for i := 5; i >= 0; i-- {
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		count, err := u.reportRepo.CountCreatedBetween(db, start, end)
		if err != nil {
			return nil, u.logged("count monthly referrals", err)
		}
		trends = append(trends, dto.MonthlyCount{
			Month: start.Format("January 2006"),
			Count: count,
		})
	}
	return trends, nil
}

// Patients lists distinct patients by name with their referral volume and
// the details of the most recent referral.
func (u *reportUsecase) Patients(ctx context.Context) (*dto.PatientListResponse, error) {
	db := u.db.WithContext(ctx)

	summaries, err := u.reportRepo.PatientSummaries(db)
	if err != nil {
		return nil, u.logged("list patient summaries", err)
	}

	patients := make([]dto.PatientSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		latest, err := u.referralRepo.LatestByPatientName(db, summary.PatientFullName)
		if err != nil {
			return nil, u.logged("find latest referral for patient", err)
		}
		if latest == nil {
			continue
		}

		patients = append(patients, dto.PatientSummaryResponse{
			PatientFullName:  summary.PatientFullName,
			Age:              latest.Age,
			Gender:           latest.Gender,
			HRN:              latest.HRN,
			PatientCategory:  latest.PatientCategory,
			CurrentAddress:   latest.CurrentAddress,
			Birthday:         latest.Birthday.Format("2006-01-02"),
			TotalReferrals:   summary.TotalReferrals,
			LatestReferralAt: summary.LatestReferral,
			LatestReferralID: latest.ReferralID,
			LatestStatus:     string(latest.Status),
			LatestSpecialty:  latest.Specialty.Name,
			LatestHospital:   latest.Hospital.Name,
		})
	}

	return &dto.PatientListResponse{
		Patients: patients,
		Total:    len(patients),
	}, nil
}

func (u *reportUsecase) PatientHistory(ctx context.Context, patientName string) (*dto.ReferralListResponse, error) {
	referrals, err := u.referralRepo.FindByPatientName(u.db.WithContext(ctx), patientName)
	if err != nil {
		return nil, u.logged("find referrals by patient name", err)
	}

	return &dto.ReferralListResponse{
		Referrals: converter.ReferralsToListItems(referrals),
		Total:     len(referrals),
	}, nil
}

func (u *reportUsecase) logged(action string, err error) error {
	u.log.Warnf("Failed to %s: %+v", action, err)
	return err
}

// percentage computes part over total as a percent rounded to one decimal,
// zero when total is zero.
func percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(part) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
