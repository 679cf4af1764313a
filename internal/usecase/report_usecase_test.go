package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newDetachedDB returns a gorm handle that never dials out. Connection setup
// is lazy, so usecases backed by fake repositories can run against it.
func newDetachedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=127.0.0.1 port=1 user=test dbname=test sslmode=disable"), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db
}

func newSilentLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// recencyReportRepo records the cutoff passed to CountCreatedSince and returns
// zeroes for everything else.
type recencyReportRepo struct {
	since time.Time
}

func (r *recencyReportRepo) CountAll(db *gorm.DB) (int64, error) { return 0, nil }
func (r *recencyReportRepo) CountByStatus(db *gorm.DB, status entity.ReferralStatus) (int64, error) {
	return 0, nil
}
func (r *recencyReportRepo) CountByPriority(db *gorm.DB, priority entity.ReferralPriority) (int64, error) {
	return 0, nil
}
func (r *recencyReportRepo) CountUrgent(db *gorm.DB) (int64, error) { return 0, nil }
func (r *recencyReportRepo) CountCreatedSince(db *gorm.DB, since time.Time) (int64, error) {
	r.since = since
	return 0, nil
}
func (r *recencyReportRepo) CountCreatedBetween(db *gorm.DB, start, end time.Time) (int64, error) {
	return 0, nil
}
func (r *recencyReportRepo) CountAssignedTo(db *gorm.DB, userID uuid.UUID) (int64, error) {
	return 0, nil
}
func (r *recencyReportRepo) StatusDistribution(db *gorm.DB) ([]entity.StatusCount, error) {
	return nil, nil
}
func (r *recencyReportRepo) PriorityDistribution(db *gorm.DB) ([]entity.PriorityCount, error) {
	return nil, nil
}
func (r *recencyReportRepo) TopHospitals(db *gorm.DB, limit int) ([]entity.NameCount, error) {
	return nil, nil
}
func (r *recencyReportRepo) SpecialtyDistribution(db *gorm.DB, limit int) ([]entity.NameCount, error) {
	return nil, nil
}
func (r *recencyReportRepo) AvgProcessingHours(db *gorm.DB) (float64, error) { return 0, nil }
func (r *recencyReportRepo) PatientSummaries(db *gorm.DB) ([]entity.PatientSummary, error) {
	return nil, nil
}

func TestDashboardRecentWindow(t *testing.T) {
	repo := &recencyReportRepo{}
	uc := NewReportUsecase(newDetachedDB(t), newSilentLogger(), repo, nil)

	_, err := uc.DashboardStats(context.Background())
	require.NoError(t, err)

	// Dashboard counts referrals from the last 24 hours
	assert.WithinDuration(t, time.Now().Add(-24*time.Hour), repo.since, time.Minute)
}

func TestAnalyticsRecentWindow(t *testing.T) {
	repo := &recencyReportRepo{}
	uc := NewReportUsecase(newDetachedDB(t), newSilentLogger(), repo, nil)

	_, err := uc.ReportsAnalytics(context.Background())
	require.NoError(t, err)

	// The analytics summary counts referrals from the last seven days
	assert.WithinDuration(t, time.Now().Add(-7*24*time.Hour), repo.since, time.Minute)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, percentage(0, 0))
	assert.Equal(t, 0.0, percentage(5, 0))
	assert.Equal(t, 0.0, percentage(0, 10))
	assert.Equal(t, 50.0, percentage(5, 10))
	assert.Equal(t, 100.0, percentage(10, 10))
	assert.Equal(t, 33.3, percentage(1, 3))
	assert.Equal(t, 66.7, percentage(2, 3))
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 1.2, round1(1.24))
	assert.Equal(t, 1.3, round1(1.25))
	assert.Equal(t, 0.0, round1(0))
	assert.Equal(t, 100.0, round1(100.04))
}

func TestMonthLabelFormat(t *testing.T) {
	// Trend labels use the same format as the analytics payload
	start := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "February 2025", start.Format("January 2006"))
}
