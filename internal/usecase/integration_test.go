//go:build integration
// +build integration

package usecase

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/delivery/dto"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/delivery/http/middleware"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/repository"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for readiness ping
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	testPool     *dockertest.Pool
	testResource *dockertest.Resource
	testDB       *gorm.DB
)

func TestMain(m *testing.M) {
	if err := startPostgres(); err != nil {
		log.Fatalf("failed to start test database: %v", err)
	}

	code := m.Run()

	if testPool != nil && testResource != nil {
		if err := testPool.Purge(testResource); err != nil {
			log.Printf("could not purge test container: %v", err)
		}
	}
	os.Exit(code)
}

func startPostgres() error {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return fmt.Errorf("could not connect to docker: %w", err)
	}
	testPool = pool

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=testpass",
			"POSTGRES_USER=testuser",
			"POSTGRES_DB=testdb",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return fmt.Errorf("could not start postgres: %w", err)
	}
	testResource = resource

	hostPort := resource.GetPort("5432/tcp")
	dsn := fmt.Sprintf("host=127.0.0.1 port=%s user=testuser password=testpass dbname=testdb sslmode=disable TimeZone=UTC", hostPort)

	pool.MaxWait = 2 * time.Minute
	if err := pool.Retry(func() error {
		std, err := sql.Open("pgx", dsn)
		if err != nil {
			return err
		}
		defer std.Close()
		if err := std.Ping(); err != nil {
			return err
		}

		gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return err
		}
		testDB = gdb
		return nil
	}); err != nil {
		return fmt.Errorf("could not connect to test database: %w", err)
	}

	return testDB.AutoMigrate(
		&entity.User{},
		&entity.UserProfile{},
		&entity.Hospital{},
		&entity.Specialty{},
		&entity.Referral{},
		&entity.TransitInfo{},
		&entity.StatusHistory{},
		&entity.Document{},
	)
}

func cleanDB(t *testing.T) {
	t.Helper()
	tables := []string{
		"referral_documents",
		"referral_status_histories",
		"transit_infos",
		"referrals",
		"specialties",
		"hospitals",
		"user_profiles",
		"users",
	}
	for _, table := range tables {
		require.NoError(t, testDB.Exec(`TRUNCATE TABLE "`+table+`" RESTART IDENTITY CASCADE`).Error)
	}
}

type fixture struct {
	referralUC ReferralUsecase
	reportUC   ReportUsecase

	dispatcher *entity.User
	triager    *entity.User
	system     *entity.User
	specialty  *entity.Specialty
	hospital   *entity.Hospital
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cleanDB(t)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	userRepo := repository.NewUserRepository()
	referralRepo := repository.NewReferralRepository()
	historyRepo := repository.NewStatusHistoryRepository()
	transitRepo := repository.NewTransitInfoRepository()
	reportRepo := repository.NewReportRepository()

	f := &fixture{
		referralUC: NewReferralUsecase(testDB, logger, referralRepo, historyRepo, transitRepo, userRepo, "external_system"),
		reportUC:   NewReportUsecase(testDB, logger, reportRepo, referralRepo),
	}

	f.dispatcher = seedUser(t, "dispatcher1", entity.RoleDispatchPersonnel)
	f.triager = seedUser(t, "triage1", entity.RoleCallTriage)
	f.system = seedUser(t, "external_system", entity.RoleDispatchPersonnel)
	f.specialty = seedSpecialty(t, "Cardiology")
	f.hospital = seedHospital(t, "Davao Regional Medical Center")
	return f
}

func seedUser(t *testing.T, username string, role entity.Role) *entity.User {
	t.Helper()
	user := &entity.User{
		Username:  username,
		Email:     username + "@spmc.local",
		Password:  "x",
		FirstName: "Test",
		LastName:  username,
	}
	require.NoError(t, testDB.Create(user).Error)
	require.NoError(t, testDB.Create(&entity.UserProfile{UserID: user.ID, Role: role}).Error)
	return user
}

func seedSpecialty(t *testing.T, name string) *entity.Specialty {
	t.Helper()
	specialty := &entity.Specialty{Name: name}
	require.NoError(t, testDB.Create(specialty).Error)
	return specialty
}

func seedHospital(t *testing.T, name string) *entity.Hospital {
	t.Helper()
	hospital := &entity.Hospital{Name: name, IsInsideCity: true}
	require.NoError(t, testDB.Create(hospital).Error)
	return hospital
}

func actorCtx(user *entity.User, role entity.Role) context.Context {
	return middleware.WithActor(context.Background(), &middleware.Actor{
		UserID:   user.ID,
		Username: user.Username,
		Role:     role,
	})
}

func (f *fixture) intakeRequest() *dto.CreateReferralRequest {
	return &dto.CreateReferralRequest{
		ChiefComplaint:        "chest pain radiating to left arm",
		PertinentHistory:      "hypertensive, non-compliant to medication",
		PertinentPhysicalExam: "diaphoretic, in distress",
		BP:                    "150/90",
		HR:                    110,
		RR:                    24,
		Temp:                  decimal.NewFromFloat(37.8),
		O2Sat:                 94,
		GCSScore:              "15",
		O2Support:             "nasal cannula 2 LPM",
		AdmissionStatus:       entity.AdmissionEmergencyRoom,
		RTPCRResult:           entity.RTPCRNotDone,
		WorkingImpression:     "acute coronary syndrome",
		ManagementDone:        "aspirin given",
		PatientCategory:       entity.PatientCategoryNew,
		PatientFullName:       "Juan Dela Cruz",
		CurrentAddress:        "Davao City",
		Birthday:              "1975-04-12",
		Age:                   50,
		Gender:                "male",
		SpecialtyID:           f.specialty.ID,
		ReasonForReferral:     "needs cardiology workup",
		HospitalID:            f.hospital.ID,
		ReferrerName:          "Dr. Reyes",
		ReferrerProfession:    "Physician",
		ReferrerCellphone:     "09171234567",
		ModeOfTransportation:  "ambulance",
		ConsentSecured:        true,
	}
}

func countHistory(t *testing.T, referralID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, testDB.Model(&entity.StatusHistory{}).
		Where("referral_id = ?", referralID).Count(&count).Error)
	return count
}

func TestReferralIDSequence(t *testing.T) {
	f := newFixture(t)
	ctx := actorCtx(f.dispatcher, entity.RoleDispatchPersonnel)

	today := time.Now().Format("20060102")

	first, err := f.referralUC.Create(ctx, f.intakeRequest())
	require.NoError(t, err)
	second, err := f.referralUC.Create(ctx, f.intakeRequest())
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("REF-%s-001", today), first.ReferralID)
	assert.Equal(t, fmt.Sprintf("REF-%s-002", today), second.ReferralID)
	assert.Equal(t, "pending", first.Status)
	assert.Equal(t, "routine", first.Priority)
}

func TestAnonymousIntakeUsesSystemActor(t *testing.T) {
	f := newFixture(t)

	created, err := f.referralUC.Create(context.Background(), f.intakeRequest())
	require.NoError(t, err)

	var referral entity.Referral
	require.NoError(t, testDB.First(&referral, created.ID).Error)
	assert.Equal(t, f.system.ID, referral.CreatedByID)
}

func TestIntakeWithTransitInfo(t *testing.T) {
	f := newFixture(t)

	req := f.intakeRequest()
	req.TransitInfo = &dto.TransitInfoPayload{
		WatcherName:       "Maria Dela Cruz",
		WatcherAge:        45,
		RelationToPatient: "spouse",
		ContactNumber:     "09179876543",
		EscortNurse:       "Nurse Santos",
		TimeAmbulanceLeft: "14:30",
	}

	created, err := f.referralUC.Create(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, created.TransitInfo)
	assert.Equal(t, "Maria Dela Cruz", created.TransitInfo.WatcherName)
	assert.Equal(t, "14:30", created.TransitInfo.TimeAmbulanceLeft)
}

func TestTransferToTriage(t *testing.T) {
	f := newFixture(t)
	dispatchCtx := actorCtx(f.dispatcher, entity.RoleDispatchPersonnel)

	created, err := f.referralUC.Create(dispatchCtx, f.intakeRequest())
	require.NoError(t, err)

	result, err := f.referralUC.TransferToTriage(dispatchCtx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "waiting", result.NewStatus)

	detail, err := f.referralUC.GetByID(dispatchCtx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "waiting", detail.Status)

	// Exactly one audit row for the transition
	assert.EqualValues(t, 1, countHistory(t, created.ID))

	var history entity.StatusHistory
	require.NoError(t, testDB.Where("referral_id = ?", created.ID).First(&history).Error)
	assert.Equal(t, entity.ReferralStatusPending, history.OldStatus)
	assert.Equal(t, entity.ReferralStatusWaiting, history.NewStatus)
	assert.Equal(t, f.dispatcher.ID, history.ChangedByID)
}

func TestTransferToTriageRequiresPending(t *testing.T) {
	f := newFixture(t)
	dispatchCtx := actorCtx(f.dispatcher, entity.RoleDispatchPersonnel)

	created, err := f.referralUC.Create(dispatchCtx, f.intakeRequest())
	require.NoError(t, err)

	_, err = f.referralUC.TransferToTriage(dispatchCtx, created.ID)
	require.NoError(t, err)

	// Second transfer finds the referral already waiting
	_, err = f.referralUC.TransferToTriage(dispatchCtx, created.ID)
	assert.ErrorIs(t, err, ErrReferralNotPending)
	assert.EqualValues(t, 1, countHistory(t, created.ID))
}

func TestTransferToTriageRequiresCapability(t *testing.T) {
	f := newFixture(t)

	created, err := f.referralUC.Create(context.Background(), f.intakeRequest())
	require.NoError(t, err)

	triageCtx := actorCtx(f.triager, entity.RoleCallTriage)
	_, err = f.referralUC.TransferToTriage(triageCtx, created.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	detail, err := f.referralUC.GetByID(triageCtx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", detail.Status)
	assert.EqualValues(t, 0, countHistory(t, created.ID))
}

func TestAcceptWithTriageDecision(t *testing.T) {
	f := newFixture(t)
	dispatchCtx := actorCtx(f.dispatcher, entity.RoleDispatchPersonnel)
	triageCtx := actorCtx(f.triager, entity.RoleCallTriage)

	created, err := f.referralUC.Create(dispatchCtx, f.intakeRequest())
	require.NoError(t, err)
	_, err = f.referralUC.TransferToTriage(dispatchCtx, created.ID)
	require.NoError(t, err)

	result, err := f.referralUC.AcceptWithTriageDecision(triageCtx, created.ID, &dto.TriageDecisionRequest{
		TriageDecision: "emergent",
		TriageNotes:    "send to ER immediately",
	})
	require.NoError(t, err)
	assert.Equal(t, "emergent", result.NewStatus)
	assert.Equal(t, "emergent", result.TriageDecision)

	var referral entity.Referral
	require.NoError(t, testDB.First(&referral, created.ID).Error)
	assert.Equal(t, entity.ReferralStatusEmergent, referral.Status)
	require.NotNil(t, referral.TriageDecision)
	assert.Equal(t, entity.TriageDecisionEmergent, *referral.TriageDecision)
	assert.Equal(t, "send to ER immediately", referral.TriageNotes)
	require.NotNil(t, referral.AssignedTo)
	assert.Equal(t, f.triager.ID, *referral.AssignedTo)

	assert.EqualValues(t, 2, countHistory(t, created.ID))
}

func TestAcceptWithTriageDecisionRejectsInvalid(t *testing.T) {
	f := newFixture(t)
	triageCtx := actorCtx(f.triager, entity.RoleCallTriage)

	created, err := f.referralUC.Create(context.Background(), f.intakeRequest())
	require.NoError(t, err)

	_, err = f.referralUC.AcceptWithTriageDecision(triageCtx, created.ID, &dto.TriageDecisionRequest{
		TriageDecision: "accepted",
	})
	assert.ErrorIs(t, err, ErrInvalidTriageDecision)

	detail, err := f.referralUC.GetByID(triageCtx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", detail.Status)
	assert.Empty(t, detail.TriageDecision)
	assert.EqualValues(t, 0, countHistory(t, created.ID))
}

func TestAcceptWithTriageDecisionRequiresCapability(t *testing.T) {
	f := newFixture(t)
	dispatchCtx := actorCtx(f.dispatcher, entity.RoleDispatchPersonnel)

	created, err := f.referralUC.Create(dispatchCtx, f.intakeRequest())
	require.NoError(t, err)

	_, err = f.referralUC.AcceptWithTriageDecision(dispatchCtx, created.ID, &dto.TriageDecisionRequest{
		TriageDecision: "urgent",
	})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestUpdateStatusWritesHistory(t *testing.T) {
	f := newFixture(t)
	ctx := actorCtx(f.dispatcher, entity.RoleDispatchPersonnel)

	created, err := f.referralUC.Create(ctx, f.intakeRequest())
	require.NoError(t, err)

	_, err = f.referralUC.UpdateStatus(ctx, created.ID, &dto.StatusUpdateRequest{
		NewStatus: "in_transit",
		Notes:     "ambulance dispatched",
	})
	require.NoError(t, err)

	_, err = f.referralUC.UpdateStatus(ctx, created.ID, &dto.StatusUpdateRequest{NewStatus: "completed"})
	require.NoError(t, err)

	assert.EqualValues(t, 2, countHistory(t, created.ID))

	var histories []entity.StatusHistory
	require.NoError(t, testDB.Where("referral_id = ?", created.ID).
		Order("id ASC").Find(&histories).Error)
	assert.Equal(t, entity.ReferralStatusPending, histories[0].OldStatus)
	assert.Equal(t, entity.ReferralStatusInTransit, histories[0].NewStatus)
	assert.Equal(t, "ambulance dispatched", histories[0].Notes)
	assert.Equal(t, entity.ReferralStatusInTransit, histories[1].OldStatus)
	assert.Equal(t, entity.ReferralStatusCompleted, histories[1].NewStatus)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	ctx := actorCtx(f.dispatcher, entity.RoleDispatchPersonnel)

	created, err := f.referralUC.Create(ctx, f.intakeRequest())
	require.NoError(t, err)

	_, err = f.referralUC.UpdateStatus(ctx, created.ID, &dto.StatusUpdateRequest{NewStatus: "archived"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.EqualValues(t, 0, countHistory(t, created.ID))
}

func TestAssignToMeWritesNoHistory(t *testing.T) {
	f := newFixture(t)
	ctx := actorCtx(f.triager, entity.RoleCallTriage)

	created, err := f.referralUC.Create(ctx, f.intakeRequest())
	require.NoError(t, err)

	_, err = f.referralUC.AssignToMe(ctx, created.ID)
	require.NoError(t, err)

	var referral entity.Referral
	require.NoError(t, testDB.First(&referral, created.ID).Error)
	require.NotNil(t, referral.AssignedTo)
	assert.Equal(t, f.triager.ID, *referral.AssignedTo)
	assert.EqualValues(t, 0, countHistory(t, created.ID))
}

func TestMyReferralsFiltersByAssignee(t *testing.T) {
	f := newFixture(t)
	triageCtx := actorCtx(f.triager, entity.RoleCallTriage)
	dispatchCtx := actorCtx(f.dispatcher, entity.RoleDispatchPersonnel)

	mine, err := f.referralUC.Create(triageCtx, f.intakeRequest())
	require.NoError(t, err)
	_, err = f.referralUC.Create(dispatchCtx, f.intakeRequest())
	require.NoError(t, err)

	_, err = f.referralUC.AssignToMe(triageCtx, mine.ID)
	require.NoError(t, err)

	list, err := f.referralUC.MyReferrals(triageCtx)
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, mine.ID, list.Referrals[0].ID)
}

func TestUpdatePreservesProtectedFields(t *testing.T) {
	f := newFixture(t)
	ctx := actorCtx(f.dispatcher, entity.RoleDispatchPersonnel)

	created, err := f.referralUC.Create(ctx, f.intakeRequest())
	require.NoError(t, err)

	name := "Pedro Penduko"
	priority := "critical"
	updated, err := f.referralUC.Update(ctx, created.ID, &dto.UpdateReferralRequest{
		PatientFullName: &name,
		Priority:        &priority,
	})
	require.NoError(t, err)

	assert.Equal(t, "Pedro Penduko", updated.PatientFullName)
	assert.Equal(t, "critical", updated.Priority)
	assert.Equal(t, created.ReferralID, updated.ReferralID)
	assert.Equal(t, created.Status, updated.Status)
}

func TestDashboardStatsEmpty(t *testing.T) {
	f := newFixture(t)

	stats, err := f.reportUC.DashboardStats(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalReferrals)
	assert.Zero(t, stats.PendingReferrals)
	assert.Zero(t, stats.RecentReferrals)
}

func TestReportsAnalytics(t *testing.T) {
	f := newFixture(t)
	ctx := actorCtx(f.dispatcher, entity.RoleDispatchPersonnel)

	for i := 0; i < 4; i++ {
		created, err := f.referralUC.Create(ctx, f.intakeRequest())
		require.NoError(t, err)
		if i == 0 {
			_, err = f.referralUC.UpdateStatus(ctx, created.ID, &dto.StatusUpdateRequest{NewStatus: "completed"})
			require.NoError(t, err)
		}
		if i == 1 {
			_, err = f.referralUC.UpdateStatus(ctx, created.ID, &dto.StatusUpdateRequest{NewStatus: "cancelled"})
			require.NoError(t, err)
		}
	}

	analytics, err := f.reportUC.ReportsAnalytics(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 4, analytics.Summary.TotalReferrals)
	assert.EqualValues(t, 1, analytics.Summary.SuccessfulReferrals)
	assert.EqualValues(t, 1, analytics.Summary.CancelledReferrals)
	assert.Equal(t, 25.0, analytics.Summary.SuccessRate)
	assert.Equal(t, 25.0, analytics.Summary.CancellationRate)

	require.Len(t, analytics.MonthlyTrends, 6)
	// Oldest month first, current month last carrying this test's volume
	assert.EqualValues(t, 4, analytics.MonthlyTrends[5].Count)
	assert.Equal(t, time.Now().Format("January 2006"), analytics.MonthlyTrends[5].Month)

	require.Len(t, analytics.TopHospitals, 1)
	assert.Equal(t, f.hospital.Name, analytics.TopHospitals[0].Name)
	assert.Equal(t, 100.0, analytics.TopHospitals[0].Percentage)
}

func TestReportsAnalyticsEmptyRatesAreZero(t *testing.T) {
	f := newFixture(t)

	analytics, err := f.reportUC.ReportsAnalytics(context.Background())
	require.NoError(t, err)

	assert.Zero(t, analytics.Summary.TotalReferrals)
	assert.Equal(t, 0.0, analytics.Summary.SuccessRate)
	assert.Equal(t, 0.0, analytics.Summary.CancellationRate)
	assert.Equal(t, 0.0, analytics.Summary.AvgProcessingTimeHours)
}

func TestPatientAggregation(t *testing.T) {
	f := newFixture(t)
	ctx := actorCtx(f.dispatcher, entity.RoleDispatchPersonnel)

	_, err := f.referralUC.Create(ctx, f.intakeRequest())
	require.NoError(t, err)
	_, err = f.referralUC.Create(ctx, f.intakeRequest())
	require.NoError(t, err)

	other := f.intakeRequest()
	other.PatientFullName = "Maria Clara"
	_, err = f.referralUC.Create(ctx, other)
	require.NoError(t, err)

	patients, err := f.reportUC.Patients(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, patients.Total)

	history, err := f.reportUC.PatientHistory(context.Background(), "Juan Dela Cruz")
	require.NoError(t, err)
	assert.Equal(t, 2, history.Total)
}

func TestGetByIDMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.referralUC.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrReferralNotFound)
}
