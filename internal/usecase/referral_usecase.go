package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/converter"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/delivery/dto"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/delivery/http/middleware"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrReferralNotFound      = errors.New("referral not found")
	ErrReferralNotPending    = errors.New("referral is not in pending status")
	ErrPermissionDenied      = errors.New("you do not have permission to perform this action")
	ErrNotAuthenticated      = errors.New("authentication required")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrInvalidTriageDecision = errors.New("invalid triage decision")
	ErrInvalidDateFormat     = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrSystemActorNotFound   = errors.New("system intake account not found")
	ErrReferralIDExhausted   = errors.New("could not allocate a unique referral ID")
)

// maxIDAttempts bounds the retries when two intakes race for the same
// daily sequence number.
const maxIDAttempts = 3

type ReferralUsecase interface {
	Create(ctx context.Context, req *dto.CreateReferralRequest) (*dto.ReferralDetailResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.ReferralDetailResponse, error)
	List(ctx context.Context, filter *entity.ReferralFilter) (*dto.ReferralListResponse, error)
	MyReferrals(ctx context.Context) (*dto.ReferralListResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateReferralRequest) (*dto.ReferralDetailResponse, error)
	Delete(ctx context.Context, id uint) error

	UpdateStatus(ctx context.Context, id uint, req *dto.StatusUpdateRequest) (*dto.WorkflowActionResponse, error)
	TransferToTriage(ctx context.Context, id uint) (*dto.WorkflowActionResponse, error)
	AcceptWithTriageDecision(ctx context.Context, id uint, req *dto.TriageDecisionRequest) (*dto.WorkflowActionResponse, error)
	AssignToMe(ctx context.Context, id uint) (*dto.WorkflowActionResponse, error)
}

type referralUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	referralRepo repository.ReferralRepository
	historyRepo  repository.StatusHistoryRepository
	transitRepo  repository.TransitInfoRepository
	userRepo     repository.UserRepository
	systemActor  string
}

func NewReferralUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	referralRepo repository.ReferralRepository,
	historyRepo repository.StatusHistoryRepository,
	transitRepo repository.TransitInfoRepository,
	userRepo repository.UserRepository,
	systemActor string,
) ReferralUsecase {
	return &referralUsecase{
		db:           db,
		log:          log,
		referralRepo: referralRepo,
		historyRepo:  historyRepo,
		transitRepo:  transitRepo,
		userRepo:     userRepo,
		systemActor:  systemActor,
	}
}

// Create registers an incoming referral. Anonymous intakes from external
// hospitals are attributed to the configured system account.
func (u *referralUsecase) Create(ctx context.Context, req *dto.CreateReferralRequest) (*dto.ReferralDetailResponse, error) {
	creatorID, err := u.resolveCreator(ctx)
	if err != nil {
		return nil, err
	}

	birthday, err := time.Parse("2006-01-02", req.Birthday)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	priority := entity.PriorityRoutine
	if req.Priority != "" {
		priority = entity.ReferralPriority(req.Priority)
	}

	referral := &entity.Referral{
		Status:   entity.ReferralStatusPending,
		Priority: priority,

		ChiefComplaint:        req.ChiefComplaint,
		PertinentHistory:      req.PertinentHistory,
		PertinentPhysicalExam: req.PertinentPhysicalExam,

		BP:    req.BP,
		HR:    req.HR,
		RR:    req.RR,
		Temp:  req.Temp,
		O2Sat: req.O2Sat,

		GCSScore:          req.GCSScore,
		O2Support:         req.O2Support,
		AdmissionStatus:   req.AdmissionStatus,
		RTPCRResult:       req.RTPCRResult,
		WorkingImpression: req.WorkingImpression,
		ManagementDone:    req.ManagementDone,

		PatientCategory: req.PatientCategory,
		HRN:             req.HRN,
		PatientFullName: req.PatientFullName,
		CurrentAddress:  req.CurrentAddress,
		Birthday:        birthday,
		Age:             req.Age,
		Gender:          req.Gender,

		SpecialtyID:       req.SpecialtyID,
		OtherSpecialty:    req.OtherSpecialty,
		IsUrgent:          req.IsUrgent,
		ReasonForReferral: req.ReasonForReferral,

		HospitalID:           req.HospitalID,
		ReferrerName:         req.ReferrerName,
		ReferrerProfession:   req.ReferrerProfession,
		ReferrerCellphone:    req.ReferrerCellphone,
		ModeOfTransportation: req.ModeOfTransportation,

		ConsentSecured: req.ConsentSecured,
		CreatedByID:    creatorID,
	}

	var lastErr error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		lastErr = u.createWithGeneratedID(ctx, referral, req.TransitInfo)
		if lastErr == nil {
			return u.GetByID(ctx, referral.ID)
		}
		if !isDuplicateKeyError(lastErr, "referral_id") {
			return nil, lastErr
		}
		u.log.Warnf("Referral ID collision on attempt %d, retrying", attempt+1)
	}

	u.log.Warnf("Failed to allocate referral ID after %d attempts: %+v", maxIDAttempts, lastErr)
	return nil, ErrReferralIDExhausted
}

// createWithGeneratedID allocates the next REF-YYYYMMDD-NNN identifier and
// inserts the referral with its transit info in one transaction. A unique
// violation on referral_id surfaces to the caller for retry.
func (u *referralUsecase) createWithGeneratedID(ctx context.Context, referral *entity.Referral, transit *dto.TransitInfoPayload) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	now := time.Now()
	count, err := u.referralRepo.CountCreatedOn(tx, now)
	if err != nil {
		u.log.Warnf("Failed to count today's referrals: %+v", err)
		return err
	}

	referral.ID = 0
	referral.ReferralID = formatReferralID(now, count+1)

	if err := u.referralRepo.Create(tx, referral); err != nil {
		if isForeignKeyError(err, "specialty") {
			return ErrSpecialtyNotFound
		}
		if isForeignKeyError(err, "hospital") {
			return ErrHospitalNotFound
		}
		return err
	}

	if transit != nil {
		info := converter.TransitInfoFromPayload(referral.ID, transit)
		if err := u.transitRepo.Create(tx, info); err != nil {
			u.log.Warnf("Failed to create transit info: %+v", err)
			return err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *referralUsecase) GetByID(ctx context.Context, id uint) (*dto.ReferralDetailResponse, error) {
	referral, err := u.referralRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find referral by ID: %+v", err)
		return nil, err
	}
	if referral == nil {
		return nil, ErrReferralNotFound
	}
	return converter.ReferralToDetailResponse(referral), nil
}

func (u *referralUsecase) List(ctx context.Context, filter *entity.ReferralFilter) (*dto.ReferralListResponse, error) {
	referrals, err := u.referralRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list referrals: %+v", err)
		return nil, err
	}
	return &dto.ReferralListResponse{
		Referrals: converter.ReferralsToListItems(referrals),
		Total:     len(referrals),
	}, nil
}

func (u *referralUsecase) MyReferrals(ctx context.Context) (*dto.ReferralListResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return u.List(ctx, &entity.ReferralFilter{AssignedTo: &actor.UserID})
}

// Update edits referral fields through the allow-listed request DTO. The
// referral code, creator and audit timestamps stay untouched.
func (u *referralUsecase) Update(ctx context.Context, id uint, req *dto.UpdateReferralRequest) (*dto.ReferralDetailResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	referral, err := u.referralRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find referral by ID: %+v", err)
		return nil, err
	}
	if referral == nil {
		return nil, ErrReferralNotFound
	}

	if err := applyReferralUpdate(referral, req); err != nil {
		return nil, err
	}

	if err := u.referralRepo.Update(tx, referral); err != nil {
		if isForeignKeyError(err, "specialty") {
			return nil, ErrSpecialtyNotFound
		}
		if isForeignKeyError(err, "hospital") {
			return nil, ErrHospitalNotFound
		}
		u.log.Warnf("Failed to update referral: %+v", err)
		return nil, err
	}

	if req.TransitInfo != nil {
		if err := u.upsertTransitInfo(tx, referral.ID, req.TransitInfo); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.GetByID(ctx, id)
}

func (u *referralUsecase) upsertTransitInfo(tx *gorm.DB, referralID uint, payload *dto.TransitInfoPayload) error {
	existing, err := u.transitRepo.FindByReferralID(tx, referralID)
	if err != nil {
		u.log.Warnf("Failed to find transit info: %+v", err)
		return err
	}

	if existing == nil {
		return u.transitRepo.Create(tx, converter.TransitInfoFromPayload(referralID, payload))
	}

	updated := converter.TransitInfoFromPayload(referralID, payload)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	return u.transitRepo.Update(tx, updated)
}

func (u *referralUsecase) Delete(ctx context.Context, id uint) error {
	referral, err := u.referralRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find referral by ID: %+v", err)
		return err
	}
	if referral == nil {
		return ErrReferralNotFound
	}

	if err := u.referralRepo.Delete(u.db.WithContext(ctx), id); err != nil {
		u.log.Warnf("Failed to delete referral: %+v", err)
		return err
	}
	return nil
}

// UpdateStatus moves the referral to any valid status. Open to every
// authenticated staff member; the dedicated transfer and triage actions
// carry the role checks.
func (u *referralUsecase) UpdateStatus(ctx context.Context, id uint, req *dto.StatusUpdateRequest) (*dto.WorkflowActionResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	newStatus := entity.ReferralStatus(req.NewStatus)
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	if err := u.transition(ctx, id, actor, func(referral *entity.Referral) (entity.ReferralStatus, string, error) {
		return newStatus, req.Notes, nil
	}); err != nil {
		return nil, err
	}

	return &dto.WorkflowActionResponse{
		Message:   fmt.Sprintf("Status updated to %s", newStatus),
		NewStatus: string(newStatus),
	}, nil
}

// TransferToTriage forwards a pending referral to the triage queue. Only
// dispatch personnel hold the transfer capability.
func (u *referralUsecase) TransferToTriage(ctx context.Context, id uint) (*dto.WorkflowActionResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}
	if !actor.Capabilities().CanTransfer {
		return nil, ErrPermissionDenied
	}

	if err := u.transition(ctx, id, actor, func(referral *entity.Referral) (entity.ReferralStatus, string, error) {
		if !referral.IsPending() {
			return "", "", ErrReferralNotPending
		}
		return entity.ReferralStatusWaiting, "Transferred to triage for review", nil
	}); err != nil {
		return nil, err
	}

	return &dto.WorkflowActionResponse{
		Message:   "Referral transferred to triage",
		NewStatus: string(entity.ReferralStatusWaiting),
	}, nil
}

// AcceptWithTriageDecision records the call-triage categorization. The
// decision value becomes the new status and the referral is assigned to
// the deciding officer.
func (u *referralUsecase) AcceptWithTriageDecision(ctx context.Context, id uint, req *dto.TriageDecisionRequest) (*dto.WorkflowActionResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}
	if !actor.Capabilities().CanTriage {
		return nil, ErrPermissionDenied
	}

	decision := entity.TriageDecision(req.TriageDecision)
	if !decision.Valid() {
		return nil, ErrInvalidTriageDecision
	}

	note := fmt.Sprintf("Triage decision: %s", decisionLabel(decision))
	if req.TriageNotes != "" {
		note = fmt.Sprintf("%s. Notes: %s", note, req.TriageNotes)
	}

	if err := u.transition(ctx, id, actor, func(referral *entity.Referral) (entity.ReferralStatus, string, error) {
		referral.TriageDecision = &decision
		referral.TriageNotes = req.TriageNotes
		referral.AssignedTo = &actor.UserID
		return entity.ReferralStatus(decision), note, nil
	}); err != nil {
		return nil, err
	}

	return &dto.WorkflowActionResponse{
		Message:        "Triage decision recorded",
		NewStatus:      string(decision),
		TriageDecision: string(decision),
		AssignedTo:     actor.Username,
	}, nil
}

// AssignToMe claims the referral for the caller without touching the
// status, so no history row is written.
func (u *referralUsecase) AssignToMe(ctx context.Context, id uint) (*dto.WorkflowActionResponse, error) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	referral, err := u.referralRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find referral by ID: %+v", err)
		return nil, err
	}
	if referral == nil {
		return nil, ErrReferralNotFound
	}

	referral.AssignedTo = &actor.UserID
	if err := u.referralRepo.Update(u.db.WithContext(ctx), referral); err != nil {
		u.log.Warnf("Failed to assign referral: %+v", err)
		return nil, err
	}

	return &dto.WorkflowActionResponse{
		Message:    "Referral assigned",
		AssignedTo: actor.Username,
	}, nil
}

// transition applies a status change and its history record atomically.
// decide inspects the loaded referral and returns the target status with
// the history note; it may also mutate workflow fields on the entity.
func (u *referralUsecase) transition(ctx context.Context, id uint, actor *middleware.Actor, decide func(*entity.Referral) (entity.ReferralStatus, string, error)) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	referral, err := u.referralRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find referral by ID: %+v", err)
		return err
	}
	if referral == nil {
		return ErrReferralNotFound
	}

	oldStatus := referral.Status
	newStatus, note, err := decide(referral)
	if err != nil {
		return err
	}

	referral.Status = newStatus
	if err := u.referralRepo.Update(tx, referral); err != nil {
		u.log.Warnf("Failed to update referral status: %+v", err)
		return err
	}

	history := &entity.StatusHistory{
		ReferralID:  referral.ID,
		OldStatus:   oldStatus,
		NewStatus:   newStatus,
		ChangedByID: actor.UserID,
		Notes:       note,
	}
	if err := u.historyRepo.Create(tx, history); err != nil {
		u.log.Warnf("Failed to create status history: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

// resolveCreator attributes the referral to the authenticated actor, or to
// the system intake account when the request is anonymous.
func (u *referralUsecase) resolveCreator(ctx context.Context) (uuid.UUID, error) {
	if actor, ok := middleware.GetActorFromContext(ctx); ok {
		return actor.UserID, nil
	}

	systemUser, err := u.userRepo.FindByUsername(u.db.WithContext(ctx), u.systemActor)
	if err != nil {
		u.log.Warnf("Failed to find system intake account: %+v", err)
		return uuid.Nil, err
	}
	if systemUser == nil {
		u.log.Warnf("System intake account %q does not exist", u.systemActor)
		return uuid.Nil, ErrSystemActorNotFound
	}
	return systemUser.ID, nil
}

// formatReferralID renders the human-facing code REF-YYYYMMDD-NNN where NNN
// is the 1-based sequence within the calendar day.
func formatReferralID(t time.Time, seq int64) string {
	return fmt.Sprintf("REF-%s-%03d", t.Format("20060102"), seq)
}

// decisionLabel renders a triage decision for history notes, e.g.
// schedule_opd becomes "Schedule Opd".
func decisionLabel(d entity.TriageDecision) string {
	words := strings.Split(string(d), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func applyReferralUpdate(referral *entity.Referral, req *dto.UpdateReferralRequest) error {
	if req.Priority != nil {
		referral.Priority = entity.ReferralPriority(*req.Priority)
	}
	if req.ChiefComplaint != nil {
		referral.ChiefComplaint = *req.ChiefComplaint
	}
	if req.PertinentHistory != nil {
		referral.PertinentHistory = *req.PertinentHistory
	}
	if req.PertinentPhysicalExam != nil {
		referral.PertinentPhysicalExam = *req.PertinentPhysicalExam
	}
	if req.BP != nil {
		referral.BP = *req.BP
	}
	if req.HR != nil {
		referral.HR = *req.HR
	}
	if req.RR != nil {
		referral.RR = *req.RR
	}
	if req.Temp != nil {
		referral.Temp = *req.Temp
	}
	if req.O2Sat != nil {
		referral.O2Sat = *req.O2Sat
	}
	if req.GCSScore != nil {
		referral.GCSScore = *req.GCSScore
	}
	if req.O2Support != nil {
		referral.O2Support = *req.O2Support
	}
	if req.AdmissionStatus != nil {
		referral.AdmissionStatus = *req.AdmissionStatus
	}
	if req.RTPCRResult != nil {
		referral.RTPCRResult = *req.RTPCRResult
	}
	if req.WorkingImpression != nil {
		referral.WorkingImpression = *req.WorkingImpression
	}
	if req.ManagementDone != nil {
		referral.ManagementDone = *req.ManagementDone
	}
	if req.PatientCategory != nil {
		referral.PatientCategory = *req.PatientCategory
	}
	if req.HRN != nil {
		referral.HRN = *req.HRN
	}
	if req.PatientFullName != nil {
		referral.PatientFullName = *req.PatientFullName
	}
	if req.CurrentAddress != nil {
		referral.CurrentAddress = *req.CurrentAddress
	}
	if req.Birthday != nil {
		birthday, err := time.Parse("2006-01-02", *req.Birthday)
		if err != nil {
			return ErrInvalidDateFormat
		}
		referral.Birthday = birthday
	}
	if req.Age != nil {
		referral.Age = *req.Age
	}
	if req.Gender != nil {
		referral.Gender = *req.Gender
	}
	if req.SpecialtyID != nil {
		referral.SpecialtyID = *req.SpecialtyID
		referral.Specialty = entity.Specialty{}
	}
	if req.OtherSpecialty != nil {
		referral.OtherSpecialty = *req.OtherSpecialty
	}
	if req.IsUrgent != nil {
		referral.IsUrgent = *req.IsUrgent
	}
	if req.ReasonForReferral != nil {
		referral.ReasonForReferral = *req.ReasonForReferral
	}
	if req.HospitalID != nil {
		referral.HospitalID = *req.HospitalID
		referral.Hospital = entity.Hospital{}
	}
	if req.ReferrerName != nil {
		referral.ReferrerName = *req.ReferrerName
	}
	if req.ReferrerProfession != nil {
		referral.ReferrerProfession = *req.ReferrerProfession
	}
	if req.ReferrerCellphone != nil {
		referral.ReferrerCellphone = *req.ReferrerCellphone
	}
	if req.ModeOfTransportation != nil {
		referral.ModeOfTransportation = *req.ModeOfTransportation
	}
	if req.ConsentSecured != nil {
		referral.ConsentSecured = *req.ConsentSecured
	}
	return nil
}

// isDuplicateKeyError reports whether err is a Postgres unique violation
// on a constraint mentioning the given column.
func isDuplicateKeyError(err error, column string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return strings.Contains(pgErr.ConstraintName, column) || strings.Contains(pgErr.Detail, column)
	}
	return false
}

// isForeignKeyError reports whether err is a Postgres foreign key violation
// on a constraint mentioning the given table.
func isForeignKeyError(err error, table string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return strings.Contains(pgErr.ConstraintName, table) || strings.Contains(pgErr.Detail, table)
	}
	return false
}
