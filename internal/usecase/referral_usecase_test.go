package usecase

import (
	"testing"
	"time"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/delivery/dto"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatReferralID(t *testing.T) {
	day := time.Date(2025, time.March, 7, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "REF-20250307-001", formatReferralID(day, 1))
	assert.Equal(t, "REF-20250307-042", formatReferralID(day, 42))
	assert.Equal(t, "REF-20250307-999", formatReferralID(day, 999))

	// Sequence wider than three digits keeps growing instead of truncating
	assert.Equal(t, "REF-20250307-1000", formatReferralID(day, 1000))

	newYear := time.Date(2026, time.January, 1, 0, 0, 1, 0, time.UTC)
	assert.Equal(t, "REF-20260101-001", formatReferralID(newYear, 1))
}

func TestDecisionLabel(t *testing.T) {
	assert.Equal(t, "Emergent", decisionLabel(entity.TriageDecisionEmergent))
	assert.Equal(t, "Urgent", decisionLabel(entity.TriageDecisionUrgent))
	assert.Equal(t, "Schedule Opd", decisionLabel(entity.TriageDecisionScheduleOPD))
}

func TestApplyReferralUpdate(t *testing.T) {
	referral := &entity.Referral{
		ReferralID:      "REF-20250307-001",
		Status:          entity.ReferralStatusPending,
		Priority:        entity.PriorityRoutine,
		ChiefComplaint:  "chest pain",
		PatientFullName: "Juan Dela Cruz",
		HR:              80,
		Age:             40,
	}

	priority := "critical"
	hr := 120
	name := "Juan De La Cruz"
	req := &dto.UpdateReferralRequest{
		Priority:        &priority,
		HR:              &hr,
		PatientFullName: &name,
	}

	err := applyReferralUpdate(referral, req)
	assert.NoError(t, err)

	assert.Equal(t, entity.PriorityCritical, referral.Priority)
	assert.Equal(t, 120, referral.HR)
	assert.Equal(t, "Juan De La Cruz", referral.PatientFullName)

	// Untouched fields keep their values
	assert.Equal(t, "chest pain", referral.ChiefComplaint)
	assert.Equal(t, 40, referral.Age)

	// The workflow fields are not reachable through the update request
	assert.Equal(t, "REF-20250307-001", referral.ReferralID)
	assert.Equal(t, entity.ReferralStatusPending, referral.Status)
}

func TestApplyReferralUpdateBirthday(t *testing.T) {
	referral := &entity.Referral{}

	good := "1990-06-15"
	err := applyReferralUpdate(referral, &dto.UpdateReferralRequest{Birthday: &good})
	assert.NoError(t, err)
	assert.Equal(t, time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC), referral.Birthday)

	bad := "15/06/1990"
	err = applyReferralUpdate(referral, &dto.UpdateReferralRequest{Birthday: &bad})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestApplyReferralUpdateVitals(t *testing.T) {
	referral := &entity.Referral{}

	temp := decimal.NewFromFloat(38.5)
	bp := "130/90"
	req := &dto.UpdateReferralRequest{Temp: &temp, BP: &bp}

	assert.NoError(t, applyReferralUpdate(referral, req))
	assert.True(t, referral.Temp.Equal(decimal.NewFromFloat(38.5)))
	assert.Equal(t, "130/90", referral.BP)
}
