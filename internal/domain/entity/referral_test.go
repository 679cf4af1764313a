package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferralStatusValid(t *testing.T) {
	valid := []ReferralStatus{
		ReferralStatusPending, ReferralStatusInTransit, ReferralStatusWaiting,
		ReferralStatusAccepted, ReferralStatusEmergent, ReferralStatusUrgent,
		ReferralStatusScheduleOPD, ReferralStatusCompleted, ReferralStatusCancelled,
	}
	for _, s := range valid {
		assert.True(t, s.Valid(), "status %s", s)
	}

	assert.False(t, ReferralStatus("archived").Valid())
	assert.False(t, ReferralStatus("").Valid())
	assert.False(t, ReferralStatus("PENDING").Valid())
}

func TestReferralStatusTerminal(t *testing.T) {
	assert.True(t, ReferralStatusCompleted.Terminal())
	assert.True(t, ReferralStatusCancelled.Terminal())
	assert.False(t, ReferralStatusPending.Terminal())
	assert.False(t, ReferralStatusWaiting.Terminal())
}

func TestTriageDecisionValid(t *testing.T) {
	assert.True(t, TriageDecisionEmergent.Valid())
	assert.True(t, TriageDecisionUrgent.Valid())
	assert.True(t, TriageDecisionScheduleOPD.Valid())

	// Statuses that are not triage outcomes must be rejected
	assert.False(t, TriageDecision("accepted").Valid())
	assert.False(t, TriageDecision("completed").Valid())
	assert.False(t, TriageDecision("pending").Valid())
	assert.False(t, TriageDecision("").Valid())
}

func TestTriageDecisionDoublesAsStatus(t *testing.T) {
	// Every triage decision must map onto a valid workflow status
	for _, d := range []TriageDecision{TriageDecisionEmergent, TriageDecisionUrgent, TriageDecisionScheduleOPD} {
		assert.True(t, ReferralStatus(d).Valid(), "decision %s", d)
	}
}

func TestReferralPriorityValid(t *testing.T) {
	assert.True(t, PriorityRoutine.Valid())
	assert.True(t, PriorityUrgent.Valid())
	assert.True(t, PriorityCritical.Valid())
	assert.False(t, ReferralPriority("high").Valid())
}

func TestReferralStateHelpers(t *testing.T) {
	r := &Referral{Status: ReferralStatusPending}
	assert.True(t, r.IsPending())
	assert.False(t, r.IsCompleted())
	assert.False(t, r.IsCancelled())

	r.Status = ReferralStatusCompleted
	assert.False(t, r.IsPending())
	assert.True(t, r.IsCompleted())

	r.Status = ReferralStatusCancelled
	assert.True(t, r.IsCancelled())
}
