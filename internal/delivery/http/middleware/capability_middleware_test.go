package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestWithActor(actor *Actor) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if actor == nil {
		return req
	}
	return req.WithContext(WithActor(req.Context(), actor))
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name           string
		actor          *Actor
		expectedStatus int
	}{
		{
			name:           "administrator passes",
			actor:          &Actor{UserID: uuid.New(), Role: entity.RoleAdministrator},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "superuser passes regardless of role",
			actor:          &Actor{UserID: uuid.New(), Role: entity.RoleCallTriage, IsSuperuser: true},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "dispatch personnel is rejected",
			actor:          &Actor{UserID: uuid.New(), Role: entity.RoleDispatchPersonnel},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "missing actor is rejected",
			actor:          nil,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RequireAdmin(okHandler()).ServeHTTP(rec, requestWithActor(tt.actor))
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestRequireCapability(t *testing.T) {
	canTriage := RequireCapability(func(c entity.Capabilities) bool { return c.CanTriage })

	rec := httptest.NewRecorder()
	canTriage(okHandler()).ServeHTTP(rec, requestWithActor(&Actor{Role: entity.RoleCallTriage}))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	canTriage(okHandler()).ServeHTTP(rec, requestWithActor(&Actor{Role: entity.RoleDispatchPersonnel}))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestActorCapabilities(t *testing.T) {
	actor := &Actor{Role: entity.RoleDispatchPersonnel}
	caps := actor.Capabilities()

	assert.True(t, caps.CanView)
	assert.True(t, caps.CanTransfer)
	assert.False(t, caps.CanTriage)
	assert.False(t, caps.IsAdmin)
}
