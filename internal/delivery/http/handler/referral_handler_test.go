package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/delivery/dto"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/usecase"
	"github.com/derf567/SPMC-OJT-REFERRAL/pkg/response"
	"github.com/derf567/SPMC-OJT-REFERRAL/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReferralUsecase returns canned results per method, letting handler
// tests exercise status-code mapping without a database.
type fakeReferralUsecase struct {
	detail   *dto.ReferralDetailResponse
	list     *dto.ReferralListResponse
	workflow *dto.WorkflowActionResponse
	err      error
}

func (f *fakeReferralUsecase) Create(ctx context.Context, req *dto.CreateReferralRequest) (*dto.ReferralDetailResponse, error) {
	return f.detail, f.err
}

func (f *fakeReferralUsecase) GetByID(ctx context.Context, id uint) (*dto.ReferralDetailResponse, error) {
	return f.detail, f.err
}

func (f *fakeReferralUsecase) List(ctx context.Context, filter *entity.ReferralFilter) (*dto.ReferralListResponse, error) {
	return f.list, f.err
}

func (f *fakeReferralUsecase) MyReferrals(ctx context.Context) (*dto.ReferralListResponse, error) {
	return f.list, f.err
}

func (f *fakeReferralUsecase) Update(ctx context.Context, id uint, req *dto.UpdateReferralRequest) (*dto.ReferralDetailResponse, error) {
	return f.detail, f.err
}

func (f *fakeReferralUsecase) Delete(ctx context.Context, id uint) error {
	return f.err
}

func (f *fakeReferralUsecase) UpdateStatus(ctx context.Context, id uint, req *dto.StatusUpdateRequest) (*dto.WorkflowActionResponse, error) {
	return f.workflow, f.err
}

func (f *fakeReferralUsecase) TransferToTriage(ctx context.Context, id uint) (*dto.WorkflowActionResponse, error) {
	return f.workflow, f.err
}

func (f *fakeReferralUsecase) AcceptWithTriageDecision(ctx context.Context, id uint, req *dto.TriageDecisionRequest) (*dto.WorkflowActionResponse, error) {
	return f.workflow, f.err
}

func (f *fakeReferralUsecase) AssignToMe(ctx context.Context, id uint) (*dto.WorkflowActionResponse, error) {
	return f.workflow, f.err
}

func newReferralHandler(fake *fakeReferralUsecase) *ReferralHandler {
	return NewReferralHandler(fake, validator.NewValidator())
}

func serve(t *testing.T, handlerFunc http.HandlerFunc, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req = mux.SetURLVars(req, map[string]string{"id": "1"})
	rec := httptest.NewRecorder()
	handlerFunc(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestTransferToTriageStatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		usecaseErr     error
		expectedStatus int
	}{
		{"success", nil, http.StatusOK},
		{"not found", usecase.ErrReferralNotFound, http.StatusNotFound},
		{"permission denied", usecase.ErrPermissionDenied, http.StatusForbidden},
		{"not pending", usecase.ErrReferralNotPending, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeReferralUsecase{
				workflow: &dto.WorkflowActionResponse{Message: "Referral transferred to triage", NewStatus: "waiting"},
				err:      tt.usecaseErr,
			}
			handler := newReferralHandler(fake)

			rec := serve(t, handler.TransferToTriage, http.MethodPost, "/api/v1/referrals/1/transfer-to-triage", nil)
			assert.Equal(t, tt.expectedStatus, rec.Code)

			resp := decodeResponse(t, rec)
			assert.Equal(t, tt.usecaseErr == nil, resp.Success)
		})
	}
}

func TestAcceptWithTriageDecisionInvalidDecision(t *testing.T) {
	fake := &fakeReferralUsecase{err: usecase.ErrInvalidTriageDecision}
	handler := newReferralHandler(fake)

	body := dto.TriageDecisionRequest{TriageDecision: "accepted"}
	rec := serve(t, handler.AcceptWithTriageDecision, http.MethodPost, "/api/v1/referrals/1/accept-with-triage-decision", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
}

func TestAcceptWithTriageDecisionMissingDecision(t *testing.T) {
	// Validation rejects the request before the usecase is reached
	fake := &fakeReferralUsecase{err: usecase.ErrInvalidTriageDecision}
	handler := newReferralHandler(fake)

	rec := serve(t, handler.AcceptWithTriageDecision, http.MethodPost, "/api/v1/referrals/1/accept-with-triage-decision", dto.TriageDecisionRequest{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAcceptWithTriageDecisionSuccess(t *testing.T) {
	fake := &fakeReferralUsecase{
		workflow: &dto.WorkflowActionResponse{
			Message:        "Triage decision recorded",
			NewStatus:      "emergent",
			TriageDecision: "emergent",
			AssignedTo:     "triage1",
		},
	}
	handler := newReferralHandler(fake)

	body := dto.TriageDecisionRequest{TriageDecision: "emergent", TriageNotes: "refer to ER"}
	rec := serve(t, handler.AcceptWithTriageDecision, http.MethodPost, "/api/v1/referrals/1/accept-with-triage-decision", body)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
}

func TestUpdateStatusInvalidStatus(t *testing.T) {
	fake := &fakeReferralUsecase{err: usecase.ErrInvalidStatus}
	handler := newReferralHandler(fake)

	body := dto.StatusUpdateRequest{NewStatus: "archived"}
	rec := serve(t, handler.UpdateStatus, http.MethodPost, "/api/v1/referrals/1/update-status", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetReferralNotFound(t *testing.T) {
	fake := &fakeReferralUsecase{err: usecase.ErrReferralNotFound}
	handler := newReferralHandler(fake)

	rec := serve(t, handler.GetReferral, http.MethodGet, "/api/v1/referrals/1", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetReferralInvalidID(t *testing.T) {
	handler := newReferralHandler(&fakeReferralUsecase{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/referrals/abc", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "abc"})
	rec := httptest.NewRecorder()
	handler.GetReferral(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReferralRejectsInvalidBody(t *testing.T) {
	handler := newReferralHandler(&fakeReferralUsecase{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/referrals", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	handler.CreateReferral(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReferralValidation(t *testing.T) {
	// Empty payload trips the required-field validation
	handler := newReferralHandler(&fakeReferralUsecase{})

	rec := serve(t, handler.CreateReferral, http.MethodPost, "/api/v1/referrals", dto.CreateReferralRequest{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "Validation failed", resp.Message)
}

func TestParseReferralFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/referrals?status=pending&priority=critical&is_urgent=true&specialty_id=3&hospital_id=7&search=juan&start_date=2025-01-01&end_date=2025-01-31", nil)

	filter := parseReferralFilter(req)

	assert.Equal(t, "pending", filter.Status)
	assert.Equal(t, "critical", filter.Priority)
	require.NotNil(t, filter.IsUrgent)
	assert.True(t, *filter.IsUrgent)
	assert.Equal(t, uint(3), filter.SpecialtyID)
	assert.Equal(t, uint(7), filter.HospitalID)
	assert.Equal(t, "juan", filter.Search)
	assert.Equal(t, "2025-01-01", filter.StartDate)
	assert.Equal(t, "2025-01-31", filter.EndDate)
}

func TestParseReferralFilterIgnoresMalformedParams(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/referrals?is_urgent=maybe&specialty_id=abc", nil)

	filter := parseReferralFilter(req)

	assert.Nil(t, filter.IsUrgent)
	assert.Zero(t, filter.SpecialtyID)
}
