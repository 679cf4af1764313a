package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/delivery/dto"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/domain/entity"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/usecase"
	"github.com/derf567/SPMC-OJT-REFERRAL/pkg/response"
	"github.com/derf567/SPMC-OJT-REFERRAL/pkg/validator"
)

type ReferralHandler struct {
	referralUsecase usecase.ReferralUsecase
	validator       *validator.CustomValidator
}

func NewReferralHandler(referralUsecase usecase.ReferralUsecase, validator *validator.CustomValidator) *ReferralHandler {
	return &ReferralHandler{
		referralUsecase: referralUsecase,
		validator:       validator,
	}
}

func (h *ReferralHandler) CreateReferral(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateReferralRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	referral, err := h.referralUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Birthday must be in YYYY-MM-DD format")
		case usecase.ErrSpecialtyNotFound:
			response.BadRequest(w, "Specialty does not exist")
		case usecase.ErrHospitalNotFound:
			response.BadRequest(w, "Hospital does not exist")
		case usecase.ErrSystemActorNotFound:
			response.InternalServerError(w, "Intake account is not configured")
		default:
			response.InternalServerError(w, "Failed to create referral")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Referral created successfully", referral)
}

func (h *ReferralHandler) ListReferrals(w http.ResponseWriter, r *http.Request) {
	referrals, err := h.referralUsecase.List(r.Context(), parseReferralFilter(r))
	if err != nil {
		response.InternalServerError(w, "Failed to get referrals")
		return
	}

	response.Success(w, http.StatusOK, "Referrals retrieved successfully", referrals)
}

func (h *ReferralHandler) GetMyReferrals(w http.ResponseWriter, r *http.Request) {
	referrals, err := h.referralUsecase.MyReferrals(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrNotAuthenticated:
			response.Unauthorized(w, "Authentication required")
		default:
			response.InternalServerError(w, "Failed to get referrals")
		}
		return
	}

	response.Success(w, http.StatusOK, "Referrals retrieved successfully", referrals)
}

func (h *ReferralHandler) GetReferral(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid referral ID", nil)
		return
	}

	referral, err := h.referralUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrReferralNotFound:
			response.NotFound(w, "Referral not found")
		default:
			response.InternalServerError(w, "Failed to get referral")
		}
		return
	}

	response.Success(w, http.StatusOK, "Referral retrieved successfully", referral)
}

func (h *ReferralHandler) UpdateReferral(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid referral ID", nil)
		return
	}

	var req dto.UpdateReferralRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	referral, err := h.referralUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrReferralNotFound:
			response.NotFound(w, "Referral not found")
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Birthday must be in YYYY-MM-DD format")
		case usecase.ErrSpecialtyNotFound:
			response.BadRequest(w, "Specialty does not exist")
		case usecase.ErrHospitalNotFound:
			response.BadRequest(w, "Hospital does not exist")
		default:
			response.InternalServerError(w, "Failed to update referral")
		}
		return
	}

	response.Success(w, http.StatusOK, "Referral updated successfully", referral)
}

func (h *ReferralHandler) DeleteReferral(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid referral ID", nil)
		return
	}

	if err := h.referralUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrReferralNotFound:
			response.NotFound(w, "Referral not found")
		default:
			response.InternalServerError(w, "Failed to delete referral")
		}
		return
	}

	response.Success(w, http.StatusOK, "Referral deleted successfully", nil)
}

func (h *ReferralHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid referral ID", nil)
		return
	}

	var req dto.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.referralUsecase.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		h.respondWorkflowError(w, err, "Failed to update status")
		return
	}

	response.Success(w, http.StatusOK, result.Message, result)
}

func (h *ReferralHandler) TransferToTriage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid referral ID", nil)
		return
	}

	result, err := h.referralUsecase.TransferToTriage(r.Context(), id)
	if err != nil {
		h.respondWorkflowError(w, err, "Failed to transfer referral")
		return
	}

	response.Success(w, http.StatusOK, result.Message, result)
}

func (h *ReferralHandler) AcceptWithTriageDecision(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid referral ID", nil)
		return
	}

	var req dto.TriageDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.referralUsecase.AcceptWithTriageDecision(r.Context(), id, &req)
	if err != nil {
		h.respondWorkflowError(w, err, "Failed to record triage decision")
		return
	}

	response.Success(w, http.StatusOK, result.Message, result)
}

func (h *ReferralHandler) AssignToMe(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid referral ID", nil)
		return
	}

	result, err := h.referralUsecase.AssignToMe(r.Context(), id)
	if err != nil {
		h.respondWorkflowError(w, err, "Failed to assign referral")
		return
	}

	response.Success(w, http.StatusOK, result.Message, result)
}

func (h *ReferralHandler) respondWorkflowError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrReferralNotFound:
		response.NotFound(w, "Referral not found")
	case usecase.ErrNotAuthenticated:
		response.Unauthorized(w, "Authentication required")
	case usecase.ErrPermissionDenied:
		response.Forbidden(w, "You do not have permission to perform this action")
	case usecase.ErrReferralNotPending:
		response.Conflict(w, "Referral is not in pending status")
	case usecase.ErrInvalidStatus:
		response.BadRequest(w, "Invalid status value")
	case usecase.ErrInvalidTriageDecision:
		response.BadRequest(w, "Invalid triage decision")
	default:
		response.InternalServerError(w, fallback)
	}
}

// parseReferralFilter maps the list query parameters onto the domain filter.
func parseReferralFilter(r *http.Request) *entity.ReferralFilter {
	query := r.URL.Query()

	filter := &entity.ReferralFilter{
		Status:    query.Get("status"),
		Priority:  query.Get("priority"),
		Gender:    query.Get("gender"),
		Search:    query.Get("search"),
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
	}

	if raw := query.Get("is_urgent"); raw != "" {
		if isUrgent, err := strconv.ParseBool(raw); err == nil {
			filter.IsUrgent = &isUrgent
		}
	}
	if raw := query.Get("specialty_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.SpecialtyID = uint(id)
		}
	}
	if raw := query.Get("hospital_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.HospitalID = uint(id)
		}
	}

	return filter
}
