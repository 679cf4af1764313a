package handler

import (
	"encoding/json"
	"net/http"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/delivery/dto"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/usecase"
	"github.com/derf567/SPMC-OJT-REFERRAL/pkg/response"
	"github.com/derf567/SPMC-OJT-REFERRAL/pkg/validator"
)

type TransitInfoHandler struct {
	transitUsecase usecase.TransitInfoUsecase
	validator      *validator.CustomValidator
}

func NewTransitInfoHandler(transitUsecase usecase.TransitInfoUsecase, validator *validator.CustomValidator) *TransitInfoHandler {
	return &TransitInfoHandler{
		transitUsecase: transitUsecase,
		validator:      validator,
	}
}

func (h *TransitInfoHandler) CreateTransitInfo(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransitInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	info, err := h.transitUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrReferralNotFound:
			response.NotFound(w, "Referral not found")
		case usecase.ErrTransitInfoAlreadyExists:
			response.Conflict(w, "Transit info already exists for this referral")
		default:
			response.InternalServerError(w, "Failed to create transit info")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Transit info created successfully", info)
}

func (h *TransitInfoHandler) ListTransitInfos(w http.ResponseWriter, r *http.Request) {
	infos, err := h.transitUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get transit infos")
		return
	}

	response.Success(w, http.StatusOK, "Transit infos retrieved successfully", infos)
}

func (h *TransitInfoHandler) GetTransitInfo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid transit info ID", nil)
		return
	}

	info, err := h.transitUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrTransitInfoNotFound:
			response.NotFound(w, "Transit info not found")
		default:
			response.InternalServerError(w, "Failed to get transit info")
		}
		return
	}

	response.Success(w, http.StatusOK, "Transit info retrieved successfully", info)
}

func (h *TransitInfoHandler) UpdateTransitInfo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid transit info ID", nil)
		return
	}

	var req dto.TransitInfoPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	info, err := h.transitUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrTransitInfoNotFound:
			response.NotFound(w, "Transit info not found")
		default:
			response.InternalServerError(w, "Failed to update transit info")
		}
		return
	}

	response.Success(w, http.StatusOK, "Transit info updated successfully", info)
}

func (h *TransitInfoHandler) DeleteTransitInfo(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid transit info ID", nil)
		return
	}

	if err := h.transitUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrTransitInfoNotFound:
			response.NotFound(w, "Transit info not found")
		default:
			response.InternalServerError(w, "Failed to delete transit info")
		}
		return
	}

	response.Success(w, http.StatusOK, "Transit info deleted successfully", nil)
}
