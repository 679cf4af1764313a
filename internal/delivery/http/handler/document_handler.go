package handler

import (
	"net/http"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/usecase"
	"github.com/derf567/SPMC-OJT-REFERRAL/pkg/response"
)

// maxUploadSize caps attachment uploads at 10 MiB.
const maxUploadSize = 10 << 20

type DocumentHandler struct {
	documentUsecase usecase.DocumentUsecase
}

func NewDocumentHandler(documentUsecase usecase.DocumentUsecase) *DocumentHandler {
	return &DocumentHandler{documentUsecase: documentUsecase}
}

func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	referralID, ok := parseIDVar(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid referral ID", nil)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file field is required")
		return
	}
	defer file.Close()

	documentType := r.FormValue("document_type")
	if documentType == "" {
		response.BadRequest(w, "document_type field is required")
		return
	}

	doc, err := h.documentUsecase.Upload(r.Context(), referralID, documentType, r.FormValue("description"), header.Filename, file)
	if err != nil {
		switch err {
		case usecase.ErrReferralNotFound:
			response.NotFound(w, "Referral not found")
		case usecase.ErrNotAuthenticated:
			response.Unauthorized(w, "Authentication required")
		case usecase.ErrInvalidDocumentType:
			response.BadRequest(w, "Invalid document type")
		default:
			response.InternalServerError(w, "Failed to upload document")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Document uploaded successfully", doc)
}

func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	referralID, ok := parseIDVar(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid referral ID", nil)
		return
	}

	docs, err := h.documentUsecase.ListByReferral(r.Context(), referralID)
	if err != nil {
		switch err {
		case usecase.ErrReferralNotFound:
			response.NotFound(w, "Referral not found")
		default:
			response.InternalServerError(w, "Failed to get documents")
		}
		return
	}

	response.Success(w, http.StatusOK, "Documents retrieved successfully", docs)
}
