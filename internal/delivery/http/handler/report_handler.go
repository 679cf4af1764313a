package handler

import (
	"net/http"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/usecase"
	"github.com/derf567/SPMC-OJT-REFERRAL/pkg/response"
)

type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
}

func NewReportHandler(reportUsecase usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{reportUsecase: reportUsecase}
}

func (h *ReportHandler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reportUsecase.DashboardStats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get dashboard stats")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

func (h *ReportHandler) GetReportsAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.reportUsecase.ReportsAnalytics(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get reports analytics")
		return
	}

	response.Success(w, http.StatusOK, "Reports analytics retrieved successfully", analytics)
}

func (h *ReportHandler) GetPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.reportUsecase.Patients(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *ReportHandler) GetPatientHistory(w http.ResponseWriter, r *http.Request) {
	patientName := r.URL.Query().Get("patient_name")
	if patientName == "" {
		response.BadRequest(w, "patient_name query parameter is required")
		return
	}

	history, err := h.reportUsecase.PatientHistory(r.Context(), patientName)
	if err != nil {
		response.InternalServerError(w, "Failed to get patient history")
		return
	}

	response.Success(w, http.StatusOK, "Patient history retrieved successfully", history)
}
