package http

import (
	"net/http"

	"github.com/derf567/SPMC-OJT-REFERRAL/internal/delivery/http/handler"
	"github.com/derf567/SPMC-OJT-REFERRAL/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	hospitalHandler    *handler.HospitalHandler
	specialtyHandler   *handler.SpecialtyHandler
	referralHandler    *handler.ReferralHandler
	transitInfoHandler *handler.TransitInfoHandler
	documentHandler    *handler.DocumentHandler
	reportHandler      *handler.ReportHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	hospitalHandler *handler.HospitalHandler,
	specialtyHandler *handler.SpecialtyHandler,
	referralHandler *handler.ReferralHandler,
	transitInfoHandler *handler.TransitInfoHandler,
	documentHandler *handler.DocumentHandler,
	reportHandler *handler.ReportHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		hospitalHandler:    hospitalHandler,
		specialtyHandler:   specialtyHandler,
		referralHandler:    referralHandler,
		transitInfoHandler: transitInfoHandler,
		documentHandler:    documentHandler,
		reportHandler:      reportHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetProfile).Methods(http.MethodGet)

	// Reference data, readable without a token so the external intake form
	// can populate its dropdowns
	api.HandleFunc("/hospitals", r.hospitalHandler.ListHospitals).Methods(http.MethodGet)
	api.HandleFunc("/hospitals/{id:[0-9]+}", r.hospitalHandler.GetHospital).Methods(http.MethodGet)
	api.HandleFunc("/specialties", r.specialtyHandler.ListSpecialties).Methods(http.MethodGet)
	api.HandleFunc("/specialties/{id:[0-9]+}", r.specialtyHandler.GetSpecialty).Methods(http.MethodGet)

	// External intake: anonymous submissions are attributed to the system
	// account, authenticated ones to the caller
	api.Handle("/referrals",
		r.authMiddleware.AuthenticateOptional(http.HandlerFunc(r.referralHandler.CreateReferral))).
		Methods(http.MethodPost)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/users", r.authHandler.RegisterUser).Methods(http.MethodPost)

	admin.HandleFunc("/hospitals", r.hospitalHandler.CreateHospital).Methods(http.MethodPost)
	admin.HandleFunc("/hospitals/{id:[0-9]+}", r.hospitalHandler.UpdateHospital).Methods(http.MethodPut)
	admin.HandleFunc("/hospitals/{id:[0-9]+}", r.hospitalHandler.DeleteHospital).Methods(http.MethodDelete)

	admin.HandleFunc("/specialties", r.specialtyHandler.CreateSpecialty).Methods(http.MethodPost)
	admin.HandleFunc("/specialties/{id:[0-9]+}", r.specialtyHandler.UpdateSpecialty).Methods(http.MethodPut)
	admin.HandleFunc("/specialties/{id:[0-9]+}", r.specialtyHandler.DeleteSpecialty).Methods(http.MethodDelete)

	// Staff routes (protected)
	staff := api.NewRoute().Subrouter()
	staff.Use(r.authMiddleware.Authenticate)

	staff.HandleFunc("/referrals", r.referralHandler.ListReferrals).Methods(http.MethodGet)
	staff.HandleFunc("/referrals/my-referrals", r.referralHandler.GetMyReferrals).Methods(http.MethodGet)
	staff.HandleFunc("/referrals/dashboard-stats", r.reportHandler.GetDashboardStats).Methods(http.MethodGet)
	staff.HandleFunc("/referrals/patients", r.reportHandler.GetPatients).Methods(http.MethodGet)
	staff.HandleFunc("/referrals/patient-history", r.reportHandler.GetPatientHistory).Methods(http.MethodGet)
	staff.HandleFunc("/referrals/reports-analytics", r.reportHandler.GetReportsAnalytics).Methods(http.MethodGet)
	staff.HandleFunc("/referrals/{id:[0-9]+}", r.referralHandler.GetReferral).Methods(http.MethodGet)
	staff.HandleFunc("/referrals/{id:[0-9]+}", r.referralHandler.UpdateReferral).Methods(http.MethodPut, http.MethodPatch)
	staff.HandleFunc("/referrals/{id:[0-9]+}", r.referralHandler.DeleteReferral).Methods(http.MethodDelete)

	// Workflow actions; role checks live in the usecase layer
	staff.HandleFunc("/referrals/{id:[0-9]+}/update-status", r.referralHandler.UpdateStatus).Methods(http.MethodPost)
	staff.HandleFunc("/referrals/{id:[0-9]+}/transfer-to-triage", r.referralHandler.TransferToTriage).Methods(http.MethodPost)
	staff.HandleFunc("/referrals/{id:[0-9]+}/accept-with-triage-decision", r.referralHandler.AcceptWithTriageDecision).Methods(http.MethodPost)
	staff.HandleFunc("/referrals/{id:[0-9]+}/assign-to-me", r.referralHandler.AssignToMe).Methods(http.MethodPost)

	// Documents
	staff.HandleFunc("/referrals/{id:[0-9]+}/documents", r.documentHandler.UploadDocument).Methods(http.MethodPost)
	staff.HandleFunc("/referrals/{id:[0-9]+}/documents", r.documentHandler.ListDocuments).Methods(http.MethodGet)

	// Transit info
	staff.HandleFunc("/transit-info", r.transitInfoHandler.CreateTransitInfo).Methods(http.MethodPost)
	staff.HandleFunc("/transit-info", r.transitInfoHandler.ListTransitInfos).Methods(http.MethodGet)
	staff.HandleFunc("/transit-info/{id:[0-9]+}", r.transitInfoHandler.GetTransitInfo).Methods(http.MethodGet)
	staff.HandleFunc("/transit-info/{id:[0-9]+}", r.transitInfoHandler.UpdateTransitInfo).Methods(http.MethodPut, http.MethodPatch)
	staff.HandleFunc("/transit-info/{id:[0-9]+}", r.transitInfoHandler.DeleteTransitInfo).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
