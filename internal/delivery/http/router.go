package http

import (
	"net/http"

	"medichain-service/internal/delivery/http/handler"
	"medichain-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	consultationHandler *handler.ConsultationHandler
	ledgerHandler       *handler.LedgerHandler
	seedHandler         *handler.SeedHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	consultationHandler *handler.ConsultationHandler,
	ledgerHandler *handler.LedgerHandler,
	seedHandler *handler.SeedHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		consultationHandler: consultationHandler,
		ledgerHandler:       ledgerHandler,
		seedHandler:         seedHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentProfile).Methods(http.MethodGet)
	authProtected.HandleFunc("/wallet", r.authHandler.ConnectWallet).Methods(http.MethodPost)

	// Doctor directory (protected)
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.Use(r.authMiddleware.Authenticate)
	doctors.HandleFunc("", r.consultationHandler.ListDoctors).Methods(http.MethodGet)

	// Consultations (protected)
	consultations := api.PathPrefix("/consultations").Subrouter()
	consultations.Use(r.authMiddleware.Authenticate)
	consultations.HandleFunc("", r.consultationHandler.ListConsultations).Methods(http.MethodGet)
	consultations.HandleFunc("/{id}/status", r.consultationHandler.UpdateStatus).Methods(http.MethodPost)

	// Booking is patient-only
	booking := api.PathPrefix("/consultations").Subrouter()
	booking.Use(r.authMiddleware.Authenticate)
	booking.Use(middleware.RequirePatient)
	booking.HandleFunc("", r.consultationHandler.CreateConsultation).Methods(http.MethodPost)

	// Doctor stats (doctor-only)
	doctorStats := api.PathPrefix("/doctor").Subrouter()
	doctorStats.Use(r.authMiddleware.Authenticate)
	doctorStats.Use(middleware.RequireDoctor)
	doctorStats.HandleFunc("/stats", r.consultationHandler.GetDoctorStats).Methods(http.MethodGet)

	// Ledger functions (protected)
	ledger := api.PathPrefix("/ledger").Subrouter()
	ledger.Use(r.authMiddleware.Authenticate)
	ledger.HandleFunc("/mint", r.ledgerHandler.MintNFT).Methods(http.MethodPost)
	ledger.HandleFunc("/verify-payment", r.ledgerHandler.VerifyPayment).Methods(http.MethodPost)
	ledger.HandleFunc("/accounts/{accountId}/transactions", r.ledgerHandler.GetTransactionHistory).Methods(http.MethodGet)

	// Seeding (protected)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.HandleFunc("/seed-doctors", r.seedHandler.SeedDemoDoctors).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
