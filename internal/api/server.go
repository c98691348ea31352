// Package api provides the HTTP server: JSON operations for the admin
// console (inventory, CRM, policy, dispatch) and the technician app
// (job list, status updates, payment collection).
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voltdesk/voltdesk/internal/app/sales"
	"github.com/voltdesk/voltdesk/internal/domain"
)

// Version is reported by /api/version.
const Version = "0.1.0"

// paymentQR is the static transfer QR shown to technicians collecting
// payment on site. There is no payment-provider integration.
const paymentQR = "https://img.vietqr.io/image/VCB-9704360123456789-compact.png"

// Server is the VoltDesk HTTP API server.
type Server struct {
	sales          *sales.Service
	metricsEnabled bool
}

// NewServer creates a new API server over the sales service.
func NewServer(s *sales.Service) *Server {
	return &Server{sales: s}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Minute))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"version": Version})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", s.handleListOrders)
			r.Post("/", s.handleCreateOrder)
			r.Post("/quote", s.handleQuote)
			r.Get("/{id}", s.handleGetOrder)
			r.Post("/{id}/assign", s.handleAssignTechnician)
			r.Post("/{id}/status", s.handleAdvanceStatus)
			r.Post("/{id}/payment", s.handleConfirmPayment)
		})

		r.Get("/batteries", s.handleListBatteries)
		r.Post("/batteries", s.handleUpsertBattery)
		r.Get("/technicians", s.handleListTechnicians)
		r.Post("/technicians", s.handleUpsertTechnician)
		r.Get("/customers", s.handleListCustomers)
		r.Get("/policies", s.handleListPolicies)
		r.Put("/policies", s.handleUpdatePolicies)
		r.Get("/dashboard", s.handleDashboard)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// ─── Response Helpers ───────────────────────────────────────────────────────

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeDomainError maps domain error kinds onto HTTP statuses:
// ValidationError → 400, TransitionError → 409, anything else → 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case domain.IsInvalidTransition(err):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// corsMiddleware adds CORS headers for the local dashboard frontend.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
