// Package api provides the HTTP server for Pawden: owner pet management
// endpoints plus the public shared-link surface for visitors.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pawden-app/pawden/internal/app/keeper"
	"github.com/pawden-app/pawden/internal/app/notify"
	"github.com/pawden-app/pawden/internal/domain"
)

// Server is the Pawden HTTP API server.
type Server struct {
	keeper         *keeper.Service
	notify         *notify.Service
	healthy        func() error
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(k *keeper.Service, n *notify.Service) *Server {
	return &Server{keeper: k, notify: n}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHealthCheck sets the liveness probe behind /health.
func (s *Server) SetHealthCheck(fn func() error) { s.healthy = fn }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if s.healthy != nil {
			if err := s.healthy(); err != nil {
				writeError(w, http.StatusServiceUnavailable, err.Error())
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": Version})
	})

	// Owner endpoints. The owner id arrives from the fronting identity
	// layer as a header; authentication itself is out of scope here.
	r.Route("/api/pets", func(r chi.Router) {
		r.Post("/", s.handleCreatePet)
		r.Get("/", s.handleListPets)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handlePetStatus)
			r.Delete("/", s.handleDeletePet)
			r.Post("/actions", s.handleOwnerAction)
			r.Get("/history", s.handleHistory)
			r.Post("/sharing", s.handleSharing)
			r.Post("/purchase", s.handlePurchase)
			r.Post("/accessories/equip", s.handleEquip)
			r.Post("/accessories/unequip", s.handleUnequip)
		})
	})

	r.Get("/api/shop", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, keeper.Catalog())
	})

	// Owner notification feed
	r.Route("/api/events", func(r chi.Router) {
		r.Get("/", s.handleEvents)
		r.Post("/{id}/shown", s.handleEventShown)
	})

	// Public shared-link surface. Visitors identify with a per-device
	// pseudonymous id, never an account.
	r.Route("/api/shared/{shareId}", func(r chi.Router) {
		r.Get("/", s.handleSharedStatus)
		r.Post("/actions", s.handleSharedAction)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// Version is set from the build by the daemon.
var Version = "dev"

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeDomainError maps the engine's error taxonomy onto HTTP statuses.
// Cooldowns carry their remaining seconds so clients can count down.
func writeDomainError(w http.ResponseWriter, err error) {
	if ce, ok := domain.IsCooldown(err); ok {
		writeJSON(w, http.StatusTooManyRequests, map[string]interface{}{
			"error": map[string]interface{}{
				"message":           ce.Error(),
				"type":              "cooldown",
				"remaining_seconds": ce.Remaining,
			},
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrPetNotFound), errors.Is(err, domain.ErrSharingDisabled):
		// A disabled share link reads as absent so existence is not leaked.
		writeError(w, http.StatusNotFound, domain.ErrPetNotFound.Error())
	case errors.Is(err, domain.ErrInvalidAction),
		errors.Is(err, domain.ErrUnknownItem),
		errors.Is(err, domain.ErrItemNotOwned),
		errors.Is(err, domain.ErrNotAccessory):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInsufficientCoins):
		writeError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, domain.ErrWriteConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Owner-ID, X-Visitor-ID")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
