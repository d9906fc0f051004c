// Package server exposes the amortization engine and the formula calculators
// over an HTTP JSON API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/iwvelando/loan-calculator/internal/optimizer"
	"github.com/iwvelando/loan-calculator/pkg/calculators"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/validation"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Options configures NewHandler.
type Options struct {
	MaxBodySize    int64
	Version        string
	TaxSchedule    calculators.TaxSchedule
	AllowedOrigins []string
	// Limiter, when set, is applied to every request.
	Limiter *RateLimiter
}

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	tax         calculators.TaxSchedule
	limiter     *RateLimiter
	generator   *loans.AmortizationScheduleGenerator
	optimizer   *optimizer.Runner
}

// NewHandler constructs the HTTP handler that serves the calculator API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = constants.DefaultMaxBodySizeBytes
	}

	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}

	tax := opts.TaxSchedule
	if len(tax.Slabs) == 0 {
		tax = calculators.DefaultTaxSchedule()
	}

	h := &handler{
		logger:      logger,
		maxBodySize: opts.MaxBodySize,
		version:     version,
		tax:         tax,
		limiter:     opts.Limiter,
		generator:   loans.NewAmortizationScheduleGenerator(logger),
		optimizer:   optimizer.NewRunner(logger),
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/amortization", h.handleAmortization).Methods(http.MethodPost)
	r.HandleFunc("/api/amortization/chart", h.handleAmortizationChart).Methods(http.MethodGet)
	r.HandleFunc("/api/amortization/optimize", h.handleOptimize).Methods(http.MethodPost)
	r.HandleFunc("/api/calculators/tax", h.handleTax).Methods(http.MethodPost)
	r.HandleFunc("/api/calculators/gratuity", h.handleGratuity).Methods(http.MethodPost)
	r.HandleFunc("/api/calculators/creatinine-clearance", h.handleCreatinineClearance).Methods(http.MethodPost)
	r.HandleFunc("/api/calculators/body-surface-area", h.handleBodySurfaceArea).Methods(http.MethodPost)
	r.HandleFunc("/api/calculators/fuel-efficiency", h.handleFuelEfficiency).Methods(http.MethodPost)
	r.HandleFunc("/api/version", h.handleVersion).Methods(http.MethodGet)

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.respondError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), "server.router")
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.respondError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound), "server.router")
	})

	var next http.Handler = r
	if h.limiter != nil {
		next = h.rateLimit(next)
	}
	if len(opts.AllowedOrigins) > 0 {
		next = cors.New(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", RequestIDHeader},
			ExposedHeaders: []string{RequestIDHeader},
		}).Handler(next)
	}
	return withRequestID(h.logRequests(next))
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeJSON reads a single JSON object from the request body into dst,
// rejecting unknown fields and bodies over the configured limit.
func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) (int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return http.StatusRequestEntityTooLarge, fmt.Errorf("request body exceeds limit of %d bytes", h.maxBodySize)
		}
		if errors.Is(err, io.EOF) {
			return http.StatusBadRequest, errors.New("request body is empty")
		}
		return http.StatusBadRequest, fmt.Errorf("failed to decode request: %w", err)
	}

	if decoder.More() {
		return http.StatusBadRequest, errors.New("request body must contain a single JSON object")
	}
	return http.StatusOK, nil
}

// statusFor maps calculation errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, calculators.ErrInvalidInput),
		errors.Is(err, validation.ErrInvalidLoanTerms),
		errors.Is(err, optimizer.ErrInvalidTarget):
		return http.StatusBadRequest
	case errors.Is(err, loans.ErrScheduleNotAmortizing):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	log := h.logger.Warn
	if status >= http.StatusInternalServerError {
		log = h.logger.Error
	}
	log("calculator request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
