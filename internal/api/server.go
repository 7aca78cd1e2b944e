package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/certverify/verification/internal/api/handler"
	mw "github.com/certverify/verification/internal/api/middleware"
	"github.com/certverify/verification/internal/config"
	"github.com/certverify/verification/internal/core"
	"github.com/certverify/verification/internal/crypto"
	"github.com/certverify/verification/internal/registry"
)

type Server struct {
	router   chi.Router
	logger   zerolog.Logger
	verifier *core.VerificationService
	verlog   *core.VerificationLogService
	certs    *registry.CertificateClient
	auths    *registry.AuthorityClient
	pool     *pgxpool.Pool
	cfg      *config.Config
	limiter  *mw.RateLimiter
}

// NewServer wires the registry clients and verification services into a
// chi router. pool may be nil, in which case verification logging and
// the history endpoint are disabled.
func NewServer(logger zerolog.Logger, pool *pgxpool.Pool, cfg *config.Config) *Server {
	certs := registry.NewCertificateClient(cfg.CertificateServiceURL, cfg.CollaboratorTimeout)
	auths := registry.NewAuthorityClient(cfg.UniversityServiceURL, cfg.CollaboratorTimeout, cfg.AuthorityCacheTTL)

	var verlog *core.VerificationLogService
	if pool != nil {
		verlog = core.NewVerificationLogService(pool, logger)
	}

	verifier := core.NewVerificationService(certs, auths, crypto.VerifySignature, verlog, logger)
	if cfg.BulkMaxConcurrency > 0 {
		verifier.SetBulkConcurrency(cfg.BulkMaxConcurrency)
	}

	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		verifier: verifier,
		verlog:   verlog,
		certs:    certs,
		auths:    auths,
		pool:     pool,
		cfg:      cfg,
		limiter:  mw.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint
	s.router.Handle("/metrics", promhttp.Handler())

	// Health check endpoints
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	s.router.Route("/api/verify", func(r chi.Router) {
		r.Use(s.limiter.Middleware)

		v := handler.NewVerification(s.verifier, s.verlog)
		r.Post("/", v.Verify)
		r.Post("/bulk", v.VerifyBulk)
		r.Get("/code/{verificationCode}", v.VerifyByCode)
		r.Get("/{certificateId}", v.VerifyByID)
		r.Get("/{certificateId}/history", v.History)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := s.certs.Health(ctx); err != nil {
		checks["certificate_service"] = err.Error()
		healthy = false
	} else {
		checks["certificate_service"] = "ok"
	}

	if err := s.auths.Health(ctx); err != nil {
		checks["university_service"] = err.Error()
		healthy = false
	} else {
		checks["university_service"] = "ok"
	}

	if s.pool != nil {
		if err := s.pool.Ping(ctx); err != nil {
			checks["db"] = err.Error()
			healthy = false
		} else {
			checks["db"] = "ok"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
