package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	openapimiddleware "github.com/oapi-codegen/nethttp-middleware"

	"github.com/cargotrack-platform/api/internal/audit"
	"github.com/cargotrack-platform/api/internal/config"
	"github.com/cargotrack-platform/api/internal/handlers"
	"github.com/cargotrack-platform/api/internal/httpx"
	"github.com/cargotrack-platform/api/internal/importer"
	"github.com/cargotrack-platform/api/internal/middleware"
	"github.com/cargotrack-platform/api/internal/store"
)

func NewRouter(cfg config.Config, st *store.Store, logger *slog.Logger) (http.Handler, error) {
	if _, err := os.Stat(cfg.OpenAPISpecPath); err != nil {
		return nil, fmt.Errorf("openapi spec not found at %s: %w", cfg.OpenAPISpecPath, err)
	}

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(cfg.OpenAPISpecPath)
	if err != nil {
		return nil, fmt.Errorf("load openapi spec: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi spec: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.SecurityHeaders(cfg.Env))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.LimitBodyBytesWithOverrides(cfg.APIMaxBodyBytes, []middleware.BodyLimitOverride{
		// Multipart framing adds overhead on top of the file itself.
		{PathPrefix: "/imports", MaxBytes: cfg.ImportMaxFileBytes + 1<<20},
	}))

	api := chi.NewRouter()
	api.Use(openapimiddleware.OapiRequestValidatorWithOptions(doc, &openapimiddleware.Options{
		SilenceServersWarning: true,
		ErrorHandler: func(w http.ResponseWriter, message string, statusCode int) {
			requestID := w.Header().Get("X-Request-Id")
			httpx.WriteJSON(w, statusCode, httpx.ErrorEnvelope{
				Error:     httpx.ErrorBody{Code: "validation_error", Message: message},
				RequestID: requestID,
			})
		},
	}))

	auditLogger := audit.NewLogger(st)
	engine := importer.NewEngine(st, logger)
	h := handlers.NewServer(cfg, engine, auditLogger, logger)

	importLimiter := middleware.NewIPRateLimiter(cfg.ImportRatePerMin, time.Minute)

	api.Get("/health", h.GetHealth)
	api.With(importLimiter.Middleware("Too many import requests")).Post("/imports", h.PostImports)

	r.Mount("/api", api)
	return r, nil
}
