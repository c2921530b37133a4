package handlers

import (
	"log/slog"
	"net/http"

	"github.com/cargotrack-platform/api/internal/audit"
	"github.com/cargotrack-platform/api/internal/config"
	"github.com/cargotrack-platform/api/internal/httpx"
	"github.com/cargotrack-platform/api/internal/importer"
)

type Server struct {
	Config config.Config
	Engine *importer.Engine
	Audit  *audit.Logger
	Logger *slog.Logger
}

func NewServer(cfg config.Config, engine *importer.Engine, auditLogger *audit.Logger, logger *slog.Logger) *Server {
	return &Server{Config: cfg, Engine: engine, Audit: auditLogger, Logger: logger}
}

func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
