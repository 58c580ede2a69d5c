// Package api exposes the reconciliation engine over HTTP.
//
// All routes live under /api and speak JSON. Engine outcomes
// (duplicates, unmatched transactions) are payload, never HTTP errors;
// error statuses are reserved for malformed requests and storage
// failures.
package api

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ledgerkit/reconcile-backend/internal/application/service"
	"github.com/ledgerkit/reconcile-backend/internal/domain/bankmatch"
	"github.com/ledgerkit/reconcile-backend/internal/domain/dedup"
	"github.com/ledgerkit/reconcile-backend/internal/domain/processor"
	"github.com/ledgerkit/reconcile-backend/internal/infrastructure/storage"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for local development.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Server is the HTTP API server.
type Server struct {
	config    Config
	router    *gin.Engine
	logger    *slog.Logger
	repo      storage.Repository
	importer  *service.ImportService
	dedupOpts dedup.Options
	processor *processor.Processor
	banks     *bankmatch.Matcher
}

// NewServer creates a new API server. dedupOpts are the configured
// detection tolerances; individual check requests may override them.
func NewServer(
	cfg Config,
	repo storage.Repository,
	importer *service.ImportService,
	dedupOpts dedup.Options,
	proc *processor.Processor,
	banks *bankmatch.Matcher,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:    cfg,
		logger:    logger,
		repo:      repo,
		importer:  importer,
		dedupOpts: dedupOpts,
		processor: proc,
		banks:     banks,
	}

	s.router = s.buildRouter()
	return s
}

// Router returns the gin engine, exposed for tests and for the caller
// that runs the listener.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the HTTP listener on the configured port.
func (s *Server) Run() error {
	addr := fmtAddr(s.config.Port)
	s.logger.Info("starting API server", "addr", addr)
	return s.router.Run(addr)
}

func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/health"},
	}))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		api.GET("/health", s.getHealth)

		api.POST("/import", s.postImport)
		api.POST("/process", s.postProcess)
		api.POST("/duplicates/check", s.postCheckDuplicate)
		api.POST("/duplicates/scan", s.postScanDuplicates)

		api.GET("/transactions", s.getTransactions)
		api.GET("/accounts", s.getAccounts)
		api.POST("/accounts", s.postAccount)
		api.GET("/accounts/suggestions", s.getAccountSuggestions)
		api.GET("/imports", s.getImportRuns)
	}

	return router
}

func fmtAddr(port int) string {
	if port <= 0 {
		port = 8080
	}
	return fmt.Sprintf(":%d", port)
}
