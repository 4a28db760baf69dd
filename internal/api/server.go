// Package api exposes the entity fleet over a plain REST surface (spec §5
// "a thin REST façade over the same orchestrators the MCP tools use"),
// mirroring the teacher's gin-based HTTP server.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/biomcp-go/biomcp/internal/biomcperr"
	"github.com/biomcp-go/biomcp/internal/config"
	"github.com/biomcp-go/biomcp/internal/middleware"
	"github.com/biomcp-go/biomcp/internal/orchestrators"
)

// Server represents the REST API server.
type Server struct {
	configManager *config.Manager
	fleet         *orchestrators.Fleet
	router        *gin.Engine
	server        *http.Server
}

// NewServer creates a new HTTP server instance wired to fleet.
func NewServer(configManager *config.Manager, fleet *orchestrators.Fleet) *Server {
	cfg := configManager.GetConfig()

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CorrelationID())

	server := &Server{
		configManager: configManager,
		fleet:         fleet,
		router:        router,
	}

	server.setupRoutes()

	return server
}

// Start starts the HTTP server and blocks until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.configManager.GetConfig().Server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("api server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// setupRoutes configures the /api/v1 entity routes:
// GET /api/v1/{gene,variant,disease,drug,article,trial}/:id,
// GET /api/v1/pgx/:gene/:drug, and the search routes
// GET /api/v1/{gene,variant,disease,drug,article,trial}.
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/gene/:id", s.handleGetGene)
		v1.GET("/variant/:id", s.handleGetVariant)
		v1.GET("/disease/:id", s.handleGetDisease)
		v1.GET("/drug/:id", s.handleGetDrug)
		v1.GET("/article/:id", s.handleGetArticle)
		v1.GET("/trial/:id", s.handleGetTrial)
		v1.GET("/pgx/:gene/:drug", s.handleGetPGx)

		v1.GET("/gene", s.handleSearchGene)
		v1.GET("/variant", s.handleSearchVariant)
		v1.GET("/disease", s.handleSearchDisease)
		v1.GET("/drug", s.handleSearchDrug)
		v1.GET("/article", s.handleSearchArticle)
		v1.GET("/trial", s.handleSearchTrial)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
	})
}

func sectionsParam(c *gin.Context) []string {
	if raw := c.QueryArray("section"); len(raw) > 0 {
		return raw
	}
	return nil
}

func limitParam(c *gin.Context, def int) int {
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return def
}

func writeError(c *gin.Context, err error) {
	status := http.StatusBadGateway
	if be, ok := err.(*biomcperr.Error); ok {
		switch be.Kind {
		case biomcperr.KindInvalidArgument:
			status = http.StatusBadRequest
		case biomcperr.KindNotFound:
			status = http.StatusNotFound
		case biomcperr.KindAPIKeyRequired:
			status = http.StatusUnauthorized
		}
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) handleGetGene(c *gin.Context) {
	result, err := s.fleet.Gene.Get(c.Request.Context(), c.Param("id"), sectionsParam(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleGetVariant(c *gin.Context) {
	result, err := s.fleet.Variant.Get(c.Request.Context(), c.Param("id"), sectionsParam(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleGetDisease(c *gin.Context) {
	result, err := s.fleet.Disease.Get(c.Request.Context(), c.Param("id"), sectionsParam(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleGetDrug(c *gin.Context) {
	result, err := s.fleet.Drug.Get(c.Request.Context(), c.Param("id"), sectionsParam(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleGetArticle(c *gin.Context) {
	result, err := s.fleet.Article.Get(c.Request.Context(), c.Param("id"), sectionsParam(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleGetTrial(c *gin.Context) {
	trial, err := s.fleet.Trial.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trial)
}

func (s *Server) handleGetPGx(c *gin.Context) {
	result, err := s.fleet.PGx.Get(c.Request.Context(), c.Param("gene"), c.Param("drug"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleSearchGene(c *gin.Context) {
	page, err := s.fleet.Gene.Search(c.Request.Context(), c.Query("q"), limitParam(c, 10))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleSearchVariant(c *gin.Context) {
	page, err := s.fleet.Variant.Search(c.Request.Context(), c.Query("q"), limitParam(c, 10))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleSearchDisease(c *gin.Context) {
	page, err := s.fleet.Disease.Search(c.Request.Context(), c.Query("q"), limitParam(c, 10))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleSearchDrug(c *gin.Context) {
	page, err := s.fleet.Drug.Search(c.Request.Context(), c.Query("q"), limitParam(c, 10))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleSearchArticle(c *gin.Context) {
	page, err := s.fleet.Article.Search(c.Request.Context(), orchestrators.ArticleSearchParams{
		Gene:    c.Query("gene"),
		Disease: c.Query("disease"),
		Since:   c.Query("since"),
		Limit:   limitParam(c, 10),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) handleSearchTrial(c *gin.Context) {
	trials, err := s.fleet.Trial.Search(c.Request.Context(), c.Query("q"), limitParam(c, 10))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trials)
}

// corsMiddleware adds permissive CORS headers to responses.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Expose-Headers", "Content-Length")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

