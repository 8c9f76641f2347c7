// Package server is the HTTP control panel: it launches and supervises the
// external upload/fetch scripts, exposes their status and logs, and triggers
// beverage invoice replacement runs.
package server

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"taxtool/internal/config"
	"taxtool/internal/logger"
	"taxtool/internal/replacement"
	"taxtool/internal/runner"
)

// uploadMarkers are the upload script's progress lines surfaced as the
// panel's "current activity".
var uploadMarkers = []string{"uploading:", "processing...", "thành công", "thất bại"}

// Server wires the control panel routes to the runners and the replacement
// orchestrator.
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	upload *runner.Runner
	fetch  *runner.Runner
	orch   *replacement.Orchestrator
	hub    *Hub
	log    zerolog.Logger
}

// New builds a fully wired control panel server.
func New(cfg *config.Config) (*Server, error) {
	store, err := replacement.NewDirStore(cfg.TaxFilesDir)
	if err != nil {
		return nil, err
	}
	quota := replacement.NewQuotaTracker(cfg.StateFile)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	hub := NewHub()
	go hub.Run()

	s := &Server{
		cfg:    cfg,
		upload: runner.New("upload", runner.WithMarkers(uploadMarkers...), runner.WithLineHook(hub.Broadcast)),
		fetch:  runner.New("fetch", runner.WithLineHook(hub.Broadcast)),
		orch:   replacement.NewOrchestrator(store, quota, cfg.LogDir, rng),
		hub:    hub,
		log:    logger.WithComponent("server"),
	}
	s.engine = s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	api := router.Group("/api")
	{
		api.GET("/status", s.getStatus)
		api.POST("/start", s.startUpload)
		api.POST("/stop", s.stopUpload)
		api.POST("/reset", s.reset)
		api.GET("/logs", s.getLogs)
		api.POST("/clear-logs", s.clearLogs)
		api.POST("/clear-files", s.clearTaxFiles)
		api.POST("/clear-data-files", s.clearDataFiles)
		api.POST("/fetch-data", s.startFetch)
		api.GET("/fetch-status", s.getFetchStatus)
		api.POST("/beverage-replace", s.beverageReplace)
	}

	router.GET("/ws", s.hub.ServeWS)

	return router
}

// Run serves the control panel until the listener fails.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.log.Info().Str("addr", addr).Msg("Control panel listening")
	return s.engine.Run(addr)
}

// Engine exposes the router, used by tests and by the serve command's
// browser auto-open.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Close stops the log-stream hub's dispatch goroutine.
func (s *Server) Close() {
	s.hub.Close()
}
