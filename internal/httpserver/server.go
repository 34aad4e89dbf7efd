package httpserver

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/streamverify/av1inspect/internal/config"
	"github.com/streamverify/av1inspect/internal/inspect"
	"github.com/streamverify/av1inspect/internal/metrics"
)

// AnalysisResult is one completed analysis kept in the registry.
type AnalysisResult struct {
	ID        string         `json:"id"`
	FileName  string         `json:"file_name"`
	CreatedAt time.Time      `json:"created_at"`
	Report    inspect.Report `json:"report"`
}

// Server wraps the HTTP verification service with its dependencies.
type Server struct {
	router  *gin.Engine
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu       sync.RWMutex
	analyses map[string]*AnalysisResult
	order    []string
}

// New creates a new HTTP server.
func New(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   logger.With("component", "httpserver"),
		metrics:  m,
		analyses: make(map[string]*AnalysisResult),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	router := gin.Default()

	api := router.Group("/api/v1")
	{
		api.POST("/analyze", s.handleAnalyze)
		api.GET("/analyses", s.handleListAnalyses)
		api.GET("/analyses/:id", s.handleGetAnalysis)
	}

	router.GET("/healthz", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router = router
}

// Run starts the HTTP server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	upload, err := c.FormFile("stream")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing stream upload"})
		return
	}
	if upload.Size > s.cfg.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "stream too large"})
		return
	}

	tmp, err := os.CreateTemp("", "av1inspect-*.bin")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not stage upload"})
		return
	}
	defer os.Remove(tmp.Name())

	src, err := upload.Open()
	if err != nil {
		tmp.Close()
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
		return
	}
	_, copyErr := io.Copy(tmp, src)
	src.Close()
	tmp.Close()
	if copyErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not stage upload"})
		return
	}

	report, err := inspect.AnalyzeFileWithOptions(tmp.Name(), inspect.AnalyzeOptions{
		EnableAnalysis: s.cfg.EnableAnalysis,
		FrameInterval:  uint32(s.cfg.FrameInterval),
		Logger:         s.logger,
		Metrics:        s.metrics,
	})
	if err != nil {
		s.logger.Error("analysis failed", "file", upload.Filename, "err", err)
		if s.metrics != nil {
			s.metrics.AnalysesFailed.Inc()
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	report.Ref = upload.Filename

	result := &AnalysisResult{
		ID:        uuid.NewString(),
		FileName:  upload.Filename,
		CreatedAt: time.Now(),
		Report:    report,
	}
	s.store(result)
	if s.metrics != nil {
		s.metrics.AnalysesCompleted.Inc()
		s.metrics.AnalysisBytes.Observe(float64(upload.Size))
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleListAnalyses(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*AnalysisResult, 0, len(s.order))
	for _, id := range s.order {
		results = append(results, s.analyses[id])
	}
	c.JSON(http.StatusOK, gin.H{
		"analyses": results,
		"total":    len(results),
	})
}

func (s *Server) handleGetAnalysis(c *gin.Context) {
	s.mu.RLock()
	result, ok := s.analyses[c.Param("id")]
	s.mu.RUnlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) store(result *AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.analyses[result.ID] = result
	s.order = append(s.order, result.ID)
	for len(s.order) > s.cfg.MaxAnalyses {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.analyses, oldest)
	}
}
