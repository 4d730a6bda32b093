// Package ui is the web boundary of the calculator: a JSON API
// mirroring the engine call contract plus a small HTML form for
// interactive use. It maps engine error kinds to HTTP statuses; the
// engine itself never formats HTML or status codes.
package ui

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"senscalc/app"
	"senscalc/internal"
	"senscalc/ports"
)

//go:embed templates/* docs/*
var embeddedFiles embed.FS

// Server represents the calculator web server
type Server struct {
	router    *gin.Engine
	calc      *app.CalculatorService
	history   ports.CalculationHistoryRepository
	report    ports.ReportWriter
	logger    *internal.Logger
	templates *template.Template
}

// NewServer creates a new web server instance. history may be nil when
// no database is configured; the history endpoints then return 404.
func NewServer(calc *app.CalculatorService, history ports.CalculationHistoryRepository, report ports.ReportWriter, logger *internal.Logger) (*Server, error) {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}

	tmpl, err := template.New("").ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:    gin.Default(),
		calc:      calc,
		history:   history,
		report:    report,
		logger:    logger,
		templates: tmpl,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.router.SetHTMLTemplate(s.templates)

	s.router.GET("/", s.handleCalculatorForm)
	s.router.GET("/docs", s.handleDocs)
	s.router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	v1 := s.router.Group("/v1")
	{
		v1.POST("/sensitivity", s.handleSensitivity)
		v1.POST("/integration-time", s.handleIntegrationTime)
		v1.POST("/calculation", s.handleCalculation)
		v1.POST("/report", s.handleReport)
		v1.GET("/param-values-units", s.handleParamValuesUnits)
		v1.GET("/calculations", s.handleHistoryList)
		v1.GET("/calculations/:id", s.handleHistoryGet)
	}
}

// Handler exposes the router for tests and for main.
func (s *Server) Handler() http.Handler {
	return s.router
}

// HTTPServer wraps the router into a configured http.Server.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
