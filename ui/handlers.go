package ui

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	apperrors "senscalc/internal/errors"
	"senscalc/models"
)

// errorResponse is the (kind, message, field) triple of the engine
// boundary contract.
type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// statusForCode maps engine error kinds to HTTP statuses. Input
// problems are the client's fault; everything else is ours.
func statusForCode(code string) int {
	switch code {
	case apperrors.CodeValidationError,
		apperrors.CodeInvalidGeometry,
		apperrors.CodeInvalidEfficiency,
		apperrors.CodeUnsupportedMode,
		apperrors.CodeDomainError:
		return http.StatusBadRequest
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) renderError(c *gin.Context, err error) {
	code := apperrors.GetCode(err)
	c.JSON(statusForCode(code), errorResponse{
		Kind:    code,
		Message: err.Error(),
		Field:   apperrors.GetField(err),
	})
}

// handleSensitivity solves for sensitivity given an integration time.
func (s *Server) handleSensitivity(c *gin.Context) {
	var req models.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Kind:    apperrors.CodeValidationError,
			Message: fmt.Sprintf("malformed request body: %v", err),
		})
		return
	}

	res, err := s.calc.SolveSensitivity(c.Request.Context(), req)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleIntegrationTime solves for the exposure time required to reach
// a target sensitivity.
func (s *Server) handleIntegrationTime(c *gin.Context) {
	var req models.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Kind:    apperrors.CodeValidationError,
			Message: fmt.Sprintf("malformed request body: %v", err),
		})
		return
	}

	res, err := s.calc.SolveTime(c.Request.Context(), req)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleCalculation lets the request shape pick the branch: whichever
// of {t_int, sensitivity} is present is the knob, the other is solved.
func (s *Server) handleCalculation(c *gin.Context) {
	var req models.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Kind:    apperrors.CodeValidationError,
			Message: fmt.Sprintf("malformed request body: %v", err),
		})
		return
	}

	res, err := s.calc.Solve(c.Request.Context(), req)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// handleReport solves the request and streams the result as an xlsx
// report.
func (s *Server) handleReport(c *gin.Context) {
	var req models.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Kind:    apperrors.CodeValidationError,
			Message: fmt.Sprintf("malformed request body: %v", err),
		})
		return
	}

	res, err := s.calc.Solve(c.Request.Context(), req)
	if err != nil {
		s.renderError(c, err)
		return
	}

	data, err := s.report.WriteResult(*res)
	if err != nil {
		s.logger.Error("report rendering failed for %s: %v", res.ID, err)
		c.JSON(http.StatusInternalServerError, errorResponse{
			Kind:    apperrors.CodeInternalError,
			Message: "failed to render report",
		})
		return
	}

	filename := fmt.Sprintf("calculation-%s.xlsx", res.ID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// handleParamValuesUnits serves the parameter catalogue the form is
// built from.
func (s *Server) handleParamValuesUnits(c *gin.Context) {
	c.JSON(http.StatusOK, models.ParameterValuesUnits())
}

// handleHistoryList lists recent calculations when a database is
// configured.
func (s *Server) handleHistoryList(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusNotFound, errorResponse{
			Kind:    apperrors.CodeNotFound,
			Message: "calculation history is not configured",
		})
		return
	}

	limitStr := c.DefaultQuery("limit", "20")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > 200 {
		limit = 20
	}

	recs, err := s.history.ListRecent(c.Request.Context(), limit)
	if err != nil {
		s.logger.Error("failed to list calculations: %v", err)
		c.JSON(http.StatusInternalServerError, errorResponse{
			Kind:    apperrors.CodeDatabaseError,
			Message: "failed to retrieve calculations",
		})
		return
	}
	c.JSON(http.StatusOK, recs)
}

// handleHistoryGet fetches one stored calculation by ID.
func (s *Server) handleHistoryGet(c *gin.Context) {
	if s.history == nil {
		c.JSON(http.StatusNotFound, errorResponse{
			Kind:    apperrors.CodeNotFound,
			Message: "calculation history is not configured",
		})
		return
	}

	rec, err := s.history.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, apperrors.FromDomain(err))
		return
	}
	c.JSON(http.StatusOK, rec)
}

// handleCalculatorForm renders the interactive calculator page.
func (s *Server) handleCalculatorForm(c *gin.Context) {
	c.HTML(http.StatusOK, "calculator.html", gin.H{
		"Params": models.ParameterValuesUnits(),
		"Modes": []string{
			"total_power_continuum", "total_power_spectral",
			"on_off_continuum", "on_off_spectral",
		},
	})
}

// handleDocs renders the embedded parameter documentation.
func (s *Server) handleDocs(c *gin.Context) {
	src, err := embeddedFiles.ReadFile("docs/parameters.md")
	if err != nil {
		s.logger.Error("missing embedded docs: %v", err)
		c.String(http.StatusInternalServerError, "documentation unavailable")
		return
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	body := markdown.ToHTML(src, p, renderer)

	c.HTML(http.StatusOK, "docs.html", gin.H{
		"Body": template.HTML(body),
	})
}
