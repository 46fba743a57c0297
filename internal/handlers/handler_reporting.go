package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/ledgerline/practice_backend/internal/core/ports/services"
	"github.com/ledgerline/practice_backend/internal/middleware"
)

// reportingHandler handles HTTP requests for financial statements.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the statement endpoints.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/financial-statements", h.financialStatements)
	}
}

// financialStatements godoc
// @Summary Get the financial statements
// @Description Produces the P&L and Balance Sheet from the posted ledger as of now
// @Tags reports
// @Produce  json
// @Success 200 {object} domain.FinancialStatements
// @Security BearerAuth
// @Router /reports/financial-statements [get]
func (h *reportingHandler) financialStatements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	statements, err := h.reportingService.FinancialStatements(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build financial statements", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build financial statements"})
		return
	}

	c.JSON(http.StatusOK, statements)
}
