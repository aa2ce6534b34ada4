package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/financas-app/financas_backend/internal/core/ports/services"
	"github.com/financas-app/financas_backend/internal/dto"
	"github.com/financas-app/financas_backend/internal/middleware"
	"github.com/financas-app/financas_backend/internal/utils/dates"
	"github.com/gin-gonic/gin"
)

type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

func newBalanceHandler(bs portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{balanceService: bs}
}

// registerBalanceRoutes registers routes related to balance views.
func registerBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	balance := rg.Group("/balance")
	{
		balance.GET("", h.getSummary)
		balance.GET("/comparison", h.getComparison)
		balance.POST("/close-month", h.closeMonth)
	}
}

// getSummary godoc
// @Summary Balance summary for a month
// @Description Period income/expense over all statuses, all-time paid-only real and per-account balances, and the projected end-of-period balance
// @Tags balance
// @Produce  json
// @Param   year query int true "Calendar year"
// @Param   month0 query int true "Zero-indexed month (0-11)"
// @Success 200 {object} dto.BalanceSummaryResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /balance [get]
func (h *balanceHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.BalanceSummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for BalanceSummary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	user, ok := mustAuthUser(c)
	if !ok {
		return
	}

	from, to := dates.MonthWindow(dates.Canonical(params.Year, time.Month(params.Month0+1), 1))
	summary, err := h.balanceService.Summary(c.Request.Context(), user, from, to)
	if err != nil {
		respondServiceError(c, err, "Failed to compute balance summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSummaryResponse(summary))
}

// getComparison godoc
// @Summary Monthly income/expense comparison
// @Description Income and expense totals per month for the six month window ending at the requested month
// @Tags balance
// @Produce  json
// @Param   year query int true "Calendar year"
// @Param   month0 query int true "Zero-indexed month (0-11)"
// @Success 200 {array} dto.MonthTotalsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /balance/comparison [get]
func (h *balanceHandler) getComparison(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.BalanceSummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for MonthlyComparison", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	user, ok := mustAuthUser(c)
	if !ok {
		return
	}

	ref := dates.Canonical(params.Year, time.Month(params.Month0+1), 1)
	totals, err := h.balanceService.MonthlyComparison(c.Request.Context(), user, ref)
	if err != nil {
		respondServiceError(c, err, "Failed to compute monthly comparison")
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthTotalsResponses(totals))
}

// closeMonth godoc
// @Summary Close a month
// @Description Settles the selected accounts by creating paid adjustment transactions dated on the first day of the following month
// @Tags balance
// @Accept  json
// @Produce  json
// @Param   request body dto.CloseMonthRequest true "Close month parameters"
// @Success 200 {object} dto.CloseMonthResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /balance/close-month [post]
func (h *balanceHandler) closeMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CloseMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CloseMonth", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, ok := mustAuthUser(c)
	if !ok {
		return
	}

	result, err := h.balanceService.CloseMonth(c.Request.Context(), user, req)
	if err != nil {
		respondServiceError(c, err, "Failed to close month")
		return
	}

	logger.Info("Month closed", slog.Int("accounts_closed", result.AccountsClosed))
	c.JSON(http.StatusOK, dto.ToCloseMonthResponse(result))
}
