package handlers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"investments-api/internal/auth"
	"investments-api/internal/query"
	"investments-api/internal/services"
	"investments-api/internal/stats"
	"investments-api/internal/views"
	"investments-api/pkg"
	"investments-api/pkg/utils"
)

type InvestmentHandler struct {
	logger       *zap.Logger
	investments  services.InvestmentService
	statsService services.StatsService
}

func NewInvestmentHandler(logger *zap.Logger, investments services.InvestmentService, statsService services.StatsService) *InvestmentHandler {
	return &InvestmentHandler{logger: logger, investments: investments, statsService: statsService}
}

// RegisterRoutes registers investment routes behind the bearer gate.
func (h *InvestmentHandler) RegisterRoutes(r *gin.RouterGroup, mw *auth.Middleware) {
	g := r.Group("/investments")
	g.Use(mw.Bearer())
	g.GET("", mw.RequirePermissions(auth.PermissionRead), h.List)
	g.POST("", mw.RequirePermissions(auth.PermissionWrite), h.Create)
	g.GET("/stats", mw.RequirePermissions(auth.PermissionRead), h.Stats)
}

func (h *InvestmentHandler) List(c *gin.Context) {
	traceID, err := utils.GetTraceID(c)
	if err != nil {
		pkg.WriteError(c, h.logger, err)
		return
	}

	filter := query.InvestmentFilter{
		ID:          intFilter(c, "id"),
		Amount:      numberFilter(c, "amount"),
		AnnualRate:  numberFilter(c, "annualRate"),
		ConfirmedAt: timeFilter(c, "confirmedAt"),
		CreatedAt:   timeFilter(c, "createdAt"),
		CreatedBy:   intFilter(c, "createdBy"),
	}

	response, err := h.investments.List(c.Request.Context(), traceID, filter, listOptions(c))
	if err != nil {
		pkg.WriteError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *InvestmentHandler) Create(c *gin.Context) {
	traceID, err := utils.GetTraceID(c)
	if err != nil {
		pkg.WriteError(c, h.logger, err)
		return
	}

	var req views.CreateInvestmentRequest
	if err = c.ShouldBindJSON(&req); err != nil {
		pkg.WriteError(c, h.logger, pkg.NewValidationError("Invalid payload."))
		return
	}

	created, err := h.investments.Create(c.Request.Context(), traceID, auth.AccountFromContext(c), req)
	if err != nil {
		pkg.WriteError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, views.InvestmentCreated{Data: created})
}

func (h *InvestmentHandler) Stats(c *gin.Context) {
	traceID, err := utils.GetTraceID(c)
	if err != nil {
		pkg.WriteError(c, h.logger, err)
		return
	}

	rng := query.TimeFilter{
		Gt: timeParam(c, "createdAtGt"),
		Lt: timeParam(c, "createdAtLt"),
	}
	if rng.IsZero() {
		pkg.WriteError(c, h.logger, pkg.NewValidationError("Missing or not valid required query parameter 'createdAtGt' or 'createdAtLt'."))
		return
	}

	unit, ok := stats.ParseUnit(c.Query("groupBy"))
	if !ok {
		pkg.WriteError(c, h.logger, pkg.NewValidationError("Missing or not valid required query parameter 'groupBy'. It must be 'day', 'week', 'month' or 'year'."))
		return
	}

	response, err := h.statsService.GetStats(c.Request.Context(), traceID, rng, unit)
	if err != nil {
		pkg.WriteError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Query parameter coercion. Malformed values are dropped rather than
// rejected: an unparsable filter simply does not constrain the query.

func floatParam(c *gin.Context, name string) *float64 {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return &n
}

func int64Param(c *gin.Context, name string) *int64 {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func timeParam(c *gin.Context, name string) *time.Time {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil
	}
	return &t
}

func numberFilter(c *gin.Context, name string) query.NumberFilter {
	if exact := floatParam(c, name); exact != nil {
		return query.NumberFilter{Exact: exact}
	}
	return query.NumberFilter{
		Gt: floatParam(c, name+"Gt"),
		Lt: floatParam(c, name+"Lt"),
	}
}

func intFilter(c *gin.Context, name string) query.IntFilter {
	if exact := int64Param(c, name); exact != nil {
		return query.IntFilter{Exact: exact}
	}
	return query.IntFilter{
		Gt: int64Param(c, name+"Gt"),
		Lt: int64Param(c, name+"Lt"),
	}
}

func timeFilter(c *gin.Context, name string) query.TimeFilter {
	if exact := timeParam(c, name); exact != nil {
		return query.TimeFilter{Exact: exact}
	}
	return query.TimeFilter{
		Gt: timeParam(c, name+"Gt"),
		Lt: timeParam(c, name+"Lt"),
	}
}

func listOptions(c *gin.Context) query.Options {
	opts := query.Options{
		Page:      query.DefaultPage,
		Offset:    query.DefaultOffset,
		SortBy:    "created_at",
		SortOrder: query.SortDesc,
	}
	if page := int64Param(c, "page"); page != nil && *page >= 1 {
		opts.Page = int(*page)
	}
	if offset := int64Param(c, "offset"); offset != nil && *offset > 0 {
		opts.Offset = int(*offset)
	}
	if sortBy := c.Query("sortBy"); query.IsInvestmentColumn(sortBy) {
		opts.SortBy = sortBy
	}
	if order, ok := query.ParseSortOrder(c.Query("sortOrder")); ok {
		opts.SortOrder = order
	}
	return opts
}
