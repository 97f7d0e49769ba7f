package handlers

import (
	"net/http"
	"strconv"

	"github.com/jordanlanch/salespipe/ent"
	apierrors "github.com/jordanlanch/salespipe/pkg/api/errors"
	"github.com/jordanlanch/salespipe/pkg/dashboard"
	"github.com/labstack/echo/v4"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	service *dashboard.Service
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats godoc
// @Summary Dashboard stats
// @Description Headline numbers over the caller's visibility scope
// @Tags Dashboard
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	resp, err := h.service.Stats(c.Request().Context(), actor)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// LeadsByStatus godoc
// @Summary Leads per status
// @Tags Dashboard
// @Produce json
// @Success 200 {array} models.StatusCount
// @Security BearerAuth
// @Router /dashboard/leads-by-status [get]
func (h *DashboardHandler) LeadsByStatus(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	resp, err := h.service.LeadsByStatus(c.Request().Context(), actor)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// LeadsBySource godoc
// @Summary Leads per source
// @Tags Dashboard
// @Produce json
// @Success 200 {array} models.SourceCount
// @Security BearerAuth
// @Router /dashboard/leads-by-source [get]
func (h *DashboardHandler) LeadsBySource(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	resp, err := h.service.LeadsBySource(c.Request().Context(), actor)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// SalesPipeline godoc
// @Summary Open pipeline
// @Description Open leads per stage in fixed stage order; won and lost are excluded
// @Tags Dashboard
// @Produce json
// @Success 200 {array} models.PipelineStage
// @Security BearerAuth
// @Router /dashboard/sales-pipeline [get]
func (h *DashboardHandler) SalesPipeline(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	resp, err := h.service.SalesPipeline(c.Request().Context(), actor)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// RecentActivities godoc
// @Summary Recent activities
// @Tags Dashboard
// @Produce json
// @Param limit query int false "Max rows (default 10, max 50)"
// @Success 200 {array} models.ActivityResponse
// @Security BearerAuth
// @Router /dashboard/recent-activities [get]
func (h *DashboardHandler) RecentActivities(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	resp, err := h.service.RecentActivities(c.Request().Context(), actor, limit)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// TeamPerformance godoc
// @Summary Team performance
// @Description Per-user lead outcomes; admins and managers only
// @Tags Dashboard
// @Produce json
// @Success 200 {array} models.TeamMemberPerformance
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /dashboard/team-performance [get]
func (h *DashboardHandler) TeamPerformance(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	resp, err := h.service.TeamPerformance(c.Request().Context(), actor)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}
