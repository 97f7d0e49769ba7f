package handlers

import (
	"net/http"
	"strconv"

	"github.com/jordanlanch/salespipe/ent"
	apierrors "github.com/jordanlanch/salespipe/pkg/api/errors"
	"github.com/jordanlanch/salespipe/pkg/leads"
	"github.com/jordanlanch/salespipe/pkg/metrics"
	"github.com/jordanlanch/salespipe/pkg/models"
	"github.com/labstack/echo/v4"
)

// LeadHandler handles lead endpoints
type LeadHandler struct {
	service *leads.Service
	metrics *metrics.Metrics
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(service *leads.Service, m *metrics.Metrics) *LeadHandler {
	return &LeadHandler{
		service: service,
		metrics: m,
	}
}

// List godoc
// @Summary List leads
// @Description Lists leads visible to the caller with filters, search and pagination
// @Tags Leads
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Param status query string false "Filter by status"
// @Param assigned_to_id query int false "Filter by assignee"
// @Param search query string false "Substring search over name, email and company"
// @Param sort_by query string false "Sort field"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} models.LeadListResponse
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /leads [get]
func (h *LeadHandler) List(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	var req models.ListLeadsRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}

	resp, err := h.service.List(c.Request().Context(), actor, req)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a lead
// @Description Returns one lead with its assignee, creator and full activity history
// @Tags Leads
// @Produce json
// @Param id path int true "Lead ID"
// @Success 200 {object} models.LeadResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /leads/{id} [get]
func (h *LeadHandler) Get(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_id",
			Message: "Lead ID must be an integer",
		})
	}

	resp, err := h.service.GetByID(c.Request().Context(), actor, id)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Create a lead
// @Description Creates a lead; the assignee defaults to the caller
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body models.CreateLeadRequest true "Lead data"
// @Success 201 {object} models.LeadResponse
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /leads [post]
func (h *LeadHandler) Create(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	var req models.CreateLeadRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}

	resp, err := h.service.Create(c.Request().Context(), actor, req)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	if h.metrics != nil {
		h.metrics.RecordLeadCreated()
	}

	return c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary Update a lead
// @Description Applies a partial patch to a lead
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path int true "Lead ID"
// @Param request body models.UpdateLeadRequest true "Fields to patch"
// @Success 200 {object} models.LeadResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /leads/{id} [put]
func (h *LeadHandler) Update(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_id",
			Message: "Lead ID must be an integer",
		})
	}

	var req models.UpdateLeadRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}

	resp, err := h.service.Update(c.Request().Context(), actor, id, req)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Delete a lead
// @Description Deletes a lead and its activity history
// @Tags Leads
// @Produce json
// @Param id path int true "Lead ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /leads/{id} [delete]
func (h *LeadHandler) Delete(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_id",
			Message: "Lead ID must be an integer",
		})
	}

	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		return apierrors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "Lead deleted",
	})
}

// Assign godoc
// @Summary Assign a lead
// @Description Reassigns a lead to another user and notifies them
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path int true "Lead ID"
// @Param request body models.AssignLeadRequest true "New assignee"
// @Success 200 {object} models.LeadResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /leads/{id}/assign [post]
func (h *LeadHandler) Assign(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_id",
			Message: "Lead ID must be an integer",
		})
	}

	var req models.AssignLeadRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}

	resp, err := h.service.Assign(c.Request().Context(), actor, id, req)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	if h.metrics != nil {
		h.metrics.RecordLeadAssigned()
	}

	return c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary Update lead status
// @Description Transitions a lead to a new pipeline status
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path int true "Lead ID"
// @Param request body models.UpdateLeadStatusRequest true "New status"
// @Success 200 {object} models.LeadResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /leads/{id}/status [patch]
func (h *LeadHandler) UpdateStatus(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_id",
			Message: "Lead ID must be an integer",
		})
	}

	var req models.UpdateLeadStatusRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}

	resp, err := h.service.SetStatus(c.Request().Context(), actor, id, req)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	if h.metrics != nil {
		h.metrics.RecordStatusTransition(resp.Status)
	}

	return c.JSON(http.StatusOK, resp)
}
