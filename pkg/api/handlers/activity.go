package handlers

import (
	"net/http"
	"strconv"

	"github.com/jordanlanch/salespipe/ent"
	"github.com/jordanlanch/salespipe/pkg/activities"
	apierrors "github.com/jordanlanch/salespipe/pkg/api/errors"
	"github.com/jordanlanch/salespipe/pkg/metrics"
	"github.com/jordanlanch/salespipe/pkg/models"
	"github.com/labstack/echo/v4"
)

// ActivityHandler handles activity endpoints
type ActivityHandler struct {
	service *activities.Service
	metrics *metrics.Metrics
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(service *activities.Service, m *metrics.Metrics) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		metrics: m,
	}
}

// List godoc
// @Summary List activities
// @Description Lists activities visible to the caller with filters and pagination
// @Tags Activities
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Param type query string false "Filter by activity type"
// @Param lead_id query int false "Filter by lead"
// @Param user_id query int false "Filter by author"
// @Success 200 {object} models.ActivityListResponse
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /activities [get]
func (h *ActivityHandler) List(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	var req models.ListActivitiesRequest
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
// @Summary Get an activity
// @Tags Activities
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} models.ActivityResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /activities/{id} [get]
func (h *ActivityHandler) Get(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_id",
			Message: "Activity ID must be an integer",
		})
	}

	resp, err := h.service.GetByID(c.Request().Context(), actor, id)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Record an activity
// @Description Records a note, call, meeting or email against a lead
// @Tags Activities
// @Accept json
// @Produce json
// @Param request body models.CreateActivityRequest true "Activity data"
// @Success 201 {object} models.ActivityResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /activities [post]
func (h *ActivityHandler) Create(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	var req models.CreateActivityRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}

	resp, err := h.service.Create(c.Request().Context(), actor, req)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	if h.metrics != nil {
		h.metrics.RecordActivity(resp.Type)
	}

	return c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary Update an activity
// @Description Patches an activity; only the author or an admin may edit it
// @Tags Activities
// @Accept json
// @Produce json
// @Param id path int true "Activity ID"
// @Param request body models.UpdateActivityRequest true "Fields to patch"
// @Success 200 {object} models.ActivityResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /activities/{id} [put]
func (h *ActivityHandler) Update(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_id",
			Message: "Activity ID must be an integer",
		})
	}

	var req models.UpdateActivityRequest
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
// @Summary Delete an activity
// @Description Deletes an activity; only the author or an admin may delete it
// @Tags Activities
// @Produce json
// @Param id path int true "Activity ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /activities/{id} [delete]
func (h *ActivityHandler) Delete(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_id",
			Message: "Activity ID must be an integer",
		})
	}

	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		return apierrors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Message: "Activity deleted",
	})
}

// ListByLead godoc
// @Summary Lead activity history
// @Description Full activity history for one lead, newest first
// @Tags Activities
// @Produce json
// @Param id path int true "Lead ID"
// @Success 200 {array} models.ActivityResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /leads/{id}/activities [get]
func (h *ActivityHandler) ListByLead(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	leadID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_id",
			Message: "Lead ID must be an integer",
		})
	}

	resp, err := h.service.ListByLead(c.Request().Context(), actor, leadID)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}
