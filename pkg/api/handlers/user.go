package handlers

import (
	"net/http"
	"strconv"

	"github.com/jordanlanch/salespipe/ent"
	apierrors "github.com/jordanlanch/salespipe/pkg/api/errors"
	"github.com/jordanlanch/salespipe/pkg/models"
	"github.com/jordanlanch/salespipe/pkg/users"
	"github.com/labstack/echo/v4"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	service *users.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(service *users.Service) *UserHandler {
	return &UserHandler{service: service}
}

// List godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param role query string false "Filter by role"
// @Param search query string false "Match against name or email"
// @Success 200 {object} models.UserListResponse
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	if _, ok := c.Get("actor").(*ent.User); !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	var req models.ListUsersRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BindError(c)
	}

	resp, err := h.service.List(c.Request().Context(), req)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.UserResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_id",
			Message: "User ID must be a number",
		})
	}

	resp, err := h.service.GetByID(c.Request().Context(), actor, id)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Update a user
// @Description Users may rename themselves; email, role and active state are admin only
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body models.UpdateUserRequest true "Fields to change"
// @Success 200 {object} models.UserResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_id",
			Message: "User ID must be a number",
		})
	}

	var req models.UpdateUserRequest
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
// @Summary Delete a user
// @Description Admin only; the user's leads are unassigned first
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.SuccessResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_id",
			Message: "User ID must be a number",
		})
	}

	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		return apierrors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: "User deleted"})
}
