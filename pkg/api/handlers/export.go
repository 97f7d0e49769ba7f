package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jordanlanch/salespipe/ent"
	apierrors "github.com/jordanlanch/salespipe/pkg/api/errors"
	"github.com/jordanlanch/salespipe/pkg/export"
	"github.com/labstack/echo/v4"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler handles lead export endpoints
type ExportHandler struct {
	service *export.Service
}

// NewExportHandler creates a new export handler
func NewExportHandler(service *export.Service) *ExportHandler {
	return &ExportHandler{service: service}
}

// LeadsExcel godoc
// @Summary Export leads as Excel
// @Description Exports every lead visible to the caller as an .xlsx workbook
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /leads/export [get]
func (h *ExportHandler) LeadsExcel(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	data, err := h.service.LeadsExcel(c.Request().Context(), actor)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	filename := fmt.Sprintf("leads_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, xlsxMIME, data)
}

// LeadsCSV godoc
// @Summary Export leads as CSV
// @Description Exports every lead visible to the caller as a CSV file
// @Tags Export
// @Produce text/csv
// @Success 200 {file} binary
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /leads/export/csv [get]
func (h *ExportHandler) LeadsCSV(c echo.Context) error {
	actor, ok := c.Get("actor").(*ent.User)
	if !ok {
		return apierrors.UnauthorizedError(c, "missing actor")
	}

	data, err := h.service.LeadsCSV(c.Request().Context(), actor)
	if err != nil {
		return apierrors.FromDomain(c, err)
	}

	filename := fmt.Sprintf("leads_%s.csv", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "text/csv", data)
}
