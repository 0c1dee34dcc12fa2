package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"container_loading/internal/app/apperr"
	"container_loading/internal/app/ds"
	"container_loading/internal/app/export"
	"container_loading/internal/app/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ReportUploader puts a rendered report into object storage.
type ReportUploader interface {
	Upload(ctx context.Context, id uint, data []byte) (string, error)
}

type CalculationHandler struct {
	Service interface {
		Preview(ctx context.Context, req service.Request) (*service.Result, error)
		Save(ctx context.Context, req service.Request) (*service.Result, error)
		Get(ctx context.Context, id uint) (*service.Record, error)
		History(ctx context.Context, limit int) ([]ds.ContainerCalculation, error)
		Delete(ctx context.Context, id uint) error
		ContainerType(ctx context.Context, id uint) (*ds.ContainerType, error)
		ShippingRoute(ctx context.Context, id uint) (*ds.ShippingRoute, error)
	}
	// Uploader is nil when object storage is not configured.
	Uploader ReportUploader
}

// respondCalculationError keeps the zero-box result next to a cargo_too_large error.
func respondCalculationError(c *gin.Context, res *service.Result, err error) {
	var tooLarge *apperr.CargoTooLargeError
	if res == nil || !errors.As(err, &tooLarge) {
		respondError(c, err)
		return
	}
	logrus.Infof("%s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(apperr.HTTPStatus(err), gin.H{
		"error":       apperr.Kind(err),
		"description": err.Error(),
		"data":        res,
	})
}

// PreviewCalculationAPI - POST /api/calculations/preview - compute without saving

// @Summary Preview a calculation
// @Description Runs the arrangement and cost calculators without persisting anything
// @Tags calculations
// @Accept json
// @Produce json
// @Param request body service.Request true "Cargo, container and route"
// @Success 200 {object} object "data: service.Result"
// @Failure 400 {object} object "error: string, description: string"
// @Failure 404 {object} object "error: string, description: string"
// @Failure 422 {object} object "error: string, description: string, data: service.Result"
// @Router /api/calculations/preview [post]
func (h *CalculationHandler) PreviewCalculationAPI(c *gin.Context) {
	var req service.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	res, err := h.Service.Preview(c.Request.Context(), req)
	if err != nil {
		respondCalculationError(c, res, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": res})
}

// SaveCalculationAPI - POST /api/calculations - compute and persist

// @Summary Save a calculation
// @Description Computes the calculation and stores it with cost components and loading plan
// @Tags calculations
// @Accept json
// @Produce json
// @Param request body service.Request true "Cargo, container and route"
// @Success 201 {object} object "data: service.Result"
// @Failure 400 {object} object "error: string, description: string"
// @Failure 404 {object} object "error: string, description: string"
// @Failure 422 {object} object "error: string, description: string"
// @Failure 500 {object} object "error: string, description: string"
// @Router /api/calculations [post]
func (h *CalculationHandler) SaveCalculationAPI(c *gin.Context) {
	var req service.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	res, err := h.Service.Save(c.Request.Context(), req)
	if err != nil {
		respondCalculationError(c, res, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": res})
}

// GetCalculationsAPI - GET /api/calculations?limit= - history, newest first

// @Summary Calculation history
// @Tags calculations
// @Produce json
// @Param limit query int false "Maximum number of records"
// @Success 200 {object} object "data: []ds.ContainerCalculation, count: int"
// @Failure 400 {object} object "error: string, description: string"
// @Router /api/calculations [get]
func (h *CalculationHandler) GetCalculationsAPI(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "invalid limit "+strconv.Quote(raw))
			return
		}
		limit = v
	}
	rows, err := h.Service.History(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  rows,
		"count": len(rows),
	})
}

// GetCalculationAPI - GET /api/calculations/:id

// @Summary Get a saved calculation
// @Description Record with its cost components and loading plan
// @Tags calculations
// @Produce json
// @Param id path int true "Calculation ID"
// @Success 200 {object} object "data: service.Record"
// @Failure 404 {object} object "error: string, description: string"
// @Router /api/calculations/{id} [get]
func (h *CalculationHandler) GetCalculationAPI(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	rec, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rec})
}

// DeleteCalculationAPI - DELETE /api/calculations/:id

// @Summary Delete a saved calculation
// @Description Cost components and loading plan are removed with it
// @Tags calculations
// @Produce json
// @Param id path int true "Calculation ID"
// @Success 200 {object} object "message: string"
// @Failure 404 {object} object "error: string, description: string"
// @Router /api/calculations/{id} [delete]
func (h *CalculationHandler) DeleteCalculationAPI(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Calculation deleted"})
}

// GetCalculationReportAPI - GET /api/calculations/:id/report - xlsx download

// @Summary Download a calculation report
// @Tags calculations
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path int true "Calculation ID"
// @Success 200 {file} file
// @Failure 404 {object} object "error: string, description: string"
// @Router /api/calculations/{id}/report [get]
func (h *CalculationHandler) GetCalculationReportAPI(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	data, err := h.renderReport(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.FileName(id)+`"`)
	c.Data(http.StatusOK, export.ContentType, data)
}

// UploadCalculationReportAPI - POST /api/calculations/:id/report - store report in MinIO

// @Summary Upload a calculation report to object storage
// @Tags calculations
// @Produce json
// @Param id path int true "Calculation ID"
// @Success 201 {object} object "data: {object_name: string}"
// @Failure 404 {object} object "error: string, description: string"
// @Failure 503 {object} object "error: string, description: string"
// @Router /api/calculations/{id}/report [post]
func (h *CalculationHandler) UploadCalculationReportAPI(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if h.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":       "storage_unavailable",
			"description": "object storage is not configured",
		})
		return
	}
	data, err := h.renderReport(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	objectName, err := h.Uploader.Upload(c.Request.Context(), id, data)
	if err != nil {
		respondError(c, err)
		return
	}
	logrus.Infof("report of calculation %d uploaded as %s", id, objectName)
	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"object_name": objectName}})
}

func (h *CalculationHandler) renderReport(ctx context.Context, id uint) ([]byte, error) {
	rec, err := h.Service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	report := export.Report{Calc: &rec.ContainerCalculation}

	report.ContainerType, err = h.Service.ContainerType(ctx, rec.ContainerTypeID)
	if err != nil {
		return nil, err
	}
	if rec.ShippingRouteID != nil {
		report.ShippingRoute, err = h.Service.ShippingRoute(ctx, *rec.ShippingRouteID)
		if err != nil {
			return nil, err
		}
	}
	return export.Workbook(report)
}
