package api

import (
	"context"
	"net/http"

	"container_loading/internal/app/ds"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	Service interface {
		ContainerTypes(ctx context.Context) ([]ds.ContainerType, error)
		ContainerType(ctx context.Context, id uint) (*ds.ContainerType, error)
		ShippingRoutes(ctx context.Context) ([]ds.ShippingRoute, error)
		ShippingRoute(ctx context.Context, id uint) (*ds.ShippingRoute, error)
		CreateContainerType(ctx context.Context, row *ds.ContainerType) error
		CreateShippingRoute(ctx context.Context, row *ds.ShippingRoute) error
	}
}

// GetContainerTypesAPI - GET /api/containers - container catalog, cheapest first

// @Summary List container types
// @Description All container types ordered by rental cost ascending
// @Tags catalog
// @Produce json
// @Success 200 {object} object "data: []ds.ContainerType, count: int"
// @Failure 500 {object} object "error: string, description: string"
// @Router /api/containers [get]
func (h *CatalogHandler) GetContainerTypesAPI(c *gin.Context) {
	rows, err := h.Service.ContainerTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  rows,
		"count": len(rows),
	})
}

// GetContainerTypeAPI - GET /api/containers/:id

// @Summary Get a container type
// @Tags catalog
// @Produce json
// @Param id path int true "Container type ID"
// @Success 200 {object} object "data: ds.ContainerType"
// @Failure 400 {object} object "error: string, description: string"
// @Failure 404 {object} object "error: string, description: string"
// @Router /api/containers/{id} [get]
func (h *CatalogHandler) GetContainerTypeAPI(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	row, err := h.Service.ContainerType(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": row})
}

// CreateContainerTypeAPI - POST /api/containers - admin catalog loading

// @Summary Create a container type
// @Description Dimensions in cm, weights in kg, capacity in m3; admin only
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param container body ds.ContainerType true "Container type"
// @Success 201 {object} object "data: ds.ContainerType"
// @Failure 400 {object} object "error: string, description: string"
// @Failure 401 {object} object "error: string"
// @Failure 403 {object} object "error: string"
// @Router /api/containers [post]
func (h *CatalogHandler) CreateContainerTypeAPI(c *gin.Context) {
	var row ds.ContainerType
	if err := c.ShouldBindJSON(&row); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.Service.CreateContainerType(c.Request.Context(), &row); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": row})
}

// GetShippingRoutesAPI - GET /api/routes - routes, fastest first

// @Summary List shipping routes
// @Description All routes ordered by transit days ascending
// @Tags catalog
// @Produce json
// @Success 200 {object} object "data: []ds.ShippingRoute, count: int"
// @Failure 500 {object} object "error: string, description: string"
// @Router /api/routes [get]
func (h *CatalogHandler) GetShippingRoutesAPI(c *gin.Context) {
	rows, err := h.Service.ShippingRoutes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  rows,
		"count": len(rows),
	})
}

// GetShippingRouteAPI - GET /api/routes/:id

// @Summary Get a shipping route
// @Tags catalog
// @Produce json
// @Param id path int true "Shipping route ID"
// @Success 200 {object} object "data: ds.ShippingRoute"
// @Failure 404 {object} object "error: string, description: string"
// @Router /api/routes/{id} [get]
func (h *CatalogHandler) GetShippingRouteAPI(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	row, err := h.Service.ShippingRoute(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": row})
}

// CreateShippingRouteAPI - POST /api/routes - admin catalog loading

// @Summary Create a shipping route
// @Description insurance_rate is a fraction of cargo value; admin only
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param route body ds.ShippingRoute true "Shipping route"
// @Success 201 {object} object "data: ds.ShippingRoute"
// @Failure 400 {object} object "error: string, description: string"
// @Router /api/routes [post]
func (h *CatalogHandler) CreateShippingRouteAPI(c *gin.Context) {
	var row ds.ShippingRoute
	if err := c.ShouldBindJSON(&row); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := h.Service.CreateShippingRoute(c.Request.Context(), &row); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": row})
}
