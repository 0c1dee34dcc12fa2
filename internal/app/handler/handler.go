package handler

import (
	"context"
	"net/http"
	"time"

	"container_loading/internal/app/ds"
	"container_loading/internal/app/handler/api"
	"container_loading/internal/app/handler/middleware"
	"container_loading/internal/app/metrics"
	"container_loading/internal/app/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Store is what the handlers need besides the calculation service:
// users, sessions and a liveness check.
type Store interface {
	RegisterUser(ctx context.Context, user ds.User) (ds.User, error)
	LoginUser(ctx context.Context, login, password string) (string, error)
	LogoutUser(ctx context.Context, userID int) error
	SessionActive(ctx context.Context, userID int, token string) bool
	JWTKey() string
	Ping(ctx context.Context) error
}

type Handler struct {
	Store                 Store
	CatalogAPIHandler     *api.CatalogHandler
	CalculationAPIHandler *api.CalculationHandler
	UserAPIHandler        *api.UserHandler
}

// NewHandler wires the API handlers. uploader may be nil when object storage
// is not configured.
func NewHandler(store Store, svc *service.CalculationService, uploader api.ReportUploader, jwtTTL time.Duration) *Handler {
	return &Handler{
		Store:             store,
		CatalogAPIHandler: &api.CatalogHandler{Service: svc},
		CalculationAPIHandler: &api.CalculationHandler{
			Service:  svc,
			Uploader: uploader,
		},
		UserAPIHandler: &api.UserHandler{
			Repository:   store,
			CookieMaxAge: int(jwtTTL.Seconds()),
		},
	}
}

func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(middleware.RequestLogger(), metrics.Middleware())

	router.GET("/healthz", h.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := middleware.AuthMiddleware(h.Store.JWTKey(), h.Store)
	adminOnly := middleware.AuthMiddleware(h.Store.JWTKey(), h.Store, ds.RoleAdmin)

	apiGroup := router.Group("/api")
	{
		// Каталог
		apiGroup.GET("/containers", h.CatalogAPIHandler.GetContainerTypesAPI)
		apiGroup.GET("/containers/:id", h.CatalogAPIHandler.GetContainerTypeAPI)
		apiGroup.POST("/containers", adminOnly, h.CatalogAPIHandler.CreateContainerTypeAPI)
		apiGroup.GET("/routes", h.CatalogAPIHandler.GetShippingRoutesAPI)
		apiGroup.GET("/routes/:id", h.CatalogAPIHandler.GetShippingRouteAPI)
		apiGroup.POST("/routes", adminOnly, h.CatalogAPIHandler.CreateShippingRouteAPI)

		// Расчёты
		apiGroup.POST("/calculations/preview", h.CalculationAPIHandler.PreviewCalculationAPI)
		apiGroup.POST("/calculations", h.CalculationAPIHandler.SaveCalculationAPI)
		apiGroup.GET("/calculations", h.CalculationAPIHandler.GetCalculationsAPI)
		apiGroup.GET("/calculations/:id", h.CalculationAPIHandler.GetCalculationAPI)
		apiGroup.DELETE("/calculations/:id", h.CalculationAPIHandler.DeleteCalculationAPI)
		apiGroup.GET("/calculations/:id/report", h.CalculationAPIHandler.GetCalculationReportAPI)
		apiGroup.POST("/calculations/:id/report", h.CalculationAPIHandler.UploadCalculationReportAPI)

		// Пользователи
		apiGroup.POST("/users/register", h.UserAPIHandler.RegisterUserAPI)
		apiGroup.POST("/users/login", h.UserAPIHandler.LoginUserAPI)
		apiGroup.POST("/users/logout", auth, h.UserAPIHandler.LogoutUserAPI)
	}
}

// Health - GET /healthz - store liveness
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		logrus.Errorf("health check: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
