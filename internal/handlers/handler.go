package handlers

import (
	"time"

	"energy_gauge/internal/logger"
	"energy_gauge/internal/service"

	"github.com/gin-gonic/gin"

	_ "energy_gauge/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	// refresh is the websocket push interval the dashboard page asks for.
	refresh time.Duration
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log, refresh: defaultInterval}
}

// WithRefresh sets the push interval used by the dashboard page.
func (h *Handler) WithRefresh(d time.Duration) *Handler {
	if d > 0 && d <= maxInterval {
		h.refresh = d
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(pageTemplate)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)
	router.GET("/", h.dashboardPage)

	h.registerAPIRoutes(router)

	// display stream for the dashboard page, same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/display", h.getDisplay)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("", h.getLogs)
		logs.GET("/", h.getLogs)
	}
}
