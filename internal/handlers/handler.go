package handlers

import (
	"sync"
	"sync/atomic"

	"solar_planner/internal/logger"
	"solar_planner/internal/service"

	"github.com/asaskevich/EventBus"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services, the change bus and logging.
type Handler struct {
	services *service.Service
	bus      EventBus.Bus
	log      *logger.Logger

	// advisoryBusy serializes advisory calls: one outstanding request at a
	// time; re-invocation after completion is allowed and idempotent.
	advisoryBusy atomic.Bool

	// The bus carries one subscription for the whole handler; per-connection
	// channels are registered here and fanned out to on each change event.
	// EventBus unsubscribes by function identity, so per-connection closures
	// over one literal must never be subscribed individually.
	wsOnce  sync.Once
	wsMu    sync.Mutex
	wsConns map[chan struct{}]int
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, bus EventBus.Bus, log *logger.Logger) *Handler {
	return &Handler{
		services: services,
		bus:      bus,
		log:      log,
		wsConns:  make(map[chan struct{}]int),
	}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Live report over WebSocket (HTTP upgrade) on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerInventoryRoutes(api)
		h.registerPlannerRoutes(api)
	}
}

func (h *Handler) registerInventoryRoutes(api *gin.RouterGroup) {
	rooms := api.Group("/rooms")
	{
		rooms.POST("/", h.createRoom)
		rooms.GET("/", h.listRooms)
		rooms.DELETE("/:id", h.deleteRoom)
	}
	devices := api.Group("/devices")
	{
		devices.POST("/", h.createDevice)
		devices.GET("/", h.listDevices)
		devices.PATCH("/:id", h.updateDevice)
		devices.DELETE("/:id", h.deleteDevice)
	}
	settings := api.Group("/settings")
	{
		settings.GET("/", h.getSettings)
		settings.PUT("/", h.updateSettings)
	}
}

func (h *Handler) registerPlannerRoutes(api *gin.RouterGroup) {
	api.GET("/report", h.getReport)
	api.POST("/recommendations", h.deriveRecommendations)
}
