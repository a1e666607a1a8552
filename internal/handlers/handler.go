package handlers

import (
	"time"

	"hotel_climate/internal/logger"
	"hotel_climate/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Options tunes the transport layer.
type Options struct {
	RetryAttempts int           // tries per request for storage conflicts, at least 1
	RetryBackoff  time.Duration // grows linearly with the attempt number
	RateLimit     rate.Limit    // /auth requests per second per client IP
	RateBurst     int
	RateTTL       time.Duration // idle limiters are dropped after this long
}

// DefaultOptions mirrors configs/config.yml.
func DefaultOptions() Options {
	return Options{
		RetryAttempts: 3,
		RetryBackoff:  50 * time.Millisecond,
		RateLimit:     1,
		RateBurst:     5,
		RateTTL:       10 * time.Minute,
	}
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	opts     Options
	limiter  *IPRateLimiter
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts Options) *Handler {
	if opts.RetryAttempts < 1 {
		opts.RetryAttempts = 1
	}
	return &Handler{
		services: services,
		log:      log,
		opts:     opts,
		limiter:  NewIPRateLimiter(opts.RateLimit, opts.RateBurst, opts.RateTTL),
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

	// Live room status over WebSocket, same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth", h.rateLimitMiddleware)
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerStayRoutes(api)
		h.registerACRoutes(api)
		h.registerRoomRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerStayRoutes(api *gin.RouterGroup) {
	stay := api.Group("/stay")
	{
		stay.POST("/check-in", h.checkIn)
		stay.POST("/check-out", h.checkOut)
		stay.GET("/cost", h.currentCost)
		stay.GET("/bill", h.bill)
	}
}

func (h *Handler) registerACRoutes(api *gin.RouterGroup) {
	ac := api.Group("/ac")
	{
		// Body example: {"room_id":3}
		ac.POST("/on", h.acOn)
		ac.POST("/off", h.acOff)
		// Body example: {"room_id":3,"temperature":22,"fan_speed":"high","mode":"cool"}
		ac.POST("/settings", h.acSettings)
	}
}

func (h *Handler) registerRoomRoutes(api *gin.RouterGroup) {
	rooms := api.Group("/rooms")
	{
		rooms.GET("", h.listRooms)
		rooms.GET("/:id", h.getRoom)
		rooms.GET("/:id/usage", h.roomUsage)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}
