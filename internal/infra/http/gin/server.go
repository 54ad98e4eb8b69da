package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"trio/internal/infra/config"
	"trio/internal/infra/obs"
)

type ListingHTTP interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Quote(c *gin.Context)
	Suspend(c *gin.Context)
	Activate(c *gin.Context)
	BlockDates(c *gin.Context)
}

type BookingHTTP interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	ListByRenter(c *gin.Context)
	ExtensionQuote(c *gin.Context)
	Extend(c *gin.Context)
	Accept(c *gin.Context)
	Decline(c *gin.Context)
	Cancel(c *gin.Context)
	Complete(c *gin.Context)
}

type AvailabilityHTTP interface {
	Calendar(c *gin.Context)
}

type Handlers struct {
	Listing      ListingHTTP
	Booking      BookingHTTP
	Availability AvailabilityHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(cfg, obsMW, health, h),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func NewRouter(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *gin.Engine {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", IdempotencyKeyHeader, obs.RequestIDHeader},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			obs.RequestIDHeader,
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Listing != nil {
		api.GET("/listings", h.Listing.List)
		api.POST("/listings", h.Listing.Create)
		api.GET("/listings/:id", h.Listing.Get)
		api.POST("/listings/:id/quote", h.Listing.Quote)
		api.POST("/listings/:id/suspend", h.Listing.Suspend)
		api.POST("/listings/:id/activate", h.Listing.Activate)
		api.POST("/listings/:id/blocks", h.Listing.BlockDates)
	}
	if h.Availability != nil {
		api.GET("/listings/:id/calendar", h.Availability.Calendar)
	}
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Create)
		api.GET("/bookings/:id", h.Booking.Get)
		api.POST("/bookings/:id/extension-quote", h.Booking.ExtensionQuote)
		api.POST("/bookings/:id/extensions", h.Booking.Extend)
		api.POST("/bookings/:id/accept", h.Booking.Accept)
		api.POST("/bookings/:id/decline", h.Booking.Decline)
		api.POST("/bookings/:id/cancel", h.Booking.Cancel)
		api.POST("/bookings/:id/complete", h.Booking.Complete)
		api.GET("/renters/:id/bookings", h.Booking.ListByRenter)
	}

	return router
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug", "dev", "local":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
