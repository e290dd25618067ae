package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"innkeeper/internal/infra/config"
	"innkeeper/internal/infra/obs"
)

type SearchHTTP interface {
	Search(c *gin.Context)
}

type HotelHTTP interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Rooms(c *gin.Context)
}

type AvailabilityHTTP interface {
	RoomFree(c *gin.Context)
	FreeRooms(c *gin.Context)
}

type BookingHTTP interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	ListForGuest(c *gin.Context)
	Confirm(c *gin.Context)
	Cancel(c *gin.Context)
	CheckIn(c *gin.Context)
	CheckOut(c *gin.Context)
	NoShow(c *gin.Context)
}

type Handlers struct {
	Search       SearchHTTP
	Hotel        HotelHTTP
	Availability AvailabilityHTTP
	Booking      BookingHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
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
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Search != nil {
		api.GET("/search", h.Search.Search)
	}
	if h.Hotel != nil {
		api.GET("/hotels", h.Hotel.List)
		api.GET("/hotels/:id", h.Hotel.Get)
		api.GET("/hotels/:id/rooms", h.Hotel.Rooms)
	}
	if h.Availability != nil {
		api.GET("/rooms/:id/availability", h.Availability.RoomFree)
		api.GET("/hotels/:id/free-rooms", h.Availability.FreeRooms)
	}
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Create)
		api.GET("/bookings/:id", h.Booking.Get)
		api.GET("/guests/:id/bookings", h.Booking.ListForGuest)
		api.POST("/bookings/:id/confirm", h.Booking.Confirm)
		api.POST("/bookings/:id/cancel", h.Booking.Cancel)
		api.POST("/bookings/:id/check-in", h.Booking.CheckIn)
		api.POST("/bookings/:id/check-out", h.Booking.CheckOut)
		api.POST("/bookings/:id/no-show", h.Booking.NoShow)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
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
