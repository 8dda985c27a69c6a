package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"airline-ops-backend/config"
	"airline-ops-backend/internal/access"
	"airline-ops-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(d Deps, server config.ServerConfig, responses mw.ResponseCache) *gin.Engine {
	r := gin.Default()
	r.Use(mw.RequestID())

	corsCfg := cors.DefaultConfig()
	if len(server.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = server.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AddAllowHeaders("Authorization", "X-Request-ID")
	corsCfg.AddExposeHeaders("X-Request-ID", "Content-Disposition")
	r.Use(cors.New(corsCfg))

	handler := NewHandler(d)

	if responses == nil {
		responses = mw.NewMemoryCache(time.Duration(server.CacheTTLSeconds) * time.Second)
	}
	caching := mw.Cache(responses, time.Duration(server.CacheTTLSeconds)*time.Second)
	limit := rate.Limit(server.RateLimitPerSec)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	public := r.Group("/api")
	public.Use(mw.RateLimiter(limit, server.RateLimitBurst))
	{
		public.POST("/accounts", handler.CreateAccount)
		public.POST("/sessions", handler.CreateSession)
		public.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	// Authenticated routes are limited per user rather than per address.
	api := r.Group("/api")
	api.Use(mw.Authenticate(d.Issuer), mw.RateLimiter(limit, server.RateLimitBurst))
	{
		// Customer
		api.GET("/flights/search", mw.Require(access.OpSearchFlights), handler.SearchFlights)
		api.GET("/flights/:flight_number/cost", mw.Require(access.OpTicketCost), caching, handler.TicketCost)
		api.GET("/flights/:flight_number/plane", mw.Require(access.OpPlaneType), caching, handler.PlaneType)
		api.POST("/reservations", mw.Require(access.OpBook), handler.Book)
		api.GET("/reservations/:reservation_id/receipt", mw.Require(access.OpReservationReceipt), handler.Receipt)

		// Management
		api.GET("/flights/:flight_number/schedule", mw.Require(access.OpFlightSchedule), caching, handler.FlightSchedule)
		api.GET("/flights/:flight_number/seats", mw.Require(access.OpFlightSeats), handler.FlightSeats)
		api.GET("/flights/:flight_number/status", mw.Require(access.OpFlightStatus), handler.FlightStatus)
		api.GET("/flight-instances", mw.Require(access.OpFlightsOfDay), handler.FlightsOfDay)
		api.GET("/flight-instances/:flight_instance_id/reservations", mw.Require(access.OpReservationHistory), handler.ReservationHistory)
		api.GET("/flight-instances/:flight_instance_id/capacity", mw.Require(access.OpFlightSeats), handler.Capacity)

		// Management and technicians
		api.GET("/planes/:plane_id/repairs", mw.Require(access.OpRepairHistory), handler.RepairHistory)

		// Pilot
		api.POST("/maintenance-requests", mw.Require(access.OpSubmitRequest), handler.SubmitRequest)

		// Technician
		api.GET("/pilots/:pilot_id/requests", mw.Require(access.OpPilotRequests), handler.PilotRequests)
		api.POST("/repairs", mw.Require(access.OpLogRepair), handler.LogRepair)

		// Every role
		api.GET("/subscriptions", mw.Require(access.OpNotifications), handler.GetSubscription)
		api.PUT("/subscriptions", mw.Require(access.OpNotifications), handler.PutSubscription)
		api.DELETE("/subscriptions", mw.Require(access.OpNotifications), handler.DeleteSubscription)
	}

	return r
}
