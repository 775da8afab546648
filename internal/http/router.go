package api

import (
	"log"
	stdhttp "net/http"

	intconfig "backend/internal/config"
	"backend/internal/gateway"
	h "backend/internal/http/handlers"
	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.ConfigurePayments(env, gateway.NewHTTPClient(env.GatewayBaseURL, env.GatewaySecret))

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.GET("/me", middleware.RequireAuth(), h.Me)

		// Destinations
		destinations := api.Group("/destinations")
		destinations.GET("", h.GetDestinations)
		destinations.GET("/:id", h.GetDestinationByID)
		destinations.POST("", middleware.RequireAuth(), middleware.RequireAdmin(), h.CreateDestination)
		destinations.PUT("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), h.UpdateDestination)
		destinations.DELETE("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), h.DeleteDestination)

		// Hotels & reviews
		hotels := api.Group("/hotels")
		hotels.GET("", h.GetHotels)
		hotels.GET("/:id", h.GetHotelByID)
		hotels.GET("/:id/reviews", h.GetHotelReviews)
		hotels.POST("/:id/reviews", middleware.RequireAuth(), h.CreateHotelReview)
		hotels.POST("", middleware.RequireAuth(), middleware.RequireAdmin(), h.CreateHotel)
		hotels.PUT("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), h.UpdateHotel)
		hotels.DELETE("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), h.DeleteHotel)

		api.DELETE("/reviews/:id", middleware.RequireAuth(), h.DeleteReview)

		// Attractions
		attractions := api.Group("/attractions")
		attractions.GET("", h.GetAttractions)
		attractions.GET("/:id", h.GetAttractionByID)
		attractions.POST("", middleware.RequireAuth(), middleware.RequireAdmin(), h.CreateAttraction)
		attractions.PUT("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), h.UpdateAttraction)
		attractions.DELETE("/:id", middleware.RequireAuth(), middleware.RequireAdmin(), h.DeleteAttraction)

		// Bookings
		bookings := api.Group("/bookings", middleware.RequireAuth())
		bookings.GET("", h.GetMyBookings)
		bookings.POST("", h.CreatePendingBooking)
		bookings.GET("/:id", h.GetBookingDetail)
		bookings.PUT("/:id/cancel", h.CancelBooking)
		bookings.GET("/:id/e-ticket", h.GetBookingETicketPDF)
		bookings.GET("/:id/invoice", h.GetBookingInvoicePDF)

		// Payments
		payments := api.Group("/payments")
		payments.POST("/initiate", middleware.RequireAuth(), h.InitiatePayment)
		payments.GET("/verify/:reference", middleware.RequireAuth(), h.VerifyPayment)
		// gateway server-to-server callback, no session attached
		payments.POST("/callback", middleware.AuthOptional(), h.PaymentCallback)
	}

	return r
}
