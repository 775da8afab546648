package handlers

import (
	"net/http"

	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/repositories"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		BookingRepo: repositories.BookingRepository{},
		PaymentRepo: repositories.PaymentRepository{},
		RequestID:   middleware.GetRequestID(c),
	}
}

// GET /api/bookings (auth)
func GetMyBookings(c *gin.Context) {
	auth := middleware.GetAuthContext(c)
	list, err := bookingService(c).ListMine(auth)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

// GET /api/bookings/:id (auth)
func GetBookingDetail(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	auth := middleware.GetAuthContext(c)
	booking, payment, err := bookingService(c).Detail(auth, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	resp := gin.H{"booking": booking}
	if payment.ID > 0 {
		resp["payment"] = payment
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/bookings (auth)
// Non-payment path: booking starts PENDING and has no payment attached.
func CreatePendingBooking(c *gin.Context) {
	var intent models.BookingIntent
	if !BindJSONOrError(c, &intent) {
		return
	}
	auth := middleware.GetAuthContext(c)
	created, err := bookingService(c).CreatePending(auth, intent)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": created})
}

// PUT /api/bookings/:id/cancel (auth)
func CancelBooking(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}
	auth := middleware.GetAuthContext(c)
	booking, err := bookingService(c).Cancel(auth, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}
