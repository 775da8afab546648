package handlers

import (
	"net/http"

	intconfig "backend/internal/config"
	"backend/internal/domain/models"
	"backend/internal/gateway"
	"backend/internal/http/middleware"
	"backend/internal/repositories"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

var (
	paymentEnv    intconfig.Env
	gatewayClient gateway.Client
)

// ConfigurePayments wires the gateway adapter once at router setup.
func ConfigurePayments(env intconfig.Env, client gateway.Client) {
	paymentEnv = env
	gatewayClient = client
}

func paymentService(c *gin.Context) services.PaymentService {
	return services.PaymentService{
		Gateway:     gatewayClient,
		PaymentRepo: repositories.PaymentRepository{},
		BookingRepo: repositories.BookingRepository{},
		CallbackURL: paymentEnv.CallbackURL,
		Currency:    paymentEnv.Currency,
		RequestID:   middleware.GetRequestID(c),
	}
}

// POST /api/payments/initiate (auth)
// Body is the booking intent; the response carries the gateway redirect URL.
func InitiatePayment(c *gin.Context) {
	var intent models.BookingIntent
	if !BindJSONOrError(c, &intent) {
		return
	}

	auth := middleware.GetAuthContext(c)
	res, err := paymentService(c).Initiate(c.Request.Context(), auth, intent)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/payments/verify/:reference (auth)
// Called after the gateway redirects the user back. Idempotent.
func VerifyPayment(c *gin.Context) {
	reference := c.Param("reference")
	auth := middleware.GetAuthContext(c)

	res, err := paymentService(c).Reconcile(c.Request.Context(), auth, reference)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/payments/callback
// Server-side gateway callback; no session, attribution comes from the
// intent metadata. Shares the reconcile path with the user-facing verify.
func PaymentCallback(c *gin.Context) {
	var req struct {
		Reference string `json:"reference"`
	}
	if !BindJSONOrError(c, &req) {
		return
	}

	res, err := paymentService(c).Reconcile(c.Request.Context(), middleware.GetAuthContext(c), req.Reference)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
