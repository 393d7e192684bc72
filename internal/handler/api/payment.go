package api

import (
	"errors"
	"net/http"

	reqdto "deskbook/internal/handler/dto/request"
	resdto "deskbook/internal/handler/dto/response"
	"deskbook/internal/handler/middleware"
	"deskbook/internal/usecase/commands"
	"deskbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	paymentCommands commands.PaymentCommands
	paymentQueries  queries.PaymentQueries
}

func NewPaymentHandler(paymentCommands commands.PaymentCommands, paymentQueries queries.PaymentQueries) *PaymentHandler {
	return &PaymentHandler{
		paymentCommands: paymentCommands,
		paymentQueries:  paymentQueries,
	}
}

// @Summary Pay deposit
// @Description Collect the 50% deposit on a pending booking and confirm it
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.PayDepositRequest true "Deposit payment"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/deposit [post]
func (h *PaymentHandler) PayDeposit(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	var req reqdto.PayDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	actorID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)

	result, err := h.paymentCommands.PayDeposit(c.Request.Context(), commands.PayDepositRequest{
		BookingID: bookingID,
		Method:    req.Method,
	}, actorID, role)
	if err != nil {
		h.writePaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPaymentResult(result))
}

// @Summary Pay balance
// @Description Collect the remaining balance plus any extension fee and complete the booking
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.PayBalanceRequest true "Balance payment"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/balance [post]
func (h *PaymentHandler) PayBalance(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	var req reqdto.PayBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	actorID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)

	result, err := h.paymentCommands.PayBalance(c.Request.Context(), commands.PayBalanceRequest{
		BookingID:            bookingID,
		Method:               req.Method,
		ExtensionFeeCentavos: req.ExtensionFeeCentavos,
	}, actorID, role)
	if err != nil {
		h.writePaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPaymentResult(result))
}

// @Summary List booking payments
// @Description List payment transactions recorded against a booking
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {array} queries.PaymentView
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/payments [get]
func (h *PaymentHandler) ListBookingPayments(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	actorID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)

	views, err := h.paymentQueries.ListByBooking(c.Request.Context(), bookingID, actorID, role)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, queries.ErrPaymentAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not allowed to view these payments",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary List own payments
// @Description List the current user's payment history
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.PaymentView
// @Failure 401 {object} map[string]string
// @Router /payments [get]
func (h *PaymentHandler) ListOwnPayments(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.paymentQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

func (h *PaymentHandler) writePaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrBookingNotFoundWrite):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, commands.ErrBookingNotOwned):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Not allowed to pay for this booking",
		})
	case errors.Is(err, commands.ErrInvalidPaymentMethod):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid payment method",
		})
	case errors.Is(err, commands.ErrInvalidExtensionFee):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Extension fee cannot be negative",
		})
	case errors.Is(err, commands.ErrPaymentNotAllowed):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Payment not allowed in the booking's current status",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
