package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"adhhak/models"
	"adhhak/services/booking"
	"adhhak/services/calendar"
)

// BookingHandler exposes the appointment booking endpoints.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	conf, err := h.Service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Rendez-vous créé avec succès",
		"eventId":   conf.EventID,
		"eventLink": conf.EventLink,
		"htmlLink":  conf.HTMLLink,
	})
}

// GetTimeSlotsHandler handles GET /api/slots.
func (h *BookingHandler) GetTimeSlotsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"slots": h.Service.TimeSlots()})
}

func (h *BookingHandler) respondBookingError(c *gin.Context, err error) {
	var vErr *booking.ValidationError
	var aErr *calendar.AuthError
	var pErr *calendar.ProviderError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"details": vErr.Errors,
		})
	case errors.As(err, &aErr):
		h.Logger.Error("Booking authentication failed",
			zap.Bool("permanent", aErr.Permanent),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to create calendar event",
			"details": aErr.Message,
		})
	case errors.As(err, &pErr):
		h.Logger.Error("Calendar insert failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to create calendar event",
			"details": pErr.Message,
		})
	default:
		h.Logger.Error("Booking failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal server error",
			"details": err.Error(),
		})
	}
}
