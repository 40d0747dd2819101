package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"adhhak/models"
	"adhhak/services/booking"
	"adhhak/services/calendar"
)

type stubBookingService struct {
	conf   *models.BookingConfirmation
	err    error
	slots  []string
	gotReq models.BookingRequest
}

func (s *stubBookingService) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.BookingConfirmation, error) {
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.conf, nil
}

func (s *stubBookingService) TimeSlots() []string {
	return s.slots
}

func newTestRouter(svc booking.BookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBookingHandler(svc, zap.NewNop())
	r := gin.New()
	api := r.Group("/api")
	api.POST("/bookings", h.CreateBookingHandler)
	api.GET("/slots", h.GetTimeSlotsHandler)
	return r
}

func postBooking(t *testing.T, r *gin.Engine, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return w, payload
}

const validBody = `{
	"date": "2026-03-03",
	"time": "10:00",
	"name": "Jean Dupont",
	"email": "jean@example.com",
	"phone": "+21612345678",
	"message": "Première visite"
}`

func TestCreateBookingHandler_Success(t *testing.T) {
	svc := &stubBookingService{conf: &models.BookingConfirmation{
		EventID:  "evt123",
		EventLink: "https://calendar.google.com/event?eid=evt123",
		HTMLLink:  "https://calendar.google.com/event?eid=evt123",
	}}
	r := newTestRouter(svc)

	w, payload := postBooking(t, r, validBody)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Rendez-vous créé avec succès", payload["message"])
	assert.Equal(t, "evt123", payload["eventId"])
	assert.Equal(t, "https://calendar.google.com/event?eid=evt123", payload["htmlLink"])
	assert.Equal(t, "Jean Dupont", svc.gotReq.Name)
	assert.Equal(t, "Première visite", svc.gotReq.Message)
}

func TestCreateBookingHandler_MalformedBody(t *testing.T) {
	r := newTestRouter(&stubBookingService{})

	w, payload := postBooking(t, r, `{"date": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Invalid request body", payload["error"])
}

func TestCreateBookingHandler_ValidationError(t *testing.T) {
	svc := &stubBookingService{err: &booking.ValidationError{Errors: []string{
		"Date cannot be in the past",
		"Invalid email format",
	}}}
	r := newTestRouter(svc)

	w, payload := postBooking(t, r, validBody)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Validation failed", payload["error"])
	details, ok := payload["details"].([]interface{})
	require.True(t, ok)
	assert.Len(t, details, 2)
	assert.Contains(t, details, "Invalid email format")
}

func TestCreateBookingHandler_AuthError(t *testing.T) {
	svc := &stubBookingService{err: &calendar.AuthError{
		Permanent: true,
		Message:   "refresh token rejected, re-authorization required",
	}}
	r := newTestRouter(svc)

	w, payload := postBooking(t, r, validBody)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Failed to create calendar event", payload["error"])
	assert.Equal(t, "refresh token rejected, re-authorization required", payload["details"])
}

func TestCreateBookingHandler_ProviderError(t *testing.T) {
	svc := &stubBookingService{err: &calendar.ProviderError{Code: 403, Message: "forbidden"}}
	r := newTestRouter(svc)

	w, payload := postBooking(t, r, validBody)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to create calendar event", payload["error"])
	assert.Equal(t, "forbidden", payload["details"])
}

func TestCreateBookingHandler_UnknownError(t *testing.T) {
	svc := &stubBookingService{err: errors.New("boom")}
	r := newTestRouter(svc)

	w, payload := postBooking(t, r, validBody)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", payload["error"])
}

func TestGetTimeSlotsHandler(t *testing.T) {
	svc := &stubBookingService{slots: []string{"09:00", "09:30"}}
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/slots", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var payload map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, []string{"09:00", "09:30"}, payload["slots"])
}
