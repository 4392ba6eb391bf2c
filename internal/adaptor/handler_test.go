package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sports-booking/internal/dto/request"
	"sports-booking/internal/dto/response"
	"sports-booking/internal/usecase"
	"sports-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var res utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func withSession(r *http.Request, session utils.Session) *http.Request {
	return r.WithContext(utils.SetSessionContext(r.Context(), session))
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"field validation", &usecase.ValidationError{Fields: map[string]string{"name": "This field is required"}}, http.StatusBadRequest, "Validation failed"},
		{"semantic validation", fmt.Errorf("wrapped: %w", &usecase.ValidationError{Message: "start time 11:00 must be before end time 10:00"}), http.StatusBadRequest, "start time 11:00 must be before end time 10:00"},
		{"overlap", fmt.Errorf("10:00-11:00 and 10:30-11:30: %w", usecase.ErrSlotOverlap), http.StatusBadRequest, "10:00-11:00 and 10:30-11:30: time slot overlaps another slot"},
		{"slot taken", fmt.Errorf("slot x: %w", usecase.ErrSlotNotAvailable), http.StatusBadRequest, "Slot not available"},
		{"game has bookings", usecase.ErrGameHasBookedSlots, http.StatusBadRequest, "Cannot delete game with active bookings"},
		{"game missing", fmt.Errorf("game x: %w", usecase.ErrGameNotFound), http.StatusNotFound, "game x: game not found"},
		{"booking missing", usecase.ErrBookingNotFound, http.StatusNotFound, "booking not found"},
		{"forbidden", usecase.ErrForbidden, http.StatusForbidden, "Access denied"},
		{"internal", errors.New("pool closed"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			handleServiceError(rec, zap.NewNop(), tt.err, "test")

			assert.Equal(t, tt.code, rec.Code)
			res := decodeEnvelope(t, rec)
			assert.False(t, res.Status)
			assert.Equal(t, tt.message, res.Message)
		})
	}
}

func TestBookingHandler_BookSlot(t *testing.T) {
	service := &mockBookingService{}
	h := NewBookingHandler(service, zap.NewNop())
	session := utils.Session{UserID: uuid.New(), Role: "user"}
	slotID := uuid.NewString()

	service.On("BookSlot", mock.Anything, session, mock.MatchedBy(func(req *request.CreateBookingRequest) bool {
		return req.SlotID == slotID && req.BookingData.UserName == "Ana"
	})).Return(&response.BookingResponse{ID: "b1", Status: "confirmed"}, nil).Once()

	body := fmt.Sprintf(`{"slotId":%q,"bookingData":{"userId":%q,"userName":"Ana","userEmail":"ana@example.com"}}`, slotID, session.UserID)
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body)), session)
	rec := httptest.NewRecorder()

	h.BookSlot(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	res := decodeEnvelope(t, rec)
	assert.True(t, res.Status)
	assert.Equal(t, "b1", res.Data.(map[string]any)["id"])
	service.AssertExpectations(t)
}

func TestBookingHandler_BookSlot_Rejected(t *testing.T) {
	service := &mockBookingService{}
	h := NewBookingHandler(service, zap.NewNop())
	session := utils.Session{UserID: uuid.New(), Role: "user"}

	t.Run("no session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.BookSlot(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{}`)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.BookSlot(rec, withSession(httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{`)), session))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request body", decodeEnvelope(t, rec).Message)
	})

	t.Run("slot taken", func(t *testing.T) {
		service.On("BookSlot", mock.Anything, session, mock.Anything).
			Return(nil, fmt.Errorf("slot s: %w", usecase.ErrSlotNotAvailable)).Once()

		rec := httptest.NewRecorder()
		h.BookSlot(rec, withSession(httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{"slotId":"s"}`)), session))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Slot not available", decodeEnvelope(t, rec).Message)
	})

	service.AssertExpectations(t)
}

func cancelRequest(id string, session utils.Session) *http.Request {
	req := httptest.NewRequest(http.MethodDelete, "/api/bookings/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	return withSession(req, session)
}

func TestBookingHandler_CancelBooking(t *testing.T) {
	service := &mockBookingService{}
	h := NewBookingHandler(service, zap.NewNop())
	session := utils.Session{UserID: uuid.New(), Role: "user"}
	cancelled := &response.BookingResponse{ID: "b1", Status: "cancelled"}

	service.On("CancelBooking", mock.Anything, session, "b1").Return(cancelled, nil).Once()
	service.On("CancelBooking", mock.Anything, session, "b1").Return(cancelled, usecase.ErrBookingAlreadyCancelled).Once()
	service.On("CancelBooking", mock.Anything, session, "b2").Return(nil, usecase.ErrForbidden).Once()

	rec := httptest.NewRecorder()
	h.CancelBooking(rec, cancelRequest("b1", session))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Booking cancelled successfully", decodeEnvelope(t, rec).Message)

	rec = httptest.NewRecorder()
	h.CancelBooking(rec, cancelRequest("b1", session))
	assert.Equal(t, http.StatusOK, rec.Code)
	res := decodeEnvelope(t, rec)
	assert.True(t, res.Status)
	assert.Equal(t, "Booking already cancelled", res.Message)
	assert.Equal(t, "cancelled", res.Data.(map[string]any)["status"])

	rec = httptest.NewRecorder()
	h.CancelBooking(rec, cancelRequest("b2", session))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	service.AssertExpectations(t)
}

func TestBookingHandler_QueryParamsRequired(t *testing.T) {
	service := &mockBookingService{}
	h := NewBookingHandler(service, zap.NewNop())
	session := utils.Session{UserID: uuid.New(), Role: "user"}

	rec := httptest.NewRecorder()
	h.GetAvailableSlots(rec, httptest.NewRequest(http.MethodGet, "/api/available-slots", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Game ID is required", decodeEnvelope(t, rec).Message)

	rec = httptest.NewRecorder()
	h.GetUserBookings(rec, withSession(httptest.NewRequest(http.MethodGet, "/api/bookings", nil), session))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User ID is required", decodeEnvelope(t, rec).Message)

	service.AssertNotCalled(t, "GetAvailableSlotsForGame", mock.Anything, mock.Anything)
	service.AssertNotCalled(t, "GetUserBookings", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingHandler_GetAvailableSlots(t *testing.T) {
	service := &mockBookingService{}
	h := NewBookingHandler(service, zap.NewNop())

	service.On("GetAvailableSlotsForGame", mock.Anything, "g1").
		Return([]*response.TimeSlotResponse{{ID: "s1", StartTime: "10:00"}}, nil).Once()

	rec := httptest.NewRecorder()
	h.GetAvailableSlots(rec, httptest.NewRequest(http.MethodGet, "/api/available-slots?gameId=g1", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec).Data.([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "s1", data[0].(map[string]any)["id"])
	service.AssertExpectations(t)
}

func TestGameHandler_Routes(t *testing.T) {
	service := &mockGameService{}
	h := NewGameHandler(service, zap.NewNop())

	r := chi.NewRouter()
	r.Get("/api/games/active", h.GetActiveGames)
	r.Get("/api/games/{id}", h.GetGame)
	r.Delete("/api/games/{id}", h.DeleteGame)

	service.On("GetActiveGames", mock.Anything).Return([]*response.GameResponse{{ID: "g1", IsActive: true}}, nil).Once()
	service.On("GetGameByID", mock.Anything, "missing").Return(nil, fmt.Errorf("game missing: %w", usecase.ErrGameNotFound)).Once()
	service.On("DeleteGame", mock.Anything, "g1").Return(usecase.ErrGameHasBookedSlots).Once()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/games/active", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/games/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/games/g1", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cannot delete game with active bookings", decodeEnvelope(t, rec).Message)

	service.AssertExpectations(t)
}

func TestGameHandler_CreateGame(t *testing.T) {
	service := &mockGameService{}
	h := NewGameHandler(service, zap.NewNop())

	service.On("CreateGame", mock.Anything, mock.MatchedBy(func(req *request.CreateGameRequest) bool {
		return req.Name == "Padel" && req.Price != nil && req.Price.String() == "20.5" && req.Duration == 60
	})).Return(&response.GameResponse{ID: "g1", Name: "Padel", Price: 20.5}, nil).Once()

	body := `{"name":"Padel","description":"Indoor","price":20.5,"duration":60}`
	rec := httptest.NewRecorder()
	h.CreateGame(rec, httptest.NewRequest(http.MethodPost, "/api/games", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 20.5, decodeEnvelope(t, rec).Data.(map[string]any)["price"])
	service.AssertExpectations(t)
}
