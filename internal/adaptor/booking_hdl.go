package adaptor

import (
	"errors"
	"net/http"

	"sports-booking/internal/dto/request"
	"sports-booking/internal/usecase"
	"sports-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// GetAvailableSlots handles GET /api/available-slots?gameId= (public)
func (h *BookingHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("gameId")
	if gameID == "" {
		utils.ResponseBadRequest(w, "Game ID is required", nil)
		return
	}

	slots, err := h.service.GetAvailableSlotsForGame(r.Context(), gameID)
	if err != nil {
		handleServiceError(w, h.log, err, "get available slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// BookSlot handles POST /api/bookings
func (h *BookingHandler) BookSlot(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	var req request.CreateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.service.BookSlot(r.Context(), session, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "book slot")
		return
	}

	utils.ResponseCreated(w, "Booking confirmed", booking)
}

// CancelBooking handles DELETE /api/bookings/{id}
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	booking, err := h.service.CancelBooking(r.Context(), session, chi.URLParam(r, "id"))
	if errors.Is(err, usecase.ErrBookingAlreadyCancelled) {
		utils.ResponseSuccess(w, "Booking already cancelled", booking)
		return
	}
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled successfully", booking)
}

// GetUserBookings handles GET /api/bookings?userId=
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	bookings, err := h.service.GetUserBookings(r.Context(), session, userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetAllBookings handles GET /api/bookings/all (admin)
func (h *BookingHandler) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.GetAllBookings(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get all bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBookingStats handles GET /api/users/{userId}/stats
func (h *BookingHandler) GetBookingStats(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFrom(w, r)
	if !ok {
		return
	}

	stats, err := h.service.GetBookingStats(r.Context(), session, chi.URLParam(r, "userId"))
	if err != nil {
		handleServiceError(w, h.log, err, "get booking stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}
