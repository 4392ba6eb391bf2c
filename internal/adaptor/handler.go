package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"sports-booking/internal/usecase"
	"sports-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Game     *GameHandler
	TimeSlot *TimeSlotHandler
	Booking  *BookingHandler
	User     *UserHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Game:     NewGameHandler(service.Game, log),
		TimeSlot: NewTimeSlotHandler(service.TimeSlot, log),
		Booking:  NewBookingHandler(service.Booking, log),
		User:     NewUserHandler(service.User, log),
	}
}

// decodeJSON reads the request body into dst and answers 400 itself on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// sessionFrom answers 401 when the request carries no session
func sessionFrom(w http.ResponseWriter, r *http.Request) (utils.Session, bool) {
	session, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
	}
	return session, ok
}

// handleServiceError maps usecase errors onto HTTP responses
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Warn(operation+" validation failed", zap.Error(err))
		if len(validationErr.Fields) > 0 && validationErr.Message == "" {
			utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)
			return
		}
		utils.ResponseBadRequest(w, validationErr.Error(), validationErr.Fields)

	case errors.Is(err, usecase.ErrSlotOverlap):
		log.Warn(operation+" failed - overlapping slots", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrSlotNotAvailable):
		log.Warn(operation+" failed - slot taken", zap.Error(err))
		utils.ResponseBadRequest(w, "Slot not available", nil)

	case errors.Is(err, usecase.ErrGameHasBookedSlots):
		log.Warn(operation+" failed - game has bookings", zap.Error(err))
		utils.ResponseBadRequest(w, "Cannot delete game with active bookings", nil)

	case errors.Is(err, usecase.ErrGameNotFound),
		errors.Is(err, usecase.ErrSlotNotFound),
		errors.Is(err, usecase.ErrBookingNotFound),
		errors.Is(err, usecase.ErrUserNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, "Access denied")

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
