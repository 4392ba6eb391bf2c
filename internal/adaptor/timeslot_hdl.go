package adaptor

import (
	"net/http"

	"sports-booking/internal/dto/request"
	"sports-booking/internal/usecase"
	"sports-booking/pkg/utils"

	"go.uber.org/zap"
)

type TimeSlotHandler struct {
	service usecase.TimeSlotService
	log     *zap.Logger
}

func NewTimeSlotHandler(service usecase.TimeSlotService, log *zap.Logger) *TimeSlotHandler {
	return &TimeSlotHandler{
		service: service,
		log:     log.With(zap.String("handler", "time_slot")),
	}
}

// GetSlots handles GET /api/timeslots?gameId=
func (h *TimeSlotHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("gameId")
	if gameID == "" {
		utils.ResponseBadRequest(w, "Game ID is required", nil)
		return
	}

	slots, err := h.service.GetSlotsForGame(r.Context(), gameID)
	if err != nil {
		handleServiceError(w, h.log, err, "get time slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// GetAllSlots handles GET /api/timeslots/all (admin)
func (h *TimeSlotHandler) GetAllSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.service.GetAllSlots(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get all time slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// CreateSlots handles POST /api/timeslots (admin)
func (h *TimeSlotHandler) CreateSlots(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSlotsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	slots, err := h.service.CreateSlots(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create time slots")
		return
	}

	utils.ResponseCreated(w, "Time slots created", slots)
}
