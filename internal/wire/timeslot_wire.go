package wire

import (
	"sports-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTimeSlot(r chi.Router, slotHandler *adaptor.TimeSlotHandler, g guards) {
	// GET /api/timeslots?gameId= - every slot of a game (public)
	r.Get("/timeslots", slotHandler.GetSlots)

	r.Group(func(r chi.Router) {
		r.Use(g.authenticate, g.admin)

		r.Post("/timeslots", slotHandler.CreateSlots)
		r.Get("/timeslots/all", slotHandler.GetAllSlots)
	})
}
