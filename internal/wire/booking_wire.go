package wire

import (
	"sports-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, g guards) {
	// GET /api/available-slots?gameId= - open future slots (public)
	r.Get("/available-slots", bookingHandler.GetAvailableSlots)

	r.Route("/bookings", func(r chi.Router) {
		r.Use(g.authenticate)

		// Owner or admin, checked by the service
		r.Get("/", bookingHandler.GetUserBookings)
		r.Post("/", bookingHandler.BookSlot)
		r.Delete("/{id}", bookingHandler.CancelBooking)

		r.With(g.admin).Get("/all", bookingHandler.GetAllBookings)
	})
}
