package wire

import (
	"sports-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, bookingHandler *adaptor.BookingHandler, g guards) {
	r.Route("/users/{userId}", func(r chi.Router) {
		r.Use(g.authenticate)

		r.Get("/", userHandler.GetProfile)
		r.Put("/", userHandler.UpdateProfile)
		r.Get("/stats", bookingHandler.GetBookingStats)
	})
}
