package wire

import (
	"sports-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireGame(r chi.Router, gameHandler *adaptor.GameHandler, g guards) {
	r.Route("/games", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", gameHandler.GetAllGames)
		r.Get("/active", gameHandler.GetActiveGames)
		r.Get("/{id}", gameHandler.GetGame)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(g.authenticate, g.admin)

			r.Post("/", gameHandler.CreateGame)
			r.Put("/{id}", gameHandler.UpdateGame)
			r.Delete("/{id}", gameHandler.DeleteGame)
		})
	})
}
