package adaptor

import (
	"net/http"

	"sports-booking/internal/dto/request"
	"sports-booking/internal/usecase"
	"sports-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type GameHandler struct {
	service usecase.GameService
	log     *zap.Logger
}

func NewGameHandler(service usecase.GameService, log *zap.Logger) *GameHandler {
	return &GameHandler{
		service: service,
		log:     log.With(zap.String("handler", "game")),
	}
}

// GetAllGames handles GET /api/games
func (h *GameHandler) GetAllGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.service.GetAllGames(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get games")
		return
	}

	utils.ResponseSuccess(w, "success", games)
}

// GetActiveGames handles GET /api/games/active
func (h *GameHandler) GetActiveGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.service.GetActiveGames(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get active games")
		return
	}

	utils.ResponseSuccess(w, "success", games)
}

// GetGame handles GET /api/games/{id}
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.service.GetGameByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get game")
		return
	}

	utils.ResponseSuccess(w, "success", game)
}

// CreateGame handles POST /api/games (admin)
func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	game, err := h.service.CreateGame(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create game")
		return
	}

	utils.ResponseCreated(w, "Game created", game)
}

// UpdateGame handles PUT /api/games/{id} (admin)
func (h *GameHandler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateGameRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	game, err := h.service.UpdateGame(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update game")
		return
	}

	utils.ResponseSuccess(w, "Game updated", game)
}

// DeleteGame handles DELETE /api/games/{id} (admin)
func (h *GameHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete game")
		return
	}

	utils.ResponseSuccess(w, "Game deleted successfully", nil)
}
