package response

import (
	"time"

	"sports-booking/internal/data/entity"
)

type GameResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Duration    int       `json:"duration"`
	Image       *string   `json:"image"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func GameToResponse(game *entity.Game) *GameResponse {
	return &GameResponse{
		ID:          game.ID.String(),
		Name:        game.Name,
		Description: game.Description,
		Price:       game.Price.InexactFloat64(),
		Duration:    game.Duration,
		Image:       game.Image,
		IsActive:    game.IsActive,
		CreatedAt:   game.CreatedAt,
		UpdatedAt:   game.UpdatedAt,
	}
}

func GamesToResponse(games []*entity.Game) []*GameResponse {
	out := make([]*GameResponse, len(games))
	for i, game := range games {
		out[i] = GameToResponse(game)
	}
	return out
}
