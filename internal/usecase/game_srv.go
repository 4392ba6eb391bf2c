package usecase

import (
	"context"
	"fmt"
	"strings"

	"sports-booking/internal/data/entity"
	"sports-booking/internal/data/repository"
	"sports-booking/internal/dto/request"
	"sports-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GameService interface {
	// Public
	GetAllGames(ctx context.Context) ([]*response.GameResponse, error)
	GetActiveGames(ctx context.Context) ([]*response.GameResponse, error)
	GetGameByID(ctx context.Context, gameID string) (*response.GameResponse, error)

	// Admin
	CreateGame(ctx context.Context, req *request.CreateGameRequest) (*response.GameResponse, error)
	UpdateGame(ctx context.Context, gameID string, req *request.UpdateGameRequest) (*response.GameResponse, error)
	DeleteGame(ctx context.Context, gameID string) error
}

type gameService struct {
	repo  *repository.Repository
	infra Infra
	log   *zap.Logger
}

func NewGameService(repo *repository.Repository, infra Infra, log *zap.Logger) GameService {
	return &gameService{
		repo:  repo,
		infra: infra,
		log:   log.With(zap.String("service", "game")),
	}
}

func (s *gameService) GetAllGames(ctx context.Context) ([]*response.GameResponse, error) {
	games, err := s.repo.Game.FindAll(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("get games: %w", err)
	}
	return response.GamesToResponse(games), nil
}

func (s *gameService) GetActiveGames(ctx context.Context) ([]*response.GameResponse, error) {
	games, err := s.repo.Game.FindAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("get active games: %w", err)
	}
	return response.GamesToResponse(games), nil
}

func (s *gameService) GetGameByID(ctx context.Context, gameID string) (*response.GameResponse, error) {
	id, err := parseID("gameId", gameID)
	if err != nil {
		return nil, err
	}

	game, err := s.repo.Game.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get game: %w", err)
	}
	if game == nil {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrGameNotFound)
	}

	return response.GameToResponse(game), nil
}

func (s *gameService) CreateGame(ctx context.Context, req *request.CreateGameRequest) (*response.GameResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create game validation failed", zap.Error(err))
		return nil, err
	}
	if req.Price.IsNegative() {
		return nil, invalid("price must not be negative")
	}

	now := s.infra.Now()
	game := &entity.Game{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price.Round(2),
		Duration:    req.Duration,
		Image:       req.Image,
		IsActive:    true,
	}
	if req.IsActive != nil {
		game.IsActive = *req.IsActive
	}

	if err := s.repo.Game.Create(ctx, game); err != nil {
		return nil, err
	}

	s.log.Info("Game created",
		zap.String("game_id", game.ID.String()),
		zap.String("name", game.Name),
	)

	return response.GameToResponse(game), nil
}

func (s *gameService) UpdateGame(ctx context.Context, gameID string, req *request.UpdateGameRequest) (*response.GameResponse, error) {
	id, err := parseID("gameId", gameID)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		s.log.Warn("Update game validation failed", zap.Error(err))
		return nil, err
	}
	if req.Price.IsNegative() {
		return nil, invalid("price must not be negative")
	}

	game, err := s.repo.Game.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get game: %w", err)
	}
	if game == nil {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrGameNotFound)
	}

	game.Name = strings.TrimSpace(req.Name)
	game.Description = strings.TrimSpace(req.Description)
	game.Price = req.Price.Round(2)
	game.Duration = req.Duration
	if req.Image != nil {
		game.Image = req.Image
	}
	if req.IsActive != nil {
		game.IsActive = *req.IsActive
	}
	game.UpdatedAt = s.infra.Now()

	if err := s.repo.Game.Update(ctx, game); err != nil {
		return nil, err
	}

	s.log.Info("Game updated", zap.String("game_id", gameID))
	return response.GameToResponse(game), nil
}

// DeleteGame removes a game and its slots. The game row lock keeps new
// bookings out while booked slots are checked.
func (s *gameService) DeleteGame(ctx context.Context, gameID string) error {
	id, err := parseID("gameId", gameID)
	if err != nil {
		return err
	}

	err = s.infra.Tx.WithinTx(ctx, func(ctx context.Context) error {
		game, err := s.repo.Game.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if game == nil {
			return fmt.Errorf("game %s: %w", gameID, ErrGameNotFound)
		}

		booked, err := s.repo.TimeSlot.HasBookedSlots(ctx, id)
		if err != nil {
			return err
		}
		if booked {
			return fmt.Errorf("game %s: %w", gameID, ErrGameHasBookedSlots)
		}

		removed, err := s.repo.TimeSlot.DeleteByGameID(ctx, id)
		if err != nil {
			return err
		}

		if err := s.repo.Game.Delete(ctx, id); err != nil {
			return err
		}

		s.log.Info("Game deleted",
			zap.String("game_id", gameID),
			zap.Int64("slots_removed", removed),
		)
		return nil
	})
	if err != nil {
		return err
	}

	forgetAvailableSlots(ctx, s.infra, s.log, id)
	return nil
}
