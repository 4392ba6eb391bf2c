package repository

import (
	"context"
	"errors"
	"fmt"

	"sports-booking/internal/data/entity"
	"sports-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Game, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*entity.Game, error)
	Update(ctx context.Context, game *entity.Game) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Row locks, only meaningful inside a transaction
	FindByIDForShare(ctx context.Context, id uuid.UUID) (*entity.Game, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Game, error)
}

const gameColumns = `id, name, description, price, duration, image, is_active, created_at, updated_at`

type gameRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGameRepository(db database.PgxIface, log *zap.Logger) GameRepository {
	return &gameRepository{
		db:  db,
		log: log.With(zap.String("repository", "game")),
	}
}

func scanGame(row pgx.Row) (*entity.Game, error) {
	var game entity.Game
	err := row.Scan(
		&game.ID,
		&game.Name,
		&game.Description,
		&game.Price,
		&game.Duration,
		&game.Image,
		&game.IsActive,
		&game.CreatedAt,
		&game.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) Create(ctx context.Context, game *entity.Game) error {
	query := `
		INSERT INTO games (id, name, description, price, duration, image, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := database.Executor(ctx, r.db).Exec(ctx, query,
		game.ID,
		game.Name,
		game.Description,
		game.Price,
		game.Duration,
		game.Image,
		game.IsActive,
		game.CreatedAt,
		game.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create game",
			zap.Error(err),
			zap.String("name", game.Name),
		)
		return fmt.Errorf("create game %s: %w", game.Name, err)
	}

	return nil
}

func (r *gameRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Game, error) {
	return r.findByID(ctx, id, "")
}

func (r *gameRepository) FindByIDForShare(ctx context.Context, id uuid.UUID) (*entity.Game, error) {
	return r.findByID(ctx, id, " FOR SHARE")
}

func (r *gameRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Game, error) {
	return r.findByID(ctx, id, " FOR UPDATE")
}

func (r *gameRepository) findByID(ctx context.Context, id uuid.UUID, lock string) (*entity.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1` + lock

	game, err := scanGame(database.Executor(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find game by ID",
			zap.Error(err),
			zap.String("game_id", id.String()),
		)
		return nil, fmt.Errorf("find game by ID %s: %w", id.String(), err)
	}

	return game, nil
}

func (r *gameRepository) FindAll(ctx context.Context, activeOnly bool) ([]*entity.Game, error) {
	builder := psql.Select(gameColumns).From("games").OrderBy("created_at DESC")
	if activeOnly {
		builder = builder.Where("is_active = ?", true)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build games query: %w", err)
	}

	rows, err := database.Executor(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find games", zap.Error(err), zap.Bool("active_only", activeOnly))
		return nil, fmt.Errorf("find games: %w", err)
	}
	defer rows.Close()

	games := make([]*entity.Game, 0)
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			r.log.Error("Failed to scan game row", zap.Error(err))
			return nil, fmt.Errorf("scan game row: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}

func (r *gameRepository) Update(ctx context.Context, game *entity.Game) error {
	query := `
		UPDATE games
		SET name = $2, description = $3, price = $4, duration = $5,
		    image = $6, is_active = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := database.Executor(ctx, r.db).Exec(ctx, query,
		game.ID,
		game.Name,
		game.Description,
		game.Price,
		game.Duration,
		game.Image,
		game.IsActive,
		game.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update game",
			zap.Error(err),
			zap.String("game_id", game.ID.String()),
		)
		return fmt.Errorf("update game %s: %w", game.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("game %s: %w", game.ID.String(), ErrNoRows)
	}

	return nil
}

func (r *gameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := database.Executor(ctx, r.db).Exec(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete game",
			zap.Error(err),
			zap.String("game_id", id.String()),
		)
		return fmt.Errorf("delete game %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("game %s: %w", id.String(), ErrNoRows)
	}

	r.log.Info("Game deleted", zap.String("game_id", id.String()))
	return nil
}
