package repository

import (
	"context"
	"errors"
	"fmt"

	"sports-booking/internal/data/entity"
	"sports-booking/pkg/database"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SlotFilter narrows slot listings; nil fields are ignored.
type SlotFilter struct {
	GameID   *uuid.UUID
	Date     *string
	IsBooked *bool
}

type TimeSlotRepository interface {
	CreateBatch(ctx context.Context, slots []*entity.TimeSlot) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TimeSlot, error)
	FindAll(ctx context.Context, filter SlotFilter) ([]*entity.TimeSlot, error)
	FindByGameAndDate(ctx context.Context, gameID uuid.UUID, date string) ([]*entity.TimeSlot, error)
	HasBookedSlots(ctx context.Context, gameID uuid.UUID) (bool, error)
	DeleteByGameID(ctx context.Context, gameID uuid.UUID) (int64, error)

	// Reserve flips an open slot to booked and returns it. It returns nil
	// when the slot is missing or already booked.
	Reserve(ctx context.Context, id uuid.UUID, occupant entity.Occupant) (*entity.TimeSlot, error)
	// Release reopens a booked slot and reports whether a row changed.
	Release(ctx context.Context, id uuid.UUID) (bool, error)
	// ReleaseMatching reopens the booked slot of a game at the given interval.
	ReleaseMatching(ctx context.Context, gameID uuid.UUID, date, startTime, endTime string) (bool, error)
}

const slotColumns = `id, game_id, date, start_time, end_time, is_booked,
	booked_by, player_name, player_email, player_phone, created_at`

type timeSlotRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTimeSlotRepository(db database.PgxIface, log *zap.Logger) TimeSlotRepository {
	return &timeSlotRepository{
		db:  db,
		log: log.With(zap.String("repository", "time_slot")),
	}
}

func scanTimeSlot(row pgx.Row) (*entity.TimeSlot, error) {
	var slot entity.TimeSlot
	err := row.Scan(
		&slot.ID,
		&slot.GameID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsBooked,
		&slot.BookedBy,
		&slot.PlayerName,
		&slot.PlayerEmail,
		&slot.PlayerPhone,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *timeSlotRepository) collect(rows pgx.Rows) ([]*entity.TimeSlot, error) {
	defer rows.Close()

	slots := make([]*entity.TimeSlot, 0)
	for rows.Next() {
		slot, err := scanTimeSlot(rows)
		if err != nil {
			r.log.Error("Failed to scan time slot row", zap.Error(err))
			return nil, fmt.Errorf("scan time slot row: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, rows.Err()
}

// CreateBatch inserts every slot in a single statement
func (r *timeSlotRepository) CreateBatch(ctx context.Context, slots []*entity.TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}

	builder := psql.Insert("time_slots").
		Columns("id", "game_id", "date", "start_time", "end_time", "is_booked", "created_at")
	for _, slot := range slots {
		builder = builder.Values(slot.ID, slot.GameID, slot.Date, slot.StartTime, slot.EndTime, false, slot.CreatedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build slot insert: %w", err)
	}

	if _, err := database.Executor(ctx, r.db).Exec(ctx, query, args...); err != nil {
		r.log.Error("Failed to create time slots",
			zap.Error(err),
			zap.String("game_id", slots[0].GameID.String()),
			zap.Int("count", len(slots)),
		)
		return fmt.Errorf("create %d time slots: %w", len(slots), err)
	}

	return nil
}

func (r *timeSlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TimeSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM time_slots WHERE id = $1`

	slot, err := scanTimeSlot(database.Executor(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find time slot by ID",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("find time slot by ID %s: %w", id.String(), err)
	}

	return slot, nil
}

func (r *timeSlotRepository) FindAll(ctx context.Context, filter SlotFilter) ([]*entity.TimeSlot, error) {
	builder := psql.Select(slotColumns).From("time_slots").OrderBy("date ASC", "start_time ASC")

	if filter.GameID != nil {
		builder = builder.Where(sq.Eq{"game_id": *filter.GameID})
	}
	if filter.Date != nil {
		builder = builder.Where(sq.Eq{"date": *filter.Date})
	}
	if filter.IsBooked != nil {
		builder = builder.Where(sq.Eq{"is_booked": *filter.IsBooked})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build time slots query: %w", err)
	}

	rows, err := database.Executor(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find time slots", zap.Error(err))
		return nil, fmt.Errorf("find time slots: %w", err)
	}

	return r.collect(rows)
}

func (r *timeSlotRepository) FindByGameAndDate(ctx context.Context, gameID uuid.UUID, date string) ([]*entity.TimeSlot, error) {
	return r.FindAll(ctx, SlotFilter{GameID: &gameID, Date: &date})
}

func (r *timeSlotRepository) HasBookedSlots(ctx context.Context, gameID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM time_slots WHERE game_id = $1 AND is_booked = true)`

	var exists bool
	if err := database.Executor(ctx, r.db).QueryRow(ctx, query, gameID).Scan(&exists); err != nil {
		r.log.Error("Failed to check booked slots",
			zap.Error(err),
			zap.String("game_id", gameID.String()),
		)
		return false, fmt.Errorf("check booked slots for game %s: %w", gameID.String(), err)
	}

	return exists, nil
}

func (r *timeSlotRepository) DeleteByGameID(ctx context.Context, gameID uuid.UUID) (int64, error) {
	result, err := database.Executor(ctx, r.db).Exec(ctx, `DELETE FROM time_slots WHERE game_id = $1`, gameID)
	if err != nil {
		r.log.Error("Failed to delete time slots",
			zap.Error(err),
			zap.String("game_id", gameID.String()),
		)
		return 0, fmt.Errorf("delete time slots for game %s: %w", gameID.String(), err)
	}

	return result.RowsAffected(), nil
}

// Reserve is the single point where a slot becomes booked. The is_booked
// predicate makes the flip atomic so concurrent callers get one winner.
func (r *timeSlotRepository) Reserve(ctx context.Context, id uuid.UUID, occupant entity.Occupant) (*entity.TimeSlot, error) {
	query := `
		UPDATE time_slots
		SET is_booked = true, booked_by = $2, player_name = $3, player_email = $4, player_phone = $5
		WHERE id = $1 AND is_booked = false
		RETURNING ` + slotColumns

	slot, err := scanTimeSlot(database.Executor(ctx, r.db).QueryRow(ctx, query,
		id,
		occupant.UserID,
		occupant.Name,
		occupant.Email,
		occupant.Phone,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to reserve time slot",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return nil, fmt.Errorf("reserve time slot %s: %w", id.String(), err)
	}

	return slot, nil
}

const releaseSet = `
	UPDATE time_slots
	SET is_booked = false, booked_by = NULL, player_name = NULL, player_email = NULL, player_phone = NULL
`

func (r *timeSlotRepository) Release(ctx context.Context, id uuid.UUID) (bool, error) {
	query := releaseSet + ` WHERE id = $1 AND is_booked = true`

	result, err := database.Executor(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to release time slot",
			zap.Error(err),
			zap.String("slot_id", id.String()),
		)
		return false, fmt.Errorf("release time slot %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *timeSlotRepository) ReleaseMatching(ctx context.Context, gameID uuid.UUID, date, startTime, endTime string) (bool, error) {
	query := releaseSet + `
		WHERE game_id = $1 AND date = $2 AND start_time = $3 AND end_time = $4 AND is_booked = true
	`

	result, err := database.Executor(ctx, r.db).Exec(ctx, query, gameID, date, startTime, endTime)
	if err != nil {
		r.log.Error("Failed to release time slot by interval",
			zap.Error(err),
			zap.String("game_id", gameID.String()),
			zap.String("date", date),
			zap.String("start_time", startTime),
		)
		return false, fmt.Errorf("release time slot of game %s at %s %s: %w", gameID.String(), date, startTime, err)
	}

	return result.RowsAffected() > 0, nil
}
