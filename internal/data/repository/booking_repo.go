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

// BookingFilter narrows booking listings; nil fields are ignored.
type BookingFilter struct {
	UserID *uuid.UUID
	GameID *uuid.UUID
	Status *entity.BookingStatus
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context, filter BookingFilter) ([]*entity.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error
}

const bookingColumns = `id, slot_id, game_id, game_name, user_id, user_name, user_email, user_phone,
	date, start_time, end_time, price, status, booked_at`

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.SlotID,
		&booking.GameID,
		&booking.GameName,
		&booking.UserID,
		&booking.UserName,
		&booking.UserEmail,
		&booking.UserPhone,
		&booking.Date,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Price,
		&booking.Status,
		&booking.BookedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, slot_id, game_id, game_name, user_id, user_name, user_email, user_phone,
		                      date, start_time, end_time, price, status, booked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := database.Executor(ctx, r.db).Exec(ctx, query,
		booking.ID,
		booking.SlotID,
		booking.GameID,
		booking.GameName,
		booking.UserID,
		booking.UserName,
		booking.UserEmail,
		booking.UserPhone,
		booking.Date,
		booking.StartTime,
		booking.EndTime,
		booking.Price,
		booking.Status,
		booking.BookedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", booking.UserID.String()),
			zap.String("game_id", booking.GameID.String()),
		)
		return fmt.Errorf("create booking for user %s: %w", booking.UserID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.findByID(ctx, id, "")
}

// FindByIDForUpdate locks the booking row until the surrounding transaction ends
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.findByID(ctx, id, " FOR UPDATE")
}

func (r *bookingRepository) findByID(ctx context.Context, id uuid.UUID, lock string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1` + lock

	booking, err := scanBooking(database.Executor(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

// FindAll lists bookings newest first
func (r *bookingRepository) FindAll(ctx context.Context, filter BookingFilter) ([]*entity.Booking, error) {
	builder := psql.Select(bookingColumns).From("bookings").OrderBy("booked_at DESC")

	if filter.UserID != nil {
		builder = builder.Where(sq.Eq{"user_id": *filter.UserID})
	}
	if filter.GameID != nil {
		builder = builder.Where(sq.Eq{"game_id": *filter.GameID})
	}
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": string(*filter.Status)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build bookings query: %w", err)
	}

	rows, err := database.Executor(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find bookings", zap.Error(err))
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]*entity.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	result, err := database.Executor(ctx, r.db).Exec(ctx,
		`UPDATE bookings SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", id.String(), ErrNoRows)
	}

	return nil
}
