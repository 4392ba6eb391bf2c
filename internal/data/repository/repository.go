package repository

import (
	"errors"

	"sports-booking/pkg/database"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

// psql builds PostgreSQL-flavoured statements for the filtered listings
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	User     UserRepository
	Game     GameRepository
	TimeSlot TimeSlotRepository
	Booking  BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Game:     NewGameRepository(db, log),
		TimeSlot: NewTimeSlotRepository(db, log),
		Booking:  NewBookingRepository(db, log),
	}
}

// ErrNoRows is returned by writes that matched nothing
var ErrNoRows = errors.New("no rows affected")
