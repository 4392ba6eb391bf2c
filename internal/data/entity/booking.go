package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is an immutable record of a reservation. Game and user fields are
// snapshots taken at booking time and are never refreshed from their sources.
type Booking struct {
	ID        uuid.UUID       `db:"id"`
	SlotID    *uuid.UUID      `db:"slot_id"`
	GameID    uuid.UUID       `db:"game_id"`
	GameName  string          `db:"game_name"`
	UserID    uuid.UUID       `db:"user_id"`
	UserName  string          `db:"user_name"`
	UserEmail string          `db:"user_email"`
	UserPhone *string         `db:"user_phone"`
	Date      string          `db:"date"`
	StartTime string          `db:"start_time"`
	EndTime   string          `db:"end_time"`
	Price     decimal.Decimal `db:"price"`
	Status    BookingStatus   `db:"status"`
	BookedAt  time.Time       `db:"booked_at"`
}

func (b *Booking) IsCancelled() bool {
	return b.Status == BookingStatusCancelled
}
