package entity

import (
	"github.com/google/uuid"
)

// TimeSlot is a bookable interval of one game on one date. Date is YYYY-MM-DD,
// StartTime and EndTime are HH:MM in the facility's local time.
type TimeSlot struct {
	BaseSimple
	GameID    uuid.UUID `db:"game_id"`
	Date      string    `db:"date"`
	StartTime string    `db:"start_time"`
	EndTime   string    `db:"end_time"`
	IsBooked  bool      `db:"is_booked"`

	// Occupant fields are set only while IsBooked is true
	BookedBy    *uuid.UUID `db:"booked_by"`
	PlayerName  *string    `db:"player_name"`
	PlayerEmail *string    `db:"player_email"`
	PlayerPhone *string    `db:"player_phone"`
}

// Occupant is the player snapshot written onto a slot when it is reserved.
type Occupant struct {
	UserID uuid.UUID
	Name   string
	Email  string
	Phone  *string
}
