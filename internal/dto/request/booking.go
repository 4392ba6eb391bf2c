package request

import "github.com/shopspring/decimal"

type CreateBookingRequest struct {
	SlotID      string      `json:"slotId" validate:"required,uuid"`
	BookingData BookingData `json:"bookingData"`
}

// BookingData is the snapshot the client saw when choosing the slot. Game,
// date and times are checked against the slot; price is always taken from
// the game.
type BookingData struct {
	GameID    string           `json:"gameId" validate:"omitempty,uuid"`
	GameName  string           `json:"gameName"`
	UserID    string           `json:"userId" validate:"required,uuid"`
	UserName  string           `json:"userName" validate:"required"`
	UserEmail string           `json:"userEmail" validate:"required,email"`
	UserPhone *string          `json:"userPhone"`
	Date      string           `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime string           `json:"startTime" validate:"omitempty,datetime=15:04"`
	EndTime   string           `json:"endTime" validate:"omitempty,datetime=15:04"`
	Price     *decimal.Decimal `json:"price"`
	Status    string           `json:"status" validate:"omitempty,oneof=confirmed"`
}
