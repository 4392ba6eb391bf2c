package response

import (
	"time"

	"sports-booking/internal/data/entity"
)

type BookingResponse struct {
	ID        string               `json:"id"`
	SlotID    *string              `json:"slotId"`
	GameID    string               `json:"gameId"`
	GameName  string               `json:"gameName"`
	UserID    string               `json:"userId"`
	UserName  string               `json:"userName"`
	UserEmail string               `json:"userEmail"`
	UserPhone *string              `json:"userPhone"`
	Date      string               `json:"date"`
	StartTime string               `json:"startTime"`
	EndTime   string               `json:"endTime"`
	Price     float64              `json:"price"`
	Status    entity.BookingStatus `json:"status"`
	BookedAt  time.Time            `json:"bookedAt"`
}

// BookingStatsResponse carries the confirmed bookings themselves; clients
// count them.
type BookingStatsResponse struct {
	ConfirmedBookings []*BookingResponse `json:"confirmedBookings"`
	TotalSpent        float64            `json:"totalSpent"`
	UpcomingBookings  int                `json:"upcomingBookings"`
}

func BookingToResponse(booking *entity.Booking) *BookingResponse {
	res := &BookingResponse{
		ID:        booking.ID.String(),
		GameID:    booking.GameID.String(),
		GameName:  booking.GameName,
		UserID:    booking.UserID.String(),
		UserName:  booking.UserName,
		UserEmail: booking.UserEmail,
		UserPhone: booking.UserPhone,
		Date:      booking.Date,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		Price:     booking.Price.InexactFloat64(),
		Status:    booking.Status,
		BookedAt:  booking.BookedAt,
	}
	if booking.SlotID != nil {
		id := booking.SlotID.String()
		res.SlotID = &id
	}
	return res
}

func BookingsToResponse(bookings []*entity.Booking) []*BookingResponse {
	out := make([]*BookingResponse, len(bookings))
	for i, booking := range bookings {
		out[i] = BookingToResponse(booking)
	}
	return out
}
