package response

import (
	"time"

	"sports-booking/internal/data/entity"
)

type TimeSlotResponse struct {
	ID          string    `json:"id"`
	GameID      string    `json:"gameId"`
	Date        string    `json:"date"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	IsBooked    bool      `json:"isBooked"`
	BookedBy    *string   `json:"bookedBy"`
	PlayerName  *string   `json:"playerName"`
	PlayerEmail *string   `json:"playerEmail"`
	PlayerPhone *string   `json:"playerPhone"`
	CreatedAt   time.Time `json:"createdAt"`
}

func TimeSlotToResponse(slot *entity.TimeSlot) *TimeSlotResponse {
	res := &TimeSlotResponse{
		ID:          slot.ID.String(),
		GameID:      slot.GameID.String(),
		Date:        slot.Date,
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		IsBooked:    slot.IsBooked,
		PlayerName:  slot.PlayerName,
		PlayerEmail: slot.PlayerEmail,
		PlayerPhone: slot.PlayerPhone,
		CreatedAt:   slot.CreatedAt,
	}
	if slot.BookedBy != nil {
		id := slot.BookedBy.String()
		res.BookedBy = &id
	}
	return res
}

func TimeSlotsToResponse(slots []*entity.TimeSlot) []*TimeSlotResponse {
	out := make([]*TimeSlotResponse, len(slots))
	for i, slot := range slots {
		out[i] = TimeSlotToResponse(slot)
	}
	return out
}
