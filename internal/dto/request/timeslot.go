package request

type SlotRange struct {
	StartTime string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime   string `json:"endTime" validate:"required,datetime=15:04"`
}

// CreateSlotsRequest generates slots for one game on one date
type CreateSlotsRequest struct {
	GameID string      `json:"gameId" validate:"required,uuid"`
	Date   string      `json:"date" validate:"required,datetime=2006-01-02"`
	Slots  []SlotRange `json:"slots" validate:"required,min=1,dive"`
}
