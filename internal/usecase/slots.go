package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"sports-booking/internal/data/entity"
	"sports-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// availableSlotsVersionKey holds the generation of a game's open set. Every
// committed change to the game's slots bumps it.
func availableSlotsVersionKey(gameID uuid.UUID) string {
	return "available-slots:ver:" + gameID.String()
}

// availableSlotsKey names the open set read under one generation. A reader
// that loaded slots before a bump can only write to the superseded key.
func availableSlotsKey(gameID uuid.UUID, version int64) string {
	return fmt.Sprintf("available-slots:%s:%d", gameID, version)
}

// forgetAvailableSlots moves the game to a new generation so no cached open
// set, including one still being written, is served again. Failures only
// leave a stale entry until its TTL runs out.
func forgetAvailableSlots(ctx context.Context, infra Infra, log *zap.Logger, gameID uuid.UUID) {
	if err := infra.Cache.Bump(ctx, availableSlotsVersionKey(gameID)); err != nil {
		log.Warn("Failed to invalidate available slots cache",
			zap.Error(err),
			zap.String("game_id", gameID.String()),
		)
	}
}

// isUpcoming reports whether the interval starting at date+startTime lies
// strictly after now. Unparseable values count as past.
func isUpcoming(date, startTime string, loc *time.Location, now time.Time) bool {
	start, err := utils.SlotStart(date, startTime, loc)
	if err != nil {
		return false
	}
	return start.After(now)
}

func sortSlots(slots []*entity.TimeSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Date != slots[j].Date {
			return slots[i].Date < slots[j].Date
		}
		return slots[i].StartTime < slots[j].StartTime
	})
}

type interval struct {
	start, end int
}

func (a interval) overlaps(b interval) bool {
	return a.start < b.end && b.start < a.end
}
