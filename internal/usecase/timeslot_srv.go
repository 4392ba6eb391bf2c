package usecase

import (
	"context"
	"fmt"

	"sports-booking/internal/data/entity"
	"sports-booking/internal/data/repository"
	"sports-booking/internal/dto/request"
	"sports-booking/internal/dto/response"
	"sports-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TimeSlotService interface {
	GetSlotsForGame(ctx context.Context, gameID string) ([]*response.TimeSlotResponse, error)

	// Admin
	CreateSlots(ctx context.Context, req *request.CreateSlotsRequest) ([]*response.TimeSlotResponse, error)
	GetAllSlots(ctx context.Context) ([]*response.TimeSlotResponse, error)
}

type timeSlotService struct {
	repo  *repository.Repository
	infra Infra
	log   *zap.Logger
}

func NewTimeSlotService(repo *repository.Repository, infra Infra, log *zap.Logger) TimeSlotService {
	return &timeSlotService{
		repo:  repo,
		infra: infra,
		log:   log.With(zap.String("service", "time_slot")),
	}
}

func (s *timeSlotService) GetSlotsForGame(ctx context.Context, gameID string) ([]*response.TimeSlotResponse, error) {
	id, err := parseID("gameId", gameID)
	if err != nil {
		return nil, err
	}

	slots, err := s.repo.TimeSlot.FindAll(ctx, repository.SlotFilter{GameID: &id})
	if err != nil {
		return nil, fmt.Errorf("get slots for game %s: %w", gameID, err)
	}

	return response.TimeSlotsToResponse(slots), nil
}

func (s *timeSlotService) GetAllSlots(ctx context.Context) ([]*response.TimeSlotResponse, error) {
	slots, err := s.repo.TimeSlot.FindAll(ctx, repository.SlotFilter{})
	if err != nil {
		return nil, fmt.Errorf("get all slots: %w", err)
	}

	return response.TimeSlotsToResponse(slots), nil
}

// CreateSlots inserts every requested interval or none of them. Intervals
// may touch but not overlap each other or the game's existing slots that day.
func (s *timeSlotService) CreateSlots(ctx context.Context, req *request.CreateSlotsRequest) ([]*response.TimeSlotResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create slots validation failed", zap.Error(err))
		return nil, err
	}

	gameID, err := parseID("gameId", req.GameID)
	if err != nil {
		return nil, err
	}

	requested, err := parseRanges(req.Slots)
	if err != nil {
		return nil, err
	}

	for i := range requested {
		for j := i + 1; j < len(requested); j++ {
			if requested[i].overlaps(requested[j]) {
				return nil, fmt.Errorf("%s-%s and %s-%s: %w",
					req.Slots[i].StartTime, req.Slots[i].EndTime,
					req.Slots[j].StartTime, req.Slots[j].EndTime, ErrSlotOverlap)
			}
		}
	}

	now := s.infra.Now()
	slots := make([]*entity.TimeSlot, len(req.Slots))
	for i, r := range req.Slots {
		slots[i] = &entity.TimeSlot{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			GameID:     gameID,
			Date:       req.Date,
			StartTime:  r.StartTime,
			EndTime:    r.EndTime,
		}
	}

	err = s.infra.Tx.WithinTx(ctx, func(ctx context.Context) error {
		// Locking the game serializes generation for the same game
		game, err := s.repo.Game.FindByIDForUpdate(ctx, gameID)
		if err != nil {
			return err
		}
		if game == nil {
			return fmt.Errorf("game %s: %w", req.GameID, ErrGameNotFound)
		}

		existing, err := s.repo.TimeSlot.FindByGameAndDate(ctx, gameID, req.Date)
		if err != nil {
			return err
		}

		for _, slot := range existing {
			taken, err := parseRange(slot.StartTime, slot.EndTime)
			if err != nil {
				s.log.Warn("Skipping stored slot with malformed times",
					zap.String("slot_id", slot.ID.String()),
					zap.Error(err),
				)
				continue
			}
			for i, r := range requested {
				if r.overlaps(taken) {
					return fmt.Errorf("%s-%s overlaps existing slot %s-%s on %s: %w",
						req.Slots[i].StartTime, req.Slots[i].EndTime,
						slot.StartTime, slot.EndTime, req.Date, ErrSlotOverlap)
				}
			}
		}

		return s.repo.TimeSlot.CreateBatch(ctx, slots)
	})
	if err != nil {
		return nil, err
	}

	forgetAvailableSlots(ctx, s.infra, s.log, gameID)

	s.log.Info("Time slots created",
		zap.String("game_id", req.GameID),
		zap.String("date", req.Date),
		zap.Int("count", len(slots)),
	)

	return response.TimeSlotsToResponse(slots), nil
}

func parseRanges(ranges []request.SlotRange) ([]interval, error) {
	out := make([]interval, len(ranges))
	for i, r := range ranges {
		iv, err := parseRange(r.StartTime, r.EndTime)
		if err != nil {
			return nil, err
		}
		out[i] = iv
	}
	return out, nil
}

func parseRange(startTime, endTime string) (interval, error) {
	start, err := utils.MinutesOfDay(startTime)
	if err != nil {
		return interval{}, invalid("invalid start time %q", startTime)
	}
	end, err := utils.MinutesOfDay(endTime)
	if err != nil {
		return interval{}, invalid("invalid end time %q", endTime)
	}
	if start >= end {
		return interval{}, invalid("start time %s must be before end time %s", startTime, endTime)
	}
	return interval{start: start, end: end}, nil
}
