package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sports-booking/internal/data/entity"
	"sports-booking/internal/data/repository"
	"sports-booking/internal/dto/request"
	"sports-booking/internal/dto/response"
	"sports-booking/pkg/mq"
	"sports-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type BookingService interface {
	// Public
	GetAvailableSlotsForGame(ctx context.Context, gameID string) ([]*response.TimeSlotResponse, error)

	// Authenticated, owner or admin
	BookSlot(ctx context.Context, actor utils.Session, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, actor utils.Session, bookingID string) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, actor utils.Session, userID string) ([]*response.BookingResponse, error)
	GetBookingStats(ctx context.Context, actor utils.Session, userID string) (*response.BookingStatsResponse, error)

	// Admin
	GetAllBookings(ctx context.Context) ([]*response.BookingResponse, error)
}

// BookingEvent is the body published for booking.confirmed and booking.cancelled
type BookingEvent struct {
	BookingID  string               `json:"bookingId"`
	SlotID     *string              `json:"slotId"`
	GameID     string               `json:"gameId"`
	UserID     string               `json:"userId"`
	Date       string               `json:"date"`
	StartTime  string               `json:"startTime"`
	EndTime    string               `json:"endTime"`
	Price      string               `json:"price"`
	Status     entity.BookingStatus `json:"status"`
	OccurredAt time.Time            `json:"occurredAt"`
}

const (
	opBook   = "book"
	opCancel = "cancel"
)

type bookingService struct {
	repo  *repository.Repository
	infra Infra
	log   *zap.Logger
}

func NewBookingService(repo *repository.Repository, infra Infra, log *zap.Logger) BookingService {
	return &bookingService{
		repo:  repo,
		infra: infra,
		log:   log.With(zap.String("service", "booking")),
	}
}

// BookSlot reserves a slot and records the booking in one transaction.
// The game row is locked before the slot so booking and game deletion
// always take locks in the same order.
func (s *bookingService) BookSlot(ctx context.Context, actor utils.Session, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Book slot validation failed", zap.Error(err))
		s.infra.Metrics.RecordBooking(opBook, outcome(err))
		return nil, err
	}

	slotID, err := parseID("slotId", req.SlotID)
	if err != nil {
		return nil, err
	}
	data := req.BookingData
	userID, err := parseID("bookingData.userId", data.UserID)
	if err != nil {
		return nil, err
	}

	if !actor.CanAccessUser(userID) {
		s.log.Warn("Booking on behalf of another user rejected",
			zap.String("actor_id", actor.UserID.String()),
			zap.String("user_id", data.UserID),
		)
		s.infra.Metrics.RecordBooking(opBook, outcome(ErrForbidden))
		return nil, fmt.Errorf("book for user %s: %w", data.UserID, ErrForbidden)
	}

	var booking *entity.Booking
	err = s.infra.Tx.WithinTx(ctx, func(ctx context.Context) error {
		slot, err := s.repo.TimeSlot.FindByID(ctx, slotID)
		if err != nil {
			return err
		}
		if slot == nil {
			return fmt.Errorf("slot %s: %w", req.SlotID, ErrSlotNotFound)
		}

		game, err := s.repo.Game.FindByIDForShare(ctx, slot.GameID)
		if err != nil {
			return err
		}
		if game == nil {
			// Deleted together with its slots while we waited for the lock
			return fmt.Errorf("slot %s: %w", req.SlotID, ErrSlotNotFound)
		}

		if err := checkSnapshot(data, slot); err != nil {
			return err
		}

		reserved, err := s.repo.TimeSlot.Reserve(ctx, slotID, entity.Occupant{
			UserID: userID,
			Name:   data.UserName,
			Email:  data.UserEmail,
			Phone:  utils.TrimToNil(data.UserPhone),
		})
		if err != nil {
			return err
		}
		if reserved == nil {
			return fmt.Errorf("slot %s: %w", req.SlotID, ErrSlotNotAvailable)
		}

		booking = &entity.Booking{
			ID:        uuid.New(),
			SlotID:    &reserved.ID,
			GameID:    game.ID,
			GameName:  game.Name,
			UserID:    userID,
			UserName:  data.UserName,
			UserEmail: data.UserEmail,
			UserPhone: utils.TrimToNil(data.UserPhone),
			Date:      reserved.Date,
			StartTime: reserved.StartTime,
			EndTime:   reserved.EndTime,
			Price:     game.Price,
			Status:    entity.BookingStatusConfirmed,
			BookedAt:  s.infra.Now(),
		}

		return s.repo.Booking.Create(ctx, booking)
	})
	s.infra.Metrics.RecordBooking(opBook, outcome(err))
	if err != nil {
		if !isClientError(err) {
			s.log.Error("Failed to book slot", zap.Error(err), zap.String("slot_id", req.SlotID))
		}
		return nil, err
	}

	s.log.Info("Slot booked",
		zap.String("booking_id", booking.ID.String()),
		zap.String("slot_id", req.SlotID),
		zap.String("user_id", booking.UserID.String()),
	)

	s.afterCommit(ctx, mq.KeyBookingConfirmed, booking)
	return response.BookingToResponse(booking), nil
}

// checkSnapshot rejects a request whose game, date or times disagree with
// the slot being booked. Empty snapshot fields are not checked.
func checkSnapshot(data request.BookingData, slot *entity.TimeSlot) error {
	switch {
	case data.GameID != "" && data.GameID != slot.GameID.String():
		return invalid("bookingData.gameId %s does not match the slot's game", data.GameID)
	case data.Date != "" && data.Date != slot.Date:
		return invalid("bookingData.date %s does not match the slot date %s", data.Date, slot.Date)
	case data.StartTime != "" && data.StartTime != slot.StartTime:
		return invalid("bookingData.startTime %s does not match the slot start %s", data.StartTime, slot.StartTime)
	case data.EndTime != "" && data.EndTime != slot.EndTime:
		return invalid("bookingData.endTime %s does not match the slot end %s", data.EndTime, slot.EndTime)
	}
	return nil
}

// CancelBooking marks a booking cancelled and reopens its slot. Cancelling
// an already cancelled booking returns it with ErrBookingAlreadyCancelled.
func (s *bookingService) CancelBooking(ctx context.Context, actor utils.Session, bookingID string) (*response.BookingResponse, error) {
	id, err := parseID("bookingId", bookingID)
	if err != nil {
		return nil, err
	}

	var booking *entity.Booking
	err = s.infra.Tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := s.repo.Booking.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if b == nil {
			return fmt.Errorf("booking %s: %w", bookingID, ErrBookingNotFound)
		}
		if !actor.CanAccessUser(b.UserID) {
			return fmt.Errorf("cancel booking %s: %w", bookingID, ErrForbidden)
		}

		booking = b
		if b.IsCancelled() {
			return ErrBookingAlreadyCancelled
		}

		if err := s.repo.Booking.UpdateStatus(ctx, id, entity.BookingStatusCancelled); err != nil {
			return err
		}
		b.Status = entity.BookingStatusCancelled

		var reopened bool
		if b.SlotID != nil {
			reopened, err = s.repo.TimeSlot.Release(ctx, *b.SlotID)
		} else {
			reopened, err = s.repo.TimeSlot.ReleaseMatching(ctx, b.GameID, b.Date, b.StartTime, b.EndTime)
		}
		if err != nil {
			return err
		}
		if !reopened {
			s.log.Warn("Cancelled booking had no booked slot to reopen",
				zap.String("booking_id", bookingID),
				zap.String("game_id", b.GameID.String()),
				zap.String("date", b.Date),
				zap.String("start_time", b.StartTime),
			)
		}

		return nil
	})
	s.infra.Metrics.RecordBooking(opCancel, outcome(err))

	if errors.Is(err, ErrBookingAlreadyCancelled) {
		s.log.Info("Booking already cancelled", zap.String("booking_id", bookingID))
		return response.BookingToResponse(booking), err
	}
	if err != nil {
		if !isClientError(err) {
			s.log.Error("Failed to cancel booking", zap.Error(err), zap.String("booking_id", bookingID))
		}
		return nil, err
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("actor_id", actor.UserID.String()),
	)

	s.afterCommit(ctx, mq.KeyBookingCancelled, booking)
	return response.BookingToResponse(booking), nil
}

// afterCommit runs the side channels of a committed booking change.
// Their failures never undo or fail the change.
func (s *bookingService) afterCommit(ctx context.Context, key string, booking *entity.Booking) {
	forgetAvailableSlots(ctx, s.infra, s.log, booking.GameID)

	event := BookingEvent{
		BookingID:  booking.ID.String(),
		GameID:     booking.GameID.String(),
		UserID:     booking.UserID.String(),
		Date:       booking.Date,
		StartTime:  booking.StartTime,
		EndTime:    booking.EndTime,
		Price:      booking.Price.StringFixed(2),
		Status:     booking.Status,
		OccurredAt: s.infra.Now(),
	}
	if booking.SlotID != nil {
		slotID := booking.SlotID.String()
		event.SlotID = &slotID
	}

	if err := s.infra.Events.PublishJSON(ctx, key, event); err != nil {
		s.log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("key", key),
			zap.String("booking_id", event.BookingID),
		)
	}
}

// GetAvailableSlotsForGame lists open slots that have not started yet. The
// open set is cached per game; the time filter runs on every read.
func (s *bookingService) GetAvailableSlotsForGame(ctx context.Context, gameID string) ([]*response.TimeSlotResponse, error) {
	id, err := parseID("gameId", gameID)
	if err != nil {
		return nil, err
	}

	// The generation is read before the slots so a booking committed in
	// between leaves this write-back under an already retired key.
	version, err := s.infra.Cache.Version(ctx, availableSlotsVersionKey(id))
	cacheable := err == nil
	if err != nil {
		s.log.Warn("Available slots cache version read failed", zap.Error(err), zap.String("game_id", gameID))
	}
	key := availableSlotsKey(id, version)

	var open []*entity.TimeSlot
	hit := false
	if cacheable {
		hit, err = s.infra.Cache.Get(ctx, key, &open)
		if err != nil {
			s.log.Warn("Available slots cache read failed", zap.Error(err), zap.String("game_id", gameID))
			hit = false
		}
	}

	if !hit {
		booked := false
		open, err = s.repo.TimeSlot.FindAll(ctx, repository.SlotFilter{GameID: &id, IsBooked: &booked})
		if err != nil {
			return nil, fmt.Errorf("get available slots for game %s: %w", gameID, err)
		}

		if cacheable {
			if err := s.infra.Cache.Set(ctx, key, open); err != nil {
				s.log.Warn("Available slots cache write failed", zap.Error(err), zap.String("game_id", gameID))
			}
		}
	}

	now := s.infra.Now()
	available := make([]*entity.TimeSlot, 0, len(open))
	for _, slot := range open {
		if !slot.IsBooked && isUpcoming(slot.Date, slot.StartTime, s.infra.Location, now) {
			available = append(available, slot)
		}
	}
	sortSlots(available)

	return response.TimeSlotsToResponse(available), nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, actor utils.Session, userID string) ([]*response.BookingResponse, error) {
	id, err := parseID("userId", userID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessUser(id) {
		return nil, fmt.Errorf("bookings of user %s: %w", userID, ErrForbidden)
	}

	bookings, err := s.repo.Booking.FindAll(ctx, repository.BookingFilter{UserID: &id})
	if err != nil {
		return nil, fmt.Errorf("get bookings of user %s: %w", userID, err)
	}

	return response.BookingsToResponse(bookings), nil
}

func (s *bookingService) GetAllBookings(ctx context.Context) ([]*response.BookingResponse, error) {
	bookings, err := s.repo.Booking.FindAll(ctx, repository.BookingFilter{})
	if err != nil {
		return nil, fmt.Errorf("get all bookings: %w", err)
	}

	return response.BookingsToResponse(bookings), nil
}

// GetBookingStats aggregates the user's confirmed bookings
func (s *bookingService) GetBookingStats(ctx context.Context, actor utils.Session, userID string) (*response.BookingStatsResponse, error) {
	id, err := parseID("userId", userID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessUser(id) {
		return nil, fmt.Errorf("stats of user %s: %w", userID, ErrForbidden)
	}

	confirmed := entity.BookingStatusConfirmed
	bookings, err := s.repo.Booking.FindAll(ctx, repository.BookingFilter{UserID: &id, Status: &confirmed})
	if err != nil {
		return nil, fmt.Errorf("get stats of user %s: %w", userID, err)
	}

	return bookingStats(bookings, s.infra.Location, s.infra.Now()), nil
}

func bookingStats(bookings []*entity.Booking, loc *time.Location, now time.Time) *response.BookingStatsResponse {
	total := decimal.Zero
	stats := &response.BookingStatsResponse{ConfirmedBookings: []*response.BookingResponse{}}

	for _, b := range bookings {
		if b.Status != entity.BookingStatusConfirmed {
			continue
		}
		stats.ConfirmedBookings = append(stats.ConfirmedBookings, response.BookingToResponse(b))
		total = total.Add(b.Price)
		if isUpcoming(b.Date, b.StartTime, loc, now) {
			stats.UpcomingBookings++
		}
	}

	stats.TotalSpent = total.InexactFloat64()
	return stats
}

// outcome labels a booking attempt for metrics
func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrSlotNotAvailable):
		return "conflict"
	case errors.Is(err, ErrBookingAlreadyCancelled):
		return "already_cancelled"
	case errors.Is(err, ErrSlotNotFound), errors.Is(err, ErrBookingNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}

func isClientError(err error) bool {
	return outcome(err) != "error"
}
