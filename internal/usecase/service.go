package usecase

import (
	"context"
	"time"

	"sports-booking/internal/data/repository"
	"sports-booking/pkg/cache"
	"sports-booking/pkg/database"

	"go.uber.org/zap"
)

// EventPublisher emits booking lifecycle events to the broker
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// BookingRecorder counts booking outcomes
type BookingRecorder interface {
	RecordBooking(operation, outcome string)
}

// Infra carries the side channels and clock shared by the services.
// Zero values fall back to no-op implementations, local time and time.Now.
type Infra struct {
	Tx       database.TxManager
	Cache    cache.Cache
	Events   EventPublisher
	Metrics  BookingRecorder
	Location *time.Location
	Now      func() time.Time
}

type nopRecorder struct{}

func (nopRecorder) RecordBooking(string, string) {}

type nopPublisher struct{}

func (nopPublisher) PublishJSON(context.Context, string, any) error { return nil }

func (in Infra) withDefaults() Infra {
	if in.Cache == nil {
		in.Cache = cache.Nop{}
	}
	if in.Events == nil {
		in.Events = nopPublisher{}
	}
	if in.Metrics == nil {
		in.Metrics = nopRecorder{}
	}
	if in.Location == nil {
		in.Location = time.Local
	}
	if in.Now == nil {
		in.Now = time.Now
	}
	return in
}

type Service struct {
	Game     GameService
	TimeSlot TimeSlotService
	Booking  BookingService
	User     UserService
}

func NewService(repo *repository.Repository, infra Infra, log *zap.Logger) *Service {
	infra = infra.withDefaults()

	return &Service{
		Game:     NewGameService(repo, infra, log),
		TimeSlot: NewTimeSlotService(repo, infra, log),
		Booking:  NewBookingService(repo, infra, log),
		User:     NewUserService(repo.User, infra, log),
	}
}
