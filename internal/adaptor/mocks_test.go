package adaptor

import (
	"context"

	"sports-booking/internal/dto/request"
	"sports-booking/internal/dto/response"
	"sports-booking/pkg/utils"

	"github.com/stretchr/testify/mock"
)

type mockBookingService struct {
	mock.Mock
}

func (m *mockBookingService) GetAvailableSlotsForGame(ctx context.Context, gameID string) ([]*response.TimeSlotResponse, error) {
	args := m.Called(ctx, gameID)
	slots, _ := args.Get(0).([]*response.TimeSlotResponse)
	return slots, args.Error(1)
}

func (m *mockBookingService) BookSlot(ctx context.Context, actor utils.Session, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, actor, req)
	booking, _ := args.Get(0).(*response.BookingResponse)
	return booking, args.Error(1)
}

func (m *mockBookingService) CancelBooking(ctx context.Context, actor utils.Session, bookingID string) (*response.BookingResponse, error) {
	args := m.Called(ctx, actor, bookingID)
	booking, _ := args.Get(0).(*response.BookingResponse)
	return booking, args.Error(1)
}

func (m *mockBookingService) GetUserBookings(ctx context.Context, actor utils.Session, userID string) ([]*response.BookingResponse, error) {
	args := m.Called(ctx, actor, userID)
	bookings, _ := args.Get(0).([]*response.BookingResponse)
	return bookings, args.Error(1)
}

func (m *mockBookingService) GetBookingStats(ctx context.Context, actor utils.Session, userID string) (*response.BookingStatsResponse, error) {
	args := m.Called(ctx, actor, userID)
	stats, _ := args.Get(0).(*response.BookingStatsResponse)
	return stats, args.Error(1)
}

func (m *mockBookingService) GetAllBookings(ctx context.Context) ([]*response.BookingResponse, error) {
	args := m.Called(ctx)
	bookings, _ := args.Get(0).([]*response.BookingResponse)
	return bookings, args.Error(1)
}

type mockGameService struct {
	mock.Mock
}

func (m *mockGameService) GetAllGames(ctx context.Context) ([]*response.GameResponse, error) {
	args := m.Called(ctx)
	games, _ := args.Get(0).([]*response.GameResponse)
	return games, args.Error(1)
}

func (m *mockGameService) GetActiveGames(ctx context.Context) ([]*response.GameResponse, error) {
	args := m.Called(ctx)
	games, _ := args.Get(0).([]*response.GameResponse)
	return games, args.Error(1)
}

func (m *mockGameService) GetGameByID(ctx context.Context, gameID string) (*response.GameResponse, error) {
	args := m.Called(ctx, gameID)
	game, _ := args.Get(0).(*response.GameResponse)
	return game, args.Error(1)
}

func (m *mockGameService) CreateGame(ctx context.Context, req *request.CreateGameRequest) (*response.GameResponse, error) {
	args := m.Called(ctx, req)
	game, _ := args.Get(0).(*response.GameResponse)
	return game, args.Error(1)
}

func (m *mockGameService) UpdateGame(ctx context.Context, gameID string, req *request.UpdateGameRequest) (*response.GameResponse, error) {
	args := m.Called(ctx, gameID, req)
	game, _ := args.Get(0).(*response.GameResponse)
	return game, args.Error(1)
}

func (m *mockGameService) DeleteGame(ctx context.Context, gameID string) error {
	return m.Called(ctx, gameID).Error(0)
}
