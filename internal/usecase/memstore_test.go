package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"sports-booking/internal/data/entity"
	"sports-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memStore implements the repository contracts in memory. Transactions are
// serialized and roll back to a snapshot when fn fails.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	users    map[uuid.UUID]entity.User
	games    map[uuid.UUID]entity.Game
	slots    map[uuid.UUID]entity.TimeSlot
	bookings map[uuid.UUID]entity.Booking

	failBookingCreate error
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[uuid.UUID]entity.User{},
		games:    map[uuid.UUID]entity.Game{},
		slots:    map[uuid.UUID]entity.TimeSlot{},
		bookings: map[uuid.UUID]entity.Booking{},
	}
}

func (m *memStore) repository() *repository.Repository {
	return &repository.Repository{
		User:     memUsers{m},
		Game:     memGames{m},
		TimeSlot: memSlots{m},
		Booking:  memBookings{m},
	}
}

type memSnapshot struct {
	users    map[uuid.UUID]entity.User
	games    map[uuid.UUID]entity.Game
	slots    map[uuid.UUID]entity.TimeSlot
	bookings map[uuid.UUID]entity.Booking
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (m *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	snap := memSnapshot{
		users:    cloneMap(m.users),
		games:    cloneMap(m.games),
		slots:    cloneMap(m.slots),
		bookings: cloneMap(m.bookings),
	}
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.users, m.games, m.slots, m.bookings = snap.users, snap.games, snap.slots, snap.bookings
		m.mu.Unlock()
		return err
	}
	return nil
}

// fixtures

var fixedTime = time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC)

func (m *memStore) addGame(name string, price string) entity.Game {
	g := entity.Game{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: fixedTime, UpdatedAt: fixedTime},
		Name:        name,
		Description: name + " court",
		Price:       decimal.RequireFromString(price),
		Duration:    60,
		IsActive:    true,
	}
	m.mu.Lock()
	m.games[g.ID] = g
	m.mu.Unlock()
	return g
}

func (m *memStore) addSlot(gameID uuid.UUID, date, start, end string) entity.TimeSlot {
	s := entity.TimeSlot{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: fixedTime},
		GameID:     gameID,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
	}
	m.mu.Lock()
	m.slots[s.ID] = s
	m.mu.Unlock()
	return s
}

func (m *memStore) addUser(name, email string, role entity.UserRole) entity.User {
	u := entity.User{
		Base:  entity.Base{ID: uuid.New(), CreatedAt: fixedTime, UpdatedAt: fixedTime},
		Name:  name,
		Email: email,
		Role:  role,
	}
	m.mu.Lock()
	m.users[u.ID] = u
	m.mu.Unlock()
	return u
}

func (m *memStore) slot(id uuid.UUID) entity.TimeSlot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slots[id]
}

func (m *memStore) booking(id uuid.UUID) entity.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[id]
}

func (m *memStore) bookingsWithStatus(status entity.BookingStatus) []entity.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Booking
	for _, b := range m.bookings {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out
}

// users

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r memUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r memUsers) UpdateProfile(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[user.ID]
	if !ok {
		return repository.ErrNoRows
	}
	u.Name, u.Phone, u.UpdatedAt = user.Name, user.Phone, user.UpdatedAt
	r.users[user.ID] = u
	return nil
}

// games

type memGames struct{ *memStore }

func (r memGames) Create(_ context.Context, game *entity.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[game.ID] = *game
	return nil
}

func (r memGames) FindByID(_ context.Context, id uuid.UUID) (*entity.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.games[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (r memGames) FindByIDForShare(ctx context.Context, id uuid.UUID) (*entity.Game, error) {
	return r.FindByID(ctx, id)
}

func (r memGames) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Game, error) {
	return r.FindByID(ctx, id)
}

func (r memGames) FindAll(_ context.Context, activeOnly bool) ([]*entity.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Game, 0)
	for _, g := range r.games {
		if activeOnly && !g.IsActive {
			continue
		}
		g := g
		out = append(out, &g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memGames) Update(_ context.Context, game *entity.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[game.ID]; !ok {
		return repository.ErrNoRows
	}
	r.games[game.ID] = *game
	return nil
}

func (r memGames) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[id]; !ok {
		return repository.ErrNoRows
	}
	delete(r.games, id)
	return nil
}

// slots

type memSlots struct{ *memStore }

func (r memSlots) CreateBatch(_ context.Context, slots []*entity.TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range slots {
		r.slots[s.ID] = *s
	}
	return nil
}

func (r memSlots) FindByID(_ context.Context, id uuid.UUID) (*entity.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r memSlots) FindAll(_ context.Context, filter repository.SlotFilter) ([]*entity.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.TimeSlot, 0)
	for _, s := range r.slots {
		if filter.GameID != nil && s.GameID != *filter.GameID {
			continue
		}
		if filter.Date != nil && s.Date != *filter.Date {
			continue
		}
		if filter.IsBooked != nil && s.IsBooked != *filter.IsBooked {
			continue
		}
		s := s
		out = append(out, &s)
	}
	sortSlots(out)
	return out, nil
}

func (r memSlots) FindByGameAndDate(ctx context.Context, gameID uuid.UUID, date string) ([]*entity.TimeSlot, error) {
	return r.FindAll(ctx, repository.SlotFilter{GameID: &gameID, Date: &date})
}

func (r memSlots) HasBookedSlots(_ context.Context, gameID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.slots {
		if s.GameID == gameID && s.IsBooked {
			return true, nil
		}
	}
	return false, nil
}

func (r memSlots) DeleteByGameID(_ context.Context, gameID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.slots {
		if s.GameID == gameID {
			delete(r.slots, id)
			n++
		}
	}
	return n, nil
}

func (r memSlots) Reserve(_ context.Context, id uuid.UUID, occupant entity.Occupant) (*entity.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok || s.IsBooked {
		return nil, nil
	}
	userID, name, email := occupant.UserID, occupant.Name, occupant.Email
	s.IsBooked = true
	s.BookedBy, s.PlayerName, s.PlayerEmail, s.PlayerPhone = &userID, &name, &email, occupant.Phone
	r.slots[id] = s
	return &s, nil
}

func (r memSlots) release(match func(entity.TimeSlot) bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.slots {
		if s.IsBooked && match(s) {
			s.IsBooked = false
			s.BookedBy, s.PlayerName, s.PlayerEmail, s.PlayerPhone = nil, nil, nil, nil
			r.slots[id] = s
			return true
		}
	}
	return false
}

func (r memSlots) Release(_ context.Context, id uuid.UUID) (bool, error) {
	return r.release(func(s entity.TimeSlot) bool { return s.ID == id }), nil
}

func (r memSlots) ReleaseMatching(_ context.Context, gameID uuid.UUID, date, startTime, endTime string) (bool, error) {
	return r.release(func(s entity.TimeSlot) bool {
		return s.GameID == gameID && s.Date == date && s.StartTime == startTime && s.EndTime == endTime
	}), nil
}

// bookings

type memBookings struct{ *memStore }

func (r memBookings) Create(_ context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failBookingCreate != nil {
		return r.failBookingCreate
	}
	r.bookings[booking.ID] = *booking
	return nil
}

func (r memBookings) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r memBookings) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.FindByID(ctx, id)
}

func (r memBookings) FindAll(_ context.Context, filter repository.BookingFilter) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Booking, 0)
	for _, b := range r.bookings {
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		if filter.GameID != nil && b.GameID != *filter.GameID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		b := b
		out = append(out, &b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookedAt.After(out[j].BookedAt) })
	return out, nil
}

func (r memBookings) UpdateStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return repository.ErrNoRows
	}
	b.Status = status
	r.bookings[id] = b
	return nil
}

var errInjected = errors.New("injected failure")
