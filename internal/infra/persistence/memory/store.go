// Package memory is an in-process persistence layer used by tests and the memory database driver.
// It enforces the same uniqueness rules as the relational schema.
package memory

import (
	"bytes"
	"context"
	"maps"
	"sync"
	"time"

	"margdarshak/internal/domain/entity"
	"margdarshak/internal/domain/repository"

	"github.com/google/uuid"
)

type state struct {
	users         map[uuid.UUID]entity.User
	refreshTokens map[uuid.UUID]entity.RefreshToken
	routes        map[uuid.UUID]entity.Route
	favorites     map[uuid.UUID]entity.FavoriteRoute
	stops         map[uuid.UUID]entity.BusStop
	buses         map[uuid.UUID]entity.Bus
	notifications map[uuid.UUID]entity.Notification
	sosRequests   map[uuid.UUID]entity.SOSRequest
}

func newState() *state {
	return &state{
		users:         make(map[uuid.UUID]entity.User),
		refreshTokens: make(map[uuid.UUID]entity.RefreshToken),
		routes:        make(map[uuid.UUID]entity.Route),
		favorites:     make(map[uuid.UUID]entity.FavoriteRoute),
		stops:         make(map[uuid.UUID]entity.BusStop),
		buses:         make(map[uuid.UUID]entity.Bus),
		notifications: make(map[uuid.UUID]entity.Notification),
		sosRequests:   make(map[uuid.UUID]entity.SOSRequest),
	}
}

func (s *state) clone() *state {
	return &state{
		users:         maps.Clone(s.users),
		refreshTokens: maps.Clone(s.refreshTokens),
		routes:        maps.Clone(s.routes),
		favorites:     maps.Clone(s.favorites),
		stops:         maps.Clone(s.stops),
		buses:         maps.Clone(s.buses),
		notifications: maps.Clone(s.notifications),
		sosRequests:   maps.Clone(s.sosRequests),
	}
}

// Store holds every table. Transactions are serialized and commit by swapping the working copy in.
type Store struct {
	mu    sync.Mutex
	data  *state
	clock func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{data: newState(), clock: time.Now}
}

// NewTransactionManager exposes the store through the domain TransactionManager contract.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return store
}

// Execute runs fn against a private copy of the data and publishes it when fn succeeds.
func (s *Store) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.data.clone()
	if err := fn(&factory{data: working, now: s.clock}); err != nil {
		return err
	}
	s.data = working

	return nil
}

// SeedBusStops inserts bus stops, assigning IDs where missing.
func (s *Store) SeedBusStops(stops ...entity.BusStop) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stop := range stops {
		if stop.ID == uuid.Nil {
			stop.ID = newID()
		}
		if stop.CreatedAt.IsZero() {
			stop.CreatedAt = s.clock()
		}
		s.data.stops[stop.ID] = stop
	}
}

// SeedBuses inserts buses, assigning IDs where missing.
func (s *Store) SeedBuses(buses ...entity.Bus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, bus := range buses {
		if bus.ID == uuid.Nil {
			bus.ID = newID()
		}
		if bus.UpdatedAt.IsZero() {
			bus.UpdatedAt = s.clock()
		}
		s.data.buses[bus.ID] = bus
	}
}

type factory struct {
	data *state
	now  func() time.Time
}

func (f *factory) NewUserRepository() repository.UserRepository {
	return &userRepository{data: f.data, now: f.now}
}

func (f *factory) NewRefreshTokenRepository() repository.RefreshTokenRepository {
	return &refreshTokenRepository{data: f.data, now: f.now}
}

func (f *factory) NewRouteRepository() repository.RouteRepository {
	return &routeRepository{data: f.data, now: f.now}
}

func (f *factory) NewTransportRepository() repository.TransportRepository {
	return &transportRepository{data: f.data}
}

func (f *factory) NewNotificationRepository() repository.NotificationRepository {
	return &notificationRepository{data: f.data, now: f.now}
}

func (f *factory) NewSOSRepository() repository.SOSRepository {
	return &sosRepository{data: f.data, now: f.now}
}

func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return id
}

func page[T any](items []T, p repository.Page) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	items = items[max(p.Offset, 0):]
	if p.Limit > 0 && p.Limit < len(items) {
		items = items[:p.Limit]
	}

	return items
}

// newestFirst orders by creation time descending. Time-ordered IDs break ties.
func newestFirst(aTime time.Time, aID uuid.UUID, bTime time.Time, bID uuid.UUID) int {
	if c := bTime.Compare(aTime); c != 0 {
		return c
	}

	return bytes.Compare(bID[:], aID[:])
}
