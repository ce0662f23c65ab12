package booking

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/item-sharing-backend/internal/item"
	"github.com/nekogravitycat/item-sharing-backend/internal/user"
)

var errNotImplemented = errors.New("not implemented in test stub")

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

// stubUserService serves GetByID from a map; the booking service uses
// nothing else of the user service.
type stubUserService struct {
	users map[int64]*user.User
}

func (s *stubUserService) GetByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (s *stubUserService) Create(context.Context, user.CreateRequest) (*user.User, error) {
	return nil, errNotImplemented
}

func (s *stubUserService) Update(context.Context, int64, user.UpdateRequest) (*user.User, error) {
	return nil, errNotImplemented
}

func (s *stubUserService) List(context.Context) ([]*user.User, error) {
	return nil, errNotImplemented
}

func (s *stubUserService) Delete(context.Context, int64) error {
	return errNotImplemented
}

// stubItemService serves GetByID from a map.
type stubItemService struct {
	items map[int64]*item.Item
}

func (s *stubItemService) GetByID(_ context.Context, id int64) (*item.Item, error) {
	it, ok := s.items[id]
	if !ok {
		return nil, item.ErrNotFound
	}
	return it, nil
}

func (s *stubItemService) Create(context.Context, int64, item.CreateRequest) (*item.Item, error) {
	return nil, errNotImplemented
}

func (s *stubItemService) Update(context.Context, int64, int64, item.UpdateRequest) (*item.Item, error) {
	return nil, errNotImplemented
}

func (s *stubItemService) GetDetails(context.Context, int64, int64) (*item.Details, error) {
	return nil, errNotImplemented
}

func (s *stubItemService) ListByOwner(context.Context, int64) ([]*item.Details, error) {
	return nil, errNotImplemented
}

func (s *stubItemService) Search(context.Context, string) ([]*item.Item, error) {
	return nil, errNotImplemented
}

func (s *stubItemService) AddComment(context.Context, int64, int64, string) (*item.Comment, error) {
	return nil, errNotImplemented
}

// fakeRepository keeps bookings in memory and resolves the joined item and
// booker fields from the same maps the stub services use.
type fakeRepository struct {
	nextID int64
	store  map[int64]*Booking
	items  map[int64]*item.Item
	users  map[int64]*user.User
}

func newFakeRepository(items map[int64]*item.Item, users map[int64]*user.User) *fakeRepository {
	return &fakeRepository{
		store: make(map[int64]*Booking),
		items: items,
		users: users,
	}
}

func (r *fakeRepository) Create(_ context.Context, b *Booking) error {
	r.nextID++
	b.ID = r.nextID
	b.CreatedAt = time.Now()
	stored := *b
	r.store[b.ID] = &stored
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id int64) (*Booking, error) {
	stored, ok := r.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	b := *stored
	if it, ok := r.items[b.ItemID]; ok {
		b.ItemName = it.Name
		b.ItemOwnerID = it.OwnerID
	}
	if u, ok := r.users[b.BookerID]; ok {
		b.BookerName = u.Name
	}
	return &b, nil
}

func (r *fakeRepository) List(ctx context.Context, filter Filter) ([]*Booking, error) {
	var result []*Booking
	for id := range r.store {
		b, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if filter.Matches(b) {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Start.Equal(result[j].Start) {
			return result[i].ID < result[j].ID
		}
		return result[i].Start.After(result[j].Start)
	})
	return result, nil
}

func (r *fakeRepository) UpdateStatusIfWaiting(_ context.Context, id int64, status Status) error {
	stored, ok := r.store[id]
	if !ok || stored.Status != StatusWaiting {
		return ErrAlreadyDecided
	}
	stored.Status = status
	return nil
}

type fixture struct {
	svc  Service
	repo *fakeRepository
	now  time.Time
}

// newFixture wires the service against two users (1 owns item 1, 2 is a
// booker) and one unavailable item 2 owned by user 1.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := map[int64]*user.User{
		1: {ID: 1, Name: "Alice", Email: "alice@example.com"},
		2: {ID: 2, Name: "Bob", Email: "bob@example.com"},
		3: {ID: 3, Name: "Carol", Email: "carol@example.com"},
	}
	items := map[int64]*item.Item{
		1: {ID: 1, OwnerID: 1, Name: "Drill", Description: "Cordless drill", Available: true},
		2: {ID: 2, OwnerID: 1, Name: "Saw", Description: "Under repair", Available: false},
	}

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	repo := newFakeRepository(items, users)

	return &fixture{
		svc:  NewService(repo, &stubUserService{users: users}, &stubItemService{items: items}, fixedClock{t: now}),
		repo: repo,
		now:  now,
	}
}

func (f *fixture) createRequest(itemID int64, startIn, duration time.Duration) CreateRequest {
	start := f.now.Add(startIn)
	end := start.Add(duration)
	return CreateRequest{ItemID: itemID, Start: &start, End: &end}
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a WAITING booking with joined names", func(t *testing.T) {
		f := newFixture(t)

		b, err := f.svc.Create(ctx, 2, f.createRequest(1, time.Hour, time.Hour))
		require.NoError(t, err)

		assert.Equal(t, StatusWaiting, b.Status)
		assert.Equal(t, "Drill", b.ItemName)
		assert.Equal(t, "Bob", b.BookerName)
		assert.Equal(t, int64(1), b.ItemOwnerID)
		assert.NotZero(t, b.ID)
	})

	t.Run("Unknown booker", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(ctx, 99, f.createRequest(1, time.Hour, time.Hour))
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Unknown item", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(ctx, 2, f.createRequest(99, time.Hour, time.Hour))
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("Unavailable item", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(ctx, 2, f.createRequest(2, time.Hour, time.Hour))
		assert.ErrorIs(t, err, ErrItemUnavailable)
	})

	t.Run("Owner cannot book their own item", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(ctx, 1, f.createRequest(1, time.Hour, time.Hour))
		assert.ErrorIs(t, err, ErrOwnItem)
	})

	t.Run("Missing dates", func(t *testing.T) {
		f := newFixture(t)
		start := f.now.Add(time.Hour)

		_, err := f.svc.Create(ctx, 2, CreateRequest{ItemID: 1, Start: &start})
		assert.ErrorIs(t, err, ErrMissingDates)

		_, err = f.svc.Create(ctx, 2, CreateRequest{ItemID: 1, End: &start})
		assert.ErrorIs(t, err, ErrMissingDates)
	})

	t.Run("Start in the past", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(ctx, 2, f.createRequest(1, -time.Minute, time.Hour))
		assert.ErrorIs(t, err, ErrStartInPast)
	})

	t.Run("End not after start", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(ctx, 2, f.createRequest(1, time.Hour, 0))
		assert.ErrorIs(t, err, ErrInvalidTimeRange)

		_, err = f.svc.Create(ctx, 2, f.createRequest(1, time.Hour, -time.Minute))
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("Overlapping bookings of the same item are accepted", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(ctx, 2, f.createRequest(1, time.Hour, 2*time.Hour))
		require.NoError(t, err)

		_, err = f.svc.Create(ctx, 3, f.createRequest(1, 2*time.Hour, 2*time.Hour))
		assert.NoError(t, err)
	})
}

func TestServiceDecide(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner approves", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.svc.Create(ctx, 2, f.createRequest(1, time.Hour, time.Hour))
		require.NoError(t, err)

		b, err := f.svc.Decide(ctx, 1, created.ID, true)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, b.Status)
	})

	t.Run("Owner rejects", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.svc.Create(ctx, 2, f.createRequest(1, time.Hour, time.Hour))
		require.NoError(t, err)

		b, err := f.svc.Decide(ctx, 1, created.ID, false)
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, b.Status)
	})

	t.Run("Second decision fails, first one stands", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.svc.Create(ctx, 2, f.createRequest(1, time.Hour, time.Hour))
		require.NoError(t, err)

		_, err = f.svc.Decide(ctx, 1, created.ID, true)
		require.NoError(t, err)

		_, err = f.svc.Decide(ctx, 1, created.ID, false)
		assert.ErrorIs(t, err, ErrAlreadyDecided)

		b, err := f.svc.GetByID(ctx, 1, created.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, b.Status)
	})

	t.Run("Only the item owner may decide", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.svc.Create(ctx, 2, f.createRequest(1, time.Hour, time.Hour))
		require.NoError(t, err)

		_, err = f.svc.Decide(ctx, 2, created.ID, true)
		assert.ErrorIs(t, err, ErrNotItemOwner)

		_, err = f.svc.Decide(ctx, 3, created.ID, true)
		assert.ErrorIs(t, err, ErrNotItemOwner)
	})

	t.Run("Unknown booking", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Decide(ctx, 1, 404, true)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestServiceGetByID(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t)
	created, err := f.svc.Create(ctx, 2, f.createRequest(1, time.Hour, time.Hour))
	require.NoError(t, err)

	t.Run("Booker sees the booking", func(t *testing.T) {
		b, err := f.svc.GetByID(ctx, 2, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, b.ID)
	})

	t.Run("Item owner sees the booking", func(t *testing.T) {
		b, err := f.svc.GetByID(ctx, 1, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, b.ID)
	})

	t.Run("Anyone else gets not found", func(t *testing.T) {
		_, err := f.svc.GetByID(ctx, 3, created.ID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("Unknown booking", func(t *testing.T) {
		_, err := f.svc.GetByID(ctx, 2, 404)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestServiceListing(t *testing.T) {
	ctx := context.Background()

	// seed creates bookings directly in the repository so past and current
	// ranges can be present despite the creation-time validation.
	seed := func(f *fixture, bookerID int64, startIn, duration time.Duration, status Status) *Booking {
		b := &Booking{
			ItemID:   1,
			BookerID: bookerID,
			Start:    f.now.Add(startIn),
			End:      f.now.Add(startIn + duration),
			Status:   status,
		}
		require.NoError(t, f.repo.Create(ctx, b))
		return b
	}

	t.Run("ALL returns the booker's bookings sorted by start descending", func(t *testing.T) {
		f := newFixture(t)
		past := seed(f, 2, -3*time.Hour, time.Hour, StatusApproved)
		future := seed(f, 2, 2*time.Hour, time.Hour, StatusWaiting)
		current := seed(f, 2, -time.Hour, 2*time.Hour, StatusApproved)
		seed(f, 3, time.Hour, time.Hour, StatusWaiting) // other booker

		got, err := f.svc.ListByBooker(ctx, 2, "ALL")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, future.ID, got[0].ID)
		assert.Equal(t, current.ID, got[1].ID)
		assert.Equal(t, past.ID, got[2].ID)
	})

	t.Run("Equal starts fall back to insertion order", func(t *testing.T) {
		f := newFixture(t)
		first := seed(f, 2, time.Hour, time.Hour, StatusWaiting)
		second := seed(f, 2, time.Hour, 2*time.Hour, StatusWaiting)

		got, err := f.svc.ListByBooker(ctx, 2, "ALL")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, first.ID, got[0].ID)
		assert.Equal(t, second.ID, got[1].ID)
	})

	t.Run("State keywords narrow the result", func(t *testing.T) {
		f := newFixture(t)
		past := seed(f, 2, -3*time.Hour, time.Hour, StatusApproved)
		current := seed(f, 2, -time.Hour, 2*time.Hour, StatusApproved)
		future := seed(f, 2, 2*time.Hour, time.Hour, StatusWaiting)
		rejected := seed(f, 2, 3*time.Hour, time.Hour, StatusRejected)

		cases := map[string][]int64{
			"PAST":     {past.ID},
			"CURRENT":  {current.ID},
			"FUTURE":   {future.ID, rejected.ID},
			"WAITING":  {future.ID},
			"REJECTED": {rejected.ID},
		}
		for state, wantIDs := range cases {
			got, err := f.svc.ListByBooker(ctx, 2, state)
			require.NoError(t, err, state)

			gotIDs := make([]int64, len(got))
			for i, b := range got {
				gotIDs[i] = b.ID
			}
			assert.ElementsMatch(t, wantIDs, gotIDs, state)
		}
	})

	t.Run("Owner listing covers all bookings of the owner's items", func(t *testing.T) {
		f := newFixture(t)
		b1 := seed(f, 2, time.Hour, time.Hour, StatusWaiting)
		b2 := seed(f, 3, 2*time.Hour, time.Hour, StatusWaiting)

		got, err := f.svc.ListByOwner(ctx, 1, "ALL")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, b2.ID, got[0].ID)
		assert.Equal(t, b1.ID, got[1].ID)
	})

	t.Run("Owner with no items gets an empty list", func(t *testing.T) {
		f := newFixture(t)
		seed(f, 2, time.Hour, time.Hour, StatusWaiting)

		got, err := f.svc.ListByOwner(ctx, 3, "ALL")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Unknown state keyword is rejected", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.ListByBooker(ctx, 2, "SOMEDAY")
		require.Error(t, err)
		assert.Equal(t, "Unknown state: SOMEDAY", err.Error())
	})

	t.Run("Unknown user cannot list", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.ListByBooker(ctx, 99, "ALL")
		assert.ErrorIs(t, err, ErrUserNotFound)

		_, err = f.svc.ListByOwner(ctx, 99, "ALL")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
