package rentals

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type customerGetterMock struct {
	customer *models.Customer
	err      error
}

func (m *customerGetterMock) Get(_ context.Context, _ string) (*models.Customer, error) {
	return m.customer, m.err
}

type movieGetterMock struct {
	movie *models.Movie
	err   error
}

func (m *movieGetterMock) Get(_ context.Context, _ string) (*models.Movie, error) {
	return m.movie, m.err
}

type rentalsStorageMock struct {
	listFn           func(ctx context.Context) ([]models.Rental, error)
	findOpenByPairFn func(ctx context.Context, customerID, movieID string) (*models.Rental, error)
	existsByPairFn   func(ctx context.Context, customerID, movieID string) (bool, error)
	checkoutFn       func(ctx context.Context, rental *models.Rental) (*models.Rental, error)
	closeFn          func(ctx context.Context, rental *models.Rental) (*models.Rental, error)
}

func (m *rentalsStorageMock) List(ctx context.Context) ([]models.Rental, error) {
	return m.listFn(ctx)
}

func (m *rentalsStorageMock) FindOpenByPair(ctx context.Context, customerID, movieID string) (*models.Rental, error) {
	return m.findOpenByPairFn(ctx, customerID, movieID)
}

func (m *rentalsStorageMock) ExistsByPair(ctx context.Context, customerID, movieID string) (bool, error) {
	return m.existsByPairFn(ctx, customerID, movieID)
}

func (m *rentalsStorageMock) Checkout(ctx context.Context, rental *models.Rental) (*models.Rental, error) {
	return m.checkoutFn(ctx, rental)
}

func (m *rentalsStorageMock) Close(ctx context.Context, rental *models.Rental) (*models.Rental, error) {
	return m.closeFn(ctx, rental)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	testCustomer = &models.Customer{ID: uuid.NewString(), Name: "John Doe", Phone: "1234567890"}
	testMovie    = &models.Movie{
		ID:              uuid.NewString(),
		Title:           "Inception",
		NumberInStock:   1,
		DailyRentalRate: 3,
	}
)

func TestCheckoutValidatesIDs(t *testing.T) {
	s := New(testLogger(), &customerGetterMock{}, &movieGetterMock{}, &rentalsStorageMock{})
	for _, tc := range []struct{ customerID, movieID string }{
		{"", testMovie.ID},
		{testCustomer.ID, ""},
		{"", ""},
	} {
		rental, err := s.Checkout(context.Background(), tc.customerID, tc.movieID)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Nil(t, rental)
	}
}

func TestCheckoutInvalidCustomer(t *testing.T) {
	s := New(
		testLogger(),
		&customerGetterMock{err: storage.ErrNotFound},
		&movieGetterMock{movie: testMovie},
		&rentalsStorageMock{},
	)
	rental, err := s.Checkout(context.Background(), uuid.NewString(), testMovie.ID)
	assert.ErrorIs(t, err, ErrInvalidCustomer)
	assert.Nil(t, rental)
}

func TestCheckoutInvalidMovie(t *testing.T) {
	s := New(
		testLogger(),
		&customerGetterMock{customer: testCustomer},
		&movieGetterMock{err: storage.ErrNotFound},
		&rentalsStorageMock{},
	)
	rental, err := s.Checkout(context.Background(), testCustomer.ID, uuid.NewString())
	assert.ErrorIs(t, err, ErrInvalidMovie)
	assert.Nil(t, rental)
}

func TestCheckoutOutOfStock(t *testing.T) {
	outOfStock := *testMovie
	outOfStock.NumberInStock = 0
	storageCalled := false
	s := New(
		testLogger(),
		&customerGetterMock{customer: testCustomer},
		&movieGetterMock{movie: &outOfStock},
		&rentalsStorageMock{
			checkoutFn: func(ctx context.Context, rental *models.Rental) (*models.Rental, error) {
				storageCalled = true
				return rental, nil
			},
		},
	)
	rental, err := s.Checkout(context.Background(), testCustomer.ID, outOfStock.ID)
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Nil(t, rental)
	assert.False(t, storageCalled, "no rental must be written when the movie is out of stock")
}

func TestCheckoutLosesRaceForLastCopy(t *testing.T) {
	s := New(
		testLogger(),
		&customerGetterMock{customer: testCustomer},
		&movieGetterMock{movie: testMovie},
		&rentalsStorageMock{
			checkoutFn: func(ctx context.Context, rental *models.Rental) (*models.Rental, error) {
				return nil, storage.ErrOutOfStock
			},
		},
	)
	rental, err := s.Checkout(context.Background(), testCustomer.ID, testMovie.ID)
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Nil(t, rental)
}

func TestCheckoutEmbedsSnapshots(t *testing.T) {
	var written *models.Rental
	s := New(
		testLogger(),
		&customerGetterMock{customer: testCustomer},
		&movieGetterMock{movie: testMovie},
		&rentalsStorageMock{
			checkoutFn: func(ctx context.Context, rental *models.Rental) (*models.Rental, error) {
				written = rental
				created := *rental
				created.DateOut = time.Now().UTC()
				return &created, nil
			},
		},
	)
	rental, err := s.Checkout(context.Background(), testCustomer.ID, testMovie.ID)
	require.NoError(t, err)
	require.NotNil(t, written)
	assert.NotEmpty(t, written.ID)
	assert.Equal(t, models.CustomerSnapshot{
		ID:    testCustomer.ID,
		Name:  "John Doe",
		Phone: "1234567890",
	}, written.Customer)
	assert.Equal(t, models.MovieSnapshot{
		ID:              testMovie.ID,
		Title:           "Inception",
		DailyRentalRate: 3,
	}, written.Movie)
	assert.Nil(t, rental.DateReturned)
	assert.Nil(t, rental.RentalFee)
}

func TestReturnRentalNotFound(t *testing.T) {
	s := New(testLogger(), &customerGetterMock{}, &movieGetterMock{}, &rentalsStorageMock{
		findOpenByPairFn: func(ctx context.Context, customerID, movieID string) (*models.Rental, error) {
			return nil, storage.ErrNotFound
		},
		existsByPairFn: func(ctx context.Context, customerID, movieID string) (bool, error) {
			return false, nil
		},
	})
	rental, err := s.Return(context.Background(), testCustomer.ID, testMovie.ID)
	assert.ErrorIs(t, err, ErrRentalNotFound)
	assert.Nil(t, rental)
}

func TestReturnAlreadyReturned(t *testing.T) {
	s := New(testLogger(), &customerGetterMock{}, &movieGetterMock{}, &rentalsStorageMock{
		findOpenByPairFn: func(ctx context.Context, customerID, movieID string) (*models.Rental, error) {
			return nil, storage.ErrNotFound
		},
		existsByPairFn: func(ctx context.Context, customerID, movieID string) (bool, error) {
			return true, nil
		},
	})
	rental, err := s.Return(context.Background(), testCustomer.ID, testMovie.ID)
	assert.ErrorIs(t, err, ErrAlreadyReturned)
	assert.Nil(t, rental)
}

func TestReturnLosesRaceToConcurrentReturn(t *testing.T) {
	open := &models.Rental{
		ID:      uuid.NewString(),
		Movie:   models.MovieSnapshot{ID: testMovie.ID, DailyRentalRate: 3},
		DateOut: time.Now().UTC().Add(-24 * time.Hour),
	}
	s := New(testLogger(), &customerGetterMock{}, &movieGetterMock{}, &rentalsStorageMock{
		findOpenByPairFn: func(ctx context.Context, customerID, movieID string) (*models.Rental, error) {
			return open, nil
		},
		closeFn: func(ctx context.Context, rental *models.Rental) (*models.Rental, error) {
			return nil, storage.ErrConflict
		},
	})
	rental, err := s.Return(context.Background(), testCustomer.ID, testMovie.ID)
	assert.ErrorIs(t, err, ErrAlreadyReturned)
	assert.Nil(t, rental)
}

func TestReturnComputesFeeFromSnapshotRate(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		dateOut time.Time
		rate    float64
		wantFee float64
	}{
		{"seven days at rate 2", now.Add(-7 * 24 * time.Hour), 2, 14},
		{"same instant", now, 3, 0},
		{"under a day", now.Add(-23 * time.Hour), 5, 0},
		{"just under eight days", now.Add(-8*24*time.Hour + time.Minute), 2, 14},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			open := &models.Rental{
				ID:       uuid.NewString(),
				Customer: models.CustomerSnapshot{ID: testCustomer.ID},
				Movie:    models.MovieSnapshot{ID: testMovie.ID, DailyRentalRate: tt.rate},
				DateOut:  tt.dateOut,
			}
			s := New(testLogger(), &customerGetterMock{}, &movieGetterMock{}, &rentalsStorageMock{
				findOpenByPairFn: func(ctx context.Context, customerID, movieID string) (*models.Rental, error) {
					return open, nil
				},
				closeFn: func(ctx context.Context, rental *models.Rental) (*models.Rental, error) {
					return rental, nil
				},
			})
			s.now = func() time.Time { return now }
			rental, err := s.Return(context.Background(), testCustomer.ID, testMovie.ID)
			require.NoError(t, err)
			require.NotNil(t, rental.DateReturned)
			require.NotNil(t, rental.RentalFee)
			assert.Equal(t, now, *rental.DateReturned)
			assert.Equal(t, tt.wantFee, *rental.RentalFee)
			assert.False(t, rental.DateReturned.Before(rental.DateOut))
		})
	}
}

// fakeStore is an in-memory RentalsStorage with the same conditional
// stock-decrement behavior as the database layer.
type fakeStore struct {
	mu       sync.Mutex
	customer models.Customer
	movie    models.Movie
	rentals  map[string]*models.Rental
}

func newFakeStore(customer models.Customer, movie models.Movie) *fakeStore {
	return &fakeStore{
		customer: customer,
		movie:    movie,
		rentals:  make(map[string]*models.Rental),
	}
}

func (f *fakeStore) Get(_ context.Context, id string) (*models.Customer, error) {
	if id != f.customer.ID {
		return nil, storage.ErrNotFound
	}
	c := f.customer
	return &c, nil
}

type fakeMovieStore struct{ store *fakeStore }

func (f *fakeMovieStore) Get(_ context.Context, id string) (*models.Movie, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if id != f.store.movie.ID {
		return nil, storage.ErrNotFound
	}
	m := f.store.movie
	return &m, nil
}

func (f *fakeStore) List(_ context.Context) ([]models.Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Rental, 0, len(f.rentals))
	for _, r := range f.rentals {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeStore) FindOpenByPair(_ context.Context, customerID, movieID string) (*models.Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *models.Rental
	for _, r := range f.rentals {
		if r.Customer.ID != customerID || r.Movie.ID != movieID || r.DateReturned != nil {
			continue
		}
		if latest == nil || r.DateOut.After(latest.DateOut) {
			latest = r
		}
	}
	if latest == nil {
		return nil, storage.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeStore) ExistsByPair(_ context.Context, customerID, movieID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rentals {
		if r.Customer.ID == customerID && r.Movie.ID == movieID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Checkout(_ context.Context, rental *models.Rental) (*models.Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.movie.NumberInStock <= 0 {
		return nil, storage.ErrOutOfStock
	}
	f.movie.NumberInStock--
	created := *rental
	created.DateOut = time.Now().UTC()
	f.rentals[created.ID] = &created
	return &created, nil
}

func (f *fakeStore) Close(_ context.Context, rental *models.Rental) (*models.Rental, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.rentals[rental.ID]
	if !ok || stored.DateReturned != nil {
		return nil, storage.ErrConflict
	}
	stored.DateReturned = rental.DateReturned
	stored.RentalFee = rental.RentalFee
	if rental.Movie.ID == f.movie.ID {
		f.movie.NumberInStock++
	}
	cp := *stored
	return &cp, nil
}

func newFakeService(store *fakeStore) *RentalService {
	return New(testLogger(), store, &fakeMovieStore{store}, store)
}

func TestCheckoutReturnRoundTrip(t *testing.T) {
	store := newFakeStore(
		models.Customer{ID: uuid.NewString(), Name: "John Doe", Phone: "1234567890"},
		models.Movie{ID: uuid.NewString(), Title: "Inception", NumberInStock: 1, DailyRentalRate: 3},
	)
	s := newFakeService(store)
	ctx := context.Background()

	rental, err := s.Checkout(ctx, store.customer.ID, store.movie.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(0), store.movie.NumberInStock)
	assert.Nil(t, rental.DateReturned)

	_, err = s.Checkout(ctx, store.customer.ID, store.movie.ID)
	assert.ErrorIs(t, err, ErrOutOfStock)

	returned, err := s.Return(ctx, store.customer.ID, store.movie.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(1), store.movie.NumberInStock)
	require.NotNil(t, returned.DateReturned)
	require.NotNil(t, returned.RentalFee)
	assert.Equal(t, float64(0), *returned.RentalFee, "immediate return costs nothing")

	_, err = s.Return(ctx, store.customer.ID, store.movie.ID)
	assert.ErrorIs(t, err, ErrAlreadyReturned)
}

func TestConcurrentCheckoutsNeverOversell(t *testing.T) {
	const stock = 3
	const attempts = 10
	store := newFakeStore(
		models.Customer{ID: uuid.NewString(), Name: "John Doe", Phone: "1234567890"},
		models.Movie{ID: uuid.NewString(), Title: "Inception", NumberInStock: stock, DailyRentalRate: 3},
	)
	s := newFakeService(store)

	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Checkout(context.Background(), store.customer.ID, store.movie.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, outOfStock int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrOutOfStock):
			outOfStock++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, stock, succeeded)
	assert.Equal(t, attempts-stock, outOfStock)
	assert.Equal(t, int32(0), store.movie.NumberInStock)
	assert.Len(t, store.rentals, stock)
}
