package rentals

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"

	"github.com/google/uuid"
)

type CustomerGetter interface {
	Get(ctx context.Context, id string) (*models.Customer, error)
}

type MovieGetter interface {
	Get(ctx context.Context, id string) (*models.Movie, error)
}

type RentalsStorage interface {
	List(ctx context.Context) ([]models.Rental, error)
	FindOpenByPair(ctx context.Context, customerID, movieID string) (*models.Rental, error)
	ExistsByPair(ctx context.Context, customerID, movieID string) (bool, error)
	Checkout(ctx context.Context, rental *models.Rental) (*models.Rental, error)
	Close(ctx context.Context, rental *models.Rental) (*models.Rental, error)
}

// RentalService drives the checkout/return workflow. A rental moves from out
// to returned exactly once and never back; the rented movie's stock is the
// only state shared between the two operations.
type RentalService struct {
	log       *slog.Logger
	customers CustomerGetter
	movies    MovieGetter
	storage   RentalsStorage
	now       func() time.Time
}

func New(log *slog.Logger, customers CustomerGetter, movies MovieGetter, storage RentalsStorage) *RentalService {
	return &RentalService{
		log:       log,
		customers: customers,
		movies:    movies,
		storage:   storage,
		now:       time.Now,
	}
}

func (s *RentalService) List(ctx context.Context) ([]models.Rental, error) {
	const op = "rentals.RentalService.List"
	rentals, err := s.storage.List(ctx)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return rentals, nil
}

// Checkout creates a rental embedding the current customer and movie
// snapshots and decrements the movie's stock by one. Preconditions fail in
// order: ids present, customer exists, movie exists, stock positive. The two
// writes happen in one storage transaction; the stock check that counts is
// the storage layer's conditional decrement, so a concurrent checkout of the
// last copy fails with ErrOutOfStock instead of driving stock negative.
func (s *RentalService) Checkout(ctx context.Context, customerID, movieID string) (*models.Rental, error) {
	const op = "rentals.RentalService.Checkout"
	log := s.log.With("op", op, "customer_id", customerID, "movie_id", movieID)
	if customerID == "" || movieID == "" {
		return nil, ErrValidation
	}
	customer, err := s.customers.Get(ctx, customerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("invalid customer")
			return nil, ErrInvalidCustomer
		}
		log.Error(err.Error())
		return nil, err
	}
	movie, err := s.movies.Get(ctx, movieID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("invalid movie")
			return nil, ErrInvalidMovie
		}
		log.Error(err.Error())
		return nil, err
	}
	if movie.NumberInStock <= 0 {
		log.Info("movie not in stock")
		return nil, ErrOutOfStock
	}
	rental, err := s.storage.Checkout(ctx, &models.Rental{
		ID: uuid.NewString(),
		Customer: models.CustomerSnapshot{
			ID:    customer.ID,
			Name:  customer.Name,
			Phone: customer.Phone,
		},
		Movie: models.MovieSnapshot{
			ID:              movie.ID,
			Title:           movie.Title,
			DailyRentalRate: movie.DailyRentalRate,
		},
	})
	if err != nil {
		if errors.Is(err, storage.ErrOutOfStock) {
			log.Info("movie went out of stock during checkout")
			return nil, ErrOutOfStock
		}
		log.Error(err.Error())
		return nil, err
	}
	log.Info("rental created", "rental_id", rental.ID)
	return rental, nil
}

// Return closes the most recent still-open rental for the customer/movie
// pair. The fee is the whole-day difference between now and dateOut times the
// dailyRentalRate frozen in the rental's movie snapshot. Restoring the live
// movie's stock is a no-op when that movie no longer exists.
func (s *RentalService) Return(ctx context.Context, customerID, movieID string) (*models.Rental, error) {
	const op = "rentals.RentalService.Return"
	log := s.log.With("op", op, "customer_id", customerID, "movie_id", movieID)
	if customerID == "" || movieID == "" {
		return nil, ErrValidation
	}
	rental, err := s.storage.FindOpenByPair(ctx, customerID, movieID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			exists, err := s.storage.ExistsByPair(ctx, customerID, movieID)
			if err != nil {
				log.Error(err.Error())
				return nil, err
			}
			if exists {
				log.Info("return already processed")
				return nil, ErrAlreadyReturned
			}
			log.Info("rental not found")
			return nil, ErrRentalNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	now := s.now().UTC()
	fee := float64(elapsedDays(rental.DateOut, now)) * rental.Movie.DailyRentalRate
	rental.DateReturned = &now
	rental.RentalFee = &fee
	closed, err := s.storage.Close(ctx, rental)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("rental closed by a concurrent return")
			return nil, ErrAlreadyReturned
		}
		log.Error(err.Error())
		return nil, err
	}
	log.Info("rental returned", "rental_id", closed.ID, "rental_fee", fee)
	return closed, nil
}

// elapsedDays truncates the duration between the two instants to whole days
// in UTC. A same-day return therefore costs nothing.
func elapsedDays(from, to time.Time) int {
	d := to.UTC().Sub(from.UTC())
	if d < 0 {
		return 0
	}
	return int(d.Hours() / 24)
}
