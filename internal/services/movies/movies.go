package movies

import (
	"context"
	"errors"
	"log/slog"

	"vidly/proj/internal/domain/filters"
	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"

	"github.com/google/uuid"
)

type MoviesStorage interface {
	Get(ctx context.Context, id string) (*models.Movie, error)
	List(ctx context.Context, title string, filters filters.Filters) ([]models.Movie, int, error)
	Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	Update(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	Delete(ctx context.Context, id string) error
}

type GenreGetter interface {
	Get(ctx context.Context, id string) (*models.Genre, error)
}

type MovieService struct {
	log     *slog.Logger
	storage MoviesStorage
	genres  GenreGetter
}

func New(log *slog.Logger, storage MoviesStorage, genres GenreGetter) *MovieService {
	return &MovieService{
		log:     log,
		storage: storage,
		genres:  genres,
	}
}

func (s *MovieService) Get(ctx context.Context, id string) (*models.Movie, error) {
	const op = "movies.MovieService.Get"
	movie, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrMovieNotFound
		}
		s.log.With("op", op, "id", id).Error(err.Error())
		return nil, err
	}
	return movie, nil
}

func (s *MovieService) List(ctx context.Context, title string, flt filters.Filters) ([]models.Movie, int, error) {
	const op = "movies.MovieService.List"
	movies, totalRecords, err := s.storage.List(ctx, title, flt)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, 0, err
	}
	return movies, totalRecords, nil
}

// Create resolves genreID to a live genre and embeds a snapshot of it in the
// new movie.
func (s *MovieService) Create(ctx context.Context, title, genreID string, numberInStock int32, dailyRentalRate float64) (*models.Movie, error) {
	const op = "movies.MovieService.Create"
	log := s.log.With("op", op, "title", title, "genre_id", genreID)
	genre, err := s.genres.Get(ctx, genreID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("genre not found")
			return nil, ErrGenreNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	movie, err := s.storage.Insert(ctx, &models.Movie{
		ID:              uuid.NewString(),
		Title:           title,
		Genre:           *genre,
		NumberInStock:   numberInStock,
		DailyRentalRate: dailyRentalRate,
	})
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}

func (s *MovieService) Update(ctx context.Context, id, title, genreID string, numberInStock int32, dailyRentalRate float64) (*models.Movie, error) {
	const op = "movies.MovieService.Update"
	log := s.log.With("op", op, "id", id, "genre_id", genreID)
	genre, err := s.genres.Get(ctx, genreID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("genre not found")
			return nil, ErrGenreNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	movie, err := s.storage.Update(ctx, &models.Movie{
		ID:              id,
		Title:           title,
		Genre:           *genre,
		NumberInStock:   numberInStock,
		DailyRentalRate: dailyRentalRate,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}

func (s *MovieService) Delete(ctx context.Context, id string) error {
	const op = "movies.MovieService.Delete"
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrMovieNotFound
		}
		s.log.With("op", op, "id", id).Error(err.Error())
		return err
	}
	return nil
}
