package genres

import (
	"context"
	"errors"
	"log/slog"

	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"

	"github.com/google/uuid"
)

type GenresStorage interface {
	Get(ctx context.Context, id string) (*models.Genre, error)
	List(ctx context.Context) ([]models.Genre, error)
	Insert(ctx context.Context, genre *models.Genre) (*models.Genre, error)
	Update(ctx context.Context, genre *models.Genre) (*models.Genre, error)
	Delete(ctx context.Context, id string) error
}

type GenreService struct {
	log     *slog.Logger
	storage GenresStorage
}

func New(log *slog.Logger, storage GenresStorage) *GenreService {
	return &GenreService{
		log:     log,
		storage: storage,
	}
}

func (s *GenreService) Get(ctx context.Context, id string) (*models.Genre, error) {
	const op = "genres.GenreService.Get"
	genre, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrGenreNotFound
		}
		s.log.With("op", op, "id", id).Error(err.Error())
		return nil, err
	}
	return genre, nil
}

func (s *GenreService) List(ctx context.Context) ([]models.Genre, error) {
	const op = "genres.GenreService.List"
	genres, err := s.storage.List(ctx)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return genres, nil
}

func (s *GenreService) Create(ctx context.Context, name string) (*models.Genre, error) {
	const op = "genres.GenreService.Create"
	genre, err := s.storage.Insert(ctx, &models.Genre{ID: uuid.NewString(), Name: name})
	if err != nil {
		s.log.With("op", op, "name", name).Error(err.Error())
		return nil, err
	}
	return genre, nil
}

func (s *GenreService) Update(ctx context.Context, id, name string) (*models.Genre, error) {
	const op = "genres.GenreService.Update"
	genre, err := s.storage.Update(ctx, &models.Genre{ID: id, Name: name})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrGenreNotFound
		}
		s.log.With("op", op, "id", id).Error(err.Error())
		return nil, err
	}
	return genre, nil
}

func (s *GenreService) Delete(ctx context.Context, id string) error {
	const op = "genres.GenreService.Delete"
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrGenreNotFound
		}
		s.log.With("op", op, "id", id).Error(err.Error())
		return err
	}
	return nil
}
