package models

import (
	"context"
	"errors"
	"fmt"

	"vidly/proj/internal/domain/filters"
	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MovieModel struct {
	DB *pgxpool.Pool
}

func (m *MovieModel) Get(ctx context.Context, id string) (*models.Movie, error) {
	rows, err := m.DB.Query(
		ctx,
		"SELECT id, title, genre, number_in_stock, daily_rental_rate FROM movies WHERE id = $1",
		id,
	)
	if err != nil {
		return nil, err
	}
	movie, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &movie, nil
}

func (m *MovieModel) List(ctx context.Context, title string, filters filters.Filters) ([]models.Movie, int, error) {
	query := fmt.Sprintf(`
	SELECT count(*) OVER(), id, title, genre, number_in_stock, daily_rental_rate FROM movies
	WHERE (to_tsvector('english', title) @@ plainto_tsquery('english', $1) OR $1 = '')
	ORDER BY %s %s, id ASC
	LIMIT $2 OFFSET $3
	`, filters.SortColumn(), filters.SortDirection())
	rows, _ := m.DB.Query(ctx, query, title, filters.Limit(), filters.Offset())
	type row struct {
		Count int
		models.Movie
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	if len(outputRows) == 0 {
		return []models.Movie{}, 0, nil
	}
	movies := make([]models.Movie, 0, len(outputRows))
	for _, row := range outputRows {
		movies = append(movies, row.Movie)
	}
	return movies, outputRows[0].Count, nil
}

func (m *MovieModel) Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO movies (id, title, genre, number_in_stock, daily_rental_rate) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, genre, number_in_stock, daily_rental_rate`,
		movie.ID,
		movie.Title,
		movie.Genre,
		movie.NumberInStock,
		movie.DailyRentalRate,
	)
	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (m *MovieModel) Update(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	rows, _ := m.DB.Query(
		ctx,
		`UPDATE movies SET title = $1, genre = $2, number_in_stock = $3, daily_rental_rate = $4
		WHERE id = $5 RETURNING id, title, genre, number_in_stock, daily_rental_rate`,
		movie.Title,
		movie.Genre,
		movie.NumberInStock,
		movie.DailyRentalRate,
		movie.ID,
	)
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (m *MovieModel) Delete(ctx context.Context, id string) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM movies WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
