package models

import (
	"context"
	"errors"

	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"
	"vidly/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
)

const rentalColumns = "id, customer, movie, date_out, date_returned, rental_fee"

type RentalModel struct {
	db *postgres.Storage
}

func (m *RentalModel) List(ctx context.Context) ([]models.Rental, error) {
	rows, _ := m.db.Conn.Query(
		ctx,
		"SELECT "+rentalColumns+" FROM rentals ORDER BY date_out DESC",
	)
	rentals, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Rental])
	if err != nil {
		return nil, err
	}
	return rentals, nil
}

// FindOpenByPair looks up the most recent rental for the customer/movie pair
// that has not been returned yet. The pair is matched against the embedded
// snapshots, not the live customer/movie rows.
func (m *RentalModel) FindOpenByPair(ctx context.Context, customerID, movieID string) (*models.Rental, error) {
	rows, err := m.db.Conn.Query(
		ctx,
		`SELECT `+rentalColumns+` FROM rentals
		WHERE customer->>'id' = $1 AND movie->>'id' = $2 AND date_returned IS NULL
		ORDER BY date_out DESC LIMIT 1`,
		customerID,
		movieID,
	)
	if err != nil {
		return nil, err
	}
	rental, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Rental])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &rental, nil
}

func (m *RentalModel) ExistsByPair(ctx context.Context, customerID, movieID string) (bool, error) {
	var exists bool
	err := m.db.Conn.QueryRow(
		ctx,
		"SELECT EXISTS (SELECT 1 FROM rentals WHERE customer->>'id' = $1 AND movie->>'id' = $2)",
		customerID,
		movieID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Checkout inserts the rental and decrements the movie's stock as one
// transaction. The decrement is conditional on stock still being positive, so
// two concurrent checkouts of the last copy cannot both succeed; the loser
// gets storage.ErrOutOfStock and nothing is written.
func (m *RentalModel) Checkout(ctx context.Context, rental *models.Rental) (*models.Rental, error) {
	var created models.Rental
	err := m.db.WithTx(ctx, func(tx pgx.Tx) error {
		status, err := tx.Exec(
			ctx,
			"UPDATE movies SET number_in_stock = number_in_stock - 1 WHERE id = $1 AND number_in_stock > 0",
			rental.Movie.ID,
		)
		if err != nil {
			return err
		}
		if status.RowsAffected() == 0 {
			return storage.ErrOutOfStock
		}
		rows, _ := tx.Query(
			ctx,
			`INSERT INTO rentals (id, customer, movie) VALUES ($1, $2, $3)
			RETURNING `+rentalColumns,
			rental.ID,
			rental.Customer,
			rental.Movie,
		)
		created, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Rental])
		return err
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Close stamps the rental as returned and restores the movie's stock in one
// transaction. A rental already closed by a concurrent return yields
// storage.ErrConflict. The stock increment targets the live movie row by the
// embedded id; if that row is gone the increment is a no-op.
func (m *RentalModel) Close(ctx context.Context, rental *models.Rental) (*models.Rental, error) {
	var closed models.Rental
	err := m.db.WithTx(ctx, func(tx pgx.Tx) error {
		rows, _ := tx.Query(
			ctx,
			`UPDATE rentals SET date_returned = $1, rental_fee = $2
			WHERE id = $3 AND date_returned IS NULL
			RETURNING `+rentalColumns,
			rental.DateReturned,
			rental.RentalFee,
			rental.ID,
		)
		var err error
		closed, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Rental])
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return storage.ErrConflict
			}
			return err
		}
		_, err = tx.Exec(
			ctx,
			"UPDATE movies SET number_in_stock = number_in_stock + 1 WHERE id = $1",
			rental.Movie.ID,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &closed, nil
}
