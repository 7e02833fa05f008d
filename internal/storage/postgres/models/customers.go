package models

import (
	"context"
	"errors"

	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerModel struct {
	DB *pgxpool.Pool
}

func (m *CustomerModel) Get(ctx context.Context, id string) (*models.Customer, error) {
	rows, err := m.DB.Query(ctx, "SELECT id, name, is_gold, phone FROM customers WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	customer, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Customer])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

func (m *CustomerModel) List(ctx context.Context) ([]models.Customer, error) {
	rows, _ := m.DB.Query(ctx, "SELECT id, name, is_gold, phone FROM customers ORDER BY name ASC")
	customers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Customer])
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (m *CustomerModel) Insert(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO customers (id, name, is_gold, phone) VALUES ($1, $2, $3, $4)
		RETURNING id, name, is_gold, phone`,
		customer.ID,
		customer.Name,
		customer.IsGold,
		customer.Phone,
	)
	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Customer])
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (m *CustomerModel) Update(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	rows, _ := m.DB.Query(
		ctx,
		`UPDATE customers SET name = $1, is_gold = $2, phone = $3 WHERE id = $4
		RETURNING id, name, is_gold, phone`,
		customer.Name,
		customer.IsGold,
		customer.Phone,
		customer.ID,
	)
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Customer])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (m *CustomerModel) Delete(ctx context.Context, id string) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
