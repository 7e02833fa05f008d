package customers

import (
	"context"
	"errors"
	"log/slog"

	"vidly/proj/internal/domain/models"
	"vidly/proj/internal/storage"

	"github.com/google/uuid"
)

type CustomersStorage interface {
	Get(ctx context.Context, id string) (*models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
	Insert(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	Delete(ctx context.Context, id string) error
}

type CustomerService struct {
	log     *slog.Logger
	storage CustomersStorage
}

func New(log *slog.Logger, storage CustomersStorage) *CustomerService {
	return &CustomerService{
		log:     log,
		storage: storage,
	}
}

func (s *CustomerService) Get(ctx context.Context, id string) (*models.Customer, error) {
	const op = "customers.CustomerService.Get"
	customer, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		s.log.With("op", op, "id", id).Error(err.Error())
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	const op = "customers.CustomerService.List"
	customers, err := s.storage.List(ctx)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return customers, nil
}

func (s *CustomerService) Create(ctx context.Context, name string, isGold bool, phone string) (*models.Customer, error) {
	const op = "customers.CustomerService.Create"
	customer, err := s.storage.Insert(ctx, &models.Customer{
		ID:     uuid.NewString(),
		Name:   name,
		IsGold: isGold,
		Phone:  phone,
	})
	if err != nil {
		s.log.With("op", op, "name", name).Error(err.Error())
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Update(ctx context.Context, id, name string, isGold bool, phone string) (*models.Customer, error) {
	const op = "customers.CustomerService.Update"
	customer, err := s.storage.Update(ctx, &models.Customer{
		ID:     id,
		Name:   name,
		IsGold: isGold,
		Phone:  phone,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		s.log.With("op", op, "id", id).Error(err.Error())
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, id string) error {
	const op = "customers.CustomerService.Delete"
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrCustomerNotFound
		}
		s.log.With("op", op, "id", id).Error(err.Error())
		return err
	}
	return nil
}
