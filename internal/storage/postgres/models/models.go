package models

import "vidly/proj/internal/storage/postgres"

type Models struct {
	Genres    *GenreModel
	Movies    *MovieModel
	Customers *CustomerModel
	Users     *UserModel
	Rentals   *RentalModel
}

func New(db *postgres.Storage) *Models {
	return &Models{
		Genres:    &GenreModel{db.Conn},
		Movies:    &MovieModel{db.Conn},
		Customers: &CustomerModel{db.Conn},
		Users:     &UserModel{db.Conn},
		Rentals:   &RentalModel{db},
	}
}
