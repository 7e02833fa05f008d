package models

import (
	"time"
)

type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Movie struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Genre           Genre   `json:"genre"`                                  // Embedded genre snapshot taken at create/update time
	NumberInStock   int32   `json:"numberInStock" db:"number_in_stock"`     // Mutated only by the rental workflow, never negative
	DailyRentalRate float64 `json:"dailyRentalRate" db:"daily_rental_rate"`
}

type Customer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsGold bool   `json:"isGold" db:"is_gold"`
	Phone  string `json:"phone"`
}

type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash []byte `json:"-" db:"password_hash"`
	IsAdmin      bool   `json:"isAdmin" db:"is_admin"`
}

// CustomerSnapshot is the denormalized customer copy embedded in a rental
// at checkout time. Later customer edits never touch it.
type CustomerSnapshot struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// MovieSnapshot freezes the daily rate at checkout time; the return fee is
// always computed from this copy, not the live movie.
type MovieSnapshot struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	DailyRentalRate float64 `json:"dailyRentalRate"`
}

type Rental struct {
	ID           string           `json:"id"`
	Customer     CustomerSnapshot `json:"customer"`
	Movie        MovieSnapshot    `json:"movie"`
	DateOut      time.Time        `json:"dateOut" db:"date_out"`
	DateReturned *time.Time       `json:"dateReturned,omitempty" db:"date_returned"` // Set exactly once, by the return operation
	RentalFee    *float64         `json:"rentalFee,omitempty" db:"rental_fee"`
}

// Identity is the authenticated caller derived from a verified token.
type Identity struct {
	ID      string
	IsAdmin bool
}

var AnonymousIdentity = &Identity{}

func (i *Identity) IsAnonymous() bool {
	return i == AnonymousIdentity
}
