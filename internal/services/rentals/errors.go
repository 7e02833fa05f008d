package rentals

import "errors"

var (
	ErrValidation      = errors.New("customerId and movieId are required")
	ErrInvalidCustomer = errors.New("invalid customer")
	ErrInvalidMovie    = errors.New("invalid movie")
	ErrOutOfStock      = errors.New("movie not in stock")
	ErrRentalNotFound  = errors.New("rental not found")
	ErrAlreadyReturned = errors.New("return already processed")
)
