package household

import "errors"

// Domain errors for household operations

var (
	ErrNameRequired      = errors.New("household name is required")
	ErrNameTooLong       = errors.New("household name must not exceed 200 characters")
	ErrInvalidTimezone   = errors.New("household timezone is not a valid IANA zone")
	ErrItemNameRequired  = errors.New("inventory item canonical name is required")
	ErrNegativeQuantity  = errors.New("inventory quantity cannot be negative")
	ErrInvertedBlock     = errors.New("calendar block must end after it starts")
	ErrHouseholdNotFound = errors.New("household not found")
	ErrItemNotFound      = errors.New("inventory item not found")
)
