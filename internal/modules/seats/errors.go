package seats

import "errors"

var (
	ErrDuplicateSeatNumber = errors.New("seat number already exists in branch")
	ErrInvalidSeatStatus   = errors.New("invalid seat status")
	ErrInvalidSeatType     = errors.New("invalid seat type")
	ErrSeatUnavailable     = errors.New("seat is not available")
)
