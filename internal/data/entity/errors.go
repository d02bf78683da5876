package entity

import "errors"

// Domain sentinels. Callers match with errors.Is; the http layer maps
// them to status codes.
var (
	ErrSeatUnavailable = errors.New("one or more seats are not available")
	ErrSingleSeatGap   = errors.New("seat selection leaves a single-seat gap")
	ErrInvalidState    = errors.New("invalid state transition")
	ErrHoldExpired     = errors.New("booking hold has expired")
)
