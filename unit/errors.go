package unit

import "errors"

var (
	// ErrUnknownCode is returned when a denomination code is not one of ZEL, mZEL, bits or satoshis.
	ErrUnknownCode = errors.New("unknown unit code")

	// ErrInvalidRate is returned when a fiat exchange rate is not a finite number greater than zero.
	ErrInvalidRate = errors.New("invalid exchange rate")

	// ErrInvalidAmount is returned when an amount is not a finite number or does not fit in satoshis.
	ErrInvalidAmount = errors.New("invalid amount")
)
