package domain

import "errors"

var (
	ErrUnauthorized        = errors.New("caller is not allowed to perform this operation")
	ErrPaused              = errors.New("purchases are paused")
	ErrInsufficientPayment = errors.New("payment does not cover the ticket price")
	ErrZoneMismatch        = errors.New("plate already holds an active ticket for another zone")
	ErrTicketExpired       = errors.New("ticket has already expired")
	ErrDestinationActive   = errors.New("destination plate already holds an active ticket")
	ErrInsufficientBalance = errors.New("registry balance too low to withdraw this amount")
	ErrTicketNotFound      = errors.New("no ticket for this plate")
	ErrInvalidZone         = errors.New("invalid zone")
	ErrInvalidDuration     = errors.New("duration must be at least one minute")
	ErrInvalidAmount       = errors.New("amount must not be negative")
	ErrPlateRequired       = errors.New("plate is required")
	ErrAccountRequired     = errors.New("account is required")
)
