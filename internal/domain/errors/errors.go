package errors

import "errors"

var (
	ErrAlreadyExists          = errors.New("already exists")
	ErrNotFound               = errors.New("not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInsufficientPoints     = errors.New("insufficient points")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidWeight          = errors.New("invalid weight")
	ErrInvalidQuantity        = errors.New("invalid quantity")
	ErrInvalidPlasticType     = errors.New("invalid plastic type")
	ErrInvalidMaintenanceType = errors.New("invalid maintenance type")
	ErrInvalidHealthStatus    = errors.New("invalid health status")
	ErrTooSoon                = errors.New("maintenance attempted too soon")
	ErrNotRedeemable          = errors.New("line not redeemable")
	ErrCheckoutInProgress     = errors.New("checkout already in progress")
	ErrExternalService        = errors.New("external service failure")
	ErrEmptyCart              = errors.New("cart is empty")
)
