package service

import "errors"

// Sentinel errors for the whole service layer. Services wrap these with
// fmt.Errorf("%w: ...") and the HTTP boundary maps them to status codes.
var (
	ErrValidation        = errors.New("validation failed")         // 400
	ErrUnauthorized      = errors.New("unauthorized")              // 401
	ErrForbidden         = errors.New("forbidden")                 // 403
	ErrNotFound          = errors.New("not found")                 // 404
	ErrInsufficientStock = errors.New("insufficient stock")        // 400
	ErrMultiVendorCart   = errors.New("multiple vendors in cart")  // 400
	ErrInvalidTransition = errors.New("invalid order transition")  // 400
)
