package serviceerrors

import "errors"

var (
	ErrContextCanceled  = errors.New("context canceled")
	ErrDeadlineExceeded = errors.New("deadline exceeded")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInvalidCustomer  = errors.New("please provide at least your name and email to complete the order")
)
