package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

// GatewayError means the payment gateway rejected or errored on a call.
// The gateway message is passed through to the caller untouched.
type GatewayError struct {
	Op  string
	Msg string
	Err error
}

func (e GatewayError) Error() string {
	if e.Msg != "" && e.Op != "" {
		return fmt.Sprintf("gateway %s: %s", e.Op, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	return "gateway error"
}

func (e GatewayError) Unwrap() error { return e.Err }

// PaymentNotSuccessfulError means the gateway verified the reference but the
// transaction did not succeed. Terminal for that reference.
type PaymentNotSuccessfulError struct {
	Reference string
	Status    string
}

func (e PaymentNotSuccessfulError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("pembayaran %s berstatus %s", e.Reference, e.Status)
	}
	return fmt.Sprintf("pembayaran %s tidak berhasil", e.Reference)
}

// CorruptReferenceError means the intent metadata echoed by the gateway could
// not be decoded. Data-integrity alarm, bukan kesalahan user.
type CorruptReferenceError struct {
	Reference string
	Err       error
}

func (e CorruptReferenceError) Error() string {
	return fmt.Sprintf("metadata referensi %s rusak", e.Reference)
}

func (e CorruptReferenceError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

func IsGateway(err error) bool {
	var target GatewayError
	return errors.As(err, &target)
}

func IsPaymentNotSuccessful(err error) bool {
	var target PaymentNotSuccessfulError
	return errors.As(err, &target)
}

func IsCorruptReference(err error) bool {
	var target CorruptReferenceError
	return errors.As(err, &target)
}
