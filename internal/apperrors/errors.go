package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the acting party is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not permitted for actor")

// ErrInvalidStateTransition indicates a lifecycle operation was attempted from a
// loan or application status that is not a legal source for it. Never retried.
var ErrInvalidStateTransition = errors.New("invalid state transition")

// ErrOutOfBounds indicates a requested amount or term outside the product's limits.
var ErrOutOfBounds = errors.New("amount or term out of product bounds")

// ErrInvalidTerm indicates a non-positive loan term.
var ErrInvalidTerm = errors.New("term must be greater than zero")

// ErrInvalidRate indicates a negative interest rate.
var ErrInvalidRate = errors.New("rate must not be negative")

// ErrInvalidAmount indicates an amount that violates a business rule (e.g. a
// default amount exceeding the outstanding balance).
var ErrInvalidAmount = errors.New("invalid amount")

// ErrOverpayment indicates a repayment larger than the outstanding balance.
var ErrOverpayment = errors.New("repayment exceeds outstanding amount")

// ErrAlreadyDisbursed indicates a second disbursement attempt for the same loan.
var ErrAlreadyDisbursed = errors.New("loan already disbursed")

// ErrConcurrentModification indicates the loan row changed underneath the
// operation. Transient; callers may retry the whole operation.
var ErrConcurrentModification = errors.New("concurrent modification detected")
