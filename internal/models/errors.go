package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Validation errors. These are rejected before any write happens.
var (
	ErrAmountNotPositive    = errors.New("the amount must be positive")
	ErrTrancheCountRequired = errors.New("the tranche count must be set for cycles of type tranches")
	ErrInvalidCycleType     = errors.New("the cycle type must be one of one_off, tranches, emergency")
	ErrInvalidFundingStatus = errors.New("the funding status must be one of unassigned, allocated, committed")
	ErrInvalidApproval      = errors.New("the approval status must be one of pending, approved, rejected")
)

// Integrity errors translated from database constraints.
var (
	ErrDonorNameNotUnique = errors.New("the donor name must be unique")
	ErrDonorReferenced    = errors.New("the donor short code cannot be changed once a grant references the donor")
	ErrSequenceDecreased  = errors.New("the workplan sequence counter can never decrease")
)
