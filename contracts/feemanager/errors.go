package feemanager

import "github.com/pkg/errors"

var (
	// ErrUnauthorized is returned when an owner-only operation is called by
	// anyone other than the owner recorded at construction.
	ErrUnauthorized = errors.New("caller is not the owner")
	// ErrNothingToRedeem is returned when a validator has no claims beyond
	// the ones already redeemed.
	ErrNothingToRedeem = errors.New("nothing to redeem")
	// ErrTransferFailed is returned when the token reports a failed
	// transfer, either by returning false or by erroring.
	ErrTransferFailed = errors.New("token transfer failed")
	// ErrReentrantCall is returned to a nested ClaimFee issued while an
	// outer ClaimFee is still in flight.
	ErrReentrantCall = errors.New("reentrant call denied")
)
