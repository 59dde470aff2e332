package feemanager

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ValidatorLedger is the external, append-only claim ledger. It is the
// source of truth for which addresses are validators and how many claims
// each of them has submitted in total. The fee manager only ever reads it.
type ValidatorLedger interface {
	// GetValidatorIndex resolves a validator address to its slot index,
	// failing if the address is not a known validator.
	GetValidatorIndex(validator common.Address) (uint64, error)
	// GetNumberOfClaimsByIndex returns the total number of claims ever
	// submitted by the validator at the given slot. The count is
	// monotonically non-decreasing over time.
	GetNumberOfClaimsByIndex(index uint64) (uint64, error)
}

// Token is the fungible token the manager moves balances of. Implementations
// must execute transfers with the manager itself as the sender, the way a
// bound contract session would. Transfers report soft failure by returning
// false; an error stands for a revert. The manager treats both the same.
//
// Transfer may synchronously call back into the manager. ClaimFee is written
// so that such a callback cannot double-spend.
type Token interface {
	Address() common.Address
	Transfer(to common.Address, amount *big.Int) (bool, error)
	TransferFrom(from, to common.Address, amount *big.Int) (bool, error)
}
