// Package feemanager converts a validator's unredeemed claims into a
// fungible token payout. It keeps a packed per-validator counter of claims
// already redeemed and, on demand, pays out the difference against the total
// reported by an external validator ledger, at the current fee-per-claim
// rate. The redemption path follows checks-effects-interactions: the counter
// moves before the token is touched, so a reentrant call through the token
// cannot replay the same delta. A reentrancy guard rejects nested calls
// outright as defense in depth.
package feemanager

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rollups-go/feemanager/contracts/claimsmask"
)

// Config options for the fee manager.
type Config struct {
	// SelfAddress is the manager's own identity as a token holder. Escrow
	// deposits land on this address and payouts are drawn from it.
	SelfAddress common.Address
	// Owner gates Fund and SetFeePerClaim. Immutable after construction.
	Owner common.Address
	// Ledger is the external source of truth for validator slots and total
	// claim counts.
	Ledger ValidatorLedger
	// FeePerClaim is the initial rate in token base units per claim.
	FeePerClaim *big.Int
}

// FeeManager owns the fee rate, the redeemed-claim counters and the
// redemption protocol. It supports up to claimsmask.Slots validators.
//
// Calls are expected to be serialized by the host; the only concurrency
// hazard in scope is a synchronous callback from Token.Transfer, which the
// locked flag guards against.
type FeeManager struct {
	address     common.Address
	owner       common.Address
	ledger      ValidatorLedger
	feePerClaim *big.Int
	mask        claimsmask.Mask
	locked      bool
	depositFeed event.Feed
	claimFeed   event.Feed
}

// New creates a fee manager with all redeemed-claim counters at zero.
func New(cfg *Config) (*FeeManager, error) {
	if cfg == nil || cfg.Ledger == nil {
		return nil, errors.New("validator ledger is required")
	}
	if cfg.Owner == (common.Address{}) {
		return nil, errors.New("owner address is required")
	}
	fee := cfg.FeePerClaim
	if fee == nil {
		fee = new(big.Int)
	}
	if fee.Sign() < 0 {
		return nil, errors.New("fee per claim cannot be negative")
	}
	return &FeeManager{
		address:     cfg.SelfAddress,
		owner:       cfg.Owner,
		ledger:      cfg.Ledger,
		feePerClaim: new(big.Int).Set(fee),
		mask:        claimsmask.New(),
	}, nil
}

// Address returns the manager's identity as a token holder.
func (fm *FeeManager) Address() common.Address {
	return fm.address
}

// Owner returns the address recorded at construction.
func (fm *FeeManager) Owner() common.Address {
	return fm.owner
}

// FeePerClaim returns the current rate in token base units per claim.
func (fm *FeeManager) FeePerClaim() *big.Int {
	return new(big.Int).Set(fm.feePerClaim)
}

// NumClaimsRedeemed returns the redeemed-claim count for a validator slot.
func (fm *FeeManager) NumClaimsRedeemed(index uint64) (uint64, error) {
	return fm.mask.NumClaimsRedeemed(index)
}

// Fund pulls amount token base units from the owner into the manager's
// escrow balance. Owner only.
func (fm *FeeManager) Fund(caller common.Address, token Token, amount *big.Int) error {
	if caller != fm.owner {
		return ErrUnauthorized
	}
	if amount == nil || amount.Sign() < 0 {
		return errors.New("invalid funding amount")
	}
	ok, err := token.TransferFrom(fm.owner, fm.address, amount)
	if err != nil {
		return errors.Wrap(ErrTransferFailed, err.Error())
	}
	if !ok {
		return ErrTransferFailed
	}
	fundsDepositedTotal.Add(bigToFloat(amount))
	fm.depositFeed.Send(&FundsDeposited{Token: token.Address(), Amount: new(big.Int).Set(amount)})
	log.WithFields(logrus.Fields{
		"token":  token.Address(),
		"amount": amount,
	}).Info("Deposited funds into escrow")
	return nil
}

// SetFeePerClaim replaces the fee rate unconditionally. Owner only. The new
// rate applies to every claim still unredeemed, including claims that
// accrued under the previous rate.
func (fm *FeeManager) SetFeePerClaim(caller common.Address, value *big.Int) error {
	if caller != fm.owner {
		return ErrUnauthorized
	}
	if value == nil || value.Sign() < 0 {
		return errors.New("fee per claim cannot be negative")
	}
	fm.feePerClaim = new(big.Int).Set(value)
	log.WithField("feePerClaim", value).Info("Updated fee per claim")
	return nil
}

// ClaimFee redeems every claim the given validator has submitted to the
// ledger beyond the ones already redeemed, transferring delta * feePerClaim
// token base units to the validator. It returns the payout amount.
//
// A failed call leaves the counters and the token balances exactly as they
// were: the guard is released on every exit path and a failed transfer
// restores the pre-increment counter word.
func (fm *FeeManager) ClaimFee(token Token, validator common.Address) (*big.Int, error) {
	if fm.locked {
		reentrantCallsDeniedTotal.Inc()
		return nil, ErrReentrantCall
	}
	fm.locked = true
	defer func() { fm.locked = false }()

	// Checks.
	index, err := fm.ledger.GetValidatorIndex(validator)
	if err != nil {
		return nil, errors.Wrap(err, "could not resolve validator index")
	}
	total, err := fm.ledger.GetNumberOfClaimsByIndex(index)
	if err != nil {
		return nil, errors.Wrap(err, "could not read total claims")
	}
	redeemed, err := fm.mask.NumClaimsRedeemed(index)
	if err != nil {
		return nil, err
	}
	if total <= redeemed {
		return nil, ErrNothingToRedeem
	}

	// Effects. The counter moves before any external call so that a
	// reentrant claim observes the post-increment state.
	delta := total - redeemed
	snapshot := fm.mask
	if _, err := fm.mask.IncreaseNumClaimed(index, delta); err != nil {
		return nil, err
	}

	// Interactions.
	payout := new(big.Int).Mul(new(big.Int).SetUint64(delta), fm.feePerClaim)
	ok, err := token.Transfer(validator, payout)
	if err != nil || !ok {
		// Nothing a nested call did can stick while the guard is held, so
		// restoring the snapshot undoes exactly this call's increment.
		fm.mask = snapshot
		if err != nil {
			return nil, errors.Wrap(ErrTransferFailed, err.Error())
		}
		return nil, ErrTransferFailed
	}

	claimsRedeemedTotal.Add(float64(delta))
	redemptionsTotal.Inc()
	fm.claimFeed.Send(&FeeClaimed{Token: token.Address(), Validator: validator, Amount: new(big.Int).Set(payout)})
	log.WithFields(logrus.Fields{
		"token":     token.Address(),
		"validator": validator,
		"claims":    delta,
		"amount":    payout,
	}).Info("Redeemed validator claims")
	return payout, nil
}
