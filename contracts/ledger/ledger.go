// Package ledger provides an in-memory validator ledger: the append-only
// record of which addresses are validators and how many claims each has
// submitted. Production deployments read a real on-chain ledger; this one
// backs tests and the redemption simulator.
package ledger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/rollups-go/feemanager/contracts/claimsmask"
)

// Capacity is the number of validator slots the ledger can assign. It
// matches the fee manager's counter capacity.
const Capacity = claimsmask.Slots

var (
	// ErrUnknownValidator is returned when an address or slot index does not
	// belong to a registered validator.
	ErrUnknownValidator = errors.New("not a known validator")
	// ErrLedgerFull is returned when registering beyond Capacity.
	ErrLedgerFull = errors.New("validator ledger is at capacity")
)

// Ledger assigns slot indexes to validators in registration order and counts
// the claims they submit. Claim counts only ever grow.
type Ledger struct {
	indexes    map[common.Address]uint64
	validators []common.Address
	claims     []uint64
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{indexes: make(map[common.Address]uint64)}
}

// Register assigns the next free slot to a validator and returns its index.
// Registering an already known validator returns its existing slot.
func (l *Ledger) Register(validator common.Address) (uint64, error) {
	if index, ok := l.indexes[validator]; ok {
		return index, nil
	}
	if uint64(len(l.validators)) >= Capacity {
		return 0, errors.Wrapf(ErrLedgerFull, "capacity %d", Capacity)
	}
	index := uint64(len(l.validators))
	l.indexes[validator] = index
	l.validators = append(l.validators, validator)
	l.claims = append(l.claims, 0)
	return index, nil
}

// RecordClaim appends one claim for a validator and returns its new total.
func (l *Ledger) RecordClaim(validator common.Address) (uint64, error) {
	index, err := l.GetValidatorIndex(validator)
	if err != nil {
		return 0, err
	}
	l.claims[index]++
	return l.claims[index], nil
}

// GetValidatorIndex resolves a validator address to its slot index.
func (l *Ledger) GetValidatorIndex(validator common.Address) (uint64, error) {
	index, ok := l.indexes[validator]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownValidator, "address %#x", validator)
	}
	return index, nil
}

// GetNumberOfClaimsByIndex returns the total claims submitted by the
// validator at the given slot.
func (l *Ledger) GetNumberOfClaimsByIndex(index uint64) (uint64, error) {
	if index >= uint64(len(l.validators)) {
		return 0, errors.Wrapf(ErrUnknownValidator, "index %d", index)
	}
	return l.claims[index], nil
}
