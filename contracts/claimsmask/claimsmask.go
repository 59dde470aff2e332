// Package claimsmask implements a fixed-capacity store of per-validator
// redeemed-claim counters. All counters are packed into a single 256-bit
// word, which caps both the number of validator slots and the magnitude of
// each counter. The cap is the point: reads and writes touch exactly one
// storage word no matter how many slots are in use.
package claimsmask

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

const (
	// Slots is the number of validator slots a mask can hold.
	Slots = 8
	// CounterBits is the width of each per-slot counter.
	CounterBits = 32

	// maxCount is the largest value a single counter can hold.
	maxCount = 1<<CounterBits - 1
)

var (
	// ErrIndexOutOfRange is returned when a slot index is at or beyond Slots.
	ErrIndexOutOfRange = errors.New("slot index out of range")
	// ErrCounterOverflow is returned when an increment would not fit in the
	// counter's fixed width.
	ErrCounterOverflow = errors.New("claim counter overflow")
)

// Mask holds one redeemed-claim counter per validator slot. The zero value
// is a mask with every counter at zero. Mask is a plain value; copying it
// snapshots every counter.
type Mask struct {
	word uint256.Int
}

// New returns a mask with all counters zeroed.
func New() Mask {
	return Mask{}
}

// NumClaimsRedeemed returns the current redeemed-claim count for a slot.
func (m *Mask) NumClaimsRedeemed(index uint64) (uint64, error) {
	if index >= Slots {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "index %d, capacity %d", index, Slots)
	}
	return m.counter(index), nil
}

// IncreaseNumClaimed adds amount to a slot's counter and returns the updated
// count. Counters only ever grow; there is no decrement. The mask is left
// untouched on every error path.
func (m *Mask) IncreaseNumClaimed(index, amount uint64) (uint64, error) {
	if index >= Slots {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "index %d, capacity %d", index, Slots)
	}
	current := m.counter(index)
	if amount > maxCount || current+amount > maxCount {
		return 0, errors.Wrapf(ErrCounterOverflow, "count %d + %d exceeds %d bits", current, amount, CounterBits)
	}
	updated := current + amount
	m.setCounter(index, updated)
	return updated, nil
}

func (m *Mask) counter(index uint64) uint64 {
	shifted := new(uint256.Int).Rsh(&m.word, uint(index)*CounterBits)
	return shifted.Uint64() & maxCount
}

func (m *Mask) setCounter(index, value uint64) {
	shift := uint(index) * CounterBits
	field := new(uint256.Int).Lsh(uint256.NewInt(maxCount), shift)
	m.word.And(&m.word, field.Not(field))
	m.word.Or(&m.word, new(uint256.Int).Lsh(uint256.NewInt(value), shift))
}
