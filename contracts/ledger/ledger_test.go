package ledger_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rollups-go/feemanager/contracts/ledger"
	"github.com/rollups-go/feemanager/testing/assert"
	"github.com/rollups-go/feemanager/testing/require"
)

func addr(seed int64) common.Address {
	return common.BigToAddress(big.NewInt(seed))
}

func TestRegister_AssignsSlotsInOrder(t *testing.T) {
	l := ledger.New()
	for i := int64(0); i < ledger.Capacity; i++ {
		index, err := l.Register(addr(i + 1))
		require.NoError(t, err)
		assert.Equal(t, uint64(i), index)
	}
}

func TestRegister_DuplicateKeepsSlot(t *testing.T) {
	l := ledger.New()
	index, err := l.Register(addr(1))
	require.NoError(t, err)
	again, err := l.Register(addr(1))
	require.NoError(t, err)
	assert.Equal(t, index, again)
}

func TestRegister_Full(t *testing.T) {
	l := ledger.New()
	for i := int64(0); i < ledger.Capacity; i++ {
		_, err := l.Register(addr(i + 1))
		require.NoError(t, err)
	}
	_, err := l.Register(addr(100))
	assert.ErrorContains(t, "at capacity", err)
}

func TestGetValidatorIndex_Unknown(t *testing.T) {
	l := ledger.New()
	_, err := l.GetValidatorIndex(addr(42))
	assert.ErrorContains(t, "not a known validator", err)
}

func TestRecordClaim_CountsMonotonically(t *testing.T) {
	l := ledger.New()
	validator := addr(1)
	index, err := l.Register(validator)
	require.NoError(t, err)

	for want := uint64(1); want <= 5; want++ {
		total, err := l.RecordClaim(validator)
		require.NoError(t, err)
		assert.Equal(t, want, total)
	}

	total, err := l.GetNumberOfClaimsByIndex(index)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), total)
}

func TestRecordClaim_Unknown(t *testing.T) {
	l := ledger.New()
	_, err := l.RecordClaim(addr(42))
	assert.ErrorContains(t, "not a known validator", err)
}

func TestGetNumberOfClaimsByIndex_OutOfRange(t *testing.T) {
	l := ledger.New()
	_, err := l.GetNumberOfClaimsByIndex(0)
	assert.ErrorContains(t, "not a known validator", err)
}
