package claimsmask_test

import (
	"testing"

	"github.com/rollups-go/feemanager/contracts/claimsmask"
	"github.com/rollups-go/feemanager/testing/assert"
	"github.com/rollups-go/feemanager/testing/require"
)

func TestNew_AllCountersZeroed(t *testing.T) {
	mask := claimsmask.New()
	for i := uint64(0); i < claimsmask.Slots; i++ {
		count, err := mask.NumClaimsRedeemed(i)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), count, "slot %d", i)
	}
}

func TestIncreaseNumClaimed(t *testing.T) {
	mask := claimsmask.New()

	count, err := mask.IncreaseNumClaimed(3, 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), count)

	count, err = mask.IncreaseNumClaimed(3, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), count)

	count, err = mask.NumClaimsRedeemed(3)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), count)
}

func TestIncreaseNumClaimed_ZeroAmount(t *testing.T) {
	mask := claimsmask.New()
	count, err := mask.IncreaseNumClaimed(0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestIncreaseNumClaimed_SlotsAreIndependent(t *testing.T) {
	mask := claimsmask.New()

	// Saturate slot 0 and nudge its neighbors. The packed word must not
	// bleed bits across field boundaries.
	_, err := mask.IncreaseNumClaimed(0, 1<<claimsmask.CounterBits-1)
	require.NoError(t, err)
	_, err = mask.IncreaseNumClaimed(1, 1)
	require.NoError(t, err)
	_, err = mask.IncreaseNumClaimed(claimsmask.Slots-1, 42)
	require.NoError(t, err)

	count, err := mask.NumClaimsRedeemed(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<claimsmask.CounterBits-1), count)
	count, err = mask.NumClaimsRedeemed(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
	count, err = mask.NumClaimsRedeemed(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
	count, err = mask.NumClaimsRedeemed(claimsmask.Slots - 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), count)
}

func TestIncreaseNumClaimed_Overflow(t *testing.T) {
	mask := claimsmask.New()
	max := uint64(1<<claimsmask.CounterBits - 1)

	_, err := mask.IncreaseNumClaimed(2, max)
	require.NoError(t, err)

	_, err = mask.IncreaseNumClaimed(2, 1)
	assert.ErrorContains(t, "claim counter overflow", err)

	// A failed increment must not move the counter.
	count, err := mask.NumClaimsRedeemed(2)
	require.NoError(t, err)
	assert.Equal(t, max, count)

	_, err = mask.IncreaseNumClaimed(4, max+1)
	assert.ErrorContains(t, "claim counter overflow", err)
}

func TestIndexOutOfRange(t *testing.T) {
	mask := claimsmask.New()

	_, err := mask.NumClaimsRedeemed(claimsmask.Slots)
	assert.ErrorContains(t, "slot index out of range", err)

	_, err = mask.IncreaseNumClaimed(claimsmask.Slots, 1)
	assert.ErrorContains(t, "slot index out of range", err)
}

func TestMaskCopyIsSnapshot(t *testing.T) {
	mask := claimsmask.New()
	_, err := mask.IncreaseNumClaimed(1, 3)
	require.NoError(t, err)

	snapshot := mask
	_, err = mask.IncreaseNumClaimed(1, 4)
	require.NoError(t, err)

	count, err := snapshot.NumClaimsRedeemed(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
	count, err = mask.NumClaimsRedeemed(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), count)
}
