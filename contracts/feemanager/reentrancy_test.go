package feemanager_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rollups-go/feemanager/contracts/feemanager"
	"github.com/rollups-go/feemanager/testing/assert"
	"github.com/rollups-go/feemanager/testing/require"
)

// reentrantToken wraps a token so that its first push transfer synchronously
// calls back into the manager, the way a malicious token contract would.
type reentrantToken struct {
	feemanager.Token
	manager    *feemanager.FeeManager
	reenterFor common.Address
	fired      bool
	nestedErr  error
}

func (r *reentrantToken) Transfer(to common.Address, amount *big.Int) (bool, error) {
	if !r.fired {
		r.fired = true
		_, r.nestedErr = r.manager.ClaimFee(r, r.reenterFor)
	}
	return r.Token.Transfer(to, amount)
}

func TestClaimFee_ReentrantCallSameValidator(t *testing.T) {
	s := newTestSetup(t, 10)
	s.fund(t, 100)
	validator := s.registerWithClaims(t, 0, 5)

	evil := &reentrantToken{Token: s.escrow, manager: s.manager, reenterFor: validator}
	payout, err := s.manager.ClaimFee(evil, validator)
	require.NoError(t, err)

	// The nested call is denied and the outer call pays the delta once.
	require.NotNil(t, evil.nestedErr)
	assert.ErrorContains(t, "reentrant call denied", evil.nestedErr)
	assert.Equal(t, int64(50), payout.Int64())
	assert.Equal(t, int64(50), s.tok.BalanceOf(validator).Int64())

	redeemed, err := s.manager.NumClaimsRedeemed(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), redeemed)
}

func TestClaimFee_ReentrantCallOtherValidator(t *testing.T) {
	s := newTestSetup(t, 10)
	s.fund(t, 100)
	first := s.registerWithClaims(t, 0, 5)
	second := s.registerWithClaims(t, 1, 2)

	evil := &reentrantToken{Token: s.escrow, manager: s.manager, reenterFor: second}
	payout, err := s.manager.ClaimFee(evil, first)
	require.NoError(t, err)

	// The guard rejects nested redemption even for an unrelated validator.
	assert.ErrorContains(t, "reentrant call denied", evil.nestedErr)
	assert.Equal(t, int64(50), payout.Int64())
	assert.Equal(t, int64(0), s.tok.BalanceOf(second).Int64())

	// With the outer call finished, the second validator redeems normally.
	payout, err = s.manager.ClaimFee(s.escrow, second)
	require.NoError(t, err)
	assert.Equal(t, int64(20), payout.Int64())
}

func TestClaimFee_GuardReleasedAfterFailure(t *testing.T) {
	s := newTestSetup(t, 10)
	validator := s.registerWithClaims(t, 0, 5)

	// Underfunded escrow, the claim fails.
	_, err := s.manager.ClaimFee(s.escrow, validator)
	assert.ErrorContains(t, "token transfer failed", err)

	// The guard must not stay stuck set.
	s.fund(t, 50)
	payout, err := s.manager.ClaimFee(s.escrow, validator)
	require.NoError(t, err)
	assert.Equal(t, int64(50), payout.Int64())
}
