package feemanager

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
)

// FundsDeposited is sent on the deposit feed after a successful Fund.
type FundsDeposited struct {
	Token  common.Address
	Amount *big.Int
}

// FeeClaimed is sent on the claim feed after a successful ClaimFee.
type FeeClaimed struct {
	Token     common.Address
	Validator common.Address
	Amount    *big.Int
}

// SubscribeFundsDeposited registers a channel to receive FundsDeposited
// notifications.
func (fm *FeeManager) SubscribeFundsDeposited(ch chan<- *FundsDeposited) event.Subscription {
	return fm.depositFeed.Subscribe(ch)
}

// SubscribeFeeClaimed registers a channel to receive FeeClaimed
// notifications.
func (fm *FeeManager) SubscribeFeeClaimed(ch chan<- *FeeClaimed) event.Subscription {
	return fm.claimFeed.Subscribe(ch)
}
