package feemanager

import (
	"math/big"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	claimsRedeemedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fee_manager_claims_redeemed_total",
			Help: "Number of validator claims converted into fee payouts",
		},
	)
	redemptionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fee_manager_redemptions_total",
			Help: "Number of successful ClaimFee calls",
		},
	)
	reentrantCallsDeniedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fee_manager_reentrant_calls_denied_total",
			Help: "Times a nested ClaimFee was rejected by the reentrancy guard",
		},
	)
	fundsDepositedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fee_manager_funds_deposited_total",
			Help: "Token base units deposited into the escrow via Fund",
		},
	)
)

func bigToFloat(amount *big.Int) float64 {
	f, _ := new(big.Float).SetInt(amount).Float64()
	return f
}
