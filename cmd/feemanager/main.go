// Package main implements a redemption simulator for the fee manager. It
// spins up an in-memory validator ledger and fungible token, registers
// validators, records their claims, funds the escrow and redeems every
// validator's fees, logging each payout.
package main

import (
	"fmt"
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common"
	joonix "github.com/joonix/log"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/rollups-go/feemanager/cmd/feemanager/flags"
	"github.com/rollups-go/feemanager/contracts/feemanager"
	"github.com/rollups-go/feemanager/contracts/ledger"
	"github.com/rollups-go/feemanager/contracts/token"
)

var log = logrus.WithField("prefix", "main")

var (
	ownerAddr   = common.HexToAddress("0x0000000000000000000000000000000000000001")
	managerAddr = common.HexToAddress("0x0000000000000000000000000000000000000002")
	tokenAddr   = common.HexToAddress("0x0000000000000000000000000000000000000003")
)

var appFlags = []cli.Flag{
	flags.ValidatorsFlag,
	flags.ClaimsPerValidatorFlag,
	flags.FeePerClaimFlag,
	flags.FundingFlag,
	flags.VerbosityFlag,
	flags.LogFormatFlag,
	flags.ConfigFileFlag,
}

func main() {
	app := cli.App{}
	app.Name = "feemanager"
	app.Usage = "simulates validator claim redemption against an in-memory ledger and token"
	app.Flags = appFlags
	app.Action = run
	app.Before = func(ctx *cli.Context) error {
		// Load any flags from file, if specified.
		if ctx.IsSet(flags.ConfigFileFlag.Name) {
			if err := altsrc.InitInputSourceWithContext(
				appFlags,
				altsrc.NewYamlSourceFromFlagFunc(flags.ConfigFileFlag.Name))(ctx); err != nil {
				return err
			}
		}
		switch format := ctx.String(flags.LogFormatFlag.Name); format {
		case "text":
			formatter := new(prefixed.TextFormatter)
			formatter.TimestampFormat = "2006-01-02 15:04:05"
			formatter.FullTimestamp = true
			logrus.SetFormatter(formatter)
		case "fluentd":
			logrus.SetFormatter(joonix.NewFormatter())
		case "json":
			logrus.SetFormatter(&logrus.JSONFormatter{})
		default:
			return fmt.Errorf("unknown log format %q", format)
		}
		level, err := logrus.ParseLevel(ctx.String(flags.VerbosityFlag.Name))
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
		return nil
	}
	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("Simulation failed")
	}
}

func run(ctx *cli.Context) error {
	registry := ledger.New()
	manager, err := feemanager.New(&feemanager.Config{
		SelfAddress: managerAddr,
		Owner:       ownerAddr,
		Ledger:      registry,
		FeePerClaim: big.NewInt(ctx.Int64(flags.FeePerClaimFlag.Name)),
	})
	if err != nil {
		return err
	}
	tok := token.New(tokenAddr)
	escrow := tok.Bind(manager.Address())

	validatorCount := ctx.Int(flags.ValidatorsFlag.Name)
	claimsPerValidator := ctx.Uint64(flags.ClaimsPerValidatorFlag.Name)
	validators := make([]common.Address, 0, validatorCount)
	for i := 0; i < validatorCount; i++ {
		validator := common.BigToAddress(big.NewInt(int64(0x1000 + i)))
		if _, err := registry.Register(validator); err != nil {
			return errors.Wrap(err, "could not register validator")
		}
		for c := uint64(0); c < claimsPerValidator; c++ {
			if _, err := registry.RecordClaim(validator); err != nil {
				return errors.Wrap(err, "could not record claim")
			}
		}
		validators = append(validators, validator)
	}
	log.WithFields(logrus.Fields{
		"validators":         validatorCount,
		"claimsPerValidator": claimsPerValidator,
	}).Info("Recorded claims on the ledger")

	funding := big.NewInt(ctx.Int64(flags.FundingFlag.Name))
	if funding.Sign() == 0 {
		claims := new(big.Int).SetUint64(claimsPerValidator * uint64(validatorCount))
		funding = new(big.Int).Mul(claims, manager.FeePerClaim())
	}
	if err := tok.Mint(ownerAddr, funding); err != nil {
		return errors.Wrap(err, "could not mint funding")
	}
	if err := tok.Bind(ownerAddr).Approve(manager.Address(), funding); err != nil {
		return errors.Wrap(err, "could not approve escrow pull")
	}
	if err := manager.Fund(ownerAddr, escrow, funding); err != nil {
		return errors.Wrap(err, "could not fund escrow")
	}

	for _, validator := range validators {
		payout, err := manager.ClaimFee(escrow, validator)
		if err != nil {
			return errors.Wrapf(err, "could not redeem fees for %#x", validator)
		}
		log.WithFields(logrus.Fields{
			"validator": validator,
			"payout":    payout,
			"balance":   tok.BalanceOf(validator),
		}).Info("Paid out validator fees")
	}

	log.WithField("escrow", tok.BalanceOf(manager.Address())).Info("Simulation complete")
	return nil
}
