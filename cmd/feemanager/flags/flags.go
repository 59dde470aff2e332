// Package flags contains all configuration runtime flags for the fee
// manager redemption simulator.
package flags

import "github.com/urfave/cli/v2"

var (
	// ValidatorsFlag defines how many validators the simulator registers.
	ValidatorsFlag = &cli.IntFlag{
		Name:  "validators",
		Usage: "Number of validators to register, up to the counter capacity.",
		Value: 4,
	}
	// ClaimsPerValidatorFlag defines how many claims each validator submits.
	ClaimsPerValidatorFlag = &cli.Uint64Flag{
		Name:  "claims-per-validator",
		Usage: "Number of claims recorded on the ledger for each validator.",
		Value: 5,
	}
	// FeePerClaimFlag defines the redemption rate.
	FeePerClaimFlag = &cli.Int64Flag{
		Name:  "fee-per-claim",
		Usage: "Fee rate in token base units per claim.",
		Value: 10,
	}
	// FundingFlag defines the escrow top-up.
	FundingFlag = &cli.Int64Flag{
		Name:  "funding",
		Usage: "Escrow top-up in token base units. Zero funds exactly the amount owed.",
	}
	// VerbosityFlag defines the logging level.
	VerbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity (trace, debug, info, warn, error, fatal, panic).",
		Value: "info",
	}
	// LogFormatFlag specifies the log output encoding.
	LogFormatFlag = &cli.StringFlag{
		Name:  "log-format",
		Usage: "Specify log formatting. Supports: text, json, fluentd.",
		Value: "text",
	}
	// ConfigFileFlag points to a yaml file with flag values.
	ConfigFileFlag = &cli.StringFlag{
		Name:  "config-file",
		Usage: "The filepath to a yaml file with flag values.",
	}
)
