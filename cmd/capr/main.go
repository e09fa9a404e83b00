package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

// main is the entry point for the capr command line tool. The app itself is
// built by application, so tests can run it without touching os.Args or
// os.Exit (run exits through log.Fatal on error).
func main() {
	run(os.Args)
}

// run builds the app and executes it, logging and exiting non-zero on
// failure.
func run(args []string) {
	app := application()
	if err := app.Run(args); err != nil {
		log.Fatal(err)
	}
}

// application defines the capr CLI: a single-action command taking the
// classic <input> <output> <beam_size> positional triple plus the flags
// that grew out of it.
func application() *cli.App {
	return &cli.App{
		Name:      "capr",
		Usage:     "Compute per-position RNA structural context profiles.",
		ArgsUsage: "<input.fasta> <output> <beam_size>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "energy",
				Aliases: []string{"e"},
				Value: "turner2004",
				Usage: "Energy parameter set: turner2004 or turner1999.",
			},
			&cli.BoolFlag{
				Name:  "legacy-label",
				Usage: "Emit \"Multibranch\" instead of \"Multiloop\" as the fifth track's header.",
			},
			&cli.BoolFlag{
				Name:  "fast-lse",
				Usage: "Use the tabulated log-sum-exp kernel instead of the legacy log1p/exp form.",
			},
			&cli.Float64Flag{
				Name:  "warn-eps",
				Value: 1e-3,
				Usage: "Per-column drift tolerance before a warning is logged.",
			},
			&cli.BoolFlag{
				Name:  "no-normalize",
				Usage: "Skip per-column renormalisation; emit raw DP mass.",
			},
			&cli.BoolFlag{
				Name:  "hash",
				Usage: "Append a blake3 correlation hash to each record's header.",
			},
		},
		Action: runCommand,
	}
}
