// Command datagen writes a synthetic transactions.csv fixture with known
// embedded cycle, smurfing, and shell-chain patterns, for exercising the
// analyze pipeline without needing a real dataset.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vanshika/muletrace/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		accounts      = flag.Int("accounts", cfg.NumAccounts, "number of background accounts")
		backgroundTx  = flag.Int("background-tx", cfg.NumBackgroundTx, "number of unremarkable background transactions")
		cycles        = flag.Int("cycles", cfg.NumCycles, "number of embedded circular money-flow rings")
		smurfingRings = flag.Int("smurfing-rings", cfg.NumSmurfingRings, "number of embedded fan-in smurfing rings")
		shellChains   = flag.Int("shell-chains", cfg.NumShellChains, "number of embedded layered shell chains")
		seed          = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir     = flag.String("output-dir", "data", "directory to write transactions.csv")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumAccounts:      *accounts,
		NumBackgroundTx:  *backgroundTx,
		NumCycles:        *cycles,
		NumSmurfingRings: *smurfingRings,
		NumShellChains:   *shellChains,
		Seed:             *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen := generator.New(genCfg)
	rows, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	path, err := generator.WriteCSV(rows, *outputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d transactions into %s\n", len(rows), path)
}
