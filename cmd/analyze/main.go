// Command analyze runs the forensic pipeline over a local transaction file
// and prints the resulting report as JSON, bypassing the HTTP transport.
// Useful for ad hoc investigation and for smoke-testing a dataset before
// pushing it through the service.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/vanshika/muletrace/internal/config"
	"github.com/vanshika/muletrace/internal/engine"
	"github.com/vanshika/muletrace/internal/logging"
)

func main() {
	var (
		filePath = flag.String("file", "", "Path to a CSV, TSV, or Excel transaction file")
		timeout  = flag.Duration("timeout", 60*time.Second, "Analysis timeout")
	)
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: analyze -file transactions.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Logging).With("component", "analyze-cli")

	data, err := os.ReadFile(*filePath)
	if err != nil {
		logger.Error("failed to read input file", "error", err, "path", *filePath)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	eng := engine.New(cfg.Analysis, logger)
	report, err := eng.Analyze(ctx, uuid.NewString(), *filePath, data)
	if err != nil {
		logger.Error("analysis failed", "error", err)
		os.Exit(1)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		logger.Error("failed to encode report", "error", err)
		os.Exit(1)
	}
}
