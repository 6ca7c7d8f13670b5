// Command simulate runs a fleet of simulated students against an in-memory
// catalog. Useful as a smoke check of the whole submit/grade/review flow
// without starting the HTTP server.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/aeroclass/backend/internal/simulation"
)

func main() {
	students := flag.Int("students", 6, "number of simulated students")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := simulation.Run(context.Background(), logger, *students); err != nil {
		logger.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}
