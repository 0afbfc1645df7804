package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/araddon/dateparse"

	"github.com/jvolf/kifu/internal/simulation"
	"github.com/jvolf/kifu/pkg/logger"

	service "github.com/jvolf/kifu/internal/app"
)

// Default simulation run parameters.
const (
	defaultPlayers = 16
	defaultMonths  = 18
	defaultSeed    = 42
	defaultTimeout = 5 * time.Minute
)

func main() {
	var (
		players  = flag.Int("players", defaultPlayers, "Number of players in the generated league")
		months   = flag.Int("months", defaultMonths, "League duration in months")
		seed     = flag.Int64("seed", defaultSeed, "Random seed for reproducible leagues")
		league   = flag.String("league", "sim", "League name")
		start    = flag.String("start", "", "League start date (any common format, default 2024-01-01)")
		logLevel = flag.String("log", "warn", "Log level: debug, info, warn, error")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.SetLevelString(*logLevel); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	opts := []simulation.Option{
		simulation.WithPlayers(*players),
		simulation.WithMonths(*months),
		simulation.WithSeed(*seed),
		simulation.WithLeague(*league),
	}
	if *start != "" {
		t, err := dateparse.ParseAny(*start)
		if err != nil {
			os.Stderr.WriteString("invalid start date: " + err.Error() + "\n")
			os.Exit(1)
		}
		opts = append(opts, simulation.WithStart(t.UTC()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	report, err := simulation.Run(ctx, simulation.NewConfig(opts...),
		service.WithLogger(logger.Named("engine")))
	if err != nil {
		os.Stderr.WriteString("simulation failed: " + err.Error() + "\n")
		os.Exit(1)
	}

	fmt.Printf("league %q: %d players, %d tournaments, %s\n",
		*league, len(report.League.Players), len(report.League.Tournaments), report.Elapsed.Round(time.Millisecond))
	for _, check := range report.Checks {
		status := "PASS"
		if !check.Passed {
			status = "FAIL"
		}
		fmt.Printf("  [%s] %-20s %s\n", status, check.Name, check.Detail)
	}

	if !report.Passed() {
		os.Exit(1)
	}
}
