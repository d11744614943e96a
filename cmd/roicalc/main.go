// Command roicalc runs the ROI engine over an input bundle file and prints
// the portfolio result as JSON. Bundles may be YAML or JSON.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"roi-engine/internal/guard"
	"roi-engine/internal/service/roi"
	"roi-engine/internal/service/scoring"
	"roi-engine/internal/storage"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitBlocked = 2
)

type output struct {
	Results        roi.ROIResults           `json:"results"`
	Prioritization []scoring.Prioritization `json:"prioritization,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("roicalc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inPath := fs.String("in", "-", "bundle file, - for stdin")
	months := fs.Int("months", 0, "time horizon in months, overrides the bundle (12..120)")
	prioritize := fs.Bool("prioritize", false, "include per-process prioritization")
	verbose := fs.Bool("v", false, "debug logging to stderr")
	if err := fs.Parse(args); err != nil {
		return exitFailure
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	bundle, err := readBundle(*inPath, stdin)
	if err != nil {
		log.Error("failed to read bundle", slog.String("error", err.Error()))
		return exitFailure
	}

	horizon := bundle.TimeHorizonMonths
	if *months != 0 {
		horizon = *months
	}

	out, err := calculate(log, bundle, horizon, *prioritize)
	if err != nil {
		log.Error("calculation failed", slog.String("error", err.Error()))
		return exitFailure
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Error("failed to write result", slog.String("error", err.Error()))
		return exitFailure
	}

	if out.Results.Blocked {
		return exitBlocked
	}
	return exitOK
}

func readBundle(path string, stdin io.Reader) (storage.Bundle, error) {
	const op = "roicalc.readBundle"

	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return storage.Bundle{}, fmt.Errorf("%s: %w", op, err)
		}
		defer f.Close()
		r = f
	}

	// JSON is valid YAML, so one decoder covers both formats.
	var b storage.Bundle
	if err := yaml.NewDecoder(r).Decode(&b); err != nil {
		if errors.Is(err, io.EOF) {
			return storage.Bundle{}, fmt.Errorf("%s: empty bundle", op)
		}
		return storage.Bundle{}, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

func calculate(log *slog.Logger, b storage.Bundle, horizon int, prioritize bool) (output, error) {
	const op = "roicalc.calculate"

	cls, decision := guard.New(log).Check(guard.Request{
		OrgID:                b.OrgID,
		ClassificationLoaded: b.CostClassification != nil,
		Classification:       b.CostClassification,
		DataReady:            true,
	})
	if !decision.Allow {
		return output{Results: roi.BlockedResults(b.OrgID, decision.Blockers)}, nil
	}

	res, err := roi.NewCalculator(log).ComputePortfolio(b.Input, cls, roi.PortfolioOptions{
		OrgID:             b.OrgID,
		TimeHorizonMonths: horizon,
	})
	if err != nil {
		return output{}, fmt.Errorf("%s: %w", op, err)
	}

	out := output{Results: res}
	if prioritize {
		out.Prioritization, err = scoring.ForPortfolio(b.Input, res)
		if err != nil {
			return output{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	return out, nil
}
