// Command plan computes a business plan from a YAML or JSON assumptions file.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Simplici0/bizcal/internal/config"
	"github.com/Simplici0/bizcal/internal/planner"
	"github.com/Simplici0/bizcal/internal/report"
	"github.com/Simplici0/bizcal/internal/seed"
)

func init() {
	// Money fields are decimals; encode them as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run exits 0 on success, 1 when the assumptions are rejected and 2 on usage errors.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	cmd := flag.NewFlagSet("plan", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		file       string
		preset     string
		mode       string
		dailyBasis string
		format     string
	)

	cmd.StringVar(&file, "file", "", "Path to a YAML or JSON assumptions file, - for stdin")
	cmd.StringVar(&preset, "preset", "", "Use a built-in preset instead of a file")
	cmd.StringVar(&mode, "mode", string(cfg.DefaultMode), "Projection mode: goal, capacity or volume")
	cmd.StringVar(&dailyBasis, "daily-basis", fmt.Sprint(int(cfg.DailyBasis)), "Days per year for the daily row: 260 or 365")
	cmd.StringVar(&format, "format", "text", "Output format: text, json or brief")

	if err := cmd.Parse(args); err != nil {
		return 2
	}

	if (file == "") == (preset == "") {
		_, _ = fmt.Fprintln(stderr, "Error: exactly one of -file or -preset is required")
		return 2
	}

	m, err := planner.ParseMode(mode)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	basis, err := planner.ParseDailyBasis(dailyBasis)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	var doc planner.AssumptionsDoc
	if preset != "" {
		doc, err = starter(preset)
	} else {
		doc, err = readAssumptions(file, stdin)
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	a, err := doc.Assumptions()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: invalid assumptions: %v\n", err)
		return 1
	}

	plan := planner.Compute(a, m, planner.Options{DailyBasis: basis})

	switch format {
	case "text":
		_, _ = fmt.Fprint(stdout, report.Text(plan))
	case "json":
		err = writeJSON(stdout, plan)
	case "brief":
		err = writeJSON(stdout, report.Brief(plan))
	default:
		_, _ = fmt.Fprintf(stderr, "Error: unknown format %q\n", format)
		return 2
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: write output: %v\n", err)
		return 2
	}
	return 0
}

func starter(slug string) (planner.AssumptionsDoc, error) {
	for _, p := range seed.Starters() {
		if p.Slug == slug {
			return p.Assumptions, nil
		}
	}
	return planner.AssumptionsDoc{}, fmt.Errorf("unknown preset %q", slug)
}

// readAssumptions decodes a document with yaml.v3, which also accepts JSON.
func readAssumptions(path string, stdin io.Reader) (planner.AssumptionsDoc, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return planner.AssumptionsDoc{}, fmt.Errorf("open assumptions: %w", err)
		}
		defer f.Close()
		r = f
	}

	var doc planner.AssumptionsDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return doc, errors.New("assumptions file is empty")
		}
		return doc, fmt.Errorf("decode assumptions: %w", err)
	}
	return doc, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
