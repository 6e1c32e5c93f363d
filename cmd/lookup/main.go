// Command lookup runs a single country lookup from the terminal.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"country-explorer/internal/app"
	"country-explorer/internal/config"
	"country-explorer/internal/console"
	"country-explorer/internal/countries"
	"country-explorer/internal/lookup"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(stderr)
	query := fs.String("q", "", "country name to look up")
	region := fs.String("region", "", "pick a random country of a region ("+strings.Join(countries.Regions, ", ")+")")
	random := fs.Bool("random", false, "pick a random country")
	configPath := fs.String("config", "config/config.yaml", "path to the yaml configuration file")
	asJSON := fs.Bool("json", false, "print the result as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *query == "" && fs.NArg() > 0 {
		*query = strings.Join(fs.Args(), " ")
	}

	kind, payload, err := selectLookup(*query, *region, *random)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fs.Usage()
		return 2
	}

	cfg := &config.Config{}
	if err := cfg.Initialize(*configPath); err != nil {
		cfg.LogOnDebug("using default configuration:", err)
	}
	a, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer a.Close()

	if *asJSON {
		collector := &lookup.Collector{}
		lookup.NewController(a.Repository, collector).StartLookup(ctx, kind, payload)
		result := collector.Result()
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		if result.Error != "" {
			return 1
		}
		return 0
	}

	renderer := console.NewRenderer(stdout)
	lookup.NewController(a.Repository, renderer).StartLookup(ctx, kind, payload)
	if renderer.Failed() {
		return 1
	}
	return 0
}

func selectLookup(query, region string, random bool) (lookup.Kind, string, error) {
	selected := 0
	for _, set := range []bool{strings.TrimSpace(query) != "", region != "", random} {
		if set {
			selected++
		}
	}
	if selected != 1 {
		return 0, "", fmt.Errorf("exactly one of -q, -region or -random is required")
	}
	switch {
	case region != "":
		if !countries.IsRegion(region) {
			return 0, "", fmt.Errorf("unknown region %q", region)
		}
		return lookup.ByRegion, strings.ToLower(region), nil
	case random:
		return lookup.Random, "", nil
	default:
		return lookup.ByName, query, nil
	}
}
