package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"wasfa/internal/audit"
	"wasfa/internal/config"
	"wasfa/internal/db"
)

func main() {
	apply := flag.Bool("apply", false, "persist corrections instead of reporting only")
	autoMatch := flag.Bool("auto-match", false, "accept top candidates scoring at or above the threshold")
	threshold := flag.Int("threshold", audit.DefaultAutoMatchThreshold, "minimum score for an automatic match")
	verbose := flag.Bool("v", false, "print per-line suggestions and index collisions")
	flag.Parse()

	os.Exit(run(context.Background(), audit.Options{
		Apply:     *apply,
		AutoMatch: *autoMatch,
		Threshold: *threshold,
	}, *verbose))
}

// run performs one reconciliation pass and maps the report onto the process
// exit status: 0 when the store is clean, 1 when issues remain, 2 when the
// command could not start at all.
func run(ctx context.Context, opts audit.Options, verbose bool) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "audit failed: load config: %v\n", err)
		return 2
	}
	if opts.ChunkSize == 0 {
		opts.ChunkSize = cfg.Audit.ChunkSize
	}

	database, err := db.Configure(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audit failed: open database: %v\n", err)
		return 2
	}

	report, err := audit.New(database).Run(ctx, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audit failed: %v\n", err)
		return 2
	}

	mode := "dry-run"
	if opts.Apply {
		mode = "apply"
	}
	fmt.Fprintf(os.Stdout, "Audit (%s): checked=%d orphans_cleared=%d flags_fixed=%d unmatched=%d auto_matched=%d empty_recipes=%d errors=%d\n",
		mode, report.LinksChecked, report.OrphansCleared, report.FlagsFixed,
		report.UnmatchedLines, report.AutoMatched, len(report.EmptyRecipes), len(report.ChunkErrors))

	if verbose {
		for _, collision := range report.Collisions {
			fmt.Fprintf(os.Stdout, "index collision: key=%q kind=%s kept=%d lost=%d\n",
				collision.Key, collision.Kind, collision.KeptID, collision.LosingID)
		}
		for _, suggestion := range report.Suggestions {
			fmt.Fprintf(os.Stdout, "unmatched %q (link %d):\n", suggestion.RawName, suggestion.LinkID)
			for _, candidate := range suggestion.Candidates {
				kind := "ingredient"
				if candidate.IsSpice {
					kind = "spice"
				}
				fmt.Fprintf(os.Stdout, "  %3d  %s (%s %d)\n", candidate.Score, candidate.Name, kind, candidate.ID)
			}
		}
	}

	for _, name := range report.EmptyRecipes {
		fmt.Fprintf(os.Stderr, "recipe without ingredient lines: %s\n", name)
	}
	for _, chunkErr := range report.ChunkErrors {
		fmt.Fprintf(os.Stderr, "chunk failed: %v\n", chunkErr)
	}

	if !report.Clean() {
		return 1
	}
	return 0
}
