package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wasfa/internal/config"
	"wasfa/internal/db"
	"wasfa/internal/importer"
)

func main() {
	csvPath := "recipes.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	os.Exit(run(context.Background(), csvPath))
}

// run imports recipes and their ingredient lines, resolving each line
// against the food corpus already in the database. Exit status: 0 when every
// recipe landed, 1 when some chunks failed, 2 when the command could not
// start at all.
func run(ctx context.Context, csvPath string) int {
	if strings.TrimSpace(csvPath) == "" {
		fmt.Fprintln(os.Stderr, "import failed: csv path must not be empty")
		return 2
	}

	if _, err := os.Stat(csvPath); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: locate csv: %v\n", err)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "import failed: load config: %v\n", err)
		return 2
	}

	database, err := db.Configure(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "import failed: open database: %v\n", err)
		return 2
	}

	rows, err := importer.ReadCSV(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "import failed: read csv: %v\n", err)
		return 2
	}

	summary, err := importer.ImportRecipes(ctx, database, rows, cfg.Audit.ChunkSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		return 2
	}

	fmt.Fprintf(os.Stdout, "Imported recipes from %s: %s\n", filepath.Base(csvPath), summary)
	for _, failure := range summary.Failures {
		fmt.Fprintf(os.Stderr, "chunk failed: %v\n", failure)
	}
	if len(summary.Failures) > 0 {
		return 1
	}
	return 0
}
