package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mmdatafocus/notas_backend/config"
	"github.com/mmdatafocus/notas_backend/models"
	"github.com/mmdatafocus/notas_backend/utils"
)

// Seeds the demo dataset (areas, users and invoices with their
// inconsistencies) into an empty database. Safe to re-run: seeding is
// skipped when areas already exist unless -force is given.
func main() {
	force := flag.Bool("force", false, "seed even if areas already exist")
	flag.Parse()

	ctx := context.Background()
	// Explicit DB connect (config no longer connects DB in init()).
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil)")
		os.Exit(1)
	}

	models.MigrateTable()

	ctx = utils.SetUsernameInContext(ctx, "SeedDemo")
	ctx = utils.SetUserIdInContext(ctx, 0)

	if *force {
		if err := db.WithContext(ctx).Exec("DELETE FROM areas").Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to clear areas: %v\n", err)
			os.Exit(1)
		}
	}

	if err := models.SeedDemoData(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "seeding failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("demo data seeded")
}
