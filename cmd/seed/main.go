// Command seed loads the embedded reference regions into Postgres and
// optionally inserts the sample news items so a fresh environment has
// content to render.
//
// Usage:
//
//	go run ./cmd/seed [-with-samples]
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"

	"github.com/aurorahq/akfeed/internal/config"
	"github.com/aurorahq/akfeed/internal/refdata"
	"github.com/aurorahq/akfeed/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	withSamples := flag.Bool("with-samples", false, "also insert the fallback sample news items")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	data, err := refdata.Load()
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL())
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	if err := store.RunMigrations(db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	// Metrics are not useful in a one-shot seeder.
	pg := store.NewPgStore(db, nil)

	for i := range data.Regions {
		region := data.Regions[i]
		if err := pg.UpsertRegion(ctx, &region); err != nil {
			return fmt.Errorf("seeding region %s: %w", region.Slug, err)
		}
	}
	fmt.Printf("seeded %d regions\n", len(data.Regions))

	if !*withSamples {
		return nil
	}

	var inserted, skipped int
	for category, items := range data.SampleNews {
		for i := range items {
			item := items[i]
			if item.Category == "" {
				item.Category = category
			}
			if _, err := pg.GetNewsItem(ctx, item.ID); err == nil {
				skipped++
				continue
			}
			if err := pg.InsertNewsItem(ctx, &item); err != nil {
				return fmt.Errorf("seeding news item %s: %w", item.ID, err)
			}
			inserted++
		}
	}
	fmt.Printf("seeded %d sample news items (%d already present)\n", inserted, skipped)

	return nil
}
