package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"storefront-service/internal/config"
	"storefront-service/internal/database"
	"storefront-service/internal/logger"
)

func main() {
	demo := flag.Bool("demo", false, "insert the demo catalog after migrating")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.LogLevel, cfg.LogPretty)
	ctx := context.Background()

	conn, err := database.Connect(ctx, cfg.DatabaseURL, cfg.ConnectTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	defer conn.Close(ctx)

	applied, err := database.Migrate(ctx, conn, database.Migrations)
	if err != nil {
		log.Fatal().Err(err).Strs("applied", applied).Msg("migrations failed")
	}
	log.Info().Strs("applied", applied).Msg("migrations done")

	var now time.Time
	if err := conn.QueryRow(ctx, "SELECT NOW()").Scan(&now); err != nil {
		log.Fatal().Err(err).Msg("query failed")
	}
	fmt.Println("Current database time:", now)

	if !*demo {
		return
	}

	inserted, err := database.Seed(ctx, conn, database.DemoCatalog)
	if err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	fmt.Printf("Demo catalog: %d new products (%d categories ensured)\n", inserted, len(database.DemoCatalog.Categories))
}
