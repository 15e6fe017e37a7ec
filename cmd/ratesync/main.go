package main

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"ratepilot/internal/adapters/observability"
	"ratepilot/internal/adapters/rates"
	"ratepilot/internal/shared"
	mysqlrepo "ratepilot/internal/storage/mysql"
)

// ratesync refreshes each room's competitor price snapshot from the rate
// shopper, with a bounded worker fan-out. Rooms the provider doesn't know
// are logged and skipped.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.RatesBase).
		Int("workers", cfg.Workers).
		Msg("ratesync starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	client, err := rates.New(cfg.RatesBase, cfg.RatesKey, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize rates client")
	}

	rooms, _, err := repo.LoadRooms(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load rooms failed")
	}

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, room := range rooms {
		room := room

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			prices, err := client.GetRates(ctx, room.ID)
			if err != nil {
				if errors.Is(err, rates.ErrNotFound) {
					log.Warn().Str("id", room.ID).Msg("no competitor rates for room")
					return
				}
				log.Warn().Str("id", room.ID).Err(err).Msg("rate fetch failed")
				return
			}
			if err := repo.UpdateCompetitorPrices(ctx, room.ID, prices); err != nil {
				log.Warn().Str("id", room.ID).Err(err).Msg("rate update failed")
				return
			}
			log.Info().Str("id", room.ID).Int("rates", len(prices)).Msg("rates updated")
		}()
	}

	wg.Wait()
	log.Info().Msg("ratesync completed")
}
