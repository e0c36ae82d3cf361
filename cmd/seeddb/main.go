package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	config "github.com/avvvet/pokecard-services/configs"
	catalogcfg "github.com/avvvet/pokecard-services/internal/catalogsvc/config"
	"github.com/avvvet/pokecard-services/internal/catalogsvc/db"
	"github.com/avvvet/pokecard-services/internal/seed"
	"github.com/avvvet/pokecard-services/internal/tcgapi"
)

var (
	dbPath      string
	skipAPI     bool
	recentSets  int
	concurrency int
	apiKey      string
	apiTimeout  time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "seeddb",
	Short: "Create and seed the card catalog database",
	Long: `Create the catalog schema and fill it from the Pokemon TCG API.

When the API is skipped or the set listing fails, a built-in dataset of five
sets with chase cards, pull rates and graded prices is written instead.

Examples:
  seeddb --db pokemon_tcg.db
  seeddb --skip-api
  seeddb --sets 10 --concurrency 2 --api-key $POKEMON_TCG_API_KEY`,
	SilenceUsage: true,
	RunE:         runSeed,
}

func init() {
	config.LoadEnv("seeddb")
	cfg := catalogcfg.Load()
	config.Logging("seeddb", cfg.LogDir)

	skip, _ := strconv.ParseBool(os.Getenv("SKIP_POKEMON_API"))

	rootCmd.Flags().StringVar(&dbPath, "db", cfg.DBPath, "SQLite database file")
	rootCmd.Flags().BoolVar(&skipAPI, "skip-api", skip, "Write the built-in dataset without calling the API")
	rootCmd.Flags().IntVar(&recentSets, "sets", 40, "Number of newest sets to fetch cards for")
	rootCmd.Flags().IntVar(&concurrency, "concurrency", 4, "Concurrent card fetches")
	rootCmd.Flags().StringVar(&apiKey, "api-key", os.Getenv("POKEMON_TCG_API_KEY"), "Pokemon TCG API key (optional)")
	rootCmd.Flags().DurationVar(&apiTimeout, "timeout", 30*time.Second, "Per request API timeout")
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Open(dbPath)
	if err != nil {
		return err
	}
	defer pool.Close()

	var src seed.Source
	if !skipAPI {
		src = tcgapi.NewClient(apiKey, apiTimeout)
	}

	sum, err := seed.NewSeeder(pool, src).Run(ctx, seed.Options{
		SkipAPI:     skipAPI,
		RecentSets:  recentSets,
		Concurrency: concurrency,
	})
	if err != nil {
		return fmt.Errorf("seed %s: %w", dbPath, err)
	}

	log.WithFields(log.Fields{
		"sets":          sum.Sets,
		"aliases":       sum.Aliases,
		"cards":         sum.Cards,
		"pull_rates":    sum.PullRates,
		"graded_prices": sum.GradedPrices,
		"fallback":      sum.Fallback,
	}).Infof("seeded %s", dbPath)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
