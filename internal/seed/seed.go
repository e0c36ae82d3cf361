package seed

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/avvvet/pokecard-services/internal/catalogsvc/db"
	"github.com/avvvet/pokecard-services/internal/catalogsvc/models"
	"github.com/avvvet/pokecard-services/internal/tcgapi"
)

// Source is the remote card-data API.
type Source interface {
	Sets(ctx context.Context) ([]tcgapi.Set, error)
	CardsForSet(ctx context.Context, setID string) ([]tcgapi.Card, error)
}

type Options struct {
	SkipAPI     bool
	RecentSets  int // sets, newest first, whose cards are fetched
	Concurrency int
}

type Seeder struct {
	db  *sql.DB
	src Source
}

func NewSeeder(db *sql.DB, src Source) *Seeder {
	return &Seeder{db: db, src: src}
}

// Run creates the schema and seeds it, from the API unless skipped. A failed
// set listing falls back to the built-in dataset; a failed card fetch only
// skips that set.
func (s *Seeder) Run(ctx context.Context, opts Options) (Summary, error) {
	if err := db.Migrate(ctx, s.db); err != nil {
		return Summary{}, err
	}

	if opts.SkipAPI || s.src == nil {
		log.Info("api seeding skipped, using fallback dataset")
		return s.fallback(ctx)
	}

	ds, err := s.fetch(ctx, opts)
	if err != nil {
		log.Warnf("api fetch failed (%v), using fallback dataset", err)
		return s.fallback(ctx)
	}

	sum, err := Apply(ctx, s.db, ds)
	if err != nil {
		return sum, fmt.Errorf("apply api dataset: %w", err)
	}
	return sum, nil
}

func (s *Seeder) fallback(ctx context.Context) (Summary, error) {
	sum, err := Apply(ctx, s.db, Fallback())
	sum.Fallback = true
	if err != nil {
		return sum, fmt.Errorf("apply fallback dataset: %w", err)
	}
	return sum, nil
}

func (s *Seeder) fetch(ctx context.Context, opts Options) (Dataset, error) {
	remoteSets, err := s.src.Sets(ctx)
	if err != nil {
		return Dataset{}, err
	}
	if len(remoteSets) == 0 {
		return Dataset{}, fmt.Errorf("api returned no sets")
	}
	log.Infof("fetched %d sets", len(remoteSets))

	ds := Dataset{PullRates: map[string][]models.PullRate{}}
	used := map[string]bool{}
	for _, rs := range remoteSets {
		slug := Slugify(rs.Name)
		if slug == "" || used[slug] {
			slug = Slugify(rs.Name + " " + rs.ID)
		}
		used[slug] = true
		ds.Sets = append(ds.Sets, models.Set{
			ID:          rs.ID,
			Name:        rs.Name,
			Slug:        slug,
			Series:      rs.Series,
			ReleaseDate: rs.ReleaseDate,
			LogoURL:     rs.Images.Logo,
			Total:       rs.Total,
		})
	}

	recent := make([]tcgapi.Set, len(remoteSets))
	copy(recent, remoteSets)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].ReleaseDate > recent[j].ReleaseDate })
	if opts.RecentSets > 0 && len(recent) > opts.RecentSets {
		recent = recent[:opts.RecentSets]
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = 4
	}

	fetched := make([][]models.Card, len(recent))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, rs := range recent {
		g.Go(func() error {
			remote, err := s.src.CardsForSet(gctx, rs.ID)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Warnf("  %s (%s): card fetch failed: %v", rs.ID, rs.Name, err)
				return nil
			}
			fetched[i] = convertCards(rs.ID, remote)
			log.Infof("  %s (%s): %d cards", rs.ID, rs.Name, len(remote))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Dataset{}, err
	}

	for i, rs := range recent {
		ds.Cards = append(ds.Cards, fetched[i]...)
		ds.PullRates[rs.ID] = DefaultPullRates(rs.ID)
	}
	return ds, nil
}

func convertCards(setID string, remote []tcgapi.Card) []models.Card {
	out := make([]models.Card, 0, len(remote))
	for _, rc := range remote {
		p := rc.Prices()
		subtype := ""
		if len(rc.Subtypes) > 0 {
			subtype = rc.Subtypes[0]
		}
		image := rc.Images.Large
		if image == "" {
			image = rc.Images.Small
		}
		out = append(out, models.Card{
			ID:            rc.ID,
			SetID:         setID,
			Name:          rc.Name,
			Rarity:        rc.Rarity,
			Supertype:     rc.Supertype,
			Subtype:       subtype,
			Number:        rc.Number,
			ImageURL:      image,
			SmallImageURL: rc.Images.Small,
			MarketPrice:   p.Market,
			LowPrice:      p.Low,
			MidPrice:      p.Mid,
			HighPrice:     p.High,
		})
	}
	return out
}
