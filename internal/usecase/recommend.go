package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"CounterPicker/internal/domain"
	"CounterPicker/internal/ports"
	"CounterPicker/internal/recommend"
)

var (
	// ErrNoOpponents is returned when a request names no opponent.
	ErrNoOpponents = errors.New("select at least one opponent")
	// ErrEntityNotFound marks a hero reference absent from the catalog.
	ErrEntityNotFound = errors.New("entity not found")
	// ErrNoHeroes is returned when the hero catalog holds nothing to rank.
	ErrNoHeroes = errors.New("hero catalog is empty")
)

// RecommendRequest names the player's hero, the opposing picks and an
// optional desired role. Heroes are referenced by name or id.
type RecommendRequest struct {
	You       string
	Opponents []string
	Role      string
}

// Recommendation bundles item builds and ranked counter picks.
type Recommendation struct {
	You       domain.Entity
	Opponents []domain.Entity
	Summary   recommend.Summary
	Defense   []domain.Entity
	Offense   []domain.Entity
	Heroes    []recommend.HeroScore
}

// Recommender loads catalogs and the counters base and scores a request.
type Recommender struct {
	catalogs   ports.CatalogRepository
	heroesPath string
	itemsPath  string
	counters   func() (domain.CountersKB, error)
	logger     *slog.Logger
}

// NewRecommender wires catalog storage with a counters loader.
func NewRecommender(catalogs ports.CatalogRepository, heroesPath, itemsPath string, counters func() (domain.CountersKB, error), logger *slog.Logger) *Recommender {
	return &Recommender{catalogs: catalogs, heroesPath: heroesPath, itemsPath: itemsPath, counters: counters, logger: logger}
}

// Recommend resolves the request against the catalogs and scores it.
func (r *Recommender) Recommend(ctx context.Context, req RecommendRequest) (Recommendation, error) {
	if len(req.Opponents) == 0 {
		return Recommendation{}, ErrNoOpponents
	}

	heroes, err := r.catalogs.Load(ctx, r.heroesPath)
	if err != nil {
		return Recommendation{}, fmt.Errorf("load heroes: %w", err)
	}
	if len(heroes) == 0 {
		return Recommendation{}, fmt.Errorf("%s: %w", r.heroesPath, ErrNoHeroes)
	}

	// A missing item catalog only empties the item builds.
	items, err := r.catalogs.Load(ctx, r.itemsPath)
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("item catalog unavailable, skipping item builds", "path", r.itemsPath, "error", err)
		}
		items = nil
	}

	kb := domain.CountersKB{}
	if r.counters != nil {
		if kb, err = r.counters(); err != nil {
			return Recommendation{}, fmt.Errorf("load counters: %w", err)
		}
	}

	var you domain.Entity
	if req.You != "" {
		if you, err = findEntity(heroes, req.You); err != nil {
			return Recommendation{}, err
		}
	}

	opponents := make([]domain.Entity, 0, len(req.Opponents))
	for _, ref := range req.Opponents {
		enemy, err := findEntity(heroes, ref)
		if err != nil {
			return Recommendation{}, err
		}
		opponents = append(opponents, enemy)
	}

	index := recommend.NewItemIndex(items)
	return Recommendation{
		You:       you,
		Opponents: opponents,
		Summary:   recommend.Summarize(opponents),
		Defense:   recommend.Defense(you, opponents, index),
		Offense:   recommend.Offense(you, opponents, index),
		Heroes:    recommend.Heroes(heroes, opponents, req.Role, kb),
	}, nil
}

func findEntity(catalog []domain.Entity, ref string) (domain.Entity, error) {
	for _, e := range catalog {
		if e.Matches(ref) {
			return e, nil
		}
	}
	return domain.Entity{}, fmt.Errorf("%q: %w", ref, ErrEntityNotFound)
}
