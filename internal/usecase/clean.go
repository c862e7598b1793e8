package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"CounterPicker/internal/domain"
	"CounterPicker/internal/ports"
)

var playableCategories = []string{"Category:Heroes", "Category:Playable Heroes", "Category:Playable heroes"}

// Titles that are role, lane or faction pages rather than heroes.
var nonHeroMarkers = []string{
	"heroes", "cancelled", "canceled", "role", "roles", "fighter", "assassin", "mage", "marksman", "tank", "support",
	"lightborn", "v.e.n.o.m", "venom", "oriental fighters", "the exorcists", "exorcists", "member introduction",
	"heavenly artifacts", "side laner", "exp laner", "gold laner", "mid laner", "roamer", "jungler", "laner",
}

// Cleaner drops catalog entries that are not playable heroes.
type Cleaner struct {
	source   ports.CatalogSource
	catalogs ports.CatalogRepository
	logger   *slog.Logger
}

// NewCleaner wires the wiki listing source with catalog storage.
func NewCleaner(source ports.CatalogSource, catalogs ports.CatalogRepository, logger *slog.Logger) *Cleaner {
	return &Cleaner{source: source, catalogs: catalogs, logger: logger}
}

// Clean rewrites the hero catalog at path keeping only playable heroes and
// returns the counts before and after.
func (c *Cleaner) Clean(ctx context.Context, path string) (before, after int, err error) {
	heroes, err := c.catalogs.Load(ctx, path)
	if err != nil {
		return 0, 0, fmt.Errorf("load heroes: %w", err)
	}

	playable := c.playableSet(ctx)
	kept := FilterPlayable(heroes, playable)

	if err := c.catalogs.Save(ctx, path, kept); err != nil {
		return 0, 0, fmt.Errorf("save heroes: %w", err)
	}
	if c.logger != nil {
		c.logger.Info("filtered heroes", "before", len(heroes), "after", len(kept))
	}
	return len(heroes), len(kept), nil
}

// playableSet unions every source that answers; failing sources are skipped.
func (c *Cleaner) playableSet(ctx context.Context) map[string]struct{} {
	set := map[string]struct{}{}
	add := func(titles []string) {
		for _, t := range titles {
			if n := strings.TrimSpace(t); n != "" {
				set[n] = struct{}{}
			}
		}
	}

	if links, err := c.source.PageLinks(ctx, heroListPage); err == nil {
		add(links)
	} else if c.logger != nil {
		c.logger.Warn("hero list unavailable", "error", err)
	}

	for _, cat := range playableCategories {
		members, err := c.source.CategoryMembers(ctx, cat)
		if err != nil {
			if c.logger != nil {
				c.logger.Debug("category unavailable", "category", cat, "error", err)
			}
			continue
		}
		add(members)
	}
	return set
}

// FilterPlayable keeps heroes whose trimmed name is in playable and does not
// look like a role, lane or faction page.
func FilterPlayable(heroes []domain.Entity, playable map[string]struct{}) []domain.Entity {
	kept := make([]domain.Entity, 0, len(heroes))
	for _, h := range heroes {
		name := strings.TrimSpace(h.Name)
		if name == "" || isObviouslyNotHero(name) {
			continue
		}
		if _, ok := playable[name]; !ok {
			continue
		}
		kept = append(kept, h)
	}
	return kept
}

func isObviouslyNotHero(title string) bool {
	t := strings.ToLower(title)
	for _, marker := range nonHeroMarkers {
		if strings.Contains(t, marker) {
			return true
		}
	}
	return false
}
