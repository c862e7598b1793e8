package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"CounterPicker/internal/domain"
	"CounterPicker/internal/ports"
)

var (
	heroCategories = []string{"Category:Heroes"}
	itemCategories = []string{"Category:Equipment", "Category:Items"}

	heroListPage = "List_of_heroes"
	itemListPage = "Equipment"

	notAnItem = regexp.MustCompile(`(?i)Equipment|List|Category:`)
	slugStrip = regexp.MustCompile(`[^a-z0-9]+`)
)

// Acquirer builds fresh hero and item catalogs from the wiki. Entities come
// out without a status; enrichment assigns it later.
type Acquirer struct {
	source   ports.CatalogSource
	catalogs ports.CatalogRepository
	logger   *slog.Logger
}

// NewAcquirer wires the wiki listing source with catalog storage.
func NewAcquirer(source ports.CatalogSource, catalogs ports.CatalogRepository, logger *slog.Logger) *Acquirer {
	return &Acquirer{source: source, catalogs: catalogs, logger: logger}
}

// Acquire fetches both catalogs and writes them to heroesPath and itemsPath.
func (a *Acquirer) Acquire(ctx context.Context, heroesPath, itemsPath string) (heroes, items int, err error) {
	heroList, err := a.Heroes(ctx)
	if err != nil {
		return 0, 0, err
	}
	if err := a.catalogs.Save(ctx, heroesPath, heroList); err != nil {
		return 0, 0, fmt.Errorf("save heroes: %w", err)
	}
	a.info("heroes written", "path", heroesPath, "count", len(heroList))

	itemList, err := a.Items(ctx)
	if err != nil {
		return len(heroList), 0, err
	}
	if err := a.catalogs.Save(ctx, itemsPath, itemList); err != nil {
		return len(heroList), 0, fmt.Errorf("save items: %w", err)
	}
	a.info("items written", "path", itemsPath, "count", len(itemList))

	return len(heroList), len(itemList), nil
}

// Heroes lists hero pages with their lead images. Ids are 1-based positions.
func (a *Acquirer) Heroes(ctx context.Context) ([]domain.Entity, error) {
	titles, err := a.titles(ctx, heroCategories, heroListPage)
	if err != nil {
		return nil, fmt.Errorf("list heroes: %w", err)
	}

	images, err := a.source.PageImages(ctx, titles)
	if err != nil {
		return nil, fmt.Errorf("hero images: %w", err)
	}

	heroes := make([]domain.Entity, 0, len(titles))
	for i, t := range titles {
		heroes = append(heroes, domain.Entity{
			ID:    domain.IntID(i + 1),
			Name:  t,
			Roles: []string{},
			Lanes: []string{},
			Img:   images[t],
			Tags:  []string{},
		})
	}
	return heroes, nil
}

// Items lists equipment pages, dropping list and category pages, with slug ids.
func (a *Acquirer) Items(ctx context.Context) ([]domain.Entity, error) {
	all, err := a.titles(ctx, itemCategories, itemListPage)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	titles := make([]string, 0, len(all))
	for _, t := range all {
		if !notAnItem.MatchString(t) {
			titles = append(titles, t)
		}
	}

	images, err := a.source.PageImages(ctx, titles)
	if err != nil {
		return nil, fmt.Errorf("item images: %w", err)
	}

	items := make([]domain.Entity, 0, len(titles))
	for _, t := range titles {
		items = append(items, domain.Entity{
			ID:   domain.SlugID(Slugify(t)),
			Name: t,
			Tags: []string{},
			Icon: images[t],
		})
	}
	return items, nil
}

// titles returns members of the first non-empty category, falling back to
// the links of listPage. Category failures only trigger the fallback.
func (a *Acquirer) titles(ctx context.Context, categories []string, listPage string) ([]string, error) {
	for _, cat := range categories {
		members, err := a.source.CategoryMembers(ctx, cat)
		if err != nil {
			a.warn("category listing failed", "category", cat, "error", err)
			continue
		}
		if len(members) > 0 {
			return members, nil
		}
	}

	a.info("falling back to page links", "page", listPage)
	return a.source.PageLinks(ctx, listPage)
}

// Slugify turns an item title into its catalog id:
// "Athena's Shield" becomes "athenas_shield".
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = strings.ReplaceAll(s, "'", "")
	s = slugStrip.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

func (a *Acquirer) info(msg string, args ...interface{}) {
	if a.logger != nil {
		a.logger.Info(msg, args...)
	}
}

func (a *Acquirer) warn(msg string, args ...interface{}) {
	if a.logger != nil {
		a.logger.Warn(msg, args...)
	}
}
