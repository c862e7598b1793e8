package ports

import (
	"context"
	"time"

	"CounterPicker/internal/domain"
)

// PageCategories is the external view of one entity page.
type PageCategories struct {
	Exists     bool
	Categories []string
}

// CategorySource answers category lookups against the external wiki.
type CategorySource interface {
	PageCategories(ctx context.Context, title string) (PageCategories, error)
}

// CatalogSource lists titles and images used to build fresh catalogs.
type CatalogSource interface {
	CategoryMembers(ctx context.Context, category string) ([]string, error)
	PageLinks(ctx context.Context, page string) ([]string, error)
	PageImages(ctx context.Context, titles []string) (map[string]string, error)
}

// CatalogSpec names a catalog file and the taxonomy that classifies it.
type CatalogSpec struct {
	Name     string
	Path     string
	Taxonomy string
}

// CatalogRepository loads and persists whole catalog files.
type CatalogRepository interface {
	Load(ctx context.Context, path string) ([]domain.Entity, error)
	Save(ctx context.Context, path string, entities []domain.Entity) error
}

// RunRepository keeps the history of enrichment runs.
type RunRepository interface {
	SaveRun(ctx context.Context, run domain.RunReport) error
	RecentRuns(ctx context.Context, catalog string, limit int) ([]domain.RunReport, error)
}

// Notifier streams run summaries to Telegram or other channels.
type Notifier interface {
	PublishReport(ctx context.Context, message string) error
}

// Scheduler controls when enrichment re-runs.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
