package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"CounterPicker/internal/config"
	"CounterPicker/internal/domain"
	"CounterPicker/internal/infrastructure/scheduler"
	"CounterPicker/internal/infrastructure/storage"
	"CounterPicker/internal/infrastructure/telegram"
	"CounterPicker/internal/infrastructure/wiki"
	"CounterPicker/internal/logging"
	"CounterPicker/internal/ports"
	"CounterPicker/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg         config.Config
	logger      *slog.Logger
	wiki        *wiki.Client
	catalogs    *storage.CatalogFiles
	runs        *storage.RunRepository
	pipeline    *usecase.Pipeline
	acquirer    *usecase.Acquirer
	cleaner     *usecase.Cleaner
	recommender *usecase.Recommender
}

// New builds the application. Run history is opened only when a database
// path is configured; the notifier only when Telegram credentials are set.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	client := wiki.NewClient(wiki.Options{
		Endpoint:          cfg.Wiki.APIURL,
		UserAgent:         cfg.Wiki.UserAgent,
		Timeout:           cfg.Wiki.Timeout,
		RequestsPerSecond: cfg.Wiki.RequestsPerSecond,
	})
	catalogs := storage.NewCatalogFiles()

	a := &Application{cfg: cfg, logger: baseLogger, wiki: client, catalogs: catalogs}

	var runs ports.RunRepository
	if cfg.Database.Path != "" {
		repo, err := storage.OpenRunRepository(ctx, cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("open run history: %w", err)
		}
		a.runs = repo
		runs = repo
	}

	var notifier ports.Notifier
	if tg := telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID); tg.Configured() {
		notifier = tg
	}

	a.pipeline = usecase.NewPipeline(usecase.PipelineDeps{
		Source:        client,
		Catalogs:      catalogs,
		Runs:          runs,
		Notifier:      notifier,
		PoolSize:      cfg.Enrichment.PoolSize,
		LookupTimeout: cfg.Enrichment.LookupTimeout,
		Logger:        logging.Component(baseLogger, "pipeline"),
	})
	a.acquirer = usecase.NewAcquirer(client, catalogs, logging.Component(baseLogger, "acquire"))
	a.cleaner = usecase.NewCleaner(client, catalogs, logging.Component(baseLogger, "clean"))

	heroes, _ := cfg.Catalog("heroes")
	items, _ := cfg.Catalog("items")
	a.recommender = usecase.NewRecommender(catalogs, heroes.Path, items.Path, func() (domain.CountersKB, error) {
		return storage.LoadCounters(cfg.Data.CountersPath)
	}, logging.Component(baseLogger, "recommend"))

	return a, nil
}

// Close releases the run history database.
func (a *Application) Close() error {
	if a.runs == nil {
		return nil
	}
	return a.runs.Close()
}

// Config exposes the effective configuration.
func (a *Application) Config() config.Config {
	return a.cfg
}

// Enrich refreshes statuses of the named catalogs, or all when names is empty.
// It stops at the first failed catalog.
func (a *Application) Enrich(ctx context.Context, names []string) ([]domain.RunReport, error) {
	specs, err := a.selectCatalogs(names)
	if err != nil {
		return nil, err
	}

	reports := make([]domain.RunReport, 0, len(specs))
	for _, spec := range specs {
		report, err := a.pipeline.Enrich(ctx, spec)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// EnrichEvery re-runs enrichment on an interval until ctx is cancelled.
func (a *Application) EnrichEvery(ctx context.Context, names []string, interval time.Duration) error {
	specs, err := a.selectCatalogs(names)
	if err != nil {
		return err
	}

	driver := scheduler.NewTickerScheduler(interval)
	sched := usecase.NewScheduler(driver, a.pipeline, specs, logging.Component(a.logger, "scheduler"))
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("periodic enrichment started", "interval", interval, "catalogs", len(specs))

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sched.Stop(stopCtx); err != nil {
		return fmt.Errorf("stop scheduler: %w", err)
	}
	return nil
}

// Fetch rebuilds both catalogs from the wiki.
func (a *Application) Fetch(ctx context.Context) (heroes, items int, err error) {
	heroCat, itemCat, err := a.heroAndItemCatalogs()
	if err != nil {
		return 0, 0, err
	}
	return a.acquirer.Acquire(ctx, heroCat.Path, itemCat.Path)
}

// Clean drops non-playable entries from the hero catalog.
func (a *Application) Clean(ctx context.Context) (before, after int, err error) {
	heroCat, _, err := a.heroAndItemCatalogs()
	if err != nil {
		return 0, 0, err
	}
	return a.cleaner.Clean(ctx, heroCat.Path)
}

// Split moves removed items into their own catalog file.
func (a *Application) Split(ctx context.Context) (kept, removed int, err error) {
	_, itemCat, err := a.heroAndItemCatalogs()
	if err != nil {
		return 0, 0, err
	}
	return usecase.SplitRemoved(ctx, a.catalogs, itemCat.Path, a.cfg.Data.RemovedItemsPath)
}

// Recommend scores a pick request against the current catalogs.
func (a *Application) Recommend(ctx context.Context, req usecase.RecommendRequest) (usecase.Recommendation, error) {
	return a.recommender.Recommend(ctx, req)
}

// History lists recent enrichment runs, optionally for one catalog.
func (a *Application) History(ctx context.Context, catalog string, limit int) ([]domain.RunReport, error) {
	if a.runs == nil {
		return nil, errors.New("run history is disabled: no database path configured")
	}
	return a.runs.RecentRuns(ctx, catalog, limit)
}

func (a *Application) selectCatalogs(names []string) ([]ports.CatalogSpec, error) {
	if len(names) == 0 {
		if len(a.cfg.Catalogs) == 0 {
			return nil, errors.New("no catalogs configured")
		}
		return a.cfg.Specs(), nil
	}

	specs := make([]ports.CatalogSpec, 0, len(names))
	for _, name := range names {
		cat, ok := a.cfg.Catalog(name)
		if !ok {
			return nil, fmt.Errorf("unknown catalog %q", name)
		}
		specs = append(specs, cat.Spec())
	}
	return specs, nil
}

func (a *Application) heroAndItemCatalogs() (config.CatalogConfig, config.CatalogConfig, error) {
	heroes, ok := a.cfg.Catalog("heroes")
	if !ok {
		return config.CatalogConfig{}, config.CatalogConfig{}, errors.New(`catalog "heroes" is not configured`)
	}
	items, ok := a.cfg.Catalog("items")
	if !ok {
		return config.CatalogConfig{}, config.CatalogConfig{}, errors.New(`catalog "items" is not configured`)
	}
	return heroes, items, nil
}
