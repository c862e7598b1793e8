package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"CounterPicker/internal/classify"
	"CounterPicker/internal/domain"
	"CounterPicker/internal/ports"
	"CounterPicker/internal/workpool"
)

const (
	// DefaultPoolSize bounds concurrent entity lookups.
	DefaultPoolSize = 8
	// DefaultLookupTimeout bounds a single entity lookup.
	DefaultLookupTimeout = 20 * time.Second
)

// PipelineDeps wires all driven adapters into the enrichment pipeline.
type PipelineDeps struct {
	Source        ports.CategorySource
	Catalogs      ports.CatalogRepository
	Runs          ports.RunRepository
	Notifier      ports.Notifier
	Taxonomies    *classify.Registry
	PoolSize      int
	LookupTimeout time.Duration
	Logger        *slog.Logger
	Now           func() time.Time
}

// Pipeline classifies every entity of a catalog against the wiki and
// rewrites the catalog with fresh statuses.
type Pipeline struct {
	source        ports.CategorySource
	catalogs      ports.CatalogRepository
	runs          ports.RunRepository
	notifier      ports.Notifier
	taxonomies    *classify.Registry
	poolSize      int
	lookupTimeout time.Duration
	logger        *slog.Logger
	now           func() time.Time

	entropyMu sync.Mutex
	entropy   *ulid.MonotonicEntropy
}

// NewPipeline constructs the enrichment component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	p := &Pipeline{
		source:        deps.Source,
		catalogs:      deps.Catalogs,
		runs:          deps.Runs,
		notifier:      deps.Notifier,
		taxonomies:    deps.Taxonomies,
		poolSize:      deps.PoolSize,
		lookupTimeout: deps.LookupTimeout,
		logger:        deps.Logger,
		now:           deps.Now,
		entropy:       ulid.Monotonic(rand.Reader, 0),
	}
	if p.taxonomies == nil {
		p.taxonomies = classify.NewRegistry()
	}
	if p.poolSize < 1 {
		p.poolSize = DefaultPoolSize
	}
	if p.lookupTimeout <= 0 {
		p.lookupTimeout = DefaultLookupTimeout
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// Enrich loads one catalog, classifies every entity, writes the catalog back
// in a single write and returns per-status counts. Lookup failures degrade the
// entity to unknown; only a pool failure (such as cancellation) aborts the
// run, in which case the catalog file is left untouched.
func (p *Pipeline) Enrich(ctx context.Context, spec ports.CatalogSpec) (domain.RunReport, error) {
	if p.source == nil || p.catalogs == nil {
		return domain.RunReport{}, fmt.Errorf("pipeline is not configured")
	}

	table, err := p.taxonomies.Resolve(spec.Taxonomy)
	if err != nil {
		return domain.RunReport{}, fmt.Errorf("catalog %s: %w", spec.Name, err)
	}

	entities, err := p.catalogs.Load(ctx, spec.Path)
	if err != nil {
		return domain.RunReport{}, fmt.Errorf("load catalog %s: %w", spec.Name, err)
	}

	report := domain.RunReport{
		ID:        p.newRunID(),
		Catalog:   spec.Name,
		StartedAt: p.now(),
		Counts:    domain.StatusCounts{},
	}
	p.info("enrichment started", "catalog", spec.Name, "entities", len(entities), "pool", p.poolSize, "run", report.ID)

	statuses, err := workpool.Run(ctx, p.poolSize, entities, func(ctx context.Context, e domain.Entity, i int) (domain.Status, error) {
		status := p.classifyEntity(ctx, table, e)
		entities[i].Status = status
		return status, nil
	})
	if err != nil {
		return domain.RunReport{}, fmt.Errorf("enrich catalog %s: %w", spec.Name, err)
	}

	for _, status := range statuses {
		report.Counts[status]++
	}

	if err := p.catalogs.Save(ctx, spec.Path, entities); err != nil {
		return domain.RunReport{}, fmt.Errorf("save catalog %s: %w", spec.Name, err)
	}
	report.FinishedAt = p.now()

	p.info("enrichment finished", "catalog", spec.Name, "run", report.ID, "counts", formatCounts(report.Counts))
	p.record(ctx, report)
	return report, nil
}

func (p *Pipeline) classifyEntity(ctx context.Context, table classify.Table, e domain.Entity) domain.Status {
	title := strings.TrimSpace(e.Name)
	if title == "" {
		return domain.StatusUnknown
	}

	lookupCtx, cancel := context.WithTimeout(ctx, p.lookupTimeout)
	defer cancel()

	page, err := p.source.PageCategories(lookupCtx, title)
	if err != nil {
		p.warn("lookup failed", "entity", title, "error", err)
		return domain.StatusUnknown
	}

	status := table.Classify(page.Categories, page.Exists)
	p.debug("entity classified", "entity", title, "status", status, "categories", len(page.Categories))
	return status
}

// record stores and publishes a finished run. Both are best effort: the
// catalog is already written.
func (p *Pipeline) record(ctx context.Context, report domain.RunReport) {
	if p.runs != nil {
		if err := p.runs.SaveRun(ctx, report); err != nil {
			p.warn("save run history", "run", report.ID, "error", err)
		}
	}
	if p.notifier != nil {
		if err := p.notifier.PublishReport(ctx, BuildReportMessage(report)); err != nil {
			p.warn("publish run report", "run", report.ID, "error", err)
		}
	}
}

func (p *Pipeline) newRunID() string {
	p.entropyMu.Lock()
	defer p.entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(p.now()), p.entropy).String()
}

// BuildReportMessage renders a run summary for chat notifications.
func BuildReportMessage(report domain.RunReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s* status refresh (%d entities)\n", escapeMarkdown(report.Catalog), report.Total())
	for _, status := range domain.Statuses {
		fmt.Fprintf(&b, "- %s: %d\n", status, report.Counts[status])
	}
	if !report.FinishedAt.IsZero() && !report.StartedAt.IsZero() {
		fmt.Fprintf(&b, "took %s", report.FinishedAt.Sub(report.StartedAt).Round(time.Second))
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// escapeMarkdown protects Telegram legacy Markdown metacharacters.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func formatCounts(counts domain.StatusCounts) string {
	parts := make([]string, 0, len(domain.Statuses))
	for _, status := range domain.Statuses {
		parts = append(parts, fmt.Sprintf("%s=%d", status, counts[status]))
	}
	return strings.Join(parts, " ")
}

func (p *Pipeline) debug(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Pipeline) info(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
