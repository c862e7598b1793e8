package report

import (
	"strings"
	"testing"
	"time"

	"CounterPicker/internal/domain"
	"CounterPicker/internal/recommend"
)

func TestRunTable(t *testing.T) {
	t.Parallel()

	out := Run(domain.RunReport{
		ID:      "01RUN",
		Catalog: "heroes",
		Counts:  domain.StatusCounts{domain.StatusPresent: 3, domain.StatusUnknown: 1},
	}, ASCII)

	for _, want := range []string{"heroes (01RUN)", "present", "unreleased", "TOTAL"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}

func TestHistoryMarkdown(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, time.March, 1, 6, 0, 0, 0, time.UTC)
	out := History([]domain.RunReport{{
		ID:         "01A",
		Catalog:    "items",
		StartedAt:  start,
		FinishedAt: start.Add(42 * time.Second),
		Counts:     domain.StatusCounts{domain.StatusRemoved: 4},
	}}, Markdown)

	if !strings.HasPrefix(strings.TrimSpace(out), "|") {
		t.Fatalf("expected markdown table:\n%s", out)
	}
	for _, want := range []string{"01A", "2025-03-01T06:00:00Z", "42s", "| 4 |"} {
		if !strings.Contains(out, want) {
			t.Fatalf("history missing %q:\n%s", want, out)
		}
	}
}

func TestItemsEmpty(t *testing.T) {
	t.Parallel()

	out := Items("Defense", nil, ASCII)
	if !strings.Contains(out, "no recommendation") {
		t.Fatalf("expected placeholder row:\n%s", out)
	}
}

func TestHeroesTable(t *testing.T) {
	t.Parallel()

	out := Heroes([]recommend.HeroScore{{
		Hero:      domain.Entity{Name: "Khufra", Roles: []string{"Tank", "Support"}},
		Total:     2.5,
		RoleBonus: 1,
		Contributions: []recommend.Contribution{
			{Enemy: "Fanny", Counter: 2, Fear: 0.5},
			{Enemy: "Layla"},
		},
	}}, ASCII)

	for _, want := range []string{"Khufra", "Tank/Support", "2.50", "+1.0", "Fanny +2.0/-0.5"} {
		if !strings.Contains(out, want) {
			t.Fatalf("heroes table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Layla") {
		t.Fatalf("zero contributions should be omitted:\n%s", out)
	}
}
