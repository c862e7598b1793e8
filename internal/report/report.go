// Package report renders run tallies and recommendations as terminal tables.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"CounterPicker/internal/domain"
	"CounterPicker/internal/recommend"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // fixed-width terminal tables
	Markdown             // GitHub-flavoured Markdown tables
)

func newWriter(title string) table.Writer {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	if title != "" {
		w.SetTitle(title)
	}
	return w
}

func render(w table.Writer, m Mode) string {
	if m == Markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}

// Run renders per-status counts of one enrichment run.
func Run(run domain.RunReport, m Mode) string {
	w := newWriter(fmt.Sprintf("%s (%s)", run.Catalog, run.ID))
	w.AppendHeader(table.Row{"Status", "Entities"})
	for _, status := range domain.Statuses {
		w.AppendRow(table.Row{string(status), run.Counts[status]})
	}
	w.AppendFooter(table.Row{"total", run.Total()})
	w.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	return render(w, m)
}

// History renders recent runs, newest first.
func History(runs []domain.RunReport, m Mode) string {
	w := newWriter("")
	header := table.Row{"Run", "Catalog", "Started", "Took"}
	for _, status := range domain.Statuses {
		header = append(header, string(status))
	}
	w.AppendHeader(header)

	for _, run := range runs {
		row := table.Row{
			run.ID,
			run.Catalog,
			run.StartedAt.UTC().Format(time.RFC3339),
			run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String(),
		}
		for _, status := range domain.Statuses {
			row = append(row, run.Counts[status])
		}
		w.AppendRow(row)
	}
	return render(w, m)
}

// Items renders a recommended build in order.
func Items(title string, items []domain.Entity, m Mode) string {
	w := newWriter(title)
	w.AppendHeader(table.Row{"#", "Item", "ID"})
	for i, item := range items {
		w.AppendRow(table.Row{i + 1, item.Name, item.ID.String()})
	}
	if len(items) == 0 {
		w.AppendRow(table.Row{"", "no recommendation", ""})
	}
	return render(w, m)
}

// Heroes renders ranked hero picks with their strongest matchups.
func Heroes(scores []recommend.HeroScore, m Mode) string {
	w := newWriter("Counter picks")
	w.AppendHeader(table.Row{"#", "Hero", "Roles", "Score", "Role bonus", "Matchups"})
	for i, s := range scores {
		w.AppendRow(table.Row{
			i + 1,
			s.Hero.Name,
			strings.Join(s.Hero.Roles, "/"),
			fmt.Sprintf("%.2f", s.Total),
			fmt.Sprintf("%+.1f", s.RoleBonus),
			matchups(s.Contributions),
		})
	}
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, WidthMax: 60},
	})
	return render(w, m)
}

func matchups(contribs []recommend.Contribution) string {
	parts := make([]string, 0, len(contribs))
	for _, c := range contribs {
		if c.Counter == 0 && c.Fear == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s +%.1f/-%.1f", c.Enemy, c.Counter, c.Fear))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
