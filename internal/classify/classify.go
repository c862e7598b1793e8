// Package classify maps wiki category labels onto the lifecycle taxonomy.
package classify

import (
	"errors"
	"fmt"
	"strings"

	"CounterPicker/internal/domain"
)

// ErrUnknownTaxonomy is returned when a catalog names a table nobody registered.
var ErrUnknownTaxonomy = errors.New("unknown taxonomy")

// Rule assigns Status when any category label contains one of Keywords.
type Rule struct {
	Status   domain.Status
	Keywords []string
}

// Table is an ordered rule list; earlier rules win.
type Table struct {
	name  string
	rules []Rule
}

// NewTable builds a named table. Keywords are compared lowercase.
func NewTable(name string, rules ...Rule) Table {
	normalized := make([]Rule, 0, len(rules))
	for _, r := range rules {
		kw := make([]string, 0, len(r.Keywords))
		for _, k := range r.Keywords {
			kw = append(kw, strings.ToLower(k))
		}
		normalized = append(normalized, Rule{Status: r.Status, Keywords: kw})
	}
	return Table{name: name, rules: normalized}
}

// Name identifies the table inside the registry.
func (t Table) Name() string {
	return t.name
}

// Classify returns the status of the first matching rule. A page that does
// not exist is unknown; an existing page with no matching label is present.
func (t Table) Classify(categories []string, exists bool) domain.Status {
	if !exists {
		return domain.StatusUnknown
	}

	lowered := make([]string, 0, len(categories))
	for _, c := range categories {
		lowered = append(lowered, strings.ToLower(c))
	}

	for _, rule := range t.rules {
		if anyContains(lowered, rule.Keywords) {
			return rule.Status
		}
	}
	return domain.StatusPresent
}

func anyContains(labels, keywords []string) bool {
	for _, label := range labels {
		for _, kw := range keywords {
			if strings.Contains(label, kw) {
				return true
			}
		}
	}
	return false
}

// HeroTable checks cancelled, then unreleased, then removed.
func HeroTable() Table {
	return NewTable("hero",
		Rule{Status: domain.StatusCancelled, Keywords: []string{"cancelled", "canceled"}},
		Rule{Status: domain.StatusUnreleased, Keywords: []string{"unreleased", "beta", "test"}},
		Rule{Status: domain.StatusRemoved, Keywords: []string{"removed", "retired"}},
	)
}

// ItemTable is two-valued: any signal that the item left the game is removed,
// including unreleased.
func ItemTable() Table {
	return NewTable("item",
		Rule{Status: domain.StatusRemoved, Keywords: []string{
			"removed", "deprecated", "obsolete", "retired", "unreleased", "unavailable", "legacy",
		}},
	)
}

// Registry keeps a mapping from taxonomy names to their tables.
type Registry struct {
	tables map[string]Table
}

// NewRegistry returns a registry holding the hero and item tables.
func NewRegistry() *Registry {
	r := &Registry{tables: map[string]Table{}}
	r.Register(HeroTable())
	r.Register(ItemTable())
	return r
}

// Register adds or replaces a table.
func (r *Registry) Register(t Table) {
	if r.tables == nil {
		r.tables = map[string]Table{}
	}
	r.tables[t.Name()] = t
}

// Resolve returns a table by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Table, error) {
	if t, ok := r.tables[name]; ok {
		return t, nil
	}
	return Table{}, fmt.Errorf("%w: %s", ErrUnknownTaxonomy, name)
}
