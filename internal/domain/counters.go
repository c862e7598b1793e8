package domain

// Matchup is a scored relation from one entity to another, referenced by name or id.
type Matchup struct {
	ID    EntityID `json:"id"`
	Score float64  `json:"score"`
}

// CounterRecord holds what an entity beats and what it loses to.
type CounterRecord struct {
	Counters []Matchup `json:"counters"`
	Fears    []Matchup `json:"fears"`
}

// CountersKB maps entity name (or id) to its matchup record. It is read-only.
type CountersKB map[string]CounterRecord

// Lookup resolves a record by the entity's name first, then by its id.
func (kb CountersKB) Lookup(e Entity) (CounterRecord, bool) {
	if rec, ok := kb[e.Name]; ok {
		return rec, true
	}
	if !e.ID.IsZero() {
		if rec, ok := kb[e.ID.String()]; ok {
			return rec, true
		}
	}
	return CounterRecord{}, false
}

// ScoreAgainst returns the first matchup score whose id names target, or zero.
func ScoreAgainst(list []Matchup, target Entity) float64 {
	for _, m := range list {
		if target.Matches(m.ID.String()) {
			return m.Score
		}
	}
	return 0
}
