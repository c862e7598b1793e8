package recommend

import (
	"math"
	"sort"

	"CounterPicker/internal/domain"
)

const (
	// TopHeroes is the size of a hero recommendation list.
	TopHeroes = 10

	roleMatchBonus  = 1.0
	roleMissPenalty = -0.3
)

// Contribution is one enemy's effect on a candidate's base score.
type Contribution struct {
	Enemy   string
	Counter float64
	Fear    float64
}

// HeroScore is a ranked candidate with its score breakdown.
type HeroScore struct {
	Hero          domain.Entity
	Base          float64
	RoleBonus     float64
	Total         float64
	Contributions []Contribution
}

// Heroes ranks the hero catalog against enemies using the counters knowledge
// base. Cancelled and removed heroes are never candidates. role is matched
// exactly; an empty role applies no bonus. Ties keep catalog order and at
// most TopHeroes results are returned. No enemies means no recommendation.
func Heroes(catalog []domain.Entity, enemies []domain.Entity, role string, kb domain.CountersKB) []HeroScore {
	if len(enemies) == 0 {
		return nil
	}

	scored := make([]HeroScore, 0, len(catalog))
	for _, hero := range catalog {
		if hero.Status.Excluded() {
			continue
		}
		scored = append(scored, scoreHero(hero, enemies, role, kb))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Total > scored[j].Total
	})

	if len(scored) > TopHeroes {
		scored = scored[:TopHeroes]
	}
	return scored
}

func scoreHero(hero domain.Entity, enemies []domain.Entity, role string, kb domain.CountersKB) HeroScore {
	result := HeroScore{Hero: hero}

	rec, ok := kb.Lookup(hero)
	for _, enemy := range enemies {
		c := Contribution{Enemy: enemy.Name}
		if ok {
			c.Counter = domain.ScoreAgainst(rec.Counters, enemy)
			c.Fear = domain.ScoreAgainst(rec.Fears, enemy)
		}
		result.Base += c.Counter - c.Fear
		result.Contributions = append(result.Contributions, c)
	}

	switch {
	case role == "":
	case hero.HasRole(role):
		result.RoleBonus = roleMatchBonus
	default:
		result.RoleBonus = roleMissPenalty
	}

	result.Total = result.Base + result.RoleBonus
	if math.IsNaN(result.Total) || math.IsInf(result.Total, 0) {
		result.Total = 0
	}
	return result
}
