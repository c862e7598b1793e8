// Package recommend scores counter picks against an observed opponent roster.
package recommend

import "CounterPicker/internal/domain"

// Tags that count toward sustain pressure.
var sustainTags = []string{"sustain", "heal", "regen"}

// DamageCounts tallies opponents per damage type.
type DamageCounts struct {
	Physical int
	Magic    int
	Hybrid   int
}

// Summary is the aggregate view of an opponent roster. It is request-scoped.
type Summary struct {
	Count       int
	Damage      DamageCounts
	PhysicalMix float64
	MagicMix    float64
	Tags        map[string]int
}

// Summarize reduces opponents to damage mix ratios and tag frequencies.
// Hybrid damage counts half toward each side and a missing damage type counts
// as physical. An empty roster produces zero ratios; check Empty before use.
func Summarize(opponents []domain.Entity) Summary {
	s := Summary{Count: len(opponents), Tags: map[string]int{}}

	for _, o := range opponents {
		switch o.DamageType {
		case domain.DamageMagic:
			s.Damage.Magic++
		case domain.DamageHybrid:
			s.Damage.Hybrid++
		default:
			s.Damage.Physical++
		}
		for _, tag := range o.Tags {
			s.Tags[tag]++
		}
	}

	total := float64(max(len(opponents), 1))
	half := 0.5 * float64(s.Damage.Hybrid)
	s.PhysicalMix = (float64(s.Damage.Physical) + half) / total
	s.MagicMix = (float64(s.Damage.Magic) + half) / total
	return s
}

// Empty reports that the summary was built from no opponents and carries no data.
func (s Summary) Empty() bool {
	return s.Count == 0
}

// SustainPressure is the combined count of sustain, heal and regen tags.
func (s Summary) SustainPressure() int {
	n := 0
	for _, tag := range sustainTags {
		n += s.Tags[tag]
	}
	return n
}

// Mix returns the ratio for one side; anything but magic reads as physical.
func (s Summary) Mix(dt domain.DamageType) float64 {
	if dt == domain.DamageMagic {
		return s.MagicMix
	}
	return s.PhysicalMix
}
