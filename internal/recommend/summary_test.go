package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CounterPicker/internal/domain"
)

func hero(name string, dt domain.DamageType, tags ...string) domain.Entity {
	return domain.Entity{ID: domain.SlugID(name), Name: name, DamageType: dt, Tags: tags}
}

func TestSummarizeMix(t *testing.T) {
	t.Parallel()

	s := Summarize([]domain.Entity{
		hero("a", domain.DamagePhysical),
		hero("b", domain.DamagePhysical),
		hero("c", domain.DamageMagic),
	})
	assert.InDelta(t, 2.0/3.0, s.PhysicalMix, 1e-9)
	assert.InDelta(t, 1.0/3.0, s.MagicMix, 1e-9)
	assert.Equal(t, DamageCounts{Physical: 2, Magic: 1}, s.Damage)

	s = Summarize([]domain.Entity{hero("a", domain.DamageHybrid), hero("b", domain.DamageHybrid)})
	assert.InDelta(t, 0.5, s.PhysicalMix, 1e-9)
	assert.InDelta(t, 0.5, s.MagicMix, 1e-9)
}

func TestSummarizeDefaultsMissingDamageToPhysical(t *testing.T) {
	t.Parallel()

	s := Summarize([]domain.Entity{hero("a", domain.DamageUnset), hero("b", domain.DamageMagic)})
	assert.Equal(t, 1, s.Damage.Physical)
	assert.InDelta(t, 0.5, s.PhysicalMix, 1e-9)
}

func TestSummarizeTagsAndSustain(t *testing.T) {
	t.Parallel()

	s := Summarize([]domain.Entity{
		hero("a", domain.DamagePhysical, "sustain", "burst"),
		hero("b", domain.DamageMagic, "heal", "sustain"),
		hero("c", domain.DamageMagic, "regen"),
	})
	require.Equal(t, map[string]int{"sustain": 2, "burst": 1, "heal": 1, "regen": 1}, s.Tags)
	assert.Equal(t, 4, s.SustainPressure())
}

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()

	s := Summarize(nil)
	assert.True(t, s.Empty())
	assert.Zero(t, s.PhysicalMix)
	assert.Zero(t, s.MagicMix)
	assert.Zero(t, s.SustainPressure())
}
