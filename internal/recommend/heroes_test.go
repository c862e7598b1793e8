package recommend

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CounterPicker/internal/domain"
)

func rolesHero(id int, name string, roles ...string) domain.Entity {
	return domain.Entity{ID: domain.IntID(id), Name: name, Roles: roles}
}

func TestHeroesBaseScoreAndRoleBonus(t *testing.T) {
	t.Parallel()

	x := rolesHero(1, "X", "Fighter")
	y := rolesHero(2, "Y", "Mage")
	kb := domain.CountersKB{
		"X": {Counters: []domain.Matchup{{ID: domain.SlugID("Y"), Score: 5}}},
	}
	enemies := []domain.Entity{y}

	find := func(scores []HeroScore, name string) HeroScore {
		for _, s := range scores {
			if s.Hero.Name == name {
				return s
			}
		}
		t.Fatalf("%s not ranked", name)
		return HeroScore{}
	}

	got := find(Heroes([]domain.Entity{x, y}, enemies, "", kb), "X")
	assert.InDelta(t, 5.0, got.Base, 1e-9)
	assert.InDelta(t, 5.0, got.Total, 1e-9)

	got = find(Heroes([]domain.Entity{x, y}, enemies, "Fighter", kb), "X")
	assert.InDelta(t, 6.0, got.Total, 1e-9)

	got = find(Heroes([]domain.Entity{x, y}, enemies, "Marksman", kb), "X")
	assert.InDelta(t, 4.7, got.Total, 1e-9)
	assert.InDelta(t, -0.3, got.RoleBonus, 1e-9)
}

func TestHeroesLooksUpByNameOrID(t *testing.T) {
	t.Parallel()

	x := rolesHero(1, "X")
	enemy := rolesHero(7, "Tigreal", "Tank")
	kb := domain.CountersKB{
		"1": {
			Counters: []domain.Matchup{{ID: domain.IntID(7), Score: 3}},
			Fears:    []domain.Matchup{{ID: domain.SlugID("Tigreal"), Score: 1}},
		},
	}

	got := Heroes([]domain.Entity{x}, []domain.Entity{enemy}, "", kb)
	require.Len(t, got, 1)
	assert.InDelta(t, 2.0, got[0].Base, 1e-9)
	assert.Equal(t, []Contribution{{Enemy: "Tigreal", Counter: 3, Fear: 1}}, got[0].Contributions)
}

func TestHeroesExcludesCancelledAndRemoved(t *testing.T) {
	t.Parallel()

	gone := rolesHero(1, "Gone")
	gone.Status = domain.StatusRemoved
	scrapped := rolesHero(2, "Scrapped")
	scrapped.Status = domain.StatusCancelled
	beta := rolesHero(3, "Beta")
	beta.Status = domain.StatusUnreleased
	enemy := rolesHero(4, "Enemy")

	kb := domain.CountersKB{
		"Gone":     {Counters: []domain.Matchup{{ID: domain.SlugID("Enemy"), Score: 100}}},
		"Scrapped": {Counters: []domain.Matchup{{ID: domain.SlugID("Enemy"), Score: 100}}},
	}

	got := Heroes([]domain.Entity{gone, scrapped, beta, enemy}, []domain.Entity{enemy}, "", kb)
	names := make([]string, 0, len(got))
	for _, s := range got {
		names = append(names, s.Hero.Name)
	}
	assert.Equal(t, []string{"Beta", "Enemy"}, names)
}

func TestHeroesStableTopTen(t *testing.T) {
	t.Parallel()

	var catalog []domain.Entity
	for i := 1; i <= 15; i++ {
		catalog = append(catalog, rolesHero(i, fmt.Sprintf("H%02d", i)))
	}
	kb := domain.CountersKB{
		"H12": {Counters: []domain.Matchup{{ID: domain.SlugID("E"), Score: 2}}},
		"H03": {Fears: []domain.Matchup{{ID: domain.SlugID("E"), Score: 2}}},
	}
	enemies := []domain.Entity{{ID: domain.SlugID("E"), Name: "E"}}

	got := Heroes(catalog, enemies, "", kb)
	require.Len(t, got, TopHeroes)
	assert.Equal(t, "H12", got[0].Hero.Name)
	for i, want := range []string{"H01", "H02", "H04", "H05", "H06", "H07", "H08", "H09", "H10"} {
		assert.Equal(t, want, got[i+1].Hero.Name, "position %d", i+1)
	}
}

func TestHeroesNonFiniteScoreIsZero(t *testing.T) {
	t.Parallel()

	x := rolesHero(1, "X")
	kb := domain.CountersKB{"X": {Counters: []domain.Matchup{{ID: domain.SlugID("E"), Score: math.Inf(1)}}}}

	got := Heroes([]domain.Entity{x}, []domain.Entity{{Name: "E"}}, "", kb)
	require.Len(t, got, 1)
	assert.Zero(t, got[0].Total)
}

func TestHeroesNoEnemies(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Heroes([]domain.Entity{rolesHero(1, "X")}, nil, "", domain.CountersKB{}))
}
