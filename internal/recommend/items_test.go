package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CounterPicker/internal/domain"
)

func itemCatalog(ids ...string) ItemIndex {
	items := make([]domain.Entity, 0, len(ids))
	for _, id := range ids {
		items = append(items, domain.Entity{ID: domain.SlugID(id), Name: id})
	}
	return NewItemIndex(items)
}

func allItems() ItemIndex {
	return itemCatalog(
		ItemAthenasShield, ItemRadiantArmor, ItemAntiqueCuirass, ItemBladeArmor,
		ItemDominanceIce, ItemImmortality, ItemBladeOfDespair, ItemMaleficRoar,
		ItemSeaHalberd, ItemGeniusWand, ItemDivineGlaive, ItemNecklaceOfDurance,
	)
}

func ids(items []domain.Entity) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID.String())
	}
	return out
}

func TestDefenseAllMagicNoSustain(t *testing.T) {
	t.Parallel()

	opponents := []domain.Entity{hero("a", domain.DamageMagic), hero("b", domain.DamageMagic)}
	got := Defense(hero("me", domain.DamagePhysical), opponents, allItems())

	assert.Equal(t, []string{ItemAthenasShield, ItemRadiantArmor, ItemImmortality}, ids(got))
}

func TestDefenseSplitRosterCoversBoth(t *testing.T) {
	t.Parallel()

	opponents := []domain.Entity{hero("a", domain.DamageHybrid), hero("b", domain.DamageHybrid, "heal")}
	got := Defense(domain.Entity{}, opponents, allItems())

	assert.Equal(t, []string{
		ItemAthenasShield, ItemRadiantArmor, ItemAntiqueCuirass, ItemBladeArmor,
		ItemDominanceIce, ItemImmortality,
	}, ids(got))
}

func TestDefenseDropsItemsMissingFromCatalog(t *testing.T) {
	t.Parallel()

	opponents := []domain.Entity{hero("a", domain.DamagePhysical, "regen")}
	got := Defense(domain.Entity{}, opponents, itemCatalog(ItemBladeArmor, ItemImmortality))

	assert.Equal(t, []string{ItemBladeArmor, ItemImmortality}, ids(got))
}

func TestDefenseEmptyOpponents(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Defense(domain.Entity{}, nil, allItems()))
}

func TestOffensePhysicalIntoTank(t *testing.T) {
	t.Parallel()

	tank := hero("t", domain.DamagePhysical)
	tank.Roles = []string{"Tank"}
	opponents := []domain.Entity{tank, hero("p", domain.DamagePhysical), hero("q", domain.DamagePhysical)}

	got := Offense(hero("me", domain.DamagePhysical), opponents, allItems())
	assert.Equal(t, []string{ItemBladeOfDespair, ItemMaleficRoar}, ids(got))
}

func TestOffensePhysicalNoPenetrationAgainstPhysicalSquishies(t *testing.T) {
	t.Parallel()

	opponents := []domain.Entity{hero("p", domain.DamagePhysical), hero("q", domain.DamagePhysical, "sustain")}

	got := Offense(hero("me", domain.DamagePhysical), opponents, allItems())
	assert.Equal(t, []string{ItemBladeOfDespair, ItemSeaHalberd}, ids(got))
}

func TestOffenseMagicBranch(t *testing.T) {
	t.Parallel()

	opponents := []domain.Entity{hero("p", domain.DamagePhysical, "heal")}

	got := Offense(hero("me", domain.DamageMagic), opponents, allItems())
	assert.Equal(t, []string{ItemGeniusWand, ItemDivineGlaive, ItemNecklaceOfDurance}, ids(got))
}

func TestOffenseHybridAndUnsetUsePhysicalBuild(t *testing.T) {
	t.Parallel()

	opponents := []domain.Entity{hero("m", domain.DamageMagic)}
	for _, dt := range []domain.DamageType{domain.DamageHybrid, domain.DamageUnset} {
		got := Offense(hero("me", dt), opponents, allItems())
		require.NotEmpty(t, got)
		assert.Equal(t, ItemBladeOfDespair, got[0].ID.String(), "damage type %q", dt)
		assert.Contains(t, ids(got), ItemMaleficRoar)
	}
}

func TestItemIndexResolveDedupes(t *testing.T) {
	t.Parallel()

	idx := itemCatalog("a", "b", "a")
	assert.Equal(t, []string{"b", "a"}, ids(idx.Resolve([]string{"b", "x", "a", "b"})))
}
