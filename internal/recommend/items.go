package recommend

import "CounterPicker/internal/domain"

// Item ids the rules draw from. Ids missing from the loaded item catalog are
// dropped from results.
const (
	ItemAthenasShield     = "athenas_shield"
	ItemRadiantArmor      = "radiant_armor"
	ItemAntiqueCuirass    = "antique_cuirass"
	ItemBladeArmor        = "blade_armor"
	ItemDominanceIce      = "dominance_ice"
	ItemImmortality       = "immortality"
	ItemBladeOfDespair    = "blade_of_despair"
	ItemMaleficRoar       = "malefic_roar"
	ItemSeaHalberd        = "sea_halberd"
	ItemGeniusWand        = "genius_wand"
	ItemDivineGlaive      = "divine_glaive"
	ItemNecklaceOfDurance = "necklace_of_durance"
)

const (
	mixThreshold         = 0.5
	penetrationThreshold = 0.6
	tankRole             = "Tank"
)

type offenseBuild struct {
	core        string
	penetration string
	antiHeal    string
}

var (
	physicalBuild = offenseBuild{core: ItemBladeOfDespair, penetration: ItemMaleficRoar, antiHeal: ItemSeaHalberd}
	magicBuild    = offenseBuild{core: ItemGeniusWand, penetration: ItemDivineGlaive, antiHeal: ItemNecklaceOfDurance}
)

// ItemIndex resolves item ids against a loaded item catalog.
type ItemIndex struct {
	byID map[string]domain.Entity
}

// NewItemIndex indexes items by id; the first entity wins on duplicates.
func NewItemIndex(items []domain.Entity) ItemIndex {
	idx := ItemIndex{byID: make(map[string]domain.Entity, len(items))}
	for _, it := range items {
		key := it.ID.String()
		if _, ok := idx.byID[key]; ok || key == "" {
			continue
		}
		idx.byID[key] = it
	}
	return idx
}

// Resolve dedupes ids, keeps the first occurrence order and drops ids the
// catalog does not know.
func (x ItemIndex) Resolve(ids []string) []domain.Entity {
	seen := make(map[string]struct{}, len(ids))
	out := make([]domain.Entity, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if it, ok := x.byID[id]; ok {
			out = append(out, it)
		}
	}
	return out
}

// Defense picks protective items against the opponents' damage mix. The
// player's hero is accepted for symmetry with Offense and is not consulted.
// Both resist sets fire when the roster is split exactly in half.
func Defense(_ domain.Entity, opponents []domain.Entity, items ItemIndex) []domain.Entity {
	if len(opponents) == 0 {
		return nil
	}
	s := Summarize(opponents)

	var picks []string
	if s.MagicMix >= mixThreshold {
		picks = append(picks, ItemAthenasShield, ItemRadiantArmor)
	}
	if s.PhysicalMix >= mixThreshold {
		picks = append(picks, ItemAntiqueCuirass, ItemBladeArmor)
	}
	if s.SustainPressure() >= 1 {
		picks = append(picks, ItemDominanceIce)
	}
	picks = append(picks, ItemImmortality)

	return items.Resolve(picks)
}

// Offense picks damage items for the player's hero. Magic heroes take the
// magic build; physical, hybrid and unset heroes take the physical build.
func Offense(you domain.Entity, opponents []domain.Entity, items ItemIndex) []domain.Entity {
	if len(opponents) == 0 {
		return nil
	}
	s := Summarize(opponents)

	build := physicalBuild
	if you.DamageType == domain.DamageMagic {
		build = magicBuild
	}

	picks := []string{build.core}
	if hasRole(opponents, tankRole) || s.Mix(you.DamageType) < penetrationThreshold {
		picks = append(picks, build.penetration)
	}
	if s.SustainPressure() >= 1 {
		picks = append(picks, build.antiHeal)
	}

	return items.Resolve(picks)
}

func hasRole(entities []domain.Entity, role string) bool {
	for _, e := range entities {
		if e.HasRole(role) {
			return true
		}
	}
	return false
}
