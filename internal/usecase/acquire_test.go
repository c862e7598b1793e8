package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"CounterPicker/internal/domain"
)

type fakeListing struct {
	members map[string][]string
	failing map[string]bool
	links   map[string][]string
	images  map[string]string
}

func (f *fakeListing) CategoryMembers(ctx context.Context, category string) ([]string, error) {
	if f.failing[category] {
		return nil, errors.New("category unavailable")
	}
	return f.members[category], nil
}

func (f *fakeListing) PageLinks(ctx context.Context, page string) ([]string, error) {
	links, ok := f.links[page]
	if !ok {
		return nil, errors.New("page missing")
	}
	return links, nil
}

func (f *fakeListing) PageImages(ctx context.Context, titles []string) (map[string]string, error) {
	out := map[string]string{}
	for _, t := range titles {
		if img, ok := f.images[t]; ok {
			out[t] = img
		}
	}
	return out, nil
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Athena's Shield":    "athenas_shield",
		"Blade of Despair":   "blade_of_despair",
		"  Wind of Nature! ": "wind_of_nature",
		"Rose Gold Meteor":   "rose_gold_meteor",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAcquireWritesBothCatalogs(t *testing.T) {
	t.Parallel()

	source := &fakeListing{
		members: map[string][]string{
			"Category:Heroes": {"Alucard", "Layla"},
			"Category:Items":  {"Blade of Despair", "Equipment", "List of items", "Athena's Shield"},
		},
		failing: map[string]bool{"Category:Equipment": true},
		images:  map[string]string{"Layla": "https://img/layla.png", "Athena's Shield": "https://img/athena.png"},
	}
	catalogs := &memCatalogs{files: map[string][]domain.Entity{}}

	heroes, items, err := NewAcquirer(source, catalogs, nil).Acquire(context.Background(), "heroes.json", "items.json")
	if err != nil {
		t.Fatalf("Acquire error: %v", err)
	}
	if heroes != 2 || items != 2 {
		t.Fatalf("unexpected counts heroes=%d items=%d", heroes, items)
	}

	gotHeroes := catalogs.files["heroes.json"]
	if gotHeroes[0].ID.String() != "1" || gotHeroes[1].Name != "Layla" || gotHeroes[1].Img != "https://img/layla.png" {
		t.Fatalf("unexpected heroes: %+v", gotHeroes)
	}
	if gotHeroes[0].Status != "" {
		t.Fatalf("acquired heroes must not carry a status")
	}

	var itemIDs []string
	for _, it := range catalogs.files["items.json"] {
		itemIDs = append(itemIDs, it.ID.String())
	}
	if diff := cmp.Diff([]string{"blade_of_despair", "athenas_shield"}, itemIDs); diff != "" {
		t.Fatalf("item ids mismatch (-want +got):\n%s", diff)
	}
	if icon := catalogs.files["items.json"][1].Icon; icon != "https://img/athena.png" {
		t.Fatalf("unexpected icon: %s", icon)
	}
}

func TestAcquireFallsBackToPageLinks(t *testing.T) {
	t.Parallel()

	source := &fakeListing{
		members: map[string][]string{},
		links:   map[string][]string{"List_of_heroes": {"Miya", "Tigreal"}},
	}

	heroes, err := NewAcquirer(source, &memCatalogs{files: map[string][]domain.Entity{}}, nil).Heroes(context.Background())
	if err != nil {
		t.Fatalf("Heroes error: %v", err)
	}
	if len(heroes) != 2 || heroes[1].Name != "Tigreal" || heroes[1].ID.String() != "2" {
		t.Fatalf("unexpected heroes: %+v", heroes)
	}
}

func TestCleanKeepsPlayableHeroes(t *testing.T) {
	t.Parallel()

	catalogs := &memCatalogs{files: map[string][]domain.Entity{"heroes.json": {
		{ID: domain.IntID(1), Name: "Alucard"},
		{ID: domain.IntID(2), Name: " Layla "},
		{ID: domain.IntID(3), Name: "Fighter"},
		{ID: domain.IntID(4), Name: "Jungler"},
		{ID: domain.IntID(5), Name: "Nobody"},
		{ID: domain.IntID(6), Name: ""},
		{ID: domain.IntID(7), Name: "Miya"},
	}}}
	source := &fakeListing{
		links:   map[string][]string{"List_of_heroes": {"Alucard", "Fighter", "Jungler"}},
		members: map[string][]string{
			"Category:Heroes":          {"Layla"},
			"Category:Playable heroes": {"Miya"},
		},
		failing: map[string]bool{"Category:Playable Heroes": true},
	}

	before, after, err := NewCleaner(source, catalogs, nil).Clean(context.Background(), "heroes.json")
	if err != nil {
		t.Fatalf("Clean error: %v", err)
	}
	if before != 7 || after != 3 {
		t.Fatalf("expected 7 -> 3, got %d -> %d", before, after)
	}

	var names []string
	for _, h := range catalogs.files["heroes.json"] {
		names = append(names, h.Name)
	}
	if diff := cmp.Diff([]string{"Alucard", " Layla ", "Miya"}, names); diff != "" {
		t.Fatalf("kept heroes mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitRemoved(t *testing.T) {
	t.Parallel()

	catalogs := &memCatalogs{files: map[string][]domain.Entity{"items.json": {
		{ID: domain.SlugID("a"), Name: "A", Status: domain.StatusPresent},
		{ID: domain.SlugID("b"), Name: "B", Status: "Removed"},
		{ID: domain.SlugID("c"), Name: "C"},
		{ID: domain.SlugID("d"), Name: "D", Status: domain.StatusRemoved},
	}}}

	kept, removed, err := SplitRemoved(context.Background(), catalogs, "items.json", "items_removed.json")
	if err != nil {
		t.Fatalf("SplitRemoved error: %v", err)
	}
	if kept != 2 || removed != 2 {
		t.Fatalf("expected 2/2, got %d/%d", kept, removed)
	}
	if got := catalogs.files["items_removed.json"]; got[0].Name != "B" || got[1].Name != "D" {
		t.Fatalf("unexpected removed items: %+v", got)
	}
}
