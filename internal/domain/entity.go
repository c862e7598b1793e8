package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Status is the lifecycle state assigned to an entity by enrichment.
type Status string

const (
	StatusPresent    Status = "present"
	StatusCancelled  Status = "cancelled"
	StatusUnreleased Status = "unreleased"
	StatusRemoved    Status = "removed"
	StatusUnknown    Status = "unknown"
)

// Statuses lists the taxonomy in reporting order.
var Statuses = []Status{StatusPresent, StatusCancelled, StatusUnreleased, StatusRemoved, StatusUnknown}

// Valid reports whether s is one of the taxonomy values.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Excluded reports whether an entity with this status must not be recommended.
func (s Status) Excluded() bool {
	return s == StatusCancelled || s == StatusRemoved
}

// DamageType classifies a hero's primary damage output.
type DamageType string

const (
	DamagePhysical DamageType = "physical"
	DamageMagic    DamageType = "magic"
	DamageHybrid   DamageType = "hybrid"
	DamageUnset    DamageType = ""
)

// EntityID is a catalog identity. Heroes use integers, items use slugs;
// the original JSON form is kept so catalogs round-trip unchanged.
type EntityID struct {
	value   string
	numeric bool
}

// IntID builds a numeric identity.
func IntID(n int) EntityID {
	return EntityID{value: strconv.Itoa(n), numeric: true}
}

// SlugID builds a string identity.
func SlugID(s string) EntityID {
	return EntityID{value: s}
}

// String returns the identity as text regardless of its JSON form.
func (id EntityID) String() string {
	return id.value
}

// IsZero reports whether the identity is absent.
func (id EntityID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON writes numbers as numbers and slugs as strings.
func (id EntityID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = EntityID{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("entity id: %w", err)
		}
		*id = EntityID{value: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("entity id: %w", err)
	}
	*id = EntityID{value: n.String(), numeric: true}
	return nil
}

// Entity is a hero or an item record from a catalog file.
// Roles, Lanes, Year, Img, Type, Notes and Icon are carried for the
// presentation layer and never interpreted by enrichment or scoring.
// Keys the struct does not model survive a decode/encode cycle, see
// entity_json.go.
type Entity struct {
	ID         EntityID   `json:"id"`
	Name       string     `json:"name"`
	Roles      []string   `json:"roles,omitempty"`
	Lanes      []string   `json:"lanes,omitempty"`
	Year       *int       `json:"year,omitempty"`
	Img        string     `json:"img,omitempty"`
	DamageType DamageType `json:"damageType,omitempty"`
	Type       string     `json:"type,omitempty"`
	Tags       []string   `json:"tags"`
	Notes      string     `json:"notes,omitempty"`
	Icon       string     `json:"icon,omitempty"`
	Status     Status     `json:"status,omitempty"`

	raw []rawField
}

// HasRole reports an exact, case-sensitive role match.
func (e Entity) HasRole(role string) bool {
	for _, r := range e.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Matches reports whether ref names this entity by name or by id.
func (e Entity) Matches(ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return false
	}
	return ref == strings.TrimSpace(e.Name) || (!e.ID.IsZero() && ref == e.ID.String())
}
