package world

// Entity kinds recognized by the registry. Each kind lives in its own
// collection and is unique by case-insensitive name within it.

// Location is a named place in the game world. The world has no explicit
// location graph; travel is driven by the narrator and locations are
// synthesized on first reference.
type Location struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"` // settlement, dungeon, wilderness, landmark
	Description string `json:"description"`
}

// Character is a non-player character.
type Character struct {
	Name        string `json:"name"`
	Role        string `json:"role,omitempty"`
	Description string `json:"description"`
}

// Enemy is a combat-capable creature template. Templates are never mutated
// by combat; an encounter clones the template it fights.
type Enemy struct {
	Name        string `json:"name"`
	Difficulty  int    `json:"difficulty"`
	Health      int    `json:"health"`
	Attack      int    `json:"attack"`
	Defense     int    `json:"defense"`
	Description string `json:"description"`
}

// Item type values. Anything else is treated as misc.
const (
	ItemConsumable = "consumable"
	ItemWeapon     = "weapon"
	ItemArmor      = "armor"
	ItemMisc       = "misc"
)

// Item is a carryable object. Effect is free text produced by the narrator;
// the effect parser extracts magnitudes from it.
type Item struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Effect      string `json:"effect"`
	Description string `json:"description"`
}

// Plot is a story hook generated during world setup. Plots are surfaced in
// prompts but carry no mechanical state.
type Plot struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
