// Package effect extracts numeric magnitudes from the free-text effect
// strings the narrator writes on items. The text channel is unreliable, so
// every extraction has a documented default.
package effect

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// Kind classifies the mechanical effect of using an item.
type Kind int

const (
	// KindNone means the item has flavor text only and no numeric effect.
	KindNone Kind = iota
	// KindHeal restores player health, clamped to max health.
	KindHeal
	// KindAttackBonus permanently raises player attack.
	KindAttackBonus
	// KindDefenseBonus permanently raises player defense.
	KindDefenseBonus
)

const (
	defaultHeal         = 20
	defaultAttackBonus  = 5
	defaultDefenseBonus = 3
)

var (
	firstIntPattern = regexp.MustCompile(`\d+`)
	bonusPattern    = regexp.MustCompile(`\+(\d+)`)
)

// Effect is the parsed numeric effect of an item.
type Effect struct {
	Kind   Kind
	Amount int
}

// Parse inspects an item's type and effect text and returns the numeric
// effect to apply. Consumables heal only when the effect text mentions
// healing; the first integer literal in the text is the amount (default 20).
// Weapons and armor yield a "+N" bonus (defaults 5 and 3).
func Parse(item world.Item) Effect {
	switch strings.ToLower(item.Type) {
	case world.ItemConsumable:
		lower := strings.ToLower(item.Effect)
		if !strings.Contains(lower, "heal") && !strings.Contains(lower, "health") {
			return Effect{Kind: KindNone}
		}
		return Effect{Kind: KindHeal, Amount: firstInt(item.Effect, defaultHeal)}
	case world.ItemWeapon:
		return Effect{Kind: KindAttackBonus, Amount: plusBonus(item.Effect, defaultAttackBonus)}
	case world.ItemArmor:
		return Effect{Kind: KindDefenseBonus, Amount: plusBonus(item.Effect, defaultDefenseBonus)}
	default:
		return Effect{Kind: KindNone}
	}
}

// firstInt returns the first integer literal in s, or def if none parses.
func firstInt(s string, def int) int {
	m := firstIntPattern.FindString(s)
	if m == "" {
		return def
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return def
	}
	return n
}

// plusBonus returns N from the first "+N" in s, or def if absent.
func plusBonus(s string, def int) int {
	m := bonusPattern.FindStringSubmatch(s)
	if m == nil {
		return def
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return def
	}
	return n
}
