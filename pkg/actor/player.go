package actor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jwebster45206/adventure-engine/pkg/effect"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// ErrItemNotCarried is returned when an item use names something absent
// from the player's inventory. The action is rejected with no mutation.
var ErrItemNotCarried = errors.New("item not in inventory")

const (
	defaultMaxHealth = 100
	defaultAttack    = 10
	defaultDefense   = 5
)

// Player is the mutable state of the one player character in a session.
// MaxHealth is constant after creation; Attack and Defense carry permanent
// equipment bonuses plus, during a defend action, a temporary boost that is
// always reverted before the action resolves.
type Player struct {
	Name      string       `json:"name"`
	Health    int          `json:"health"`
	MaxHealth int          `json:"max_health"`
	Attack    int          `json:"attack"`
	Defense   int          `json:"defense"`
	Inventory []world.Item `json:"inventory"`
	Skills    []string     `json:"skills"`
}

// NewPlayer creates a player with the standard starting stats.
func NewPlayer(name string) *Player {
	if name == "" {
		name = "Adventurer"
	}
	return &Player{
		Name:      name,
		Health:    defaultMaxHealth,
		MaxHealth: defaultMaxHealth,
		Attack:    defaultAttack,
		Defense:   defaultDefense,
		Inventory: make([]world.Item, 0),
		Skills:    make([]string, 0),
	}
}

// Heal restores health clamped to MaxHealth and returns the amount
// actually restored, which may be less than the nominal amount.
func (p *Player) Heal(amount int) int {
	before := p.Health
	p.Health = min(p.MaxHealth, p.Health+amount)
	return p.Health - before
}

// TakeDamage lowers health, flooring at zero.
func (p *Player) TakeDamage(amount int) {
	p.Health -= amount
	if p.Health < 0 {
		p.Health = 0
	}
}

// IsDown reports whether the player has no health left.
func (p *Player) IsDown() bool {
	return p.Health <= 0
}

// AddItem appends an item to the inventory. Duplicates are allowed.
func (p *Player) AddItem(item world.Item) {
	p.Inventory = append(p.Inventory, item)
}

// FindItem returns the index of the first inventory item matching name
// case-insensitively.
func (p *Player) FindItem(name string) (int, bool) {
	for i := range p.Inventory {
		if strings.EqualFold(p.Inventory[i].Name, name) {
			return i, true
		}
	}
	return 0, false
}

// RemoveItemAt removes and returns the inventory item at index i.
func (p *Player) RemoveItemAt(i int) world.Item {
	item := p.Inventory[i]
	p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
	return item
}

// UseResult reports what happened when an item was used.
type UseResult struct {
	Item     world.Item
	Effect   effect.Effect
	HealedBy int  // actual health restored after clamping
	Consumed bool // item was removed from inventory
}

// DescribeUse renders a use result as display lines, using the player's
// post-use stats for the equip messages.
func (p *Player) DescribeUse(res *UseResult) []string {
	switch res.Effect.Kind {
	case effect.KindHeal:
		return []string{fmt.Sprintf("You used %s and recovered %d health!", res.Item.Name, res.HealedBy)}
	case effect.KindAttackBonus:
		return []string{
			fmt.Sprintf("You equip the %s.", res.Item.Name),
			fmt.Sprintf("Your attack increases to %d!", p.Attack),
		}
	case effect.KindDefenseBonus:
		return []string{
			fmt.Sprintf("You equip the %s.", res.Item.Name),
			fmt.Sprintf("Your defense increases to %d!", p.Defense),
		}
	default:
		if res.Consumed {
			return []string{fmt.Sprintf("You used %s. %s", res.Item.Name, res.Item.Effect)}
		}
		return []string{fmt.Sprintf("You use %s. Nothing obvious happens.", res.Item.Name)}
	}
}

// UseItem applies the named inventory item to the player. Consumables are
// removed from the inventory whether or not their effect text matched a
// recognized pattern. Weapon and armor bonuses are permanent and compound
// on repeated use.
func (p *Player) UseItem(name string) (*UseResult, error) {
	idx, ok := p.FindItem(name)
	if !ok {
		return nil, ErrItemNotCarried
	}

	item := p.Inventory[idx]
	res := &UseResult{
		Item:   item,
		Effect: effect.Parse(item),
	}

	if strings.EqualFold(item.Type, world.ItemConsumable) {
		p.RemoveItemAt(idx)
		res.Consumed = true
	}

	switch res.Effect.Kind {
	case effect.KindHeal:
		res.HealedBy = p.Heal(res.Effect.Amount)
	case effect.KindAttackBonus:
		p.Attack += res.Effect.Amount
	case effect.KindDefenseBonus:
		p.Defense += res.Effect.Amount
	}

	return res, nil
}
