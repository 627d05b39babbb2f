package actor

import (
	"errors"
	"testing"

	"github.com/jwebster45206/adventure-engine/pkg/effect"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

func TestNewPlayer(t *testing.T) {
	p := NewPlayer("Rina")
	if p.Name != "Rina" {
		t.Errorf("name = %q", p.Name)
	}
	if p.Health != 100 || p.MaxHealth != 100 || p.Attack != 10 || p.Defense != 5 {
		t.Errorf("unexpected starting stats: %+v", p)
	}

	anon := NewPlayer("")
	if anon.Name != "Adventurer" {
		t.Errorf("empty name should default to Adventurer, got %q", anon.Name)
	}
}

func TestPlayer_HealClampsToMax(t *testing.T) {
	p := NewPlayer("")
	p.Health = 90

	if got := p.Heal(25); got != 10 {
		t.Errorf("Heal returned %d, want actual restored 10", got)
	}
	if p.Health != p.MaxHealth {
		t.Errorf("health = %d, want %d", p.Health, p.MaxHealth)
	}
}

func TestPlayer_TakeDamageFloorsAtZero(t *testing.T) {
	p := NewPlayer("")
	p.TakeDamage(250)
	if p.Health != 0 {
		t.Errorf("health = %d, want 0", p.Health)
	}
	if !p.IsDown() {
		t.Error("expected IsDown after lethal damage")
	}
}

func TestPlayer_FindItemCaseInsensitive(t *testing.T) {
	p := NewPlayer("")
	p.AddItem(world.Item{Name: "Health Potion", Type: world.ItemConsumable})

	if _, ok := p.FindItem("health potion"); !ok {
		t.Error("expected case-insensitive lookup to find the item")
	}
	if _, ok := p.FindItem("Mana Potion"); ok {
		t.Error("unexpected match for absent item")
	}
}

func TestPlayer_UseItem(t *testing.T) {
	t.Run("missing item is rejected without mutation", func(t *testing.T) {
		p := NewPlayer("")
		_, err := p.UseItem("Phantom Blade")
		if !errors.Is(err, ErrItemNotCarried) {
			t.Fatalf("err = %v, want ErrItemNotCarried", err)
		}
		if p.Health != 100 || p.Attack != 10 || p.Defense != 5 {
			t.Errorf("stats changed on rejected use: %+v", p)
		}
	})

	t.Run("healing consumable restores health and is removed", func(t *testing.T) {
		p := NewPlayer("")
		p.Health = 40
		p.AddItem(world.Item{Name: "Health Potion", Type: world.ItemConsumable, Effect: "Restores 50 health"})

		res, err := p.UseItem("Health Potion")
		if err != nil {
			t.Fatalf("UseItem: %v", err)
		}
		if res.HealedBy != 50 {
			t.Errorf("healed = %d, want 50", res.HealedBy)
		}
		if p.Health != 90 {
			t.Errorf("health = %d, want 90", p.Health)
		}
		if !res.Consumed || len(p.Inventory) != 0 {
			t.Error("consumable should be removed after use")
		}
	})

	t.Run("heal is reported after clamping", func(t *testing.T) {
		p := NewPlayer("")
		p.Health = 95
		p.AddItem(world.Item{Name: "Health Potion", Type: world.ItemConsumable, Effect: "Restores 50 health"})

		res, _ := p.UseItem("Health Potion")
		if res.HealedBy != 5 {
			t.Errorf("healed = %d, want 5 after clamp", res.HealedBy)
		}
	})

	t.Run("unrecognized consumable is still consumed", func(t *testing.T) {
		p := NewPlayer("")
		p.AddItem(world.Item{Name: "Bitter Root", Type: world.ItemConsumable, Effect: "Tastes awful"})

		res, err := p.UseItem("Bitter Root")
		if err != nil {
			t.Fatalf("UseItem: %v", err)
		}
		if res.Effect.Kind != effect.KindNone {
			t.Errorf("effect kind = %v, want KindNone", res.Effect.Kind)
		}
		if !res.Consumed || len(p.Inventory) != 0 {
			t.Error("consumable should be removed even without a recognized effect")
		}
	})

	t.Run("weapon bonus is permanent and compounds", func(t *testing.T) {
		p := NewPlayer("")
		p.AddItem(world.Item{Name: "Silver Sword", Type: world.ItemWeapon, Effect: "+7 damage"})

		if _, err := p.UseItem("Silver Sword"); err != nil {
			t.Fatalf("UseItem: %v", err)
		}
		if p.Attack != 17 {
			t.Errorf("attack = %d, want 17", p.Attack)
		}
		if len(p.Inventory) != 1 {
			t.Error("weapons should stay in the inventory")
		}

		if _, err := p.UseItem("Silver Sword"); err != nil {
			t.Fatalf("second UseItem: %v", err)
		}
		if p.Attack != 24 {
			t.Errorf("attack = %d after second use, want 24", p.Attack)
		}
	})

	t.Run("armor raises defense", func(t *testing.T) {
		p := NewPlayer("")
		p.AddItem(world.Item{Name: "Iron Shield", Type: world.ItemArmor, Effect: "+4 defense"})

		if _, err := p.UseItem("Iron Shield"); err != nil {
			t.Fatalf("UseItem: %v", err)
		}
		if p.Defense != 9 {
			t.Errorf("defense = %d, want 9", p.Defense)
		}
	})
}

func TestPlayer_DescribeUse(t *testing.T) {
	p := NewPlayer("")
	p.Health = 40
	p.AddItem(world.Item{Name: "Health Potion", Type: world.ItemConsumable, Effect: "Restores 50 health"})

	res, err := p.UseItem("Health Potion")
	if err != nil {
		t.Fatalf("UseItem: %v", err)
	}
	lines := p.DescribeUse(res)
	if len(lines) != 1 || lines[0] != "You used Health Potion and recovered 50 health!" {
		t.Errorf("lines = %v", lines)
	}

	p.AddItem(world.Item{Name: "Club", Type: world.ItemWeapon, Effect: ""})
	res, err = p.UseItem("Club")
	if err != nil {
		t.Fatalf("UseItem: %v", err)
	}
	lines = p.DescribeUse(res)
	if len(lines) != 2 {
		t.Fatalf("lines = %v", lines)
	}
	if lines[1] != "Your attack increases to 15!" {
		t.Errorf("equip line = %q", lines[1])
	}
}
