package session

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/jwebster45206/adventure-engine/pkg/world"
)

func TestSnapshot_SchemaFields(t *testing.T) {
	s := testSession()
	s.Location = "Starting Village"
	s.TurnCount = 12
	s.Journal.Record(12, "Found Rusty Key")

	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, field := range []string{"id", "player", "world_data", "current_location", "knowledge_base", "turn_count", "updated_at"} {
		if _, ok := doc[field]; !ok {
			t.Errorf("save document missing field %q", field)
		}
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	s := testSession()
	s.Location = "Dark Cave"
	s.TurnCount = 9
	s.Player.Health = 63
	s.Player.AddItem(world.Item{Name: "Silver Sword", Type: world.ItemWeapon, Effect: "+7 damage"})
	s.Journal.Record(9, "Defeated Goblin in combat")
	s.World.Enemies = append(s.World.Enemies, world.Enemy{Name: "Goblin", Difficulty: 2, Health: 40, Attack: 9, Defense: 4})

	data, err := json.Marshal(s.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	rng := rand.New(rand.NewSource(3))
	restored := Restore(&snap, rng, nil, nil)

	if restored.ID != s.ID {
		t.Errorf("id = %s, want %s", restored.ID, s.ID)
	}
	if restored.Location != "Dark Cave" || restored.TurnCount != 9 {
		t.Errorf("location/turn = %q/%d", restored.Location, restored.TurnCount)
	}
	if restored.Player.Health != 63 || len(restored.Player.Inventory) != 1 {
		t.Errorf("player = %+v", restored.Player)
	}
	if restored.Journal.Recent(1)[0] != "Turn 9: Defeated Goblin in combat" {
		t.Errorf("journal = %v", restored.Journal.Entries())
	}
	if restored.InCombat() {
		t.Error("restored session must resume in exploration")
	}

	// The restored registry must be usable for synthesis again.
	e := restored.World.Enemy("goblin", 20)
	if e.Health != 40 {
		t.Errorf("registry lookup after restore = %+v", e)
	}
}

func TestRestore_NilSections(t *testing.T) {
	snap := &Snapshot{}
	restored := Restore(snap, rand.New(rand.NewSource(1)), nil, nil)

	if restored.Player == nil || restored.World == nil || restored.Journal == nil {
		t.Fatal("restore must backfill missing sections")
	}
	if restored.Player.Name != "Adventurer" {
		t.Errorf("player name = %q", restored.Player.Name)
	}
}
