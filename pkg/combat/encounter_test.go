package combat

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/jwebster45206/adventure-engine/pkg/actor"
	"github.com/jwebster45206/adventure-engine/pkg/journal"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// Stats are chosen so the damage rolls collapse to their deterministic
// floors: an attacker with 0 attack always deals exactly 1 damage, so the
// outcome does not depend on the rng draw sequence.

func testEncounter(enemy world.Enemy, player *actor.Player, turn int) (*Encounter, *journal.Journal) {
	j := journal.New()
	rng := rand.New(rand.NewSource(7))
	return NewEncounter(enemy, player, j, rng, turn), j
}

func lastEntry(t *testing.T, j *journal.Journal) string {
	t.Helper()
	recent := j.Recent(1)
	if len(recent) == 0 {
		t.Fatal("journal is empty")
	}
	return recent[0]
}

func TestNewEncounter_JournalsTheMeeting(t *testing.T) {
	player := actor.NewPlayer("")
	_, j := testEncounter(world.Enemy{Name: "Goblin", Health: 40}, player, 4)

	if got := lastEntry(t, j); got != "Turn 4: Encountered and fought Goblin" {
		t.Errorf("journal entry = %q", got)
	}
}

func TestEncounter_AttackDamageFloor(t *testing.T) {
	player := actor.NewPlayer("")
	player.Attack = 0 // base roll collapses to 0, damage floors at 1
	enemy := world.Enemy{Name: "Stone Golem", Health: 10, Attack: 0, Defense: 50}
	e, _ := testEncounter(enemy, player, 1)

	rep, err := e.Turn(Action{Kind: ActionAttack})
	if err != nil {
		t.Fatalf("Turn: %v", err)
	}

	if e.Enemy.Health != 9 {
		t.Errorf("enemy health = %d, want 9 (damage floors at 1)", e.Enemy.Health)
	}
	if player.Health != 99 {
		t.Errorf("player health = %d, want 99 (enemy damage floors at 1)", player.Health)
	}
	if rep.Over {
		t.Error("encounter should continue")
	}
}

func TestEncounter_AttackDoesNotTouchTemplate(t *testing.T) {
	player := actor.NewPlayer("")
	player.Attack = 0
	template := world.Enemy{Name: "Goblin", Health: 40, Attack: 0, Defense: 4}
	e, _ := testEncounter(template, player, 1)

	if _, err := e.Turn(Action{Kind: ActionAttack}); err != nil {
		t.Fatalf("Turn: %v", err)
	}
	if template.Health != 40 {
		t.Errorf("template health = %d, combat must fight a copy", template.Health)
	}
	if e.Enemy.Health != 39 {
		t.Errorf("encounter enemy health = %d, want 39", e.Enemy.Health)
	}
}

func TestEncounter_Victory(t *testing.T) {
	player := actor.NewPlayer("")
	player.Attack = 0
	player.Health = 50
	enemy := world.Enemy{Name: "Slime", Health: 1, Attack: 8, Defense: 0}
	e, j := testEncounter(enemy, player, 2)

	rep, err := e.Turn(Action{Kind: ActionAttack})
	if err != nil {
		t.Fatalf("Turn: %v", err)
	}

	if !rep.Victory || !rep.Over {
		t.Fatalf("expected victory, got %+v", rep)
	}
	if player.Health != 60 {
		t.Errorf("player health = %d, want 60 after the post-battle heal", player.Health)
	}
	if got := lastEntry(t, j); got != "Turn 2: Defeated Slime in combat" {
		t.Errorf("journal entry = %q", got)
	}
	if rep.Reward != nil {
		if rep.Reward.Name != "Health Potion" {
			t.Errorf("reward = %q", rep.Reward.Name)
		}
		if len(player.Inventory) != 1 {
			t.Error("reward should be in the inventory")
		}
	}

	if _, err := e.Turn(Action{Kind: ActionAttack}); !errors.Is(err, ErrEncounterOver) {
		t.Errorf("turn after resolution: err = %v, want ErrEncounterOver", err)
	}
}

func TestEncounter_DefendRevertsBoost(t *testing.T) {
	player := actor.NewPlayer("")
	player.Defense = 10
	player.Health = 80
	enemy := world.Enemy{Name: "Bandit", Health: 30, Attack: 0, Defense: 2}
	e, _ := testEncounter(enemy, player, 1)

	rep, err := e.Turn(Action{Kind: ActionDefend})
	if err != nil {
		t.Fatalf("Turn: %v", err)
	}

	if player.Defense != 10 {
		t.Errorf("defense = %d, boost must be reverted after the turn", player.Defense)
	}
	// +5 heal (max/20), -1 from the blocked counter.
	if player.Health != 84 {
		t.Errorf("health = %d, want 84", player.Health)
	}
	if len(rep.Lines) != 3 {
		t.Errorf("report lines = %v", rep.Lines)
	}
	if rep.Over {
		t.Error("defend must not end the encounter")
	}
}

func TestEncounter_FleeAlwaysSucceedsLate(t *testing.T) {
	player := actor.NewPlayer("")
	enemy := world.Enemy{Name: "Wraith", Health: 60, Attack: 12, Defense: 5}
	// Turn 40 pushes the flee chance to 1.0, so every draw succeeds.
	e, j := testEncounter(enemy, player, 40)

	rep, err := e.Turn(Action{Kind: ActionFlee})
	if err != nil {
		t.Fatalf("Turn: %v", err)
	}

	if !rep.Fled || !rep.Over || rep.Victory {
		t.Fatalf("expected a clean escape, got %+v", rep)
	}
	if player.Health != 100 {
		t.Errorf("player health = %d, escape must cost nothing", player.Health)
	}
	if e.Enemy.Health != 60 {
		t.Errorf("enemy health = %d, escape grants no damage", e.Enemy.Health)
	}
	if got := lastEntry(t, j); got != "Turn 40: Fled from combat with Wraith" {
		t.Errorf("journal entry = %q", got)
	}
}

func TestEncounter_UseUnknownItemCostsNoTurn(t *testing.T) {
	player := actor.NewPlayer("")
	enemy := world.Enemy{Name: "Goblin", Health: 40, Attack: 9, Defense: 4}
	e, _ := testEncounter(enemy, player, 1)

	_, err := e.Turn(Action{Kind: ActionUse, Item: "Phantom Blade"})
	if !errors.Is(err, actor.ErrItemNotCarried) {
		t.Fatalf("err = %v, want ErrItemNotCarried", err)
	}
	if player.Health != 100 {
		t.Errorf("player health = %d, enemy must not act on a rejected action", player.Health)
	}
	if e.Over() {
		t.Error("encounter should still be active")
	}
}

func TestEncounter_UseItemThenEnemyActs(t *testing.T) {
	player := actor.NewPlayer("")
	player.Health = 40
	player.AddItem(world.Item{Name: "Health Potion", Type: world.ItemConsumable, Effect: "Restores 50 health"})
	enemy := world.Enemy{Name: "Goblin", Health: 40, Attack: 0, Defense: 4}
	e, _ := testEncounter(enemy, player, 1)

	rep, err := e.Turn(Action{Kind: ActionUse, Item: "health potion"})
	if err != nil {
		t.Fatalf("Turn: %v", err)
	}

	// +50 heal, then the enemy's floored 1 damage.
	if player.Health != 89 {
		t.Errorf("player health = %d, want 89", player.Health)
	}
	if len(player.Inventory) != 0 {
		t.Error("potion should be consumed")
	}
	if rep.Over {
		t.Error("item use must not end the encounter")
	}
}

func TestEncounter_DefeatRevivesPlayer(t *testing.T) {
	player := actor.NewPlayer("")
	player.Attack = 0
	player.Health = 1
	enemy := world.Enemy{Name: "Dread Knight", Health: 500, Attack: 0, Defense: 0}
	e, j := testEncounter(enemy, player, 5)

	rep, err := e.Turn(Action{Kind: ActionAttack})
	if err != nil {
		t.Fatalf("Turn: %v", err)
	}

	if !rep.Over || rep.Victory || rep.Fled {
		t.Fatalf("expected defeat resolution, got %+v", rep)
	}
	if player.Health != 25 {
		t.Errorf("player health = %d, want revival at a quarter of max", player.Health)
	}
	if got := lastEntry(t, j); !strings.Contains(got, "Was defeated by Dread Knight but mysteriously revived") {
		t.Errorf("journal entry = %q", got)
	}
}
