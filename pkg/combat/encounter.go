// Package combat runs the turn-based encounter state machine. An encounter
// owns an independent copy of the enemy it was started with; the registry
// template is never touched by combat damage.
package combat

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/jwebster45206/adventure-engine/pkg/actor"
	"github.com/jwebster45206/adventure-engine/pkg/journal"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// ErrEncounterOver is returned when a turn is taken on a resolved encounter.
var ErrEncounterOver = errors.New("encounter already resolved")

const (
	critChance      = 0.25
	rewardChance    = 0.6
	itemLossChance  = 0.5
	baseFleeChance  = 0.6
	fleeDamageFloor = 2
)

// Report describes the outcome of one combat turn as display-ready lines
// plus the structured facts the caller needs to drive the session.
type Report struct {
	Lines   []string
	Over    bool // encounter resolved, session returns to exploration
	Victory bool
	Fled    bool
	Reward  *world.Item // victory reward, if one was granted
}

func (r *Report) say(format string, args ...any) {
	r.Lines = append(r.Lines, fmt.Sprintf(format, args...))
}

// Encounter is one active combat against one enemy instance. At most one
// encounter exists per session at a time.
type Encounter struct {
	Enemy world.Enemy // session-owned clone, mutated as it takes damage

	player  *actor.Player
	journal *journal.Journal
	rng     *rand.Rand
	turn    int // session turn count at encounter start
	over    bool
}

// NewEncounter starts combat against a clone of the given enemy template
// and records the meeting in the journal. The turn count fixes the flee
// success probability for the whole encounter, since exploration turns do
// not advance during combat.
func NewEncounter(enemy world.Enemy, player *actor.Player, j *journal.Journal, rng *rand.Rand, turn int) *Encounter {
	j.Record(turn, fmt.Sprintf("Encountered and fought %s", enemy.Name))
	return &Encounter{
		Enemy:   enemy,
		player:  player,
		journal: j,
		rng:     rng,
		turn:    turn,
	}
}

// Over reports whether the encounter has resolved.
func (e *Encounter) Over() bool {
	return e.over
}

// Turn applies one player action and, where the rules call for it, the
// enemy's response. An unknown item name rejects the action without
// consuming the turn. When the returned report has Over set, the caller
// must clear the encounter and return to exploration.
func (e *Encounter) Turn(action Action) (*Report, error) {
	if e.over {
		return nil, ErrEncounterOver
	}

	rep := &Report{}

	switch action.Kind {
	case ActionAttack:
		e.playerAttack(rep)
		if e.Enemy.Health <= 0 {
			e.resolveVictory(rep)
			return rep, nil
		}
		e.enemyAttack(rep)

	case ActionUse:
		res, err := e.player.UseItem(action.Item)
		if err != nil {
			return nil, err
		}
		rep.Lines = append(rep.Lines, e.player.DescribeUse(res)...)
		e.enemyAttack(rep)

	case ActionDefend:
		e.defend(rep)

	case ActionFlee:
		if e.flee(rep) {
			return rep, nil
		}

	default:
		return nil, ErrUnknownAction
	}

	if e.player.IsDown() {
		e.resolveDefeat(rep)
	}
	return rep, nil
}

// playerAttack rolls the player's base damage and applies it to the enemy,
// with a chance of a critical bonus computed from the damage already dealt.
func (e *Encounter) playerAttack(rep *Report) {
	base := rollBetween(e.rng, e.player.Attack/2, e.player.Attack)
	damage := max(1, base-e.Enemy.Defense/2)
	e.Enemy.Health -= damage
	rep.say("You attack the %s for %d damage!", e.Enemy.Name, damage)

	if e.rng.Float64() < critChance {
		crit := damage / 2
		e.Enemy.Health -= crit
		rep.say("Critical hit! +%d bonus damage!", crit)
	}
}

// enemyAttack is the enemy's standard response after an attack or item use.
func (e *Encounter) enemyAttack(rep *Report) {
	base := rollBetween(e.rng, e.Enemy.Attack/2, e.Enemy.Attack)
	damage := max(1, base-e.player.Defense/2)
	e.player.TakeDamage(damage)
	rep.say("The %s attacks you for %d damage!", e.Enemy.Name, damage)
}

// defend boosts defense for the rest of the turn, heals a little, and folds
// the enemy's counter into the same resolution step at a reduced roll
// range. The boost is always reverted before the action finishes.
func (e *Encounter) defend(rep *Report) {
	boost := e.player.Defense / 2
	e.player.Defense += boost
	defer func() { e.player.Defense -= boost }()

	healed := e.player.Heal(e.player.MaxHealth / 20)
	rep.say("You take a defensive stance, increasing your defense by %d.", boost)
	rep.say("You recover %d health.", healed)

	base := rollBetween(e.rng, e.Enemy.Attack/3, e.Enemy.Attack/2)
	damage := max(1, base-e.player.Defense/2)
	e.player.TakeDamage(damage)
	rep.say("The %s attacks, but you block most of it! %d damage taken.", e.Enemy.Name, damage)
}

// flee attempts to escape. Success ends the encounter with no rewards or
// penalties; failure exposes the player to a punitive hit with a higher
// damage floor than a normal attack. The success probability grows with
// the turn count and is deliberately left uncapped; the roll is still a
// draw in [0, 1), so values above 1 simply always succeed.
func (e *Encounter) flee(rep *Report) bool {
	chance := baseFleeChance + float64(e.turn)/100
	if e.rng.Float64() < chance {
		rep.say("You successfully escape from the %s!", e.Enemy.Name)
		e.journal.Record(e.turn, fmt.Sprintf("Fled from combat with %s", e.Enemy.Name))
		e.over = true
		rep.Over = true
		rep.Fled = true
		return true
	}

	rep.say("You fail to escape! The %s attacks while you're vulnerable!", e.Enemy.Name)
	base := rollBetween(e.rng, e.Enemy.Attack/2, e.Enemy.Attack)
	damage := max(fleeDamageFloor, base-e.player.Defense/3)
	e.player.TakeDamage(damage)
	rep.say("You take %d damage!", damage)
	return false
}

func (e *Encounter) resolveVictory(rep *Report) {
	rep.say("You defeated the %s!", e.Enemy.Name)

	if e.rng.Float64() < rewardChance {
		reward := healthPotion()
		e.player.AddItem(reward)
		rep.Reward = &reward
		rep.say("You found: %s - %s", reward.Name, reward.Description)
	}

	healed := e.player.Heal(e.player.MaxHealth / 10)
	rep.say("You recover %d health after the battle.", healed)

	e.journal.Record(e.turn, fmt.Sprintf("Defeated %s in combat", e.Enemy.Name))
	e.over = true
	rep.Over = true
	rep.Victory = true
}

func (e *Encounter) resolveDefeat(rep *Report) {
	rep.say("You have been defeated...")
	rep.say("As consciousness fades, a mysterious force intervenes...")

	e.player.Health = e.player.MaxHealth / 4

	if len(e.player.Inventory) > 0 && e.rng.Float64() < itemLossChance {
		lost := e.player.RemoveItemAt(e.rng.Intn(len(e.player.Inventory)))
		rep.say("You lost your %s in the battle!", lost.Name)
	}

	rep.say("You awaken, weakened but alive.")
	e.journal.Record(e.turn, fmt.Sprintf("Was defeated by %s but mysteriously revived", e.Enemy.Name))
	e.over = true
	rep.Over = true
}

// healthPotion is the fixed victory reward item.
func healthPotion() world.Item {
	return world.Item{
		Name:        "Health Potion",
		Type:        world.ItemConsumable,
		Effect:      "Restores 50 health",
		Description: "A small vial containing a red liquid that heals wounds.",
	}
}

// rollBetween returns a random int in [lo, hi] inclusive.
func rollBetween(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
