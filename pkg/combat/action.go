package combat

import (
	"errors"
	"strings"
)

// ErrUnknownAction is returned for combat input that matches no action.
// The turn is not consumed and the enemy does not act.
var ErrUnknownAction = errors.New("unknown combat action")

// ActionKind enumerates the player's combat actions.
type ActionKind int

const (
	ActionAttack ActionKind = iota
	ActionUse
	ActionDefend
	ActionFlee
)

// Action is a parsed combat command.
type Action struct {
	Kind ActionKind
	Item string // item name, for ActionUse
}

// ParseAction parses a raw combat input line. Recognized forms are
// "attack"/"a", "defend"/"d", "flee"/"f"/"run" and "use <item>".
func ParseAction(input string) (Action, error) {
	trimmed := strings.TrimSpace(input)
	switch strings.ToLower(trimmed) {
	case "attack", "a":
		return Action{Kind: ActionAttack}, nil
	case "defend", "d":
		return Action{Kind: ActionDefend}, nil
	case "flee", "f", "run":
		return Action{Kind: ActionFlee}, nil
	}

	if len(trimmed) > 4 && strings.EqualFold(trimmed[:4], "use ") {
		item := strings.TrimSpace(trimmed[4:])
		if item != "" {
			return Action{Kind: ActionUse, Item: item}, nil
		}
	}

	return Action{}, ErrUnknownAction
}
