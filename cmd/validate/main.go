package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jwebster45206/adventure-engine/pkg/journal"
	"github.com/jwebster45206/adventure-engine/pkg/session"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <save.json>\n", os.Args[0])
		os.Exit(1)
	}

	filename := os.Args[1]
	validator := &SaveValidator{}

	if err := validator.validateFile(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Save file is valid!")
}

type SaveValidator struct {
	errors []string
}

func (v *SaveValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	var snap session.Snapshot
	decoder := json.NewDecoder(strings.NewReader(string(data)))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&snap); err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}

	v.validateSnapshot(&snap)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}

	return nil
}

func (v *SaveValidator) validateSnapshot(snap *session.Snapshot) {
	if snap.Player == nil {
		v.addError("player is missing")
	} else {
		v.validatePlayer(snap)
	}

	if snap.World == nil {
		v.addError("world_data is missing")
	} else {
		v.validateWorld(snap)
	}

	if snap.Journal == nil {
		v.addError("knowledge_base is missing")
	} else if snap.Journal.Len() > journal.Capacity {
		v.addError(fmt.Sprintf("knowledge_base has %d entries, exceeds capacity %d",
			snap.Journal.Len(), journal.Capacity))
	}

	if snap.TurnCount < 0 {
		v.addError(fmt.Sprintf("turn_count %d is negative", snap.TurnCount))
	}
	if snap.Location == "" {
		v.addError("current_location is empty")
	}
}

func (v *SaveValidator) validatePlayer(snap *session.Snapshot) {
	p := snap.Player
	if p.Name == "" {
		v.addError("player name is empty")
	}
	if p.MaxHealth <= 0 {
		v.addError(fmt.Sprintf("player max_health %d must be positive", p.MaxHealth))
	}
	if p.Health < 0 || p.Health > p.MaxHealth {
		v.addError(fmt.Sprintf("player health %d out of range [0, %d]", p.Health, p.MaxHealth))
	}
	if p.Attack < 0 {
		v.addError(fmt.Sprintf("player attack %d is negative", p.Attack))
	}
	if p.Defense < 0 {
		v.addError(fmt.Sprintf("player defense %d is negative", p.Defense))
	}
	for i, item := range p.Inventory {
		if item.Name == "" {
			v.addError(fmt.Sprintf("inventory item %d has no name", i))
		}
	}
}

func (v *SaveValidator) validateWorld(snap *session.Snapshot) {
	w := snap.World
	if w.Name == "" {
		v.addError("world name is empty")
	}

	v.checkUniqueNames("enemy", enemyNames(snap))
	v.checkUniqueNames("item", itemNames(snap))
	v.checkUniqueNames("location", locationNames(snap))

	for _, e := range w.Enemies {
		if e.Health <= 0 {
			v.addError(fmt.Sprintf("enemy %q has non-positive health %d", e.Name, e.Health))
		}
	}
}

// checkUniqueNames flags case-insensitive duplicates, which would make
// registry lookups ambiguous.
func (v *SaveValidator) checkUniqueNames(kind string, names []string) {
	seen := make(map[string]string, len(names))
	for _, name := range names {
		key := strings.ToLower(name)
		if prev, ok := seen[key]; ok {
			v.addError(fmt.Sprintf("duplicate %s name: %q conflicts with %q", kind, name, prev))
			continue
		}
		seen[key] = name
	}
}

func enemyNames(snap *session.Snapshot) []string {
	names := make([]string, 0, len(snap.World.Enemies))
	for _, e := range snap.World.Enemies {
		names = append(names, e.Name)
	}
	return names
}

func itemNames(snap *session.Snapshot) []string {
	names := make([]string, 0, len(snap.World.Items))
	for _, it := range snap.World.Items {
		names = append(names, it.Name)
	}
	return names
}

func locationNames(snap *session.Snapshot) []string {
	names := make([]string, 0, len(snap.World.Locations))
	for _, loc := range snap.World.Locations {
		names = append(names, loc.Name)
	}
	return names
}

func (v *SaveValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}
