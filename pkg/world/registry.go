package world

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LocationDescriber produces a narrative description for a newly synthesized
// location. Implementations typically call the narrator model and may block;
// a failure must surface as an error so the registry can substitute a
// generic description instead of aborting.
type LocationDescriber interface {
	DescribeLocation(ctx context.Context, name string, locType string, worldName string, theme string) (string, error)
}

var locationTypes = []string{"settlement", "dungeon", "wilderness", "landmark"}

// Registry holds every entity known to a single game world. Collections are
// append-only: a name that misses lookup is synthesized with default stats
// and registered, so later lookups of the same name are stable.
//
// Registry is owned by one session and is not safe for concurrent use.
type Registry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Theme       string `json:"theme"`

	Plots      []Plot      `json:"plots"`
	Characters []Character `json:"characters"`
	Locations  []Location  `json:"locations"`
	Enemies    []Enemy     `json:"enemies"`
	Items      []Item      `json:"items"`

	rng       *rand.Rand
	describer LocationDescriber
	logger    *slog.Logger
}

// NewRegistry creates an empty registry. The rng drives synthesis stats and
// must not be nil. describer may be nil; synthesized locations then get a
// generic description.
func NewRegistry(rng *rand.Rand, describer LocationDescriber, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		Plots:      make([]Plot, 0),
		Characters: make([]Character, 0),
		Locations:  make([]Location, 0),
		Enemies:    make([]Enemy, 0),
		Items:      make([]Item, 0),
		rng:        rng,
		describer:  describer,
		logger:     logger,
	}
}

// AttachRuntime re-binds the unexported runtime dependencies after a
// registry has been restored from a save document.
func (r *Registry) AttachRuntime(rng *rand.Rand, describer LocationDescriber, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	r.rng = rng
	r.describer = describer
	r.logger = logger
}

// Enemy returns the enemy template matching name, synthesizing one scaled to
// the current turn count on a miss. Callers that mutate enemy state during
// combat must work on the returned copy, never write back to the registry.
func (r *Registry) Enemy(name string, turn int) Enemy {
	for i := range r.Enemies {
		if strings.EqualFold(r.Enemies[i].Name, name) {
			return r.Enemies[i]
		}
	}

	difficulty := randInt(r.rng, 1, min(10, turn/5+1))
	e := Enemy{
		Name:        displayName(name),
		Difficulty:  difficulty,
		Health:      20 * difficulty,
		Attack:      5 + difficulty*2,
		Defense:     2 + difficulty,
		Description: fmt.Sprintf("A mysterious %s.", name),
	}
	r.Enemies = append(r.Enemies, e)
	r.logger.Debug("Synthesized enemy",
		"name", e.Name,
		"difficulty", e.Difficulty,
		"health", e.Health)
	return e
}

// Item returns the item matching name, synthesizing a misc item on a miss.
func (r *Registry) Item(name string) Item {
	for i := range r.Items {
		if strings.EqualFold(r.Items[i].Name, name) {
			return r.Items[i]
		}
	}

	it := Item{
		Name:        displayName(name),
		Type:        ItemMisc,
		Effect:      "Unknown",
		Description: fmt.Sprintf("A mysterious %s.", name),
	}
	r.Items = append(r.Items, it)
	r.logger.Debug("Synthesized item", "name", it.Name)
	return it
}

// Location returns the location matching name, synthesizing one on a miss.
// Synthesis is the only registry path with an external dependency: the
// description comes from the narrator and may block on the context. A
// describer failure degrades to a generic description.
func (r *Registry) Location(ctx context.Context, name string) Location {
	for i := range r.Locations {
		if strings.EqualFold(r.Locations[i].Name, name) {
			return r.Locations[i]
		}
	}

	locType := locationTypes[r.rng.Intn(len(locationTypes))]
	description := fmt.Sprintf("A %s shrouded in mystery.", locType)
	if r.describer != nil {
		desc, err := r.describer.DescribeLocation(ctx, name, locType, r.Name, r.Theme)
		if err != nil {
			r.logger.Warn("Location description failed, using generic text",
				"location", name, "error", err)
		} else if strings.TrimSpace(desc) != "" {
			description = strings.TrimSpace(desc)
		}
	}

	loc := Location{
		Name:        displayName(name),
		Type:        locType,
		Description: description,
	}
	r.Locations = append(r.Locations, loc)
	r.logger.Debug("Synthesized location", "name", loc.Name, "type", loc.Type)
	return loc
}

// HasLocation reports whether a location with the given name is registered.
func (r *Registry) HasLocation(name string) bool {
	for i := range r.Locations {
		if strings.EqualFold(r.Locations[i].Name, name) {
			return true
		}
	}
	return false
}

// FillDefaults substitutes generic values for fields the world generator
// left absent, so downstream code never sees an entity without a name or
// description.
func (r *Registry) FillDefaults() {
	if r.Name == "" {
		r.Name = "Unknown Realm"
	}
	if r.Description == "" {
		r.Description = "A mysterious world."
	}
	if r.Theme == "" {
		r.Theme = "Fantasy"
	}
	for i := range r.Locations {
		if r.Locations[i].Description == "" {
			r.Locations[i].Description = fmt.Sprintf("A place called %s.", r.Locations[i].Name)
		}
	}
	for i := range r.Enemies {
		e := &r.Enemies[i]
		if e.Difficulty <= 0 {
			e.Difficulty = 1
		}
		if e.Health <= 0 {
			e.Health = 20 * e.Difficulty
		}
		if e.Attack <= 0 {
			e.Attack = 5 + e.Difficulty*2
		}
		if e.Defense <= 0 {
			e.Defense = 2 + e.Difficulty
		}
		if e.Description == "" {
			e.Description = fmt.Sprintf("A mysterious %s.", e.Name)
		}
	}
	for i := range r.Items {
		it := &r.Items[i]
		if it.Type == "" {
			it.Type = ItemMisc
		}
		if it.Effect == "" {
			it.Effect = "Unknown"
		}
		if it.Description == "" {
			it.Description = fmt.Sprintf("A mysterious %s.", it.Name)
		}
	}
}

// displayName canonicalizes the casing of a synthesized entity name, so a
// narrator reference to "dark cave" registers as "Dark Cave".
func displayName(name string) string {
	name = strings.TrimSpace(name)
	if name == strings.ToLower(name) {
		return cases.Title(language.English).String(name)
	}
	return name
}

// randInt returns a random int in [lo, hi], matching the inclusive bounds
// used by the synthesis formulas.
func randInt(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
