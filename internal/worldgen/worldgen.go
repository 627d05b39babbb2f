// Package worldgen populates a world registry from the narrator model at
// the start of a playthrough. The model is asked for JSON; because the
// text channel is unreliable, every parse failure degrades to built-in
// defaults instead of aborting setup.
package worldgen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jwebster45206/adventure-engine/internal/services"
	"github.com/jwebster45206/adventure-engine/pkg/prompts"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// Kinds of world elements, generated in this order.
var elementKinds = []string{"plots", "characters", "locations", "enemies", "items"}

// Generator drives world setup against the narrator model.
type Generator struct {
	llm    services.LLMService
	logger *slog.Logger
}

// New creates a world generator.
func New(llm services.LLMService, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{llm: llm, logger: logger}
}

// CreateWorld asks the model for a world definition based on the player's
// concept and fills the registry's name, theme and description. Any
// failure falls back to a default world.
func (g *Generator) CreateWorld(ctx context.Context, reg *world.Registry, concept string) {
	response, err := g.llm.Generate(ctx, prompts.WorldCreation(concept), prompts.WorldCreationSystem)
	if err == nil {
		var def struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Theme       string `json:"theme"`
		}
		if jsonStr, exErr := extractObject(response); exErr != nil {
			err = exErr
		} else if umErr := json.Unmarshal([]byte(jsonStr), &def); umErr != nil {
			err = umErr
		} else {
			reg.Name = def.Name
			reg.Description = def.Description
			reg.Theme = def.Theme
			reg.FillDefaults()
			return
		}
	}

	g.logger.Warn("World creation degraded to defaults", "error", err)
	reg.Name = "Mystical Realm"
	reg.Description = "A world of magic and mystery awaits you."
	reg.Theme = "Fantasy"
}

// GenerateElements asks the model for each kind of world element in turn.
// A kind that fails to generate or parse is left empty; defaults are
// substituted for absent fields on everything that did parse.
func (g *Generator) GenerateElements(ctx context.Context, reg *world.Registry) {
	for _, kind := range elementKinds {
		g.logger.Info("Generating world elements", "kind", kind)

		response, err := g.llm.Generate(ctx,
			prompts.Element(reg.Name, reg.Theme, reg.Description, kind),
			prompts.ElementSystem(kind))
		if err != nil {
			g.logger.Warn("Element generation failed", "kind", kind, "error", err)
			continue
		}

		jsonStr, err := extractArray(response)
		if err != nil {
			g.logger.Warn("Element response had no JSON array", "kind", kind, "error", err)
			continue
		}

		if err := unmarshalElements(reg, kind, jsonStr); err != nil {
			g.logger.Warn("Element parsing failed", "kind", kind, "error", err)
			continue
		}
	}
	reg.FillDefaults()
}

// EnsureStartingLocation guarantees at least one location exists and
// returns the name of the location the playthrough begins in.
func (g *Generator) EnsureStartingLocation(reg *world.Registry) string {
	if len(reg.Locations) == 0 {
		reg.Locations = append(reg.Locations, world.Location{
			Name:        "Starting Village",
			Type:        "settlement",
			Description: "A small village on the edge of the wilderness.",
		})
	}
	return reg.Locations[0].Name
}

// Describer adapts the narrator service to the registry's location
// synthesis hook.
func Describer(llm services.LLMService) world.LocationDescriber {
	return describer{llm: llm}
}

type describer struct {
	llm services.LLMService
}

func (d describer) DescribeLocation(ctx context.Context, name, locType, worldName, theme string) (string, error) {
	return d.llm.Generate(ctx,
		prompts.LocationDescription(name, locType, worldName, theme),
		prompts.LocationSystem)
}

func unmarshalElements(reg *world.Registry, kind string, jsonStr string) error {
	data := []byte(jsonStr)
	switch kind {
	case "plots":
		return json.Unmarshal(data, &reg.Plots)
	case "characters":
		return json.Unmarshal(data, &reg.Characters)
	case "locations":
		return json.Unmarshal(data, &reg.Locations)
	case "enemies":
		return json.Unmarshal(data, &reg.Enemies)
	case "items":
		return json.Unmarshal(data, &reg.Items)
	default:
		return fmt.Errorf("unknown element kind: %s", kind)
	}
}

// extractObject returns the first balanced JSON object in s. Models often
// wrap their JSON in prose.
func extractObject(s string) (string, error) {
	s = strings.TrimSpace(s)
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", fmt.Errorf("no JSON object found in response")
	}

	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("unbalanced JSON object in response")
}

// extractArray returns the outermost JSON array in s.
func extractArray(s string) (string, error) {
	s = strings.TrimSpace(s)
	start := strings.IndexByte(s, '[')
	end := strings.LastIndexByte(s, ']')
	if start < 0 || end < start {
		return "", fmt.Errorf("no JSON array found in response")
	}
	return s[start : end+1], nil
}
