// Package prompts builds every prompt sent to the narrator model: world
// creation, element generation, the per-turn game master exchange and
// location descriptions. Keeping the text here keeps the services layer
// free of game knowledge.
package prompts

import "fmt"

// GameMasterSystem instructs the model to respond to player actions and to
// signal structured effects with directive tags.
const GameMasterSystem = `You are the AI game master for a text RPG. Respond to the player's action with a
vivid description of what happens. Keep your response under 2 paragraphs.

If the action leads to:
1. Combat - indicate this with [COMBAT] at the end of your response, followed by enemy name
2. Finding an item - indicate this with [ITEM] at the end, followed by item name
3. Changing location - indicate this with [LOCATION] at the end, followed by new location name
4. A significant event that should be recorded - indicate with [EVENT] and a brief description

Otherwise, respond naturally without special tags. Do not write anything on behalf of the player, or their actions.`

// WorldCreationSystem asks for a world definition as a single JSON object.
const WorldCreationSystem = `You are a creative world-building AI for an RPG game. Create a detailed and cohesive world based on
the player's concept. Include the following: world name, theme, brief description, and unique elements.
Format as JSON with the fields: name, description, theme.
Keep your response focused only on the JSON output.`

// LocationSystem asks for a description of a newly discovered location.
const LocationSystem = "You are an RPG location designer. Create a vivid description for a new location."

// IntroSystem styles the opening narration.
const IntroSystem = "You are a narrative AI for an RPG game. Create immersive, descriptive text."

// WorldCreation is the user prompt for the initial world definition.
func WorldCreation(concept string) string {
	return fmt.Sprintf("Create a world based on this concept: %s", concept)
}

// ElementSystem asks for a JSON array of entities of one kind. The field
// guide covers every kind so the model keeps formats consistent across
// generation calls.
func ElementSystem(kind string) string {
	return fmt.Sprintf(`You are a creative RPG content creator. Based on the world description, generate a list of
%s that would fit well in this world. Format as a JSON array of objects.

For plots: Include "title" and "description" fields.
For characters: Include "name", "role", and "description" fields.
For locations: Include "name", "type", and "description" fields.
For enemies: Include "name", "difficulty" (1-10), "health", "attack", "defense", and "description" fields.
For items: Include "name", "type", "effect", and "description" fields. Items should be one of [consumable, weapon, armor]. If the item is a health consumable its effect should contain "Heal [AMOUNT TO HEAL]". If it is a weapon with an attack boost its effect should contain "+[EXTRA DAMAGE]". If it is armor with a defense boost its effect should contain "+[EXTRA DEFENSE]". Effects are not limited to these; you can and should also add items with custom effects.

Generate 15-35 entries. Keep your response focused only on the JSON output.`, kind)
}

// Element is the user prompt for generating one kind of world element.
func Element(worldName, theme, description, kind string) string {
	return fmt.Sprintf(`World name: %s
Theme: %s
Description: %s

Generate %s for this world.`, worldName, theme, description, kind)
}

// Intro asks for the opening narration of a new playthrough.
func Intro(playerName, worldName, location string) string {
	return fmt.Sprintf("Create an introductory text for a player named %s "+
		"who is starting their journey in %s. "+
		"They are currently in %s. "+
		"Make it atmospheric and engaging, about 3-4 paragraphs. "+
		"Describe the world background, a little of who the character is, why they are where they are, and what they need to do.",
		playerName, worldName, location)
}

// LocationDescription asks for prose describing a synthesized location.
func LocationDescription(name, locType, worldName, theme string) string {
	return fmt.Sprintf("Create a detailed description for a location called '%s' in a %s world named %s. The location is of type %s.",
		name, theme, worldName, locType)
}
