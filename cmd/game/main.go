package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jwebster45206/adventure-engine/internal/config"
	"github.com/jwebster45206/adventure-engine/internal/game"
	"github.com/jwebster45206/adventure-engine/internal/logger"
	"github.com/jwebster45206/adventure-engine/internal/services"
	"github.com/jwebster45206/adventure-engine/internal/storage"
	"github.com/jwebster45206/adventure-engine/internal/worldgen"
	"github.com/jwebster45206/adventure-engine/pkg/session"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

const logFileName = "adventure.log"

func main() {
	cfg := config.Load()

	// The TUI owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logFile.Close() }()
	log := logger.Setup(cfg, logFile)

	log.Info("Starting adventure engine",
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider)

	var llm services.LLMService
	switch cfg.LLMProvider {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			fmt.Fprintln(os.Stderr, "ANTHROPIC_API_KEY is required when using the anthropic provider.")
			os.Exit(1)
		}
		llm = services.NewAnthropicService(cfg.AnthropicAPIKey, cfg.ModelName, log)
	case "ollama":
		llm = services.NewOllamaService(cfg.OllamaURL, cfg.ModelName, log)
	default:
		fmt.Fprintf(os.Stderr, "Invalid LLM provider %q (supported: ollama, anthropic)\n", cfg.LLMProvider)
		os.Exit(1)
	}

	var store storage.Storage
	if cfg.RedisURL != "" {
		redisStore := storage.NewRedisStore(cfg.RedisURL, log)
		pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := redisStore.Ping(pingCtx)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not connect to Redis at %s: %v\n", cfg.RedisURL, err)
			os.Exit(1)
		}
		store = redisStore
	} else {
		store = storage.NewFileStore(cfg.SavePath, log)
	}
	defer func() { _ = store.Close() }()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	in := bufio.NewScanner(os.Stdin)

	model := chooseModel(in, llm, cfg.ModelName)
	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	err = llm.InitModel(initCtx, model)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize narrator model: %v\n", err)
		os.Exit(1)
	}

	sess := resumeSession(in, store, rng, llm, log)
	fresh := sess == nil
	if fresh {
		sess = newSession(in, rng, llm, log)
	}

	engine := game.NewEngine(sess, llm, store, log)

	p := tea.NewProgram(NewGameUI(engine, fresh), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// resumeSession offers to continue a previous save. Returns nil when no save
// exists or the player declines.
func resumeSession(in *bufio.Scanner, store storage.Storage, rng *rand.Rand, llm services.LLMService, log *slog.Logger) *session.Session {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snap, err := store.LoadSession(ctx, uuid.Nil)
	if err != nil {
		log.Warn("Could not read previous save", "error", err)
		return nil
	}
	if snap == nil {
		return nil
	}

	name := "Adventurer"
	if snap.Player != nil {
		name = snap.Player.Name
	}
	worldName := "an unknown world"
	if snap.World != nil {
		worldName = snap.World.Name
	}
	fmt.Printf("Found a saved game for %s in %s (turn %d).\n", name, worldName, snap.TurnCount)
	if !askYesNo(in, "Continue it?") {
		return nil
	}
	return session.Restore(snap, rng, worldgen.Describer(llm), log)
}

// chooseModel lists the provider's models and lets the player pick one.
func chooseModel(in *bufio.Scanner, llm services.LLMService, fallback string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	models, err := llm.ListModels(ctx)
	if err != nil || len(models) == 0 {
		return fallback
	}
	if len(models) == 1 {
		return models[0]
	}

	fmt.Println("Available models:")
	for i, m := range models {
		fmt.Printf("  %d. %s\n", i+1, m)
	}
	fmt.Print("\nSelect a model number: ")
	if in.Scan() {
		if n, err := strconv.Atoi(strings.TrimSpace(in.Text())); err == nil && n >= 1 && n <= len(models) {
			return models[n-1]
		}
	}
	if fallback != "" {
		fmt.Printf("Using default model: %s\n", fallback)
		return fallback
	}
	return models[0]
}

// newSession runs first-time setup: character name, world concept, world
// generation.
func newSession(in *bufio.Scanner, rng *rand.Rand, llm services.LLMService, log *slog.Logger) *session.Session {
	fmt.Print("\nEnter your character's name [Adventurer]: ")
	name := ""
	if in.Scan() {
		name = strings.TrimSpace(in.Text())
	}

	fmt.Println("\nDescribe the world you want to explore (be as detailed or vague as you like):")
	fmt.Print("> ")
	concept := ""
	if in.Scan() {
		concept = strings.TrimSpace(in.Text())
	}

	reg := world.NewRegistry(rng, worldgen.Describer(llm), log)
	gen := worldgen.New(llm, log)

	setupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	fmt.Println("\nCreating your world... This might take a moment.")
	gen.CreateWorld(setupCtx, reg, concept)
	fmt.Printf("\n%s (%s)\n%s\n", reg.Name, reg.Theme, reg.Description)

	fmt.Println("\nGenerating game elements...")
	gen.GenerateElements(setupCtx, reg)

	sess := session.New(name, reg, rng, log)
	sess.Location = gen.EnsureStartingLocation(reg)
	return sess
}

func askYesNo(in *bufio.Scanner, prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	if !in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(in.Text()))
	return answer == "y" || answer == "yes"
}
