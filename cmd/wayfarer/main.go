// Package main provides the interactive console game binary.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/oakhaven/wayfarer/internal/config"
	"github.com/oakhaven/wayfarer/internal/game/dice"
	"github.com/oakhaven/wayfarer/internal/game/session"
	"github.com/oakhaven/wayfarer/internal/game/world"
	"github.com/oakhaven/wayfarer/internal/observability"
	"github.com/oakhaven/wayfarer/internal/scripting"
	"github.com/oakhaven/wayfarer/internal/storage"
	"github.com/oakhaven/wayfarer/internal/storage/sqlite"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty uses built-in defaults")
	newGame := flag.Bool("new", false, "start a fresh game even when a save exists")
	slot := flag.String("slot", "", "save slot override")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	}
	if *slot != "" {
		cfg.Save.Slot = *slot
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, *newGame, logger); err != nil {
		logger.Error("game exited with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, newGame bool, logger *zap.Logger) error {
	ctx := context.Background()

	loadStart := time.Now()
	cat, err := world.Load(cfg.Content.Dir)
	if err != nil {
		return fmt.Errorf("loading world: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return fmt.Errorf("validating world: %w", err)
	}
	logger.Info("world loaded",
		zap.Int("locations", len(cat.Locations)),
		zap.Duration("elapsed", time.Since(loadStart)),
	)

	store, err := sqlite.Open(cfg.Save.Path)
	if err != nil {
		return fmt.Errorf("opening save store: %w", err)
	}
	defer store.Close()

	src := dice.NewCryptoSource()
	s, err := openSession(ctx, cat, store, cfg.Save.Slot, newGame, logger, src)
	if err != nil {
		return err
	}
	s.AttachScripts(scripting.NewRunner(logger, cfg.Scripting.InstructionLimit))

	return gameLoop(ctx, s, store, cfg.Save.Slot, logger)
}

// openSession restores the save slot when present, otherwise starts fresh.
func openSession(ctx context.Context, cat *world.Catalog, store storage.SaveStore, slot string, newGame bool, logger *zap.Logger, src dice.Source) (*session.Session, error) {
	if !newGame {
		snap, err := store.Load(ctx, slot)
		switch {
		case err == nil:
			logger.Info("save loaded", zap.String("slot", slot), zap.Int("level", snap.Level))
			fmt.Printf("Welcome back, %s!\n", snap.Name)
			return session.Restore(cat, snap, logger, src)
		case !errors.Is(err, storage.ErrNotFound):
			return nil, fmt.Errorf("loading save: %w", err)
		}
	}
	fmt.Println("Starting a new adventure...")
	return session.New(cat, logger, src)
}

// gameLoop runs the numbered-menu console loop until quit, defeat, or EOF.
func gameLoop(ctx context.Context, s *session.Session, store storage.SaveStore, slot string, logger *zap.Logger) error {
	in := bufio.NewScanner(os.Stdin)

	fmt.Println(s.HandleLine("look"))
	for {
		if s.GameOver() {
			fmt.Println("\nYou have been defeated. Game Over.")
			return nil
		}
		if s.QuitRequested {
			if err := saveGame(ctx, s, store, slot); err != nil {
				return err
			}
			fmt.Println("Game saved. Farewell!")
			return nil
		}

		choices := s.Actions()
		fmt.Printf("\nHP: %d/%d | Level %d | XP: %d/%d\n", s.Player.HP, s.Player.MaxHP, s.Player.Level, s.Player.XP, s.Player.XPToNextLevel)
		for i, c := range choices {
			fmt.Printf("%d. %s\n", i+1, c.Text)
		}
		fmt.Print("> ")

		if !in.Scan() {
			return in.Err()
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		if n, err := strconv.Atoi(line); err == nil {
			if n < 1 || n > len(choices) {
				fmt.Println("That's not one of your options.")
				continue
			}
			line = choices[n-1].Line
		}

		message := s.HandleLine(line)
		if line == "save" || strings.HasPrefix(line, "save ") {
			if err := saveGame(ctx, s, store, slot); err != nil {
				return err
			}
			message = "Game saved."
		}
		if message != "" {
			fmt.Println(message)
		}
		logger.Debug("turn resolved", zap.String("mode", string(s.Mode())))
	}
}

func saveGame(ctx context.Context, s *session.Session, store storage.SaveStore, slot string) error {
	if err := store.Save(ctx, slot, session.Capture(s.Player)); err != nil {
		return fmt.Errorf("saving game: %w", err)
	}
	return nil
}
