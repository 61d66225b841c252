// Package main is the entry point for the arena generator.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"

	"github.com/samdwyer/bulletarena/internal/config"
	"github.com/samdwyer/bulletarena/internal/game"
	"github.com/samdwyer/bulletarena/internal/gamedata"
	"github.com/samdwyer/bulletarena/internal/spawn"
	"github.com/samdwyer/bulletarena/internal/store"
	"github.com/samdwyer/bulletarena/internal/telemetry"
	"github.com/samdwyer/bulletarena/internal/world"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	seed := flag.Int64("seed", cfg.Seed, "seed for arena generation (0 = random)")
	phrase := flag.String("phrase", cfg.SeedPhrase, "seed phrase, hashed into the seed")
	rooms := flag.Int("rooms", cfg.Params.RoomCount, "number of rooms")
	width := flag.Int("width", cfg.Params.Width, "grid width")
	height := flag.Int("height", cfg.Params.Height, "grid height")
	headless := flag.Bool("headless", false, "print the arena to stdout instead of opening the preview")
	save := flag.String("save", "", "save the generated arena under `name`")
	load := flag.String("load", "", "load the arena saved under `name` instead of generating")
	list := flag.Bool("list", false, "list saved arenas and exit")
	flag.Parse()

	cfg.Seed = *seed
	cfg.SeedPhrase = *phrase
	cfg.Params.RoomCount = *rooms
	cfg.Params.Width = *width
	cfg.Params.Height = *height

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Generator will run without tracing")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	var storage store.Storage
	if *save != "" || *load != "" || *list || !*headless {
		storage, err = store.Open(ctx, cfg.Store)
		if err != nil {
			log.Fatalf("Failed to open level store: %v", err)
		}
		defer storage.Close()
	}

	if *list {
		names, err := storage.ListLevels(ctx)
		if err != nil {
			log.Fatalf("Failed to list levels: %v", err)
		}
		fmt.Println(strings.Join(names, "\n"))
		return
	}

	var level *world.Level
	if *load != "" {
		level, err = storage.LoadLevel(ctx, *load)
		if err != nil {
			log.Fatalf("Failed to load level %q: %v", *load, err)
		}
	} else {
		level, err = world.NewGenerator(cfg.Params, cfg.ResolveSeed()).Generate(ctx)
		if err != nil {
			log.Fatalf("Failed to generate arena: %v", err)
		}
	}

	if *save != "" {
		if err := storage.SaveLevel(ctx, *save, level); err != nil {
			log.Fatalf("Failed to save level %q: %v", *save, err)
		}
		log.Printf("Saved level %s as %q", level.ID, *save)
	}

	if *headless {
		if err := printLevel(level); err != nil {
			log.Fatalf("Failed to plan spawns: %v", err)
		}
		return
	}

	g, err := game.New(storage, level)
	if err != nil {
		log.Fatalf("Failed to initialize preview: %v", err)
	}
	if err := g.Run(ctx); err != nil {
		log.Fatalf("Preview error: %v", err)
	}
}

// printLevel writes the grid and a spawn summary to stdout.
func printLevel(level *world.Level) error {
	plan, err := spawn.NewPlan(level, gamedata.MustLoadEnemyRegistry(), gamedata.MustLoadWaveConfig(),
		rand.New(rand.NewSource(level.Seed)))
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, level.Grid.String())
	fmt.Fprintf(os.Stdout, "level %s seed %d: %d rooms, %d corridors, %d corridor cells, fingerprint %016x\n",
		level.ID, level.Seed, len(level.Rooms), len(level.Edges),
		level.Grid.Count(world.CellCorridor), level.Grid.Fingerprint())
	if !plan.HasPlayerStart() {
		fmt.Fprintln(os.Stdout, "no rooms: no player start or spawners")
		return nil
	}
	fmt.Fprintf(os.Stdout, "player starts in room %d at %v\n", plan.PlayerRoom, plan.PlayerStart)
	for _, s := range plan.Spawners {
		fmt.Fprintf(os.Stdout, "  room %d spawner at %v: %d enemies in %d waves\n",
			s.RoomID, s.Position, s.EnemyCount(), len(s.Waves))
	}
	return nil
}
