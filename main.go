// glome is a terminal viewer for scenes on the surface of a hypersphere.
//
// Usage:
//
//	glome [-scene world.json] [-log glome.log] [-profile cpu|mem] [-fps 30] [-debug]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"glome/assets"
	"glome/internal/game"
	"glome/internal/scene"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"
)

func main() {
	scenePath := flag.String("scene", "", "Path to a scene JSON file (default: built-in scene)")
	logPath := flag.String("log", "", "Write the log to this file (default: discard)")
	prof := flag.String("profile", "", "Write a cpu or mem profile to the working directory")
	fps := flag.Int("fps", 30, "Frames per second")
	debug := flag.Bool("debug", false, "Start with the debug overlay shown")
	flag.Parse()

	if err := run(*scenePath, *logPath, *prof, *fps, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(scenePath, logPath, prof string, fps int, debug bool) error {
	switch prof {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile %q (want cpu or mem)", prof)
	}

	var out io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger := slog.New(slog.NewTextHandler(out, nil))

	s, err := loadScene(scenePath)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	g, err := game.New(screen, game.Config{
		Scene:         s,
		FPS:           fps,
		Debug:         debug,
		RecordSession: true,
		Logger:        logger,
	})
	if err != nil {
		screen.Fini()
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return g.Run(ctx)
}

func loadScene(path string) (*scene.Scene, error) {
	if path == "" {
		return scene.LoadBytes(assets.DefaultScene)
	}
	return scene.LoadFile(path)
}
