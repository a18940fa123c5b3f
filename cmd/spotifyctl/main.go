// Command spotifyctl controls Spotify Connect playback from the terminal and
// can expose the same controls as a small local HTTP API.
//
//	spotifyctl auth                      authorize and store a user token
//	spotifyctl devices                   list devices
//	spotifyctl status                    show what is playing
//	spotifyctl play [flags] [uri...]     start or resume playback
//	spotifyctl pause [-device name]      pause playback
//	spotifyctl queue [-device name] uri  add tracks or episodes to the queue
//	spotifyctl serve                     run the REST control API
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/ewilliams-labs/spotifywebapi/internal/config"
	"github.com/ewilliams-labs/spotifywebapi/pkg/logging"
)

const tokenLabel = "default"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	logging.BootstrapWith(logging.Options{Label: logging.DefaultLabel, Level: cfg.LogLevel, Output: os.Stderr})
	defer func() { _ = zap.L().Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, args := os.Args[1], os.Args[2:]
	run, ok := commands[cmd]
	if !ok {
		usage()
		os.Exit(2)
	}
	if err := run(ctx, cfg, args); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fatal(err)
	}
}

type command func(ctx context.Context, cfg config.Config, args []string) error

var commands = map[string]command{
	"auth":    runAuth,
	"devices": runDevices,
	"status":  runStatus,
	"play":    runPlay,
	"pause":   runPause,
	"queue":   runQueue,
	"serve":   runServe,
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: spotifyctl <auth|devices|status|play|pause|queue|serve> [flags]")
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
	os.Exit(1)
}
