// Package services holds the playback controller that sits between the
// driving adapters (REST, CLI) and the Web API client.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ewilliams-labs/spotifywebapi/internal/core/ports"
	"github.com/ewilliams-labs/spotifywebapi/pkg/spotify"
)

var (
	// ErrNoDevices means the user has no Spotify Connect device online.
	ErrNoDevices = errors.New("service: no devices available")
	// ErrDeviceNotFound means no device matched the requested name or ID.
	ErrDeviceNotFound = errors.New("service: device not found")
	// ErrNotQueueable means a URI names something other than a track or episode.
	ErrNotQueueable = errors.New("service: only tracks and episodes can be queued")
)

// Controller coordinates device selection and playback commands.
type Controller struct {
	player ports.Player
	logger *zap.Logger
}

// NewController constructs a Controller.
func NewController(player ports.Player, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{player: player, logger: logger}
}

// Devices lists the user's devices.
func (c *Controller) Devices(ctx context.Context) ([]spotify.Device, error) {
	devices, err := c.player.AvailableDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: list devices: %w", err)
	}
	return devices, nil
}

// Status returns the current playback, or nil when nothing is playing.
func (c *Controller) Status(ctx context.Context) (*spotify.CurrentlyPlayingContext, error) {
	playback, err := c.player.CurrentPlayback(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: playback state: %w", err)
	}
	return playback, nil
}

// ResolveDevice picks a device. A non-empty query matches a device ID exactly
// or a name case-insensitively. An empty query prefers the active device and
// otherwise the first one listed.
func (c *Controller) ResolveDevice(ctx context.Context, query string) (spotify.Device, error) {
	devices, err := c.Devices(ctx)
	if err != nil {
		return spotify.Device{}, err
	}
	if len(devices) == 0 {
		return spotify.Device{}, ErrNoDevices
	}

	if query != "" {
		for _, d := range devices {
			if d.ID == query || strings.EqualFold(d.Name, query) {
				return d, nil
			}
		}
		return spotify.Device{}, fmt.Errorf("%w: %q", ErrDeviceNotFound, query)
	}

	for _, d := range devices {
		if d.IsActive {
			return d, nil
		}
	}
	return devices[0], nil
}

// Play starts req, or resumes when req is nil, on the resolved device.
func (c *Controller) Play(ctx context.Context, deviceQuery string, req *spotify.PlaybackRequest) (spotify.Device, error) {
	device, err := c.ResolveDevice(ctx, deviceQuery)
	if err != nil {
		return spotify.Device{}, err
	}

	c.logger.Info("starting playback",
		zap.String("device_id", device.ID),
		zap.String("device_name", device.Name),
		zap.Bool("resume", req == nil),
	)
	if err := c.player.ResumePlayback(ctx, req, device.ID); err != nil {
		return spotify.Device{}, fmt.Errorf("service: play on %q: %w", device.Name, err)
	}
	return device, nil
}

// Pause pauses the active device, or the named one.
func (c *Controller) Pause(ctx context.Context, deviceQuery string) error {
	deviceID, err := c.optionalDevice(ctx, deviceQuery)
	if err != nil {
		return err
	}
	if err := c.player.PausePlayback(ctx, deviceID); err != nil {
		return fmt.Errorf("service: pause: %w", err)
	}
	return nil
}

// Enqueue validates every URI before adding them to the queue in order.
func (c *Controller) Enqueue(ctx context.Context, uris []string, deviceQuery string) error {
	ids := make([]spotify.Identifier, 0, len(uris))
	for _, raw := range uris {
		id, err := spotify.ParseIdentifier(raw)
		if err != nil {
			return fmt.Errorf("service: enqueue: %w", err)
		}
		if id.Category != spotify.CategoryTrack && id.Category != spotify.CategoryEpisode {
			return fmt.Errorf("%w: %s", ErrNotQueueable, raw)
		}
		ids = append(ids, id)
	}

	deviceID, err := c.optionalDevice(ctx, deviceQuery)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := c.player.AddToQueue(ctx, id, deviceID); err != nil {
			return fmt.Errorf("service: enqueue %s: %w", id.URI(), err)
		}
	}
	return nil
}

func (c *Controller) optionalDevice(ctx context.Context, query string) (string, error) {
	if query == "" {
		return "", nil
	}
	device, err := c.ResolveDevice(ctx, query)
	if err != nil {
		return "", err
	}
	return device.ID, nil
}
