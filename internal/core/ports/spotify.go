package ports

import (
	"context"

	"github.com/ewilliams-labs/spotifywebapi/pkg/spotify"
)

// Player is the subset of the Web API client the controller drives.
type Player interface {
	AvailableDevices(ctx context.Context) ([]spotify.Device, error)
	CurrentPlayback(ctx context.Context) (*spotify.CurrentlyPlayingContext, error)
	AddToQueue(ctx context.Context, uri spotify.URIConvertible, deviceID string) error
	PausePlayback(ctx context.Context, deviceID string) error
	ResumePlayback(ctx context.Context, req *spotify.PlaybackRequest, deviceID string) error
}
