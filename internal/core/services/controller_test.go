package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ewilliams-labs/spotifywebapi/internal/core/ports"
	"github.com/ewilliams-labs/spotifywebapi/pkg/spotify"
)

var _ ports.Player = (*spotify.Client)(nil)

// mockPlayer records the commands it receives.
type mockPlayer struct {
	devices   []spotify.Device
	devErr    error
	playback  *spotify.CurrentlyPlayingContext
	resumeErr error

	resumedOn string
	resumeReq *spotify.PlaybackRequest
	pausedOn  *string
	queued    []string
	queuedOn  string
}

func (m *mockPlayer) AvailableDevices(ctx context.Context) ([]spotify.Device, error) {
	return m.devices, m.devErr
}

func (m *mockPlayer) CurrentPlayback(ctx context.Context) (*spotify.CurrentlyPlayingContext, error) {
	return m.playback, nil
}

func (m *mockPlayer) AddToQueue(ctx context.Context, uri spotify.URIConvertible, deviceID string) error {
	m.queued = append(m.queued, uri.URI())
	m.queuedOn = deviceID
	return nil
}

func (m *mockPlayer) PausePlayback(ctx context.Context, deviceID string) error {
	m.pausedOn = &deviceID
	return nil
}

func (m *mockPlayer) ResumePlayback(ctx context.Context, req *spotify.PlaybackRequest, deviceID string) error {
	m.resumedOn = deviceID
	m.resumeReq = req
	return m.resumeErr
}

var (
	iphone   = spotify.Device{ID: "476da515c6109d1351359b4c2ad313161f79b173", Name: "Peter's iPhone", Type: spotify.DeviceSmartphone}
	computer = spotify.Device{ID: "ced8d42d0a3830065dfbf4800352d23a96b76fd4", Name: "Peter's Computer", Type: spotify.DeviceComputer}
)

func TestController_ResolveDevice(t *testing.T) {
	activeComputer := computer
	activeComputer.IsActive = true

	tests := []struct {
		name    string
		devices []spotify.Device
		devErr  error
		query   string
		wantID  string
		wantErr error
	}{
		{name: "no devices", devices: []spotify.Device{}, wantErr: ErrNoDevices},
		{name: "first when none active", devices: []spotify.Device{iphone, computer}, wantID: iphone.ID},
		{name: "active preferred", devices: []spotify.Device{iphone, activeComputer}, wantID: computer.ID},
		{name: "by name ignoring case", devices: []spotify.Device{iphone, computer}, query: "peter's computer", wantID: computer.ID},
		{name: "by id", devices: []spotify.Device{iphone, activeComputer}, query: iphone.ID, wantID: iphone.ID},
		{name: "unknown name", devices: []spotify.Device{iphone}, query: "Kitchen", wantErr: ErrDeviceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(&mockPlayer{devices: tt.devices, devErr: tt.devErr}, nil)

			got, err := c.ResolveDevice(context.Background(), tt.query)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestController_Play(t *testing.T) {
	m := &mockPlayer{devices: []spotify.Device{iphone, computer}}
	c := NewController(m, nil)

	req := spotify.NewContextPlayback(spotify.URI("spotify:album:3vukTUpiENDHDoYTVrwqtz"))
	device, err := c.Play(context.Background(), "Peter's Computer", req)
	require.NoError(t, err)
	require.Equal(t, computer.ID, device.ID)
	require.Equal(t, computer.ID, m.resumedOn)
	require.Same(t, req, m.resumeReq)
}

func TestController_PlayWrapsPlayerError(t *testing.T) {
	pe := &spotify.PlayerError{Message: "Premium required", Reason: spotify.ReasonPremiumRequired, StatusCode: 403}
	c := NewController(&mockPlayer{devices: []spotify.Device{iphone}, resumeErr: pe}, nil)

	_, err := c.Play(context.Background(), "", nil)

	var got *spotify.PlayerError
	require.True(t, errors.As(err, &got))
	require.Equal(t, spotify.ReasonPremiumRequired, got.Reason)
}

func TestController_Pause(t *testing.T) {
	t.Run("active device skips lookup", func(t *testing.T) {
		m := &mockPlayer{devErr: errors.New("should not be called")}
		require.NoError(t, NewController(m, nil).Pause(context.Background(), ""))
		require.NotNil(t, m.pausedOn)
		require.Empty(t, *m.pausedOn)
	})

	t.Run("named device", func(t *testing.T) {
		m := &mockPlayer{devices: []spotify.Device{iphone, computer}}
		require.NoError(t, NewController(m, nil).Pause(context.Background(), iphone.Name))
		require.Equal(t, iphone.ID, *m.pausedOn)
	})
}

func TestController_Enqueue(t *testing.T) {
	tests := []struct {
		name       string
		uris       []string
		wantQueued []string
		wantErr    error
	}{
		{
			name:       "tracks and episodes in order",
			uris:       []string{"spotify:track:0bxcUgWlOURkU6lZt4zog0", "spotify:episode:1Vrpa83y0vBdWZqeEbkKk3"},
			wantQueued: []string{"spotify:track:0bxcUgWlOURkU6lZt4zog0", "spotify:episode:1Vrpa83y0vBdWZqeEbkKk3"},
		},
		{
			name:    "album rejected before any request",
			uris:    []string{"spotify:track:0bxcUgWlOURkU6lZt4zog0", "spotify:album:3vukTUpiENDHDoYTVrwqtz"},
			wantErr: ErrNotQueueable,
		},
		{
			name:    "malformed uri",
			uris:    []string{"not-a-uri"},
			wantErr: spotify.ErrInvalidURI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockPlayer{}
			err := NewController(m, nil).Enqueue(context.Background(), tt.uris, "")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Empty(t, m.queued)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantQueued, m.queued)
		})
	}
}

func TestController_Status(t *testing.T) {
	c := NewController(&mockPlayer{}, nil)
	playback, err := c.Status(context.Background())
	require.NoError(t, err)
	require.Nil(t, playback)
}
