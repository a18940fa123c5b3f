package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

var (
	readPlayback   = []Scope{ScopeUserReadPlaybackState}
	modifyPlayback = []Scope{ScopeUserModifyPlaybackState}
)

// AvailableDevices returns the user's Spotify Connect devices.
//
// The response is unwrapped from its {"devices": [...]} envelope; a body
// without the key yields a *MissingKeyError.
func (c *Client) AvailableDevices(ctx context.Context) ([]Device, error) {
	ep := endpoint{method: http.MethodGet, path: "/me/player/devices", scopes: readPlayback}

	resp, err := c.apiRequest(ctx, ep, nil, nil)
	if err != nil {
		return nil, err
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(resp.body, &envelope); err != nil {
		return nil, &DecodeError{Target: ep.path, Err: err}
	}
	raw, ok := envelope["devices"]
	if !ok {
		return nil, &MissingKeyError{Key: "devices", Body: resp.body}
	}

	var devices []Device
	if err := json.Unmarshal(raw, &devices); err != nil {
		return nil, &DecodeError{Target: ep.path, Err: err}
	}
	if devices == nil {
		devices = []Device{}
	}
	return devices, nil
}

// CurrentPlayback returns the user's playback state: active device, current
// item, progress, shuffle and repeat state. It returns nil and no error when
// nothing is playing.
func (c *Client) CurrentPlayback(ctx context.Context) (*CurrentlyPlayingContext, error) {
	ep := endpoint{method: http.MethodGet, path: "/me/player", scopes: readPlayback}

	var playback CurrentlyPlayingContext
	resp, err := c.getRequest(ctx, ep, nil, &playback)
	if err != nil {
		return nil, err
	}
	if resp.status == http.StatusNoContent || len(resp.body) == 0 {
		return nil, nil
	}
	return &playback, nil
}

// AddToQueue adds a track or episode to the end of the playback queue. Leave
// deviceID empty to target the active device; targeting a device that is not
// playing tends to fail with a 403 and ReasonUnknown.
func (c *Client) AddToQueue(ctx context.Context, uri URIConvertible, deviceID string) error {
	ep := endpoint{method: http.MethodPost, path: "/me/player/queue", scopes: modifyPlayback}
	q := newQuery().set("uri", uri.URI()).set("device_id", deviceID)

	_, err := c.apiRequest(ctx, ep, q, nil)
	return err
}

// PausePlayback pauses playback. The command is asynchronous on Spotify's
// side; use CurrentPlayback to confirm it took effect.
func (c *Client) PausePlayback(ctx context.Context, deviceID string) error {
	ep := endpoint{method: http.MethodPut, path: "/me/player/pause", scopes: modifyPlayback}

	_, err := c.apiRequest(ctx, ep, newQuery().set("device_id", deviceID), nil)
	return err
}

// ResumePlayback starts a new context or, with a nil request, resumes the
// current item.
func (c *Client) ResumePlayback(ctx context.Context, req *PlaybackRequest, deviceID string) error {
	ep := endpoint{method: http.MethodPut, path: "/me/player/play", scopes: modifyPlayback}
	q := newQuery().set("device_id", deviceID)

	if req == nil {
		_, err := c.apiRequest(ctx, ep, q, nil)
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	_, err := c.apiRequest(ctx, ep, q, req)
	return err
}

// SkipToNext skips to the next item in the queue.
func (c *Client) SkipToNext(ctx context.Context, deviceID string) error {
	ep := endpoint{method: http.MethodPost, path: "/me/player/next", scopes: modifyPlayback}

	_, err := c.apiRequest(ctx, ep, newQuery().set("device_id", deviceID), nil)
	return err
}

// SkipToPrevious skips to the previous item.
func (c *Client) SkipToPrevious(ctx context.Context, deviceID string) error {
	ep := endpoint{method: http.MethodPost, path: "/me/player/previous", scopes: modifyPlayback}

	_, err := c.apiRequest(ctx, ep, newQuery().set("device_id", deviceID), nil)
	return err
}

// SeekToPosition seeks within the current item.
func (c *Client) SeekToPosition(ctx context.Context, positionMS int, deviceID string) error {
	if positionMS < 0 {
		return fmt.Errorf("spotify: seek position must not be negative, got %d", positionMS)
	}
	ep := endpoint{method: http.MethodPut, path: "/me/player/seek", scopes: modifyPlayback}
	q := newQuery().set("position_ms", strconv.Itoa(positionMS)).set("device_id", deviceID)

	_, err := c.apiRequest(ctx, ep, q, nil)
	return err
}

// SetVolume sets the volume of the target device, 0 to 100.
func (c *Client) SetVolume(ctx context.Context, percent int, deviceID string) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("spotify: volume must be between 0 and 100, got %d", percent)
	}
	ep := endpoint{method: http.MethodPut, path: "/me/player/volume", scopes: modifyPlayback}
	q := newQuery().set("volume_percent", strconv.Itoa(percent)).set("device_id", deviceID)

	_, err := c.apiRequest(ctx, ep, q, nil)
	return err
}

// SetShuffle turns shuffle on or off.
func (c *Client) SetShuffle(ctx context.Context, on bool, deviceID string) error {
	ep := endpoint{method: http.MethodPut, path: "/me/player/shuffle", scopes: modifyPlayback}
	q := newQuery().set("state", strconv.FormatBool(on)).set("device_id", deviceID)

	_, err := c.apiRequest(ctx, ep, q, nil)
	return err
}

// SetRepeatMode sets the repeat mode.
func (c *Client) SetRepeatMode(ctx context.Context, mode RepeatMode, deviceID string) error {
	if !mode.Valid() {
		return fmt.Errorf("spotify: unknown repeat mode %q", mode)
	}
	ep := endpoint{method: http.MethodPut, path: "/me/player/repeat", scopes: modifyPlayback}
	q := newQuery().set("state", string(mode)).set("device_id", deviceID)

	_, err := c.apiRequest(ctx, ep, q, nil)
	return err
}

type transferPlaybackRequest struct {
	DeviceIDs []string `json:"device_ids"`
	Play      bool     `json:"play"`
}

// TransferPlayback moves playback to deviceID. With play false the current
// playing state is kept.
func (c *Client) TransferPlayback(ctx context.Context, deviceID string, play bool) error {
	if deviceID == "" {
		return fmt.Errorf("spotify: transfer playback requires a device id")
	}
	ep := endpoint{method: http.MethodPut, path: "/me/player", scopes: modifyPlayback}

	_, err := c.apiRequest(ctx, ep, nil, transferPlaybackRequest{DeviceIDs: []string{deviceID}, Play: play})
	return err
}
