package spotify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// PlayerErrorReason is one of the closed set of reasons Spotify attaches to
// player errors.
type PlayerErrorReason string

const (
	ReasonNoPreviousTrack       PlayerErrorReason = "NO_PREV_TRACK"
	ReasonNoNextTrack           PlayerErrorReason = "NO_NEXT_TRACK"
	ReasonNoSpecificTrack       PlayerErrorReason = "NO_SPECIFIC_TRACK"
	ReasonAlreadyPaused         PlayerErrorReason = "ALREADY_PAUSED"
	ReasonNotPaused             PlayerErrorReason = "NOT_PAUSED"
	ReasonNotPlayingLocally     PlayerErrorReason = "NOT_PLAYING_LOCALLY"
	ReasonNotPlayingTrack       PlayerErrorReason = "NOT_PLAYING_TRACK"
	ReasonNotPlayingContext     PlayerErrorReason = "NOT_PLAYING_CONTEXT"
	ReasonEndlessContext        PlayerErrorReason = "ENDLESS_CONTEXT"
	ReasonContextDisallow       PlayerErrorReason = "CONTEXT_DISALLOW"
	ReasonAlreadyPlaying        PlayerErrorReason = "ALREADY_PLAYING"
	ReasonRateLimited           PlayerErrorReason = "RATE_LIMITED"
	ReasonRemoteControlDisallow PlayerErrorReason = "REMOTE_CONTROL_DISALLOW"
	ReasonDeviceNotControllable PlayerErrorReason = "DEVICE_NOT_CONTROLLABLE"
	ReasonVolumeControlDisallow PlayerErrorReason = "VOLUME_CONTROL_DISALLOW"
	ReasonNoActiveDevice        PlayerErrorReason = "NO_ACTIVE_DEVICE"
	ReasonPremiumRequired       PlayerErrorReason = "PREMIUM_REQUIRED"
	// ReasonUnknown is also returned by Spotify for many requests that should
	// carry one of the more specific reasons, most often when targeting a
	// non-active device.
	ReasonUnknown PlayerErrorReason = "UNKNOWN"
)

var playerErrorReasons = map[PlayerErrorReason]string{
	ReasonNoPreviousTrack:       "The command requires a previous track, but there is none in the context.",
	ReasonNoNextTrack:           "The command requires a next track, but there is none in the context.",
	ReasonNoSpecificTrack:       "The requested track does not exist.",
	ReasonAlreadyPaused:         "The command requires playback to not be paused.",
	ReasonNotPaused:             "The command requires playback to be paused.",
	ReasonNotPlayingLocally:     "The command requires playback on the local device.",
	ReasonNotPlayingTrack:       "The command requires that a track is currently playing.",
	ReasonNotPlayingContext:     "The command requires that a context is currently playing.",
	ReasonEndlessContext:        "The shuffle command cannot be applied on an endless context.",
	ReasonContextDisallow:       "The command could not be performed on the context.",
	ReasonAlreadyPlaying:        "The track should not be restarted if the same track and context is already playing, and there is a resume point.",
	ReasonRateLimited:           "The user is rate limited due to too frequent track play.",
	ReasonRemoteControlDisallow: "The context cannot be remote-controlled.",
	ReasonDeviceNotControllable: "Not possible to remote control the device.",
	ReasonVolumeControlDisallow: "Not possible to remote control the device's volume.",
	ReasonNoActiveDevice:        "Requires an active device and the user has none.",
	ReasonPremiumRequired:       "The request is prohibited for non-premium users.",
	ReasonUnknown:               "Certain actions are restricted because of unknown reasons.",
}

// PlayerErrorReasons returns every known reason in declaration order.
func PlayerErrorReasons() []PlayerErrorReason {
	return []PlayerErrorReason{
		ReasonNoPreviousTrack, ReasonNoNextTrack, ReasonNoSpecificTrack,
		ReasonAlreadyPaused, ReasonNotPaused, ReasonNotPlayingLocally,
		ReasonNotPlayingTrack, ReasonNotPlayingContext, ReasonEndlessContext,
		ReasonContextDisallow, ReasonAlreadyPlaying, ReasonRateLimited,
		ReasonRemoteControlDisallow, ReasonDeviceNotControllable, ReasonVolumeControlDisallow,
		ReasonNoActiveDevice, ReasonPremiumRequired, ReasonUnknown,
	}
}

// Valid reports whether r is one of the known reasons.
func (r PlayerErrorReason) Valid() bool {
	_, ok := playerErrorReasons[r]
	return ok
}

// Description returns Spotify's documented meaning of the reason.
func (r PlayerErrorReason) Description() string {
	return playerErrorReasons[r]
}

// UnmarshalJSON rejects reasons outside the known set so that upstream API
// drift fails loudly.
func (r *PlayerErrorReason) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("player error reason: %w", err)
	}
	reason := PlayerErrorReason(s)
	if !reason.Valid() {
		return fmt.Errorf("player error reason: unrecognized value %q", s)
	}
	*r = reason
	return nil
}

// PlayerError is the error object returned by the player endpoints.
type PlayerError struct {
	// Message is a short description of the cause of the error.
	Message string
	Reason  PlayerErrorReason
	// StatusCode mirrors the HTTP status of the response.
	StatusCode int
}

func (e *PlayerError) Error() string {
	return fmt.Sprintf("%s (status code: %d)", e.Message, e.StatusCode)
}

type playerErrorObject struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Reason  PlayerErrorReason `json:"reason"`
}

// MarshalJSON encodes the error in Spotify's wire envelope.
func (e PlayerError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Error playerErrorObject `json:"error"`
	}{
		Error: playerErrorObject{Status: e.StatusCode, Message: e.Message, Reason: e.Reason},
	})
}

// UnmarshalJSON strictly decodes Spotify's wire envelope: the "error" object
// and all three of its fields are required.
func (e *PlayerError) UnmarshalJSON(data []byte) error {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	raw, err := requiredField(envelope, "error")
	if err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("key %q: %w", "error", err)
	}

	var decoded PlayerError
	if err := decodeRequired(fields, "message", &decoded.Message); err != nil {
		return err
	}
	if err := decodeRequired(fields, "status", &decoded.StatusCode); err != nil {
		return err
	}
	if err := decodeRequired(fields, "reason", &decoded.Reason); err != nil {
		return err
	}

	*e = decoded
	return nil
}

// DecodePlayerError decodes a player error response body. Any shape
// violation, including an unrecognized reason, yields a *MalformedPayloadError.
func DecodePlayerError(body []byte) (*PlayerError, error) {
	var pe PlayerError
	if err := json.Unmarshal(body, &pe); err != nil {
		return nil, &MalformedPayloadError{Body: body, Err: err}
	}
	return &pe, nil
}

var errMissingField = errors.New("missing required field")

func requiredField(fields map[string]json.RawMessage, key string) (json.RawMessage, error) {
	raw, ok := fields[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, fmt.Errorf("key %q: %w", key, errMissingField)
	}
	return raw, nil
}

func decodeRequired(fields map[string]json.RawMessage, key string, dst any) error {
	raw, err := requiredField(fields, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("key %q: %w", key, err)
	}
	return nil
}
