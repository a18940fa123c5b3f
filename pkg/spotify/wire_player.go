package spotify

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// DeviceType is the kind of a Spotify Connect device.
type DeviceType string

const (
	DeviceComputer    DeviceType = "Computer"
	DeviceTablet      DeviceType = "Tablet"
	DeviceSmartphone  DeviceType = "Smartphone"
	DeviceSpeaker     DeviceType = "Speaker"
	DeviceTV          DeviceType = "TV"
	DeviceAVR         DeviceType = "AVR"
	DeviceSTB         DeviceType = "STB"
	DeviceAudioDongle DeviceType = "AudioDongle"
	DeviceGameConsole DeviceType = "GameConsole"
	DeviceCastVideo   DeviceType = "CastVideo"
	DeviceCastAudio   DeviceType = "CastAudio"
	DeviceAutomobile  DeviceType = "Automobile"
	DeviceUnknown     DeviceType = "Unknown"
)

// Device is a Spotify Connect device available to the user.
type Device struct {
	// ID may be empty for devices that cannot be targeted.
	ID               string     `json:"id"`
	IsActive         bool       `json:"is_active"`
	IsPrivateSession bool       `json:"is_private_session"`
	IsRestricted     bool       `json:"is_restricted"`
	Name             string     `json:"name"`
	Type             DeviceType `json:"type"`
	VolumePercent    *int       `json:"volume_percent"`
	SupportsVolume   bool       `json:"supports_volume"`
}

// RepeatMode is the player's repeat state.
type RepeatMode string

const (
	RepeatOff     RepeatMode = "off"
	RepeatTrack   RepeatMode = "track"
	RepeatContext RepeatMode = "context"
)

// Valid reports whether m is one of the three repeat modes.
func (m RepeatMode) Valid() bool {
	switch m {
	case RepeatOff, RepeatTrack, RepeatContext:
		return true
	}
	return false
}

// ItemType is the kind of item currently playing.
type ItemType string

const (
	ItemTrack   ItemType = "track"
	ItemEpisode ItemType = "episode"
	ItemAd      ItemType = "ad"
	ItemUnknown ItemType = "unknown"
)

// Image is a cover image.
type Image struct {
	URL    string `json:"url"`
	Height *int   `json:"height"`
	Width  *int   `json:"width"`
}

// Context is the album, artist, playlist or show that items are played from.
type Context struct {
	URI          string            `json:"uri"`
	Href         string            `json:"href"`
	Type         IDCategory        `json:"type"`
	ExternalURLs map[string]string `json:"external_urls,omitempty"`
}

// Disallows lists actions that are currently not allowed on the player.
type Disallows struct {
	InterruptingPlayback  bool `json:"interrupting_playback,omitempty"`
	Pausing               bool `json:"pausing,omitempty"`
	Resuming              bool `json:"resuming,omitempty"`
	Seeking               bool `json:"seeking,omitempty"`
	SkippingNext          bool `json:"skipping_next,omitempty"`
	SkippingPrev          bool `json:"skipping_prev,omitempty"`
	TogglingRepeatContext bool `json:"toggling_repeat_context,omitempty"`
	TogglingShuffle       bool `json:"toggling_shuffle,omitempty"`
	TogglingRepeatTrack   bool `json:"toggling_repeat_track,omitempty"`
	TransferringPlayback  bool `json:"transferring_playback,omitempty"`
}

// Actions wraps the player's disallowed actions.
type Actions struct {
	Disallows Disallows `json:"disallows"`
}

// SimplifiedArtist is the artist summary embedded in tracks and albums.
type SimplifiedArtist struct {
	ID   string `json:"id"`
	URI  string `json:"uri"`
	Name string `json:"name"`
}

// SimplifiedAlbum is the album summary embedded in tracks.
type SimplifiedAlbum struct {
	ID      string             `json:"id"`
	URI     string             `json:"uri"`
	Name    string             `json:"name"`
	Artists []SimplifiedArtist `json:"artists,omitempty"`
	Images  []Image            `json:"images,omitempty"`
}

// Track is a full track object.
type Track struct {
	ID         string             `json:"id"`
	URI        string             `json:"uri"`
	Name       string             `json:"name"`
	DurationMS int                `json:"duration_ms"`
	Explicit   bool               `json:"explicit"`
	IsLocal    bool               `json:"is_local"`
	Popularity int                `json:"popularity,omitempty"`
	Artists    []SimplifiedArtist `json:"artists"`
	Album      *SimplifiedAlbum   `json:"album,omitempty"`
	Type       string             `json:"type"`
}

// Show is the show summary embedded in episodes.
type Show struct {
	ID        string `json:"id"`
	URI       string `json:"uri"`
	Name      string `json:"name"`
	Publisher string `json:"publisher"`
}

// Episode is a full podcast episode object.
type Episode struct {
	ID          string  `json:"id"`
	URI         string  `json:"uri"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	DurationMS  int     `json:"duration_ms"`
	Explicit    bool    `json:"explicit"`
	ReleaseDate string  `json:"release_date,omitempty"`
	Images      []Image `json:"images,omitempty"`
	Show        *Show   `json:"show,omitempty"`
	Type        string  `json:"type"`
}

// PlaylistItem holds either a track or an episode, never both.
type PlaylistItem struct {
	Track   *Track
	Episode *Episode
}

var errUnknownItemType = errors.New("unknown item type")

// UnmarshalJSON dispatches on the item's "type" field.
func (p *PlaylistItem) UnmarshalJSON(data []byte) error {
	switch itemType := gjson.GetBytes(data, "type").String(); ItemType(itemType) {
	case ItemTrack:
		var t Track
		if err := json.Unmarshal(data, &t); err != nil {
			return fmt.Errorf("track item: %w", err)
		}
		*p = PlaylistItem{Track: &t}
	case ItemEpisode:
		var e Episode
		if err := json.Unmarshal(data, &e); err != nil {
			return fmt.Errorf("episode item: %w", err)
		}
		*p = PlaylistItem{Episode: &e}
	default:
		return fmt.Errorf("%w %q", errUnknownItemType, itemType)
	}
	return nil
}

// MarshalJSON encodes whichever variant is set.
func (p PlaylistItem) MarshalJSON() ([]byte, error) {
	switch {
	case p.Track != nil:
		t := *p.Track
		t.Type = string(ItemTrack)
		return json.Marshal(t)
	case p.Episode != nil:
		e := *p.Episode
		e.Type = string(ItemEpisode)
		return json.Marshal(e)
	}
	return []byte("null"), nil
}

// URI returns the item's URI.
func (p PlaylistItem) URI() string {
	switch {
	case p.Track != nil:
		return p.Track.URI
	case p.Episode != nil:
		return p.Episode.URI
	}
	return ""
}

// Name returns the track or episode name.
func (p PlaylistItem) Name() string {
	switch {
	case p.Track != nil:
		return p.Track.Name
	case p.Episode != nil:
		return p.Episode.Name
	}
	return ""
}

// DurationMS returns the item's length in milliseconds.
func (p PlaylistItem) DurationMS() int {
	switch {
	case p.Track != nil:
		return p.Track.DurationMS
	case p.Episode != nil:
		return p.Episode.DurationMS
	}
	return 0
}

// CurrentlyPlayingContext is the user's current playback state.
type CurrentlyPlayingContext struct {
	Device      Device        `json:"device"`
	RepeatState RepeatMode    `json:"repeat_state"`
	ShuffleIsOn bool          `json:"shuffle_state"`
	Context     *Context      `json:"context"`
	Timestamp   int64         `json:"timestamp"`
	ProgressMS  *int          `json:"progress_ms"`
	IsPlaying   bool          `json:"is_playing"`
	Item        *PlaylistItem `json:"item"`
	ItemType    ItemType      `json:"currently_playing_type"`
	Actions     Actions       `json:"actions"`
}
