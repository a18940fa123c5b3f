package spotify

import (
	"errors"
	"strings"
)

// ErrInvalidPlaybackRequest is returned by PlaybackRequest.Validate.
var ErrInvalidPlaybackRequest = errors.New("spotify: invalid playback request")

// PlaybackOffset says where in the context playback starts. Exactly one of
// Position and URI is set.
type PlaybackOffset struct {
	Position *int   `json:"position,omitempty"`
	URI      string `json:"uri,omitempty"`
}

// PlaybackRequest is the body of the start/resume playback endpoint. Exactly
// one of ContextURI (album, artist, playlist or show) and URIs (tracks or
// episodes) is set.
type PlaybackRequest struct {
	ContextURI string          `json:"context_uri,omitempty"`
	URIs       []string        `json:"uris,omitempty"`
	Offset     *PlaybackOffset `json:"offset,omitempty"`
	// PositionMS beyond the item's length skips to the next item.
	PositionMS *int `json:"position_ms,omitempty"`
}

// NewContextPlayback plays the given album, artist, playlist or show.
func NewContextPlayback(context URIConvertible) *PlaybackRequest {
	return &PlaybackRequest{ContextURI: context.URI()}
}

// NewURIsPlayback plays the given tracks or episodes in order.
func NewURIsPlayback(items ...URIConvertible) *PlaybackRequest {
	return &PlaybackRequest{URIs: uriStrings(items)}
}

// WithOffsetPosition starts at the item with the given index in the context.
func (r *PlaybackRequest) WithOffsetPosition(position int) *PlaybackRequest {
	r.Offset = &PlaybackOffset{Position: &position}
	return r
}

// WithOffsetURI starts at the given item in the context.
func (r *PlaybackRequest) WithOffsetURI(item URIConvertible) *PlaybackRequest {
	r.Offset = &PlaybackOffset{URI: item.URI()}
	return r
}

// WithPosition starts playback at positionMS into the first item.
func (r *PlaybackRequest) WithPosition(positionMS int) *PlaybackRequest {
	r.PositionMS = &positionMS
	return r
}

// Validate checks the one-of constraints of the request body.
func (r *PlaybackRequest) Validate() error {
	hasContext := r.ContextURI != ""
	hasURIs := len(r.URIs) > 0
	if hasContext == hasURIs {
		return errors.Join(ErrInvalidPlaybackRequest, errors.New("exactly one of context uri and uris is required"))
	}

	if r.Offset != nil {
		if (r.Offset.Position != nil) == (r.Offset.URI != "") {
			return errors.Join(ErrInvalidPlaybackRequest, errors.New("offset needs exactly one of position and uri"))
		}
		if r.Offset.Position != nil && *r.Offset.Position < 0 {
			return errors.Join(ErrInvalidPlaybackRequest, errors.New("offset position must not be negative"))
		}
		if strings.HasPrefix(r.ContextURI, "spotify:artist:") {
			return errors.Join(ErrInvalidPlaybackRequest, errors.New("offset is not available for artist contexts"))
		}
	}

	if r.PositionMS != nil && *r.PositionMS < 0 {
		return errors.Join(ErrInvalidPlaybackRequest, errors.New("position must not be negative"))
	}
	return nil
}
