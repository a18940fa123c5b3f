package spotify

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidURI indicates a string that is not a well-formed Spotify URI.
var ErrInvalidURI = errors.New("spotify: invalid uri")

// URIConvertible is anything that identifies Spotify content by URI.
type URIConvertible interface {
	URI() string
}

// URI is a raw Spotify URI such as "spotify:track:0bxcUgWlOURkU6lZt4zog0".
type URI string

func (u URI) URI() string { return string(u) }

// IDCategory is the resource kind encoded in a Spotify URI.
type IDCategory string

const (
	CategoryArtist   IDCategory = "artist"
	CategoryAlbum    IDCategory = "album"
	CategoryTrack    IDCategory = "track"
	CategoryPlaylist IDCategory = "playlist"
	CategoryShow     IDCategory = "show"
	CategoryEpisode  IDCategory = "episode"
	CategoryUser     IDCategory = "user"
	CategoryLocal    IDCategory = "local"
	CategoryGenre    IDCategory = "genre"
	CategoryAd       IDCategory = "ad"
)

var idCategories = map[IDCategory]struct{}{
	CategoryArtist: {}, CategoryAlbum: {}, CategoryTrack: {}, CategoryPlaylist: {},
	CategoryShow: {}, CategoryEpisode: {}, CategoryUser: {}, CategoryLocal: {},
	CategoryGenre: {}, CategoryAd: {},
}

// Valid reports whether c is a known category.
func (c IDCategory) Valid() bool {
	_, ok := idCategories[c]
	return ok
}

// Identifier is a parsed Spotify URI.
type Identifier struct {
	ID       string
	Category IDCategory
}

func (i Identifier) URI() string {
	return fmt.Sprintf("spotify:%s:%s", i.Category, i.ID)
}

// ParseIdentifier splits a URI of the form "spotify:<category>:<id>". Local
// file URIs keep everything after the category as the ID.
func ParseIdentifier(uri string) (Identifier, error) {
	parts := strings.SplitN(uri, ":", 3)
	if len(parts) != 3 || parts[0] != "spotify" || parts[2] == "" {
		return Identifier{}, fmt.Errorf("%w: %q", ErrInvalidURI, uri)
	}

	category := IDCategory(parts[1])
	if !category.Valid() {
		return Identifier{}, fmt.Errorf("%w: unknown category %q in %q", ErrInvalidURI, parts[1], uri)
	}
	if category != CategoryLocal && strings.Contains(parts[2], ":") {
		return Identifier{}, fmt.Errorf("%w: %q", ErrInvalidURI, uri)
	}
	return Identifier{ID: parts[2], Category: category}, nil
}

func uriStrings(items []URIConvertible) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.URI()
	}
	return out
}
