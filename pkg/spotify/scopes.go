package spotify

import (
	spotifyauth "github.com/zmb3/spotify/v2/auth"
)

// Scope is an OAuth permission grant required by an endpoint.
type Scope string

const (
	ScopeUserReadPlaybackState     Scope = spotifyauth.ScopeUserReadPlaybackState
	ScopeUserModifyPlaybackState   Scope = spotifyauth.ScopeUserModifyPlaybackState
	ScopeUserReadCurrentlyPlaying  Scope = spotifyauth.ScopeUserReadCurrentlyPlaying
	ScopeUserReadPrivate           Scope = spotifyauth.ScopeUserReadPrivate
	ScopeUserReadEmail             Scope = spotifyauth.ScopeUserReadEmail
	ScopePlaylistReadPrivate       Scope = spotifyauth.ScopePlaylistReadPrivate
	ScopePlaylistReadCollaborative Scope = spotifyauth.ScopePlaylistReadCollaborative
	ScopePlaylistModifyPublic      Scope = spotifyauth.ScopePlaylistModifyPublic
	ScopePlaylistModifyPrivate     Scope = spotifyauth.ScopePlaylistModifyPrivate
	ScopeUserLibraryRead           Scope = spotifyauth.ScopeUserLibraryRead
	ScopeUserLibraryModify         Scope = spotifyauth.ScopeUserLibraryModify
	ScopeStreaming                 Scope = spotifyauth.ScopeStreaming
)

// PlayerScopes are the scopes needed by every endpoint in this package.
func PlayerScopes() []Scope {
	return []Scope{ScopeUserReadPlaybackState, ScopeUserModifyPlaybackState}
}

func scopeStrings(scopes []Scope) []string {
	out := make([]string, len(scopes))
	for i, s := range scopes {
		out[i] = string(s)
	}
	return out
}

// ScopeStrings converts scopes for APIs that take plain strings.
func ScopeStrings(scopes ...Scope) []string {
	return scopeStrings(scopes)
}
