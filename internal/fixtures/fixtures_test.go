package fixtures

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ewilliams-labs/spotifywebapi/pkg/spotify"
)

func TestFixturesParse(t *testing.T) {
	groups := []struct {
		category spotify.IDCategory
		uris     []spotify.URIConvertible
	}{
		{spotify.CategoryUser, URIs(AllUsers()...)},
		{spotify.CategoryPlaylist, URIs(AllPlaylists()...)},
		{spotify.CategoryArtist, URIs(AllArtists()...)},
		{spotify.CategoryAlbum, URIs(AllAlbums()...)},
		{spotify.CategoryTrack, URIs(AllTracks()...)},
		{spotify.CategoryEpisode, URIs(AllEpisodes()...)},
		{spotify.CategoryShow, URIs(AllShows()...)},
	}

	seen := map[string]bool{}
	for _, g := range groups {
		t.Run(string(g.category), func(t *testing.T) {
			require.NotEmpty(t, g.uris)
			for _, u := range g.uris {
				id, err := spotify.ParseIdentifier(u.URI())
				require.NoError(t, err)
				require.Equal(t, g.category, id.Category)
				require.False(t, seen[u.URI()], "duplicate %s", u.URI())
				seen[u.URI()] = true
			}
		})
	}
}

func TestFixturesPlaybackRequests(t *testing.T) {
	req := spotify.NewURIsPlayback(URIs(TrackLocket, TrackJinx)...)
	require.NoError(t, req.Validate())
	require.Equal(t, []string{string(TrackLocket), string(TrackJinx)}, req.URIs)

	require.NoError(t, spotify.NewContextPlayback(AlbumMeddle).WithOffsetURI(TrackAnyColourYouLike).Validate())
	require.Error(t, spotify.NewContextPlayback(ArtistPinkFloyd).WithOffsetPosition(0).Validate())
}

func TestDeviceIDs(t *testing.T) {
	require.Len(t, DevicePetersIPhone, 40)
	require.Len(t, DevicePetersComputer, 40)
}
