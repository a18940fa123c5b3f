package spotify

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlaylistItemUnmarshal(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantTrack   bool
		wantEpisode bool
		wantName    string
		wantErr     bool
	}{
		{
			name:      "track",
			body:      `{"type":"track","id":"0bxcUgWlOURkU6lZt4zog0","uri":"spotify:track:0bxcUgWlOURkU6lZt4zog0","name":"Locket","duration_ms":180000}`,
			wantTrack: true,
			wantName:  "Locket",
		},
		{
			name:        "episode",
			body:        `{"type":"episode","id":"1Vrpa83y0vBdWZqeEbkKk3","uri":"spotify:episode:1Vrpa83y0vBdWZqeEbkKk3","name":"#215","duration_ms":3600000,"show":{"name":"Making Sense"}}`,
			wantEpisode: true,
			wantName:    "#215",
		},
		{name: "missing type", body: `{"id":"abc"}`, wantErr: true},
		{name: "ad", body: `{"type":"ad"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var item PlaylistItem
			err := json.Unmarshal([]byte(tt.body), &item)
			if tt.wantErr {
				require.True(t, errors.Is(err, errUnknownItemType), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantTrack, item.Track != nil)
			require.Equal(t, tt.wantEpisode, item.Episode != nil)
			require.Equal(t, tt.wantName, item.Name())
			require.NotZero(t, item.DurationMS())
			require.NotEmpty(t, item.URI())
		})
	}
}

func TestPlaylistItemMarshalSetsType(t *testing.T) {
	item := PlaylistItem{Episode: &Episode{ID: "3d1cFPfj3kZB27D4b8ZJm2", URI: "spotify:episode:3d1cFPfj3kZB27D4b8ZJm2"}}

	data, err := json.Marshal(item)
	require.NoError(t, err)

	var back PlaylistItem
	require.NoError(t, json.Unmarshal(data, &back))
	require.NotNil(t, back.Episode)
	require.Equal(t, "spotify:episode:3d1cFPfj3kZB27D4b8ZJm2", back.URI())
}

func TestCurrentlyPlayingContextNullItem(t *testing.T) {
	var cpc CurrentlyPlayingContext
	require.NoError(t, json.Unmarshal([]byte(`{"is_playing":false,"item":null,"context":null,"progress_ms":null,"currently_playing_type":"ad"}`), &cpc))
	require.Nil(t, cpc.Item)
	require.Nil(t, cpc.Context)
	require.Nil(t, cpc.ProgressMS)
	require.Equal(t, ItemAd, cpc.ItemType)
}

func TestRepeatModeValid(t *testing.T) {
	for _, m := range []RepeatMode{RepeatOff, RepeatTrack, RepeatContext} {
		require.True(t, m.Valid())
	}
	require.False(t, RepeatMode("all").Valid())
}
