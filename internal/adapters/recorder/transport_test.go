package recorder

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ewilliams-labs/spotifywebapi/internal/core/ports"
)

type memoryStore struct {
	mu        sync.Mutex
	exchanges map[string]ports.Exchange
}

func newMemoryStore() *memoryStore {
	return &memoryStore{exchanges: map[string]ports.Exchange{}}
}

func (m *memoryStore) SaveExchange(_ context.Context, ex ports.Exchange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exchanges[ex.Key] = ex
	return nil
}

func (m *memoryStore) FindExchange(_ context.Context, key string) (ports.Exchange, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ex, ok := m.exchanges[key]
	if !ok {
		return ports.Exchange{}, ports.ErrNotFound
	}
	return ex, nil
}

func TestTransport_RecordThenReplay(t *testing.T) {
	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"devices":[]}`)
	}))
	defer ts.Close()

	store := newMemoryStore()
	url := ts.URL + "/v1/me/player/devices"

	recording := &http.Client{Transport: &Transport{Mode: Record, Store: store}}
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer secret")

	resp, err := recording.Do(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, `{"devices":[]}`, string(body))

	saved, err := store.FindExchange(context.Background(), Key(http.MethodGet, url))
	require.NoError(t, err)
	require.Empty(t, saved.Header.Get("Authorization"))

	replaying := &http.Client{Transport: &Transport{Mode: Replay, Store: store}}
	resp, err = replaying.Get(url)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.Equal(t, `{"devices":[]}`, string(body))
	require.Equal(t, 1, hits)
}

func TestTransport_ReplayMissing(t *testing.T) {
	client := &http.Client{Transport: &Transport{Mode: Replay, Store: newMemoryStore()}}

	_, err := client.Get("https://api.spotify.com/v1/me/player")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNoRecording), "got %v", err)
}

func TestTransport_Passthrough(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	store := newMemoryStore()
	client := &http.Client{Transport: &Transport{Mode: Passthrough, Store: store}}

	resp, err := client.Get(ts.URL)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Empty(t, store.exchanges)
}
