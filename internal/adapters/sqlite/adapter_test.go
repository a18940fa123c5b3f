package sqlite

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/ewilliams-labs/spotifywebapi/internal/core/ports"
)

var (
	_ ports.TokenStore    = (*Adapter)(nil)
	_ ports.ExchangeStore = (*Adapter)(nil)
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	a, err := NewAdapter(":memory:")
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestAdapter_Tokens(t *testing.T) {
	expiry := time.Unix(1_900_000_000, 0)

	tests := []struct {
		name    string
		setup   func(t *testing.T, a *Adapter)
		label   string
		want    *oauth2.Token
		wantErr error
	}{
		{
			name:    "not found",
			setup:   func(t *testing.T, a *Adapter) {},
			label:   "missing",
			wantErr: ports.ErrNotFound,
		},
		{
			name: "round trip",
			setup: func(t *testing.T, a *Adapter) {
				require.NoError(t, a.SaveToken(context.Background(), "default", &oauth2.Token{
					AccessToken: "access", TokenType: "Bearer", RefreshToken: "refresh", Expiry: expiry,
				}))
			},
			label: "default",
			want:  &oauth2.Token{AccessToken: "access", TokenType: "Bearer", RefreshToken: "refresh", Expiry: expiry},
		},
		{
			name: "refresh keeps old refresh token",
			setup: func(t *testing.T, a *Adapter) {
				ctx := context.Background()
				require.NoError(t, a.SaveToken(ctx, "default", &oauth2.Token{AccessToken: "one", RefreshToken: "refresh"}))
				require.NoError(t, a.SaveToken(ctx, "default", &oauth2.Token{AccessToken: "two", TokenType: "Bearer"}))
			},
			label: "default",
			want:  &oauth2.Token{AccessToken: "two", TokenType: "Bearer", RefreshToken: "refresh"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAdapter(t)
			tt.setup(t, a)

			got, err := a.LoadToken(context.Background(), tt.label)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want.AccessToken, got.AccessToken)
			require.Equal(t, tt.want.TokenType, got.TokenType)
			require.Equal(t, tt.want.RefreshToken, got.RefreshToken)
			require.True(t, tt.want.Expiry.Equal(got.Expiry), "expiry: got %v, want %v", got.Expiry, tt.want.Expiry)
		})
	}
}

func TestAdapter_Exchanges(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	_, err := a.FindExchange(ctx, "GET /v1/me/player/devices")
	require.ErrorIs(t, err, ports.ErrNotFound)

	first := ports.Exchange{
		Key: "GET /v1/me/player/devices", Method: http.MethodGet, URL: "https://api.spotify.com/v1/me/player/devices",
		StatusCode: http.StatusOK, Body: []byte(`{"devices":[]}`),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		RecordedAt: time.Unix(100, 0),
	}
	second := first
	second.Body = []byte(`{"devices":[{"id":"a"}]}`)
	second.RecordedAt = time.Unix(200, 0)

	require.NoError(t, a.SaveExchange(ctx, first))
	require.NoError(t, a.SaveExchange(ctx, second))

	got, err := a.FindExchange(ctx, first.Key)
	require.NoError(t, err)
	require.NotEmpty(t, got.ID)
	require.Equal(t, string(second.Body), string(got.Body))
	require.Equal(t, "application/json", got.Header.Get("Content-Type"))
	require.Equal(t, http.StatusOK, got.StatusCode)
}

func TestAdapter_MigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spotify.db")

	a, err := NewAdapter(path)
	require.NoError(t, err)
	require.NoError(t, a.SaveToken(context.Background(), "default", &oauth2.Token{AccessToken: "x"}))
	require.NoError(t, a.Close())

	b, err := NewAdapter(path)
	require.NoError(t, err)
	defer b.Close()

	tok, err := b.LoadToken(context.Background(), "default")
	require.NoError(t, err)
	require.Equal(t, "x", tok.AccessToken)
}
