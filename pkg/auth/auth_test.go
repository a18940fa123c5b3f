package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/ewilliams-labs/spotifywebapi/pkg/spotify"
)

func newTokenServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts, &calls
}

func TestAuthURL(t *testing.T) {
	a := New(Config{ClientID: "client-123", RedirectURL: "http://localhost:8080/callback"})

	u, err := url.Parse(a.AuthURL("state-abc"))
	require.NoError(t, err)

	q := u.Query()
	require.Equal(t, "client-123", q.Get("client_id"))
	require.Equal(t, "state-abc", q.Get("state"))
	require.Equal(t, "http://localhost:8080/callback", q.Get("redirect_uri"))
	require.Equal(t, "user-read-playback-state user-modify-playback-state", q.Get("scope"))
}

func TestTokenRejectsMismatchedState(t *testing.T) {
	a := New(Config{ClientID: "client-123"})

	r := httptest.NewRequest(http.MethodGet, "/callback?code=abc&state=other", nil)
	_, err := a.Token(context.Background(), "expected", r)
	require.Error(t, err)
}

func TestTokenSourceRefreshes(t *testing.T) {
	ts, calls := newTokenServer(t, http.StatusOK, `{"access_token":"fresh","token_type":"Bearer","expires_in":3600}`)

	a := New(Config{ClientID: "id", ClientSecret: "secret", TokenURL: ts.URL})
	expired := &oauth2.Token{AccessToken: "stale", RefreshToken: "refresh", Expiry: time.Now().Add(-time.Hour)}

	tok, err := a.TokenSource(context.Background(), expired).Token()
	require.NoError(t, err)
	require.Equal(t, "fresh", tok.AccessToken)
	require.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestClientCredentials(t *testing.T) {
	ts, _ := newTokenServer(t, http.StatusOK, `{"access_token":"app-token","token_type":"Bearer","expires_in":3600}`)

	tok, err := ClientCredentials(context.Background(), "id", "secret", ts.URL).Token()
	require.NoError(t, err)
	require.Equal(t, "app-token", tok.AccessToken)
}

func TestAsAuthenticationError(t *testing.T) {
	ts, _ := newTokenServer(t, http.StatusBadRequest, `{"error":"invalid_client","error_description":"Invalid client secret"}`)

	_, err := ClientCredentials(context.Background(), "id", "wrong", ts.URL).Token()
	require.Error(t, err)

	ae, ok := AsAuthenticationError(err)
	require.True(t, ok)
	require.Equal(t, &spotify.AuthenticationError{Code: "invalid_client", Description: "Invalid client secret"}, ae)

	_, ok = AsAuthenticationError(errors.New("boom"))
	require.False(t, ok)
}

func TestStaticToken(t *testing.T) {
	tok, err := StaticToken("abc").Token()
	require.NoError(t, err)
	require.Equal(t, "abc", tok.AccessToken)
	require.Equal(t, "Bearer", tok.Type())
}

func TestRandomState(t *testing.T) {
	a, b := RandomState(), RandomState()
	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}

type memoryStore struct {
	saved []string
	err   error
}

func (m *memoryStore) SaveToken(_ context.Context, _ string, tok *oauth2.Token) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, tok.AccessToken)
	return nil
}

func (m *memoryStore) LoadToken(context.Context, string) (*oauth2.Token, error) {
	return nil, nil
}

type sequenceSource struct {
	tokens []string
	i      int
}

func (s *sequenceSource) Token() (*oauth2.Token, error) {
	tok := &oauth2.Token{AccessToken: s.tokens[s.i]}
	if s.i < len(s.tokens)-1 {
		s.i++
	}
	return tok, nil
}

func TestPersistingTokenSource(t *testing.T) {
	store := &memoryStore{}
	src := &sequenceSource{tokens: []string{"a", "a", "b", "b"}}
	ps := PersistingTokenSource(context.Background(), store, "default", src)

	for i := 0; i < 4; i++ {
		_, err := ps.Token()
		require.NoError(t, err)
	}
	require.Equal(t, []string{"a", "b"}, store.saved)
}

func TestPersistingTokenSourceIgnoresSaveFailure(t *testing.T) {
	store := &memoryStore{err: errors.New("disk full")}
	ps := PersistingTokenSource(context.Background(), store, "default", &sequenceSource{tokens: []string{"a"}})

	tok, err := ps.Token()
	require.NoError(t, err)
	require.Equal(t, "a", tok.AccessToken)
}
