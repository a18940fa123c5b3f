// Package auth obtains OAuth tokens for the Spotify Web API client.
//
// Token acquisition lives outside the client: every constructor here returns
// an oauth2.TokenSource that spotify.NewClient accepts.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/ewilliams-labs/spotifywebapi/pkg/spotify"
)

// Config holds the application credentials registered with Spotify.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []spotify.Scope
	// TokenURL overrides the accounts service endpoint, mainly for tests.
	TokenURL string
}

// Authenticator runs the authorization code flow.
type Authenticator struct {
	auth   *spotifyauth.Authenticator
	config *oauth2.Config
}

// New builds an Authenticator. Scopes default to spotify.PlayerScopes.
func New(cfg Config) *Authenticator {
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = spotify.PlayerScopes()
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = spotifyauth.TokenURL
	}

	return &Authenticator{
		auth: spotifyauth.New(
			spotifyauth.WithClientID(cfg.ClientID),
			spotifyauth.WithClientSecret(cfg.ClientSecret),
			spotifyauth.WithRedirectURL(cfg.RedirectURL),
			spotifyauth.WithScopes(spotify.ScopeStrings(scopes...)...),
		),
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       spotify.ScopeStrings(scopes...),
			Endpoint: oauth2.Endpoint{
				AuthURL:  spotifyauth.AuthURL,
				TokenURL: tokenURL,
			},
		},
	}
}

// AuthURL is the page the user visits to grant access. state is echoed back
// to the redirect URL.
func (a *Authenticator) AuthURL(state string) string {
	return a.auth.AuthURL(state)
}

// Token exchanges the code on the redirect request for a token after checking
// that its state matches.
func (a *Authenticator) Token(ctx context.Context, state string, r *http.Request) (*oauth2.Token, error) {
	tok, err := a.auth.Token(ctx, state, r)
	if err != nil {
		if ae, ok := AsAuthenticationError(err); ok {
			return nil, ae
		}
		return nil, fmt.Errorf("auth: exchange code: %w", err)
	}
	return tok, nil
}

// TokenSource refreshes tok as it expires.
func (a *Authenticator) TokenSource(ctx context.Context, tok *oauth2.Token) oauth2.TokenSource {
	return a.config.TokenSource(ctx, tok)
}

// ClientCredentials returns an app-only token source. Player endpoints need a
// user token, so this is mostly useful for checking credentials.
func ClientCredentials(ctx context.Context, clientID, clientSecret, tokenURL string) oauth2.TokenSource {
	if tokenURL == "" {
		tokenURL = spotifyauth.TokenURL
	}
	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	return cfg.TokenSource(ctx)
}

// StaticToken wraps an access token obtained elsewhere.
func StaticToken(accessToken string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
}

// RandomState returns an unguessable state value for AuthURL.
func RandomState() string {
	return uuid.NewString()
}

// AsAuthenticationError converts an accounts-service failure into the
// client's AuthenticationError.
func AsAuthenticationError(err error) (*spotify.AuthenticationError, bool) {
	var re *oauth2.RetrieveError
	if !errors.As(err, &re) {
		return nil, false
	}
	if re.ErrorCode != "" {
		return &spotify.AuthenticationError{Code: re.ErrorCode, Description: re.ErrorDescription}, true
	}

	var ae spotify.AuthenticationError
	if jsonErr := json.Unmarshal(re.Body, &ae); jsonErr != nil || ae.Code == "" {
		return nil, false
	}
	return &ae, true
}

// TokenStore persists tokens under a label.
type TokenStore interface {
	SaveToken(ctx context.Context, label string, tok *oauth2.Token) error
	LoadToken(ctx context.Context, label string) (*oauth2.Token, error)
}

type persistingTokenSource struct {
	ctx    context.Context
	store  TokenStore
	label  string
	src    oauth2.TokenSource
	logger *zap.Logger

	mu   sync.Mutex
	last string
}

// PersistingTokenSource saves every newly issued token from src to store.
// Save failures are logged; the token is still returned.
func PersistingTokenSource(ctx context.Context, store TokenStore, label string, src oauth2.TokenSource) oauth2.TokenSource {
	return &persistingTokenSource{
		ctx:    ctx,
		store:  store,
		label:  label,
		src:    src,
		logger: zap.L().Named("auth"),
	}
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := p.src.Token()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if tok.AccessToken == p.last {
		return tok, nil
	}
	if err := p.store.SaveToken(p.ctx, p.label, tok); err != nil {
		p.logger.Warn("failed to persist token", zap.String("label", p.label), zap.Error(err))
		return tok, nil
	}
	p.last = tok.AccessToken
	return tok, nil
}
