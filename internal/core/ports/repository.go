package ports

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// ErrNotFound is returned by stores when no row matches.
var ErrNotFound = errors.New("not found")

// TokenStore persists OAuth tokens under a label so the CLI can reuse them.
type TokenStore interface {
	SaveToken(ctx context.Context, label string, tok *oauth2.Token) error
	LoadToken(ctx context.Context, label string) (*oauth2.Token, error)
}

// Exchange is one recorded request/response pair with the Web API.
type Exchange struct {
	ID         string
	Key        string
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
	RecordedAt time.Time
}

// ExchangeStore keeps recorded exchanges for replay. FindExchange returns the
// most recent exchange for key.
type ExchangeStore interface {
	SaveExchange(ctx context.Context, ex Exchange) error
	FindExchange(ctx context.Context, key string) (Exchange, error)
}
