// Package sqlite persists OAuth tokens and recorded Web API exchanges.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously
	"golang.org/x/oauth2"

	"github.com/ewilliams-labs/spotifywebapi/internal/core/ports"
)

// Adapter implements ports.TokenStore and ports.ExchangeStore.
type Adapter struct {
	db *sql.DB
}

// NewAdapter creates a connection and runs the schema migration
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open db: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping db: %w", err)
	}

	adapter := &Adapter{db: db}
	if err := adapter.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

// SaveToken upserts the token stored under label.
func (a *Adapter) SaveToken(ctx context.Context, label string, tok *oauth2.Token) error {
	if tok == nil {
		return errors.New("sqlite: save token: nil token")
	}

	var expiry int64
	if !tok.Expiry.IsZero() {
		expiry = tok.Expiry.Unix()
	}

	_, err := a.db.ExecContext(ctx, `
		INSERT INTO tokens (label, access_token, token_type, refresh_token, expiry, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(label) DO UPDATE SET
			access_token=excluded.access_token,
			token_type=excluded.token_type,
			refresh_token=CASE WHEN excluded.refresh_token = '' THEN tokens.refresh_token ELSE excluded.refresh_token END,
			expiry=excluded.expiry,
			updated_at=CURRENT_TIMESTAMP
	`, label, tok.AccessToken, tok.TokenType, tok.RefreshToken, expiry)
	if err != nil {
		return fmt.Errorf("sqlite: save token %q: %w", label, err)
	}
	return nil
}

// LoadToken returns the token stored under label, or ports.ErrNotFound.
func (a *Adapter) LoadToken(ctx context.Context, label string) (*oauth2.Token, error) {
	row := a.db.QueryRowContext(ctx, `
		SELECT access_token, token_type, refresh_token, expiry
		FROM tokens WHERE label = ?
	`, label)

	var tok oauth2.Token
	var expiry int64
	if err := row.Scan(&tok.AccessToken, &tok.TokenType, &tok.RefreshToken, &expiry); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("sqlite: load token %q: %w", label, err)
	}
	if expiry != 0 {
		tok.Expiry = time.Unix(expiry, 0)
	}
	return &tok, nil
}

// SaveExchange appends a recorded exchange. ID and RecordedAt are filled in
// when empty.
func (a *Adapter) SaveExchange(ctx context.Context, ex ports.Exchange) error {
	if ex.ID == "" {
		ex.ID = uuid.NewString()
	}
	if ex.RecordedAt.IsZero() {
		ex.RecordedAt = time.Now().UTC()
	}
	header, err := json.Marshal(ex.Header)
	if err != nil {
		return fmt.Errorf("sqlite: encode exchange header: %w", err)
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO exchanges (id, key, method, url, status_code, header, body, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, ex.ID, ex.Key, ex.Method, ex.URL, ex.StatusCode, string(header), ex.Body, ex.RecordedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("sqlite: save exchange %s: %w", ex.Key, err)
	}
	return nil
}

// FindExchange returns the latest exchange recorded under key, or
// ports.ErrNotFound.
func (a *Adapter) FindExchange(ctx context.Context, key string) (ports.Exchange, error) {
	row := a.db.QueryRowContext(ctx, `
		SELECT id, key, method, url, status_code, header, body, recorded_at
		FROM exchanges WHERE key = ?
		ORDER BY recorded_at DESC, rowid DESC
		LIMIT 1
	`, key)

	var ex ports.Exchange
	var header sql.NullString
	var recordedAt int64
	if err := row.Scan(&ex.ID, &ex.Key, &ex.Method, &ex.URL, &ex.StatusCode, &header, &ex.Body, &recordedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ports.Exchange{}, ports.ErrNotFound
		}
		return ports.Exchange{}, fmt.Errorf("sqlite: find exchange %s: %w", key, err)
	}

	ex.Header = http.Header{}
	if header.Valid && header.String != "" {
		if err := json.Unmarshal([]byte(header.String), &ex.Header); err != nil {
			return ports.Exchange{}, fmt.Errorf("sqlite: decode exchange header: %w", err)
		}
		if ex.Header == nil {
			ex.Header = http.Header{}
		}
	}
	ex.RecordedAt = time.Unix(0, recordedAt).UTC()
	return ex, nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS tokens (
		label TEXT PRIMARY KEY,
		access_token TEXT NOT NULL,
		token_type TEXT NOT NULL DEFAULT '',
		refresh_token TEXT NOT NULL DEFAULT '',
		expiry INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS exchanges (
		id TEXT PRIMARY KEY,
		key TEXT NOT NULL,
		method TEXT NOT NULL,
		url TEXT NOT NULL,
		status_code INTEGER NOT NULL,
		body BLOB,
		recorded_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_exchanges_key ON exchanges(key, recorded_at);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}

	if _, err := a.db.Exec("ALTER TABLE exchanges ADD COLUMN header TEXT"); err != nil {
		if !isDuplicateColumnError(err) {
			return err
		}
	}

	return nil
}

func isDuplicateColumnError(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "duplicate column name")
}
