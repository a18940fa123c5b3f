package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/ewilliams-labs/spotifywebapi/internal/adapters/recorder"
	"github.com/ewilliams-labs/spotifywebapi/internal/adapters/rest"
	"github.com/ewilliams-labs/spotifywebapi/internal/adapters/sqlite"
	"github.com/ewilliams-labs/spotifywebapi/internal/config"
	"github.com/ewilliams-labs/spotifywebapi/internal/core/ports"
	"github.com/ewilliams-labs/spotifywebapi/internal/core/services"
	"github.com/ewilliams-labs/spotifywebapi/internal/display"
	"github.com/ewilliams-labs/spotifywebapi/internal/worker"
	"github.com/ewilliams-labs/spotifywebapi/pkg/auth"
	"github.com/ewilliams-labs/spotifywebapi/pkg/spotify"
)

// app holds the wiring shared by the player commands.
type app struct {
	db         *sqlite.Adapter
	recordings *worker.Pool
	controller *services.Controller
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	db, err := sqlite.NewAdapter(cfg.TokenDB)
	if err != nil {
		return nil, err
	}

	ts, err := tokenSource(ctx, cfg, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &app{db: db}
	var exchanges ports.ExchangeStore = db
	if cfg.RecordMode == config.RecordSave {
		a.recordings = worker.NewPool(db, 1, 64, zap.L().Named("worker"))
		exchanges = a.recordings
	}

	client := spotify.NewClient(ts,
		spotify.WithHTTPClient(httpClient(cfg, exchanges)),
		spotify.WithBaseURL(cfg.APIBaseURL),
		spotify.WithRetry(cfg.MaxRetries, cfg.RetryBackoff),
	)
	a.controller = services.NewController(client, zap.L().Named("controller"))
	return a, nil
}

// Close flushes pending recordings before closing the database.
func (a *app) Close() error {
	if a.recordings != nil {
		a.recordings.Stop()
	}
	return a.db.Close()
}

// tokenSource prefers SPOTIFY_ACCESS_TOKEN, then a stored user token that is
// refreshed and re-saved as it expires.
func tokenSource(ctx context.Context, cfg config.Config, store ports.TokenStore) (oauth2.TokenSource, error) {
	if cfg.AccessToken != "" {
		return auth.StaticToken(cfg.AccessToken), nil
	}
	if cfg.RecordMode == config.RecordReplay {
		return auth.StaticToken("replay"), nil
	}

	tok, err := store.LoadToken(ctx, tokenLabel)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, errors.New("no stored token: run `spotifyctl auth` or set SPOTIFY_ACCESS_TOKEN")
	}
	if err != nil {
		return nil, err
	}
	if !cfg.HasCredentials() {
		return oauth2.StaticTokenSource(tok), nil
	}

	authenticator := auth.New(authConfig(cfg))
	return auth.PersistingTokenSource(ctx, store, tokenLabel, authenticator.TokenSource(ctx, tok)), nil
}

func authConfig(cfg config.Config) auth.Config {
	return auth.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Scopes:       spotify.PlayerScopes(),
	}
}

func httpClient(cfg config.Config, store ports.ExchangeStore) *http.Client {
	if cfg.RecordMode == config.RecordOff {
		return &http.Client{Timeout: 30 * time.Second}
	}
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &recorder.Transport{
			Mode:   recorder.Mode(cfg.RecordMode),
			Store:  store,
			Logger: zap.L().Named("recorder"),
		},
	}
}

func withApp(ctx context.Context, cfg config.Config, fn func(a *app) error) error {
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func runDevices(ctx context.Context, cfg config.Config, args []string) error {
	return withApp(ctx, cfg, func(a *app) error {
		devices, err := a.controller.Devices(ctx)
		if err != nil {
			return err
		}
		display.Devices(os.Stdout, devices)
		return nil
	})
}

func runStatus(ctx context.Context, cfg config.Config, args []string) error {
	return withApp(ctx, cfg, func(a *app) error {
		playback, err := a.controller.Status(ctx)
		if err != nil {
			return err
		}
		display.Playback(os.Stdout, playback)
		return nil
	})
}

func runPlay(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	device := fs.String("device", "", "Device name or ID to play on")
	contextURI := fs.String("context", "", "Album, artist, playlist or show URI to play")
	offset := fs.Int("offset", -1, "Index of the item in the context to start at")
	position := fs.Int("position", 0, "Position in milliseconds to start the first item at")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var req *spotify.PlaybackRequest
	switch {
	case *contextURI != "":
		req = spotify.NewContextPlayback(spotify.URI(*contextURI))
		if *offset >= 0 {
			req.WithOffsetPosition(*offset)
		}
	case fs.NArg() > 0:
		items := make([]spotify.URIConvertible, fs.NArg())
		for i, raw := range fs.Args() {
			items[i] = spotify.URI(raw)
		}
		req = spotify.NewURIsPlayback(items...)
	}
	if req != nil && *position > 0 {
		req.WithPosition(*position)
	}

	return withApp(ctx, cfg, func(a *app) error {
		d, err := a.controller.Play(ctx, *device, req)
		if err != nil {
			return err
		}
		color.Green("▶ Playing on %s", d.Name)
		return nil
	})
}

func runPause(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("pause", flag.ExitOnError)
	device := fs.String("device", "", "Device name or ID to pause")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withApp(ctx, cfg, func(a *app) error {
		if err := a.controller.Pause(ctx, *device); err != nil {
			return err
		}
		color.Yellow("⏸ Paused")
		return nil
	})
}

func runQueue(ctx context.Context, cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("queue", flag.ExitOnError)
	device := fs.String("device", "", "Device name or ID whose queue to add to")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("queue: at least one track or episode URI is required")
	}

	return withApp(ctx, cfg, func(a *app) error {
		if err := a.controller.Enqueue(ctx, fs.Args(), *device); err != nil {
			return err
		}
		color.Green("Queued %d item(s)", fs.NArg())
		return nil
	})
}

// runAuth serves the redirect URI until the authorization code flow
// completes, then stores the token.
func runAuth(ctx context.Context, cfg config.Config, args []string) error {
	if !cfg.HasCredentials() {
		return errors.New("auth: SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET are required")
	}
	redirect, err := url.Parse(cfg.RedirectURI)
	if err != nil {
		return fmt.Errorf("auth: SPOTIFY_REDIRECT_URI: %w", err)
	}

	db, err := sqlite.NewAdapter(cfg.TokenDB)
	if err != nil {
		return err
	}
	defer db.Close()

	authenticator := auth.New(authConfig(cfg))
	state := auth.RandomState()
	done := make(chan *oauth2.Token, 1)

	handler := rest.NewHandler(
		services.NewController(spotify.NewClient(nil), zap.L().Named("controller")),
		&rest.Callback{
			Auth:  authenticator,
			State: state,
			Store: db,
			Label: tokenLabel,
			Done: func(tok *oauth2.Token) {
				select {
				case done <- tok:
				default:
				}
			},
		},
		zap.L().Named("rest"),
	)

	srv := &http.Server{
		Addr:              redirect.Host,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	fmt.Println("Log in to Spotify by visiting:")
	color.Cyan("  %s", authenticator.AuthURL(state))

	defer shutdown(srv)
	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case tok := <-done:
		color.Green("Authorized. Token stored in %s (expires %s).", cfg.TokenDB, tok.Expiry.Format(time.RFC3339))
		return nil
	}
}

func runServe(ctx context.Context, cfg config.Config, args []string) error {
	return withApp(ctx, cfg, func(a *app) error {
		logger := zap.L().Named("rest")
		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           rest.NewHandler(a.controller, nil, logger),
			ReadHeaderTimeout: 15 * time.Second,
		}

		serverErr := make(chan error, 1)
		go func() {
			err := srv.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
				return
			}
			serverErr <- nil
		}()
		logger.Info("control API listening", zap.String("addr", srv.Addr))

		select {
		case err := <-serverErr:
			return err
		case <-ctx.Done():
			logger.Info("shutting down server")
			shutdown(srv)
			return nil
		}
	})
}

func shutdown(srv *http.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Warn("shutdown error", zap.Error(err))
	}
}
