// Package recorder captures Web API exchanges to an ExchangeStore and replays
// them later without network access.
package recorder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ewilliams-labs/spotifywebapi/internal/core/ports"
)

// Mode selects what Transport does with each request.
type Mode string

const (
	Passthrough Mode = "passthrough"
	Record      Mode = "record"
	Replay      Mode = "replay"
)

// ErrNoRecording is returned in replay mode for a request never recorded.
var ErrNoRecording = errors.New("recorder: no recorded exchange")

// Transport is an http.RoundTripper. Recordings are keyed by method and URL;
// the Authorization header is never stored.
type Transport struct {
	Mode  Mode
	Store ports.ExchangeStore
	// Next defaults to http.DefaultTransport.
	Next   http.RoundTripper
	Logger *zap.Logger
}

// Key identifies a request in the store.
func Key(method, url string) string {
	return method + " " + url
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	switch t.Mode {
	case Replay:
		return t.replay(req)
	case Record:
		return t.record(req)
	default:
		return t.next().RoundTrip(req)
	}
}

func (t *Transport) replay(req *http.Request) (*http.Response, error) {
	key := Key(req.Method, req.URL.String())
	if req.Body != nil {
		_ = req.Body.Close()
	}

	ex, err := t.Store.FindExchange(req.Context(), key)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, fmt.Errorf("%w for %s", ErrNoRecording, key)
		}
		return nil, fmt.Errorf("recorder: replay %s: %w", key, err)
	}
	t.logger().Debug("replaying exchange", zap.String("key", key), zap.Int("status", ex.StatusCode))

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", ex.StatusCode, http.StatusText(ex.StatusCode)),
		StatusCode:    ex.StatusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        ex.Header.Clone(),
		Body:          io.NopCloser(bytes.NewReader(ex.Body)),
		ContentLength: int64(len(ex.Body)),
		Request:       req,
	}, nil
}

func (t *Transport) record(req *http.Request) (*http.Response, error) {
	resp, err := t.next().RoundTrip(req)
	if err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("recorder: read response body: %w", err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	key := Key(req.Method, req.URL.String())
	ex := ports.Exchange{
		Key:        key,
		Method:     req.Method,
		URL:        req.URL.String(),
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       body,
		RecordedAt: time.Now().UTC(),
	}
	// Saved even when the caller cancels right after the response.
	if err := t.Store.SaveExchange(context.WithoutCancel(req.Context()), ex); err != nil {
		t.logger().Warn("failed to record exchange", zap.String("key", key), zap.Error(err))
	} else {
		t.logger().Debug("recorded exchange", zap.String("key", key), zap.Int("status", resp.StatusCode))
	}
	return resp, nil
}

func (t *Transport) next() http.RoundTripper {
	if t.Next != nil {
		return t.Next
	}
	return http.DefaultTransport
}

func (t *Transport) logger() *zap.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return zap.NewNop()
}
