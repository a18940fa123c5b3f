package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// endpoint describes one Web API operation. Scopes are informational: they
// are logged with each request but not checked client-side.
type endpoint struct {
	method string
	path   string
	scopes []Scope
}

// query collects optional query parameters. Empty values are omitted rather
// than sent as empty strings.
type query struct {
	values url.Values
}

func newQuery() *query {
	return &query{values: url.Values{}}
}

func (q *query) set(key, value string) *query {
	if value != "" {
		q.values.Set(key, value)
	}
	return q
}

func (q *query) encode() string {
	if q == nil {
		return ""
	}
	return q.values.Encode()
}

// response is a successful (2xx) reply.
type response struct {
	status int
	body   []byte
}

// apiRequest sends one request and returns the body of a 2xx reply or a
// typed error decoded from any other reply.
func (c *Client) apiRequest(ctx context.Context, ep endpoint, q *query, body any) (response, error) {
	target := c.baseURL + ep.path
	if encoded := q.encode(); encoded != "" {
		target += "?" + encoded
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return response{}, fmt.Errorf("spotify: marshal %s body: %w", ep.path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, ep.method, target, reader)
	if err != nil {
		return response{}, fmt.Errorf("spotify: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if c.tokens == nil {
		return response{}, fmt.Errorf("spotify: no token source configured")
	}
	token, err := c.tokens.Token()
	if err != nil {
		return response{}, fmt.Errorf("spotify: retrieve access token: %w", err)
	}
	token.SetAuthHeader(req)

	requestID := uuid.NewString()
	logger := c.logger.With(zap.String("request_id", requestID))
	logger.Debug("sending request",
		zap.String("method", ep.method),
		zap.String("path", ep.path),
		zap.Strings("required_scopes", scopeStrings(ep.scopes)),
	)

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		logger.Debug("transport error", zap.Error(err))
		return response{}, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, err
	}

	logger.Debug("received response", zap.Int("status", resp.StatusCode), zap.Int("bytes", len(respBody)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return response{}, decodeError(logger, resp.StatusCode, resp.Header, respBody)
	}
	return response{status: resp.StatusCode, body: respBody}, nil
}

// getRequest sends a GET and decodes the JSON body into dst.
func (c *Client) getRequest(ctx context.Context, ep endpoint, q *query, dst any) (response, error) {
	resp, err := c.apiRequest(ctx, ep, q, nil)
	if err != nil {
		return resp, err
	}
	if resp.status == http.StatusNoContent || len(resp.body) == 0 {
		return resp, nil
	}
	if err := json.Unmarshal(resp.body, dst); err != nil {
		return resp, &DecodeError{Target: ep.path, Err: err}
	}
	return resp, nil
}
