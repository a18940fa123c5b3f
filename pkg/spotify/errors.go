package spotify

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

var (
	// ErrMalformedErrorPayload indicates a non-2xx response whose body could not
	// be decoded as any known Spotify error object.
	ErrMalformedErrorPayload = errors.New("spotify: malformed error payload")

	// ErrMissingExpectedKey indicates a successful response that lacked the
	// top-level key an endpoint unwraps, such as "devices".
	ErrMissingExpectedKey = errors.New("spotify: missing expected key")

	// ErrMalformedResponse indicates a successful response body that is not
	// valid JSON for the expected model.
	ErrMalformedResponse = errors.New("spotify: malformed response")

	// ErrRateLimited indicates a 429 response.
	ErrRateLimited = errors.New("spotify: rate limited")
)

// SpotifyError is Spotify's regular error object: a status and a message with
// no player reason.
type SpotifyError struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status"`
}

func (e *SpotifyError) Error() string {
	return fmt.Sprintf("%s (status code: %d)", e.Message, e.StatusCode)
}

// AuthenticationError is the error object returned by the accounts service.
type AuthenticationError struct {
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func (e *AuthenticationError) Error() string {
	if e.Description == "" {
		return "spotify: authentication error: " + e.Code
	}
	return fmt.Sprintf("spotify: authentication error: %s: %s", e.Code, e.Description)
}

// RateLimitedError is returned for 429 responses.
type RateLimitedError struct {
	// RetryAfter is zero when the response carried no usable Retry-After header.
	RetryAfter time.Duration
	StatusCode int
	// Err holds the decoded error object, if the body carried one.
	Err error
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("spotify: rate limited, retry after %s", e.RetryAfter)
	}
	return "spotify: rate limited"
}

func (e *RateLimitedError) Is(target error) bool {
	return target == ErrRateLimited
}

func (e *RateLimitedError) Unwrap() error {
	return e.Err
}

// MalformedPayloadError carries an error response body that matched no known
// error shape.
type MalformedPayloadError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *MalformedPayloadError) Error() string {
	msg := ErrMalformedErrorPayload.Error()
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status code: %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedPayloadError) Is(target error) bool {
	return target == ErrMalformedErrorPayload
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Err
}

// MissingKeyError reports a response that decoded as a JSON object but lacked
// the expected top-level key.
type MissingKeyError struct {
	Key  string
	Body []byte
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s %q", ErrMissingExpectedKey.Error(), e.Key)
}

func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingExpectedKey
}

// DecodeError reports a successful response whose body could not be decoded.
type DecodeError struct {
	Target string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("spotify: decode %s: %v", e.Target, e.Err)
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrMalformedResponse
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// decodeError turns a non-2xx response into a typed error. Player errors are
// tried first, then the regular error object, then the accounts-service shape.
func decodeError(logger *zap.Logger, status int, header http.Header, body []byte) error {
	var decoded error

	switch errField := gjson.GetBytes(body, "error"); {
	case gjson.GetBytes(body, "error.reason").Exists():
		pe, err := DecodePlayerError(body)
		if err == nil {
			decoded = pe
			break
		}
		logger.Warn("player error did not decode, falling back to regular error object",
			zap.String("reason", gjson.GetBytes(body, "error.reason").String()),
			zap.Error(err),
		)
		decoded = decodeSpotifyError(body)
	case errField.Type == gjson.String:
		var ae AuthenticationError
		if err := json.Unmarshal(body, &ae); err == nil {
			decoded = &ae
		}
	case errField.IsObject():
		decoded = decodeSpotifyError(body)
	}

	if status == http.StatusTooManyRequests {
		if _, malformed := decoded.(*MalformedPayloadError); malformed {
			decoded = nil
		}
		return &RateLimitedError{
			RetryAfter: parseRetryAfter(header),
			StatusCode: status,
			Err:        decoded,
		}
	}
	if decoded == nil {
		return &MalformedPayloadError{StatusCode: status, Body: body}
	}
	if mp, ok := decoded.(*MalformedPayloadError); ok {
		mp.StatusCode = status
	}
	return decoded
}

func decodeSpotifyError(body []byte) error {
	var envelope struct {
		Error *struct {
			Status  *int    `json:"status"`
			Message *string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return &MalformedPayloadError{Body: body, Err: err}
	}
	if envelope.Error == nil || envelope.Error.Status == nil || envelope.Error.Message == nil {
		return &MalformedPayloadError{Body: body, Err: errMissingField}
	}
	return &SpotifyError{Message: *envelope.Error.Message, StatusCode: *envelope.Error.Status}
}
