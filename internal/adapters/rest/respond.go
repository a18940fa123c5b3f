package rest

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/ewilliams-labs/spotifywebapi/internal/core/services"
	"github.com/ewilliams-labs/spotifywebapi/pkg/spotify"
)

type errorObject struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}

type errorResponse struct {
	Error errorObject `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeErrorWithCode(w, status, message, "")
}

func writeErrorWithCode(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResponse{Error: errorObject{Status: status, Message: message, Reason: code}})
}

func isJSONContentType(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

// writeServiceError maps controller and Web API errors onto HTTP responses.
// Player errors keep Spotify's status and reason.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		pe *spotify.PlayerError
		se *spotify.SpotifyError
		rl *spotify.RateLimitedError
		ae *spotify.AuthenticationError
	)
	switch {
	case errors.As(err, &pe):
		writeErrorWithCode(w, pe.StatusCode, pe.Message, string(pe.Reason))
	case errors.As(err, &rl):
		if rl.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.RetryAfter.Seconds())))
		}
		writeError(w, http.StatusTooManyRequests, err.Error())
	case errors.As(err, &se):
		writeError(w, se.StatusCode, se.Message)
	case errors.As(err, &ae):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrNoDevices), errors.Is(err, services.ErrDeviceNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotQueueable),
		errors.Is(err, spotify.ErrInvalidURI),
		errors.Is(err, spotify.ErrInvalidPlaybackRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusBadGateway, err.Error())
	}
}
