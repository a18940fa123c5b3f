package rest

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/ewilliams-labs/spotifywebapi/pkg/spotify"
)

type devicesResponse struct {
	Devices []spotify.Device `json:"devices"`
}

type deviceResponse struct {
	Device spotify.Device `json:"device"`
}

type queueRequest struct {
	URIs []string `json:"uris"`
}

// ListDevices handles GET /v1/devices
func (h *Handler) ListDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := h.svc.Devices(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, devicesResponse{Devices: devices})
}

// PlaybackState handles GET /v1/player. Nothing playing is a 204.
func (h *Handler) PlaybackState(w http.ResponseWriter, r *http.Request) {
	playback, err := h.svc.Status(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if playback == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, playback)
}

// Pause handles PUT /v1/player/pause?device=<name or id>
func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Pause(r.Context(), r.URL.Query().Get("device")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Play handles PUT /v1/player/play?device=<name or id>. An empty body resumes
// playback; otherwise the body is a playback request.
func (h *Handler) Play(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	var req *spotify.PlaybackRequest
	if len(body) > 0 {
		if !isJSONContentType(r) {
			writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		req = &spotify.PlaybackRequest{}
		if err := json.Unmarshal(body, req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	device, err := h.svc.Play(r.Context(), r.URL.Query().Get("device"), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deviceResponse{Device: device})
}

// Enqueue handles POST /v1/player/queue?device=<name or id>
func (h *Handler) Enqueue(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req queueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.URIs) == 0 {
		writeError(w, http.StatusBadRequest, "uris are required")
		return
	}

	if err := h.svc.Enqueue(r.Context(), req.URIs, r.URL.Query().Get("device")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OAuthCallback handles GET /callback, the redirect target of the
// authorization code flow.
func (h *Handler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	cb := h.callback

	tok, err := cb.Auth.Token(r.Context(), cb.State, r)
	if err != nil {
		h.logger.Warn("authorization failed", zap.Error(err))
		writeError(w, http.StatusForbidden, err.Error())
		return
	}
	if cb.Store != nil {
		if err := cb.Store.SaveToken(r.Context(), cb.Label, tok); err != nil {
			h.logger.Error("failed to store token", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "could not store token")
			return
		}
	}
	if cb.Done != nil {
		cb.Done(tok)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "authorized"})
}
