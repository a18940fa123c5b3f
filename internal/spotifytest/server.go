// Package spotifytest provides a scripted stand-in for the Spotify Web API
// player endpoints.
package spotifytest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// Request is a request captured by Server.
type Request struct {
	Method        string
	Path          string
	Query         map[string][]string
	Authorization string
	ContentType   string
	Body          []byte
}

// Response is a canned reply.
type Response struct {
	Status int
	Header http.Header
	Body   string
}

// Server records every request and answers from per-route responses.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	requests  []Request
	responses map[string][]Response
}

// NewServer starts a server that answers 204 to routes with no response set.
func NewServer() *Server {
	s := &Server{responses: map[string][]Response{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// Respond queues responses for "METHOD /path". The last queued response is
// repeated once the queue is drained.
func (s *Server) Respond(method, path string, responses ...Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := method + " " + path
	s.responses[key] = append(s.responses[key], responses...)
}

// RespondJSON queues a single JSON body with the given status.
func (s *Server) RespondJSON(method, path string, status int, body string) {
	s.Respond(method, path, Response{
		Status: status,
		Header: http.Header{"Content-Type": []string{"application/json"}},
		Body:   body,
	})
}

// Requests returns a copy of the captured requests.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request, or the zero value.
func (s *Server) LastRequest() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:        r.Method,
		Path:          r.URL.Path,
		Query:         r.URL.Query(),
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
		Body:          body,
	})
	key := r.Method + " " + r.URL.Path
	queue := s.responses[key]
	var resp Response
	switch len(queue) {
	case 0:
		resp = Response{Status: http.StatusNoContent}
	case 1:
		resp = queue[0]
	default:
		resp = queue[0]
		s.responses[key] = queue[1:]
	}
	s.mu.Unlock()

	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(resp.Status)
	_, _ = io.WriteString(w, resp.Body)
}
