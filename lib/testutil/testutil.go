package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Route is a canned response served by a PageServer.
type Route struct {
	Status      int
	ContentType string
	Body        string
	// if set, the connection is dropped without a response
	Hijack bool
}

// PageServer serves canned responses by path and counts requests per path.
type PageServer struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]Route
	hits   map[string]int
}

func NewPageServer(t testing.TB, routes map[string]Route) *PageServer {
	s := &PageServer{
		routes: routes,
		hits:   map[string]int{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *PageServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	route, ok := s.routes[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	if route.Hijack {
		hj, ok := w.(http.Hijacker)
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		conn, _, err := hj.Hijack()
		if err == nil {
			conn.Close()
		}
		return
	}

	contentType := route.ContentType
	if contentType == "" {
		contentType = "text/html; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	status := route.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	w.Write([]byte(route.Body))
}

func (s *PageServer) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}
