// Package mock provides a fake computation backend speaking the same HTTP
// routes as the real service, for tests of the client and the binaries.
package mock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/ChristoforosMylona/ham-sandwich-cut/src/steps"
)

// Cut is the canned answer of the cut endpoints.
type Cut struct {
	IsVertical bool
	Slope      float64
	YIntercept float64
	XIntercept float64
}

type Options struct {
	Cut   Cut
	Steps []steps.Step
	// FailFirst answers that many requests with 500 before behaving.
	FailFirst int
	// Delay is applied to every compute request.
	Delay time.Duration
	// Samples maps sample kinds (csv, json, excel) to file bodies.
	Samples map[string][]byte
}

type Server struct {
	*httptest.Server

	mu         sync.Mutex
	opts       Options
	failed     int
	counts     map[string]int
	requestIDs []string
	lastRed    [][2]float64
	lastBlue   [][2]float64
}

func NewServer(opts Options) *Server {
	s := &Server{opts: opts, counts: map[string]int{}}
	r := mux.NewRouter()
	for _, p := range []string{"/ham-sandwich-viz/", "/ham-sandwich-ilp/", "/ham-sandwich-mlp/", "/brute-force/"} {
		r.HandleFunc(p, s.handleCut).Methods(http.MethodPost)
	}
	r.HandleFunc("/teach-ham-sandwich-viz/", s.handleTeach).Methods(http.MethodPost)
	r.HandleFunc("/get-sample-file/{kind}", s.handleSample).Methods(http.MethodGet)
	s.Server = httptest.NewServer(r)
	return s
}

// SetCut swaps the canned cut.
func (s *Server) SetCut(c Cut) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.Cut = c
}

// Count returns how many requests hit path (failed ones included).
func (s *Server) Count(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[path]
}

// RequestIDs returns the X-Request-ID header of every request seen.
func (s *Server) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requestIDs...)
}

// LastPayload returns the points of the most recent compute request.
func (s *Server) LastPayload() (red, blue [][2]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRed, s.lastBlue
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// admit records the request and reports whether it should be served
// normally. It writes the error answer itself when not.
func (s *Server) admit(w http.ResponseWriter, r *http.Request) bool {
	s.mu.Lock()
	s.counts[r.URL.Path]++
	s.requestIDs = append(s.requestIDs, r.Header.Get("X-Request-ID"))
	fail := s.failed < s.opts.FailFirst
	if fail {
		s.failed++
	}
	s.mu.Unlock()
	if fail {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "unexpected error"})
		return false
	}
	return true
}

func (s *Server) readPoints(w http.ResponseWriter, r *http.Request) bool {
	var body struct {
		RedPoints  *[][2]float64 `json:"redPoints"`
		BluePoints *[][2]float64 `json:"bluePoints"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RedPoints == nil || body.BluePoints == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid input format. Arrays expected."})
		return false
	}
	s.mu.Lock()
	s.lastRed, s.lastBlue = *body.RedPoints, *body.BluePoints
	delay := s.opts.Delay
	s.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	return true
}

func (s *Server) handleCut(w http.ResponseWriter, r *http.Request) {
	if !s.admit(w, r) || !s.readPoints(w, r) {
		return
	}
	s.mu.Lock()
	c := s.opts.Cut
	s.mu.Unlock()
	if c.IsVertical {
		writeJSON(w, http.StatusOK, map[string]interface{}{"is_vertical": true, "x_intercept": c.XIntercept})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"is_vertical": false, "slope": c.Slope, "y_intercept": c.YIntercept})
}

func (s *Server) handleTeach(w http.ResponseWriter, r *http.Request) {
	if !s.admit(w, r) || !s.readPoints(w, r) {
		return
	}
	s.mu.Lock()
	seq := s.opts.Steps
	s.mu.Unlock()
	if seq == nil {
		seq = []steps.Step{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"stepsTaken": seq})
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	if !s.admit(w, r) {
		return
	}
	kind := mux.Vars(r)["kind"]
	s.mu.Lock()
	body, ok := s.opts.Samples[kind]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "File not found"})
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(body)
}
