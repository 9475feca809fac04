// Package testserver simulates a backend whose database connection
// pool is too small for its request volume. Slow analytical queries
// hold pool connections for seconds, so under enough load the pool
// drains and requests start timing out waiting for a connection.
package testserver

import (
	"fmt"
	"math/rand"
	"net/http"
	"sync/atomic"
	"time"
)

// Options configures the simulated backend.
type Options struct {
	// PoolSize is the number of database connections available.
	PoolSize int
	// SlowQueryTime is how long a slow query holds a connection.
	SlowQueryTime time.Duration
	// FastQueryTime is how long a fast query holds a connection.
	FastQueryTime time.Duration
	// AcquireTimeout is how long a request waits for a free connection
	// before giving up with 503.
	AcquireTimeout time.Duration
}

// DefaultOptions mirrors a typical misconfigured deployment: a 50
// connection pool in front of 2.5s analytical queries.
func DefaultOptions() Options {
	return Options{
		PoolSize:       50,
		SlowQueryTime:  2500 * time.Millisecond,
		FastQueryTime:  2 * time.Millisecond,
		AcquireTimeout: 30 * time.Second,
	}
}

// Server is the simulated degraded backend.
type Server struct {
	opts    Options
	mux     *http.ServeMux
	pool    chan struct{}
	waiting atomic.Int64
}

// NewServer creates a server with the given options. Zero-value option
// fields fall back to DefaultOptions.
func NewServer(opts Options) *Server {
	def := DefaultOptions()
	if opts.PoolSize <= 0 {
		opts.PoolSize = def.PoolSize
	}
	if opts.SlowQueryTime <= 0 {
		opts.SlowQueryTime = def.SlowQueryTime
	}
	if opts.FastQueryTime <= 0 {
		opts.FastQueryTime = def.FastQueryTime
	}
	if opts.AcquireTimeout <= 0 {
		opts.AcquireTimeout = def.AcquireTimeout
	}

	s := &Server{
		opts: opts,
		mux:  http.NewServeMux(),
		pool: make(chan struct{}, opts.PoolSize),
	}
	s.mux.HandleFunc("/api/distribution-groups/slow", s.handleSlow)
	s.mux.HandleFunc("/api/distribution-groups/fast", s.handleFast)
	s.mux.HandleFunc("/api/distribution-groups/health", s.handleHealth)
	return s
}

// Handler returns the http.Handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ActiveConnections returns how many pool connections are in use.
func (s *Server) ActiveConnections() int {
	return len(s.pool)
}

// WaitingRequests returns how many requests are queued for a connection.
func (s *Server) WaitingRequests() int {
	return int(s.waiting.Load())
}

func (s *Server) handleSlow(w http.ResponseWriter, r *http.Request) {
	s.runQuery(w, r, s.opts.SlowQueryTime)
}

func (s *Server) handleFast(w http.ResponseWriter, r *http.Request) {
	s.runQuery(w, r, s.opts.FastQueryTime)
}

// handleHealth bypasses the pool: a health probe hits the service, not
// the database, so it stays fast even while the pool is drained.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"UP","responseTimeMs":%.3f}`, msSince(start))
}

// runQuery acquires a pool connection, holds it for the query duration
// (with a little jitter) and reports the measured query time.
func (s *Server) runQuery(w http.ResponseWriter, r *http.Request, queryTime time.Duration) {
	start := time.Now()

	if !s.acquire(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, `{"error":"connection pool exhausted","waitedMs":%.3f}`, msSince(start))
		return
	}
	defer s.release()

	time.Sleep(jitter(queryTime))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"queryTimeMs":%.3f}`, msSince(start))
}

// acquire blocks until a connection is free, the acquire timeout
// expires, or the client goes away.
func (s *Server) acquire(r *http.Request) bool {
	s.waiting.Add(1)
	defer s.waiting.Add(-1)

	timeout := time.NewTimer(s.opts.AcquireTimeout)
	defer timeout.Stop()

	select {
	case s.pool <- struct{}{}:
		return true
	case <-timeout.C:
		return false
	case <-r.Context().Done():
		return false
	}
}

func (s *Server) release() {
	<-s.pool
}

// jitter spreads query times +/-10% so latency distributions look real.
func jitter(d time.Duration) time.Duration {
	if d < 10*time.Millisecond {
		return d
	}
	spread := int64(d) / 10
	return d + time.Duration(rand.Int63n(2*spread+1)-spread)
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
