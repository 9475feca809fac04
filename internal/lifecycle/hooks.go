// Package lifecycle emits the run-start configuration banner and the
// run-stop completion marker. The hooks are observability aids only;
// they never influence traffic generation.
package lifecycle

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// External facts about the target service, printed for the operator.
// Nothing in this tool enforces them; they exist so the observed
// collapse point can be compared against the theoretical one.
const (
	ConnPoolSize     = 50
	WorkerThreads    = 200
	NominalSlowQuery = 2500 * time.Millisecond
	NominalFastQuery = 2 * time.Millisecond
)

// MaxSlowThroughput is the theoretical ceiling on slow queries per
// second: pool size divided by how long each query holds a connection.
func MaxSlowThroughput() float64 {
	return float64(ConnPoolSize) / NominalSlowQuery.Seconds()
}

// Hooks is the run observer. It is passed explicitly rather than living
// in package-level state so the core stays testable without a live
// logging subsystem. The engine invokes TestStart and TestStop exactly
// once each per run.
type Hooks struct {
	out   io.Writer
	runID string
	mu    sync.Mutex
}

// NewHooks creates hooks writing to out, stamped with a fresh run ID.
func NewHooks(out io.Writer) *Hooks {
	return &Hooks{out: out, runID: uuid.NewString()}
}

// RunID returns the identifier stamped on this run's banner and marker.
func (h *Hooks) RunID() string {
	return h.runID
}

// TestStart emits the configuration banner for a run against host.
func (h *Hooks) TestStart(host string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rule := strings.Repeat("=", 60)
	fmt.Fprintln(h.out, rule)
	fmt.Fprintf(h.out, "Load test started (run %s)\n", h.runID)
	fmt.Fprintf(h.out, "Target: %s\n", host)
	fmt.Fprintln(h.out, rule)
	fmt.Fprintln(h.out, "")
	fmt.Fprintln(h.out, "Target resource constraints:")
	fmt.Fprintf(h.out, "  - connection pool size: %d\n", ConnPoolSize)
	fmt.Fprintf(h.out, "  - worker threads:       %d\n", WorkerThreads)
	fmt.Fprintln(h.out, "")
	fmt.Fprintln(h.out, "Expected behavior:")
	fmt.Fprintf(h.out, "  - slow endpoint: ~%v per request\n", NominalSlowQuery)
	fmt.Fprintf(h.out, "  - fast endpoint: ~%v per request\n", NominalFastQuery)
	fmt.Fprintf(h.out, "  - max slow queries/sec: %d / %.1f = %.0f req/s\n",
		ConnPoolSize, NominalSlowQuery.Seconds(), MaxSlowThroughput())
	fmt.Fprintln(h.out, rule)
}

// TestStop emits the completion marker.
func (h *Hooks) TestStop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	rule := strings.Repeat("=", 60)
	fmt.Fprintln(h.out, rule)
	fmt.Fprintf(h.out, "Load test completed (run %s)\n", h.runID)
	fmt.Fprintln(h.out, rule)
}
