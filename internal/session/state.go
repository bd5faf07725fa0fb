package session

import (
	"sync"

	"github.com/abhisek/mathsheet/internal/problemgen"
)

// Phase is the presentation phase of the worksheet screen.
type Phase int

const (
	PhaseIdle    Phase = iota // Nothing requested yet
	PhaseLoading              // A generation call is outstanding
	PhaseReady                // Problems are on display
	PhaseFailed               // The last request failed; Err is set
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Policy decides which resolution is shown when requests overlap.
type Policy int

const (
	// LatestRequestWins discards results of any request that is not the
	// most recent one. When B is requested after A and resolves first, B
	// stays on screen and A's late result is dropped; use LastResolvedWins
	// to show A instead.
	LatestRequestWins Policy = iota

	// LastResolvedWins applies every result as it arrives, so whichever
	// call finishes last is shown.
	LastResolvedWins
)

// Ticket identifies one generation request.
type Ticket struct {
	Seq    uint64
	Config problemgen.Config
}

// Controller owns the worksheet presentation state. All methods are safe
// for concurrent use.
type Controller struct {
	mu       sync.Mutex
	policy   Policy
	phase    Phase
	seq      uint64
	pending  map[uint64]struct{}
	problems []string
	err      error
	cfg      problemgen.Config
	shown    uint64 // ticket whose problems are displayed
}

// New creates a Controller in PhaseIdle.
func New(policy Policy) *Controller {
	return &Controller{
		policy:  policy,
		pending: make(map[uint64]struct{}),
	}
}

// Begin starts a request for cfg and enters PhaseLoading. Any error from
// a previous request is cleared; the displayed problems stay until a
// result replaces them.
func (c *Controller) Begin(cfg problemgen.Config) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.pending[c.seq] = struct{}{}
	c.phase = PhaseLoading
	c.err = nil
	return Ticket{Seq: c.seq, Config: cfg}
}

// Resolve delivers the outcome of t. It returns false when the result was
// discarded: the ticket already resolved, or it is stale under
// LatestRequestWins. On success the problem list is replaced as a whole;
// on failure the previous list is kept.
func (c *Controller) Resolve(t Ticket, problems []string, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.pending[t.Seq]; !ok {
		return false
	}
	delete(c.pending, t.Seq)

	if c.policy == LatestRequestWins && t.Seq != c.seq {
		return false
	}

	if err != nil {
		c.err = err
		c.phase = PhaseFailed
	} else {
		c.problems = append([]string(nil), problems...)
		c.cfg = t.Config
		c.shown = t.Seq
		c.err = nil
		c.phase = PhaseReady
	}

	// Under LastResolvedWins another call may still be running. Loading
	// holds until the last one resolves; an earlier failure surfaces only if
	// nothing resolves after it.
	if c.policy == LastResolvedWins && len(c.pending) > 0 {
		c.phase = PhaseLoading
	}
	return true
}

// Reject records a validation failure that happened before any call was
// made. It does not touch outstanding tickets.
func (c *Controller) Reject(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.err = err
	c.phase = PhaseFailed
}

// Dismiss clears a failure and returns to the phase implied by the
// displayed problems.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseFailed {
		return
	}
	c.err = nil
	if c.problems != nil {
		c.phase = PhaseReady
	} else {
		c.phase = PhaseIdle
	}
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Loading reports whether a request is outstanding.
func (c *Controller) Loading() bool {
	return c.Phase() == PhaseLoading
}

// Problems returns a copy of the displayed problems.
func (c *Controller) Problems() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.problems...)
}

// Config returns the config that produced the displayed problems.
func (c *Controller) Config() problemgen.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// Err returns the error shown in PhaseFailed, nil otherwise.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseFailed {
		return nil
	}
	return c.err
}

// Shown returns the sequence number of the ticket whose problems are on
// display, or 0.
func (c *Controller) Shown() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shown
}
