// Package controller owns the search request lifecycle: debouncing typed
// input, suppressing redundant calls, issuing and superseding backend
// requests, and settling results into the session state.
//
// The controller is a state machine over {Idle, Typing, Pending, Settled}
// with exactly one debounce timer and a monotonic request sequence number.
// A response mutates shared state only if its sequence number is still the
// latest issued one, so out-of-order resolutions can never clobber newer
// results.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/usestring/netinv-mcp/internal/config"
	"github.com/usestring/netinv-mcp/internal/history"
	"github.com/usestring/netinv-mcp/internal/normalize"
	"github.com/usestring/netinv-mcp/internal/preview"
	"github.com/usestring/netinv-mcp/internal/refine"
	"github.com/usestring/netinv-mcp/internal/schema"
	"github.com/usestring/netinv-mcp/internal/session"
	"github.com/usestring/netinv-mcp/internal/store"
	"github.com/usestring/netinv-mcp/pkg/client"
	"github.com/usestring/netinv-mcp/pkg/types"
)

// Backend is the slice of the inventory API the controller consumes.
type Backend interface {
	Search(ctx context.Context, query string, scope client.Scope) (*types.ResultSet, error)
}

// Phase is the controller's lifecycle state.
type Phase int

const (
	// PhaseIdle means no search is displayed or underway.
	PhaseIdle Phase = iota
	// PhaseTyping means input arrived and the debounce timer is running.
	PhaseTyping
	// PhasePending means a backend request is in flight.
	PhasePending
	// PhaseSettled means the last request resolved (success or error).
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTyping:
		return "typing"
	case PhasePending:
		return "pending"
	case PhaseSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// cacheKey identifies a response-cache entry.
type cacheKey struct {
	query string
	scope client.Scope
}

// Controller drives the search session. All exported methods are safe for
// concurrent use.
type Controller struct {
	cfg     *config.Config
	backend Backend
	kv      store.Store
	history *history.Manager
	preview *preview.Cache

	rootCtx context.Context
	cancel  context.CancelFunc

	// responses holds recent result sets so a repeat of the same query
	// within the TTL is served without a network call.
	responses *expirable.LRU[cacheKey, *types.ResultSet]

	mu             sync.Mutex
	state          *session.State
	phase          Phase
	timer          *time.Timer
	seq            uint64 // latest issued request sequence number
	lastIssued     string // cleaned term of the last issued request
	inflightCancel context.CancelFunc
	index          *refine.Index
	lastErr        *SearchError
	notice         string // informational message (zero rows, short query)

	observer func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithObserver registers a callback invoked after every asynchronous state
// change (debounce expiry, request settlement). Tests use it to synchronize.
func WithObserver(fn func()) Option {
	return func(c *Controller) {
		c.observer = fn
	}
}

// WithHistory attaches the recency-history manager.
func WithHistory(h *history.Manager) Option {
	return func(c *Controller) {
		c.history = h
	}
}

// WithPreview attaches the preview cache, used for snapshot availability.
func WithPreview(p *preview.Cache) Option {
	return func(c *Controller) {
		c.preview = p
	}
}

// New creates a controller, rehydrating the prior session state from kv.
func New(cfg *config.Config, backend Backend, kv store.Store, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		cfg:     cfg,
		backend: backend,
		kv:      kv,
		rootCtx: ctx,
		cancel:  cancel,
		state:   session.Load(kv, cfg.DefaultPageSize),
		responses: expirable.NewLRU[cacheKey, *types.ResultSet](
			cfg.ResultCacheMaxItems, nil, cfg.ResultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.state.RawResults != nil {
		c.index = refine.Build(c.state.RawResults)
		c.phase = PhaseSettled
	}
	return c
}

// Close aborts any in-flight request and stops the debounce timer. The
// resulting cancellations are classified as silent, never as user errors.
func (c *Controller) Close() {
	c.mu.Lock()
	c.stopTimerLocked()
	c.mu.Unlock()
	c.cancel()
}

// SetTerm records a keystroke. The visible term updates immediately; the
// debounce timer restarts. A term that cleans to empty drops straight to
// Idle with no backend call.
func (c *Controller) SetTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Term = term
	cleaned := normalize.CleanQuery(term)

	if cleaned == "" {
		c.stopTimerLocked()
		c.phase = PhaseIdle
		c.state.HasSearched = false
		c.lastErr = nil
		c.notice = ""
		session.Save(c.kv, c.state)
		return
	}

	c.phase = PhaseTyping
	c.stopTimerLocked()
	c.timer = time.AfterFunc(c.cfg.Debounce, c.debounceExpired)
	session.Save(c.kv, c.state)
}

// debounceExpired fires after the input has been quiet for the debounce
// interval. Too-short terms and terms identical to the last issued request
// settle without a backend call.
func (c *Controller) debounceExpired() {
	c.mu.Lock()
	if c.phase != PhaseTyping {
		c.mu.Unlock()
		return
	}

	cleaned := normalize.CleanQuery(c.state.Term)
	if len(cleaned) < c.cfg.MinQueryLen || cleaned == c.lastIssued {
		if c.state.HasSearched {
			c.phase = PhaseSettled
		} else {
			c.phase = PhaseIdle
		}
		c.mu.Unlock()
		c.notifyObserver()
		return
	}

	seq, includeHist := c.issueLocked(cleaned)
	c.mu.Unlock()

	go func() {
		c.execute(seq, cleaned, includeHist)
		c.notifyObserver()
	}()
}

// Search runs an explicit "search now" (submit or Enter): the debounce timer
// is cancelled and the request issues immediately and synchronously.
func (c *Controller) Search(ctx context.Context, term string) *Outcome {
	c.mu.Lock()
	c.stopTimerLocked()
	if term != "" {
		c.state.Term = term
	}
	cleaned := normalize.CleanQuery(c.state.Term)

	if len(cleaned) < c.cfg.MinQueryLen {
		c.notice = fmt.Sprintf("Type at least %d characters to search.", c.cfg.MinQueryLen)
		c.lastErr = &SearchError{Kind: KindValidation, Message: c.notice}
		outcome := c.outcomeLocked(cleaned)
		c.mu.Unlock()
		return outcome
	}

	seq, includeHist := c.issueLocked(cleaned)
	c.mu.Unlock()

	c.execute(seq, cleaned, includeHist)

	c.mu.Lock()
	outcome := c.outcomeLocked(cleaned)
	c.mu.Unlock()
	c.notifyObserver()
	return outcome
}

// issueLocked claims the next request sequence number and supersedes any
// request still in flight. Caller holds the lock.
func (c *Controller) issueLocked(cleaned string) (seq uint64, includeHist bool) {
	c.seq++
	c.lastIssued = cleaned
	c.phase = PhasePending
	c.lastErr = nil
	c.notice = ""
	if c.inflightCancel != nil {
		c.inflightCancel()
		c.inflightCancel = nil
	}
	return c.seq, c.state.IncludeHistorical
}

// execute performs one backend search for sequence number seq and settles
// the outcome. It runs without the lock held; settle re-checks seq.
func (c *Controller) execute(seq uint64, cleaned string, includeHist bool) {
	scope := client.ScopeCurrent
	if includeHist || c.snapshotUnusable() {
		scope = client.ScopeHistorical
	}

	key := cacheKey{query: cleaned, scope: scope}
	if rs, ok := c.responses.Get(key); ok {
		slog.Debug("serving search from response cache", slog.String("query", cleaned))
		c.settle(seq, cleaned, rs, nil)
		return
	}

	reqCtx, cancel := context.WithTimeout(c.rootCtx, c.cfg.SearchTimeout)
	defer cancel()

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		return
	}
	c.inflightCancel = cancel
	c.mu.Unlock()

	start := time.Now()
	rs, err := c.backend.Search(reqCtx, cleaned, scope)
	if err == nil && rs.Success {
		c.responses.Add(key, rs)
	}

	slog.Debug("search request finished",
		slog.String("query", cleaned),
		slog.String("scope", string(scope)),
		slog.Bool("ok", err == nil),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	c.settle(seq, cleaned, rs, err)
}

// snapshotUnusable reports whether historical scope must be forced because
// there is no usable current snapshot to search.
func (c *Controller) snapshotUnusable() bool {
	if c.preview == nil {
		return false
	}
	return c.preview.Availability(c.rootCtx) != types.SnapshotPresent
}

// settle applies a request's resolution to shared state — unless the request
// was superseded, in which case the resolution is discarded entirely.
func (c *Controller) settle(seq uint64, cleaned string, rs *types.ResultSet, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		slog.Debug("discarding superseded search response",
			slog.String("query", cleaned),
			slog.Uint64("seq", seq),
			slog.Uint64("latest", c.seq),
		)
		return
	}
	c.inflightCancel = nil

	if err != nil {
		serr := Classify(err)
		if serr.Kind == KindCanceled {
			// Shutdown-driven abort: no visible error, return to idle.
			c.phase = PhaseIdle
			return
		}
		c.lastErr = serr
		c.notice = ""
		c.state.ClearResults()
		c.phase = PhaseSettled
		session.Save(c.kv, c.state)
		slog.Warn("search failed",
			slog.String("query", cleaned),
			slog.String("kind", serr.Kind.String()),
			slog.String("error", err.Error()),
		)
		return
	}

	if !rs.Success {
		// The backend answered but reports it could not search.
		msg := rs.Message
		if msg == "" {
			msg = "The backend reported a search failure."
		}
		c.lastErr = &SearchError{Kind: KindTransport, Message: msg}
		c.notice = ""
		c.state.ClearResults()
		c.phase = PhaseSettled
		session.Save(c.kv, c.state)
		return
	}

	schema.Sanitize(rs)
	c.state.ApplyResults(cleaned, rs)
	c.index = refine.Build(rs)
	c.lastErr = nil
	if rs.Len() == 0 {
		c.notice = msgNoResults
	} else {
		c.notice = ""
	}
	c.phase = PhaseSettled

	if c.history != nil {
		if mac, ok := normalize.CanonicalMAC(cleaned); ok {
			c.history.Record(mac, "")
		}
		c.history.BackfillLocations(rs)
	}

	session.Save(c.kv, c.state)
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) notifyObserver() {
	if c.observer != nil {
		c.observer()
	}
}
