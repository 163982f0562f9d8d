package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-palette/internal/logger"
	"github.com/custodia-labs/sercha-palette/internal/metrics"
)

// Ensure the session types implement their interfaces.
var (
	_ driving.QuerySession   = (*QuerySession)(nil)
	_ driving.SessionFactory = (*SessionFactory)(nil)
)

// SessionFactory opens query sessions over a search service.
type SessionFactory struct {
	search  driving.SearchService
	delay   time.Duration
	opts    domain.SearchOptions
	metrics *metrics.Metrics
}

// NewSessionFactory creates a factory. Sessions debounce input by delay
// and search with opts. m may be nil.
func NewSessionFactory(
	search driving.SearchService,
	delay time.Duration,
	opts domain.SearchOptions,
	m *metrics.Metrics,
) *SessionFactory {
	return &SessionFactory{search: search, delay: delay, opts: opts, metrics: m}
}

// NewSession opens a session.
func (f *SessionFactory) NewSession() driving.QuerySession {
	return NewQuerySession(f.search, f.delay, f.opts, f.metrics)
}

// QuerySession turns keystrokes into searches. Input is debounced; each
// submitted query gets the next sequence number, and only the result of the
// most recently submitted query is delivered, at most once.
type QuerySession struct {
	id      string
	search  driving.SearchService
	delay   time.Duration
	opts    domain.SearchOptions
	metrics *metrics.Metrics
	log     *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	state     domain.SessionState
	pending   string
	composing bool
	timer     *time.Timer
	timerGen  uint64
	inflight  int
	idle      *sync.Cond
	submitted uint64
	delivered uint64
	closed    bool
	results   chan domain.SessionResult
}

// NewQuerySession opens a session. m may be nil.
func NewQuerySession(
	search driving.SearchService,
	delay time.Duration,
	opts domain.SearchOptions,
	m *metrics.Metrics,
) *QuerySession {
	ctx, cancel := context.WithCancel(context.Background())
	id := uuid.NewString()
	s := &QuerySession{
		id:      id,
		search:  search,
		delay:   delay,
		opts:    opts,
		metrics: m,
		log:     logger.Named("session " + id[:8]),
		ctx:     ctx,
		cancel:  cancel,
		state:   domain.SessionIdle,
		results: make(chan domain.SessionResult, 1),
	}
	s.idle = sync.NewCond(&s.mu)
	return s
}

// ID returns the session's unique identifier.
func (s *QuerySession) ID() string {
	return s.id
}

// Input records the current query text and restarts the debounce timer.
// An empty query returns the session to Idle and invalidates any query in flight.
func (s *QuerySession) Input(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending = raw
	if s.composing {
		return
	}
	s.scheduleLocked()
}

func (s *QuerySession) scheduleLocked() {
	s.stopTimerLocked()
	if strings.TrimSpace(s.pending) == "" {
		s.submitted++
		s.state = domain.SessionIdle
		return
	}
	s.state = domain.SessionDebouncing
	gen := s.timerGen
	s.timer = time.AfterFunc(s.delay, func() { s.fire(gen) })
}

func (s *QuerySession) stopTimerLocked() {
	s.timerGen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// CompositionStart suspends searching until CompositionEnd.
func (s *QuerySession) CompositionStart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.composing = true
	s.stopTimerLocked()
}

// CompositionEnd resumes searching with the composed text.
func (s *QuerySession) CompositionEnd(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.composing = false
	s.pending = raw
	s.scheduleLocked()
}

// Flush submits the pending query now and waits until no search is running.
func (s *QuerySession) Flush() {
	s.mu.Lock()
	if s.closed || s.composing {
		s.mu.Unlock()
		return
	}
	if s.state == domain.SessionDebouncing {
		s.stopTimerLocked()
		q, seq, ok := s.submitLocked()
		s.mu.Unlock()
		if ok {
			s.run(q, seq)
		}
		s.mu.Lock()
	}
	for s.inflight > 0 && !s.closed {
		s.idle.Wait()
	}
	s.mu.Unlock()
}

// fire runs when the debounce timer of generation gen expires.
func (s *QuerySession) fire(gen uint64) {
	s.mu.Lock()
	if s.closed || s.composing || gen != s.timerGen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	q, seq, ok := s.submitLocked()
	s.mu.Unlock()
	if ok {
		s.run(q, seq)
	}
}

// submitLocked promotes the pending text to a query with a fresh sequence number.
func (s *QuerySession) submitLocked() (string, uint64, bool) {
	q := strings.TrimSpace(s.pending)
	if q == "" {
		return "", 0, false
	}
	s.submitted++
	s.state = domain.SessionQuerying
	s.inflight++
	s.wg.Add(1)
	return q, s.submitted, true
}

func (s *QuerySession) run(q string, seq uint64) {
	defer s.wg.Done()

	results, err := s.search.Search(s.ctx, q, s.opts)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		s.inflight--
		s.idle.Broadcast()
	}()
	if s.closed {
		return
	}
	if seq != s.submitted || seq <= s.delivered {
		s.metrics.StaleResultDropped()
		s.log.Debug("dropping stale result for %q (#%d, latest #%d)", q, seq, s.submitted)
		return
	}
	if err != nil {
		s.log.Warn("search for %q failed: %v", q, err)
		return
	}

	s.delivered = seq
	s.state = domain.SessionDelivered
	r := domain.SessionResult{Query: q, Results: results, Sequence: seq}
	select {
	case s.results <- r:
	default:
		// Replace an undelivered older result.
		select {
		case <-s.results:
		default:
		}
		s.results <- r
	}
}

// Results delivers the latest query's result. It is closed by Close.
func (s *QuerySession) Results() <-chan domain.SessionResult {
	return s.results
}

// State returns the session's current state.
func (s *QuerySession) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close discards pending work, waits for running searches and closes Results.
func (s *QuerySession) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.stopTimerLocked()
	s.idle.Broadcast()
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	close(s.results)
}

// StreamSearch runs every query received on in through a new session and
// emits the delivered results. When in is closed the last pending query is
// flushed; the output is closed once the session is.
func StreamSearch(ctx context.Context, factory driving.SessionFactory, in <-chan string) <-chan domain.SessionResult {
	session := factory.NewSession()
	out := make(chan domain.SessionResult)

	go func() {
		defer session.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case q, ok := <-in:
				if !ok {
					session.Flush()
					return
				}
				session.Input(q)
			}
		}
	}()

	go func() {
		defer close(out)
		for r := range session.Results() {
			select {
			case out <- r:
			case <-ctx.Done():
			}
		}
	}()
	return out
}
