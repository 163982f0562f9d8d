package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driven"
)

// Ensure SignalSource implements the interface.
var _ driven.SignalSource = (*SignalSource)(nil)

// SignalSource delivers events passed to Emit to every subscriber.
type SignalSource struct {
	mu   sync.Mutex
	subs map[chan domain.MutationEvent]struct{}
}

// NewSignalSource creates a signal source with no subscribers.
func NewSignalSource() *SignalSource {
	return &SignalSource{subs: make(map[chan domain.MutationEvent]struct{})}
}

// Subscribe returns a channel of events that is closed when ctx is done.
func (s *SignalSource) Subscribe(ctx context.Context) (<-chan domain.MutationEvent, error) {
	ch := make(chan domain.MutationEvent, 16)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, ch)
		close(ch)
		s.mu.Unlock()
	}()
	return ch, nil
}

// Emit delivers ev to every subscriber. Events for a subscriber whose
// buffer is full are dropped.
func (s *SignalSource) Emit(ev domain.MutationEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribers returns the number of active subscriptions.
func (s *SignalSource) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
