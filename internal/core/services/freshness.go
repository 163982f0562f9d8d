package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-palette/internal/logger"
)

// Ensure FreshnessController implements the interface.
var _ driving.FreshnessController = (*FreshnessController)(nil)

// rebuilder is the part of IndexBuilder the controller drives.
type rebuilder interface {
	Build(ctx context.Context) error
}

// FreshnessController rebuilds the index at startup, on change signals and
// on a fixed interval. Tab and bookmark signals rebuild immediately; bursts
// of history visits are debounced into one rebuild. Overlapping requests
// collapse in the builder.
type FreshnessController struct {
	builder  rebuilder
	signals  driven.SignalSource
	settings domain.FreshnessSettings
	log      *logger.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewFreshnessController creates a controller. signals may be nil, in which
// case only the interval rebuild runs.
func NewFreshnessController(
	builder rebuilder,
	signals driven.SignalSource,
	settings domain.FreshnessSettings,
) *FreshnessController {
	return &FreshnessController{
		builder:  builder,
		signals:  signals,
		settings: settings,
		log:      logger.Named("freshness"),
	}
}

// Start builds the index, then runs until ctx is cancelled or Stop is called.
func (c *FreshnessController) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return nil // Already running
	}
	c.running = true
	c.stopCh = make(chan struct{})
	stopCh := c.stopCh
	c.mu.Unlock()

	var events <-chan domain.MutationEvent
	if c.signals != nil {
		ch, err := c.signals.Subscribe(ctx)
		if err != nil {
			c.log.Warn("change signals unavailable, relying on interval rebuilds: %v", err)
		} else {
			events = ch
		}
	}

	c.trigger(ctx, "startup")
	return c.run(ctx, stopCh, events)
}

// Stop gracefully shuts down the controller and waits for a running rebuild.
func (c *FreshnessController) Stop() error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil
	}
	c.running = false
	close(c.stopCh)
	c.mu.Unlock()

	c.wg.Wait()
	return nil
}

func (c *FreshnessController) run(ctx context.Context, stopCh <-chan struct{}, events <-chan domain.MutationEvent) error {
	interval := c.settings.Interval
	if interval <= 0 {
		interval = domain.DefaultEngineSettings().Freshness.Interval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var debounce *time.Timer
	var debounceC <-chan time.Time
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			c.mu.Lock()
			if c.running && c.stopCh == stopCh {
				c.running = false
				close(c.stopCh)
			}
			c.mu.Unlock()
			c.wg.Wait()
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			c.trigger(ctx, "interval")
		case <-debounceC:
			debounceC = nil
			c.trigger(ctx, "history")
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if !ev.AffectsIndex() {
				continue
			}
			if ev.Kind == domain.HistoryVisited {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.NewTimer(c.settings.HistoryDebounce)
				debounceC = debounce.C
				continue
			}
			c.trigger(ctx, ev.Kind.String())
		}
	}
}

// trigger starts a rebuild in the background.
func (c *FreshnessController) trigger(ctx context.Context, reason string) {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		c.log.Debug("rebuild requested: %s", reason)
		err := c.builder.Build(ctx)
		switch {
		case err == nil:
		case IsCollapsed(err):
			c.log.Debug("rebuild for %s collapsed into the running one", reason)
		default:
			c.log.Warn("rebuild for %s failed: %v", reason, err)
		}
	}()
}
