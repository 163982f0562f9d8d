package driving

import "context"

// FreshnessController keeps the index current by rebuilding it on change
// signals and on a fixed interval.
type FreshnessController interface {
	// Start builds the index once, then runs until ctx is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop gracefully stops the controller and waits for a running rebuild.
	Stop() error
}
