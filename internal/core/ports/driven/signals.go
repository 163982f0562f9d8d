package driven

import (
	"context"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

// SignalSource emits change notifications for tabs, bookmarks and history.
type SignalSource interface {
	// Subscribe starts delivering events until ctx is cancelled.
	// The returned channel is closed when the subscription ends.
	Subscribe(ctx context.Context) (<-chan domain.MutationEvent, error)
}
