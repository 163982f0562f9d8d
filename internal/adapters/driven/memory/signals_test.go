package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

func TestSignalSource_EmitAndUnsubscribe(t *testing.T) {
	src := NewSignalSource()
	ctx, cancel := context.WithCancel(context.Background())

	events, err := src.Subscribe(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, src.Subscribers())

	src.Emit(domain.MutationEvent{Kind: domain.BookmarkCreated, ID: "9"})

	select {
	case ev := <-events:
		assert.Equal(t, domain.BookmarkCreated, ev.Kind)
		assert.Equal(t, "9", ev.ID)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}

	cancel()
	require.Eventually(t, func() bool { return src.Subscribers() == 0 }, time.Second, 5*time.Millisecond)

	_, open := <-events
	assert.False(t, open)
}
