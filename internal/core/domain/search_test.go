package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchKind_String(t *testing.T) {
	assert.Equal(t, "exact", MatchExact.String())
	assert.Equal(t, "fuzzy", MatchFuzzy.String())
	assert.Equal(t, "prefix", MatchPrefix.String())
	assert.Equal(t, "word", MatchWord.String())
	assert.Equal(t, "Unknown", MatchKind(99).String())
}

func TestSessionState_String(t *testing.T) {
	assert.Equal(t, "idle", SessionIdle.String())
	assert.Equal(t, "debouncing", SessionDebouncing.String())
	assert.Equal(t, "querying", SessionQuerying.String())
	assert.Equal(t, "delivered", SessionDelivered.String())
	assert.Equal(t, "Unknown", SessionState(42).String())
}

// TestMutationEvent_AffectsIndex tests that tab updates only count when title or URL changed
func TestMutationEvent_AffectsIndex(t *testing.T) {
	tests := []struct {
		name  string
		event MutationEvent
		want  bool
	}{
		{"tab created", MutationEvent{Kind: TabCreated}, true},
		{"tab removed", MutationEvent{Kind: TabRemoved}, true},
		{"tab loading update", MutationEvent{Kind: TabUpdated}, false},
		{"tab title update", MutationEvent{Kind: TabUpdated, TitleChanged: true}, true},
		{"tab url update", MutationEvent{Kind: TabUpdated, URLChanged: true}, true},
		{"bookmark moved", MutationEvent{Kind: BookmarkMoved}, true},
		{"history visited", MutationEvent{Kind: HistoryVisited}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.AffectsIndex())
		})
	}
}

func TestMutationKind_Source(t *testing.T) {
	assert.Equal(t, DocumentTypeTab, TabUpdated.Source())
	assert.Equal(t, DocumentTypeBookmark, BookmarkMoved.Source())
	assert.Equal(t, DocumentTypeHistory, HistoryVisitRemoved.Source())
	assert.Equal(t, "history_visited", HistoryVisited.String())
}
