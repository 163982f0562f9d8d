package status

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

func hints() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func TestBar_States(t *testing.T) {
	tests := []struct {
		name  string
		setup func(b *Bar)
		want  string
	}{
		{"idle", func(b *Bar) {}, "Ready"},
		{"debouncing", func(b *Bar) { b.SetState(domain.SessionDebouncing) }, "Searching..."},
		{"querying", func(b *Bar) { b.SetState(domain.SessionQuerying) }, "Searching..."},
		{"delivered", func(b *Bar) {
			b.SetState(domain.SessionDelivered)
			b.SetResultCount(7)
		}, "7 results"},
		{"index size", func(b *Bar) { b.SetIndexSize("412 documents") }, "Ready · 412 documents"},
		{"message", func(b *Bar) { b.SetMessage("Saved caps.history") }, "Saved caps.history"},
		{"error wins", func(b *Bar) {
			b.SetMessage("hidden")
			b.SetError("boom")
		}, "Error: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBar(nil, hints())
			b.SetWidth(120)
			tt.setup(b)
			assert.Contains(t, b.View(), tt.want)
		})
	}
}

func TestBar_Hints(t *testing.T) {
	b := NewBar(nil, hints())
	b.SetWidth(120)

	assert.Contains(t, b.View(), "enter: open | ctrl+c: quit")
}

func TestBar_Clear(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetState(domain.SessionDelivered)
	b.SetResultCount(3)
	b.SetError("x")
	b.SetIndexSize("3 documents")

	b.Clear()

	assert.Equal(t, domain.SessionIdle, b.State())
	assert.Zero(t, b.ResultCount())
	assert.Contains(t, b.View(), "Ready · 3 documents")
}
