package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDocumentType_IsValid tests valid and invalid document types
func TestDocumentType_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		docType  DocumentType
		expected bool
	}{
		{"tab is valid", DocumentTypeTab, true},
		{"bookmark is valid", DocumentTypeBookmark, true},
		{"history is valid", DocumentTypeHistory, true},
		{"suggestion is valid", DocumentTypeSuggestion, true},
		{"empty is invalid", DocumentType(""), false},
		{"unknown is invalid", DocumentType("download"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.docType.IsValid())
		})
	}
}

// TestDocumentType_Rank tests the priority order tab > bookmark > history > suggestion
func TestDocumentType_Rank(t *testing.T) {
	assert.Less(t, DocumentTypeTab.Rank(), DocumentTypeBookmark.Rank())
	assert.Less(t, DocumentTypeBookmark.Rank(), DocumentTypeHistory.Rank())
	assert.Less(t, DocumentTypeHistory.Rank(), DocumentTypeSuggestion.Rank())
	assert.Less(t, DocumentTypeSuggestion.Rank(), DocumentType("other").Rank())
}

func TestIndexedDocument_IsHistory(t *testing.T) {
	assert.True(t, IndexedDocument{Type: DocumentTypeHistory}.IsHistory())
	assert.False(t, IndexedDocument{Type: DocumentTypeTab}.IsHistory())
}
