package services

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
)

// Normalise converts one source record into an indexable document.
// It reads only its input and never fails: unusable fields fall back to
// their defaults.
func Normalise(record domain.SourceRecord) domain.IndexedDocument {
	switch r := record.(type) {
	case domain.TabRecord:
		return newDocument("tab-"+r.ID, r.Title, r.URL, domain.DocumentTypeTab, r.FaviconURL)
	case domain.BookmarkRecord:
		return newDocument("bookmark-"+r.ID, r.Title, r.URL, domain.DocumentTypeBookmark, "")
	case domain.HistoryRecord:
		doc := newDocument(
			"history-"+strconv.Itoa(r.Position)+"-"+r.ID,
			r.Title, r.URL, domain.DocumentTypeHistory, "",
		)
		doc.LastVisitTime = r.LastVisitTime
		doc.VisitCount = r.VisitCount
		return doc
	default:
		return domain.IndexedDocument{Title: domain.UntitledTitle}
	}
}

func newDocument(id, title, rawURL string, docType domain.DocumentType, favicon string) domain.IndexedDocument {
	title = strings.TrimSpace(title)
	if title == "" {
		title = domain.UntitledTitle
	}
	rawURL = strings.TrimSpace(rawURL)
	return domain.IndexedDocument{
		ID:         id,
		Title:      title,
		URL:        rawURL,
		Type:       docType,
		Favicon:    favicon,
		SearchText: buildSearchText(title, rawURL),
	}
}

// pathSeparators become spaces so path segments are matchable as words.
var pathSeparators = strings.NewReplacer("/", " ", "-", " ", "_", " ", ".", " ", "+", " ")

// buildSearchText joins the title, the host without "www." and the path words.
// When the URL has no host the raw title and URL are joined instead.
func buildSearchText(title, rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return strings.ToLower(strings.TrimSpace(title + " " + rawURL))
	}

	parts := []string{title, domain.StripWWW(strings.ToLower(u.Hostname()))}
	path := u.Path
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}
	parts = append(parts, strings.Fields(pathSeparators.Replace(path))...)
	return strings.ToLower(strings.Join(parts, " "))
}
