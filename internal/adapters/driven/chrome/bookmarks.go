package chrome

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/custodia-labs/sercha-palette/internal/core/domain"
	"github.com/custodia-labs/sercha-palette/internal/core/ports/driven"
)

// Ensure BookmarkSource implements the interface.
var _ driven.BookmarkSource = (*BookmarkSource)(nil)

// rootOrder is the order the bookmark roots are returned in.
var rootOrder = []string{"bookmark_bar", "other", "synced"}

type bookmarkFile struct {
	Roots map[string]bookmarkEntry `json:"roots"`
}

type bookmarkEntry struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	URL      string          `json:"url"`
	Children []bookmarkEntry `json:"children"`
}

func (e bookmarkEntry) node() domain.BookmarkNode {
	n := domain.BookmarkNode{ID: e.ID, Title: e.Name}
	if e.Type == "url" {
		n.URL = e.URL
	}
	if len(e.Children) > 0 {
		n.Children = make([]domain.BookmarkNode, len(e.Children))
		for i, c := range e.Children {
			n.Children[i] = c.node()
		}
	}
	return n
}

// BookmarkSource reads the profile's Bookmarks file.
type BookmarkSource struct {
	path string
}

// NewBookmarkSource creates a bookmark source for the profile directory.
func NewBookmarkSource(profileDir string) *BookmarkSource {
	return &BookmarkSource{path: filepath.Join(profileDir, BookmarksFile)}
}

// BookmarkTree returns the bookmark bar, other and synced roots.
// A profile that has never saved a bookmark has no file and yields no roots.
func (s *BookmarkSource) BookmarkTree(ctx context.Context) ([]domain.BookmarkNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading bookmarks: %w", err)
	}

	var file bookmarkFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing bookmarks: %w", err)
	}

	var roots []domain.BookmarkNode
	for _, name := range rootOrder {
		if entry, ok := file.Roots[name]; ok {
			roots = append(roots, entry.node())
		}
	}
	return roots, nil
}
