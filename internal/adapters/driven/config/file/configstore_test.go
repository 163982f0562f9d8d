package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Path(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, DefaultDirName, "config.toml"), store.Path())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not toml {{{[["), 0600))

	store, err := NewConfigStore(dir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

// TestConfigStore_TypedGetters tests typed access and wrong-type fallbacks
func TestConfigStore_TypedGetters(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("browser.devtools_url", "http://127.0.0.1:9333"))
	require.NoError(t, store.Set("caps.history", 4))
	require.NoError(t, store.Set("search.fuzzy_threshold", 0.3))
	require.NoError(t, store.Set("suggestions.enabled", true))
	require.NoError(t, store.Set("session.debounce", "150ms"))

	assert.Equal(t, "http://127.0.0.1:9333", store.GetString("browser.devtools_url"))
	assert.Equal(t, 4, store.GetInt("caps.history"))
	assert.Equal(t, 0.3, store.GetFloat("search.fuzzy_threshold"))
	assert.Equal(t, 4.0, store.GetFloat("caps.history"))
	assert.True(t, store.GetBool("suggestions.enabled"))
	assert.Equal(t, 150*time.Millisecond, store.GetDuration("session.debounce"))

	assert.Equal(t, "", store.GetString("caps.history"))
	assert.Equal(t, 0, store.GetInt("browser.devtools_url"))
	assert.Equal(t, 0.0, store.GetFloat("suggestions.enabled"))
	assert.False(t, store.GetBool("session.debounce"))
	assert.Equal(t, time.Duration(0), store.GetDuration("browser.devtools_url"))
	assert.Equal(t, time.Duration(0), store.GetDuration("missing"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_Keys(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("search.limit", 10))
	require.NoError(t, store.Set("caps.history", 2))
	require.NoError(t, store.Set("caps.bookmark", 3))

	assert.Equal(t, []string{"caps.bookmark", "caps.history", "search.limit"}, store.Keys())
}

// TestConfigStore_PersistsAsTables tests that dot keys round-trip through nested TOML tables
func TestConfigStore_PersistsAsTables(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("caps.history", 5))
	require.NoError(t, store.Set("history.debounce", "3s"))
	require.NoError(t, store.Set("search.fuzzy_threshold", 0.25))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[caps]")
	assert.NotContains(t, string(raw), "'caps.history'")

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, 5, reloaded.GetInt("caps.history"))
	assert.Equal(t, 3*time.Second, reloaded.GetDuration("history.debounce"))
	assert.Equal(t, 0.25, reloaded.GetFloat("search.fuzzy_threshold"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("caps.bookmark", 1))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("caps.history", 2))

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("caps.history", 3))
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("caps.history", 2))
	require.NoError(t, os.WriteFile(store.Path(), []byte("invalid ][}{"), 0600))

	assert.Error(t, store.Load())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "caps.k" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 10)
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"a.b":   1,
		"a.c.d": "x",
		"e":     true,
		"e.f":   2,
	})

	assert.Equal(t, map[string]any{
		"a": map[string]any{
			"b": 1,
			"c": map[string]any{"d": "x"},
		},
		"e": true,
	}, nested)
	assert.Equal(t, map[string]any{"a.b": 1, "a.c.d": "x", "e": true}, flattenMap(nested, ""))
}
