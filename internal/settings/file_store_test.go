package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), StoreFilename))
}

func TestFileStore_LoadEmpty(t *testing.T) {
	fs := newTestStore(t)

	loaded, err := fs.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	fs := newTestStore(t)

	want := Default()
	want.Keywords = []string{"Go", "Kubernetes"}
	want.RemoteOnly = false
	want.SalaryMin = nil

	saved, err := fs.Save(want)
	require.NoError(t, err)
	assert.Equal(t, want, saved)

	loaded, err := fs.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, want, *loaded)
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	fs := newTestStore(t)

	first := Default()
	_, err := fs.Save(first)
	require.NoError(t, err)

	second := Default()
	second.CompanyBlacklist = []string{"Initech"}
	_, err = fs.Save(second)
	require.NoError(t, err)

	loaded, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Initech"}, loaded.CompanyBlacklist)
}

func TestFileStore_FileShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), StoreFilename)
	fs := NewFileStore(path)

	_, err := fs.Save(Default())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// The file is a single-key document keyed by "settings", with the
	// snapshot serialized in camelCase.
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Contains(t, doc, "settings")
	assert.Contains(t, string(doc["settings"]), `"preferredTitles"`)
	assert.Contains(t, string(doc["settings"]), `"remoteOnly"`)
}

func TestFileStore_EnsureDefaults(t *testing.T) {
	fs := newTestStore(t)

	effective, err := fs.EnsureDefaults()
	require.NoError(t, err)
	assert.Equal(t, Default(), effective)

	// A second call returns the persisted snapshot untouched.
	custom := Default()
	custom.Keywords = []string{"Go"}
	_, err = fs.Save(custom)
	require.NoError(t, err)

	effective, err = fs.EnsureDefaults()
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, effective.Keywords)
}

func TestFileStore_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", StoreFilename)
	fs := NewFileStore(path)

	_, err := fs.Save(Default())
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), StoreFilename)
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	_, err := NewFileStore(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse settings store")
}

func TestDefault_Shape(t *testing.T) {
	d := Default()
	assert.True(t, d.RemoteOnly)
	assert.NotEmpty(t, d.PreferredTitles)
	assert.NotEmpty(t, d.Keywords)
	require.NotNil(t, d.SalaryMin)
	require.NotNil(t, d.SalaryMax)
	assert.Less(t, *d.SalaryMin, *d.SalaryMax)
	assert.NotNil(t, d.CompanyBlacklist)
	assert.Empty(t, d.CompanyBlacklist)
}
