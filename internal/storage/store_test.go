package storage

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/pixil98/go-testutil"
)

type testTemplate struct {
	Name string `json:"name"`
	HP   int    `json:"hp"`
}

func (t *testTemplate) Validate() error {
	if t.HP <= 0 {
		return errors.New("hp must be positive")
	}
	return nil
}

// writeAssets writes each contents string to root/name, creating
// subdirectories as needed.
func writeAssets(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, contents := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
}

func TestNewFileStore(t *testing.T) {
	tests := map[string]struct {
		files  map[string]string
		expIds []string
		expErr string
	}{
		"empty directory": {
			expIds: []string{},
		},
		"nested assets and stray files": {
			files: map[string]string{
				"orc.json":         `{"version":1,"id":"orc","spec":{"name":"Orc","hp":10}}`,
				"deep/troll.json":  `{"version":1,"id":"troll","spec":{"name":"Troll","hp":16}}`,
				"README.md":        `not an asset`,
				"deep/notes.json~": `ignored backup`,
			},
			expIds: []string{"orc", "troll"},
		},
		"broken json": {
			files:  map[string]string{"orc.json": `{"version":1,`},
			expErr: "loading orc.json: unmarshalling asset",
		},
		"spec fails validation": {
			files:  map[string]string{"orc.json": `{"version":1,"id":"orc","spec":{"name":"Orc","hp":0}}`},
			expErr: "validating orc.json: hp must be positive",
		},
		"same id in two files": {
			files: map[string]string{
				"a/orc.json": `{"version":1,"id":"orc","spec":{"name":"Orc","hp":10}}`,
				"b/orc.json": `{"version":1,"id":"orc","spec":{"name":"Big Orc","hp":20}}`,
			},
			expErr: "duplicate key detected: orc",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root := t.TempDir()
			writeAssets(t, root, tt.files)

			store, err := NewFileStore[*testTemplate](root)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "ids", slices.Equal(SortedIds[*testTemplate](store), tt.expIds), true)
		})
	}
}

func TestNewFileStore_MissingDirectory(t *testing.T) {
	_, err := NewFileStore[*testTemplate](filepath.Join(t.TempDir(), "gone"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
}

func TestFileStore_Get(t *testing.T) {
	root := t.TempDir()
	writeAssets(t, root, map[string]string{
		"orc.json": `{"version":1,"id":"orc","spec":{"name":"Orc","hp":10}}`,
	})
	store, err := NewFileStore[*testTemplate](root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "orc hp", store.Get("orc").HP, 10)
	if store.Get("dragon") != nil {
		t.Errorf("expected nil for an unknown id")
	}

	all := store.GetAll()
	delete(all, "orc")
	if store.Get("orc") == nil {
		t.Errorf("deleting from GetAll result changed the store")
	}
}

func TestMemoryStore(t *testing.T) {
	src := map[string]*testTemplate{"orc": {Name: "Orc", HP: 10}}
	store := NewMemoryStore(src)
	src["troll"] = &testTemplate{Name: "Troll", HP: 16}

	testutil.AssertEqual(t, "ids", slices.Equal(SortedIds[*testTemplate](store), []string{"orc"}), true)
	testutil.AssertEqual(t, "nil records", len(NewMemoryStore[*testTemplate](nil).GetAll()), 0)
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")

	for _, data := range []string{"first", "second"} {
		if err := WriteFileAtomic(path, []byte(data), 0644); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testutil.AssertEqual(t, "contents", string(got), data)
	}
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temp file left behind")
	}

	err := WriteFileAtomic(filepath.Join(t.TempDir(), "gone", "out.bin"), []byte("x"), 0644)
	testutil.AssertErrorContains(t, err, "writing temp file")
}
