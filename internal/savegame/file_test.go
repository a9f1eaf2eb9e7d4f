package savegame

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pixil98/go-rogue/internal/driver"
	"github.com/pixil98/go-rogue/internal/world"
	"github.com/pixil98/go-testutil"
)

func TestSaveFile_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "savegame.sav")
	orig := newTestSession(t)

	if err := SaveFile(path, orig); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temp file left behind")
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "player id", got.Player.Id, orig.Player.Id)
	testutil.AssertEqual(t, "depth", got.Depth(), orig.Depth())
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "valid.sav")
	if err := SaveFile(valid, newTestSession(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	compressed, err := os.ReadFile(valid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := map[string]struct {
		contents []byte
		missing  bool
		expErr   error
		notErr   error
	}{
		"missing file": {
			missing: true,
			expErr:  ErrNoSave,
			notErr:  ErrCorrupt,
		},
		"not compressed": {
			contents: []byte("plain text"),
			expErr:   ErrCorrupt,
			notErr:   ErrNoSave,
		},
		"truncated": {
			contents: compressed[:len(compressed)-10],
			expErr:   ErrCorrupt,
			notErr:   ErrNoSave,
		},
		"empty": {
			contents: []byte{},
			expErr:   ErrCorrupt,
			notErr:   ErrNoSave,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".sav")
			if !tt.missing {
				if err := os.WriteFile(path, tt.contents, 0644); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			s, err := LoadFile(path)
			if s != nil {
				t.Errorf("expected no session")
			}
			if !errors.Is(err, tt.expErr) {
				t.Fatalf("expected %v, got %v", tt.expErr, err)
			}
			if errors.Is(err, tt.notErr) {
				t.Errorf("error should not also be %v", tt.notErr)
			}
		})
	}
}

func TestAutoSaver_Tick(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auto.sav")
	saver := NewAutoSaver(world.NewHost(newTestSession(t)), NewFileStore(path), 2)
	ctx := context.Background()

	if err := saver.Tick(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no save after one tick")
	}

	if err := saver.Tick(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := LoadFile(path); err != nil {
		t.Fatalf("expected a loadable save after two ticks: %v", err)
	}
}

func TestAutoSaver_Tick_FailureDoesNotStopDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "auto.sav")
	saver := NewAutoSaver(world.NewHost(newTestSession(t)), NewFileStore(path), 1)

	if err := saver.Tick(context.Background()); err != nil {
		t.Fatalf("expected tick to swallow the save error, got %v", err)
	}
	if err := saver.Save(); err == nil {
		t.Errorf("expected a direct save to report the error")
	}
}

func TestAutoSaver_FinalTickSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auto.sav")
	orig := newTestSession(t)
	saver := NewAutoSaver(world.NewHost(orig), NewFileStore(path), 12)
	d := driver.NewDriver([]driver.Manager{saver}, driver.WithTickLength(time.Hour), driver.WithFinalTick())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := d.Start(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("expected a save written on shutdown: %v", err)
	}
	testutil.AssertEqual(t, "player id", got.Player.Id, orig.Player.Id)
}

func TestAutoSaver_Final_ReportsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "auto.sav")
	saver := NewAutoSaver(world.NewHost(newTestSession(t)), NewFileStore(path), 12)

	testutil.AssertErrorContains(t, saver.Final(context.Background()), "final save")
}
