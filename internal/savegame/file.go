package savegame

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pixil98/go-rogue/internal/storage"
	"github.com/pixil98/go-rogue/internal/world"
)

// Store persists a single session.
type Store interface {
	Save(context.Context, *world.Session) error
	Load(context.Context) (*world.Session, error)
}

// compress encodes s and zstd compresses the result.
func compress(s *world.Session) ([]byte, error) {
	raw, err := Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("creating compressor: %w", err)
	}
	defer func() { _ = enc.Close() }()

	return enc.EncodeAll(raw, nil), nil
}

// decompress reverses compress. from names the source in errors.
func decompress(compressed []byte, from string) (*world.Session, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("creating decompressor: %w", err)
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: decompressing %s: %w", ErrCorrupt, from, err)
	}
	return Unmarshal(raw)
}

// SaveFile writes s to path, zstd compressed. The file is replaced
// atomically so a crash never leaves a half written save.
func SaveFile(path string, s *world.Session) error {
	b, err := compress(s)
	if err != nil {
		return err
	}
	return storage.WriteFileAtomic(path, b, 0644)
}

// LoadFile reads a session written by SaveFile. A missing file is ErrNoSave;
// anything unreadable is ErrCorrupt.
func LoadFile(path string) (*world.Session, error) {
	compressed, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrNoSave)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return decompress(compressed, path)
}

// FileStore keeps the session in one file on disk.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Save(_ context.Context, s *world.Session) error {
	return SaveFile(f.path, s)
}

func (f *FileStore) Load(context.Context) (*world.Session, error) {
	return LoadFile(f.path)
}

func (f *FileStore) String() string {
	return "file:" + f.path
}
