package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rohanthewiz/serr"
	"github.com/vmihailenco/msgpack/v5"
)

// FileStore persists client state as a msgpack-encoded map in a single file.
//
// The file holds a map rather than a bare string so further client settings
// can share it later without a format change. Only TokenKey is used today.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by the file at path.
// The file and its parent directory are created on the first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file location
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Get() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	state, err := f.read()
	if err != nil {
		return "", err
	}
	return state[TokenKey], nil
}

func (f *FileStore) Set(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	state, err := f.read()
	if err != nil {
		return err
	}
	state[TokenKey] = token
	return f.write(state)
}

// Clear removes the token, deleting the file once nothing else is stored
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	state, err := f.read()
	if err != nil {
		return err
	}
	delete(state, TokenKey)

	if len(state) == 0 {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return serr.Wrap(err, "failed to remove session file")
		}
		return nil
	}
	return f.write(state)
}

// read decodes the state map; a missing file is an empty state
func (f *FileStore) read() (map[string]string, error) {
	state := map[string]string{}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return state, nil
		}
		return nil, serr.Wrap(err, "failed to read session file")
	}
	if len(data) == 0 {
		return state, nil
	}

	if err := msgpack.Unmarshal(data, &state); err != nil {
		return nil, serr.Wrap(err, "failed to decode session file")
	}
	return state, nil
}

// write replaces the file atomically so a crash never leaves half a token behind
func (f *FileStore) write(state map[string]string) error {
	data, err := msgpack.Marshal(state)
	if err != nil {
		return serr.Wrap(err, "failed to encode session state")
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return serr.Wrap(err, "failed to create session directory")
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return serr.Wrap(err, "failed to write session file")
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return serr.Wrap(err, "failed to replace session file")
	}
	return nil
}
