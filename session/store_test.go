package session

import (
	"os"
	"path/filepath"
	"testing"
)

// exerciseStore runs the Get/Set/Clear contract against any backend.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	t.Run("EmptyIsAbsent", func(t *testing.T) {
		tok, err := s.Get()
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if tok != "" {
			t.Errorf("expected no token, got %q", tok)
		}
	})

	t.Run("SetThenGet", func(t *testing.T) {
		if err := s.Set("abc.def.ghi"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		tok, err := s.Get()
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if tok != "abc.def.ghi" {
			t.Errorf("expected abc.def.ghi, got %q", tok)
		}
	})

	t.Run("SetOverwrites", func(t *testing.T) {
		if err := s.Set("second"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		tok, _ := s.Get()
		if tok != "second" {
			t.Errorf("expected second, got %q", tok)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		if err := s.Clear(); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}
		tok, err := s.Get()
		if err != nil {
			t.Fatalf("Get after Clear failed: %v", err)
		}
		if tok != "" {
			t.Errorf("expected no token after Clear, got %q", tok)
		}
		// Clearing an empty store is not an error
		if err := s.Clear(); err != nil {
			t.Errorf("second Clear failed: %v", err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.msgpack")
	fs := NewFileStore(path)
	exerciseStore(t, fs)

	t.Run("PersistsAcrossInstances", func(t *testing.T) {
		if err := fs.Set("persisted"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("session file missing: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
		}

		tok, err := NewFileStore(path).Get()
		if err != nil {
			t.Fatalf("Get from new instance failed: %v", err)
		}
		if tok != "persisted" {
			t.Errorf("expected persisted, got %q", tok)
		}
	})

	t.Run("ClearRemovesFile", func(t *testing.T) {
		if err := fs.Clear(); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("expected session file to be removed, stat err = %v", err)
		}
	})

	t.Run("CorruptFile", func(t *testing.T) {
		if err := os.WriteFile(path, []byte{0xc1, 0xff, 0x00}, 0600); err != nil {
			t.Fatalf("failed to write corrupt file: %v", err)
		}
		if _, err := fs.Get(); err == nil {
			t.Error("expected decode error for corrupt session file")
		}
	})
}

func TestDBStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping duckdb test in short mode")
	}

	path := filepath.Join(t.TempDir(), "session.duckdb")
	store, err := OpenDBStore(path)
	if err != nil {
		t.Fatalf("OpenDBStore failed: %v", err)
	}

	exerciseStore(t, store)

	t.Run("PersistsAcrossReopen", func(t *testing.T) {
		if err := store.Set("durable"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := store.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}

		reopened, err := OpenDBStore(path)
		if err != nil {
			t.Fatalf("reopen failed: %v", err)
		}
		defer reopened.Close()

		tok, err := reopened.Get()
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if tok != "durable" {
			t.Errorf("expected durable, got %q", tok)
		}
	})
}
