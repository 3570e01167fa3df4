package config

import (
	"errors"
	"sync"
	"testing"
)

func TestStoreInitialLoad(t *testing.T) {
	t.Parallel()

	store, err := NewStore(func() (*Resolved, error) {
		return Load([]Source{{Name: "defaults", Data: []byte("username: one\n"), Required: true}}, testLookup())
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v, _ := store.Snapshot().String("username"); v != "one" {
		t.Fatalf("expected initial snapshot, got %v", v)
	}
}

func TestStoreInitialLoadFailure(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("boom")
	if _, err := NewStore(func() (*Resolved, error) { return nil, wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("expected initial load error, got %v", err)
	}
}

func TestStoreReloadSwapsSnapshot(t *testing.T) {
	t.Parallel()

	content := []byte("username: one\n")
	store, err := NewStore(func() (*Resolved, error) {
		return Load([]Source{{Name: "defaults", Data: content, Required: true}}, testLookup())
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := store.Snapshot()
	content = []byte("username: two\n")

	if err := store.Reload(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v, _ := store.Snapshot().String("username"); v != "two" {
		t.Fatalf("expected reloaded snapshot, got %v", v)
	}
	// An in-flight reader holding the prior snapshot keeps its values.
	if v, _ := before.String("username"); v != "one" {
		t.Fatalf("expected old snapshot to stay consistent, got %v", v)
	}
}

func TestStoreFailedReloadKeepsActiveSnapshot(t *testing.T) {
	t.Parallel()

	fail := false
	store, err := NewStore(func() (*Resolved, error) {
		if fail {
			return nil, errors.New("source vanished")
		}
		return Load([]Source{{Name: "defaults", Data: []byte("username: one\n"), Required: true}}, testLookup())
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fail = true
	if err := store.Reload(); err == nil {
		t.Fatalf("expected reload error")
	}

	if v, _ := store.Snapshot().String("username"); v != "one" {
		t.Fatalf("expected previous snapshot to remain active, got %v", v)
	}
}

func TestStoreConcurrentReaders(t *testing.T) {
	t.Parallel()

	store, err := NewStore(func() (*Resolved, error) {
		return Load([]Source{{Name: "defaults", Data: []byte("username: one\n"), Required: true}}, testLookup())
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if v, err := store.Snapshot().String("username"); err != nil || v == "" {
					t.Errorf("reader observed inconsistent snapshot: %v (err %v)", v, err)
					return
				}
			}
		}()
	}
	for i := 0; i < 50; i++ {
		if err := store.Reload(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	wg.Wait()
}
