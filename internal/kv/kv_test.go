package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// backends returns a fresh instance of every file-free or temp-dir backend.
func backends(t *testing.T) map[string]Store {
	t.Helper()

	sqliteStore, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	boltStore, err := OpenBolt(filepath.Join(t.TempDir(), "tides.bolt"))
	if err != nil {
		t.Fatalf("OpenBolt: %v", err)
	}

	stores := map[string]Store{
		"sqlite": sqliteStore,
		"bolt":   boltStore,
		"memory": NewMemory(),
	}

	if addr := os.Getenv("TIDES_TEST_REDIS_ADDR"); addr != "" {
		r, err := OpenRedis(context.Background(), RedisOptions{Addr: addr, DB: 15})
		if err != nil {
			t.Fatalf("OpenRedis: %v", err)
		}
		stores["redis"] = r
	}

	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestStore_GetMissing(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get(context.Background(), "tides-test/missing")
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if ok {
				t.Error("Get on missing key reported ok")
			}
		})
	}
}

func TestStore_SetThenGet(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Set(ctx, "tides-test/queue", `[{"id":"a"}]`); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := s.Set(ctx, "tides-test/queue", `[{"id":"b"}]`); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}

			got, ok, err := s.Get(ctx, "tides-test/queue")
			if err != nil || !ok {
				t.Fatalf("Get = (%q, %v, %v)", got, ok, err)
			}
			if got != `[{"id":"b"}]` {
				t.Errorf("Get = %q, want last written value", got)
			}
		})
	}
}

func TestSetAll_WritesEveryKey(t *testing.T) {
	ctx := context.Background()
	values := map[string]string{
		"tides-test/favourites": "[]",
		"tides-test/recent":     `[{"id":"x"}]`,
		"tides-test/dl/x":       "/music/x.mp4",
	}
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := SetAll(ctx, s, values); err != nil {
				t.Fatalf("SetAll: %v", err)
			}
			for k, want := range values {
				got, ok, err := s.Get(ctx, k)
				if err != nil || !ok || got != want {
					t.Errorf("Get(%s) = (%q, %v, %v), want %q", k, got, ok, err, want)
				}
			}
		})
	}
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "tides.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s.Close()

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || got != "v" {
		t.Errorf("Get after reopen = (%q, %v, %v), want v", got, ok, err)
	}
}

func TestSQLite_SetManyRollsBackOnCancel(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.SetMany(ctx, map[string]string{"a": "1"}); err == nil {
		t.Fatal("SetMany with cancelled context should fail")
	}

	_, ok, err := s.Get(context.Background(), "a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("entry written despite failed transaction")
	}
}

func TestOpen_Backends(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, backend := range []string{"", BackendSQLite, BackendBolt, BackendMemory} {
		s, err := Open(ctx, Options{Backend: backend, Path: filepath.Join(dir, backend+".db")})
		if err != nil {
			t.Errorf("Open(%q): %v", backend, err)
			continue
		}
		s.Close()
	}

	_, err := Open(ctx, Options{Backend: "etcd"})
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Open(etcd) error = %v, want ErrUnknownBackend", err)
	}
}

func TestMemory_CountsWrites(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_ = m.Set(ctx, "a", "1")
	_ = SetAll(ctx, m, map[string]string{"b": "2", "c": "3"})

	if m.Writes() != 3 {
		t.Errorf("Writes() = %d, want 3", m.Writes())
	}
	if len(m.Keys()) != 3 {
		t.Errorf("len(Keys()) = %d, want 3", len(m.Keys()))
	}
}
