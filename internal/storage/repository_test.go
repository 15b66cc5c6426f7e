package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"zenspend/internal/store"
)

func newTestRepo(t *testing.T, key string) (*SQLiteRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "zenspend.db")
	repo, err := NewSQLiteRepository(path, key)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo, path
}

func TestSQLiteRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t, "zenspend_local_data")

	if _, found, err := repo.Load(ctx); err != nil || found {
		t.Fatalf("fresh db: found=%v err=%v", found, err)
	}

	docs := []string{`{"transactions":[]}`, `{"transactions":[{"id":"a"}]}`}
	for _, doc := range docs {
		if err := repo.Save(ctx, []byte(doc)); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, found, err := repo.Load(ctx)
		if err != nil || !found || string(got) != doc {
			t.Fatalf("load: %q found=%v err=%v", got, found, err)
		}
	}

	info, found, err := repo.Info(ctx)
	if err != nil || !found {
		t.Fatalf("info: found=%v err=%v", found, err)
	}
	if info.Revision != 2 || info.Size != len(docs[1]) || info.UpdatedAt.IsZero() || info.SchemaVersion != 1 {
		t.Fatalf("unexpected info %+v", info)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := repo.Load(ctx); found {
		t.Fatal("document still present after clear")
	}
}

func TestSQLiteRepositoryKeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	a, path := newTestRepo(t, "a")
	if err := a.Save(ctx, []byte("A")); err != nil {
		t.Fatal(err)
	}

	b, err := NewSQLiteRepository(path, "b")
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	if _, found, _ := b.Load(ctx); found {
		t.Fatal("key b should be empty")
	}
	if err := b.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if got, found, _ := a.Load(ctx); !found || string(got) != "A" {
		t.Fatalf("clearing b touched a: %q found=%v", got, found)
	}
}

func TestSQLiteRepositoryReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	repo, path := newTestRepo(t, "k")
	if err := repo.Save(ctx, []byte("persisted")); err != nil {
		t.Fatal(err)
	}
	repo.Close()

	again, err := NewSQLiteRepository(path, "k")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
	got, found, err := again.Load(ctx)
	if err != nil || !found || string(got) != "persisted" {
		t.Fatalf("got %q found=%v err=%v", got, found, err)
	}
}

func TestSQLiteRepositoryClosed(t *testing.T) {
	repo, _ := newTestRepo(t, "k")
	repo.Close()
	if _, _, err := repo.Load(context.Background()); !errors.Is(err, store.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("double close: %v", err)
	}
}

func TestNewSQLiteRepositoryRequiresKey(t *testing.T) {
	if _, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "x.db"), ""); err == nil {
		t.Fatal("expected error for empty key")
	}
}
