package kvstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

type item struct {
	ID    string `json:"id"`
	Views int    `json:"views"`
}

func newTestStore(quota int) (*Store, *MemoryBackend) {
	backend := NewMemoryBackend(quota)
	return NewStore(backend, zerolog.Nop()), backend
}

func TestLoadFallbackOnAbsentAndCorrupt(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(0)

	fallback := []item{}
	if got := Load(ctx, store, "missing", fallback); got == nil || len(got) != 0 {
		t.Fatalf("absent key: got %v, want empty fallback", got)
	}

	if err := backend.Set(ctx, "broken", []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	if got := Load(ctx, store, "broken", []item{{ID: "fb"}}); len(got) != 1 || got[0].ID != "fb" {
		t.Fatalf("corrupt key: got %v, want fallback", got)
	}
}

func TestReadLeavesDestinationUntouchedOnFailure(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(0)
	_ = backend.Set(ctx, "item", []byte(`{"id":"a","views":"lots"}`))

	dst := item{ID: "keep"}
	if store.Read(ctx, "item", &dst) {
		t.Fatal("Read reported success for a mistyped value")
	}
	if dst.ID != "keep" {
		t.Fatalf("dst modified: %v", dst)
	}
}

func TestLoadSkipsOnlyMistypedRecords(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(0)
	_ = backend.Set(ctx, "items", []byte(`[{"id":"a","views":4},{"id":"b","views":"lots"},{"id":"c"}]`))

	got := Load(ctx, store, "items", []item{})
	if len(got) != 2 || got[0] != (item{ID: "a", Views: 4}) || got[1] != (item{ID: "c"}) {
		t.Fatalf("got %v, want records a and c", got)
	}

	_ = backend.Set(ctx, "items", []byte(`{"id":"a"}`))
	if got := Load(ctx, store, "items", []item{{ID: "fb"}}); len(got) != 1 || got[0].ID != "fb" {
		t.Fatalf("non-array value: got %v, want fallback", got)
	}
}

func TestWriteThenLoad(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(0)

	want := []item{{ID: "a", Views: 3}, {ID: "b"}}
	store.Write(ctx, "items", want)

	got := Load[[]item](ctx, store, "items", nil)
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestWriteOverQuotaIsSwallowed(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(32)

	var changes []string
	store.OnChange(func(key string) { changes = append(changes, key) })

	store.Write(ctx, "k", []item{{ID: "a"}})
	before := Load[[]item](ctx, store, "k", nil)

	store.Write(ctx, "k", []item{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	after := Load[[]item](ctx, store, "k", nil)
	if len(after) != len(before) {
		t.Fatalf("over-quota write replaced value: before %v after %v", before, after)
	}
	if len(changes) != 1 {
		t.Fatalf("change listeners fired %d times, want 1", len(changes))
	}
	if backend.Size() > 32 {
		t.Fatalf("backend size %d exceeds quota", backend.Size())
	}
}

func TestMemoryBackendQuotaError(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend(4)

	err := backend.Set(ctx, "key", []byte("toolong"))
	if !errors.Is(err, apperrors.ErrQuotaExceeded) {
		t.Fatalf("err = %v, want ErrQuotaExceeded", err)
	}

	if err := backend.Set(ctx, "k", []byte("ab")); err != nil {
		t.Fatal(err)
	}
	if err := backend.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if backend.Size() != 0 {
		t.Fatalf("size after delete = %d", backend.Size())
	}
}

func TestRemoveNotifies(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(0)

	var got string
	store.OnChange(func(key string) { got = key })
	store.Write(ctx, "files", []item{})
	store.Remove(ctx, "files")

	if got != "files" {
		t.Fatalf("listener saw %q", got)
	}
	if store.Read(ctx, "files", &[]item{}) {
		t.Fatal("key still readable after Remove")
	}
}

func TestKeyLockSerializesReadModifyWrite(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(0)
	locks := NewKeyLock()
	store.Write(ctx, "counter", item{ID: "c"})

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("counter")
			defer unlock()

			v := Load(ctx, store, "counter", item{})
			v.Views++
			store.Write(ctx, "counter", v)
		}()
	}
	wg.Wait()

	if got := Load(ctx, store, "counter", item{}); got.Views != workers {
		t.Fatalf("views = %d, want %d", got.Views, workers)
	}
}

func TestKeyLockOppositeOrderDoesNotDeadlock(t *testing.T) {
	locks := NewKeyLock()
	done := make(chan struct{})

	go func() {
		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				unlock := locks.Lock("courses", "lecturers")
				unlock()
			}()
			go func() {
				defer wg.Done()
				unlock := locks.Lock("lecturers", "courses", "lecturers")
				unlock()
			}()
		}
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("lock acquisition deadlocked")
	}
}

func TestKeyLockUnlockIdempotent(t *testing.T) {
	locks := NewKeyLock()
	unlock := locks.Lock("a")
	unlock()
	unlock()

	relock := locks.Lock("a")
	relock()
}
