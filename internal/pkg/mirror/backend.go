package mirror

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/apperrors"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// LocalBackend is the authoritative byte store the mirror wraps.
// It has the same method set as kvstore.Backend.
type LocalBackend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Backend writes through to a local backend and mirrors plural keys
// ("students", "courses", ...) to a DocumentStore.
// Remote writes of one key are applied in the order of the local writes.
type Backend struct {
	local   LocalBackend
	remote  DocumentStore
	timeout time.Duration
	logger  zerolog.Logger

	// writeMu orders local writes of mirrored keys with their queue entries
	writeMu sync.Mutex

	mu      sync.Mutex
	queues  map[string]*keyQueue
	pending sync.WaitGroup
}

// keyQueue holds the remote writes waiting for one key
type keyQueue struct {
	tasks   []func()
	running bool
}

// NewBackend wraps local; timeout bounds each remote call
func NewBackend(local LocalBackend, remote DocumentStore, timeout time.Duration, logger zerolog.Logger) *Backend {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Backend{
		local:   local,
		remote:  remote,
		timeout: timeout,
		logger:  logger.With().Str("component", "mirror").Logger(),
		queues:  make(map[string]*keyQueue),
	}
}

// IsMirrored reports whether key is a collection key
func IsMirrored(key string) bool {
	return strings.HasSuffix(key, "s")
}

// Get reads the local value. A mirrored key absent locally is hydrated from
// the remote collection, which is then cached locally.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, ok, err := b.local.Get(ctx, key)
	if err != nil || ok || !IsMirrored(key) {
		return raw, ok, err
	}

	rctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	docs, err := b.remote.GetCollection(rctx, key)
	if err != nil {
		b.logger.Warn().Err(err).Str("key", key).Msg("Failed to hydrate collection from mirror")
		return nil, false, nil
	}
	if len(docs) == 0 {
		return nil, false, nil
	}

	raw, err = json.Marshal(docs)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode hydrated collection %s: %w", key, err)
	}
	if err := b.local.Set(ctx, key, raw); err != nil {
		b.logger.Warn().Err(err).Str("key", key).Msg("Failed to cache hydrated collection")
	}
	b.logger.Info().Str("key", key).Int("documents", len(docs)).Msg("Hydrated collection from mirror")
	return raw, true, nil
}

// Set writes locally, then mirrors the change in the background.
// Only a local failure is returned.
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	if !IsMirrored(key) {
		return b.local.Set(ctx, key, value)
	}

	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	prev, _, err := b.local.Get(ctx, key)
	if err != nil {
		prev = nil
	}
	if err := b.local.Set(ctx, key, value); err != nil {
		return err
	}

	b.async(ctx, key, func(ctx context.Context) error {
		return b.sync(ctx, key, prev, value)
	})
	return nil
}

// Delete removes the key locally and drops the remote collection's documents
func (b *Backend) Delete(ctx context.Context, key string) error {
	if !IsMirrored(key) {
		return b.local.Delete(ctx, key)
	}

	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	prev, _, _ := b.local.Get(ctx, key)
	if err := b.local.Delete(ctx, key); err != nil {
		return err
	}

	b.async(ctx, key, func(ctx context.Context) error {
		return b.sync(ctx, key, prev, []byte("[]"))
	})
	return nil
}

// Flush waits for every outstanding mirror write
func (b *Backend) Flush() {
	b.pending.Wait()
}

// async queues fn behind the earlier remote writes of key
func (b *Backend) async(ctx context.Context, key string, fn func(ctx context.Context) error) {
	// The request that triggered the write may finish before the mirror does
	base := context.WithoutCancel(ctx)

	task := func() {
		defer b.pending.Done()

		ctx, cancel := context.WithTimeout(base, b.timeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			b.logger.Error().Err(err).Str("key", key).Msg("Mirror write failed")
		}
	}

	b.pending.Add(1)
	b.mu.Lock()
	defer b.mu.Unlock()

	q, ok := b.queues[key]
	if !ok {
		q = &keyQueue{}
		b.queues[key] = q
	}
	q.tasks = append(q.tasks, task)
	if !q.running {
		q.running = true
		go b.drain(key, q)
	}
}

// drain runs the queued writes of key one at a time until none are left
func (b *Backend) drain(key string, q *keyQueue) {
	for {
		b.mu.Lock()
		if len(q.tasks) == 0 {
			q.running = false
			delete(b.queues, key)
			b.mu.Unlock()
			return
		}
		task := q.tasks[0]
		q.tasks = q.tasks[1:]
		b.mu.Unlock()

		task()
	}
}

// sync sends the difference between two collection snapshots to the remote store
func (b *Backend) sync(ctx context.Context, collection string, prev, next []byte) error {
	before, _ := decodeCollection(prev)
	after, err := decodeCollection(next)
	if err != nil {
		return fmt.Errorf("value of %s is not a document collection: %w", collection, err)
	}

	oldByID := make(map[string]Document, len(before))
	for _, doc := range before {
		if id := documentID(doc); id != "" {
			oldByID[id] = doc
		}
	}

	var errs []error
	seen := make(map[string]struct{}, len(after))
	for _, doc := range after {
		id := documentID(doc)
		if id == "" {
			if _, err := b.remote.AddDocument(ctx, collection, doc); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		seen[id] = struct{}{}

		old, existed := oldByID[id]
		switch {
		case !existed:
			err = b.remote.SetDocument(ctx, collection, id, doc)
		case reflect.DeepEqual(old, doc):
			continue
		default:
			err = b.remote.UpdateDocument(ctx, collection, id, diff(old, doc))
			if errors.Is(err, apperrors.ErrResourceNotFound) {
				err = b.remote.SetDocument(ctx, collection, id, doc)
			}
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	for id := range oldByID {
		if _, ok := seen[id]; ok {
			continue
		}
		if err := b.remote.DeleteDocument(ctx, collection, id); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// decodeCollection parses a stored collection; a single object counts as a
// one-element collection
func decodeCollection(raw []byte) ([]Document, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var docs []Document
	if err := json.Unmarshal(raw, &docs); err == nil {
		return docs, nil
	}

	var single Document
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, err
	}
	return []Document{single}, nil
}

// documentID returns the document's "id" (or legacy "_id") as a string
func documentID(doc Document) string {
	for _, field := range []string{"id", "_id"} {
		switch v := doc[field].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}

// diff returns the fields of next that differ from prev, with nil for removed fields
func diff(prev, next Document) Document {
	patch := Document{}
	for k, v := range next {
		if old, ok := prev[k]; !ok || !reflect.DeepEqual(old, v) {
			patch[k] = v
		}
	}
	for k := range prev {
		if _, ok := next[k]; !ok {
			patch[k] = nil
		}
	}
	return patch
}
