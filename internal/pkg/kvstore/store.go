package kvstore

import (
	"context"
	"errors"
	"reflect"
	"sync"

	"github.com/Taha-Code-Hup/OnoTime/internal/pkg/apperrors"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// ChangeFunc is called after a key was written or removed successfully
type ChangeFunc func(key string)

// Store encodes values as JSON over a Backend
type Store struct {
	backend Backend
	logger  zerolog.Logger

	mu        sync.RWMutex
	listeners []ChangeFunc
}

// NewStore creates a store over backend
func NewStore(backend Backend, logger zerolog.Logger) *Store {
	return &Store{
		backend: backend,
		logger:  logger.With().Str("component", "kvstore").Logger(),
	}
}

// Backend returns the underlying backend
func (s *Store) Backend() Backend {
	return s.backend
}

// Read decodes the value under key into dst, which must be a non-nil pointer.
// It returns false, leaving dst untouched, when the key is absent, the backend
// fails or the stored bytes do not decode into dst's type.
func (s *Store) Read(ctx context.Context, key string, dst any) bool {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		s.logger.Error().Str("key", key).Msg("Read called with a non-pointer destination")
		return false
	}

	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Failed to read key, using fallback")
		return false
	}
	if !ok {
		return false
	}

	typ := rv.Elem().Type()
	tmp := reflect.New(typ)
	if err := json.Unmarshal(raw, tmp.Interface()); err != nil {
		if typ.Kind() == reflect.Slice {
			if items, ok := s.decodeRecords(key, raw, typ); ok {
				rv.Elem().Set(items)
				return true
			}
		}
		s.logger.Warn().Err(err).Str("key", key).Msg("Stored value is not valid, using fallback")
		return false
	}

	rv.Elem().Set(tmp.Elem())
	return true
}

// decodeRecords decodes a JSON array one element at a time, skipping the
// elements that do not fit the slice's element type. It fails only when raw
// is not an array.
func (s *Store) decodeRecords(key string, raw []byte, typ reflect.Type) (reflect.Value, bool) {
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return reflect.Value{}, false
	}

	out := reflect.MakeSlice(typ, 0, len(records))
	for i, record := range records {
		elem := reflect.New(typ.Elem())
		if err := json.Unmarshal(record, elem.Interface()); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Int("index", i).
				RawJSON("record", record).Msg("Skipping stored record that does not decode")
			continue
		}
		out = reflect.Append(out, elem.Elem())
	}
	return out, true
}

// Load returns the value stored under key or fallback when it is absent or unparsable
func Load[T any](ctx context.Context, s *Store, key string, fallback T) T {
	var v T
	if !s.Read(ctx, key, &v) {
		return fallback
	}
	return v
}

// Write stores value under key. Failures, including a full quota, are logged
// and otherwise ignored.
func (s *Store) Write(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to encode value")
		return
	}

	if err := s.backend.Set(ctx, key, raw); err != nil {
		event := s.logger.Error()
		if errors.Is(err, apperrors.ErrQuotaExceeded) {
			event = s.logger.Warn()
		}
		event.Err(err).Str("key", key).Int("bytes", len(raw)).Msg("Failed to write key")
		return
	}

	s.notify(key)
}

// Remove deletes key. Failures are logged and otherwise ignored.
func (s *Store) Remove(ctx context.Context, key string) {
	if err := s.backend.Delete(ctx, key); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Failed to remove key")
		return
	}
	s.notify(key)
}

// OnChange registers fn to be called after every successful write or removal
func (s *Store) OnChange(fn ChangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify(key string) {
	s.mu.RLock()
	listeners := s.listeners
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(key)
	}
}
