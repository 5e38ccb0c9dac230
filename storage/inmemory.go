package storage

import (
	"context"
	"sync"
	"time"

	"github.com/gitwire-go/gitwire/protocol/hash"
)

// InMemoryOption configures an inMemoryStorage at construction.
type InMemoryOption func(*inMemoryStorage)

// WithTTL evicts an entry if it goes unaccessed for d. A zero or negative d
// (the default, if WithTTL is never passed) disables eviction.
func WithTTL(d time.Duration) InMemoryOption {
	return func(s *inMemoryStorage) {
		s.ttl = d
	}
}

type entry struct {
	obj        *PackfileObject
	lastAccess time.Time
}

// inMemoryStorage is a process-local PackfileStorage. With a TTL configured,
// a background sweep evicts entries that haven't been Get or Add'd within
// the TTL window; Get refreshes an entry's clock, so hot objects survive
// indefinitely.
type inMemoryStorage struct {
	mu      sync.Mutex
	objects map[string]*entry
	ttl     time.Duration
}

// NewInMemoryStorage returns a PackfileStorage backed by an in-process map.
// ctx bounds the lifetime of the TTL sweep goroutine, if WithTTL is set;
// it is otherwise unused.
func NewInMemoryStorage(ctx context.Context, opts ...InMemoryOption) PackfileStorage {
	s := &inMemoryStorage{objects: make(map[string]*entry)}
	for _, opt := range opts {
		opt(s)
	}

	if s.ttl > 0 {
		go s.sweep(ctx)
	}

	return s
}

func (s *inMemoryStorage) sweep(ctx context.Context) {
	interval := s.ttl / 2
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evictExpired()
		}
	}
}

func (s *inMemoryStorage) evictExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, e := range s.objects {
		if now.Sub(e.lastAccess) >= s.ttl {
			delete(s.objects, key)
		}
	}
}

func (s *inMemoryStorage) Get(key hash.Hash) (*PackfileObject, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.objects[key.String()]
	if !ok {
		return nil, false
	}
	e.lastAccess = time.Now()
	return e.obj, true
}

func (s *inMemoryStorage) GetAllKeys() []hash.Hash {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]hash.Hash, 0, len(s.objects))
	for _, e := range s.objects {
		keys = append(keys, e.obj.Hash)
	}
	return keys
}

func (s *inMemoryStorage) Add(objs ...*PackfileObject) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for _, obj := range objs {
		s.objects[obj.Hash.String()] = &entry{obj: obj, lastAccess: now}
	}
}

func (s *inMemoryStorage) Delete(key hash.Hash) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key.String())
}

func (s *inMemoryStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
