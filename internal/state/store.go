package state

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/google/uuid"

	"github.com/rmaldonado/obrix/internal/gateway"
	"github.com/rmaldonado/obrix/internal/pagination"
)

// Page is the result of one paginated list call.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// Store is one entity slice: a paginated list fetched from the gateway, a
// loading flag, and a store-level error string. Failures both set the error
// string and return the error, so banners and callers can react to the same
// failure. Overlapping fetches are not de-duplicated; the last one to resolve
// wins.
type Store[T any] struct {
	gw         *gateway.Client
	collection string
	id         func(T) uuid.UUID

	defaultSize int
	sort        string
	order       string

	mu         sync.Mutex
	items      []T
	page       int
	pageSize   int
	totalItems int
	totalPages int
	loading    bool
	lastErr    string
}

func NewStore[T any](gw *gateway.Client, collection string, defaultSize int, sort, order string, id func(T) uuid.UUID) *Store[T] {
	return &Store[T]{
		gw:          gw,
		collection:  collection,
		id:          id,
		defaultSize: defaultSize,
		sort:        sort,
		order:       order,
		page:        1,
		pageSize:    defaultSize,
		totalPages:  1,
	}
}

// List fetches one page. limit <= 0 falls back to the store's default page
// size. On failure the previous list state is kept, loading is cleared, the
// error string is set and the error returned.
func (s *Store[T]) List(ctx context.Context, page, limit int, filters url.Values) (Page[T], error) {
	size := limit
	if size <= 0 {
		size = s.defaultSize
	}

	s.setLoading(true)

	raw, total, err := s.gw.List(ctx, s.collection, gateway.ListQuery{
		Page:    page,
		Limit:   size,
		Sort:    s.sort,
		Order:   s.order,
		Filters: filters,
	})
	if err != nil {
		s.fail(fmt.Sprintf("error loading %s", s.collection))
		return Page[T]{}, err
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		s.fail(fmt.Sprintf("error loading %s", s.collection))
		return Page[T]{}, fmt.Errorf("decoding %s list: %w", s.collection, err)
	}

	if total < 0 {
		total = len(items)
	}

	p := Page[T]{
		Items:      items,
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: pagination.PageCount(total, size),
	}

	s.mu.Lock()
	s.items = items
	s.page = p.Page
	s.pageSize = p.PageSize
	s.totalItems = p.TotalItems
	s.totalPages = p.TotalPages
	s.loading = false
	s.lastErr = ""
	s.mu.Unlock()

	return p, nil
}

// GetByID fetches a single entity and upserts it into the cache, replacing
// any entry with the same id.
func (s *Store[T]) GetByID(ctx context.Context, id uuid.UUID) (T, error) {
	var zero T

	s.setLoading(true)

	raw, err := s.gw.Get(ctx, s.collection, id)
	if err != nil {
		s.fail(fmt.Sprintf("error loading %s/%s", s.collection, id))
		return zero, err
	}

	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		s.fail(fmt.Sprintf("error loading %s/%s", s.collection, id))
		return zero, fmt.Errorf("decoding %s: %w", s.collection, err)
	}

	s.mu.Lock()
	s.upsertLocked(item)
	s.loading = false
	s.lastErr = ""
	s.mu.Unlock()

	return item, nil
}

// Create posts the payload (the gateway assigns the id) and appends the
// result to the cache.
func (s *Store[T]) Create(ctx context.Context, payload any) (T, error) {
	var zero T

	raw, err := s.gw.Post(ctx, s.collection, payload)
	if err != nil {
		s.fail(fmt.Sprintf("error creating %s", s.collection))
		return zero, err
	}

	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		s.fail(fmt.Sprintf("error creating %s", s.collection))
		return zero, fmt.Errorf("decoding created %s: %w", s.collection, err)
	}

	s.mu.Lock()
	s.items = append(s.items, item)
	s.totalItems++
	s.lastErr = ""
	s.mu.Unlock()

	return item, nil
}

// Update patches changed fields only. The server response is merged over the
// cached copy by shallow overwrite, so fields the server omitted keep their
// previous values.
func (s *Store[T]) Update(ctx context.Context, id uuid.UUID, payload any) (T, error) {
	var zero T

	raw, err := s.gw.Patch(ctx, s.collection, id, payload)
	if err != nil {
		s.fail(fmt.Sprintf("error updating %s/%s", s.collection, id))
		return zero, err
	}

	merged := s.cached(id)
	if err := json.Unmarshal(raw, &merged); err != nil {
		s.fail(fmt.Sprintf("error updating %s/%s", s.collection, id))
		return zero, fmt.Errorf("decoding updated %s: %w", s.collection, err)
	}

	s.mu.Lock()
	s.replaceLocked(id, merged)
	s.lastErr = ""
	s.mu.Unlock()

	return merged, nil
}

// Remove deletes the entity remotely, drops it from the cache and decrements
// the cached total.
func (s *Store[T]) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.gw.Delete(ctx, s.collection, id); err != nil {
		s.fail(fmt.Sprintf("error deleting %s/%s", s.collection, id))
		return err
	}

	s.mu.Lock()
	kept := s.items[:0]

	for _, it := range s.items {
		if s.id(it) != id {
			kept = append(kept, it)
		}
	}

	if len(kept) < len(s.items) {
		s.items = kept
	}

	if s.totalItems > 0 {
		s.totalItems--
	}

	s.lastErr = ""
	s.mu.Unlock()

	return nil
}

// Items returns a copy of the cached list.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]T, len(s.items))
	copy(out, s.items)

	return out
}

// Find returns the cached entity with the given id, if present.
func (s *Store[T]) Find(id uuid.UUID) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.items {
		if s.id(it) == id {
			return it, true
		}
	}

	var zero T

	return zero, false
}

func (s *Store[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loading
}

// Err returns the store-level error string, empty after the last successful
// operation.
func (s *Store[T]) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastErr
}

func (s *Store[T]) Pagination() (page, pageSize, totalItems, totalPages int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.page, s.pageSize, s.totalItems, s.totalPages
}

func (s *Store[T]) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v

	if v {
		s.lastErr = ""
	}

	s.mu.Unlock()
}

func (s *Store[T]) fail(msg string) {
	s.mu.Lock()
	s.loading = false
	s.lastErr = msg
	s.mu.Unlock()
}

func (s *Store[T]) cached(id uuid.UUID) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, it := range s.items {
		if s.id(it) == id {
			return it
		}
	}

	var zero T

	return zero
}

func (s *Store[T]) upsertLocked(item T) {
	id := s.id(item)
	for i, it := range s.items {
		if s.id(it) == id {
			s.items[i] = item
			return
		}
	}

	s.items = append(s.items, item)
}

func (s *Store[T]) replaceLocked(id uuid.UUID, item T) {
	for i, it := range s.items {
		if s.id(it) == id {
			s.items[i] = item
			return
		}
	}

	s.items = append(s.items, item)
}
