// Package dashboard holds the state machines behind the admin screens:
// paginated lists, add/edit dialogs and the contact panel. Screens talk to
// the API through the API interface, which *client.Client implements.
package dashboard

import (
	"context"
	"errors"
	"sync"

	"realestate/app/client"
	"realestate/app/models"
)

// API is the subset of the admin API the screens call.
type API interface {
	ListListings(ctx context.Context, page, limit int) (*models.ListingsResponse, error)
	CreateListing(ctx context.Context, in *models.ListingInput) (*models.Listing, error)
	UpdateListing(ctx context.Context, patch *models.ListingPatch) (*models.Listing, error)
	DeleteListing(ctx context.Context, id string) (string, error)

	ListBlogs(ctx context.Context, page, limit int) (*models.BlogsResponse, error)
	CreateBlog(ctx context.Context, in *models.BlogInput) (*models.Blog, error)
	UpdateBlog(ctx context.Context, patch *models.BlogPatch) (*models.Blog, error)
	DeleteBlog(ctx context.Context, id string) (string, error)

	ListContacts(ctx context.Context) ([]*models.Contact, error)
	CreateContact(ctx context.Context, in *models.ContactInput) (*models.Contact, error)
	UpdateContact(ctx context.Context, patch *models.ContactPatch) (*models.Contact, error)
	DeleteContact(ctx context.Context, id string) (string, error)
}

var _ API = (*client.Client)(nil)

// State is the load state of a screen.
type State int

const (
	Idle State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Fetcher loads one page and the collection size.
type Fetcher[T any] func(ctx context.Context, page, limit int) ([]*T, int64, error)

// ListScreen is a paginated list backed by a Fetcher. The loaded items are
// a local cache; Apply keeps it in step with confirmed writes.
type ListScreen[T any] struct {
	fetch    Fetcher[T]
	id       func(*T) string
	fallback string

	mutex sync.RWMutex
	state State
	items []*T
	total int64
	page  int
	limit int
	err   string
	// loads counts Load calls; only the latest one may publish its result.
	loads uint64
}

// NewListScreen returns an Idle screen on page 1. fallback is shown when a
// failure carries no server message.
func NewListScreen[T any](fetch Fetcher[T], id func(*T) string, limit int, fallback string) *ListScreen[T] {
	if limit < 1 {
		limit = 1
	}
	return &ListScreen[T]{fetch: fetch, id: id, limit: limit, page: 1, fallback: fallback}
}

// Load fetches the current page. A response overtaken by a later Load is
// discarded.
func (s *ListScreen[T]) Load(ctx context.Context) error {
	s.mutex.Lock()
	s.state = Loading
	s.loads++
	seq, page, limit := s.loads, s.page, s.limit
	s.mutex.Unlock()

	items, total, err := s.fetch(ctx, page, limit)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if seq != s.loads || page != s.page {
		return nil
	}
	if err != nil {
		s.state = Failed
		s.err = errorText(err, s.fallback)
		return err
	}
	s.state = Loaded
	s.items = items
	s.total = total
	s.err = ""
	return nil
}

// SetPage moves to page p, clamped to 1, and loads it.
func (s *ListScreen[T]) SetPage(ctx context.Context, p int) error {
	if p < 1 {
		p = 1
	}
	s.mutex.Lock()
	s.page = p
	s.mutex.Unlock()
	return s.Load(ctx)
}

// Next loads the following page when there is one.
func (s *ListScreen[T]) Next(ctx context.Context) error {
	if !s.CanNext() {
		return nil
	}
	return s.SetPage(ctx, s.Page()+1)
}

// Prev loads the previous page when there is one.
func (s *ListScreen[T]) Prev(ctx context.Context) error {
	if !s.CanPrev() {
		return nil
	}
	return s.SetPage(ctx, s.Page()-1)
}

func (s *ListScreen[T]) CanPrev() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.page > 1
}

func (s *ListScreen[T]) CanNext() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return int64(s.page)*int64(s.limit) < s.total
}

// PageCount is ceil(total/limit).
func (s *ListScreen[T]) PageCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return int((s.total + int64(s.limit) - 1) / int64(s.limit))
}

func (s *ListScreen[T]) State() State {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.state
}

// Items returns a copy of the cached page.
func (s *ListScreen[T]) Items() []*T {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]*T(nil), s.items...)
}

func (s *ListScreen[T]) Total() int64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.total
}

func (s *ListScreen[T]) Page() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.page
}

func (s *ListScreen[T]) Limit() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.limit
}

// Err is the message of the last failure, or "".
func (s *ListScreen[T]) Err() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.err
}

// Fail records a write failure for display without touching the cache.
func (s *ListScreen[T]) Fail(err error, fallback string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.err = errorText(err, fallback)
}

// Apply folds a confirmed change into the cache and adjusts the total.
func (s *ListScreen[T]) Apply(c Change[T]) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	before := len(s.items)
	s.items = Reduce(s.items, s.id, c)
	switch c.Kind {
	case Added:
		s.total++
	case Deleted:
		if len(s.items) < before && s.total > 0 {
			s.total--
		}
	}
	s.err = ""
}

// ChangeKind names a confirmed write.
type ChangeKind int

const (
	Added ChangeKind = iota
	Updated
	Deleted
)

// Change is a write the server has already accepted. Item is unused for
// Deleted; ID is unused for Added.
type Change[T any] struct {
	Kind ChangeKind
	ID   string
	Item *T
}

// Reduce returns items with c applied. The input slice is not modified.
func Reduce[T any](items []*T, id func(*T) string, c Change[T]) []*T {
	out := make([]*T, 0, len(items)+1)
	switch c.Kind {
	case Added:
		out = append(out, items...)
		if c.Item != nil {
			out = append(out, c.Item)
		}
	case Updated:
		for _, it := range items {
			if id(it) == c.ID && c.Item != nil {
				out = append(out, c.Item)
				continue
			}
			out = append(out, it)
		}
	case Deleted:
		for _, it := range items {
			if id(it) != c.ID {
				out = append(out, it)
			}
		}
	}
	return out
}

// errorText prefers the server's message and falls back otherwise.
func errorText(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
