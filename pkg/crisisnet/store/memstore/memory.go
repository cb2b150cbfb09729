// Package memstore is an in-memory store.Store used by tests.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/crisislab/crisisnet/pkg/crisisnet/dataset"
	"github.com/crisislab/crisisnet/pkg/crisisnet/internalerr"
	"github.com/crisislab/crisisnet/pkg/crisisnet/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu     sync.RWMutex
	posts  map[string]dataset.Post
	closed bool
}

var _ store.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{posts: make(map[string]dataset.Post)}
}

// Close marks the store unavailable; later calls return
// internalerr.ErrStoreUnavailable.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// UpsertPost inserts or replaces a post, keyed by id.
func (s *Store) UpsertPost(ctx context.Context, p dataset.Post) error {
	if p.ID == "" {
		return nil
	}
	if p.ContentHash == "" {
		p.ContentHash = dataset.HashContent(p.Content)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return internalerr.ErrStoreUnavailable
	}
	s.posts[p.ID] = p
	return nil
}

// GetPost fetches one post by id.
func (s *Store) GetPost(ctx context.Context, id string) (dataset.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return dataset.Post{}, internalerr.ErrStoreUnavailable
	}
	p, ok := s.posts[id]
	if !ok {
		return dataset.Post{}, fmt.Errorf("post %s: %w", id, internalerr.ErrNotFound)
	}
	return p, nil
}

// ListPosts returns a crisis's posts time-ordered ascending.
func (s *Store) ListPosts(ctx context.Context, crisisID string, limit int) ([]dataset.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, internalerr.ErrStoreUnavailable
	}

	var out []dataset.Post
	for _, p := range s.posts {
		if crisisID != "" && p.CrisisID != crisisID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedUTC.Equal(out[j].CreatedUTC) {
			return out[i].CreatedUTC.Before(out[j].CreatedUTC)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CountPosts returns the number of archived posts for a crisis.
func (s *Store) CountPosts(ctx context.Context, crisisID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, internalerr.ErrStoreUnavailable
	}
	if crisisID == "" {
		return len(s.posts), nil
	}
	n := 0
	for _, p := range s.posts {
		if p.CrisisID == crisisID {
			n++
		}
	}
	return n, nil
}

// Crises returns the distinct crisis ids present, sorted.
func (s *Store) Crises(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, internalerr.ErrStoreUnavailable
	}
	seen := make(map[string]struct{})
	for _, p := range s.posts {
		if p.CrisisID != "" {
			seen[p.CrisisID] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}
