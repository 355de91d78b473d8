package data

import (
	"context"
	"sync"

	"shortlink/internal/domain"
)

// Compile-time interface check
var _ domain.LinkStore = (*MemoryLinkStore)(nil)

const memoryMaxGenerateAttempts = 10

// MemoryLinkStore is an in-process domain.LinkStore keeping the three
// namespaces in maps under one mutex. It mirrors the Redis store's semantics
// key for key and backs unit tests and local development without a Redis.
type MemoryLinkStore struct {
	mu      sync.RWMutex
	forward map[string]string // code -> original URL
	reverse map[string]string // url hash -> code
	clicks  map[string]int64  // code -> click count
}

// NewMemoryLinkStore creates an empty in-memory link store.
func NewMemoryLinkStore() *MemoryLinkStore {
	return &MemoryLinkStore{
		forward: make(map[string]string),
		reverse: make(map[string]string),
		clicks:  make(map[string]int64),
	}
}

// Shorten allocates or reuses a short code for originalURL.
func (s *MemoryLinkStore) Shorten(ctx context.Context, originalURL domain.OriginalURL, customCode domain.ShortCode) (*domain.ShortLink, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hash := urlHash(originalURL.String())
	if existing, ok := s.reverse[hash]; ok {
		code, err := domain.NewShortCode(existing)
		if err != nil {
			return nil, false, err
		}
		return domain.ReconstructShortLink(code, originalURL, s.clicks[existing]), false, nil
	}

	var code domain.ShortCode
	if !customCode.IsEmpty() {
		if _, taken := s.forward[customCode.String()]; taken {
			return nil, false, domain.ErrCodeConflict
		}
		code = customCode
	} else {
		allocated := false
		for attempt := 0; attempt < memoryMaxGenerateAttempts; attempt++ {
			candidate, err := domain.GenerateShortCode(domain.GeneratedCodeLength)
			if err != nil {
				return nil, false, err
			}
			if _, taken := s.forward[candidate.String()]; !taken {
				code = candidate
				allocated = true
				break
			}
		}
		if !allocated {
			return nil, false, domain.ErrCodeSpaceExhausted
		}
	}

	s.forward[code.String()] = originalURL.String()
	s.reverse[hash] = code.String()
	s.clicks[code.String()] = 0

	return domain.NewShortLink(code, originalURL, !customCode.IsEmpty()), true, nil
}

// Resolve returns the original URL behind a code.
func (s *MemoryLinkStore) Resolve(ctx context.Context, code domain.ShortCode) (domain.OriginalURL, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.forward[code.String()]
	if !ok {
		return domain.OriginalURL{}, domain.ErrNotFound
	}
	return domain.NewOriginalURL(raw)
}

// IncrementClicks bumps the counter for a live code and returns the total.
func (s *MemoryLinkStore) IncrementClicks(ctx context.Context, code domain.ShortCode) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.forward[code.String()]; !ok {
		return 0, domain.ErrNotFound
	}
	s.clicks[code.String()]++
	return s.clicks[code.String()], nil
}

// Stats returns the link with its current click count.
func (s *MemoryLinkStore) Stats(ctx context.Context, code domain.ShortCode) (*domain.ShortLink, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.forward[code.String()]
	if !ok {
		return nil, domain.ErrNotFound
	}
	originalURL, err := domain.NewOriginalURL(raw)
	if err != nil {
		return nil, err
	}
	return domain.ReconstructShortLink(code, originalURL, s.clicks[code.String()]), nil
}

// Delete removes all entries for a code. Returns false if it did not exist.
func (s *MemoryLinkStore) Delete(ctx context.Context, code domain.ShortCode) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.forward[code.String()]
	if !ok {
		return false, nil
	}

	delete(s.forward, code.String())
	delete(s.reverse, urlHash(raw))
	delete(s.clicks, code.String())
	return true, nil
}
