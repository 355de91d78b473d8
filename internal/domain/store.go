package domain

import (
	"context"
)

// LinkStore owns the mapping between short codes, original URLs, and click
// counters over a backing key-value medium. It allocates collision-free
// codes, deduplicates by original URL, and serves resolution and statistics.
//
// The store holds no in-process mutable state; cross-request coordination is
// delegated to the backing medium's per-key atomic primitives. This interface
// is defined in the domain layer and implemented in the data layer.
type LinkStore interface {
	// Shorten maps originalURL to a short code. If the URL already has a
	// live code, the existing link is returned with created=false and no
	// state is mutated. A non-empty custom code is used as-is after an
	// atomic conditional create; ErrCodeConflict if it is already taken.
	// With no custom code a random code is allocated, retrying on collision
	// up to a bounded number of attempts (ErrCodeSpaceExhausted past the
	// bound).
	Shorten(ctx context.Context, originalURL OriginalURL, customCode ShortCode) (*ShortLink, bool, error)

	// Resolve returns the original URL for a code. Pure lookup, no side
	// effects. ErrNotFound if the code is absent or expired.
	Resolve(ctx context.Context, code ShortCode) (OriginalURL, error)

	// IncrementClicks atomically increments the click counter for a live
	// code and returns the new total. ErrNotFound if the forward mapping
	// does not exist; counters are never created for dead codes.
	IncrementClicks(ctx context.Context, code ShortCode) (int64, error)

	// Stats returns the link with its current click count. ErrNotFound is
	// keyed off the forward mapping alone; a missing counter reads as zero.
	Stats(ctx context.Context, code ShortCode) (*ShortLink, error)

	// Delete removes the forward, reverse, and counter entries for a code.
	// Returns false if the code did not exist.
	Delete(ctx context.Context, code ShortCode) (bool, error)
}
