package domain

import (
	"time"

	"shortlink/internal/domain/event"
)

// Compile-time interface checks
var (
	_ AggregateRoot = (*ShortLink)(nil)
	_ AggregateRoot = (*DeletedLinkAggregate)(nil)
)

// ShortLink is the aggregate root representing a short code mapped to its
// original URL together with its click counter.
type ShortLink struct {
	code        ShortCode
	originalURL OriginalURL
	clickCount  int64
	createdAt   time.Time

	// events holds domain events raised by this aggregate.
	events []event.Event
}

// NewShortLink creates a freshly allocated ShortLink.
// It raises a LinkCreated event.
func NewShortLink(code ShortCode, originalURL OriginalURL, customCode bool) *ShortLink {
	l := &ShortLink{
		code:        code,
		originalURL: originalURL,
		createdAt:   time.Now().UTC(),
		events:      make([]event.Event, 0),
	}
	l.addEvent(event.NewLinkCreated(code.String(), originalURL.String(), customCode))
	return l
}

// ReconstructShortLink reconstructs a ShortLink from the backing store.
// No events are raised.
func ReconstructShortLink(code ShortCode, originalURL OriginalURL, clickCount int64) *ShortLink {
	return &ShortLink{
		code:        code,
		originalURL: originalURL,
		clickCount:  clickCount,
	}
}

// Code returns the link's short code.
func (l *ShortLink) Code() ShortCode {
	return l.code
}

// OriginalURL returns the original URL.
func (l *ShortLink) OriginalURL() OriginalURL {
	return l.originalURL
}

// ClickCount returns the number of times this link has been accessed.
func (l *ShortLink) ClickCount() int64 {
	return l.clickCount
}

// CreatedAt returns when the link was allocated. Zero for reconstructed
// links, since the backing store does not persist creation time beyond the
// record TTL.
func (l *ShortLink) CreatedAt() time.Time {
	return l.createdAt
}

// RecordClick updates the click counter to the total reported by the store's
// atomic increment. It raises a LinkClicked event and, when a threshold is
// crossed, a ClickMilestoneReached event.
func (l *ShortLink) RecordClick(total int64, userAgent, ipAddress, referrer string) {
	previous := l.clickCount
	l.clickCount = total

	l.addEvent(event.NewLinkClicked(l.code.String(), total, userAgent, ipAddress, referrer))

	if milestone := event.CheckMilestone(previous, total); milestone > 0 {
		l.addEvent(event.NewClickMilestoneReached(l.code.String(), milestone, total))
	}
}

// addEvent adds a domain event to the aggregate.
func (l *ShortLink) addEvent(e event.Event) {
	l.events = append(l.events, e)
}

// Events returns all uncommitted domain events.
func (l *ShortLink) Events() []event.Event {
	return l.events
}

// ClearEvents clears all domain events after they have been dispatched.
func (l *ShortLink) ClearEvents() {
	l.events = make([]event.Event, 0)
}

// DeletedLinkAggregate is a minimal aggregate for raising LinkDeleted events.
type DeletedLinkAggregate struct {
	events []event.Event
}

// NewDeletedLinkAggregate creates a new aggregate with a LinkDeleted event.
func NewDeletedLinkAggregate(shortCode string) *DeletedLinkAggregate {
	agg := &DeletedLinkAggregate{
		events: make([]event.Event, 0, 1),
	}
	agg.events = append(agg.events, event.NewLinkDeleted(shortCode))
	return agg
}

// Events returns all uncommitted domain events.
func (a *DeletedLinkAggregate) Events() []event.Event {
	return a.events
}

// ClearEvents clears all domain events.
func (a *DeletedLinkAggregate) ClearEvents() {
	a.events = make([]event.Event, 0)
}
