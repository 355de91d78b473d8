package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkCreated(t *testing.T) {
	e := NewLinkCreated("test123", "https://example.com", false)

	assert.Equal(t, "link.created", e.EventName())
	assert.Equal(t, "test123", e.AggregateID())
	assert.Equal(t, "test123", e.ShortCode)
	assert.Equal(t, "https://example.com", e.OriginalURL)
	assert.False(t, e.CustomCode)
	assert.False(t, e.OccurredAt().IsZero())
	assert.NotEmpty(t, e.EventID())
}

func TestLinkClicked(t *testing.T) {
	e := NewLinkClicked("test123", 42, "Mozilla/5.0", "192.168.1.1", "https://google.com")

	assert.Equal(t, "link.clicked", e.EventName())
	assert.Equal(t, "test123", e.AggregateID())
	assert.Equal(t, int64(42), e.ClickCount)
	assert.Equal(t, "Mozilla/5.0", e.UserAgent)
	assert.Equal(t, "192.168.1.1", e.IPAddress)
	assert.Equal(t, "https://google.com", e.Referrer)
}

func TestLinkDeleted(t *testing.T) {
	e := NewLinkDeleted("test123")

	assert.Equal(t, "link.deleted", e.EventName())
	assert.Equal(t, "test123", e.AggregateID())
}

func TestClickMilestoneReached(t *testing.T) {
	e := NewClickMilestoneReached("test123", 1000, 1000)

	assert.Equal(t, "link.milestone_reached", e.EventName())
	assert.Equal(t, "test123", e.AggregateID())
	assert.Equal(t, int64(1000), e.Milestone)
	assert.Equal(t, int64(1000), e.ClickCount)
}

func TestCheckMilestone(t *testing.T) {
	tests := []struct {
		name          string
		previousCount int64
		currentCount  int64
		wantMilestone int64
	}{
		{"reaches 100", 99, 100, 100},
		{"reaches 1000", 999, 1000, 1000},
		{"no milestone", 50, 51, 0},
		{"skips milestone", 90, 150, 100},
		{"already past", 100, 101, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			milestone := CheckMilestone(tt.previousCount, tt.currentCount)
			assert.Equal(t, tt.wantMilestone, milestone)
		})
	}
}
