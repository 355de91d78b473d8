package eventbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortlink/internal/domain/event"
)

// recordingHandler captures envelopes for one event name.
type recordingHandler struct {
	eventName string

	mu       sync.Mutex
	received []*EventEnvelope
}

func (h *recordingHandler) HandlerName() string { return "recording." + h.eventName }
func (h *recordingHandler) EventName() string   { return h.eventName }

func (h *recordingHandler) Handle(ctx context.Context, envelope *EventEnvelope) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.received = append(h.received, envelope)
	return nil
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.received)
}

func TestRouter_RoutesMatchingEvents(t *testing.T) {
	bus := NewEventBus(watermill.NopLogger{})
	defer bus.Close()

	router, err := NewRouter(bus, watermill.NopLogger{})
	require.NoError(t, err)
	defer router.Close()

	clicked := &recordingHandler{eventName: "link.clicked"}
	created := &recordingHandler{eventName: "link.created"}
	router.AddHandler(clicked)
	router.AddHandler(created)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = router.Run(ctx)
	}()
	<-router.Running()

	require.NoError(t, bus.Publish(ctx, event.NewLinkClicked("abc123", 1, "", "", "")))

	require.Eventually(t, func() bool {
		return clicked.count() == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, "abc123", clicked.received[0].AggregateID)
	assert.Zero(t, created.count())
}
