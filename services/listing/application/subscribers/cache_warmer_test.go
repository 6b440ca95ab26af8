package subscribers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/lostfound/pkg/events"
	"github.com/ghuser/lostfound/pkg/logger"
	domainevents "github.com/ghuser/lostfound/services/listing/domain/events"
)

type countingWarmer struct {
	mu    sync.Mutex
	calls int
	err   error
	done  chan struct{}
}

func (w *countingWarmer) WarmRecent(context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls++
	if w.done != nil {
		w.done <- struct{}{}
	}
	return w.err
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		warmErr   error
		wantErr   bool
		wantCalls int
	}{
		{"posted event warms", `{"listing_id":4}`, nil, false, 1},
		{"warm failure is retried", `{"listing_id":4}`, errors.New("redis down"), true, 1},
		{"garbage is dropped", `not json`, nil, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &countingWarmer{err: tt.warmErr}
			c := NewCacheWarmer(w, logger.Discard())

			err := c.Handle(context.Background(), message.NewMessage("id", []byte(tt.payload)))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Handle error = %v, wantErr %v", err, tt.wantErr)
			}
			if w.calls != tt.wantCalls {
				t.Errorf("expected %d warm calls, got %d", tt.wantCalls, w.calls)
			}
		})
	}
}

func TestRegister_WarmsOnPostedAndResolved(t *testing.T) {
	bus := events.NewEventBus(logger.Discard())
	defer bus.Close() //nolint:errcheck

	w := &countingWarmer{done: make(chan struct{}, 2)}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := NewCacheWarmer(w, logger.Discard()).Register(ctx, bus); err != nil {
		t.Fatalf("Register: %v", err)
	}

	posted, _ := events.NewJSONMessage(domainevents.ListingPostedEvent{ListingID: 4})
	resolved, _ := events.NewJSONMessage(domainevents.ListingResolvedEvent{ListingID: 1})
	if err := bus.Publish(ctx, domainevents.TopicListingPosted, posted); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := bus.Publish(ctx, domainevents.TopicListingResolved, resolved); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	for range 2 {
		select {
		case <-w.done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for cache warm")
		}
	}
}
