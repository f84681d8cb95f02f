package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/servilink/marketplace-api/internal/core/domain"
)

type stubAuditService struct {
	mu     sync.Mutex
	events []domain.AuthEvent
	done   chan struct{}
}

func (s *stubAuditService) Process(_ context.Context, event domain.AuthEvent) error {
	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()
	s.done <- struct{}{}
	return nil
}

func TestDispatcher_RecordProcessesEvent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stub := &stubAuditService{done: make(chan struct{}, 8)}
	d := NewDispatcher(2, stub, zerolog.Nop())
	d.Start(ctx)

	d.Record(domain.AuthEvent{Action: domain.ActionLogin, Email: "alice@example.com", Outcome: "ok"})

	select {
	case <-stub.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("event was not processed")
	}

	stub.mu.Lock()
	defer stub.mu.Unlock()
	if len(stub.events) != 1 || stub.events[0].Email != "alice@example.com" {
		t.Fatalf("unexpected events: %+v", stub.events)
	}
}

func TestDispatcher_SameEmailSameShard(t *testing.T) {
	d := NewDispatcher(4, nil, zerolog.Nop())

	first := d.shardIndex("bob@example.com")
	for i := 0; i < 10; i++ {
		if d.shardIndex("bob@example.com") != first {
			t.Fatalf("shard index must be deterministic per email")
		}
	}
}

func TestDispatcher_FullChannelDropsInsteadOfBlocking(t *testing.T) {
	// No workers started: the single shard fills up, further records must
	// return without blocking.
	stub := &stubAuditService{done: make(chan struct{}, 1)}
	d := NewDispatcher(1, stub, zerolog.Nop())

	finished := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Record(domain.AuthEvent{Action: domain.ActionLogin, Email: "x@example.com"})
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatalf("Record blocked on a full channel")
	}
}
