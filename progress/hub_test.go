package progress

import (
	"context"
	"sync"
	"testing"
	"time"
)

// mockCollector implements Collector for testing
type mockCollector struct {
	id int
	ch chan Event
}

func newMockCollector(id int) *mockCollector {
	return &mockCollector{
		id: id,
		ch: make(chan Event, 100),
	}
}

func (m *mockCollector) ID() int { return m.id }
func (m *mockCollector) CollectChannel() chan Event { return m.ch }

func (m *mockCollector) Report(event Event) {
	select {
	case m.ch <- event:
	default:
	}
}

// mockReporter implements Reporter for testing
type mockReporter struct {
	mu     sync.Mutex
	events []Event
}

func (m *mockReporter) Report(event Event) {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()
}

func (m *mockReporter) eventCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

func (m *mockReporter) getEvents() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event{}, m.events...)
}

func TestNewHub_DefaultNoopReporter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub, err := NewHub(WithContext(ctx))
	if err != nil {
		t.Fatalf("failed to create hub: %v", err)
	}

	if len(hub.reporters) != 1 {
		t.Errorf("expected 1 default reporter, got %d", len(hub.reporters))
	}
	if _, ok := hub.reporters[0].(*NoopReporter); !ok {
		t.Errorf("expected default reporter to be NoopReporter, got %T", hub.reporters[0])
	}
}

func TestHub_FanOutToAllReporters(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rep1 := &mockReporter{}
	rep2 := &mockReporter{}
	col := newMockCollector(1)

	_, err := NewHub(
		WithContext(ctx),
		WithReporters(rep1, rep2),
		WithCollectors(col),
	)
	if err != nil {
		t.Fatalf("failed to create hub: %v", err)
	}

	col.Report(Event{Stage: StageRunning, Current: 3, Total: 9})

	deadline := time.After(time.Second)
	for rep1.eventCount() == 0 || rep2.eventCount() == 0 {
		select {
		case <-deadline:
			t.Fatalf("reporters did not receive the event: rep1=%d rep2=%d",
				rep1.eventCount(), rep2.eventCount())
		case <-time.After(5 * time.Millisecond):
		}
	}

	got := rep1.getEvents()[0]
	if got.Stage != StageRunning || got.Current != 3 || got.Total != 9 {
		t.Errorf("unexpected event delivered: %+v", got)
	}
}

func TestHub_Unsubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rep := &mockReporter{}
	col := newMockCollector(7)

	hub, err := NewHub(
		WithContext(ctx),
		WithReporters(rep),
		WithCollectors(col),
	)
	if err != nil {
		t.Fatalf("failed to create hub: %v", err)
	}

	col.Report(Event{Stage: StageInit})

	deadline := time.After(time.Second)
	for rep.eventCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("event before unsubscribe was not delivered")
		case <-time.After(5 * time.Millisecond):
		}
	}

	hub.Unsubscribe(col)
	// let the subscription goroutine observe the cancel
	time.Sleep(20 * time.Millisecond)

	before := rep.eventCount()
	col.Report(Event{Stage: StageComplete})
	time.Sleep(50 * time.Millisecond)

	if rep.eventCount() != before {
		t.Errorf("expected no events after unsubscribe, got %d new", rep.eventCount()-before)
	}
}

func TestHub_ContextCancelStopsWorkers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	rep := &mockReporter{}
	col := newMockCollector(2)

	_, err := NewHub(
		WithContext(ctx),
		WithReporters(rep),
		WithCollectors(col),
	)
	if err != nil {
		t.Fatalf("failed to create hub: %v", err)
	}

	cancel()
	time.Sleep(20 * time.Millisecond)

	before := rep.eventCount()
	col.Report(Event{Stage: StageRunning, Current: 1, Total: 2})
	time.Sleep(50 * time.Millisecond)

	if rep.eventCount() != before {
		t.Errorf("expected no delivery after context cancel, got %d new", rep.eventCount()-before)
	}
}
