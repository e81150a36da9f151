package progress

import (
	"context"
	"sync"
)

// Hub coordinates the flow of progress events between collectors and
// reporters.
//
// Producers report into collectors; the hub multiplexes events from all
// subscribed collectors onto a central channel and fans them out to every
// registered reporter. Each reporter runs on its own worker goroutine behind
// a buffered channel, so one slow reporter (a throttled terminal bar, a file
// sink) never stalls the others or the producers.
//
// Lifecycle:
//  1. Create with NewHub and options (WithContext, WithReporters,
//     WithCollectors).
//  2. The hub subscribes to the collectors and starts the reporter workers.
//  3. Events flow: Collector -> hub -> reporter channels -> Reporters.
//  4. Cancelling the context stops all goroutines.
//
// Example:
//
//	bar := progress.NewBar(progress.WithTotal(total))
//	defer bar.Close()
//
//	col := collector.New()
//	hub, err := progress.NewHub(
//	    progress.WithContext(ctx),
//	    progress.WithCollectors(col),
//	    progress.WithReporters(reporter.NewBarReporter(bar)),
//	)
//
//	col.Report(progress.Event{Stage: progress.StageRunning, Current: 1, Total: total})
//
// Hub is safe for concurrent use: multiple collectors can send events
// simultaneously and all reporters receive events concurrently.
type Hub struct {
	ctx                context.Context
	reporters          []Reporter
	reporterChannels   []chan Event
	collectors         []Collector
	collectorChan      chan Event
	collectorCancelMap map[int]context.CancelFunc
	subscribeMutex     sync.Mutex
}

// HubOption configures a Hub during creation.
type HubOption func(h *Hub)

// WithContext sets the context controlling the lifecycle of the hub's
// background goroutines. When it is cancelled, all reporter workers and
// collector subscriptions stop.
func WithContext(ctx context.Context) HubOption {
	return func(h *Hub) {
		h.ctx = ctx
	}
}

// WithReporters adds one or more reporters. Every reporter receives every
// event.
func WithReporters(reporters ...Reporter) HubOption {
	return func(h *Hub) {
		h.reporters = append(h.reporters, reporters...)
	}
}

// WithCollectors adds one or more collectors. The hub subscribes to each of
// them during initialization.
func WithCollectors(collectors ...Collector) HubOption {
	return func(h *Hub) {
		h.collectors = append(h.collectors, collectors...)
	}
}

// NewHub creates a hub with the provided options and starts its background
// goroutines.
//
// If no reporters are specified a NoopReporter is installed, so a hub with
// reporting disabled costs nothing. If no context is provided the hub runs
// until the process exits.
func NewHub(opts ...HubOption) (*Hub, error) {
	h := &Hub{
		collectorChan:      make(chan Event, 100),
		collectorCancelMap: map[int]context.CancelFunc{},
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.ctx == nil {
		h.ctx = context.Background()
	}

	if len(h.reporters) == 0 {
		h.reporters = append(h.reporters, &NoopReporter{})
	}

	for _, r := range h.reporters {
		ch := make(chan Event, 100)
		h.reporterChannels = append(h.reporterChannels, ch)
		go h.reporterWorker(r, ch)
	}

	go func() {
		for {
			select {
			case event := <-h.collectorChan:
				for _, ch := range h.reporterChannels {
					ch <- event
				}
			case <-h.ctx.Done():
				return
			}
		}
	}()

	for _, c := range h.collectors {
		h.Subscribe(c)
	}

	return h, nil
}

// Subscribe starts receiving events from the collector. A goroutine forwards
// the collector's channel into the hub until either the hub context is
// cancelled or Unsubscribe is called.
func (h *Hub) Subscribe(c Collector) {
	subscribeCtx, subscribeCancel := context.WithCancel(h.ctx)
	h.subscribeMutex.Lock()
	h.collectorCancelMap[c.ID()] = subscribeCancel
	h.subscribeMutex.Unlock()

	go func() {
		for {
			select {
			case event := <-c.CollectChannel():
				h.collectorChan <- event
			case <-subscribeCtx.Done():
				return
			}
		}
	}()
}

// Unsubscribe stops receiving events from the collector. Events already in
// flight may still be delivered.
func (h *Hub) Unsubscribe(c Collector) {
	h.subscribeMutex.Lock()
	subscribeCancel := h.collectorCancelMap[c.ID()]
	h.subscribeMutex.Unlock()
	if subscribeCancel != nil {
		subscribeCancel()
	}
}

// reporterWorker forwards events to one reporter until the hub context is
// cancelled.
func (h *Hub) reporterWorker(r Reporter, events chan Event) {
	for {
		select {
		case event := <-events:
			r.Report(event)
		case <-h.ctx.Done():
			return
		}
	}
}
