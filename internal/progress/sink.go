package progress

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// timeLayout is the timestamp prefix of rendered events.
const timeLayout = "15:04:05"

// Kind tells log lines from progress updates.
type Kind int

const (
	// KindLog is a free-text log line.
	KindLog Kind = iota
	// KindProgress is a completed/total update.
	KindProgress
)

// Event is one queued report.
type Event struct {
	Time      time.Time
	Kind      Kind
	Message   string
	Completed int
	Total     int
}

// String renders the event as "[HH:MM:SS] message".
func (e Event) String() string {
	if e.Kind == KindProgress {
		return fmt.Sprintf("[%s] %d/%d completed", e.Time.Format(timeLayout), e.Completed, e.Total)
	}

	return fmt.Sprintf("[%s] %s", e.Time.Format(timeLayout), e.Message)
}

// Sink is an unbounded multi-producer, single-consumer event queue.
// Producers never block on the consumer and no event is dropped.
type Sink struct {
	mu     sync.Mutex
	events []Event
	now    func() time.Time

	closeOnce sync.Once
	closed    chan struct{}
}

// NewSink creates an empty sink.
func NewSink() *Sink {
	return &Sink{
		now:    time.Now,
		closed: make(chan struct{}),
	}
}

// Log queues a log line.
func (s *Sink) Log(message string) {
	s.push(Event{Kind: KindLog, Message: message})
}

// Logf queues a formatted log line.
func (s *Sink) Logf(format string, args ...any) {
	s.Log(fmt.Sprintf(format, args...))
}

// Progress queues a completed/total update.
func (s *Sink) Progress(completed, total int) {
	s.push(Event{Kind: KindProgress, Completed: completed, Total: total})
}

// Drain removes and returns all queued events in arrival order.
func (s *Sink) Drain() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.events
	s.events = nil

	return events
}

// Run calls consume with drained events every interval until ctx is done or the sink
// is closed. Events still queued at that point are handed over in one last batch.
func (s *Sink) Run(ctx context.Context, interval time.Duration, consume func([]Event)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	flush := func() {
		if events := s.Drain(); len(events) > 0 {
			consume(events)
		}
	}

	for {
		select {
		case <-ticker.C:
			flush()
		case <-ctx.Done():
			flush()

			return
		case <-s.closed:
			flush()

			return
		}
	}
}

// Close stops Run after its final drain. Safe to call more than once.
func (s *Sink) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
	})
}

func (s *Sink) push(event Event) {
	event.Time = s.now()

	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()
}
