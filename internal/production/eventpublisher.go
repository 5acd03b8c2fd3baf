package production

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/comalice/observerx"
)

// PublishedState is one observer update forwarded to a channel.
type PublishedState struct {
	Name      string
	State     string
	Timestamp time.Time
}

// ChannelObserver is an Observer that forwards every update to a Go channel.
// Publishing never blocks: updates are dropped when the channel is full or
// the observer has been closed. Safe to notify from several goroutines.
type ChannelObserver struct {
	name    string
	mu      sync.Mutex
	state   string
	closed  bool
	ch      chan<- PublishedState
	dropped atomic.Int64
}

var _ observerx.Observer = (*ChannelObserver)(nil)

// NewChannelObserver creates a ChannelObserver with the given initial state and output channel.
func NewChannelObserver(name, initial string, ch chan<- PublishedState) *ChannelObserver {
	return &ChannelObserver{name: name, state: initial, ch: ch}
}

func (p *ChannelObserver) ObserverState() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *ChannelObserver) UpdateObserverState(src observerx.StateSource) {
	state := src.SubjectState()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = state
	if p.closed {
		p.dropped.Add(1)
		return
	}
	select {
	case p.ch <- PublishedState{Name: p.name, State: state, Timestamp: time.Now()}:
	default:
		p.dropped.Add(1) // Non-blocking drop
	}
}

// Dropped returns how many updates were not delivered.
func (p *ChannelObserver) Dropped() int64 {
	return p.dropped.Load()
}

// Close closes the output channel. Later updates are counted as dropped.
// Repeated calls are no-ops.
func (p *ChannelObserver) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.ch)
	return nil
}
