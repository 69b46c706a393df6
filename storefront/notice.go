package storefront

import (
	"sync"
	"time"
)

const DefaultNoticeTTL = 1800 * time.Millisecond

// Notifier holds one transient notice. Each Show schedules its own
// dismissal and cancels the one scheduled by the notice it replaces.
type Notifier struct {
	mu       sync.Mutex
	ttl      time.Duration
	current  string
	gen      uint64
	timer    *time.Timer
	onChange func(string)
}

func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	return &Notifier{ttl: ttl}
}

// OnChange registers fn to be called with every new notice and with "" on
// dismissal.
func (n *Notifier) OnChange(fn func(string)) {
	n.mu.Lock()
	n.onChange = fn
	n.mu.Unlock()
}

func (n *Notifier) Show(msg string) {
	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.gen++
	gen := n.gen
	n.current = msg
	n.timer = time.AfterFunc(n.ttl, func() { n.expire(gen) })
	fn := n.onChange
	n.mu.Unlock()

	if fn != nil {
		fn(msg)
	}
}

func (n *Notifier) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *Notifier) Dismiss() {
	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.gen++
	had := n.current != ""
	n.current = ""
	fn := n.onChange
	n.mu.Unlock()

	if had && fn != nil {
		fn("")
	}
}

// expire fires from the timer; a stale generation means the notice was
// already replaced.
func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	if gen != n.gen {
		n.mu.Unlock()
		return
	}
	n.current = ""
	n.timer = nil
	fn := n.onChange
	n.mu.Unlock()

	if fn != nil {
		fn("")
	}
}
