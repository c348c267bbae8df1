package countdown

import (
	"sync"
	"time"
)

// Registry owns the recurring per-card tickers. Each non-approximate card
// holds at most one ticker, keyed by record ID, and the rendering layer
// drains the whole registry before every rebuild. A ticker left running
// after its card is gone would keep mutating detached state, so teardown
// before rebuild is a correctness requirement here, not an optimization.
//
// Delivery is decoupled from ticking: ticker goroutines hand ticks to a
// single forwarder goroutine through a small coalescing channel, and only
// the forwarder calls the notify callback. The callback is program.Send,
// which blocks while the event loop is inside Update; since DrainAll runs
// from inside Update, a ticker that called notify directly could never be
// waited on without deadlocking the UI.
type Registry struct {
	mu       sync.Mutex
	stops    map[string]chan struct{}
	interval time.Duration
	notify   func(id string)
	wg       sync.WaitGroup
	ticks    chan string
	done     chan struct{}
}

// NewRegistry creates a registry that fires notify(id) once per interval
// for every started card until that card is stopped or the registry is
// drained. notify may be nil until SetNotify is called.
func NewRegistry(interval time.Duration, notify func(id string)) *Registry {
	if interval <= 0 {
		interval = time.Second
	}
	r := &Registry{
		stops:    make(map[string]chan struct{}),
		interval: interval,
		notify:   notify,
		ticks:    make(chan string, 64),
		done:     make(chan struct{}),
	}
	go r.forward()
	return r
}

// forward is the only caller of the notify callback. Running it on its own
// goroutine means a callback blocked in program.Send holds up neither the
// tickers nor DrainAll.
func (r *Registry) forward() {
	for {
		select {
		case <-r.done:
			return
		case id := <-r.ticks:
			r.mu.Lock()
			notify := r.notify
			r.mu.Unlock()
			if notify != nil {
				notify(id)
			}
		}
	}
}

// SetNotify installs the tick callback. Used when the consumer (the Bubble
// Tea program) only exists after the registry does.
func (r *Registry) SetNotify(notify func(id string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notify = notify
}

// Start begins a recurring ticker for the given card. Starting an already
// running card is a no-op.
func (r *Registry) Start(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, running := r.stops[id]; running {
		return
	}

	stop := make(chan struct{})
	r.stops[id] = stop

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				// Non-blocking: a tick is only a wakeup, so when the
				// channel is full a pending wakeup already covers it.
				select {
				case r.ticks <- id:
				default:
				}
			}
		}
	}()
}

// Stop cancels the ticker for one card.
func (r *Registry) Stop(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stop, ok := r.stops[id]; ok {
		close(stop)
		delete(r.stops, id)
	}
}

// DrainAll cancels every ticker. Called before each full re-render and on
// shutdown. It blocks until all ticker goroutines have exited and flushes
// any queued ticks, so no new delivery can begin for a discarded card
// afterwards; at most one delivery already handed to the forwarder may
// still land. It never waits on the notify callback itself.
func (r *Registry) DrainAll() {
	r.mu.Lock()
	for id, stop := range r.stops {
		close(stop)
		delete(r.stops, id)
	}
	r.mu.Unlock()
	r.wg.Wait()

	for {
		select {
		case <-r.ticks:
		default:
			return
		}
	}
}

// Close drains the registry and stops the forwarder goroutine. The
// registry cannot be reused afterwards.
func (r *Registry) Close() {
	r.DrainAll()
	close(r.done)
}

// Active returns the number of running tickers.
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stops)
}

// Running reports whether a ticker exists for the given card.
func (r *Registry) Running(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.stops[id]
	return ok
}
