package schedule

import "sync/atomic"

// App owns the single application state instance and serializes access to it.
//
// Concurrency model: one internal goroutine owns the State and runs Update;
// one event is fully processed (state transition plus effect emission) before
// the next is dequeued, so no concurrent mutation is possible and no mutexes
// are required. Public methods communicate with the loop through channels.
type App struct {
	dispatchCh chan Event
	doCh       chan doReq
	snapshotCh chan chan State
	effectCh   chan Effect

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// NewApp starts the event loop with the given initial state.
func NewApp(initial State) *App {
	a := &App{
		dispatchCh: make(chan Event, 256),
		doCh:       make(chan doReq),
		snapshotCh: make(chan chan State),
		effectCh:   make(chan Effect, 64),
		stopCh:     make(chan struct{}),
		stopped:    make(chan struct{}),
	}
	go a.run(initial)
	return a
}

func (a *App) run(state State) {
	defer close(a.stopped)

	for {
		select {
		case <-a.stopCh:
			return

		case ev := <-a.dispatchCh:
			var effects []Effect
			state, effects = Update(state, ev)
			for _, eff := range effects {
				a.emit(eff)
			}

		case req := <-a.doCh:
			var effects []Effect
			state, effects = Update(state, req.ev)
			for _, eff := range effects {
				a.emit(eff)
			}
			req.resp <- state

		case resp := <-a.snapshotCh:
			resp <- state
		}
	}
}

// emit queues an effect for the host shell. Effects are fire-and-forget; when
// the buffer is full the oldest pending effect is discarded so the newest
// state always wins.
func (a *App) emit(eff Effect) {
	for {
		select {
		case a.effectCh <- eff:
			return
		default:
		}
		select {
		case <-a.effectCh:
		default:
		}
	}
}

// Dispatch queues an event for processing. It never blocks; events dispatched
// after Close are dropped.
func (a *App) Dispatch(ev Event) {
	if a.closed.Load() {
		return
	}
	select {
	case a.dispatchCh <- ev:
	case <-a.stopped:
	}
}

type doReq struct {
	ev   Event
	resp chan State
}

// Do processes an event and returns the resulting state. Unlike Dispatch it
// waits for the transition, so callers observe their own write.
func (a *App) Do(ev Event) State {
	if a.closed.Load() {
		return State{}
	}

	req := doReq{ev: ev, resp: make(chan State, 1)}
	select {
	case a.doCh <- req:
	case <-a.stopped:
		return State{}
	}

	select {
	case s := <-req.resp:
		return s
	case <-a.stopped:
		return State{}
	}
}

// Snapshot returns the current state. The returned value is safe to read
// concurrently: Update never mutates data reachable from a previous state.
func (a *App) Snapshot() State {
	if a.closed.Load() {
		return State{}
	}

	resp := make(chan State, 1)
	select {
	case a.snapshotCh <- resp:
	case <-a.stopped:
		return State{}
	}

	select {
	case s := <-resp:
		return s
	case <-a.stopped:
		return State{}
	}
}

// Effects returns the channel on which the host shell receives side-effect
// requests, most notably PersistBookmarks.
func (a *App) Effects() <-chan Effect {
	return a.effectCh
}

// Close stops the event loop. Pending events are discarded.
func (a *App) Close() {
	if a.closed.CompareAndSwap(false, true) {
		close(a.stopCh)
	}
	<-a.stopped
}
