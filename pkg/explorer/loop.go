package explorer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultFrameInterval is roughly one display frame.
const DefaultFrameInterval = 16 * time.Millisecond

var (
	// ErrClosed is returned by [Loop.Do] once the loop has stopped.
	ErrClosed = errors.New("explorer: loop closed")
	// ErrRunning is returned when [Loop.Run] is called twice.
	ErrRunning = errors.New("explorer: loop already running")
)

type command struct {
	fn     func(*Session) error
	result chan error
}

// Loop runs a session on one goroutine. Layout ticks and commands never
// overlap.
type Loop struct {
	session  *Session
	interval time.Duration
	logger   *log.Logger

	cmds    chan command
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
	running atomic.Bool
}

// NewLoop creates a loop over s ticking every interval. A non-positive
// interval means DefaultFrameInterval.
func NewLoop(s *Session, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Loop{
		session:  s,
		interval: interval,
		logger:   s.logger,
		cmds:     make(chan command),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run ticks the session and executes commands until ctx is cancelled or
// Close is called. A settled layout is not ticked until a command reheats it.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("loop stopped", "reason", ctx.Err())
			return ctx.Err()
		case <-l.stop:
			l.logger.Debug("loop closed")
			return nil
		case cmd := <-l.cmds:
			cmd.result <- cmd.fn(l.session)
		case <-ticker.C:
			if !l.session.sim.Settled() {
				l.session.Tick()
			}
		}
	}
}

// Do runs fn on the loop goroutine between two ticks and returns its error.
func (l *Loop) Do(ctx context.Context, fn func(*Session) error) error {
	cmd := command{fn: fn, result: make(chan error, 1)}
	select {
	case l.cmds <- cmd:
	case <-l.stop:
		return ErrClosed
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	// Run always answers a received command before it can exit.
	return <-cmd.result
}

// Close stops the loop. It is safe to call more than once.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.stop) })
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} { return l.done }
