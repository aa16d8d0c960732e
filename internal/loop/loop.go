package loop

import (
	"context"
	"fmt"
	"time"

	"github.com/PixPMusic/gopher-surface/internal/logger"
)

// DefaultDepth is the work queue size used when New is given zero.
const DefaultDepth = 256

// Loop confines the controller to one goroutine. Driver and network
// callbacks Post closures; Run executes them in order, interleaved with a
// periodic tick, until its context ends or Fail is called.
type Loop struct {
	log       *logger.Log
	work      chan func()
	errorChan chan error
	done      chan struct{}
}

// New creates a loop whose queue holds depth pending closures.
func New(log *logger.Log, depth int) *Loop {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Loop{
		log:       log.Module("loop"),
		work:      make(chan func(), depth),
		errorChan: make(chan error, 1),
		done:      make(chan struct{}),
	}
}

// Post queues fn to run on the loop goroutine. It blocks while the queue
// is full and returns false once the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.work <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Fail stops Run with err. Only the first error is kept.
func (l *Loop) Fail(err error) {
	if err == nil {
		return
	}
	select {
	case l.errorChan <- err:
	default:
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Run executes posted closures and calls tick every interval, blocking
// until ctx is canceled (returning nil) or Fail is called (returning its
// error). A panicking closure or tick is logged and does not stop the
// loop. Run must be called once.
func (l *Loop) Run(ctx context.Context, interval time.Duration, tick func()) error {
	defer close(l.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-l.errorChan:
			return err
		case fn := <-l.work:
			l.call("work", fn)
		case <-ticker.C:
			if tick != nil {
				l.call("tick", tick)
			}
		}
	}
}

func (l *Loop) call(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.WithField("in", what).WithError(fmt.Errorf("panic: %v", r)).Error("recovered")
		}
	}()
	fn()
}
