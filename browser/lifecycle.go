package browser

import (
	"context"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/cockroachdb/errors"
)

const (
	lifecycleInit    = "init"
	networkIdleEvent = "networkIdle"
)

// lifecycle records, per frame, which document last reached network idle.
// A document is identified by its loader, so idle events from a previous
// page or from an iframe never satisfy a wait for the current one.
type lifecycle struct {
	mu     sync.Mutex
	idle   map[cdp.FrameID]cdp.LoaderID
	notify chan struct{}
}

func newLifecycle() *lifecycle {
	return &lifecycle{
		idle:   make(map[cdp.FrameID]cdp.LoaderID),
		notify: make(chan struct{}, 1),
	}
}

func (l *lifecycle) observe(e *page.EventLifecycleEvent) {
	l.mu.Lock()
	switch e.Name {
	case lifecycleInit:
		delete(l.idle, e.FrameID)
	case networkIdleEvent:
		l.idle[e.FrameID] = e.LoaderID
	default:
		l.mu.Unlock()
		return
	}
	l.mu.Unlock()

	select {
	case l.notify <- struct{}{}:
	default:
	}
}

func (l *lifecycle) isIdle(frame cdp.FrameID, loader cdp.LoaderID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	got, ok := l.idle[frame]
	return ok && got == loader
}

// wait blocks until the given document of frame reaches network idle.
func (l *lifecycle) wait(ctx context.Context, frame cdp.FrameID, loader cdp.LoaderID, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for !l.isIdle(frame, loader) {
		select {
		case <-l.notify:
		case <-timer.C:
			return errors.Mark(
				errors.Newf("page did not reach network idle within %s", timeout),
				ErrTimeout,
			)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// poll calls check every interval until it reports done or fails. All
// calls share a single deadline of timeout, so a slow check cannot stretch
// the wait. Running out of time yields ErrTimeout. Cancellation of ctx
// yields ctx's error.
func poll(ctx context.Context, timeout, interval time.Duration, check func(context.Context) (bool, error)) error {
	pollCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		done, err := check(pollCtx)
		switch {
		case err == nil && done:
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		case pollCtx.Err() != nil:
			return errors.Wrapf(ErrTimeout, "not done within %s", timeout)
		case err != nil:
			return err
		}

		select {
		case <-pollCtx.Done():
		case <-ticker.C:
		}
	}
}
