package browser

import (
	"context"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cockroachdb/errors"

	log "github.com/charmbracelet/log"
)

// Session is a single Chrome instance driven over the DevTools protocol.
// It is not safe for concurrent use.
type Session struct {
	opts Options

	allocatorCtx context.Context
	browserCtx   context.Context
	cancelAlloc  context.CancelFunc
	cancelBrowse context.CancelFunc

	throttle  *throttle
	lifecycle *lifecycle
	host      string

	closeOnce sync.Once
	closeErr  error
}

// Launch starts Chrome and returns a session bound to its first tab.
// The browser lives until Close is called, independent of ctx.
func Launch(ctx context.Context, opts Options) (*Session, error) {
	opts = opts.withDefaults()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(opts.WindowWidth, opts.WindowHeight),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	s := &Session{
		opts:      opts,
		throttle:  newThrottle(opts.ActionsPerSecond, opts.ActionBurst, opts.MaxActionsPerHost),
		lifecycle: newLifecycle(),
	}
	s.allocatorCtx, s.cancelAlloc = chromedp.NewExecAllocator(context.WithoutCancel(ctx), allocOpts...)
	s.browserCtx, s.cancelBrowse = chromedp.NewContext(s.allocatorCtx)

	chromedp.ListenTarget(s.browserCtx, func(ev interface{}) {
		if e, ok := ev.(*page.EventLifecycleEvent); ok {
			s.lifecycle.observe(e)
		}
	})

	// The first Run allocates the browser and must use the session context
	// itself, otherwise cancelling a derived context would tear Chrome down.
	if err := chromedp.Run(s.browserCtx, page.SetLifecycleEventsEnabled(true)); err != nil {
		s.cancelBrowse()
		s.cancelAlloc()
		return nil, errors.Wrap(err, "launch browser")
	}
	log.Debug("Browser launched", "headless", opts.Headless, "exec", opts.ExecPath)
	return s, nil
}

// Open navigates to rawURL and waits until the new document in the main
// frame goes network idle.
func (s *Session) Open(ctx context.Context, rawURL string) error {
	host, err := hostOf(rawURL)
	if err != nil {
		return err
	}
	if err := s.throttle.acquire(ctx, host); err != nil {
		return err
	}
	if err := s.run(ctx, s.opts.NavigationTimeout, chromedp.Navigate(rawURL)); err != nil {
		return markRunErr(ctx, err, "navigate to "+rawURL)
	}
	s.host = host

	frame, loader, err := s.mainDocument(ctx)
	if err != nil {
		return err
	}
	log.Debug("Navigated", "url", rawURL, "frame", frame, "loader", loader)
	return s.lifecycle.wait(ctx, frame, loader, s.opts.NavigationTimeout)
}

// Location returns the address of the current page.
func (s *Session) Location(ctx context.Context) (string, error) {
	var loc string
	if err := s.run(ctx, s.opts.ActionTimeout, chromedp.Location(&loc)); err != nil {
		return "", markRunErr(ctx, err, "read location")
	}
	if host, err := hostOf(loc); err == nil {
		s.host = host
	}
	return loc, nil
}

// Close shuts Chrome down. It is safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if err := chromedp.Cancel(s.browserCtx); err != nil && !errors.Is(err, context.Canceled) {
			s.closeErr = errors.Wrap(err, "close browser")
		}
		s.cancelBrowse()
		s.cancelAlloc()
		log.Debug("Browser closed")
	})
	return s.closeErr
}

// run executes actions on the session tab, bounded by timeout and aborted
// when the caller's ctx is cancelled.
func (s *Session) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if s.browserCtx.Err() != nil {
		return ErrClosed
	}
	runCtx, cancel := context.WithTimeout(s.browserCtx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

// mainDocument identifies the document currently loaded in the top frame.
func (s *Session) mainDocument(ctx context.Context) (cdp.FrameID, cdp.LoaderID, error) {
	var tree *page.FrameTree
	err := s.run(ctx, s.opts.ActionTimeout, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		tree, err = page.GetFrameTree().Do(ctx)
		return err
	}))
	if err != nil {
		return "", "", markRunErr(ctx, err, "read frame tree")
	}
	if tree == nil || tree.Frame == nil {
		return "", "", errors.Mark(errors.New("page has no main frame"), ErrUnexpectedPage)
	}
	return tree.Frame.ID, tree.Frame.LoaderID, nil
}

func (s *Session) actOnCurrentHost(ctx context.Context) error {
	host := s.host
	if host == "" {
		host = "about:blank"
	}
	return s.throttle.acquire(ctx, host)
}
