package browser

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"
)

// throttle paces automated actions per host and caps how many a single
// session may perform against one host.
type throttle struct {
	perSecond  float64
	burst      int
	maxPerHost int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	counts   map[string]int
}

func newThrottle(perSecond float64, burst, maxPerHost int) *throttle {
	return &throttle{
		perSecond:  perSecond,
		burst:      burst,
		maxPerHost: maxPerHost,
		limiters:   make(map[string]*rate.Limiter),
		counts:     make(map[string]int),
	}
}

func (t *throttle) acquire(ctx context.Context, host string) error {
	t.mu.Lock()
	limiter, ok := t.limiters[host]
	if !ok {
		limit := rate.Limit(t.perSecond)
		if t.perSecond <= 0 {
			limit = rate.Inf
		}
		limiter = rate.NewLimiter(limit, max(t.burst, 1))
		t.limiters[host] = limiter
	}
	if t.maxPerHost > 0 && t.counts[host] >= t.maxPerHost {
		t.mu.Unlock()
		return errors.Wrapf(ErrActionCap, "host %s", host)
	}
	t.counts[host]++
	t.mu.Unlock()

	return limiter.Wait(ctx)
}

func (t *throttle) count(host string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[host]
}

func hostOf(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", errors.Wrapf(err, "parse url %q", raw)
	}
	if u.Hostname() == "" {
		return "", errors.Newf("url %q has no host", raw)
	}
	return strings.ToLower(u.Hostname()), nil
}
