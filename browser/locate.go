package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/cockroachdb/errors"

	log "github.com/charmbracelet/log"
)

const (
	statusFound   = "found"
	statusClicked = "clicked"
	statusMissing = "missing"
	statusHidden  = "hidden"
)

const textPollInterval = 250 * time.Millisecond

type locateResult struct {
	Status string `json:"status"`
	Value  string `json:"value"`
}

const visibleFn = `const visible = (n) => {
		const style = window.getComputedStyle(n);
		if (style.visibility === 'hidden' || style.display === 'none') return false;
		return n.getClientRects().length > 0;
	};`

func clickByRoleScript(role, name string) string {
	return fmt.Sprintf(`((role, name) => {
	const normalize = (s) => (s || '').replace(/\s+/g, ' ').trim().toLowerCase();
	%s
	const implicit = {
		link: 'a[href]',
		button: 'button, input[type="button"], input[type="submit"]',
	};
	let selector = '[role="' + role + '"]';
	if (implicit[role]) selector += ', ' + implicit[role];

	const want = normalize(name);
	let hidden = false;
	for (const n of document.querySelectorAll(selector)) {
		const label = normalize(n.getAttribute('aria-label') || n.textContent);
		if (!label.includes(want)) continue;
		if (!visible(n)) {
			hidden = true;
			continue;
		}
		n.click();
		return {status: 'clicked'};
	}
	return {status: hidden ? 'hidden' : 'missing'};
})(%q, %q);`, visibleFn, role, name)
}

func readOnlyInputScript() string {
	return fmt.Sprintf(`(() => {
	%s
	const n = document.querySelector('input[readonly]');
	if (!n) return {status: 'missing'};
	if (!visible(n)) return {status: 'hidden'};
	return {status: 'found', value: n.value || ''};
})();`, visibleFn)
}

func hasTextScript(text string) string {
	return fmt.Sprintf(`((want) => {
	const body = document.body ? document.body.innerText : '';
	return body.includes(want);
})(%q);`, text)
}

// ClickByRole activates the first visible element with the given ARIA role
// whose accessible name contains name, case-insensitively.
func (s *Session) ClickByRole(ctx context.Context, role, name string) error {
	if err := s.actOnCurrentHost(ctx); err != nil {
		return err
	}
	var res locateResult
	if err := s.run(ctx, s.opts.ActionTimeout, chromedp.Evaluate(clickByRoleScript(role, name), &res)); err != nil {
		return markRunErr(ctx, err, fmt.Sprintf("click %s %q", role, name))
	}
	log.Debug("Locate by role", "role", role, "name", name, "status", res.Status)
	return statusErr(res.Status, fmt.Sprintf("%s %q", role, name))
}

// WaitForText polls the page until its visible text contains text. The
// whole wait, including any in-flight evaluation, is bounded by timeout.
func (s *Session) WaitForText(ctx context.Context, text string, timeout time.Duration) error {
	if err := s.actOnCurrentHost(ctx); err != nil {
		return err
	}
	err := poll(ctx, timeout, textPollInterval, func(ctx context.Context) (bool, error) {
		var found bool
		if err := s.run(ctx, s.opts.ActionTimeout, chromedp.Evaluate(hasTextScript(text), &found)); err != nil {
			return false, markRunErr(ctx, err, "evaluate page text")
		}
		return found, nil
	})
	return errors.Wrapf(err, "wait for text %q", text)
}

// ReadOnlyInputValue returns the value of the first read-only input field.
func (s *Session) ReadOnlyInputValue(ctx context.Context) (string, error) {
	if err := s.actOnCurrentHost(ctx); err != nil {
		return "", err
	}
	var res locateResult
	if err := s.run(ctx, s.opts.ActionTimeout, chromedp.Evaluate(readOnlyInputScript(), &res)); err != nil {
		return "", markRunErr(ctx, err, "read input[readonly]")
	}
	if err := statusErr(res.Status, "input[readonly]"); err != nil {
		return "", err
	}
	return res.Value, nil
}
