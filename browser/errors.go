package browser

import (
	"context"

	"github.com/cockroachdb/errors"
)

// Sentinels marked onto every failure of an automated page interaction.
var (
	ErrElementNotFound = errors.New("element not found")
	ErrElementHidden   = errors.New("element not visible")
	ErrTimeout         = errors.New("timed out waiting for page")
	ErrUnexpectedPage  = errors.New("unexpected page state")
	ErrClosed          = errors.New("browser session closed")
	ErrActionCap       = errors.New("automated action cap reached")
)

// markRunErr classifies an error coming back from chromedp. Caller
// cancellation is left untouched so it can propagate as-is.
func markRunErr(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return errors.Wrap(ctx.Err(), msg)
	}
	wrapped := errors.Wrap(err, msg)
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Mark(wrapped, ErrTimeout)
	}
	return errors.Mark(wrapped, ErrUnexpectedPage)
}

func statusErr(status, what string) error {
	switch status {
	case statusFound, statusClicked:
		return nil
	case statusMissing:
		return errors.Wrap(ErrElementNotFound, what)
	case statusHidden:
		return errors.Wrap(ErrElementHidden, what)
	default:
		return errors.Mark(errors.Newf("%s: page returned status %q", what, status), ErrUnexpectedPage)
	}
}
