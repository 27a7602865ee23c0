package setup

import (
	"context"

	"github.com/cockroachdb/errors"

	"supabase-setup/browser"
)

// ExtractionOutcome says how an automated page interaction ended. Every
// outcome other than OutcomeFound falls back to asking the user.
type ExtractionOutcome int

const (
	OutcomeFound ExtractionOutcome = iota
	OutcomeNotFound
	OutcomeHidden
	OutcomeTimeout
	OutcomeUnexpectedPage
	OutcomeFailed
)

func (o ExtractionOutcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeHidden:
		return "hidden"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeUnexpectedPage:
		return "unexpected_page"
	default:
		return "failed"
	}
}

// ClassifyExtraction maps the error of an automated interaction to its
// outcome. A nil error is OutcomeFound.
func ClassifyExtraction(err error) ExtractionOutcome {
	switch {
	case err == nil:
		return OutcomeFound
	case errors.Is(err, browser.ErrElementNotFound):
		return OutcomeNotFound
	case errors.Is(err, browser.ErrElementHidden):
		return OutcomeHidden
	case errors.Is(err, browser.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	case errors.Is(err, browser.ErrUnexpectedPage), errors.Is(err, browser.ErrClosed):
		return OutcomeUnexpectedPage
	default:
		return OutcomeFailed
	}
}
