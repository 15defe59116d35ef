// Package repair implements the optional second suspension point (spec.md
// §4.6): when the mutator reports operations it could not apply, the
// controller re-annotates the current document, asks the model for a
// corrected change list targeting the fresh ids, and applies it once. There
// is no recursive repair — a second round of failures is returned to the
// caller as-is.
package repair

import (
	"errors"
	"fmt"

	"github.com/synthos/synthos/internal/annotator"
	"github.com/synthos/synthos/internal/changeop"
	"github.com/synthos/synthos/internal/changeparser"
	"github.com/synthos/synthos/internal/composer"
	"github.com/synthos/synthos/internal/gateway"
	"github.com/synthos/synthos/internal/logging"
	"github.com/synthos/synthos/internal/mutator"
	"github.com/synthos/synthos/pkg/types"
)

// Outcome is the result of one repair attempt.
type Outcome struct {
	// HTML is the document after applying the repair change list, still
	// carrying data-node-id attributes (the caller strips and dedups once,
	// after any repair pass, per spec.md §4.7).
	HTML string
	// Applied is the number of operations the repair pass applied.
	Applied int
	// Remaining is whatever the repair pass itself could not apply. It is
	// surfaced to the caller rather than retried.
	Remaining changeop.Failures
}

// Attempt runs one repair round. currentHTML is the mutator's output from
// the primary pass (already carrying data-node-id attributes); failures is
// what that pass could not apply.
//
// If failures is empty, Attempt is a no-op and returns currentHTML
// unchanged. If the model returns an empty change list (it judges nothing
// further is needed), Attempt likewise returns currentHTML unchanged with
// the original failures carried through as Remaining.
func Attempt(currentHTML string, failures changeop.Failures, completePrompt types.CompletePromptFunc, maxTokens int) (Outcome, error) {
	if len(failures) == 0 {
		return Outcome{HTML: currentHTML}, nil
	}

	reannotated, err := annotator.Assign(currentHTML)
	if err != nil {
		return Outcome{}, fmt.Errorf("repair: re-annotate: %w", err)
	}

	sysMsg := composer.RepairSystem(reannotated.HTML)
	userMsg, err := composer.RepairUser(failures)
	if err != nil {
		return Outcome{}, fmt.Errorf("repair: compose: %w", err)
	}

	res, err := gateway.Call(completePrompt, types.CompletePromptArgs{
		System:    sysMsg,
		Prompt:    userMsg,
		MaxTokens: maxTokens,
	})
	if err != nil {
		// spec.md §4.6 step 5 / §7: a repair-call transport failure is
		// swallowed, not propagated — the first-pass partial result stands.
		if errors.Is(err, changeop.ErrTransport) {
			logging.Logger.Warn().Err(err).Msg("repair: gateway call failed, keeping first-pass result")
			return Outcome{HTML: currentHTML, Remaining: failures}, nil
		}
		return Outcome{}, fmt.Errorf("repair: gateway call: %w", err)
	}

	changes, err := changeparser.Parse(res.Value)
	if err != nil {
		if errors.Is(err, changeop.ErrParse) {
			logging.Logger.Warn().Err(err).Msg("repair: response failed to parse, keeping first-pass result")
			return Outcome{HTML: currentHTML, Remaining: failures}, nil
		}
		return Outcome{}, fmt.Errorf("repair: parse response: %w", err)
	}

	if len(changes) == 0 {
		logging.Logger.Debug().Int("failureCount", len(failures)).Msg("repair: model returned no corrective operations")
		return Outcome{HTML: currentHTML, Remaining: failures}, nil
	}

	mutated, remaining, err := mutator.Apply(reannotated.HTML, changes)
	if err != nil {
		return Outcome{}, fmt.Errorf("repair: apply: %w", err)
	}

	logging.Logger.Info().
		Int("attempted", len(changes)).
		Int("remaining", len(remaining)).
		Msg("repair: applied corrective change list")

	return Outcome{
		HTML:      mutated,
		Applied:   len(changes) - len(remaining),
		Remaining: remaining,
	}, nil
}
