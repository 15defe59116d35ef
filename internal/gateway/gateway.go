// Package gateway wraps the caller-supplied completePrompt collaborator
// (spec.md §4.3, §6.2) with logging and optional I/O character accounting.
package gateway

import (
	"github.com/synthos/synthos/internal/changeop"
	"github.com/synthos/synthos/internal/logging"
	"github.com/synthos/synthos/pkg/types"
)

// Call invokes fn with args, logging the outcome. The core never retries a
// transport failure itself (spec.md §4.3) — that is entirely the concrete
// provider adapter's concern (internal/provider), one layer below this
// boundary.
func Call(fn types.CompletePromptFunc, args types.CompletePromptArgs) (types.CompletePromptResult, error) {
	if fn == nil {
		return types.CompletePromptResult{}, changeop.Wrap(changeop.ErrTransport, errNilCompletePrompt)
	}

	res, err := fn(args)
	if err != nil {
		logging.Logger.Warn().Err(err).Msg("gateway: completePrompt transport error")
		return types.CompletePromptResult{}, changeop.Wrap(changeop.ErrTransport, err)
	}
	if !res.Completed {
		logging.Logger.Warn().Interface("error", res.Err).Msg("gateway: completePrompt reported not completed")
		return res, changeop.Wrap(changeop.ErrTransport, errNotCompleted(res))
	}

	logging.Logger.Debug().Int("responseLen", len(res.Value)).Msg("gateway: completePrompt succeeded")
	return res, nil
}

// Counting wraps fn with a transparent decorator that tallies input/output
// character counts, activated only under verbose debug (spec.md §4.3).
type Counting struct {
	Inner         types.CompletePromptFunc
	InputChars    int
	OutputChars   int
	CallCount     int
}

// Func returns a types.CompletePromptFunc backed by c, so Counting can be
// passed anywhere a plain completePrompt is expected while still tallying.
func (c *Counting) Func() types.CompletePromptFunc {
	return func(args types.CompletePromptArgs) (types.CompletePromptResult, error) {
		c.CallCount++
		c.InputChars += len(args.System.Content) + len(args.Prompt.Content)

		res, err := c.Inner(args)
		if err == nil && res.Completed {
			c.OutputChars += len(res.Value)
		}
		return res, err
	}
}
