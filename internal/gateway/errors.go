package gateway

import (
	"errors"
	"fmt"

	"github.com/synthos/synthos/pkg/types"
)

var errNilCompletePrompt = errors.New("completePrompt is nil")

func errNotCompleted(res types.CompletePromptResult) error {
	if res.Err != nil {
		return fmt.Errorf("completePrompt did not complete: %w", res.Err)
	}
	return errors.New("completePrompt did not complete")
}
