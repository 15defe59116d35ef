// Package changeparser extracts a change list from an LLM's raw text
// response, tolerant of code fences and surrounding prose (spec.md §4.4).
package changeparser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/synthos/synthos/internal/changeop"
)

var fencePattern = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// longestBracketedPattern finds the longest substring bounded by the first '[' and
// the last ']' in s. It is intentionally greedy: an LLM response that wraps
// the array in prose ("Here is the plan: [...]  Let me know!") still yields
// the array, not a prefix of it.
var longestBracketedPattern = regexp.MustCompile(`(?s)\[.*\]`)

// Parse extracts a changeop.List from raw LLM output text, in the order
// described by spec.md §4.4:
//  1. direct json.Unmarshal into an array
//  2. strip a surrounding ```/```json code fence and retry
//  3. regex-extract the longest bracketed substring and retry
//  4. fail with a changeop.ErrParse-wrapped error
//
// The parser does not validate individual operation shapes; unknown ops are
// caught later by the mutator (spec.md §4.4).
func Parse(text string) (changeop.List, error) {
	if list, ok := tryUnmarshal(text); ok {
		return list, nil
	}

	if unfenced, ok := stripFence(text); ok {
		if list, ok := tryUnmarshal(unfenced); ok {
			return list, nil
		}
	}

	if bracketed := longestBracketedPattern.FindString(text); bracketed != "" {
		if list, ok := tryUnmarshal(bracketed); ok {
			return list, nil
		}
	}

	return nil, changeop.Wrap(changeop.ErrParse, fmt.Errorf("no JSON array found in response"))
}

func tryUnmarshal(s string) (changeop.List, bool) {
	var list changeop.List
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &list); err != nil {
		return nil, false
	}
	return list, true
}

func stripFence(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	m := fencePattern.FindStringSubmatch(trimmed)
	if m == nil {
		return "", false
	}
	return m[1], true
}
