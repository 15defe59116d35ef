// Package transform orchestrates the full page-transformation pipeline
// (spec.md §4.8): annotate, compose, call the model, parse, mutate, repair
// on failure, strip, and deduplicate. It is the single entry point the HTTP
// server (internal/server) calls; every other internal/* package here is a
// stateless collaborator it wires together in a fixed order.
package transform

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/synthos/synthos/internal/annotator"
	"github.com/synthos/synthos/internal/changeparser"
	"github.com/synthos/synthos/internal/composer"
	"github.com/synthos/synthos/internal/dedup"
	"github.com/synthos/synthos/internal/gateway"
	"github.com/synthos/synthos/internal/logging"
	"github.com/synthos/synthos/internal/mutator"
	"github.com/synthos/synthos/internal/repair"
	"github.com/synthos/synthos/pkg/types"
)

// Page runs one full transformation. Completed is false only for a
// first-pass LLM transport failure (spec.md §6.1) — every other failure
// mode (an unparsable first-pass response, the mutator's fatal UnknownOp /
// UnknownPosition conditions, or a downstream strip/dedup failure) is
// absorbed into a successful result carrying an embedded <script id="error">
// block (spec.md §4.8, §7).
func Page(req types.TransformRequest) types.TransformResult {
	emit := req.OnStage
	if emit == nil {
		emit = func(string, string) {}
	}

	logger := logging.Page(req.PageName)

	value, transportErr := run(req, logger, emit)
	if transportErr != nil {
		logger.Error().Err(transportErr).Msg("transform: first-pass transport failure")
		emit("failed", transportErr.Error())
		return types.TransformResult{Completed: false, Err: transportErr}
	}
	emit("completed", fmt.Sprintf("%d changes applied", value.ChangeCount))
	return types.TransformResult{Completed: true, Value: value}
}

// run executes the pipeline. Its error return carries a first-call gateway
// transport failure, or an error from injectError itself — every other
// internal failure is converted in place via injectError and returned as a
// (successful) value with a nil error, so Page never has to tell them apart. logger is already tagged
// with the page name so every line it emits can be correlated to this one
// pipeline run.
func run(req types.TransformRequest, logger zerolog.Logger, emit func(stage, detail string)) (*types.TransformValue, error) {
	emit("annotate", "")
	annotated, err := annotator.Assign(req.AnnotatedSource)
	if err != nil {
		logger.Warn().Err(err).Msg("transform: failed to annotate page, injecting error")
		emit("failed", err.Error())
		return injectError(req.AnnotatedSource, "the page could not be prepared for transformation", err)
	}

	promptReq := req
	promptReq.AnnotatedSource = annotated.HTML

	emit("compose", "")
	sysMsg := composer.System(promptReq)
	userMsg := composer.User(promptReq)

	emit("gateway", "")
	res, err := gateway.Call(req.CompletePrompt, types.CompletePromptArgs{
		System:    sysMsg,
		Prompt:    userMsg,
		MaxTokens: req.MaxTokens,
	})
	if err != nil {
		// The only case that surfaces as TransformResult{Completed: false}.
		return nil, fmt.Errorf("transform: gateway call: %w", err)
	}

	emit("parse", "")
	changes, err := changeparser.Parse(res.Value)
	if err != nil {
		logger.Warn().Err(err).Msg("transform: first-pass response failed to parse, injecting error")
		emit("failed", err.Error())
		return injectError(annotated.HTML, "the model's response could not be understood", err)
	}

	emit("mutate", "")
	mutated, failures, err := mutator.Apply(annotated.HTML, changes)
	if err != nil {
		logger.Warn().Err(err).Msg("transform: mutator reported a fatal error, injecting error")
		emit("failed", err.Error())
		return injectError(annotated.HTML, "the model produced a change it could not apply", err)
	}

	applied := len(changes) - len(failures)
	finalHTML := mutated

	if len(failures) > 0 {
		logger.Info().Int("failureCount", len(failures)).Msg("transform: entering repair pass")
		emit("repair", fmt.Sprintf("%d operations failed", len(failures)))
		repairMaxTokens := min(req.MaxTokens, 4096)
		outcome, err := repair.Attempt(mutated, failures, req.CompletePrompt, repairMaxTokens)
		if err != nil {
			// repair.Attempt already swallows its own transport/parse
			// failures (spec.md §4.6 step 5); a non-nil error here means
			// re-annotation or composition itself failed.
			logger.Warn().Err(err).Msg("transform: repair pass failed, injecting error")
			emit("failed", err.Error())
			return injectError(annotated.HTML, "the repair pass could not complete", err)
		}
		finalHTML = outcome.HTML
		applied += outcome.Applied
		if len(outcome.Remaining) > 0 {
			logger.Warn().Int("remaining", len(outcome.Remaining)).Msg("transform: operations still failed after repair")
		}
	}

	emit("strip", "")
	stripped, err := annotator.Strip(finalHTML)
	if err != nil {
		logger.Warn().Err(err).Msg("transform: failed to strip node ids, injecting error")
		emit("failed", err.Error())
		return injectError(annotated.HTML, "the transformed page could not be finalized", err)
	}

	emit("dedup", "")
	deduped, err := dedup.Scripts(stripped)
	if err != nil {
		logger.Warn().Err(err).Msg("transform: failed to dedup scripts, injecting error")
		emit("failed", err.Error())
		return injectError(annotated.HTML, "the transformed page could not be finalized", err)
	}
	if len(deduped.Dropped) > 0 {
		logger.Debug().Int("dropped", len(deduped.Dropped)).Msg("transform: post-processor dropped redundant scripts")
	}

	return &types.TransformValue{HTML: deduped.HTML, ChangeCount: applied}, nil
}
