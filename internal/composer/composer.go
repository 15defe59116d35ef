// Package composer builds the system and user chat messages sent to the
// model gateway (spec.md §4.2). It owns no state: every call is a pure
// function of its inputs, mirroring the teacher's SystemPrompt builder in
// internal/session/system.go but assembling sections the spec defines
// instead of tool/agent prompt blocks.
package composer

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/synthos/synthos/internal/changeop"
	"github.com/synthos/synthos/pkg/types"
)

// System builds the system message for the primary transform call. The six
// named sections (spec.md §4.2) appear in the fixed order
// CURRENT_PAGE, SERVER_APIS, SERVER_SCRIPTS, THEME,
// CONFIGURED_CONNECTORS/CONFIGURED_AGENTS, USER_MESSAGE — with
// deployment-specific extras (INSTRUCTIONS, ROUTE_HINTS) interleaved without
// disturbing that relative order. Sections are separated by a blank line,
// and any optional section whose backing data is empty is omitted entirely
// rather than emitted with empty content. USER_MESSAGE — the raw chat
// input — always closes the message; it is never echoed into the user turn.
func System(req types.TransformRequest) types.ChatMessage {
	var parts []string

	parts = append(parts, section("CURRENT_PAGE", req.AnnotatedSource))
	parts = append(parts, section("SERVER_APIS", serverAPIs))

	if req.Instructions != "" {
		parts = append(parts, section("INSTRUCTIONS", req.Instructions))
	}
	if req.Scripts != "" {
		parts = append(parts, section("SERVER_SCRIPTS", req.Scripts))
	}
	if req.ThemeInfo != nil {
		parts = append(parts, section("THEME", themeBlock(*req.ThemeInfo)))
	}
	if req.Connectors != "" {
		parts = append(parts, section("CONFIGURED_CONNECTORS", req.Connectors))
	}
	if req.Agents != "" {
		parts = append(parts, section("CONFIGURED_AGENTS", req.Agents))
	}
	if req.RouteHints != "" {
		parts = append(parts, section("ROUTE_HINTS", req.RouteHints))
	}

	parts = append(parts, section("USER_MESSAGE", req.Message))

	return types.ChatMessage{
		Role:    "system",
		Content: strings.Join(parts, "\n\n"),
	}
}

// User builds the user message for the primary transform call: any
// caller-supplied custom transform instructions, then provider-specific
// formatting instructions, then the fixed transformInstr block. The user's
// raw chat text lives in the system message's <USER_MESSAGE> section
// instead (spec.md §4.2) — this turn never repeats it.
func User(req types.TransformRequest) types.ChatMessage {
	var parts []string

	for _, instr := range req.CustomTransformInstructions {
		if strings.TrimSpace(instr) != "" {
			parts = append(parts, instr)
		}
	}
	if req.ModelInstructions != "" {
		parts = append(parts, req.ModelInstructions)
	}
	parts = append(parts, transformInstr)

	return types.ChatMessage{
		Role:    "user",
		Content: strings.Join(parts, "\n\n"),
	}
}

// RepairSystem builds the system message for the repair call (spec.md
// §4.6): the same <CURRENT_PAGE> section, re-annotated, with none of the
// catalog sections repeated — the model already has them from the first
// turn's system message in a multi-turn transcript, or it does not need
// them again to patch a small set of failed operations.
func RepairSystem(reannotatedSource string) types.ChatMessage {
	return types.ChatMessage{
		Role:    "system",
		Content: section("CURRENT_PAGE", reannotatedSource),
	}
}

// RepairUser builds the user message for the repair call: the fixed
// repairInstr block followed by the JSON-rendered list of failed
// operations the first pass could not apply.
func RepairUser(failures changeop.Failures) (types.ChatMessage, error) {
	encoded, err := json.MarshalIndent(failures, "", "  ")
	if err != nil {
		return types.ChatMessage{}, fmt.Errorf("composer: marshal failed operations: %w", err)
	}

	content := strings.Join([]string{
		repairInstr,
		section("FAILED_OPERATIONS", string(encoded)),
	}, "\n\n")

	return types.ChatMessage{Role: "user", Content: content}, nil
}

func section(tag, body string) string {
	return fmt.Sprintf("<%s>\n%s\n</%s>", tag, body, tag)
}

func themeBlock(theme types.ThemeInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "mode: %s\n", theme.Mode)

	names := make([]string, 0, len(theme.Colors))
	for name := range theme.Colors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "--%s: %s\n", name, theme.Colors[name])
	}
	return strings.TrimRight(b.String(), "\n")
}
