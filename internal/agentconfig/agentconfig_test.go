package agentconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/synthos/synthos/pkg/types"
)

func TestBuild_EmptyCatalogYieldsEmptyString(t *testing.T) {
	assert.Empty(t, Build(nil))
}

func TestBuild_SkipsDisabledAgents(t *testing.T) {
	cfg := map[string]types.AgentConfig{
		"researcher": {Description: "does research", Disabled: true},
	}
	assert.Empty(t, Build(cfg))
}

func TestBuild_ListsAgentAndPatterns(t *testing.T) {
	cfg := map[string]types.AgentConfig{
		"billing": {Description: "handles billing", ScriptPatterns: []string{"billing/*", "invoices/**"}},
	}
	out := Build(cfg)
	assert.Contains(t, out, "billing")
	assert.Contains(t, out, "handles billing")
	assert.Contains(t, out, "billing/*")
	assert.Contains(t, out, "invoices/**")
}

func TestCanUseScript_MatchesGlobPattern(t *testing.T) {
	cfg := map[string]types.AgentConfig{
		"billing": {ScriptPatterns: []string{"billing/**"}},
	}
	assert.True(t, CanUseScript(cfg, "billing", "billing/refund"))
	assert.False(t, CanUseScript(cfg, "billing", "invoices/create"))
}

func TestCanUseScript_DisabledAgentDenied(t *testing.T) {
	cfg := map[string]types.AgentConfig{
		"billing": {ScriptPatterns: []string{"*"}, Disabled: true},
	}
	assert.False(t, CanUseScript(cfg, "billing", "anything"))
}

func TestCanUseScript_UnknownAgentDenied(t *testing.T) {
	assert.False(t, CanUseScript(nil, "ghost", "anything"))
}

func TestCanUseScript_NoPatternsDeniesAll(t *testing.T) {
	cfg := map[string]types.AgentConfig{"billing": {Description: "x"}}
	assert.False(t, CanUseScript(cfg, "billing", "anything"))
}
