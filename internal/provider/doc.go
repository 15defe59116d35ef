// Package provider adapts concrete LLM backends (Anthropic Claude, OpenAI,
// Volcengine ARK) to the single types.CompletePromptFunc boundary the core
// transform pipeline calls through (pkg/types.CompletePromptFunc). Every
// adapter here is a single-shot request/response call — the core issues at
// most two calls per transform (primary + optional repair) and never
// streams or binds tools, so each factory wraps an Eino
// model.BaseChatModel's Generate method directly rather than its streaming
// or tool-calling surface.
package provider
