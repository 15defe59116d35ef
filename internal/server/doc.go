// Package server provides the HTTP server that fronts the page-transformation
// core with the three endpoints named in internal/composer's <SERVER_APIS>
// block:
//
//	POST /api/page/{name}/transform - run the pipeline against a natural-language instruction
//	GET  /api/page/{name}           - fetch the page's current cached HTML
//	POST /api/scripts/{id}          - invoke a configured server-side script
//
// Non-goals carried over from spec.md §1 (no UI rendering, no auth, no
// multi-tenant isolation, no streaming) hold here too: this server has no
// auth middleware, no tenant/session concept, and every response is a
// single synchronous JSON body, never SSE or chunked.
//
// # Architecture
//
// Server wires internal/pagecache (the HTML store), internal/provider (the
// configured completePrompt adapter), internal/connector,
// internal/agentconfig, internal/script, and internal/themecatalog (the
// catalog-formatting collaborators) into one call to transform.Page per
// request. internal/pipelineevents receives a stage event for each step of
// that call, purely for observability; no handler blocks on it.
package server
