package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/synthos/synthos/internal/agentconfig"
	"github.com/synthos/synthos/internal/connector"
	"github.com/synthos/synthos/internal/gateway"
	"github.com/synthos/synthos/internal/logging"
	"github.com/synthos/synthos/internal/pagecache"
	"github.com/synthos/synthos/internal/pipelineevents"
	"github.com/synthos/synthos/internal/script"
	"github.com/synthos/synthos/internal/themecatalog"
	"github.com/synthos/synthos/internal/transform"
	"github.com/synthos/synthos/pkg/types"
)

// transformRequestBody is the JSON body of POST /api/page/{name}/transform.
type transformRequestBody struct {
	Message                     string   `json:"message"`
	Instructions                string   `json:"instructions,omitempty"`
	ModelInstructions           string   `json:"modelInstructions,omitempty"`
	Theme                       string   `json:"theme,omitempty"`
	RouteHints                  string   `json:"routeHints,omitempty"`
	CustomTransformInstructions []string `json:"customTransformInstructions,omitempty"`
}

// transformResponseBody is the JSON body of a successful transform response.
type transformResponseBody struct {
	HTML        string `json:"html"`
	ChangeCount int    `json:"changeCount"`
}

// transformPage handles POST /api/page/{name}/transform.
func (s *Server) transformPage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var body transformRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "malformed JSON body")
		return
	}
	if body.Message == "" {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "message is required")
		return
	}

	currentHTML, err := s.cache.Get(name)
	if err != nil {
		if err != pagecache.ErrNotFound {
			writeError(w, http.StatusInternalServerError, ErrCodeInternalError, "could not read page cache")
			return
		}
		currentHTML = "<html><head></head><body></body></html>"
	}

	if s.providers == nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeGatewayMisconfigured, "no provider configured")
		return
	}
	providerName := s.appConfig.Provider
	completePrompt, err := s.providers.Resolve(providerName)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, ErrCodeGatewayMisconfigured, err.Error())
		return
	}

	var counting *gateway.Counting
	if s.appConfig.VerboseDebug {
		counting = &gateway.Counting{Inner: completePrompt}
		completePrompt = counting.Func()
	}

	var themeInfo *types.ThemeInfo
	if body.Theme != "" {
		if theme, ok := themecatalog.Lookup(body.Theme); ok {
			themeInfo = &theme
		}
	}

	ctx := r.Context()
	req := types.TransformRequest{
		PageName:                    name,
		AnnotatedSource:             currentHTML,
		Message:                     body.Message,
		MaxTokens:                   s.appConfig.MaxTokens,
		CompletePrompt:              completePrompt,
		Instructions:                body.Instructions,
		ModelInstructions:           body.ModelInstructions,
		ThemeInfo:                   themeInfo,
		Scripts:                     script.Build(s.appConfig.Scripts),
		Connectors:                  connector.Build(ctx, s.appConfig.Connectors),
		Agents:                      agentconfig.Build(s.appConfig.Agents),
		RouteHints:                  body.RouteHints,
		CustomTransformInstructions: body.CustomTransformInstructions,
		OnStage:                     s.publishStage(name),
	}

	result := transform.Page(req)
	if counting != nil {
		logging.Page(name).Info().Int("calls", counting.CallCount).Int("inputChars", counting.InputChars).Int("outputChars", counting.OutputChars).Msg("gateway: I/O character counts")
	}
	if !result.Completed {
		// Page() only ever returns Completed:false for a first-pass gateway
		// transport failure — every other failure mode is absorbed into a
		// successful result carrying an embedded error block.
		writeError(w, http.StatusBadGateway, ErrCodeFirstPassFailed, result.Err.Error())
		return
	}

	if err := s.cache.Put(name, result.Value.HTML, time.Now().UTC().Format(time.RFC3339)); err != nil {
		writeError(w, http.StatusInternalServerError, ErrCodeInternalError, "transform succeeded but page cache write failed")
		return
	}

	writeJSON(w, http.StatusOK, transformResponseBody{HTML: result.Value.HTML, ChangeCount: result.Value.ChangeCount})
}

// getPage handles GET /api/page/{name}.
func (s *Server) getPage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	html, err := s.cache.Get(name)
	if err != nil {
		if err == pagecache.ErrNotFound {
			writeError(w, http.StatusNotFound, ErrCodePageNotFound, "no cached page with that name")
			return
		}
		writeError(w, http.StatusInternalServerError, ErrCodeInternalError, "could not read page cache")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"html": html})
}

// invokeScript handles POST /api/scripts/{id}.
func (s *Server) invokeScript(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	cfg, err := script.Lookup(s.appConfig.Scripts, id)
	if err != nil {
		writeError(w, http.StatusNotFound, ErrCodeScriptNotFound, err.Error())
		return
	}

	var payload map[string]any
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "malformed JSON body")
			return
		}
	}

	// Script execution itself is deployment-specific (spec.md leaves script
	// bodies opaque to the core); this server only validates the catalog
	// entry and echoes the call back, the way a thin proxy in front of a
	// real script runtime would.
	writeJSON(w, http.StatusOK, map[string]any{
		"id":          id,
		"description": cfg.Description,
		"received":    payload,
	})
}

func (s *Server) publishStage(page string) func(stage, detail string) {
	return func(stage, detail string) {
		s.events.Publish(pipelineevents.Event{Page: page, Stage: pipelineevents.Stage(stage), Detail: detail})
	}
}
