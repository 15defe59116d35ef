package transform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/synthos/synthos/internal/annotator"
	"github.com/synthos/synthos/pkg/types"
)

// errorPayload is the JSON shape embedded in the injected <script id="error">
// block (spec.md §4.8): message is a short caller-facing string, details is
// the underlying exception's message.
type errorPayload struct {
	Message string `json:"message"`
	Details string `json:"details"`
}

// injectError builds the result for every pipeline failure that is not a
// first-call transport failure (spec.md §6.1, §7, §4.8): the page with its
// data-node-id attributes stripped, plus one <script id="error"> block
// appended as the last child of <body>. Any pre-existing error block is
// removed first. The returned TransformValue always carries ChangeCount 0
// and represents a *successful* TransformResult. Its error return means even
// the fallback document could not be assembled, which practically cannot
// happen since base is always a page that once parsed cleanly upstream; run
// passes such an error up unchanged, so Page reports it as Completed:false.
func injectError(base, message string, cause error) (*types.TransformValue, error) {
	stripped, err := annotator.Strip(base)
	if err != nil {
		return nil, fmt.Errorf("transform: strip source for error injection: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(stripped))
	if err != nil {
		return nil, fmt.Errorf("transform: parse source for error injection: %w", err)
	}
	doc.Find(`script#error`).Remove()

	payload, err := json.Marshal(errorPayload{Message: message, Details: cause.Error()})
	if err != nil {
		return nil, fmt.Errorf("transform: marshal error payload: %w", err)
	}
	doc.Find("body").AppendHtml(fmt.Sprintf(`<script id="error" type="application/json">%s</script>`, payload))

	var buf bytes.Buffer
	if err := html.Render(&buf, doc.Nodes[0]); err != nil {
		return nil, fmt.Errorf("transform: render error-injected html: %w", err)
	}

	return &types.TransformValue{HTML: buf.String(), ChangeCount: 0}, nil
}
