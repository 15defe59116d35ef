// Package digest summarizes an oversized annotated page into Markdown, as a
// smaller stand-in for a <CURRENT_PAGE> payload that would otherwise blow
// past a provider's context budget (spec.md §9 SUPPLEMENTED FEATURES).
// internal/repair does not call it: the repair prompt carries the full
// re-annotated HTML. The
// converter has no rule for the data-node-id attribute, so node ids are not
// carried into the Markdown digest.
package digest

import (
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// Threshold is the annotated-HTML byte length above which Summarize
// converts to Markdown instead of passing the raw HTML through.
const Threshold = 60_000

func converter() *md.Converter {
	c := md.NewConverter("", true, &md.Options{
		HeadingStyle:     "atx",
		HorizontalRule:   "---",
		BulletListMarker: "-",
		CodeBlockStyle:   "fenced",
		EmDelimiter:      "*",
	})
	c.Remove("meta", "link")
	return c
}

// Summarize converts annotatedHTML to Markdown. Script and style elements
// are kept, unlike internal/tool's webfetch digest, since the model may
// still need to see inline script source to reason about a repair.
func Summarize(annotatedHTML string) (string, error) {
	markdown, err := converter().ConvertString(annotatedHTML)
	if err != nil {
		return "", fmt.Errorf("digest: convert: %w", err)
	}
	return markdown, nil
}

// MaybeSummarize returns annotatedHTML unchanged if it is under Threshold,
// and its Markdown digest otherwise.
func MaybeSummarize(annotatedHTML string) (string, error) {
	if len(annotatedHTML) <= Threshold {
		return annotatedHTML, nil
	}
	return Summarize(annotatedHTML)
}
