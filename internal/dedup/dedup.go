// Package dedup implements the post-processor's deduplicateInlineScripts
// pass (spec.md §4.7): a two-pass heuristic cleanup that removes redundant
// inline <script> blocks an LLM tends to leave behind after an update.
package dedup

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/net/html"
)

// systemScriptIDs are excluded from pass 1's by-id grouping (spec.md §4.7,
// GLOSSARY "System ID").
var systemScriptIDs = map[string]bool{
	"page-info":    true,
	"page-helpers": true,
	"page-script":  true,
	"error":        true,
}

// declPattern matches let/const/var bindings and named function/class
// declarations that begin a line (after optional indentation). It looks only
// at the literal keyword + identifier token and does not track brace
// nesting, so a declaration on its own line inside a function body is
// collected as well as a top-level one.
var declPattern = regexp.MustCompile(`(?m)^\s*(?:let|const|var)\s+([A-Za-z_$][\w$]*)|^\s*function\s+([A-Za-z_$][\w$]*)|^\s*class\s+([A-Za-z_$][\w$]*)`)

// overlapThreshold and minDecls are the conservative thresholds spec.md §4.7
// and §9 call out by name; reducing either produces false positives.
const (
	overlapThreshold = 0.6
	minDecls         = 2
)

// Dropped describes one inline script removed by pass 2, with a diagnostic
// diff against the survivor it was judged a near-duplicate of, so operators
// can audit what the heuristic removed.
type Dropped struct {
	Index int
	Diff  string
}

// Result carries the deduplicated HTML and the pass-2 diagnostics. Pass 1
// (by-id) removals are not diagnosed — the survivor is unambiguous (same id,
// last one wins) and no heuristic judgment was involved.
type Result struct {
	HTML    string
	Dropped []Dropped
}

// Scripts operates on the stripped final HTML. It is a pure function: for
// any H with no <script> children in <body>, Scripts(H) returns H unchanged
// (spec.md §8).
func Scripts(finalHTML string) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(finalHTML))
	if err != nil {
		return Result{}, err
	}

	scriptCount := doc.Find("script").Length()
	dropped := removeDuplicateIDs(doc)
	dropped = append(dropped, removeOverlappingDeclarations(doc)...)

	// Nothing removed: hand back the input untouched rather than a
	// re-rendered (and therefore normalized) copy of it.
	if doc.Find("script").Length() == scriptCount {
		return Result{HTML: finalHTML, Dropped: dropped}, nil
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc.Nodes[0]); err != nil {
		return Result{}, err
	}
	return Result{HTML: buf.String(), Dropped: dropped}, nil
}

// removeDuplicateIDs implements pass 1: group inline scripts by id, keep the
// last of each group with >=2 members.
func removeDuplicateIDs(doc *goquery.Document) []Dropped {
	groups := make(map[string][]*goquery.Selection)
	var order []string

	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		if _, hasSrc := sel.Attr("src"); hasSrc {
			return
		}
		id, ok := sel.Attr("id")
		if !ok || id == "" || systemScriptIDs[id] {
			return
		}
		if _, seen := groups[id]; !seen {
			order = append(order, id)
		}
		groups[id] = append(groups[id], sel)
	})

	for _, id := range order {
		members := groups[id]
		if len(members) < 2 {
			continue
		}
		for _, sel := range members[:len(members)-1] {
			sel.Remove()
		}
	}
	return nil
}

// removeOverlappingDeclarations implements pass 2: for id-less, non-JSON
// inline scripts, remove the earlier of any pair whose declared identifiers
// (as declPattern collects them) overlap heavily, on the theory that the LLM re-emitted a
// revised copy instead of patching the original (spec.md §4.7).
func removeOverlappingDeclarations(doc *goquery.Document) []Dropped {
	type candidate struct {
		sel   *goquery.Selection
		idx   int
		decls map[string]bool
		text  string
	}

	var candidates []candidate
	idx := 0
	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		if _, hasSrc := sel.Attr("src"); hasSrc {
			return
		}
		if id, ok := sel.Attr("id"); ok && id != "" {
			return
		}
		if typ, ok := sel.Attr("type"); ok && typ == "application/json" {
			return
		}
		text := sel.Text()
		decls := declarations(text)
		if len(decls) < minDecls {
			return
		}
		candidates = append(candidates, candidate{sel: sel, idx: idx, decls: decls, text: text})
		idx++
	})

	removed := make(map[int]bool)
	var dropped []Dropped

	for i := 0; i < len(candidates); i++ {
		if removed[i] {
			continue
		}
		for j := i + 1; j < len(candidates); j++ {
			if removed[j] {
				continue
			}
			a, b := candidates[i].decls, candidates[j].decls
			if len(a) < minDecls || len(b) < minDecls {
				continue
			}
			if overlapRatio(a, b) >= overlapThreshold {
				removed[i] = true
				dropped = append(dropped, Dropped{Index: candidates[i].idx, Diff: diffText(candidates[i].text, candidates[j].text)})
				break
			}
		}
	}

	for i, c := range candidates {
		if removed[i] {
			c.sel.Remove()
		}
	}
	return dropped
}

func declarations(scriptText string) map[string]bool {
	decls := make(map[string]bool)
	for _, m := range declPattern.FindAllStringSubmatch(scriptText, -1) {
		for _, name := range m[1:] {
			if name != "" {
				decls[name] = true
			}
		}
	}
	return decls
}

func overlapRatio(a, b map[string]bool) float64 {
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	if len(small) == 0 {
		return 0
	}
	common := 0
	for name := range small {
		if large[name] {
			common++
		}
	}
	return float64(common) / float64(len(small))
}

func diffText(before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)
	patches := dmp.PatchMake(before, diffs)
	return dmp.PatchToText(patches)
}
