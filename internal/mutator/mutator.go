// Package mutator applies a change list to annotated HTML via deterministic
// DOM surgery, honoring locking rules and collecting failures instead of
// aborting (spec.md §4.5).
package mutator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/synthos/synthos/internal/annotator"
	"github.com/synthos/synthos/internal/changeop"
)

// LockedAttr marks an element as protected against destructive mutation
// (spec.md §3 "Locking").
const LockedAttr = "data-locked"

// editableLockedIDs are the element `id` values whose inner content may be
// updated even while the element itself carries data-locked (spec.md §3).
var editableLockedIDs = map[string]bool{
	"chatMessages": true,
	"thoughts":     true,
}

// Apply runs changes against annotatedHTML in order, returning the mutated
// document and any operations that could not be applied. Apart from a
// failure to parse or render the document, it returns a non-nil error only
// for the two fatal, programmer-error conditions spec.md §4.5/§7 name: an
// unrecognized op kind or insert position — everything else (missing node,
// locked target) is recorded in the returned failures instead.
func Apply(annotatedHTML string, changes changeop.List) (string, changeop.Failures, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(annotatedHTML))
	if err != nil {
		return "", nil, fmt.Errorf("parse annotated html: %w", err)
	}

	var failures changeop.Failures

	for _, op := range changes {
		switch op.Kind {
		case changeop.KindUpdate:
			if fail := applyUpdate(doc, op); fail != nil {
				failures = append(failures, *fail)
			}
		case changeop.KindReplace:
			if fail := applyReplace(doc, op); fail != nil {
				failures = append(failures, *fail)
			}
		case changeop.KindDelete:
			if fail := applyDelete(doc, op); fail != nil {
				failures = append(failures, *fail)
			}
		case changeop.KindInsert:
			fail, err := applyInsert(doc, op)
			if err != nil {
				return "", nil, err
			}
			if fail != nil {
				failures = append(failures, *fail)
			}
		case changeop.KindStyleElement:
			if fail := applyStyleElement(doc, op); fail != nil {
				failures = append(failures, *fail)
			}
		default:
			return "", nil, changeop.Wrap(changeop.ErrUnknownOp, fmt.Errorf("op %q", op.Kind))
		}
	}

	out, err := render(doc)
	if err != nil {
		return "", nil, err
	}
	return out, failures, nil
}

func findByNodeID(doc *goquery.Document, id string) *goquery.Selection {
	return doc.Find(fmt.Sprintf(`[%s="%s"]`, annotator.NodeIDAttr, id))
}

func isLocked(sel *goquery.Selection) bool {
	return sel.Length() > 0 && sel.Is("["+LockedAttr+"]")
}

func isEditableWhileLocked(sel *goquery.Selection) bool {
	id, _ := sel.Attr("id")
	return editableLockedIDs[id]
}

func applyUpdate(doc *goquery.Document, op changeop.Op) *changeop.FailedOp {
	sel := findByNodeID(doc, op.NodeID)
	if sel.Length() == 0 {
		return &changeop.FailedOp{Op: op, Reason: fmt.Sprintf("node %s not found", op.NodeID)}
	}
	if isLocked(sel) && !isEditableWhileLocked(sel) {
		return &changeop.FailedOp{Op: op, Reason: fmt.Sprintf("target %s is locked", op.NodeID)}
	}
	sel.SetHtml(op.HTML)
	return nil
}

func applyReplace(doc *goquery.Document, op changeop.Op) *changeop.FailedOp {
	sel := findByNodeID(doc, op.NodeID)
	if sel.Length() == 0 {
		return &changeop.FailedOp{Op: op, Reason: fmt.Sprintf("node %s not found", op.NodeID)}
	}
	if isLocked(sel) {
		return &changeop.FailedOp{Op: op, Reason: fmt.Sprintf("target %s is locked", op.NodeID)}
	}
	sel.ReplaceWithHtml(op.HTML)
	return nil
}

func applyDelete(doc *goquery.Document, op changeop.Op) *changeop.FailedOp {
	sel := findByNodeID(doc, op.NodeID)
	if sel.Length() == 0 {
		return &changeop.FailedOp{Op: op, Reason: fmt.Sprintf("node %s not found", op.NodeID)}
	}
	if isLocked(sel) {
		return &changeop.FailedOp{Op: op, Reason: fmt.Sprintf("target %s is locked", op.NodeID)}
	}
	sel.Remove()
	return nil
}

func applyStyleElement(doc *goquery.Document, op changeop.Op) *changeop.FailedOp {
	sel := findByNodeID(doc, op.NodeID)
	if sel.Length() == 0 {
		return &changeop.FailedOp{Op: op, Reason: fmt.Sprintf("node %s not found", op.NodeID)}
	}
	if isLocked(sel) {
		return &changeop.FailedOp{Op: op, Reason: fmt.Sprintf("target %s is locked", op.NodeID)}
	}
	// Open Question (DESIGN.md #1): this is a full overwrite, not a merge.
	sel.SetAttr("style", op.Style)
	return nil
}

func applyInsert(doc *goquery.Document, op changeop.Op) (*changeop.FailedOp, error) {
	anchor := findByNodeID(doc, op.ParentID)
	if anchor.Length() == 0 {
		return &changeop.FailedOp{Op: op, Reason: fmt.Sprintf("parent %s not found", op.ParentID)}, nil
	}

	switch op.Position {
	case changeop.PositionPrepend:
		anchor.PrependHtml(op.HTML)
	case changeop.PositionAppend:
		anchor.AppendHtml(op.HTML)
	case changeop.PositionBefore:
		anchor.BeforeHtml(op.HTML)
	case changeop.PositionAfter:
		anchor.AfterHtml(op.HTML)
	default:
		return nil, changeop.Wrap(changeop.ErrUnknownPosition, fmt.Errorf("position %q", op.Position))
	}
	return nil, nil
}

func render(doc *goquery.Document) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, doc.Nodes[0]); err != nil {
		return "", err
	}
	return buf.String(), nil
}
