// Package changeop defines the change-list wire protocol: the tagged-union
// operation type the LLM emits, and the failure record the mutator produces
// when an operation cannot be applied. It is shared by internal/changeparser,
// internal/mutator, and internal/repair to avoid an import cycle between
// them.
package changeop

import "encoding/json"

// Position is where an insert op attaches new content relative to its parent.
type Position string

const (
	PositionPrepend Position = "prepend"
	PositionAppend  Position = "append"
	PositionBefore  Position = "before"
	PositionAfter   Position = "after"
)

// Op is one entry in a change list (spec.md §3). Exactly one of the
// variant-specific fields is meaningful for a given Kind; Raw preserves the
// original JSON object so failure reports can dump it verbatim (spec.md §4.6
// step 2: "a JSON dump of the original op").
type Op struct {
	Kind     string          `json:"op"`
	NodeID   string          `json:"nodeId,omitempty"`
	ParentID string          `json:"parentId,omitempty"`
	Position Position        `json:"position,omitempty"`
	HTML     string          `json:"html,omitempty"`
	Style    string          `json:"style,omitempty"`
	Raw      json.RawMessage `json:"-"`
}

// Known operation kinds.
const (
	KindUpdate        = "update"
	KindReplace       = "replace"
	KindDelete        = "delete"
	KindInsert        = "insert"
	KindStyleElement  = "style-element"
)

// List is an ordered change list. Order is significant and preserved.
type List []Op

// UnmarshalJSON captures the raw object bytes alongside the typed fields so
// Raw is always populated, even for unknown ops.
func (o *Op) UnmarshalJSON(data []byte) error {
	type alias Op // avoid infinite recursion into UnmarshalJSON
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*o = Op(a)
	o.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON emits Raw verbatim when it is set, so a failure report shows
// the op exactly as the model sent it, unknown fields included. An Op built
// in code (no Raw) is encoded from its typed fields.
func (o Op) MarshalJSON() ([]byte, error) {
	if len(o.Raw) > 0 {
		return o.Raw, nil
	}
	type alias Op // avoid infinite recursion into MarshalJSON
	return json.Marshal(alias(o))
}

// FailedOp is a change-list operation that could not be applied, paired with
// a short human-readable reason (spec.md §3 "Failed operation record").
type FailedOp struct {
	Op     Op     `json:"op"`
	Reason string `json:"reason"`
}

// Failures is an ordered list of FailedOp, in the order operations were
// attempted.
type Failures []FailedOp
