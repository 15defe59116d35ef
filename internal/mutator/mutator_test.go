package mutator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthos/synthos/internal/annotator"
	"github.com/synthos/synthos/internal/changeop"
)

func annotate(t *testing.T, src string) string {
	t.Helper()
	res, err := annotator.Assign(src)
	require.NoError(t, err)
	return res.HTML
}

func TestApply_EmptyChangeListIsNoOp(t *testing.T) {
	src := annotate(t, `<html><body><p>A</p></body></html>`)

	out, failures, err := Apply(src, nil)
	require.NoError(t, err)
	assert.Empty(t, failures)
	assert.Equal(t, src, out)
}

func TestApply_SimpleUpdate(t *testing.T) {
	// html(0) head(1) body(2) p(3)
	src := annotate(t, `<html><body><p id="x">Old</p></body></html>`)

	out, failures, err := Apply(src, changeop.List{
		{Kind: changeop.KindUpdate, NodeID: "3", HTML: "New"},
	})
	require.NoError(t, err)
	assert.Empty(t, failures)
	assert.Contains(t, out, `<p id="x" data-node-id="3">New</p>`)
}

func TestApply_LockedElementResistsDelete(t *testing.T) {
	src := annotate(t, `<html><body><p data-locked="true">keep</p></body></html>`)

	out, failures, err := Apply(src, changeop.List{
		{Kind: changeop.KindDelete, NodeID: "3"},
	})
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0].Reason, "locked")
	assert.Contains(t, out, "keep")
}

func TestApply_UnlockedChildOfLockedParentCanBeReplaced(t *testing.T) {
	// html(0) head(1) body(2) div(3) p(4)
	src := annotate(t, `<html><body><div data-locked="true"><p>inner</p></div></body></html>`)

	out, failures, err := Apply(src, changeop.List{
		{Kind: changeop.KindReplace, NodeID: "4", HTML: "<span>inner2</span>"},
	})
	require.NoError(t, err)
	assert.Empty(t, failures)
	assert.Contains(t, out, "inner2")
	assert.Contains(t, out, `data-locked="true"`)
}

func TestApply_UpdateLockedChatMessagesStillAllowed(t *testing.T) {
	src := annotate(t, `<html><body><div id="chatMessages" data-locked="true"></div></body></html>`)

	out, failures, err := Apply(src, changeop.List{
		{Kind: changeop.KindUpdate, NodeID: "3", HTML: "<p>hi</p>"},
	})
	require.NoError(t, err)
	assert.Empty(t, failures)
	assert.Contains(t, out, "<p>hi</p>")
}

func TestApply_ReplaceLockedChatMessagesStillFails(t *testing.T) {
	src := annotate(t, `<html><body><div id="chatMessages" data-locked="true"></div></body></html>`)

	_, failures, err := Apply(src, changeop.List{
		{Kind: changeop.KindReplace, NodeID: "3", HTML: "<section></section>"},
	})
	require.NoError(t, err)
	require.Len(t, failures, 1)
}

func TestApply_NodeNotFoundRecordsFailure(t *testing.T) {
	src := annotate(t, `<html><body><p>A</p></body></html>`)

	_, failures, err := Apply(src, changeop.List{
		{Kind: changeop.KindUpdate, NodeID: "999", HTML: "New"},
	})
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0].Reason, "not found")
}

func TestApply_InsertPositions(t *testing.T) {
	// html(0) head(1) body(2) div(3) p(4)
	src := annotate(t, `<html><body><div><p>mid</p></div></body></html>`)

	out, failures, err := Apply(src, changeop.List{
		{Kind: changeop.KindInsert, ParentID: "3", Position: changeop.PositionPrepend, HTML: "<span>first</span>"},
		{Kind: changeop.KindInsert, ParentID: "3", Position: changeop.PositionAppend, HTML: "<span>last</span>"},
		{Kind: changeop.KindInsert, ParentID: "4", Position: changeop.PositionBefore, HTML: "<span>before</span>"},
		{Kind: changeop.KindInsert, ParentID: "4", Position: changeop.PositionAfter, HTML: "<span>after</span>"},
	})
	require.NoError(t, err)
	assert.Empty(t, failures)
	assert.Contains(t, out, "first")
	assert.Contains(t, out, "last")
	assert.Contains(t, out, "before")
	assert.Contains(t, out, "after")
}

func TestApply_InsertMissingParentRecordsFailure(t *testing.T) {
	src := annotate(t, `<html><body><div></div></body></html>`)

	_, failures, err := Apply(src, changeop.List{
		{Kind: changeop.KindInsert, ParentID: "999", Position: changeop.PositionAppend, HTML: "x"},
	})
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0].Reason, "parent")
}

func TestApply_StyleElementOverwritesExisting(t *testing.T) {
	src := annotate(t, `<html><body><p style="color:red">x</p></body></html>`)

	out, failures, err := Apply(src, changeop.List{
		{Kind: changeop.KindStyleElement, NodeID: "3", Style: "color:blue"},
	})
	require.NoError(t, err)
	assert.Empty(t, failures)
	assert.Contains(t, out, `style="color:blue"`)
	assert.NotContains(t, out, "color:red")
}

func TestApply_StyleElementLockedFails(t *testing.T) {
	src := annotate(t, `<html><body><p data-locked>x</p></body></html>`)

	_, failures, err := Apply(src, changeop.List{
		{Kind: changeop.KindStyleElement, NodeID: "3", Style: "color:blue"},
	})
	require.NoError(t, err)
	require.Len(t, failures, 1)
}

func TestApply_UnknownOpIsFatal(t *testing.T) {
	src := annotate(t, `<html><body><p>A</p></body></html>`)

	_, _, err := Apply(src, changeop.List{
		{Kind: "frobnicate", NodeID: "3"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, changeop.ErrUnknownOp)
}

func TestApply_UnknownPositionIsFatal(t *testing.T) {
	src := annotate(t, `<html><body><div></div></body></html>`)

	_, _, err := Apply(src, changeop.List{
		{Kind: changeop.KindInsert, ParentID: "3", Position: "sideways", HTML: "x"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, changeop.ErrUnknownPosition)
}
