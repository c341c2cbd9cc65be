package grouptable

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyTo(sel Selection) ChangeFunc {
	return func(id int64, selected bool) {
		if selected {
			sel[id] = struct{}{}
		} else {
			delete(sel, id)
		}
	}
}

func TestGroupState(t *testing.T) {
	tree := Build(sampleRows(), []string{"zona", "unidad"}, KeyByPath)
	norte := tree.Groups[0]

	assert.Equal(t, Unchecked, GroupState(norte, NewSelection()))
	assert.Equal(t, Indeterminate, GroupState(norte, NewSelection(1)))
	assert.Equal(t, Checked, GroupState(norte, NewSelection(1, 2, 3, 99)))
	assert.Equal(t, Unchecked, State(nil, NewSelection(1)))
}

func TestToggleGroupOverridesPartialState(t *testing.T) {
	tree := Build(sampleRows(), []string{"zona", "unidad"}, KeyByPath)
	norte := tree.Groups[0]

	sel := NewSelection(2, 4)
	ToggleGroup(norte, true, applyTo(sel))
	for _, leaf := range norte.Leaves() {
		assert.True(t, sel.Has(leaf.ID))
	}
	assert.True(t, sel.Has(4), "rows outside the group are untouched")
	assert.Equal(t, Checked, GroupState(norte, sel))

	ToggleGroup(norte, false, applyTo(sel))
	for _, leaf := range norte.Leaves() {
		assert.False(t, sel.Has(leaf.ID))
	}
	assert.Equal(t, Unchecked, GroupState(norte, sel))
	assert.True(t, sel.Has(4))
}

func TestToggleGroupEmitsOneEventPerLeaf(t *testing.T) {
	tree := Build(sampleRows(), []string{"zona", "unidad"}, KeyByPath)
	var events []int64
	ToggleGroup(tree.Groups[0], true, func(id int64, selected bool) {
		require.True(t, selected)
		events = append(events, id)
	})
	assert.Equal(t, []int64{1, 2, 3}, events)
}

func TestToggleRowAndAll(t *testing.T) {
	rows := sampleRows()
	sel := NewSelection(1)

	ToggleRow(1, sel, applyTo(sel))
	assert.False(t, sel.Has(1))
	ToggleRow(5, sel, applyTo(sel))
	assert.True(t, sel.Has(5))

	filtered := Filter(rows, "sur", "zona")
	ToggleAll(filtered, true, applyTo(sel))
	assert.True(t, sel.Has(4))
	assert.True(t, sel.Has(6))
	assert.False(t, sel.Has(2))
}

func TestFilterAndPaginate(t *testing.T) {
	rows := sampleRows()
	assert.Len(t, Filter(rows, "PATIO 1"), 3)
	assert.Len(t, Filter(rows, "  "), 6)
	assert.Empty(t, Filter(rows, "oeste", "zona"))

	page := Paginate(rows, 2, 4)
	require.Len(t, page, 2)
	assert.Equal(t, int64(5), page[0].ID)
	assert.Empty(t, Paginate(rows, 5, 4))
	assert.Len(t, Paginate(rows, 0, 0), 6)
	assert.Empty(t, Paginate(rows, math.MaxInt, 4))
	assert.Empty(t, Paginate(rows, math.MaxInt/2, 3))
}

func TestViewResolvesStates(t *testing.T) {
	tree := Build(sampleRows(), []string{"zona", "unidad"}, KeyByPath)
	exp := NewExpansion()
	exp.Set(tree.Groups[0], true)

	view := tree.View(NewSelection(1, 2), exp)
	assert.Equal(t, 6, view.Total)
	assert.Equal(t, Indeterminate, view.State)
	require.Len(t, view.Groups, 3)
	assert.True(t, view.Groups[0].Expanded)
	assert.Equal(t, Indeterminate, view.Groups[0].State)
	assert.Equal(t, Checked, view.Groups[0].Children[0].State)
	assert.Equal(t, []int64{1, 2}, view.Groups[0].Children[0].RowIDs)
}
