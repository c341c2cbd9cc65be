package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/ppl-catering/internal/assignment"
	"github.com/nurpe/ppl-catering/internal/grouptable"
	"github.com/nurpe/ppl-catering/internal/model"
)

type assignmentFixture struct {
	contracts   *fakeContracts
	catalog     *fakeCatalog
	assignments *fakeAssignments
	svc         *AssignmentService
}

func newAssignmentFixture(status model.ContractStatus) assignmentFixture {
	contracts := newFakeContracts()
	contracts.add(model.Contract{ID: 1, Number: "CT-1", Status: status})
	catalog := &fakeCatalog{
		recipes: []model.Recipe{
			{RelationID: 10, UnitID: 1, UnitName: "U1", ZoneName: "Norte", Name: "Arepa", Category: "Harinas"},
			{RelationID: 11, UnitID: 1, UnitName: "U1", ZoneName: "Norte", Name: "Sopa", Category: "Sopas"},
			{RelationID: 12, UnitID: 1, UnitName: "U1", ZoneName: "Norte", Name: "Jugo", Category: "Bebidas"},
			{RelationID: 13, UnitID: 1, UnitName: "U1", ZoneName: "Norte", Name: "Pan", Category: "Harinas"},
			{RelationID: 20, UnitID: 2, UnitName: "U2", ZoneName: "Sur", Name: "Arroz", Category: "Granos"},
		},
		units: map[int64]model.ServiceUnit{
			1: {ID: 1, Name: "U1", ZoneID: 1},
			2: {ID: 2, Name: "U2", ZoneID: 2},
			3: {ID: 3, Name: "U3", ZoneID: 2},
		},
	}
	assignments := newFakeAssignments()
	svc := NewAssignmentService(contracts, catalog, assignments, assignment.NewDraftStore(time.Hour))
	return assignmentFixture{contracts: contracts, catalog: catalog, assignments: assignments, svc: svc}
}

func TestSaveReconcilesOnlyTheDifference(t *testing.T) {
	f := newAssignmentFixture(model.ContractStatusOpen)
	f.assignments.seed(1, 1, 100, 10)
	f.assignments.seed(1, 1, 101, 11)
	f.assignments.seed(1, 1, 102, 12)

	result, err := f.svc.Save(context.Background(), 1, []assignment.Group{
		{ContractID: 1, UnitID: 1, RelationIDs: []int64{11, 12, 13}},
	}, operator)
	require.NoError(t, err)

	require.Len(t, f.assignments.calls, 1)
	assert.Equal(t, []int64{100}, f.assignments.calls[0].deletes)
	assert.Equal(t, []int64{13}, f.assignments.calls[0].inserts)
	assert.Equal(t, []UnitResult{{UnitID: 1, Inserted: 1, Deleted: 1, Kept: 2}}, result.Units)
	assert.Equal(t, []int64{11, 12, 13}, f.assignments.relations(1))

	rows, err := f.svc.ListByUnit(context.Background(), 1, 1)
	require.NoError(t, err)
	ids := map[int64]int64{}
	for _, row := range rows {
		ids[row.ProductRelationID] = row.ID
	}
	assert.Equal(t, int64(101), ids[11])
	assert.Equal(t, int64(102), ids[12])
}

func TestSaveIsIdempotent(t *testing.T) {
	f := newAssignmentFixture(model.ContractStatusInProduction)
	f.assignments.seed(1, 1, 100, 10)
	f.assignments.seed(1, 1, 101, 11)

	group := assignment.Group{ContractID: 1, UnitID: 1, RelationIDs: []int64{11, 10, 10}}
	result, err := f.svc.Save(context.Background(), 1, []assignment.Group{group}, operator)
	require.NoError(t, err)
	assert.Empty(t, f.assignments.calls)
	assert.Equal(t, 2, result.Units[0].Kept)
}

func TestSaveCollapsesGroupsForTheSameUnit(t *testing.T) {
	f := newAssignmentFixture(model.ContractStatusOpen)

	_, err := f.svc.Save(context.Background(), 1, []assignment.Group{
		{UnitID: 1, RelationIDs: []int64{10}},
		{UnitID: 2, RelationIDs: []int64{20}},
		{UnitID: 1, RelationIDs: []int64{11}},
	}, operator)
	require.NoError(t, err)
	assert.Equal(t, []int64{11}, f.assignments.relations(1))
	assert.Equal(t, []int64{20}, f.assignments.relations(2))
	assert.Len(t, f.assignments.calls, 2)
}

func TestSaveRejections(t *testing.T) {
	f := newAssignmentFixture(model.ContractStatusInactive)
	ctx := context.Background()
	groups := []assignment.Group{{UnitID: 1, RelationIDs: []int64{10}}}

	_, err := f.svc.Save(ctx, 1, groups, viewer)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = f.svc.Save(ctx, 1, groups, operator)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.Save(ctx, 9, groups, operator)
	assert.ErrorIs(t, err, ErrNotFound)

	f = newAssignmentFixture(model.ContractStatusOpen)
	_, err = f.svc.Save(ctx, 1, []assignment.Group{{ContractID: 2, UnitID: 1}}, operator)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.svc.Save(ctx, 1, []assignment.Group{{UnitID: 0}}, operator)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSaveRejectsUnknownUnitsAndRecipes(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		group assignment.Group
	}{
		{name: "unit outside the contract", group: assignment.Group{UnitID: 77, RelationIDs: []int64{10}}},
		{name: "negative recipe id", group: assignment.Group{UnitID: 1, RelationIDs: []int64{10, -3}}},
		{name: "zero recipe id", group: assignment.Group{UnitID: 1, RelationIDs: []int64{0}}},
		{name: "unknown recipe", group: assignment.Group{UnitID: 1, RelationIDs: []int64{10, 999}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAssignmentFixture(model.ContractStatusOpen)
			f.assignments.seed(1, 1, 100, 11)

			_, err := f.svc.Save(ctx, 1, []assignment.Group{tt.group}, operator)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, f.assignments.calls)
			assert.Equal(t, []int64{11}, f.assignments.relations(1))
		})
	}

	f := newAssignmentFixture(model.ContractStatusOpen)
	f.assignments.seed(1, 1, 100, 11)
	_, err := f.svc.Save(ctx, 1, []assignment.Group{{UnitID: 1}}, operator)
	require.NoError(t, err)
	assert.Empty(t, f.assignments.relations(1))
}

func TestTreeGroupsCatalogWithSelection(t *testing.T) {
	f := newAssignmentFixture(model.ContractStatusOpen)

	view, err := f.svc.Tree(context.Background(), 1, nil, []int64{10, 11, 12, 13}, grouptable.KeyByPath, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultGroupBy, view.GroupBy)
	require.Len(t, view.Groups, 2)
	assert.Equal(t, "Norte", view.Groups[0].Label)
	assert.Equal(t, 4, view.Groups[0].TotalItems)
	assert.Equal(t, grouptable.Checked, view.Groups[0].State)
	assert.Equal(t, grouptable.Unchecked, view.Groups[1].State)
	assert.Equal(t, grouptable.Indeterminate, view.State)

	_, err = f.svc.Tree(context.Background(), 1, []string{"color"}, nil, grouptable.KeyByPath, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDraftSelectingAnotherUnitRaisesNotice(t *testing.T) {
	f := newAssignmentFixture(model.ContractStatusOpen)
	ctx := context.Background()

	draft, err := f.svc.CreateDraft(ctx, 1, operator)
	require.NoError(t, err)

	res, err := f.svc.SelectRecipe(ctx, draft.ID, 10, operator)
	require.NoError(t, err)
	assert.Empty(t, res.Notices)

	res, err = f.svc.SelectRecipe(ctx, draft.ID, 20, operator)
	require.NoError(t, err)
	require.Len(t, res.Notices, 1)
	assert.Equal(t, []int64{10}, res.Notices[0].Deselected)
	assert.Equal(t, []int64{20}, draft.SelectedIDs())

	_, err = f.svc.SelectRecipe(ctx, draft.ID, 999, operator)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDraftToggleGroupOverridesPartialSelection(t *testing.T) {
	f := newAssignmentFixture(model.ContractStatusOpen)
	ctx := context.Background()
	draft, err := f.svc.CreateDraft(ctx, 1, operator)
	require.NoError(t, err)

	_, err = f.svc.SelectRecipe(ctx, draft.ID, 11, operator)
	require.NoError(t, err)

	groupBy := []string{FieldZone, FieldCategory}
	res, err := f.svc.ToggleGroup(ctx, draft.ID, groupBy, []string{"Norte", "Harinas"}, true, operator)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11, 13}, draft.SelectedIDs())
	require.NotNil(t, res.Tree)
	assert.Equal(t, grouptable.Indeterminate, res.Tree.Groups[0].State)

	_, err = f.svc.ToggleGroup(ctx, draft.ID, groupBy, []string{"Norte"}, false, operator)
	require.NoError(t, err)
	assert.Empty(t, draft.SelectedIDs())

	_, err = f.svc.ToggleGroup(ctx, draft.ID, groupBy, []string{"Oeste"}, true, operator)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDraftToggleGroupSpanningUnits(t *testing.T) {
	f := newAssignmentFixture(model.ContractStatusOpen)
	f.catalog.recipes = append(f.catalog.recipes, model.Recipe{
		RelationID: 30, UnitID: 3, UnitName: "U3", ZoneName: "Norte", Name: "Tamal", Category: "Harinas",
	})
	ctx := context.Background()
	draft, err := f.svc.CreateDraft(ctx, 1, operator)
	require.NoError(t, err)
	_, err = f.svc.SelectRecipe(ctx, draft.ID, 11, operator)
	require.NoError(t, err)

	groupBy := []string{FieldZone, FieldUnit}
	_, err = f.svc.ToggleGroup(ctx, draft.ID, groupBy, []string{"Norte"}, true, operator)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, []int64{11}, draft.SelectedIDs())

	res, err := f.svc.ToggleGroup(ctx, draft.ID, groupBy, []string{"Norte", "U1"}, true, operator)
	require.NoError(t, err)
	assert.Empty(t, res.Notices)
	assert.Equal(t, []int64{10, 11, 12, 13}, draft.SelectedIDs())
	assert.Equal(t, grouptable.Checked, res.Tree.Groups[0].Children[0].State)

	_, err = f.svc.ToggleGroup(ctx, draft.ID, groupBy, []string{"Norte"}, false, operator)
	require.NoError(t, err)
	assert.Empty(t, draft.SelectedIDs())
}

func TestDraftBelongsToItsOwner(t *testing.T) {
	f := newAssignmentFixture(model.ContractStatusOpen)
	ctx := context.Background()
	draft, err := f.svc.CreateDraft(ctx, 1, operator)
	require.NoError(t, err)
	assert.Equal(t, operator.UserID, draft.Owner)

	other := model.Principal{UserID: "op-2", Role: model.RoleOperator}
	_, err = f.svc.GetDraft(draft.ID, other)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = f.svc.SelectRecipe(ctx, draft.ID, 10, other)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	_, err = f.svc.SaveDraft(ctx, draft.ID, other)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.ErrorIs(t, f.svc.DiscardDraft(draft.ID, other), ErrPermissionDenied)
	assert.Empty(t, draft.SelectedIDs())

	_, err = f.svc.GetDraft(draft.ID, admin)
	require.NoError(t, err)
	require.NoError(t, f.svc.DiscardDraft(draft.ID, operator))
}

func TestDraftAssignRemoveAndSave(t *testing.T) {
	f := newAssignmentFixture(model.ContractStatusOpen)
	f.assignments.seed(1, 3, 300, 12)
	ctx := context.Background()
	draft, err := f.svc.CreateDraft(ctx, 1, operator)
	require.NoError(t, err)

	for _, id := range []int64{10, 11, 12} {
		_, err = f.svc.SelectRecipe(ctx, draft.ID, id, operator)
		require.NoError(t, err)
	}
	res, err := f.svc.AssignUnits(ctx, draft.ID, []int64{3, 2}, operator)
	require.NoError(t, err)
	assert.Len(t, res.Groups, 2)

	_, err = f.svc.AssignUnits(ctx, draft.ID, []int64{42}, operator)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.RemoveUnit(ctx, draft.ID, 3, operator)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11}, draft.SelectedIDs())
	require.Len(t, draft.Groups(), 1)
	assert.Equal(t, int64(2), draft.Groups()[0].UnitID)

	saved, err := f.svc.SaveDraft(ctx, draft.ID, operator)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ContractID)
	assert.Equal(t, []int64{10, 11, 12}, f.assignments.relations(2))
	assert.Empty(t, draft.Groups())

	_, err = f.svc.SaveDraft(ctx, draft.ID, operator)
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, f.svc.DiscardDraft(draft.ID, operator))
	_, err = f.svc.GetDraft(draft.ID, operator)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateDraftRequiresWritableContract(t *testing.T) {
	f := newAssignmentFixture(model.ContractStatusInactive)
	_, err := f.svc.CreateDraft(context.Background(), 1, operator)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.CreateDraft(context.Background(), 1, viewer)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
