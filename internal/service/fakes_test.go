package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nurpe/ppl-catering/internal/model"
)

type fakeContracts struct {
	contracts   map[int64]*model.Contract
	thirdParty  map[int64]*model.ThirdParty
	zones       map[int64][]model.Zone
	links       map[int64]map[int64]int64
	statusCalls []model.ContractStatus
	deleted     []int64
	updated     struct {
		drop []int64
		add  []int64
	}
	nextID int64
}

func newFakeContracts() *fakeContracts {
	return &fakeContracts{
		contracts:  map[int64]*model.Contract{},
		thirdParty: map[int64]*model.ThirdParty{1: {ID: 1, Name: "Proveedor"}},
		zones:      map[int64][]model.Zone{},
		links:      map[int64]map[int64]int64{},
		nextID:     100,
	}
}

func (f *fakeContracts) add(c model.Contract) {
	copied := c
	f.contracts[c.ID] = &copied
}

func (f *fakeContracts) List(_ context.Context, filter model.ContractFilter) ([]model.Contract, int64, error) {
	var out []model.Contract
	for _, c := range f.contracts {
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(c.Number), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeContracts) Get(_ context.Context, id int64) (*model.Contract, error) {
	c, ok := f.contracts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeContracts) GetThirdParty(_ context.Context, id int64) (*model.ThirdParty, error) {
	tp, ok := f.thirdParty[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return tp, nil
}

func (f *fakeContracts) ListZones(_ context.Context, contractID int64) ([]model.Zone, error) {
	return f.zones[contractID], nil
}

func (f *fakeContracts) ZoneLinks(_ context.Context, contractID int64) (map[int64]int64, error) {
	links := make(map[int64]int64)
	for zoneID, rowID := range f.links[contractID] {
		links[zoneID] = rowID
	}
	return links, nil
}

func (f *fakeContracts) Create(_ context.Context, c model.Contract, zoneIDs []int64) (int64, error) {
	f.nextID++
	c.ID = f.nextID
	f.add(c)
	f.links[c.ID] = map[int64]int64{}
	for i, zoneID := range zoneIDs {
		f.links[c.ID][zoneID] = int64(1000 + i)
	}
	return c.ID, nil
}

func (f *fakeContracts) Update(_ context.Context, c model.Contract, dropLinkIDs, addZoneIDs []int64) error {
	c.Status = f.contracts[c.ID].Status
	f.add(c)
	f.updated.drop = dropLinkIDs
	f.updated.add = addZoneIDs
	return nil
}

func (f *fakeContracts) UpdateStatus(_ context.Context, id int64, status model.ContractStatus) error {
	f.statusCalls = append(f.statusCalls, status)
	f.contracts[id].Status = status
	return nil
}

func (f *fakeContracts) DeleteCascade(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	delete(f.contracts, id)
	return nil
}

type fakeCatalog struct {
	recipes  []model.Recipe
	units    map[int64]model.ServiceUnit
	products map[int64]model.Product
	zones    int64
}

func (f *fakeCatalog) ListThirdParties(context.Context, string) ([]model.ThirdParty, error) {
	return nil, nil
}

func (f *fakeCatalog) ListZones(context.Context) ([]model.Zone, error) {
	return nil, nil
}

func (f *fakeCatalog) CountZones(_ context.Context, ids []int64) (int64, error) {
	if f.zones == 0 {
		return int64(len(ids)), nil
	}
	return f.zones, nil
}

func (f *fakeCatalog) ListUnits(_ context.Context, _ int64, _ []int64) ([]model.ServiceUnit, error) {
	var out []model.ServiceUnit
	for _, u := range f.units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCatalog) GetUnits(_ context.Context, ids []int64) ([]model.ServiceUnit, error) {
	var out []model.ServiceUnit
	for _, id := range ids {
		if u, ok := f.units[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeCatalog) ListRecipesByUnit(_ context.Context, unitID int64, class *model.ServiceClass) ([]model.Recipe, error) {
	var out []model.Recipe
	for _, r := range f.recipes {
		if r.UnitID == unitID && (class == nil || r.ServiceClass == *class) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeCatalog) ListRecipesForContract(context.Context, int64) ([]model.Recipe, error) {
	return f.recipes, nil
}

func (f *fakeCatalog) RecipesByRelation(_ context.Context, ids []int64) ([]model.Recipe, error) {
	want := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []model.Recipe
	for _, r := range f.recipes {
		if _, ok := want[r.RelationID]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetRecipe(_ context.Context, id int64) (*model.Recipe, error) {
	for _, r := range f.recipes {
		if r.RelationID == id {
			copied := r
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCatalog) GetProduct(_ context.Context, id int64) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

type deltaCall struct {
	unitID  int64
	deletes []int64
	inserts []int64
}

// fakeAssignments keeps persisted rows per unit and applies deltas the way
// the repository does.
type fakeAssignments struct {
	rows   map[int64][]model.Assignment
	calls  []deltaCall
	nextID int64
}

func newFakeAssignments() *fakeAssignments {
	return &fakeAssignments{rows: map[int64][]model.Assignment{}, nextID: 500}
}

func (f *fakeAssignments) seed(contractID, unitID int64, rowID, relationID int64) {
	f.rows[unitID] = append(f.rows[unitID], model.Assignment{
		ID: rowID, ProductRelationID: relationID, ContractID: contractID, UnitID: unitID, Active: true,
	})
}

func (f *fakeAssignments) relations(unitID int64) []int64 {
	var ids []int64
	for _, row := range f.rows[unitID] {
		ids = append(ids, row.ProductRelationID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (f *fakeAssignments) ListAssignmentsByUnit(_ context.Context, _ int64, unitID int64) ([]model.Assignment, error) {
	return append([]model.Assignment(nil), f.rows[unitID]...), nil
}

func (f *fakeAssignments) ApplyDelta(_ context.Context, contractID, unitID int64, deleteIDs, insertRelationIDs []int64) error {
	f.calls = append(f.calls, deltaCall{unitID: unitID, deletes: deleteIDs, inserts: insertRelationIDs})
	drop := make(map[int64]struct{}, len(deleteIDs))
	for _, id := range deleteIDs {
		drop[id] = struct{}{}
	}
	kept := f.rows[unitID][:0]
	for _, row := range f.rows[unitID] {
		if _, ok := drop[row.ID]; !ok {
			kept = append(kept, row)
		}
	}
	f.rows[unitID] = kept
	for _, relationID := range insertRelationIDs {
		f.nextID++
		f.seed(contractID, unitID, f.nextID, relationID)
	}
	return nil
}

func (f *fakeAssignments) ListRowsForContract(context.Context, int64) ([]model.AssignmentRow, error) {
	var out []model.AssignmentRow
	for _, rows := range f.rows {
		for _, row := range rows {
			out = append(out, model.AssignmentRow{ID: row.ID, ProductName: row.ProductName})
		}
	}
	return out, nil
}

type fakeMinutes struct {
	created []model.Minute
	rows    []model.Minute
	from    time.Time
	to      time.Time
}

func (f *fakeMinutes) List(_ context.Context, _ int64, _ *int64, from, to time.Time) ([]model.Minute, error) {
	f.from, f.to = from, to
	return f.rows, nil
}

func (f *fakeMinutes) Create(_ context.Context, m model.Minute) (int64, error) {
	f.created = append(f.created, m)
	return int64(len(f.created)), nil
}

var (
	admin    = model.Principal{UserID: "admin", Role: model.RoleAdmin}
	operator = model.Principal{UserID: "op", Role: model.RoleOperator}
	viewer   = model.Principal{UserID: "viewer", Role: model.RoleViewer}
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
