package http

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nurpe/ppl-catering/internal/model"
)

type memContracts struct {
	items map[int64]*model.Contract
	links map[int64]map[int64]int64
}

func (m *memContracts) List(context.Context, model.ContractFilter) ([]model.Contract, int64, error) {
	var out []model.Contract
	for _, c := range m.items {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (m *memContracts) Get(_ context.Context, id int64) (*model.Contract, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *memContracts) GetThirdParty(_ context.Context, id int64) (*model.ThirdParty, error) {
	if id != 1 {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.ThirdParty{ID: 1, Name: "Proveedor"}, nil
}

func (m *memContracts) ListZones(context.Context, int64) ([]model.Zone, error) {
	return []model.Zone{{ID: 1, Name: "Norte"}}, nil
}

func (m *memContracts) ZoneLinks(_ context.Context, id int64) (map[int64]int64, error) {
	return m.links[id], nil
}

func (m *memContracts) Create(_ context.Context, c model.Contract, _ []int64) (int64, error) {
	c.ID = int64(len(m.items) + 1)
	m.items[c.ID] = &c
	return c.ID, nil
}

func (m *memContracts) Update(_ context.Context, c model.Contract, _, _ []int64) error {
	c.Status = m.items[c.ID].Status
	m.items[c.ID] = &c
	return nil
}

func (m *memContracts) UpdateStatus(_ context.Context, id int64, status model.ContractStatus) error {
	m.items[id].Status = status
	return nil
}

func (m *memContracts) DeleteCascade(_ context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

type memCatalog struct {
	recipes []model.Recipe
}

func (m *memCatalog) ListThirdParties(context.Context, string) ([]model.ThirdParty, error) {
	return []model.ThirdParty{{ID: 1, Name: "Proveedor"}}, nil
}

func (m *memCatalog) ListZones(context.Context) ([]model.Zone, error) {
	return []model.Zone{{ID: 1, Name: "Norte"}}, nil
}

func (m *memCatalog) CountZones(_ context.Context, ids []int64) (int64, error) {
	return int64(len(ids)), nil
}

func (m *memCatalog) ListUnits(context.Context, int64, []int64) ([]model.ServiceUnit, error) {
	return []model.ServiceUnit{{ID: 1, Name: "U1", ZoneID: 1}, {ID: 2, Name: "U2", ZoneID: 1}}, nil
}

func (m *memCatalog) GetUnits(_ context.Context, ids []int64) ([]model.ServiceUnit, error) {
	var out []model.ServiceUnit
	for _, id := range ids {
		if id == 1 || id == 2 {
			out = append(out, model.ServiceUnit{ID: id, Name: "U"})
		}
	}
	return out, nil
}

func (m *memCatalog) ListRecipesByUnit(_ context.Context, unitID int64, _ *model.ServiceClass) ([]model.Recipe, error) {
	var out []model.Recipe
	for _, r := range m.recipes {
		if r.UnitID == unitID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memCatalog) ListRecipesForContract(context.Context, int64) ([]model.Recipe, error) {
	return m.recipes, nil
}

func (m *memCatalog) RecipesByRelation(_ context.Context, ids []int64) ([]model.Recipe, error) {
	var out []model.Recipe
	for _, id := range ids {
		for _, r := range m.recipes {
			if r.RelationID == id {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func (m *memCatalog) GetRecipe(_ context.Context, id int64) (*model.Recipe, error) {
	for _, r := range m.recipes {
		if r.RelationID == id {
			copied := r
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memCatalog) GetProduct(_ context.Context, id int64) (*model.Product, error) {
	return &model.Product{ID: id, Name: "Producto"}, nil
}

type memAssignments struct {
	rows   map[int64][]model.Assignment
	nextID int64
}

func (m *memAssignments) ListAssignmentsByUnit(_ context.Context, _ int64, unitID int64) ([]model.Assignment, error) {
	return append([]model.Assignment(nil), m.rows[unitID]...), nil
}

func (m *memAssignments) ApplyDelta(_ context.Context, contractID, unitID int64, deleteIDs, inserts []int64) error {
	drop := map[int64]bool{}
	for _, id := range deleteIDs {
		drop[id] = true
	}
	var kept []model.Assignment
	for _, row := range m.rows[unitID] {
		if !drop[row.ID] {
			kept = append(kept, row)
		}
	}
	for _, relationID := range inserts {
		m.nextID++
		kept = append(kept, model.Assignment{ID: m.nextID, ProductRelationID: relationID, ContractID: contractID, UnitID: unitID})
	}
	m.rows[unitID] = kept
	return nil
}

func (m *memAssignments) ListRowsForContract(context.Context, int64) ([]model.AssignmentRow, error) {
	var out []model.AssignmentRow
	for _, rows := range m.rows {
		for _, row := range rows {
			out = append(out, model.AssignmentRow{ID: row.ID, ZoneName: "Norte", UnitName: "U1"})
		}
	}
	return out, nil
}

type memMinutes struct {
	created []model.Minute
}

func (m *memMinutes) List(context.Context, int64, *int64, time.Time, time.Time) ([]model.Minute, error) {
	return m.created, nil
}

func (m *memMinutes) Create(_ context.Context, minute model.Minute) (int64, error) {
	m.created = append(m.created, minute)
	return int64(len(m.created)), nil
}
