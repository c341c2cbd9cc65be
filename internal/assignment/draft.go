package assignment

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/ppl-catering/internal/model"
)

// Lookup reads persisted state needed when a unit leaves the draft.
type Lookup interface {
	ListAssignmentsByUnit(ctx context.Context, contractID, unitID int64) ([]model.Assignment, error)
	RecipesByRelation(ctx context.Context, relationIDs []int64) ([]model.Recipe, error)
}

type Unit struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

// Group is the desired recipe set of one unit under one contract.
type Group struct {
	ContractID  int64   `json:"id_contrato"`
	UnitID      int64   `json:"id_unidad_servicio"`
	UnitName    string  `json:"nombre_unidad"`
	RelationIDs []int64 `json:"productos"`
}

func (g Group) key() groupKey {
	return groupKey{unitID: g.UnitID, contractID: g.ContractID}
}

type groupKey struct {
	unitID     int64
	contractID int64
}

// Notice tells the operator that a selection change discarded other recipes.
type Notice struct {
	Message    string  `json:"message"`
	Deselected []int64 `json:"deselected"`
}

type Draft struct {
	ID         uuid.UUID
	ContractID int64
	// Owner is the user id of the operator who opened the draft.
	Owner string

	mu        sync.Mutex
	selected  map[int64]model.Recipe
	groups    []Group
	updatedAt time.Time
}

func NewDraft(contractID int64, owner string) *Draft {
	return &Draft{
		ID:         uuid.New(),
		ContractID: contractID,
		Owner:      owner,
		selected:   make(map[int64]model.Recipe),
		updatedAt:  time.Now(),
	}
}

// SelectRecipe adds recipe to the selection. The selection is scoped to one
// unit's recipe set: recipes of any other unit are dropped first and a notice
// describing them is returned.
func (d *Draft) SelectRecipe(recipe model.Recipe) *Notice {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.touch()

	var dropped []model.Recipe
	for id, current := range d.selected {
		if current.UnitID != recipe.UnitID {
			dropped = append(dropped, current)
			delete(d.selected, id)
		}
	}
	d.selected[recipe.RelationID] = recipe

	if len(dropped) == 0 {
		return nil
	}
	sort.Slice(dropped, func(i, j int) bool { return dropped[i].RelationID < dropped[j].RelationID })
	ids := make([]int64, 0, len(dropped))
	names := make([]string, 0, len(dropped))
	for _, r := range dropped {
		ids = append(ids, r.RelationID)
		names = append(names, r.Name)
	}
	unit := dropped[0].UnitName
	if unit == "" {
		unit = fmt.Sprintf("unidad %d", dropped[0].UnitID)
	}
	return &Notice{
		Message: fmt.Sprintf(
			"se deseleccionaron %d receta(s) de %s (%s): solo se pueden seleccionar recetas de una unidad a la vez",
			len(dropped), unit, strings.Join(names, ", "),
		),
		Deselected: ids,
	}
}

func (d *Draft) DeselectRecipe(relationID int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.touch()
	if _, ok := d.selected[relationID]; !ok {
		return false
	}
	delete(d.selected, relationID)
	return true
}

// Assign appends one group per unit holding every selected recipe. A group
// for a (unit, contract) pair already in the draft is replaced in place.
func (d *Draft) Assign(units []Unit) ([]Group, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.touch()

	if len(d.selected) == 0 {
		return nil, fmt.Errorf("no recipes selected")
	}
	if len(units) == 0 {
		return nil, fmt.Errorf("no units selected")
	}

	relationIDs := d.selectedIDsLocked()
	added := make([]Group, 0, len(units))
	for _, unit := range units {
		group := Group{
			ContractID:  d.ContractID,
			UnitID:      unit.ID,
			UnitName:    unit.Name,
			RelationIDs: append([]int64(nil), relationIDs...),
		}
		d.putGroupLocked(group)
		added = append(added, group)
	}
	return added, nil
}

func (d *Draft) putGroupLocked(group Group) {
	for i := range d.groups {
		if d.groups[i].key() == group.key() {
			d.groups[i] = group
			return
		}
	}
	d.groups = append(d.groups, group)
}

// RemoveUnit takes a unit out of the draft: its persisted recipes are
// removed from the selection and its pending group is discarded.
func (d *Draft) RemoveUnit(ctx context.Context, unitID int64, lookup Lookup) error {
	persisted, err := lookup.ListAssignmentsByUnit(ctx, d.ContractID, unitID)
	if err != nil {
		return err
	}
	relationIDs := make([]int64, 0, len(persisted))
	for _, a := range persisted {
		relationIDs = append(relationIDs, a.ProductRelationID)
	}
	var recipes []model.Recipe
	if len(relationIDs) > 0 {
		recipes, err = lookup.RecipesByRelation(ctx, relationIDs)
		if err != nil {
			return err
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.touch()
	for _, recipe := range recipes {
		delete(d.selected, recipe.RelationID)
	}
	kept := d.groups[:0]
	for _, group := range d.groups {
		if group.UnitID != unitID {
			kept = append(kept, group)
		}
	}
	d.groups = kept
	return nil
}

func (d *Draft) Groups() []Group {
	d.mu.Lock()
	defer d.mu.Unlock()
	result := make([]Group, len(d.groups))
	copy(result, d.groups)
	return result
}

func (d *Draft) Selected() []model.Recipe {
	d.mu.Lock()
	defer d.mu.Unlock()
	result := make([]model.Recipe, 0, len(d.selected))
	for _, id := range d.selectedIDsLocked() {
		result = append(result, d.selected[id])
	}
	return result
}

func (d *Draft) SelectedIDs() []int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selectedIDsLocked()
}

func (d *Draft) selectedIDsLocked() []int64 {
	ids := make([]int64, 0, len(d.selected))
	for id := range d.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ClearGroups drops every pending group, typically after a successful save.
func (d *Draft) ClearGroups() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.touch()
	d.groups = nil
}

func (d *Draft) UpdatedAt() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updatedAt
}

func (d *Draft) touch() {
	d.updatedAt = time.Now()
}

type DraftView struct {
	ID         uuid.UUID      `json:"id"`
	ContractID int64          `json:"id_contrato"`
	Owner      string         `json:"usuario"`
	Selected   []model.Recipe `json:"seleccionadas"`
	Groups     []Group        `json:"grupos"`
}

func (d *Draft) View() DraftView {
	return DraftView{
		ID:         d.ID,
		ContractID: d.ContractID,
		Owner:      d.Owner,
		Selected:   d.Selected(),
		Groups:     d.Groups(),
	}
}
