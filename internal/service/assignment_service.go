package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nurpe/ppl-catering/internal/assignment"
	"github.com/nurpe/ppl-catering/internal/grouptable"
	"github.com/nurpe/ppl-catering/internal/metrics"
	"github.com/nurpe/ppl-catering/internal/model"
)

// Recipe tree fields accepted in group_by.
const (
	FieldZone          = "zona"
	FieldUnit          = "unidad"
	FieldCategory      = "categoria"
	FieldSubline       = "sublinea"
	FieldMenuComponent = "componente_menu"
	FieldServiceClass  = "clase_servicio"
	FieldProduct       = "producto"
)

var (
	DefaultGroupBy = []string{FieldZone, FieldUnit}

	knownFields = map[string]struct{}{
		FieldZone:          {},
		FieldUnit:          {},
		FieldCategory:      {},
		FieldSubline:       {},
		FieldMenuComponent: {},
		FieldServiceClass:  {},
		FieldProduct:       {},
	}
)

type AssignmentService struct {
	contracts   ContractStore
	catalog     CatalogStore
	assignments AssignmentStore
	drafts      *assignment.DraftStore
}

type UnitResult struct {
	UnitID   int64 `json:"id_unidad_servicio"`
	Inserted int   `json:"insertados"`
	Deleted  int   `json:"eliminados"`
	Kept     int   `json:"sin_cambios"`
}

type SaveResult struct {
	ContractID int64        `json:"id_contrato"`
	Units      []UnitResult `json:"unidades"`
}

type DraftResult struct {
	Draft   assignment.DraftView `json:"draft"`
	Notices []assignment.Notice  `json:"notices,omitempty"`
	Groups  []assignment.Group   `json:"added,omitempty"`
	Tree    *grouptable.TreeView `json:"tree,omitempty"`
}

func NewAssignmentService(
	contracts ContractStore,
	catalog CatalogStore,
	assignments AssignmentStore,
	drafts *assignment.DraftStore,
) *AssignmentService {
	return &AssignmentService{
		contracts:   contracts,
		catalog:     catalog,
		assignments: assignments,
		drafts:      drafts,
	}
}

func (s *AssignmentService) ListByUnit(ctx context.Context, contractID, unitID int64) ([]model.Assignment, error) {
	if _, err := s.contracts.Get(ctx, contractID); err != nil {
		return nil, translate(err)
	}
	rows, err := s.assignments.ListAssignmentsByUnit(ctx, contractID, unitID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.Assignment{}
	}
	return rows, nil
}

// Save reconciles every group against the persisted rows of its
// (contract, unit) pair. Only the difference is written, so rows that stay
// assigned keep their ids. Groups sharing a unit collapse to the last one.
func (s *AssignmentService) Save(ctx context.Context, contractID int64, groups []assignment.Group, principal model.Principal) (*SaveResult, error) {
	if !principal.CanWrite() {
		return nil, ErrPermissionDenied
	}
	contract, err := s.contracts.Get(ctx, contractID)
	if err != nil {
		return nil, translate(err)
	}
	if contract.Status == model.ContractStatusInactive {
		return nil, fmt.Errorf("%w: contract is %s", ErrInvalidTransition, contract.Status)
	}

	ordered := make([]assignment.Group, 0, len(groups))
	index := make(map[int64]int, len(groups))
	for _, group := range groups {
		if group.ContractID != 0 && group.ContractID != contractID {
			return nil, fmt.Errorf("%w: group for unit %d belongs to contract %d", ErrInvalidInput, group.UnitID, group.ContractID)
		}
		if group.UnitID <= 0 {
			return nil, fmt.Errorf("%w: id_unidad_servicio is required", ErrInvalidInput)
		}
		if pos, ok := index[group.UnitID]; ok {
			ordered[pos] = group
			continue
		}
		index[group.UnitID] = len(ordered)
		ordered = append(ordered, group)
	}
	if err := s.validateGroups(ctx, contractID, ordered); err != nil {
		return nil, err
	}

	result := &SaveResult{ContractID: contractID, Units: make([]UnitResult, 0, len(ordered))}
	for _, group := range ordered {
		persisted, err := s.assignments.ListAssignmentsByUnit(ctx, contractID, group.UnitID)
		if err != nil {
			return result, err
		}
		existing := make([]assignment.Existing, 0, len(persisted))
		for _, row := range persisted {
			existing = append(existing, assignment.Existing{ID: row.ID, ProductRelationID: row.ProductRelationID})
		}

		delta := assignment.Diff(existing, group.RelationIDs)
		if !delta.Empty() {
			if err := s.assignments.ApplyDelta(ctx, contractID, group.UnitID, delta.DeleteIDs(), delta.Insert); err != nil {
				return result, translate(err)
			}
		}
		metrics.RecordReconcile(len(delta.Insert), len(delta.Delete), len(delta.Keep))
		result.Units = append(result.Units, UnitResult{
			UnitID:   group.UnitID,
			Inserted: len(delta.Insert),
			Deleted:  len(delta.Delete),
			Kept:     len(delta.Keep),
		})
	}
	return result, nil
}

// validateGroups checks every unit against the contract's zones and every
// relation id against the recipe catalog.
func (s *AssignmentService) validateGroups(ctx context.Context, contractID int64, groups []assignment.Group) error {
	var relationIDs []int64
	for _, group := range groups {
		for _, id := range group.RelationIDs {
			if id <= 0 {
				return fmt.Errorf("%w: invalid recipe id %d for unit %d", ErrInvalidInput, id, group.UnitID)
			}
			relationIDs = append(relationIDs, id)
		}
	}

	units, err := s.catalog.ListUnits(ctx, contractID, nil)
	if err != nil {
		return err
	}
	known := make(map[int64]struct{}, len(units))
	for _, u := range units {
		known[u.ID] = struct{}{}
	}
	for _, group := range groups {
		if _, ok := known[group.UnitID]; !ok {
			return fmt.Errorf("%w: unit %d is not part of the contract's zones", ErrInvalidInput, group.UnitID)
		}
	}

	relationIDs = uniqueIDs(relationIDs)
	if len(relationIDs) == 0 {
		return nil
	}
	recipes, err := s.catalog.RecipesByRelation(ctx, relationIDs)
	if err != nil {
		return err
	}
	found := make(map[int64]struct{}, len(recipes))
	for _, r := range recipes {
		found[r.RelationID] = struct{}{}
	}
	for _, id := range relationIDs {
		if _, ok := found[id]; !ok {
			return fmt.Errorf("%w: unknown recipe %d", ErrInvalidInput, id)
		}
	}
	return nil
}

// Tree groups the contract's recipe catalog by groupBy and resolves the
// tri-state selection of every group against selected.
func (s *AssignmentService) Tree(
	ctx context.Context,
	contractID int64,
	groupBy []string,
	selected []int64,
	mode grouptable.KeyMode,
	expanded []string,
) (*grouptable.TreeView, error) {
	tree, err := s.recipeTree(ctx, contractID, groupBy, mode)
	if err != nil {
		return nil, err
	}
	view := tree.View(grouptable.NewSelection(selected...), grouptable.NewExpansion(expanded...))
	return &view, nil
}

func (s *AssignmentService) recipeTree(ctx context.Context, contractID int64, groupBy []string, mode grouptable.KeyMode) (*grouptable.Tree, error) {
	if len(groupBy) == 0 {
		groupBy = DefaultGroupBy
	}
	for _, field := range groupBy {
		if _, ok := knownFields[field]; !ok {
			return nil, fmt.Errorf("%w: unknown group_by field %q", ErrInvalidInput, field)
		}
	}
	if _, err := s.contracts.Get(ctx, contractID); err != nil {
		return nil, translate(err)
	}
	recipes, err := s.catalog.ListRecipesForContract(ctx, contractID)
	if err != nil {
		return nil, err
	}
	return grouptable.Build(recipeRows(recipes), groupBy, mode), nil
}

func recipeRows(recipes []model.Recipe) []grouptable.Row {
	rows := make([]grouptable.Row, 0, len(recipes))
	for _, r := range recipes {
		rows = append(rows, grouptable.Row{
			ID: r.RelationID,
			Fields: map[string]string{
				FieldZone:          r.ZoneName,
				FieldUnit:          r.UnitName,
				FieldCategory:      r.Category,
				FieldSubline:       r.Subline,
				FieldMenuComponent: r.MenuComponent,
				FieldServiceClass:  string(r.ServiceClass),
				FieldProduct:       r.Name,
			},
		})
	}
	return rows
}

func (s *AssignmentService) CreateDraft(ctx context.Context, contractID int64, principal model.Principal) (*assignment.Draft, error) {
	if !principal.CanWrite() {
		return nil, ErrPermissionDenied
	}
	contract, err := s.contracts.Get(ctx, contractID)
	if err != nil {
		return nil, translate(err)
	}
	if contract.Status == model.ContractStatusInactive {
		return nil, fmt.Errorf("%w: contract is %s", ErrInvalidTransition, contract.Status)
	}
	return s.drafts.Create(contractID, principal.UserID), nil
}

// GetDraft returns the draft when principal opened it. Admins may reach any
// draft.
func (s *AssignmentService) GetDraft(id uuid.UUID, principal model.Principal) (*assignment.Draft, error) {
	draft, err := s.drafts.Get(id)
	if errors.Is(err, assignment.ErrDraftNotFound) {
		return nil, fmt.Errorf("%w: draft %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if draft.Owner != principal.UserID && !principal.IsAdmin() {
		return nil, fmt.Errorf("%w: draft %s belongs to another user", ErrPermissionDenied, id)
	}
	return draft, nil
}

func (s *AssignmentService) SelectRecipe(ctx context.Context, draftID uuid.UUID, relationID int64, principal model.Principal) (*DraftResult, error) {
	draft, err := s.GetDraft(draftID, principal)
	if err != nil {
		return nil, err
	}
	recipe, err := s.catalog.GetRecipe(ctx, relationID)
	if err != nil {
		if errors.Is(translate(err), ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown recipe %d", ErrInvalidInput, relationID)
		}
		return nil, err
	}
	result := &DraftResult{}
	if notice := draft.SelectRecipe(*recipe); notice != nil {
		result.Notices = append(result.Notices, *notice)
	}
	result.Draft = draft.View()
	return result, nil
}

func (s *AssignmentService) DeselectRecipe(draftID uuid.UUID, relationID int64, principal model.Principal) (*DraftResult, error) {
	draft, err := s.GetDraft(draftID, principal)
	if err != nil {
		return nil, err
	}
	draft.DeselectRecipe(relationID)
	return &DraftResult{Draft: draft.View()}, nil
}

// ToggleGroup applies a group checkbox of the contract's recipe tree to the
// draft selection, one recipe at a time. Checking a group whose recipes span
// several units is rejected since the selection holds one unit at a time.
func (s *AssignmentService) ToggleGroup(
	ctx context.Context,
	draftID uuid.UUID,
	groupBy []string,
	path []string,
	checked bool,
	principal model.Principal,
) (*DraftResult, error) {
	draft, err := s.GetDraft(draftID, principal)
	if err != nil {
		return nil, err
	}
	tree, err := s.recipeTree(ctx, draft.ContractID, groupBy, grouptable.KeyByPath)
	if err != nil {
		return nil, err
	}
	node := tree.Find(path)
	if node == nil {
		return nil, fmt.Errorf("%w: group %q", ErrNotFound, strings.Join(path, " / "))
	}

	leafIDs := make([]int64, 0, node.TotalItems)
	for _, leaf := range node.Leaves() {
		leafIDs = append(leafIDs, leaf.ID)
	}
	recipes, err := s.catalog.RecipesByRelation(ctx, leafIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]model.Recipe, len(recipes))
	units := make(map[int64]struct{})
	for _, r := range recipes {
		byID[r.RelationID] = r
		units[r.UnitID] = struct{}{}
	}
	if checked && len(units) > 1 {
		return nil, fmt.Errorf("%w: group %q spans %d units, select one unit's recipes at a time",
			ErrInvalidInput, strings.Join(path, " / "), len(units))
	}

	result := &DraftResult{}
	grouptable.ToggleGroup(node, checked, func(id int64, selected bool) {
		if !selected {
			draft.DeselectRecipe(id)
			return
		}
		recipe, ok := byID[id]
		if !ok {
			return
		}
		if notice := draft.SelectRecipe(recipe); notice != nil {
			result.Notices = append(result.Notices, *notice)
		}
	})

	view := tree.View(grouptable.NewSelection(draft.SelectedIDs()...), nil)
	result.Tree = &view
	result.Draft = draft.View()
	return result, nil
}

func (s *AssignmentService) AssignUnits(ctx context.Context, draftID uuid.UUID, unitIDs []int64, principal model.Principal) (*DraftResult, error) {
	draft, err := s.GetDraft(draftID, principal)
	if err != nil {
		return nil, err
	}
	unitIDs = uniqueIDs(unitIDs)
	units, err := s.catalog.GetUnits(ctx, unitIDs)
	if err != nil {
		return nil, err
	}
	if len(units) != len(unitIDs) {
		return nil, fmt.Errorf("%w: unknown unit in unidades", ErrInvalidInput)
	}
	targets := make([]assignment.Unit, 0, len(units))
	for _, u := range units {
		targets = append(targets, assignment.Unit{ID: u.ID, Name: u.Name})
	}
	added, err := draft.Assign(targets)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &DraftResult{Draft: draft.View(), Groups: added}, nil
}

func (s *AssignmentService) RemoveUnit(ctx context.Context, draftID uuid.UUID, unitID int64, principal model.Principal) (*DraftResult, error) {
	draft, err := s.GetDraft(draftID, principal)
	if err != nil {
		return nil, err
	}
	lookup := draftLookup{assignments: s.assignments, catalog: s.catalog}
	if err := draft.RemoveUnit(ctx, unitID, lookup); err != nil {
		return nil, err
	}
	return &DraftResult{Draft: draft.View()}, nil
}

// SaveDraft persists the draft's groups and clears them once every unit has
// been reconciled.
func (s *AssignmentService) SaveDraft(ctx context.Context, draftID uuid.UUID, principal model.Principal) (*SaveResult, error) {
	draft, err := s.GetDraft(draftID, principal)
	if err != nil {
		return nil, err
	}
	groups := draft.Groups()
	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: draft has no assignments", ErrInvalidInput)
	}
	result, err := s.Save(ctx, draft.ContractID, groups, principal)
	if err != nil {
		return result, err
	}
	draft.ClearGroups()
	return result, nil
}

func (s *AssignmentService) DiscardDraft(draftID uuid.UUID, principal model.Principal) error {
	if _, err := s.GetDraft(draftID, principal); err != nil {
		return err
	}
	s.drafts.Delete(draftID)
	return nil
}

type draftLookup struct {
	assignments AssignmentStore
	catalog     CatalogStore
}

func (l draftLookup) ListAssignmentsByUnit(ctx context.Context, contractID, unitID int64) ([]model.Assignment, error) {
	return l.assignments.ListAssignmentsByUnit(ctx, contractID, unitID)
}

func (l draftLookup) RecipesByRelation(ctx context.Context, relationIDs []int64) ([]model.Recipe, error) {
	return l.catalog.RecipesByRelation(ctx, relationIDs)
}
