package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/nurpe/ppl-catering/internal/assignment"
	"github.com/nurpe/ppl-catering/internal/metrics"
	"github.com/nurpe/ppl-catering/internal/model"
)

const (
	maxPageSize = 200
	maxPage     = math.MaxInt32 / maxPageSize
)

type ContractService struct {
	contracts ContractStore
	catalog   CatalogStore
}

type ContractInput struct {
	Number        string
	ThirdPartyID  int64
	StartDate     time.Time
	EndDate       time.Time
	ExecutionDate *time.Time
	PPL           int
	ServiceCount  int
	CycleCount    int
	Value         float64
	Clauses       string
	ZoneIDs       []int64
	Principal     model.Principal
}

func NewContractService(contracts ContractStore, catalog CatalogStore) *ContractService {
	return &ContractService{
		contracts: contracts,
		catalog:   catalog,
	}
}

func (s *ContractService) List(ctx context.Context, filter model.ContractFilter) (*model.ContractPage, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *filter.Status)
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}
	if filter.Page > maxPage {
		return nil, fmt.Errorf("%w: page must not exceed %d", ErrInvalidInput, maxPage)
	}

	items, total, err := s.contracts.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Contract{}
	}
	return &model.ContractPage{
		Items:    items,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// Get returns the contract with its third party and zones resolved.
func (s *ContractService) Get(ctx context.Context, id int64) (*model.Contract, error) {
	contract, err := s.contracts.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	tp, err := s.contracts.GetThirdParty(ctx, contract.ThirdPartyID)
	if err != nil && !errors.Is(translate(err), ErrNotFound) {
		return nil, err
	}
	contract.ThirdParty = tp

	zones, err := s.contracts.ListZones(ctx, id)
	if err != nil {
		return nil, err
	}
	contract.Zones = zones
	return contract, nil
}

func (s *ContractService) Create(ctx context.Context, input ContractInput) (*model.Contract, error) {
	if !input.Principal.CanWrite() {
		return nil, ErrPermissionDenied
	}
	contract, zoneIDs, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}
	contract.Status = model.ContractStatusOpen

	id, err := s.contracts.Create(ctx, contract, zoneIDs)
	if err != nil {
		return nil, translate(err)
	}
	return s.Get(ctx, id)
}

// Update rewrites the contract fields and reconciles its zone links: links
// for zones still requested keep their row.
func (s *ContractService) Update(ctx context.Context, id int64, input ContractInput) (*model.Contract, error) {
	if !input.Principal.CanWrite() {
		return nil, ErrPermissionDenied
	}
	if _, err := s.contracts.Get(ctx, id); err != nil {
		return nil, translate(err)
	}
	contract, zoneIDs, err := s.validate(ctx, input)
	if err != nil {
		return nil, err
	}
	contract.ID = id

	links, err := s.contracts.ZoneLinks(ctx, id)
	if err != nil {
		return nil, err
	}
	delta := assignment.DiffIDs(links, zoneIDs)
	if err := s.contracts.Update(ctx, contract, delta.DeleteIDs(), delta.Insert); err != nil {
		return nil, translate(err)
	}
	return s.Get(ctx, id)
}

func (s *ContractService) validate(ctx context.Context, input ContractInput) (model.Contract, []int64, error) {
	number := strings.TrimSpace(input.Number)
	if number == "" {
		return model.Contract{}, nil, fmt.Errorf("%w: no_contrato is required", ErrInvalidInput)
	}
	if input.ThirdPartyID <= 0 {
		return model.Contract{}, nil, fmt.Errorf("%w: id_tercero is required", ErrInvalidInput)
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return model.Contract{}, nil, fmt.Errorf("%w: contract dates are required", ErrInvalidInput)
	}
	start := dateOnly(input.StartDate)
	end := dateOnly(input.EndDate)
	if start.After(end) {
		return model.Contract{}, nil, fmt.Errorf("%w: fecha_inicial must be before or equal to fecha_final", ErrInvalidInput)
	}
	if input.PPL < 0 || input.ServiceCount < 0 || input.CycleCount < 0 || input.Value < 0 {
		return model.Contract{}, nil, fmt.Errorf("%w: counts and value must not be negative", ErrInvalidInput)
	}

	if _, err := s.contracts.GetThirdParty(ctx, input.ThirdPartyID); err != nil {
		if errors.Is(translate(err), ErrNotFound) {
			return model.Contract{}, nil, fmt.Errorf("%w: unknown id_tercero %d", ErrInvalidInput, input.ThirdPartyID)
		}
		return model.Contract{}, nil, err
	}

	zoneIDs := uniqueIDs(input.ZoneIDs)
	if len(zoneIDs) > 0 {
		count, err := s.catalog.CountZones(ctx, zoneIDs)
		if err != nil {
			return model.Contract{}, nil, err
		}
		if count != int64(len(zoneIDs)) {
			return model.Contract{}, nil, fmt.Errorf("%w: unknown zone in zonas", ErrInvalidInput)
		}
	}

	var execution *time.Time
	if input.ExecutionDate != nil && !input.ExecutionDate.IsZero() {
		d := dateOnly(*input.ExecutionDate)
		execution = &d
	}

	return model.Contract{
		Number:        number,
		ThirdPartyID:  input.ThirdPartyID,
		StartDate:     start,
		EndDate:       end,
		ExecutionDate: execution,
		PPL:           input.PPL,
		ServiceCount:  input.ServiceCount,
		CycleCount:    input.CycleCount,
		Value:         input.Value,
		Clauses:       strings.TrimSpace(input.Clauses),
	}, zoneIDs, nil
}

func (s *ContractService) ChangeStatus(ctx context.Context, id int64, target model.ContractStatus, principal model.Principal) (*model.Contract, error) {
	if !principal.CanWrite() {
		return nil, ErrPermissionDenied
	}
	contract, err := s.contracts.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if err := checkTransition(contract.Status, target); err != nil {
		return nil, err
	}
	if err := s.contracts.UpdateStatus(ctx, id, target); err != nil {
		return nil, translate(err)
	}
	metrics.RecordTransition(string(target))
	contract.Status = target
	return contract, nil
}

// Activate always returns the contract to ABIERTO.
func (s *ContractService) Activate(ctx context.Context, id int64, principal model.Principal) (*model.Contract, error) {
	return s.ChangeStatus(ctx, id, model.ContractStatusOpen, principal)
}

func (s *ContractService) Inactivate(ctx context.Context, id int64, principal model.Principal) (*model.Contract, error) {
	return s.ChangeStatus(ctx, id, model.ContractStatusInactive, principal)
}

// Delete removes an inactive contract together with its assignments,
// minutes and zone links.
func (s *ContractService) Delete(ctx context.Context, id int64, principal model.Principal) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	contract, err := s.contracts.Get(ctx, id)
	if err != nil {
		return translate(err)
	}
	if contract.Status != model.ContractStatusInactive {
		return fmt.Errorf("%w: only %s contracts can be deleted", ErrInvalidTransition, model.ContractStatusInactive)
	}
	return translate(s.contracts.DeleteCascade(ctx, id))
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
