package service

import (
	"context"
	"fmt"

	"github.com/nurpe/ppl-catering/internal/model"
)

type CatalogService struct {
	catalog   CatalogStore
	contracts ContractStore
}

func NewCatalogService(catalog CatalogStore, contracts ContractStore) *CatalogService {
	return &CatalogService{catalog: catalog, contracts: contracts}
}

func (s *CatalogService) ListThirdParties(ctx context.Context, search string) ([]model.ThirdParty, error) {
	rows, err := s.catalog.ListThirdParties(ctx, search)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.ThirdParty{}
	}
	return rows, nil
}

func (s *CatalogService) ListZones(ctx context.Context) ([]model.Zone, error) {
	rows, err := s.catalog.ListZones(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.Zone{}
	}
	return rows, nil
}

func (s *CatalogService) ListContractZones(ctx context.Context, contractID int64) ([]model.Zone, error) {
	if _, err := s.contracts.Get(ctx, contractID); err != nil {
		return nil, translate(err)
	}
	rows, err := s.contracts.ListZones(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.Zone{}
	}
	return rows, nil
}

// ListUnits returns the contract's service units, optionally narrowed to
// zoneIDs, each flagged with whether it already has a menu assigned.
func (s *CatalogService) ListUnits(ctx context.Context, contractID int64, zoneIDs []int64) ([]model.ServiceUnit, error) {
	if _, err := s.contracts.Get(ctx, contractID); err != nil {
		return nil, translate(err)
	}
	rows, err := s.catalog.ListUnits(ctx, contractID, uniqueIDs(zoneIDs))
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.ServiceUnit{}
	}
	return rows, nil
}

func (s *CatalogService) ListRecipes(ctx context.Context, unitID int64, class *model.ServiceClass) ([]model.Recipe, error) {
	if unitID <= 0 {
		return nil, fmt.Errorf("%w: unit id is required", ErrInvalidInput)
	}
	if class != nil && !class.Valid() {
		return nil, fmt.Errorf("%w: unknown clase_servicio %q", ErrInvalidInput, *class)
	}
	rows, err := s.catalog.ListRecipesByUnit(ctx, unitID, class)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.Recipe{}
	}
	return rows, nil
}
