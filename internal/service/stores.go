package service

import (
	"context"
	"time"

	"github.com/nurpe/ppl-catering/internal/model"
)

type ContractStore interface {
	List(ctx context.Context, filter model.ContractFilter) ([]model.Contract, int64, error)
	Get(ctx context.Context, id int64) (*model.Contract, error)
	GetThirdParty(ctx context.Context, id int64) (*model.ThirdParty, error)
	ListZones(ctx context.Context, contractID int64) ([]model.Zone, error)
	ZoneLinks(ctx context.Context, contractID int64) (map[int64]int64, error)
	Create(ctx context.Context, contract model.Contract, zoneIDs []int64) (int64, error)
	Update(ctx context.Context, contract model.Contract, dropLinkIDs, addZoneIDs []int64) error
	UpdateStatus(ctx context.Context, id int64, status model.ContractStatus) error
	DeleteCascade(ctx context.Context, id int64) error
}

type CatalogStore interface {
	ListThirdParties(ctx context.Context, search string) ([]model.ThirdParty, error)
	ListZones(ctx context.Context) ([]model.Zone, error)
	CountZones(ctx context.Context, ids []int64) (int64, error)
	ListUnits(ctx context.Context, contractID int64, zoneIDs []int64) ([]model.ServiceUnit, error)
	GetUnits(ctx context.Context, ids []int64) ([]model.ServiceUnit, error)
	ListRecipesByUnit(ctx context.Context, unitID int64, class *model.ServiceClass) ([]model.Recipe, error)
	ListRecipesForContract(ctx context.Context, contractID int64) ([]model.Recipe, error)
	RecipesByRelation(ctx context.Context, relationIDs []int64) ([]model.Recipe, error)
	GetRecipe(ctx context.Context, relationID int64) (*model.Recipe, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
}

type AssignmentStore interface {
	ListAssignmentsByUnit(ctx context.Context, contractID, unitID int64) ([]model.Assignment, error)
	ApplyDelta(ctx context.Context, contractID, unitID int64, deleteIDs, insertRelationIDs []int64) error
	ListRowsForContract(ctx context.Context, contractID int64) ([]model.AssignmentRow, error)
}

type MinuteStore interface {
	List(ctx context.Context, contractID int64, zoneID *int64, from, to time.Time) ([]model.Minute, error)
	Create(ctx context.Context, minute model.Minute) (int64, error)
}
