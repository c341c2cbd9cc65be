package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nurpe/ppl-catering/internal/model"
)

const (
	calendarDateLayout = "2006-01-02"
	maxMinuteRange     = 366 * 24 * time.Hour
)

type MinuteService struct {
	minutes   MinuteStore
	contracts ContractStore
	catalog   CatalogStore
}

type MinuteInput struct {
	ContractID   int64
	ZoneID       int64
	ProductID    int64
	Date         time.Time
	ServiceClass model.ServiceClass
	Principal    model.Principal
}

func NewMinuteService(minutes MinuteStore, contracts ContractStore, catalog CatalogStore) *MinuteService {
	return &MinuteService{minutes: minutes, contracts: contracts, catalog: catalog}
}

// List returns the contract's minutes with fecha in [from, to). A missing
// bound defaults to the contract's own start or end date, and a defaulted
// window is narrowed to one year so long contracts stay listable.
func (s *MinuteService) List(ctx context.Context, contractID int64, zoneID *int64, from, to time.Time) ([]model.Minute, error) {
	contract, err := s.contracts.Get(ctx, contractID)
	if err != nil {
		return nil, translate(err)
	}
	explicitFrom, explicitTo := !from.IsZero(), !to.IsZero()
	if !explicitFrom {
		from = dateOnly(contract.StartDate)
	}
	if !explicitTo {
		to = dateOnly(contract.EndDate).AddDate(0, 0, 1)
	}
	if !to.After(from) {
		return nil, fmt.Errorf("%w: to must be after from", ErrInvalidInput)
	}
	if to.Sub(from) > maxMinuteRange {
		switch {
		case !explicitTo:
			to = from.Add(maxMinuteRange)
		case !explicitFrom:
			from = to.Add(-maxMinuteRange)
		default:
			return nil, fmt.Errorf("%w: range exceeds one year", ErrInvalidInput)
		}
	}

	rows, err := s.minutes.List(ctx, contractID, zoneID, from, to)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.Minute{}
	}
	return rows, nil
}

// Calendar groups List by day in ascending date order.
func (s *MinuteService) Calendar(ctx context.Context, contractID int64, zoneID *int64, from, to time.Time) ([]model.MinuteDay, error) {
	rows, err := s.List(ctx, contractID, zoneID, from, to)
	if err != nil {
		return nil, err
	}
	days := make([]model.MinuteDay, 0)
	index := make(map[string]int)
	for _, m := range rows {
		key := m.Date.Format(calendarDateLayout)
		pos, ok := index[key]
		if !ok {
			pos = len(days)
			index[key] = pos
			days = append(days, model.MinuteDay{Date: key})
		}
		days[pos].Minutes = append(days[pos].Minutes, m)
	}
	return days, nil
}

func (s *MinuteService) Schedule(ctx context.Context, input MinuteInput) (*model.Minute, error) {
	if !input.Principal.CanWrite() {
		return nil, ErrPermissionDenied
	}
	if input.ZoneID <= 0 || input.ProductID <= 0 {
		return nil, fmt.Errorf("%w: id_zona and id_producto are required", ErrInvalidInput)
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: fecha is required", ErrInvalidInput)
	}
	if !input.ServiceClass.Valid() {
		return nil, fmt.Errorf("%w: unknown clase_servicio %q", ErrInvalidInput, input.ServiceClass)
	}

	contract, err := s.contracts.Get(ctx, input.ContractID)
	if err != nil {
		return nil, translate(err)
	}
	switch contract.Status {
	case model.ContractStatusInactive, model.ContractStatusFinished:
		return nil, fmt.Errorf("%w: contract is %s", ErrInvalidTransition, contract.Status)
	}

	date := dateOnly(input.Date)
	if date.Before(dateOnly(contract.StartDate)) || date.After(dateOnly(contract.EndDate)) {
		return nil, fmt.Errorf("%w: fecha outside the contract period", ErrInvalidInput)
	}

	links, err := s.contracts.ZoneLinks(ctx, contract.ID)
	if err != nil {
		return nil, err
	}
	if _, ok := links[input.ZoneID]; !ok {
		return nil, fmt.Errorf("%w: zone %d is not part of the contract", ErrInvalidInput, input.ZoneID)
	}
	product, err := s.catalog.GetProduct(ctx, input.ProductID)
	if err != nil {
		if errors.Is(translate(err), ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown product %d", ErrInvalidInput, input.ProductID)
		}
		return nil, err
	}

	minute := model.Minute{
		ContractID:   contract.ID,
		ZoneID:       input.ZoneID,
		ProductID:    product.ID,
		Date:         date,
		ServiceClass: input.ServiceClass,
		ProductName:  product.Name,
	}
	id, err := s.minutes.Create(ctx, minute)
	if err != nil {
		return nil, translate(err)
	}
	minute.ID = id
	return &minute, nil
}
