package service

import (
	"context"
	"time"

	"github.com/nurpe/ppl-catering/internal/model"
)

type ExcelGenerator interface {
	Generate(report model.AssignmentReport) ([]byte, error)
}

type PDFGenerator interface {
	Generate(doc model.ContractDocument) ([]byte, error)
}

type ExportService struct {
	contracts   *ContractService
	catalog     CatalogStore
	assignments AssignmentStore
	excel       ExcelGenerator
	pdf         PDFGenerator
	now         func() time.Time
}

func NewExportService(
	contracts *ContractService,
	catalog CatalogStore,
	assignments AssignmentStore,
	excel ExcelGenerator,
	pdf PDFGenerator,
) *ExportService {
	return &ExportService{
		contracts:   contracts,
		catalog:     catalog,
		assignments: assignments,
		excel:       excel,
		pdf:         pdf,
		now:         time.Now,
	}
}

func (s *ExportService) AssignmentsWorkbook(ctx context.Context, contractID int64) ([]byte, string, error) {
	contract, err := s.contracts.Get(ctx, contractID)
	if err != nil {
		return nil, "", err
	}
	rows, err := s.assignments.ListRowsForContract(ctx, contractID)
	if err != nil {
		return nil, "", err
	}
	data, err := s.excel.Generate(model.AssignmentReport{
		Contract:    *contract,
		Rows:        rows,
		GeneratedAt: s.now(),
	})
	if err != nil {
		return nil, "", err
	}
	return data, exportName("asignaciones", contract.Number, "xlsx"), nil
}

func (s *ExportService) ContractSheet(ctx context.Context, contractID int64) ([]byte, string, error) {
	contract, err := s.contracts.Get(ctx, contractID)
	if err != nil {
		return nil, "", err
	}
	zoneIDs := make([]int64, 0, len(contract.Zones))
	for _, zone := range contract.Zones {
		zoneIDs = append(zoneIDs, zone.ID)
	}
	var units []model.ServiceUnit
	if len(zoneIDs) > 0 {
		units, err = s.catalog.ListUnits(ctx, contractID, zoneIDs)
		if err != nil {
			return nil, "", err
		}
	}
	rows, err := s.assignments.ListRowsForContract(ctx, contractID)
	if err != nil {
		return nil, "", err
	}

	doc := model.ContractDocument{
		Contract:        *contract,
		Zones:           contract.Zones,
		Units:           units,
		AssignmentCount: len(rows),
		GeneratedAt:     s.now(),
	}
	if contract.ThirdParty != nil {
		doc.ThirdParty = *contract.ThirdParty
	} else {
		doc.ThirdParty = model.ThirdParty{ID: contract.ThirdPartyID, Name: contract.ThirdPartyName}
	}

	data, err := s.pdf.Generate(doc)
	if err != nil {
		return nil, "", err
	}
	return data, exportName("contrato", contract.Number, "pdf"), nil
}

func exportName(prefix, number, ext string) string {
	safe := make([]rune, 0, len(number))
	for _, r := range number {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			safe = append(safe, r)
		default:
			safe = append(safe, '_')
		}
	}
	if len(safe) == 0 {
		return prefix + "." + ext
	}
	return prefix + "_" + string(safe) + "." + ext
}
