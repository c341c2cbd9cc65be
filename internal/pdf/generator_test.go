package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nurpe/ppl-catering/internal/model"
)

func TestGenerateContractSheet(t *testing.T) {
	exec := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	doc := model.ContractDocument{
		Contract: model.Contract{
			ID:            7,
			Number:        "CT-2024-007",
			StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:       time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			ExecutionDate: &exec,
			PPL:           1200,
			ServiceCount:  3,
			CycleCount:    4,
			Value:         1500000.5,
			Status:        model.ContractStatusInProduction,
			Clauses:       "Cláusula primera: suministro diario.",
		},
		ThirdParty: model.ThirdParty{Name: "Alimentos Ñandú S.A.S.", TaxID: "900123456"},
		Zones:      []model.Zone{{ID: 1, Name: "Zona Norte", PPL: 700}, {ID: 2, Name: "Zona Sur", PPL: 500}},
		Units: []model.ServiceUnit{
			{ID: 10, Name: "Patio 1", PPL: 300, ZoneID: 1},
			{ID: 11, Name: "Patio 2", PPL: 400, ZoneID: 1},
		},
		AssignmentCount: 24,
		GeneratedAt:     time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	}

	data, err := NewGenerator().Generate(doc)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	require.Greater(t, len(data), 500)
}

func TestStatusLabel(t *testing.T) {
	require.Equal(t, "Abierto", statusLabel(model.ContractStatusOpen))
	require.Equal(t, "Inactivo", statusLabel(model.ContractStatusInactive))
	require.Equal(t, "-", statusLabel(""))
}
