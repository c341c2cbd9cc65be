package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/nurpe/ppl-catering/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

const contractColumns = `
	c.id,
	c.no_contrato,
	c.id_tercero,
	c.fecha_inicial,
	c.fecha_final,
	c.fecha_ejecucion,
	c.no_ppl,
	c.no_servicios,
	c.no_ciclos,
	c.valor,
	c.estado,
	COALESCE(c.clausulas, '') AS clausulas,
	c.created_at,
	COALESCE(t.nombre, 'Sin tercero') AS nombre_tercero
`

func (r *ContractRepository) List(ctx context.Context, filter model.ContractFilter) ([]model.Contract, int64, error) {
	where := []string{"1 = 1"}
	args := []interface{}{}
	if search := strings.TrimSpace(filter.Search); search != "" {
		where = append(where, "(c.no_contrato ILIKE ? OR t.nombre ILIKE ?)")
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	if filter.Status != nil {
		where = append(where, "c.estado = ?")
		args = append(args, *filter.Status)
	}
	clause := strings.Join(where, " AND ")

	var total int64
	if err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM contratos c
		LEFT JOIN terceros t ON t.id = c.id_tercero
		WHERE `+clause, args...).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + contractColumns + `
		FROM contratos c
		LEFT JOIN terceros t ON t.id = c.id_tercero
		WHERE ` + clause + `
		ORDER BY c.created_at DESC, c.id DESC`
	pageArgs := append([]interface{}{}, args...)
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query += " LIMIT ? OFFSET ?"
		pageArgs = append(pageArgs, filter.PageSize, (page-1)*filter.PageSize)
	}

	var contracts []model.Contract
	if err := r.db.WithContext(ctx).Raw(query, pageArgs...).Scan(&contracts).Error; err != nil {
		return nil, 0, err
	}
	return contracts, total, nil
}

func (r *ContractRepository) Get(ctx context.Context, id int64) (*model.Contract, error) {
	var contract model.Contract
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+contractColumns+`
		FROM contratos c
		LEFT JOIN terceros t ON t.id = c.id_tercero
		WHERE c.id = ?
		LIMIT 1
	`, id).Scan(&contract).Error
	if err != nil {
		return nil, err
	}
	if contract.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &contract, nil
}

func (r *ContractRepository) GetThirdParty(ctx context.Context, id int64) (*model.ThirdParty, error) {
	var tp model.ThirdParty
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, nit, nombre, COALESCE(telefono, '') AS telefono,
			COALESCE(correo, '') AS correo, COALESCE(direccion, '') AS direccion
		FROM terceros
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&tp).Error; err != nil {
		return nil, err
	}
	if tp.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &tp, nil
}

func (r *ContractRepository) ListZones(ctx context.Context, contractID int64) ([]model.Zone, error) {
	var zones []model.Zone
	if err := r.db.WithContext(ctx).Raw(`
		SELECT z.id, z.codigo, COALESCE(z.nombre, 'Sin zona') AS nombre, z.no_ppl
		FROM zonas_contrato zc
		JOIN zonas z ON z.id = zc.id_zona
		WHERE zc.id_contrato = ?
		ORDER BY z.nombre ASC
	`, contractID).Scan(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}

// ZoneLinks returns the contract's zone join rows as zone id -> join row id.
func (r *ContractRepository) ZoneLinks(ctx context.Context, contractID int64) (map[int64]int64, error) {
	var rows []struct {
		ID     int64 `gorm:"column:id"`
		ZoneID int64 `gorm:"column:id_zona"`
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, id_zona FROM zonas_contrato WHERE id_contrato = ?
	`, contractID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	links := make(map[int64]int64, len(rows))
	for _, row := range rows {
		links[row.ZoneID] = row.ID
	}
	return links, nil
}

func (r *ContractRepository) Create(ctx context.Context, contract model.Contract, zoneIDs []int64) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Raw(`
			INSERT INTO contratos (
				no_contrato,
				id_tercero,
				fecha_inicial,
				fecha_final,
				fecha_ejecucion,
				no_ppl,
				no_servicios,
				no_ciclos,
				valor,
				estado,
				clausulas
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id
		`,
			contract.Number,
			contract.ThirdPartyID,
			contract.StartDate,
			contract.EndDate,
			contract.ExecutionDate,
			contract.PPL,
			contract.ServiceCount,
			contract.CycleCount,
			contract.Value,
			contract.Status,
			contract.Clauses,
		).Scan(&id).Error; err != nil {
			return err
		}
		return insertZoneLinks(tx, id, zoneIDs)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ContractRepository) Update(ctx context.Context, contract model.Contract, dropLinkIDs, addZoneIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`
			UPDATE contratos
			SET
				no_contrato = ?,
				id_tercero = ?,
				fecha_inicial = ?,
				fecha_final = ?,
				fecha_ejecucion = ?,
				no_ppl = ?,
				no_servicios = ?,
				no_ciclos = ?,
				valor = ?,
				clausulas = ?
			WHERE id = ?
		`,
			contract.Number,
			contract.ThirdPartyID,
			contract.StartDate,
			contract.EndDate,
			contract.ExecutionDate,
			contract.PPL,
			contract.ServiceCount,
			contract.CycleCount,
			contract.Value,
			contract.Clauses,
			contract.ID,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if len(dropLinkIDs) > 0 {
			if err := tx.Exec(`DELETE FROM zonas_contrato WHERE id IN ?`, dropLinkIDs).Error; err != nil {
				return err
			}
		}
		return insertZoneLinks(tx, contract.ID, addZoneIDs)
	})
}

func insertZoneLinks(tx *gorm.DB, contractID int64, zoneIDs []int64) error {
	for _, zoneID := range zoneIDs {
		if err := tx.Exec(`
			INSERT INTO zonas_contrato (id_contrato, id_zona)
			VALUES (?, ?)
		`, contractID, zoneID).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *ContractRepository) UpdateStatus(ctx context.Context, id int64, status model.ContractStatus) error {
	res := r.db.WithContext(ctx).Exec(`UPDATE contratos SET estado = ? WHERE id = ?`, status, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCascade removes the contract and everything hanging off it in one
// transaction: assignments, minutes, zone links, then the contract row.
func (r *ContractRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []string{
			`DELETE FROM productos_asignados WHERE id_contrato = ?`,
			`DELETE FROM minutas WHERE id_contrato = ?`,
			`DELETE FROM zonas_contrato WHERE id_contrato = ?`,
		}
		for _, stmt := range steps {
			if err := tx.Exec(stmt, id).Error; err != nil {
				return err
			}
		}
		res := tx.Exec(`DELETE FROM contratos WHERE id = ?`, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
