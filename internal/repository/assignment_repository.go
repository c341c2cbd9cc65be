package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nurpe/ppl-catering/internal/model"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) ListAssignmentsByUnit(ctx context.Context, contractID, unitID int64) ([]model.Assignment, error) {
	var rows []model.Assignment
	if err := r.db.WithContext(ctx).Raw(`
		SELECT
			pa.id,
			pa.id_producto_unidad,
			pa.id_contrato,
			pa.id_unidad_servicio,
			pa.estado,
			COALESCE(p.nombre, '') AS nombre_producto
		FROM productos_asignados pa
		LEFT JOIN productos_unidad pu ON pu.id = pa.id_producto_unidad
		LEFT JOIN productos p ON p.id = pu.id_producto
		WHERE pa.id_contrato = ? AND pa.id_unidad_servicio = ?
		ORDER BY pa.id ASC
	`, contractID, unitID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ApplyDelta deletes and inserts the assignment rows of one (contract, unit)
// pair in a single transaction. Rows not named are left untouched.
func (r *AssignmentRepository) ApplyDelta(ctx context.Context, contractID, unitID int64, deleteIDs, insertRelationIDs []int64) error {
	if len(deleteIDs) == 0 && len(insertRelationIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(deleteIDs) > 0 {
			if err := tx.Exec(`
				DELETE FROM productos_asignados
				WHERE id IN ? AND id_contrato = ? AND id_unidad_servicio = ?
			`, deleteIDs, contractID, unitID).Error; err != nil {
				return err
			}
		}
		for _, relationID := range insertRelationIDs {
			if err := tx.Exec(`
				INSERT INTO productos_asignados (id_producto_unidad, id_contrato, id_unidad_servicio, estado)
				VALUES (?, ?, ?, TRUE)
			`, relationID, contractID, unitID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AssignmentRepository) ListRowsForContract(ctx context.Context, contractID int64) ([]model.AssignmentRow, error) {
	var rows []model.AssignmentRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT
			pa.id,
			COALESCE(z.nombre, '') AS nombre_zona,
			COALESCE(u.nombre, '') AS nombre_unidad,
			COALESCE(p.codigo, '') AS codigo,
			COALESCE(p.nombre, '') AS nombre_producto,
			COALESCE(p.clase_servicio, '') AS clase_servicio,
			COALESCE(p.componente_menu, '') AS componente_menu
		FROM productos_asignados pa
		JOIN unidades_servicio u ON u.id = pa.id_unidad_servicio
		LEFT JOIN zonas z ON z.id = u.id_zona
		LEFT JOIN productos_unidad pu ON pu.id = pa.id_producto_unidad
		LEFT JOIN productos p ON p.id = pu.id_producto
		WHERE pa.id_contrato = ?
		ORDER BY z.nombre ASC, u.nombre ASC, p.nombre ASC
	`, contractID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
