package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nurpe/ppl-catering/internal/model"
)

type MinuteRepository struct {
	db *gorm.DB
}

func NewMinuteRepository(db *gorm.DB) *MinuteRepository {
	return &MinuteRepository{db: db}
}

func (r *MinuteRepository) List(ctx context.Context, contractID int64, zoneID *int64, from, to time.Time) ([]model.Minute, error) {
	query := `
		SELECT
			m.id,
			m.id_contrato,
			m.id_zona,
			m.id_producto,
			m.fecha,
			m.clase_servicio,
			COALESCE(p.nombre, '') AS nombre_producto,
			COALESCE(z.nombre, 'Sin zona') AS nombre_zona
		FROM minutas m
		LEFT JOIN productos p ON p.id = m.id_producto
		LEFT JOIN zonas z ON z.id = m.id_zona
		WHERE m.id_contrato = ?
			AND m.fecha >= ?
			AND m.fecha < ?`
	args := []interface{}{contractID, from, to}
	if zoneID != nil {
		query += " AND m.id_zona = ?"
		args = append(args, *zoneID)
	}
	query += " ORDER BY m.fecha ASC, m.clase_servicio ASC, m.id ASC"

	var rows []model.Minute
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *MinuteRepository) Create(ctx context.Context, minute model.Minute) (int64, error) {
	var id int64
	if err := r.db.WithContext(ctx).Raw(`
		INSERT INTO minutas (id_contrato, id_zona, id_producto, fecha, clase_servicio)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`, minute.ContractID, minute.ZoneID, minute.ProductID, minute.Date, minute.ServiceClass).Scan(&id).Error; err != nil {
		return 0, err
	}
	return id, nil
}
