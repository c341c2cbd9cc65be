package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/nurpe/ppl-catering/internal/model"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListThirdParties(ctx context.Context, search string) ([]model.ThirdParty, error) {
	query := `
		SELECT id, nit, nombre, COALESCE(telefono, '') AS telefono,
			COALESCE(correo, '') AS correo, COALESCE(direccion, '') AS direccion
		FROM terceros`
	args := []interface{}{}
	if search = strings.TrimSpace(search); search != "" {
		query += " WHERE nombre ILIKE ? OR nit ILIKE ?"
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}
	query += " ORDER BY nombre ASC"

	var rows []model.ThirdParty
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CatalogRepository) ListZones(ctx context.Context) ([]model.Zone, error) {
	var rows []model.Zone
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, codigo, nombre, no_ppl
		FROM zonas
		ORDER BY nombre ASC
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CatalogRepository) CountZones(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM zonas WHERE id IN ?
	`, ids).Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListUnits returns the service units of the contract's zones. HasMenu is
// true when the unit already has an assignment under the contract.
func (r *CatalogRepository) ListUnits(ctx context.Context, contractID int64, zoneIDs []int64) ([]model.ServiceUnit, error) {
	query := `
		SELECT
			u.id,
			u.nombre,
			u.no_ppl,
			COALESCE(u.id_zona, 0) AS id_zona,
			COALESCE(z.nombre, 'Sin zona') AS nombre_zona,
			EXISTS (
				SELECT 1 FROM productos_asignados pa
				WHERE pa.id_unidad_servicio = u.id AND pa.id_contrato = ?
			) AS tiene_menu
		FROM unidades_servicio u
		JOIN zonas_contrato zc ON zc.id_zona = u.id_zona AND zc.id_contrato = ?
		LEFT JOIN zonas z ON z.id = u.id_zona`
	args := []interface{}{contractID, contractID}
	if len(zoneIDs) > 0 {
		query += " WHERE u.id_zona IN ?"
		args = append(args, zoneIDs)
	}
	query += " ORDER BY z.nombre ASC, u.nombre ASC"

	var rows []model.ServiceUnit
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CatalogRepository) GetUnits(ctx context.Context, ids []int64) ([]model.ServiceUnit, error) {
	if len(ids) == 0 {
		return []model.ServiceUnit{}, nil
	}
	var rows []model.ServiceUnit
	if err := r.db.WithContext(ctx).Raw(`
		SELECT
			u.id,
			u.nombre,
			u.no_ppl,
			COALESCE(u.id_zona, 0) AS id_zona,
			COALESCE(z.nombre, 'Sin zona') AS nombre_zona
		FROM unidades_servicio u
		LEFT JOIN zonas z ON z.id = u.id_zona
		WHERE u.id IN ?
		ORDER BY u.nombre ASC
	`, ids).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

const recipeSelect = `
	SELECT
		pu.id,
		pu.id_producto,
		pu.id_unidad_servicio,
		u.nombre AS nombre_unidad,
		COALESCE(z.nombre, 'Sin zona') AS nombre_zona,
		p.nombre,
		p.codigo,
		COALESCE(p.categoria, '') AS categoria,
		COALESCE(p.sublinea, '') AS sublinea,
		COALESCE(p.componente_menu, '') AS componente_menu,
		COALESCE(p.clase_servicio, '') AS clase_servicio
	FROM productos_unidad pu
	JOIN productos p ON p.id = pu.id_producto
	JOIN unidades_servicio u ON u.id = pu.id_unidad_servicio
	LEFT JOIN zonas z ON z.id = u.id_zona`

func (r *CatalogRepository) ListRecipesByUnit(ctx context.Context, unitID int64, class *model.ServiceClass) ([]model.Recipe, error) {
	query := recipeSelect + " WHERE pu.id_unidad_servicio = ?"
	args := []interface{}{unitID}
	if class != nil {
		query += " AND p.clase_servicio = ?"
		args = append(args, *class)
	}
	query += " ORDER BY p.nombre ASC"

	var rows []model.Recipe
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListRecipesForContract returns the recipe catalog of every unit that
// belongs to one of the contract's zones.
func (r *CatalogRepository) ListRecipesForContract(ctx context.Context, contractID int64) ([]model.Recipe, error) {
	var rows []model.Recipe
	if err := r.db.WithContext(ctx).Raw(recipeSelect+`
		JOIN zonas_contrato zc ON zc.id_zona = u.id_zona AND zc.id_contrato = ?
		ORDER BY z.nombre ASC, u.nombre ASC, p.nombre ASC
	`, contractID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CatalogRepository) RecipesByRelation(ctx context.Context, relationIDs []int64) ([]model.Recipe, error) {
	if len(relationIDs) == 0 {
		return []model.Recipe{}, nil
	}
	var rows []model.Recipe
	if err := r.db.WithContext(ctx).Raw(recipeSelect+`
		WHERE pu.id IN ?
		ORDER BY pu.id ASC
	`, relationIDs).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CatalogRepository) GetRecipe(ctx context.Context, relationID int64) (*model.Recipe, error) {
	rows, err := r.RecipesByRelation(ctx, []int64{relationID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

func (r *CatalogRepository) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, nombre, codigo,
			COALESCE(categoria, '') AS categoria,
			COALESCE(sublinea, '') AS sublinea,
			COALESCE(componente_menu, '') AS componente_menu,
			COALESCE(clase_servicio, '') AS clase_servicio
		FROM productos
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&product).Error; err != nil {
		return nil, err
	}
	if product.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &product, nil
}
