package model

type Assignment struct {
	ID                int64  `gorm:"column:id" json:"id"`
	ProductRelationID int64  `gorm:"column:id_producto_unidad" json:"id_producto_unidad"`
	ContractID        int64  `gorm:"column:id_contrato" json:"id_contrato"`
	UnitID            int64  `gorm:"column:id_unidad_servicio" json:"id_unidad_servicio"`
	Active            bool   `gorm:"column:estado" json:"estado"`
	ProductName       string `gorm:"column:nombre_producto" json:"nombre_producto"`
}

// AssignmentRow is the flattened projection used by exports: one assigned
// recipe with its unit and zone labels.
type AssignmentRow struct {
	ID            int64        `gorm:"column:id" json:"id"`
	ZoneName      string       `gorm:"column:nombre_zona" json:"nombre_zona"`
	UnitName      string       `gorm:"column:nombre_unidad" json:"nombre_unidad"`
	ProductCode   string       `gorm:"column:codigo" json:"codigo"`
	ProductName   string       `gorm:"column:nombre_producto" json:"nombre_producto"`
	ServiceClass  ServiceClass `gorm:"column:clase_servicio" json:"clase_servicio"`
	MenuComponent string       `gorm:"column:componente_menu" json:"componente_menu"`
}
