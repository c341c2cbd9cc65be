package model

type ServiceClass string

const (
	ServiceClassBreakfast ServiceClass = "DESAYUNO"
	ServiceClassLunch     ServiceClass = "ALMUERZO"
	ServiceClassDinner    ServiceClass = "CENA"
	ServiceClassSnack     ServiceClass = "REFRIGERIO"
)

func (c ServiceClass) Valid() bool {
	switch c {
	case ServiceClassBreakfast, ServiceClassLunch, ServiceClassDinner, ServiceClassSnack:
		return true
	}
	return false
}

type ThirdParty struct {
	ID      int64  `gorm:"column:id" json:"id"`
	TaxID   string `gorm:"column:nit" json:"nit"`
	Name    string `gorm:"column:nombre" json:"nombre"`
	Phone   string `gorm:"column:telefono" json:"telefono"`
	Email   string `gorm:"column:correo" json:"correo"`
	Address string `gorm:"column:direccion" json:"direccion"`
}

type Zone struct {
	ID   int64  `gorm:"column:id" json:"id"`
	Code string `gorm:"column:codigo" json:"codigo"`
	Name string `gorm:"column:nombre" json:"nombre"`
	PPL  int    `gorm:"column:no_ppl" json:"no_ppl"`
}

type ServiceUnit struct {
	ID       int64  `gorm:"column:id" json:"id"`
	Name     string `gorm:"column:nombre" json:"nombre"`
	PPL      int    `gorm:"column:no_ppl" json:"no_ppl"`
	ZoneID   int64  `gorm:"column:id_zona" json:"id_zona"`
	ZoneName string `gorm:"column:nombre_zona" json:"nombre_zona"`
	HasMenu  bool   `gorm:"column:tiene_menu" json:"tiene_menu"`
}

type Product struct {
	ID            int64        `gorm:"column:id" json:"id"`
	Name          string       `gorm:"column:nombre" json:"nombre"`
	Code          string       `gorm:"column:codigo" json:"codigo"`
	Category      string       `gorm:"column:categoria" json:"categoria"`
	Subline       string       `gorm:"column:sublinea" json:"sublinea"`
	MenuComponent string       `gorm:"column:componente_menu" json:"componente_menu"`
	ServiceClass  ServiceClass `gorm:"column:clase_servicio" json:"clase_servicio"`
}

// Recipe is a catalog entry of the product-by-unit relation: a product
// offered at one service unit.
type Recipe struct {
	RelationID    int64        `gorm:"column:id" json:"id"`
	ProductID     int64        `gorm:"column:id_producto" json:"id_producto"`
	UnitID        int64        `gorm:"column:id_unidad_servicio" json:"id_unidad_servicio"`
	UnitName      string       `gorm:"column:nombre_unidad" json:"nombre_unidad"`
	ZoneName      string       `gorm:"column:nombre_zona" json:"nombre_zona"`
	Name          string       `gorm:"column:nombre" json:"nombre"`
	Code          string       `gorm:"column:codigo" json:"codigo"`
	Category      string       `gorm:"column:categoria" json:"categoria"`
	Subline       string       `gorm:"column:sublinea" json:"sublinea"`
	MenuComponent string       `gorm:"column:componente_menu" json:"componente_menu"`
	ServiceClass  ServiceClass `gorm:"column:clase_servicio" json:"clase_servicio"`
}
