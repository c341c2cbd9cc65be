package model

import "time"

type Minute struct {
	ID           int64        `gorm:"column:id" json:"id"`
	ContractID   int64        `gorm:"column:id_contrato" json:"id_contrato"`
	ZoneID       int64        `gorm:"column:id_zona" json:"id_zona"`
	ProductID    int64        `gorm:"column:id_producto" json:"id_producto"`
	Date         time.Time    `gorm:"column:fecha" json:"fecha"`
	ServiceClass ServiceClass `gorm:"column:clase_servicio" json:"clase_servicio"`
	ProductName  string       `gorm:"column:nombre_producto" json:"nombre_producto"`
	ZoneName     string       `gorm:"column:nombre_zona" json:"nombre_zona"`
}

type MinuteDay struct {
	Date    string   `json:"fecha"`
	Minutes []Minute `json:"minutas"`
}
