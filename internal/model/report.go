package model

import "time"

// AssignmentReport is the input of the assignment workbook.
type AssignmentReport struct {
	Contract    Contract        `json:"contrato"`
	Rows        []AssignmentRow `json:"filas"`
	GeneratedAt time.Time       `json:"generado"`
}

// ContractDocument is the input of the printable contract sheet.
type ContractDocument struct {
	Contract        Contract      `json:"contrato"`
	ThirdParty      ThirdParty    `json:"tercero"`
	Zones           []Zone        `json:"zonas"`
	Units           []ServiceUnit `json:"unidades"`
	AssignmentCount int           `json:"asignaciones"`
	GeneratedAt     time.Time     `json:"generado"`
}
