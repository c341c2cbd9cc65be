package model

import "time"

type ContractStatus string

const (
	ContractStatusOpen         ContractStatus = "ABIERTO"
	ContractStatusInProduction ContractStatus = "EN_PRODUCCION"
	ContractStatusFinished     ContractStatus = "FINALIZADO"
	ContractStatusInactive     ContractStatus = "INACTIVO"
)

func (s ContractStatus) Valid() bool {
	switch s {
	case ContractStatusOpen, ContractStatusInProduction, ContractStatusFinished, ContractStatusInactive:
		return true
	}
	return false
}

type Contract struct {
	ID             int64          `gorm:"column:id" json:"id"`
	Number         string         `gorm:"column:no_contrato" json:"no_contrato"`
	ThirdPartyID   int64          `gorm:"column:id_tercero" json:"id_tercero"`
	StartDate      time.Time      `gorm:"column:fecha_inicial" json:"fecha_inicial"`
	EndDate        time.Time      `gorm:"column:fecha_final" json:"fecha_final"`
	ExecutionDate  *time.Time     `gorm:"column:fecha_ejecucion" json:"fecha_ejecucion,omitempty"`
	PPL            int            `gorm:"column:no_ppl" json:"no_ppl"`
	ServiceCount   int            `gorm:"column:no_servicios" json:"no_servicios"`
	CycleCount     int            `gorm:"column:no_ciclos" json:"no_ciclos"`
	Value          float64        `gorm:"column:valor" json:"valor"`
	Status         ContractStatus `gorm:"column:estado" json:"estado"`
	Clauses        string         `gorm:"column:clausulas" json:"clausulas"`
	CreatedAt      time.Time      `gorm:"column:created_at" json:"created_at"`
	ThirdPartyName string         `gorm:"column:nombre_tercero" json:"nombre_tercero"`
	ThirdParty     *ThirdParty    `gorm:"-" json:"tercero,omitempty"`
	Zones          []Zone         `gorm:"-" json:"zonas,omitempty"`
}

type ContractFilter struct {
	Search   string
	Status   *ContractStatus
	Page     int
	PageSize int
}

type ContractPage struct {
	Items    []Contract `json:"items"`
	Total    int64      `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}
