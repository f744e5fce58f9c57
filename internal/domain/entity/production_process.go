package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de proceso de producción.
const (
	ProcessGrinding  = "grinding"
	ProcessPackaging = "packaging"
	ProcessBulk      = "bulk"
)

// Tipos de molienda.
const (
	GrindFine   = "fine"
	GrindMedium = "medium"
	GrindCoarse = "coarse"
)

// ProductionProcess molienda/empaque 1:1 con la maquila. Se crea en una sola operación.
type ProductionProcess struct {
	ID               string
	CompanyID        string
	OrderID          string
	ProcessType      string
	GrindingType     string // opcional
	PackagingDetails string
	FinalWeightKg    decimal.Decimal
	UnitsProduced    int

	WeightVerified  bool
	PackagingIntact bool
	LabelingCorrect bool
	ProductionNotes string

	ProducedBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// QualityComplete los tres controles de calidad están aprobados.
func (p *ProductionProcess) QualityComplete() bool {
	return p.WeightVerified && p.PackagingIntact && p.LabelingCorrect
}
