package workflow

import (
	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

// ValidateProduction valida el proceso de producción antes de crearlo.
// requireQuality exige los tres controles de calidad aprobados.
func ValidateProduction(p *entity.ProductionProcess, requireQuality bool) error {
	switch p.ProcessType {
	case entity.ProcessGrinding, entity.ProcessPackaging, entity.ProcessBulk:
	default:
		return domain.Invalid("tipo de proceso inválido: %q", p.ProcessType)
	}
	switch p.GrindingType {
	case "", entity.GrindFine, entity.GrindMedium, entity.GrindCoarse:
	default:
		return domain.Invalid("tipo de molienda inválido: %q", p.GrindingType)
	}
	if p.ProcessType == entity.ProcessGrinding && p.GrindingType == "" {
		return domain.Invalid("la molienda requiere tipo de molienda")
	}
	if !p.FinalWeightKg.IsPositive() {
		return domain.Invalid("el peso final debe ser mayor que cero")
	}
	if p.UnitsProduced <= 0 {
		return domain.Invalid("las unidades producidas deben ser mayores que cero")
	}
	if requireQuality && !p.QualityComplete() {
		return domain.Invalid("controles de calidad incompletos (peso, empaque, etiquetado)")
	}
	return nil
}
