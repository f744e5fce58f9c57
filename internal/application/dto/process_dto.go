package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

// ToastingStepRequest campos de un paso de tostión; cada paso usa solo los suyos.
//   - reception:  ReceivedKg (opcional, por defecto la cantidad de la maquila)
//   - setup:      Equipment, RoastType, InitialTemperature, TargetTemperature, EstimatedTimeMinutes
//   - monitoring: CurrentTemperature, Humidity, Notes
//   - completion: ProcessedKg, QualityGrade, QualityNotes
type ToastingStepRequest struct {
	ReceivedKg *decimal.Decimal `json:"received_kg"`

	Equipment            string          `json:"equipment"`
	RoastType            string          `json:"roast_type"`
	InitialTemperature   decimal.Decimal `json:"initial_temperature"`
	TargetTemperature    decimal.Decimal `json:"target_temperature"`
	EstimatedTimeMinutes int             `json:"estimated_time_minutes"`

	CurrentTemperature decimal.Decimal  `json:"current_temperature"`
	Humidity           *decimal.Decimal `json:"humidity"`
	Notes              string           `json:"notes"`

	ProcessedKg  decimal.Decimal `json:"processed_kg"`
	QualityGrade string          `json:"quality_grade"`
	QualityNotes string          `json:"quality_notes"`
}

// ToastingResponse salida del proceso de tostión.
type ToastingResponse struct {
	ID                   string                    `json:"id"`
	OrderID              string                    `json:"order_id"`
	State                string                    `json:"state"`
	ReceivedKg           decimal.Decimal           `json:"received_kg"`
	ProcessedKg          *decimal.Decimal          `json:"processed_kg,omitempty"`
	YieldPct             *decimal.Decimal          `json:"yield_pct,omitempty"`
	Equipment            string                    `json:"equipment,omitempty"`
	EquipmentCapacityKg  int                       `json:"equipment_capacity_kg,omitempty"`
	RoastType            string                    `json:"roast_type,omitempty"`
	InitialTemperature   *decimal.Decimal          `json:"initial_temperature,omitempty"`
	TargetTemperature    *decimal.Decimal          `json:"target_temperature,omitempty"`
	EstimatedTimeMinutes int                       `json:"estimated_time_minutes,omitempty"`
	CurrentTemperature   *decimal.Decimal          `json:"current_temperature,omitempty"`
	CurrentHumidity      *decimal.Decimal          `json:"current_humidity,omitempty"`
	Samples              []entity.MonitoringSample `json:"samples"`
	QualityGrade         string                    `json:"quality_grade,omitempty"`
	QualityNotes         string                    `json:"quality_notes,omitempty"`
	ReceivedAt           time.Time                 `json:"received_at"`
	StartedAt            *time.Time                `json:"started_at,omitempty"`
	CompletedAt          *time.Time                `json:"completed_at,omitempty"`
}

// NewToastingResponse mapea el proceso de tostión.
func NewToastingResponse(p *entity.ToastingProcess) *ToastingResponse {
	if p == nil {
		return nil
	}
	samples := p.Samples
	if samples == nil {
		samples = []entity.MonitoringSample{}
	}
	return &ToastingResponse{
		ID:                   p.ID,
		OrderID:              p.OrderID,
		State:                string(p.State),
		ReceivedKg:           p.ReceivedKg,
		ProcessedKg:          p.ProcessedKg,
		YieldPct:             p.YieldPct,
		Equipment:            p.Equipment,
		EquipmentCapacityKg:  p.EquipmentCapacityKg,
		RoastType:            p.RoastType,
		InitialTemperature:   p.InitialTemperature,
		TargetTemperature:    p.TargetTemperature,
		EstimatedTimeMinutes: p.EstimatedTimeMinutes,
		CurrentTemperature:   p.CurrentTemperature,
		CurrentHumidity:      p.CurrentHumidity,
		Samples:              samples,
		QualityGrade:         p.QualityGrade,
		QualityNotes:         p.QualityNotes,
		ReceivedAt:           p.ReceivedAt,
		StartedAt:            p.StartedAt,
		CompletedAt:          p.CompletedAt,
	}
}

// ProductionRequest creación del proceso de producción en una sola operación.
type ProductionRequest struct {
	ProcessType      string          `json:"process_type"`
	GrindingType     string          `json:"grinding_type"`
	PackagingDetails string          `json:"packaging_details"`
	FinalWeightKg    decimal.Decimal `json:"final_weight_kg"`
	UnitsProduced    int             `json:"units_produced"`
	WeightVerified   bool            `json:"weight_verified"`
	PackagingIntact  bool            `json:"packaging_intact"`
	LabelingCorrect  bool            `json:"labeling_correct"`
	ProductionNotes  string          `json:"production_notes"`
}

// ProductionResponse salida del proceso de producción.
type ProductionResponse struct {
	ID               string          `json:"id"`
	OrderID          string          `json:"order_id"`
	ProcessType      string          `json:"process_type"`
	GrindingType     string          `json:"grinding_type,omitempty"`
	PackagingDetails string          `json:"packaging_details,omitempty"`
	FinalWeightKg    decimal.Decimal `json:"final_weight_kg"`
	UnitsProduced    int             `json:"units_produced"`
	WeightVerified   bool            `json:"weight_verified"`
	PackagingIntact  bool            `json:"packaging_intact"`
	LabelingCorrect  bool            `json:"labeling_correct"`
	QualityComplete  bool            `json:"quality_complete"`
	ProductionNotes  string          `json:"production_notes,omitempty"`
	ProducedBy       string          `json:"produced_by"`
	CreatedAt        time.Time       `json:"created_at"`
}

// NewProductionResponse mapea el proceso de producción.
func NewProductionResponse(p *entity.ProductionProcess) *ProductionResponse {
	if p == nil {
		return nil
	}
	return &ProductionResponse{
		ID:               p.ID,
		OrderID:          p.OrderID,
		ProcessType:      p.ProcessType,
		GrindingType:     p.GrindingType,
		PackagingDetails: p.PackagingDetails,
		FinalWeightKg:    p.FinalWeightKg,
		UnitsProduced:    p.UnitsProduced,
		WeightVerified:   p.WeightVerified,
		PackagingIntact:  p.PackagingIntact,
		LabelingCorrect:  p.LabelingCorrect,
		QualityComplete:  p.QualityComplete(),
		ProductionNotes:  p.ProductionNotes,
		ProducedBy:       p.ProducedBy,
		CreatedAt:        p.CreatedAt,
	}
}
