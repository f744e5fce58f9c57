package workflow

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

// Capacidad en kg por equipo de tostión.
var EquipmentCapacity = map[string]int{
	"industrial_200kg":  200,
	"industrial_500kg":  500,
	"artisanal_50kg":    50,
	"experimental_10kg": 10,
}

// Rangos permitidos en los formularios de tostión (°C, minutos, %).
var (
	initialTempRange   = bounds{decimal.NewFromInt(100), decimal.NewFromInt(200)}
	targetTempRange    = bounds{decimal.NewFromInt(150), decimal.NewFromInt(250)}
	monitoringTemp     = bounds{decimal.NewFromInt(100), decimal.NewFromInt(300)}
	humidityRange      = bounds{decimal.Zero, decimal.NewFromInt(20)}
	minEstimatedMinute = 5
	maxEstimatedMinute = 60
)

type bounds struct{ min, max decimal.Decimal }

func (b bounds) check(field string, v decimal.Decimal) error {
	if v.LessThan(b.min) || v.GreaterThan(b.max) {
		return domain.Invalid("%s debe estar entre %s y %s", field, b.min, b.max)
	}
	return nil
}

// StartParams parámetros de equipo para iniciar la tostión.
type StartParams struct {
	Equipment            string
	RoastType            string
	InitialTemperature   decimal.Decimal
	TargetTemperature    decimal.Decimal
	EstimatedTimeMinutes int
}

// MonitoringReading lectura de monitoreo.
type MonitoringReading struct {
	Temperature decimal.Decimal
	Humidity    *decimal.Decimal
	Notes       string
}

// CompleteParams cierre de la tostión.
type CompleteParams struct {
	ProcessedKg  decimal.Decimal
	QualityGrade string
	QualityNotes string
}

// NewToasting crea el proceso en sub-estado received para la maquila.
func NewToasting(id string, o *entity.Order, receivedKg decimal.Decimal, actorID string, now time.Time) (*entity.ToastingProcess, error) {
	if !receivedKg.IsPositive() {
		return nil, domain.Invalid("la cantidad recibida debe ser mayor que cero")
	}
	return &entity.ToastingProcess{
		ID:         id,
		CompanyID:  o.CompanyID,
		OrderID:    o.ID,
		State:      entity.ToastingReceived,
		ReceivedKg: receivedKg,
		ReceivedBy: actorID,
		ReceivedAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func requireToastingState(p *entity.ToastingProcess, op string, allowed ...entity.ToastingState) error {
	for _, s := range allowed {
		if p.State == s {
			return nil
		}
	}
	return fmt.Errorf("%w: %s no permitido en sub-estado %s", domain.ErrIllegalTransition, op, p.State)
}

// UpdateReceived corrige la cantidad recibida mientras el proceso no ha iniciado.
func UpdateReceived(p *entity.ToastingProcess, receivedKg decimal.Decimal, now time.Time) error {
	if err := requireToastingState(p, "recepción", entity.ToastingReceived); err != nil {
		return err
	}
	if !receivedKg.IsPositive() {
		return domain.Invalid("la cantidad recibida debe ser mayor que cero")
	}
	p.ReceivedKg = receivedKg
	p.UpdatedAt = now
	return nil
}

// Start received → started.
func Start(p *entity.ToastingProcess, params StartParams, actorID string, now time.Time) error {
	if err := requireToastingState(p, "iniciar", entity.ToastingReceived); err != nil {
		return err
	}
	capacity, ok := EquipmentCapacity[params.Equipment]
	if !ok {
		return domain.Invalid("equipo desconocido: %q", params.Equipment)
	}
	switch params.RoastType {
	case entity.RoastLight, entity.RoastMedium, entity.RoastDark:
	default:
		return domain.Invalid("tipo de tostión inválido: %q", params.RoastType)
	}
	if err := initialTempRange.check("temperatura inicial", params.InitialTemperature); err != nil {
		return err
	}
	if err := targetTempRange.check("temperatura objetivo", params.TargetTemperature); err != nil {
		return err
	}
	if params.EstimatedTimeMinutes < minEstimatedMinute || params.EstimatedTimeMinutes > maxEstimatedMinute {
		return domain.Invalid("tiempo estimado debe estar entre %d y %d minutos", minEstimatedMinute, maxEstimatedMinute)
	}

	initial, target := params.InitialTemperature, params.TargetTemperature
	ts := now
	p.Equipment = params.Equipment
	p.EquipmentCapacityKg = capacity
	p.RoastType = params.RoastType
	p.InitialTemperature = &initial
	p.TargetTemperature = &target
	p.EstimatedTimeMinutes = params.EstimatedTimeMinutes
	p.State = entity.ToastingStarted
	p.StartedAt = &ts
	p.StartedBy = actorID
	p.UpdatedAt = now
	return nil
}

// UpdateMonitoring started|monitoring → monitoring; agrega la muestra y actualiza las lecturas actuales.
func UpdateMonitoring(p *entity.ToastingProcess, r MonitoringReading, actorID string, now time.Time) error {
	if err := requireToastingState(p, "monitoreo", entity.ToastingStarted, entity.ToastingMonitoring); err != nil {
		return err
	}
	if err := monitoringTemp.check("temperatura actual", r.Temperature); err != nil {
		return err
	}
	if r.Humidity != nil {
		if err := humidityRange.check("humedad", *r.Humidity); err != nil {
			return err
		}
	}

	temp := r.Temperature
	p.CurrentTemperature = &temp
	if r.Humidity != nil {
		h := *r.Humidity
		p.CurrentHumidity = &h
	}
	p.Samples = append(p.Samples, entity.MonitoringSample{
		Temperature: temp,
		Humidity:    r.Humidity,
		Notes:       r.Notes,
		RecordedAt:  now,
		RecordedBy:  actorID,
	})
	p.State = entity.ToastingMonitoring
	p.UpdatedAt = now
	return nil
}

// Complete monitoring → completed; calcula el rendimiento.
func Complete(p *entity.ToastingProcess, params CompleteParams, actorID string, now time.Time) error {
	if err := requireToastingState(p, "completar", entity.ToastingMonitoring); err != nil {
		return err
	}
	if !params.ProcessedKg.IsPositive() {
		return domain.Invalid("la cantidad procesada debe ser mayor que cero")
	}
	switch params.QualityGrade {
	case entity.GradeExcellent, entity.GradeGood, entity.GradeRegular, entity.GradePoor:
	default:
		return domain.Invalid("calificación de calidad obligatoria")
	}

	processed := params.ProcessedKg
	yield := Percent(processed, p.ReceivedKg)
	ts := now
	p.ProcessedKg = &processed
	p.YieldPct = &yield
	p.QualityGrade = params.QualityGrade
	p.QualityNotes = params.QualityNotes
	p.State = entity.ToastingCompleted
	p.CompletedAt = &ts
	p.CompletedBy = actorID
	p.UpdatedAt = now
	return nil
}
