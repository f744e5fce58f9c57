package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ToastingState sub-estado del proceso de tostión.
type ToastingState string

const (
	ToastingReceived   ToastingState = "received"
	ToastingStarted    ToastingState = "started"
	ToastingMonitoring ToastingState = "monitoring"
	ToastingCompleted  ToastingState = "completed"
)

// Tipos de tostión.
const (
	RoastLight  = "light"
	RoastMedium = "medium"
	RoastDark   = "dark"
)

// Calificación final de calidad.
const (
	GradeExcellent = "excellent"
	GradeGood      = "good"
	GradeRegular   = "regular"
	GradePoor      = "poor"
)

// MonitoringSample lectura en vivo de la tostadora (se guarda como JSONB).
type MonitoringSample struct {
	Temperature decimal.Decimal  `json:"temperature"`
	Humidity    *decimal.Decimal `json:"humidity,omitempty"`
	Notes       string           `json:"notes,omitempty"`
	RecordedAt  time.Time        `json:"recorded_at"`
	RecordedBy  string           `json:"recorded_by,omitempty"`
}

// ToastingProcess proceso de tostión 1:1 con la maquila.
type ToastingProcess struct {
	ID        string
	CompanyID string
	OrderID   string
	State     ToastingState

	ReceivedKg  decimal.Decimal
	ProcessedKg *decimal.Decimal
	YieldPct    *decimal.Decimal // processed/received × 100, solo al completar

	Equipment            string
	EquipmentCapacityKg  int
	RoastType            string
	InitialTemperature   *decimal.Decimal
	TargetTemperature    *decimal.Decimal
	EstimatedTimeMinutes int

	CurrentTemperature *decimal.Decimal
	CurrentHumidity    *decimal.Decimal
	Samples            []MonitoringSample

	QualityGrade string
	QualityNotes string

	ReceivedBy  string
	StartedBy   string
	CompletedBy string
	ReceivedAt  time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
