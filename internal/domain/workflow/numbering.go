package workflow

import (
	"fmt"
	"time"
)

// Tipos de consecutivo por empresa y día.
const (
	SequenceOrder   = "order"
	SequenceInvoice = "invoice"
)

// FormatNumber construye PREFIJO-NIT-YYYYMMDD-NNN.
func FormatNumber(prefix, nit string, day time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%s-%03d", prefix, nit, day.Format("20060102"), seq)
}

// SequenceDay normaliza t al día calendario en loc (medianoche).
func SequenceDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	l := t.In(loc)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, loc)
}
