// Package notify publica las solicitudes de notificación de maquila en Redis, RabbitMQ o el log.
// El consumidor (worker de correo) arma y entrega el mensaje.
package notify

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Maquila-api/internal/application/ports"
)

// Job sobre genérico para las colas de tareas asíncronas.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// jobType tipo de tarea para el worker: notify.<evento>.
func jobType(n ports.Notification) string {
	return "notify." + n.Event
}

func encode(n ports.Notification) ([]byte, error) {
	payload, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("codificar notificación: %w", err)
	}
	return json.Marshal(Job{Type: jobType(n), Payload: payload})
}
