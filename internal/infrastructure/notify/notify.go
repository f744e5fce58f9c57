package notify

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Maquila-api/internal/application/ports"
	"github.com/jhoicas/Maquila-api/pkg/config"
)

// Notifier notificador con cierre de conexiones.
type Notifier interface {
	ports.Notifier
	io.Closer
}

// New construye el notificador según NOTIFY_DRIVER.
func New(ctx context.Context, cfg config.NotifyConfig, log zerolog.Logger) (Notifier, error) {
	switch cfg.Driver {
	case config.NotifyDriverLog, "":
		return NewLogNotifier(log), nil
	case config.NotifyDriverRedis:
		n, err := NewRedisNotifier(ctx, cfg.RedisURL, cfg.RedisQueue)
		if err != nil {
			return nil, err
		}
		log.Info().Str("queue", cfg.RedisQueue).Msg("notificaciones vía Redis")
		return n, nil
	case config.NotifyDriverRabbitMQ:
		n, err := NewAMQPNotifier(cfg.RabbitMQURL, cfg.Exchange)
		if err != nil {
			return nil, err
		}
		log.Info().Str("exchange", cfg.Exchange).Msg("notificaciones vía RabbitMQ")
		return n, nil
	}
	return nil, fmt.Errorf("notify: driver desconocido %q", cfg.Driver)
}
