package audit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Maquila-api/internal/application/audit"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

type fakeLogRepo struct {
	err     error
	panics  bool
	entries []*entity.ActivityLog
	ctxErr  error
}

func (f *fakeLogRepo) Append(ctx context.Context, l *entity.ActivityLog) error {
	if f.panics {
		panic("almacenamiento caído")
	}
	f.ctxErr = ctx.Err()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, l)
	return nil
}

func (f *fakeLogRepo) List(context.Context, entity.ActivityFilter) ([]*entity.ActivityLog, error) {
	return f.entries, nil
}

func TestRecord_AgregaEventoConDatosDelCliente(t *testing.T) {
	repo := &fakeLogRepo{}
	e := audit.NewEmitter(repo, zerolog.Nop())

	ctx := audit.WithClient(context.Background(), "10.0.0.7", "curl/8")
	e.Record(ctx, audit.Event{UserID: "u1", CompanyID: "A", Action: entity.ActionMaquilaCreate, OrderID: "o1"})

	require.Len(t, repo.entries, 1)
	got := repo.entries[0]
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "o1", got.OrderID)
	assert.Equal(t, "10.0.0.7", got.IPAddress)
	assert.Equal(t, "curl/8", got.UserAgent)
	assert.Empty(t, got.InvoiceID)
}

func TestRecord_FallosNoSePropagan(t *testing.T) {
	e := audit.NewEmitter(&fakeLogRepo{err: errors.New("db caída")}, zerolog.Nop())
	assert.NotPanics(t, func() { e.Record(context.Background(), audit.Event{Action: entity.ActionLogin}) })

	e = audit.NewEmitter(&fakeLogRepo{panics: true}, zerolog.Nop())
	assert.NotPanics(t, func() { e.Record(context.Background(), audit.Event{Action: entity.ActionLogin}) })
}

func TestRecord_ContextoCanceladoNoDescartaElRegistro(t *testing.T) {
	repo := &fakeLogRepo{}
	e := audit.NewEmitter(repo, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	e.Record(ctx, audit.Event{Action: entity.ActionMaquilaCancel})
	require.Len(t, repo.entries, 1)
	assert.NoError(t, repo.ctxErr)
}
