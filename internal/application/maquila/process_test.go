package maquila_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Maquila-api/internal/application/dto"
	"github.com/jhoicas/Maquila-api/internal/application/maquila"
	"github.com/jhoicas/Maquila-api/internal/application/ports"
	"github.com/jhoicas/Maquila-api/internal/domain"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
	"github.com/jhoicas/Maquila-api/internal/domain/workflow"
)

// ─────────────────────────────────────────────────────────────────────────────
// Tostión
// ─────────────────────────────────────────────────────────────────────────────

func TestToasting_FlujoCompletoCierraLaMaquila(t *testing.T) {
	f := newFixture(t)
	o := f.toastedOrder(t)

	p, err := f.toasting.Get(context.Background(), tosA, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ToastingCompleted, p.State)
	assert.Equal(t, 200, p.EquipmentCapacityKg)
	require.Len(t, p.Samples, 1)
	assert.Equal(t, "primer crack", p.Samples[0].Notes)
	require.NotNil(t, p.YieldPct)
	assert.True(t, decimal.NewFromInt(84).Equal(*p.YieldPct), "rendimiento %s", p.YieldPct)

	stored := f.store.order(o.ID)
	assert.Equal(t, entity.StateToastingComplete, stored.State)
	assert.Equal(t, tosA, stored.ToastedBy)

	actions := f.store.activityActions()
	assert.Contains(t, actions, entity.ActionToastingStep)
	assert.Contains(t, actions, entity.ActionToastingComplete)
}

func TestToasting_PasoFueraDeOrden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.newOrder(t)

	// la maquila aún no está en tostión
	_, err := f.toasting.CreateStep(ctx, tosA, o.ID, maquila.StepReception, dto.ToastingStepRequest{})
	require.ErrorIs(t, err, domain.ErrIllegalTransition)

	_, err = f.orders.RequestTransition(ctx, regA, o.ID, entity.StateInToasting)
	require.NoError(t, err)

	steps := toastingSteps()
	_, err = f.toasting.CreateStep(ctx, tosA, o.ID, maquila.StepSetup, steps[1].in)
	assert.ErrorIs(t, err, domain.ErrIllegalTransition, "setup sin recepción")

	_, err = f.toasting.CreateStep(ctx, tosA, o.ID, maquila.StepReception, steps[0].in)
	require.NoError(t, err)
	_, err = f.toasting.CreateStep(ctx, tosA, o.ID, maquila.StepCompletion, steps[3].in)
	assert.ErrorIs(t, err, domain.ErrIllegalTransition, "completion sin monitoreo")

	_, err = f.toasting.CreateStep(ctx, tosA, o.ID, "enfriado", dto.ToastingStepRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestToasting_RolYTenant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.newOrder(t)
	_, err := f.orders.RequestTransition(ctx, regA, o.ID, entity.StateInToasting)
	require.NoError(t, err)

	_, err = f.toasting.CreateStep(ctx, regA, o.ID, maquila.StepReception, dto.ToastingStepRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.toasting.CreateStep(ctx, tosB, o.ID, maquila.StepReception, dto.ToastingStepRequest{})
	assert.ErrorIs(t, err, domain.ErrScope)
}

func TestToasting_FueraDeRango(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.newOrder(t)
	_, err := f.orders.RequestTransition(ctx, regA, o.ID, entity.StateInToasting)
	require.NoError(t, err)
	_, err = f.toasting.CreateStep(ctx, tosA, o.ID, maquila.StepReception, dto.ToastingStepRequest{})
	require.NoError(t, err)

	in := toastingSteps()[1].in
	in.TargetTemperature = decimal.NewFromInt(300)
	_, err = f.toasting.CreateStep(ctx, tosA, o.ID, maquila.StepSetup, in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := f.toasting.Get(ctx, tosA, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ToastingReceived, p.State)
}

func TestToasting_FalloAlMoverLaMaquilaRevierteElCierre(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.newOrder(t)
	_, err := f.orders.RequestTransition(ctx, regA, o.ID, entity.StateInToasting)
	require.NoError(t, err)

	steps := toastingSteps()
	for _, step := range steps[:3] {
		_, err := f.toasting.CreateStep(ctx, tosA, o.ID, step.name, step.in)
		require.NoError(t, err)
	}

	f.store.failOrderUpdate = domain.ErrConflict
	_, err = f.toasting.CreateStep(ctx, tosA, o.ID, maquila.StepCompletion, steps[3].in)
	require.ErrorIs(t, err, domain.ErrConflict)

	p, err := f.toasting.Get(ctx, tosA, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ToastingMonitoring, p.State)
	assert.Nil(t, p.CompletedAt)
	assert.Equal(t, entity.StateInToasting, f.store.order(o.ID).State)
}

// ─────────────────────────────────────────────────────────────────────────────
// Producción
// ─────────────────────────────────────────────────────────────────────────────

func TestProduction_MueveAListaParaFacturar(t *testing.T) {
	f := newFixture(t)
	o := f.billableOrder(t)

	stored := f.store.order(o.ID)
	assert.Equal(t, entity.StateReadyForBilling, stored.State)
	assert.Equal(t, prodA, stored.ProducedBy)
	require.NotNil(t, stored.ProductionCompletedAt)

	var billing *ports.Notification
	f.notifier.mu.Lock()
	for i := range f.notifier.sent {
		if f.notifier.sent[i].Event == ports.EventReadyForBilling {
			billing = &f.notifier.sent[i]
		}
	}
	f.notifier.mu.Unlock()
	require.NotNil(t, billing)
	assert.Equal(t, ports.AudienceBillingTeam, billing.Audience)
	assert.Equal(t, o.ID, billing.OrderID)

	p, err := f.production.Get(context.Background(), prodA, o.ID)
	require.NoError(t, err)
	assert.Equal(t, 164, p.UnitsProduced)
}

func TestProduction_EstadoIncorrecto(t *testing.T) {
	f := newFixture(t)
	o := f.toastedOrder(t)

	_, err := f.production.Create(context.Background(), prodA, o.ID, productionRequest())
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
}

func TestProduction_ControlDeCalidadConfigurable(t *testing.T) {
	in := productionRequest()
	in.LabelingCorrect = false

	t.Run("sin exigencia", func(t *testing.T) {
		f := newFixture(t)
		o := f.toastedOrder(t)
		_, err := f.orders.RequestTransition(context.Background(), prodA, o.ID, entity.StateInProduction)
		require.NoError(t, err)
		_, err = f.production.Create(context.Background(), prodA, o.ID, in)
		assert.NoError(t, err)
	})

	t.Run("exigida", func(t *testing.T) {
		f := newFixture(t, func(s *maquila.Settings) { s.RequireProductionQuality = true })
		o := f.toastedOrder(t)
		_, err := f.orders.RequestTransition(context.Background(), prodA, o.ID, entity.StateInProduction)
		require.NoError(t, err)
		_, err = f.production.Create(context.Background(), prodA, o.ID, in)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Equal(t, entity.StateInProduction, f.store.order(o.ID).State)
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// Facturación
// ─────────────────────────────────────────────────────────────────────────────

func invoiceRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		Subtotal:       decimal.RequireFromString("250000"),
		DueDate:        "2025-04-09",
		DeliveryPerson: "Carlos",
	}
}

func TestInvoiceCreate_CalculaTotalesYFactura(t *testing.T) {
	f := newFixture(t)
	o := f.billableOrder(t)

	inv, err := f.invoices.Create(context.Background(), facA, o.ID, invoiceRequest())
	require.NoError(t, err)

	assert.Equal(t, "FAC-900111-20250310-001", inv.Number)
	assert.True(t, decimal.NewFromInt(19).Equal(inv.TaxRate))
	assert.True(t, decimal.RequireFromString("47500").Equal(inv.TaxAmount), "impuesto %s", inv.TaxAmount)
	assert.True(t, decimal.RequireFromString("297500").Equal(inv.TotalAmount), "total %s", inv.TotalAmount)
	assert.Equal(t, entity.InvoiceStatusPending, inv.Status)
	assert.Equal(t, clientA, inv.ClientID)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), inv.IssueDate)

	stored := f.store.order(o.ID)
	assert.Equal(t, entity.StateBilled, stored.State)
	assert.Equal(t, facA, stored.BilledBy)

	events := f.notifier.events()
	assert.Equal(t, ports.EventInvoiceCreated, events[len(events)-1])
	assert.Contains(t, f.store.activityActions(), entity.ActionInvoiceCreate)
}

func TestInvoiceCreate_Rechazos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.billableOrder(t)

	_, err := f.invoices.Create(ctx, prodA, o.ID, invoiceRequest())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	bad := invoiceRequest()
	bad.DueDate = "2025-03-01"
	_, err = f.invoices.Create(ctx, facA, o.ID, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.invoices.Create(ctx, facA, o.ID, invoiceRequest())
	require.NoError(t, err)

	// ya facturada: el estado ya no es ready_for_billing
	_, err = f.invoices.Create(ctx, facA, o.ID, invoiceRequest())
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
}

func TestInvoiceChangeStatus_PagoNotifica(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.billableOrder(t)
	inv, err := f.invoices.Create(ctx, facA, o.ID, invoiceRequest())
	require.NoError(t, err)

	paid, err := f.invoices.ChangeStatus(ctx, facA, inv.ID, dto.InvoiceStatusRequest{Action: workflow.InvoicePay, PaymentDate: "2025-03-15"})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, paid.Status)
	require.NotNil(t, paid.PaymentDate)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), *paid.PaymentDate)
	assert.Equal(t, inv.Number, paid.Number)

	events := f.notifier.events()
	assert.Equal(t, ports.EventInvoicePaid, events[len(events)-1])

	_, err = f.invoices.ChangeStatus(ctx, facA, inv.ID, dto.InvoiceStatusRequest{Action: workflow.InvoiceCancel})
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)

	_, err = f.invoices.Get(ctx, tosB, inv.ID)
	assert.ErrorIs(t, err, domain.ErrScope)
}

func TestInvoicePDF_SinGenerador(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.billableOrder(t)
	inv, err := f.invoices.Create(ctx, facA, o.ID, invoiceRequest())
	require.NoError(t, err)

	_, _, err = f.invoices.PDF(ctx, facA, inv.ID)
	assert.Error(t, err)

	withPDF := maquila.NewInvoiceUseCase(f.core, stubPDF{})
	pdf, name, err := withPDF.PDF(ctx, facA, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, inv.Number+".pdf", name)
	assert.Equal(t, []byte("%PDF-"+inv.Number), pdf)
}

type stubPDF struct{}

func (stubPDF) GenerateInvoicePDF(_ context.Context, inv *entity.Invoice, _ *entity.Order, _ *entity.Company, _ *entity.Client) ([]byte, error) {
	return []byte("%PDF-" + inv.Number), nil
}
