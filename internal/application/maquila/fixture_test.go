package maquila_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Maquila-api/internal/application/audit"
	"github.com/jhoicas/Maquila-api/internal/application/dto"
	"github.com/jhoicas/Maquila-api/internal/application/maquila"
	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

const (
	companyA = "co-a"
	companyB = "co-b"

	rootID = "u-root"
	admA   = "u-adm-a"
	regA   = "u-reg-a"
	tosA   = "u-tos-a"
	prodA  = "u-prod-a"
	facA   = "u-fac-a"
	tosB   = "u-tos-b"

	clientA = "cli-a"
)

var fixedNow = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

type fixture struct {
	store    *memStore
	notifier *fakeNotifier
	core     *maquila.Core

	orders     *maquila.OrderUseCase
	toasting   *maquila.ToastingUseCase
	production *maquila.ProductionUseCase
	invoices   *maquila.InvoiceUseCase
	clients    *maquila.ClientUseCase
	companies  *maquila.CompanyUseCase
	users      *maquila.UserUseCase
	activity   *maquila.ActivityUseCase
}

func newFixture(t *testing.T, opts ...func(*maquila.Settings)) *fixture {
	t.Helper()
	store := newMemStore()
	seed(store)

	settings := maquila.Settings{
		OrderPrefix:    "MAQ",
		InvoicePrefix:  "FAC",
		DefaultTaxRate: decimal.NewFromInt(19),
		Location:       time.UTC,
	}
	for _, o := range opts {
		o(&settings)
	}

	notifier := &fakeNotifier{}
	repos := store.repos()
	emitter := audit.NewEmitter(repos.Activity, zerolog.Nop())
	core := maquila.NewCore(repos, store, emitter, notifier, settings, zerolog.Nop()).
		WithClock(func() time.Time { return fixedNow })

	return &fixture{
		store:      store,
		notifier:   notifier,
		core:       core,
		orders:     maquila.NewOrderUseCase(core),
		toasting:   maquila.NewToastingUseCase(core),
		production: maquila.NewProductionUseCase(core),
		invoices:   maquila.NewInvoiceUseCase(core, nil),
		clients:    maquila.NewClientUseCase(core),
		companies:  maquila.NewCompanyUseCase(core),
		users:      maquila.NewUserUseCase(core),
		activity:   maquila.NewActivityUseCase(core),
	}
}

func seed(s *memStore) {
	s.with(func(d *memData) {
		d.companies[companyA] = entity.Company{ID: companyA, Name: "Tostadora Andina", NIT: "900111", Slug: "tostadora-andina", Status: entity.CompanyStatusActive}
		d.companies[companyB] = entity.Company{ID: companyB, Name: "Café del Huila", NIT: "900222", Slug: "cafe-del-huila", Status: entity.CompanyStatusActive}

		users := []entity.User{
			{ID: rootID, Role: entity.RoleSuperAdmin},
			{ID: admA, CompanyID: companyA, Role: entity.RoleAdminCompany},
			{ID: regA, CompanyID: companyA, Role: entity.RoleAuxRegistro},
			{ID: tosA, CompanyID: companyA, Role: entity.RoleAuxTostion},
			{ID: prodA, CompanyID: companyA, Role: entity.RoleAuxProduccion},
			{ID: facA, CompanyID: companyA, Role: entity.RoleAuxFacturacion},
			{ID: tosB, CompanyID: companyB, Role: entity.RoleAuxTostion},
		}
		for _, u := range users {
			u.Email = u.ID + "@maquila.test"
			u.Status = entity.UserStatusActive
			d.users[u.ID] = u
		}

		d.clients[clientA] = entity.Client{
			ID: clientA, CompanyID: companyA, Name: "Finca La Esperanza",
			DocumentType: entity.DocumentTypeCC, DocumentNumber: "10203040",
			ClientType: entity.ClientTypeNew, IsActive: true,
		}
	})
}

func orderRequest() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		ClientID:       clientA,
		QuantityKg:     decimal.NewFromInt(100),
		CoffeeType:     entity.CoffeeTypeCPS,
		PackagingType:  "bolsa 500g",
		DeliveryMethod: entity.DeliveryPickup,
		CommittedDate:  "2025-03-20",
	}
}

// newOrder registra una maquila como aux_registro de la empresa A.
func (f *fixture) newOrder(t *testing.T) *entity.Order {
	t.Helper()
	o, err := f.orders.Create(context.Background(), regA, orderRequest())
	require.NoError(t, err)
	return o
}

// toastedOrder lleva una maquila hasta toasting_complete por los pasos de tostión.
func (f *fixture) toastedOrder(t *testing.T) *entity.Order {
	t.Helper()
	ctx := context.Background()
	o := f.newOrder(t)
	_, err := f.orders.RequestTransition(ctx, regA, o.ID, entity.StateInToasting)
	require.NoError(t, err)

	for _, step := range toastingSteps() {
		_, err := f.toasting.CreateStep(ctx, tosA, o.ID, step.name, step.in)
		require.NoError(t, err, "paso %s", step.name)
	}
	return o
}

// billableOrder lleva una maquila hasta ready_for_billing.
func (f *fixture) billableOrder(t *testing.T) *entity.Order {
	t.Helper()
	ctx := context.Background()
	o := f.toastedOrder(t)
	_, err := f.orders.RequestTransition(ctx, prodA, o.ID, entity.StateInProduction)
	require.NoError(t, err)
	_, err = f.production.Create(ctx, prodA, o.ID, productionRequest())
	require.NoError(t, err)
	return o
}

type toastingStep struct {
	name string
	in   dto.ToastingStepRequest
}

func toastingSteps() []toastingStep {
	humidity := decimal.NewFromInt(11)
	return []toastingStep{
		{maquila.StepReception, dto.ToastingStepRequest{}},
		{maquila.StepSetup, dto.ToastingStepRequest{
			Equipment:            "industrial_200kg",
			RoastType:            entity.RoastMedium,
			InitialTemperature:   decimal.NewFromInt(180),
			TargetTemperature:    decimal.NewFromInt(210),
			EstimatedTimeMinutes: 15,
		}},
		{maquila.StepMonitoring, dto.ToastingStepRequest{
			CurrentTemperature: decimal.NewFromInt(195),
			Humidity:           &humidity,
			Notes:              "primer crack",
		}},
		{maquila.StepCompletion, dto.ToastingStepRequest{
			ProcessedKg:  decimal.NewFromInt(84),
			QualityGrade: entity.GradeGood,
		}},
	}
}

func productionRequest() dto.ProductionRequest {
	return dto.ProductionRequest{
		ProcessType:     entity.ProcessGrinding,
		GrindingType:    entity.GrindMedium,
		FinalWeightKg:   decimal.NewFromInt(82),
		UnitsProduced:   164,
		WeightVerified:  true,
		PackagingIntact: true,
		LabelingCorrect: true,
	}
}
