package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Maquila-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":       "0",
		"950":     "950",
		"25000":   "25.000",
		"1000000": "1.000.000",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(in), in)
	}
	assert.Equal(t, "297.500", money(decimal.RequireFromString("297499.6")))
	assert.Equal(t, "-1.200", money(decimal.NewFromInt(-1200)))
}

func TestSplitEvery_RespetaRunas(t *testing.T) {
	parts := splitEvery("tostión añejada", 7)
	assert.Equal(t, []string{"tostión", " añejad", "a"}, parts)
	assert.Nil(t, splitEvery("", 5))
}

func TestGenerateInvoicePDF(t *testing.T) {
	hulled := decimal.NewFromInt(80)
	shrink := decimal.NewFromInt(20)
	issue := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	invoice := &entity.Invoice{
		Number:         "FAC-900111-20250310-001",
		IssueDate:      issue,
		DueDate:        issue.AddDate(0, 0, 30),
		Subtotal:       decimal.NewFromInt(250000),
		TaxRate:        decimal.NewFromInt(19),
		TaxAmount:      decimal.NewFromInt(47500),
		TotalAmount:    decimal.NewFromInt(297500),
		Status:         entity.InvoiceStatusPending,
		DeliveryPerson: "Carlos",
		Notes:          "Café entregado en bolsas con válvula.",
	}
	order := &entity.Order{
		Number:             "MAQ-900111-20250310-001",
		QuantityKg:         decimal.NewFromInt(100),
		CoffeeType:         entity.CoffeeTypeExcelso,
		OriginalCoffeeType: entity.CoffeeTypeCPS,
		KgAfterHulling:     &hulled,
		ShrinkPct:          &shrink,
		PackagingType:      "bolsa 500g",
		DeliveryMethod:     entity.DeliveryPickup,
		CommittedDate:      issue.AddDate(0, 0, 10),
	}
	company := &entity.Company{Name: "Tostadora Andina", NIT: "900111"}
	client := &entity.Client{Name: "Finca La Esperanza", DocumentType: entity.DocumentTypeCC, DocumentNumber: "10203040"}

	pdf, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), invoice, order, company, client)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "no es un PDF")
}
