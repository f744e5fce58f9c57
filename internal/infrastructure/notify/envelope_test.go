package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Maquila-api/internal/application/ports"
)

func TestEncode_SobreConTipoYPayload(t *testing.T) {
	n := ports.Notification{
		Event:      ports.EventInvoiceCreated,
		CompanyID:  "co-a",
		OrderID:    "o-1",
		InvoiceID:  "f-1",
		Audience:   ports.AudienceClient,
		OccurredAt: time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC),
	}

	raw, err := encode(n)
	require.NoError(t, err)

	var job Job
	require.NoError(t, json.Unmarshal(raw, &job))
	assert.Equal(t, "notify.invoice_created", job.Type)

	var got ports.Notification
	require.NoError(t, json.Unmarshal(job.Payload, &got))
	assert.Equal(t, n, got)
}
