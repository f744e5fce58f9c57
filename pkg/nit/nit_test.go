package nit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Maquila-api/pkg/nit"
)

func TestNormalize(t *testing.T) {
	got, err := nit.Normalize(" 900.123.456-8 ")
	require.NoError(t, err)
	assert.Equal(t, "900123456", got)

	got, err = nit.Normalize("900 333")
	require.NoError(t, err)
	assert.Equal(t, "900333", got, "sin guion no se exige dígito de verificación")
}

func TestNormalize_Rechaza(t *testing.T) {
	for _, in := range []string{"", "abc", "900123456-5", "900123456-", "900333-1"} {
		_, err := nit.Normalize(in)
		assert.ErrorIs(t, err, nit.ErrInvalid, "entrada %q", in)
	}
}

func TestVerificationDigit(t *testing.T) {
	dv, err := nit.VerificationDigit("900123456")
	require.NoError(t, err)
	assert.Equal(t, byte('8'), dv)

	_, err = nit.VerificationDigit("12345")
	assert.ErrorIs(t, err, nit.ErrInvalid)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "900123456-8", nit.Format("900123456"))
	assert.Equal(t, "900111", nit.Format("900111"), "NIT corto se muestra tal cual")
}
