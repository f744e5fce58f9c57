// Package nit normaliza y valida el NIT colombiano de las empresas maquiladoras.
package nit

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalid NIT vacío o con dígito de verificación incorrecto.
var ErrInvalid = errors.New("nit: inválido")

// pesos del módulo 11 de la DIAN, aplicados a los 9 dígitos base de izquierda a derecha.
var weights = [9]int{41, 37, 29, 23, 19, 17, 13, 7, 3}

// Normalize deja solo los dígitos base del NIT: "900.123.456-8" → "900123456".
// Si trae dígito de verificación después del guion, se valida y se descarta.
func Normalize(s string) (string, error) {
	base, dv, hasDV := strings.Cut(strings.TrimSpace(s), "-")
	digits := extractDigits(base)
	if digits == "" {
		return "", fmt.Errorf("%w: sin dígitos", ErrInvalid)
	}
	if !hasDV {
		return digits, nil
	}
	dv = extractDigits(dv)
	if len(dv) != 1 {
		return "", fmt.Errorf("%w: dígito de verificación %q", ErrInvalid, dv)
	}
	expected, err := VerificationDigit(digits)
	if err != nil {
		return "", err
	}
	if dv[0] != expected {
		return "", fmt.Errorf("%w: dígito de verificación esperado %c, recibido %s", ErrInvalid, expected, dv)
	}
	return digits, nil
}

// VerificationDigit calcula el dígito de verificación de un NIT de 9 dígitos.
func VerificationDigit(base string) (byte, error) {
	digits := extractDigits(base)
	if len(digits) != 9 {
		return 0, fmt.Errorf("%w: se requieren 9 dígitos base, se encontraron %d", ErrInvalid, len(digits))
	}
	var sum int
	for i := 0; i < 9; i++ {
		sum += int(digits[i]-'0') * weights[i]
	}
	switch r := sum % 11; r {
	case 0, 1:
		return byte('0' + r), nil
	default:
		return byte('0' + (11 - r)), nil
	}
}

// Format muestra el NIT con su dígito de verificación cuando es calculable.
func Format(base string) string {
	dv, err := VerificationDigit(base)
	if err != nil {
		return base
	}
	return base + "-" + string(dv)
}

func extractDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
