package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/supermercado-admin/internal/domain"
)

// Los campos numéricos llegan como texto desde los inputs del formulario.
// La coerción ocurre aquí, como paso explícito de parseo y validación, antes
// de cruzar la frontera del servicio: un identificador requerido que no parsea
// o queda en cero es un error de validación, nunca un cero silencioso.

// requiredID parsea un id requerido y positivo.
func requiredID(field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("seleccione %s válido: %w", field, domain.ErrValidation)
	}
	return n, nil
}

// optionalID parsea un id opcional; vacío o no positivo se omite.
func optionalID(raw string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

// optionalInt parsea un entero opcional; vacío o ilegible se omite.
func optionalInt(raw string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &n
}

// flag parsea un campo bandera 0/1 con valor por defecto.
func flag(raw string, def int) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// optionalString recorta y omite cadenas vacías.
func optionalString(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	return &s
}

func ptr[T any](v T) *T { return &v }
