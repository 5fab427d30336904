package rest

import (
	"net/http"

	"github.com/jhoicas/supermercado-admin/internal/domain"
)

// ErrorKind discrimina las tres familias de fallo de una petición:
// el servidor respondió con error, no hubo respuesta, o la petición
// ni siquiera se pudo construir/enviar.
type ErrorKind string

const (
	KindServer  ErrorKind = "server-error"
	KindNetwork ErrorKind = "network-error"
	KindRequest ErrorKind = "request-error"
)

// APIError error normalizado de la capa REST. Message es legible para el
// usuario: viene del campo message del cuerpo de error del backend cuando
// existe, o de un mensaje genérico. Status solo aplica cuando Kind es
// KindServer.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap mapea el error al centinela de dominio correspondiente para que los
// llamadores usen errors.Is sin comparar mensajes.
func (e *APIError) Unwrap() error {
	switch e.Kind {
	case KindNetwork:
		return domain.ErrNoResponse
	case KindRequest:
		return domain.ErrRequest
	default:
		switch e.Status {
		case http.StatusUnauthorized:
			return domain.ErrUnauthorized
		case http.StatusNotFound:
			return domain.ErrNotFound
		default:
			return domain.ErrServer
		}
	}
}
