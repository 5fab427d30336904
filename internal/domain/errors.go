package domain

import "errors"

// Errores de dominio del cliente (sin dependencias externas).
// Los servicios y la capa REST envuelven estos centinelas para que los
// llamadores discriminen con errors.Is en lugar de comparar mensajes.
var (
	// ErrValidation entrada de formulario inválida; se lanza antes de tocar la red.
	ErrValidation = errors.New("entrada inválida")
	// ErrUnauthorized el backend respondió 401: token inválido o expirado.
	ErrUnauthorized = errors.New("no autorizado")
	// ErrNoResponse la petición salió pero no hubo respuesta del servidor.
	ErrNoResponse = errors.New("error de red: sin respuesta del servidor")
	// ErrRequest la petición no se pudo construir o enviar.
	ErrRequest = errors.New("petición inválida")
	// ErrServer el backend respondió con un estado de error distinto de 401.
	ErrServer = errors.New("error del servidor")
	// ErrRegistrationUnavailable no existe endpoint público de registro de staff.
	ErrRegistrationUnavailable = errors.New("registro no disponible: contacte a un administrador")
	// ErrNotFound recurso no encontrado.
	ErrNotFound = errors.New("recurso no encontrado")
)
