package service

import (
	"encoding/json"

	"github.com/jhoicas/supermercado-admin/internal/application/dto"
)

// decodeMessage extrae el {message} de confirmación que el backend adjunta a
// las mutaciones; cadena vacía si no envió ninguno.
func decodeMessage(raw []byte) string {
	payload, _ := dto.Unwrap(raw)
	var m dto.Message
	if err := json.Unmarshal(payload, &m); err != nil {
		return ""
	}
	return m.Message
}
