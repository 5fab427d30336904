package dto

import (
	"bytes"
	"encoding/json"
)

// El backend envuelve las respuestas de éxito en { data: <payload> }, pero
// endpoints a medio migrar devuelven el payload plano o un array desnudo.
// Las tres formas toleradas se tratan como una unión etiquetada decodificada
// en un único paso, aquí, en lugar de cadenas de fallbacks en cada servicio.

// Shape forma detectada del cuerpo de respuesta.
type Shape int

const (
	ShapeEnveloped Shape = iota // { "data": ... }
	ShapeFlat                   // objeto plano
	ShapeArray                  // array desnudo
)

// Unwrap detecta la forma del cuerpo y devuelve el payload interno. Nunca
// falla: ante un cuerpo vacío o no decodificable devuelve el original con
// forma plana y los llamadores aplican sus valores por defecto.
func Unwrap(raw []byte) ([]byte, Shape) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return trimmed, ShapeArray
	}
	var probe struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &probe); err == nil && len(probe.Data) > 0 && !bytes.Equal(probe.Data, []byte("null")) {
		inner := bytes.TrimSpace(probe.Data)
		if len(inner) > 0 && inner[0] == '[' {
			return inner, ShapeArray
		}
		return inner, ShapeEnveloped
	}
	return trimmed, ShapeFlat
}
