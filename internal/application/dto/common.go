package dto

import (
	"net/url"
	"strconv"
)

// ListParams parámetros de paginación y búsqueda para listados.
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

// Encode construye el query string; los campos en cero se omiten.
func (p ListParams) Encode() string {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return q.Encode()
}

// Message cuerpo mínimo {message} que el backend devuelve en mutaciones.
type Message struct {
	Message string `json:"message"`
}
