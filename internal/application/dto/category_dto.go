package dto

import "github.com/shopspring/decimal"

// CategoryForm datos del diálogo de categoría. Los opcionales son punteros:
// nil significa "no informado" y se omite del payload en lugar de enviar null.
type CategoryForm struct {
	Title      string
	TitleTamil string
	Icon       string
	Color      string
	Parent     *int
	Level      int
	OrderBy    *int
	Margin     *decimal.Decimal
}

// CategoryPatch actualización parcial: solo los campos no nil viajan en el
// payload (semántica de PATCH sobre PUT, no reemplazo completo).
type CategoryPatch struct {
	Title      *string
	TitleTamil *string
	Icon       *string
	Color      *string
	Parent     *int
	Level      *int
	OrderBy    *int
	Margin     *decimal.Decimal
}

// CategoryPayload cuerpo hacia POST/PUT /admin/categories.
type CategoryPayload struct {
	Title      *string          `json:"title,omitempty"`
	TitleTamil *string          `json:"titleTamil,omitempty"`
	Icon       *string          `json:"icon,omitempty"`
	Color      *string          `json:"color,omitempty"`
	Parent     *int             `json:"parent,omitempty"`
	Level      *int             `json:"level,omitempty"`
	OrderBy    *int             `json:"orderBy,omitempty"`
	Margin     *decimal.Decimal `json:"margin,omitempty"`
}
