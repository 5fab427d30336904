package entity

import "github.com/shopspring/decimal"

// Niveles válidos del árbol de categorías.
const (
	CategoryLevelMin = 1
	CategoryLevelMax = 3
)

// Category categoría de productos. Forma un árbol de hasta tres niveles:
// una categoría de nivel 1 no tiene padre y el nivel de un nodo es el de su
// padre + 1 (el backend lo valida; el cliente solo muestra y selecciona).
// ProductCount es un agregado derivado que calcula el backend, nunca el cliente.
type Category struct {
	ID           int              `json:"id"`
	Title        string           `json:"title"`
	TitleTamil   *string          `json:"title_tamil,omitempty"`
	Icon         *string          `json:"icon,omitempty"`
	Color        *string          `json:"color,omitempty"`
	Parent       *int             `json:"parent,omitempty"`
	Level        int              `json:"level"`
	OrderBy      *int             `json:"order_by,omitempty"`
	Margin       *decimal.Decimal `json:"margin,omitempty"`
	Updated      string           `json:"updated,omitempty"`
	ProductCount *int             `json:"product_count,omitempty"`
	Children     []Category       `json:"children,omitempty"` // solo en /categories/tree
}

// IsRoot indica si la categoría es de primer nivel.
func (c Category) IsRoot() bool {
	return c.Level == CategoryLevelMin || c.Parent == nil
}
