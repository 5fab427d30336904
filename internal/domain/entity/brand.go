package entity

// Brand marca de productos.
type Brand struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Icon         *string `json:"icon,omitempty"`
	ProductCount *int    `json:"product_count,omitempty"`
	Created      string  `json:"created,omitempty"`
	Updated      string  `json:"updated,omitempty"`
}
