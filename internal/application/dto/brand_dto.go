package dto

// BrandForm datos del diálogo de marca.
type BrandForm struct {
	Title string
	Icon  string
}

// BrandPatch actualización parcial de una marca.
type BrandPatch struct {
	Title *string
	Icon  *string
}

// BrandPayload cuerpo hacia POST/PUT /admin/brands.
type BrandPayload struct {
	Title *string `json:"title,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}
