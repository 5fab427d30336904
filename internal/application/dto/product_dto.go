package dto

// ProductForm datos del diálogo de producto. Los campos numéricos y bandera
// llegan como texto desde los inputs del formulario; la coerción a número
// ocurre en el servicio como paso explícito de parseo y validación.
type ProductForm struct {
	Name         string
	SKU          string
	SupplierCode string
	Description  string // se mapea a genericName en el payload
	Category     string // id como texto; requerido y positivo
	Brand        string
	Company      string
	Dept         string
	Status       string // 1 activo, 0 inactivo (por defecto 1)
	Weighted     string // 1 se vende por peso (por defecto 0)
	Expiry       string // días para alerta de vencimiento
	TrackInv     string // 1 controla stock (por defecto 1)
	Discount     string // 1 admite descuentos (por defecto 1)
	Points       string // 1 acumula puntos (por defecto 1)
	IsReturnable string // 1 admite devolución (por defecto 1)
	Spec         string
	Warranty     string
	Tags         string

	// Imagen adjunta; el servicio la codifica como data URL base64.
	Image     []byte
	ImageMIME string
}

// ProductPayload cuerpo hacia POST/PUT /admin/products, espejo del validador
// del backend. Los opcionales ausentes se omiten, no se envían como null.
type ProductPayload struct {
	UICode         string  `json:"uiCode"`
	Title          string  `json:"title"`
	SupplierCode   *string `json:"supplierCode,omitempty"`
	GenericName    *string `json:"genericName,omitempty"`
	Category       int     `json:"category"`
	Brand          *int    `json:"brand,omitempty"`
	Company        *int    `json:"company,omitempty"`
	Dept           *int    `json:"dept,omitempty"`
	Image          *string `json:"image,omitempty"`
	Status         int     `json:"status"`
	Weighted       int     `json:"weighted"`
	Expiry         *int    `json:"expiry,omitempty"`
	TrackInventory int     `json:"trackInventory"`
	Discount       int     `json:"discount"`
	Points         int     `json:"points"`
	IsReturnable   int     `json:"isReturnable"`
	Spec           *string `json:"spec,omitempty"`
	Warranty       *string `json:"warranty,omitempty"`
	Tags           *string `json:"tags,omitempty"`
}
