package entity

import "github.com/shopspring/decimal"

// Ref referencia id+título que el backend incrusta en las relaciones de producto
// (categoría, marca, proveedor) resueltas vía JOIN.
type Ref struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// Product producto del catálogo. Los campos bandera (Status, Weighted,
// TrackInventory, Discount, Points, IsReturnable) llegan como 0/1 del backend.
type Product struct {
	ID           int    `json:"id"`
	UICode       string `json:"uiCode"` // el serializer del backend lo expone como sku
	SKU          string `json:"sku,omitempty"`
	SupplierCode string `json:"supplierCode,omitempty"`
	Title        string `json:"title"`
	GenericName  string `json:"genericName,omitempty"`
	Img          string `json:"img,omitempty"`

	Category *Ref `json:"category"`
	Brand    *Ref `json:"brand"`
	Company  *Ref `json:"company"`

	Dept           *int `json:"dept,omitempty"`
	Status         int  `json:"status"`
	Weighted       int  `json:"weighted"`
	Expiry         *int `json:"expiry,omitempty"`
	TrackInventory int  `json:"trackInventory"`
	Discount       int  `json:"discount"`
	Points         int  `json:"points"`
	IsReturnable   int  `json:"isReturnable"`

	Spec     string `json:"spec,omitempty"`
	Warranty string `json:"warranty,omitempty"`
	Tags     string `json:"tags,omitempty"`

	TitleTamil   string `json:"titleTamil,omitempty"`
	TitleSinhala string `json:"titleSinhala,omitempty"`

	Added   string `json:"added,omitempty"`
	Updated string `json:"updated,omitempty"`

	// Campos legacy que algunos endpoints aún incluyen.
	Description string           `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Unit        string           `json:"unit,omitempty"`
	Barcode     string           `json:"barcode,omitempty"`
}
