package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jhoicas/supermercado-admin/internal/application/dto"
	"github.com/jhoicas/supermercado-admin/internal/domain"
	"github.com/jhoicas/supermercado-admin/internal/domain/entity"
	"github.com/jhoicas/supermercado-admin/internal/infrastructure/rest"
	"github.com/jhoicas/supermercado-admin/pkg/textutil"
)

// ProductList resultado normalizado de un listado de productos.
type ProductList struct {
	Products   []entity.Product
	Pagination *entity.Pagination
}

// ProductService acceso tipado a /products y /admin/products.
type ProductService struct {
	api *rest.Client
}

// NewProductService construye el servicio.
func NewProductService(api *rest.Client) *ProductService {
	return &ProductService{api: api}
}

// List lista productos. GET /products
func (s *ProductService) List(ctx context.Context, params dto.ListParams) (*ProductList, error) {
	path := "/products"
	if q := params.Encode(); q != "" {
		path += "?" + q
	}
	raw, err := s.api.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeProductList(raw), nil
}

// Get obtiene un producto por id. GET /products/:id
func (s *ProductService) Get(ctx context.Context, id int) (*entity.Product, error) {
	if id <= 0 {
		return nil, fmt.Errorf("id de producto inválido: %w", domain.ErrValidation)
	}
	raw, err := s.api.Get(ctx, fmt.Sprintf("/products/%d", id))
	if err != nil {
		return nil, err
	}
	return decodeProduct(raw), nil
}

// Create crea un producto. SKU, nombre y una categoría válida son requeridos;
// la validación corre antes de cualquier llamada de red. POST /admin/products
func (s *ProductService) Create(ctx context.Context, form dto.ProductForm) (*entity.Product, error) {
	payload, err := buildProductPayload(form)
	if err != nil {
		return nil, err
	}
	raw, err := s.api.Post(ctx, "/admin/products", payload)
	if err != nil {
		return nil, err
	}
	return decodeProduct(raw), nil
}

// Update reemplaza un producto con el contenido completo del formulario de
// edición, pre-llenado desde la fila seleccionada. PUT /admin/products/:id
func (s *ProductService) Update(ctx context.Context, id int, form dto.ProductForm) (*entity.Product, error) {
	if id <= 0 {
		return nil, fmt.Errorf("id de producto inválido: %w", domain.ErrValidation)
	}
	payload, err := buildProductPayload(form)
	if err != nil {
		return nil, err
	}
	raw, err := s.api.Put(ctx, fmt.Sprintf("/admin/products/%d", id), payload)
	if err != nil {
		return nil, err
	}
	return decodeProduct(raw), nil
}

// Delete elimina un producto y devuelve el mensaje de confirmación del
// backend. DELETE /admin/products/:id
func (s *ProductService) Delete(ctx context.Context, id int) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("id de producto inválido: %w", domain.ErrValidation)
	}
	raw, err := s.api.Delete(ctx, fmt.Sprintf("/admin/products/%d", id))
	if err != nil {
		return "", err
	}
	return decodeMessage(raw), nil
}

// Filter filtra localmente por título ignorando mayúsculas y diacríticos;
// es el cuadro de búsqueda de la pantalla, no toca la red.
func (s *ProductService) Filter(products []entity.Product, query string) []entity.Product {
	query = strings.TrimSpace(query)
	if query == "" {
		return products
	}
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if textutil.ContainsFold(p.Title, query) || textutil.ContainsFold(p.UICode, query) {
			out = append(out, p)
		}
	}
	return out
}

// ── Construcción del payload ──────────────────────────────────────────────────

// buildProductPayload traduce el formulario a la forma del validador del
// backend, con las mismas reglas de defaults del panel original.
func buildProductPayload(form dto.ProductForm) (*dto.ProductPayload, error) {
	sku := strings.TrimSpace(form.SKU)
	name := strings.TrimSpace(form.Name)
	if sku == "" || name == "" {
		return nil, fmt.Errorf("SKU y nombre de producto son requeridos: %w", domain.ErrValidation)
	}
	category, err := requiredID("una categoría", form.Category)
	if err != nil {
		return nil, err
	}

	payload := &dto.ProductPayload{
		UICode:         sku,
		Title:          name,
		SupplierCode:   optionalString(form.SupplierCode),
		GenericName:    optionalString(form.Description),
		Category:       category,
		Brand:          optionalID(form.Brand),
		Company:        optionalID(form.Company),
		Dept:           optionalID(form.Dept),
		Status:         flag(form.Status, 1),
		Weighted:       flag(form.Weighted, 0),
		Expiry:         optionalInt(form.Expiry),
		TrackInventory: flag(form.TrackInv, 1),
		Discount:       flag(form.Discount, 1),
		Points:         flag(form.Points, 1),
		IsReturnable:   flag(form.IsReturnable, 1),
		Spec:           optionalString(form.Spec),
		Warranty:       optionalString(form.Warranty),
		Tags:           optionalString(form.Tags),
	}

	if len(form.Image) > 0 {
		mime := form.ImageMIME
		if mime == "" {
			mime = "image/jpeg"
		}
		dataURL := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(form.Image)
		payload.Image = &dataURL
	}

	return payload, nil
}

// ── Decodificación ────────────────────────────────────────────────────────────

func decodeProductList(raw []byte) *ProductList {
	payload, shape := dto.Unwrap(raw)
	if shape == dto.ShapeArray {
		var products []entity.Product
		if err := json.Unmarshal(payload, &products); err != nil {
			return &ProductList{Products: []entity.Product{}}
		}
		return &ProductList{Products: products}
	}
	var body struct {
		Products   []entity.Product   `json:"products"`
		Pagination *entity.Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(payload, &body); err != nil || body.Products == nil {
		return &ProductList{Products: []entity.Product{}, Pagination: body.Pagination}
	}
	return &ProductList{Products: body.Products, Pagination: body.Pagination}
}

func decodeProduct(raw []byte) *entity.Product {
	payload, _ := dto.Unwrap(raw)
	var body struct {
		Product *entity.Product `json:"product"`
	}
	if err := json.Unmarshal(payload, &body); err == nil && body.Product != nil {
		return body.Product
	}
	var p entity.Product
	if err := json.Unmarshal(payload, &p); err != nil {
		return &entity.Product{}
	}
	return &p
}
