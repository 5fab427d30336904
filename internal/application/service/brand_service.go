package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jhoicas/supermercado-admin/internal/application/dto"
	"github.com/jhoicas/supermercado-admin/internal/domain"
	"github.com/jhoicas/supermercado-admin/internal/domain/entity"
	"github.com/jhoicas/supermercado-admin/internal/infrastructure/rest"
)

// BrandList resultado normalizado de un listado de marcas.
type BrandList struct {
	Brands     []entity.Brand
	Pagination *entity.Pagination
}

// BrandService acceso tipado a /brands y /admin/brands.
type BrandService struct {
	api *rest.Client
}

// NewBrandService construye el servicio.
func NewBrandService(api *rest.Client) *BrandService {
	return &BrandService{api: api}
}

// List lista marcas con paginación y búsqueda opcionales. GET /brands
func (s *BrandService) List(ctx context.Context, params dto.ListParams) (*BrandList, error) {
	path := "/brands"
	if q := params.Encode(); q != "" {
		path += "?" + q
	}
	raw, err := s.api.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeBrandList(raw), nil
}

// Get obtiene una marca por id. GET /brands/:id
func (s *BrandService) Get(ctx context.Context, id int) (*entity.Brand, error) {
	if id <= 0 {
		return nil, fmt.Errorf("id de marca inválido: %w", domain.ErrValidation)
	}
	raw, err := s.api.Get(ctx, fmt.Sprintf("/brands/%d", id))
	if err != nil {
		return nil, err
	}
	return decodeBrand(raw), nil
}

// Create crea una marca; el nombre es requerido. POST /admin/brands
func (s *BrandService) Create(ctx context.Context, form dto.BrandForm) (*entity.Brand, error) {
	title := strings.TrimSpace(form.Title)
	if title == "" {
		return nil, fmt.Errorf("el nombre de la marca es requerido: %w", domain.ErrValidation)
	}
	payload := dto.BrandPayload{
		Title: &title,
		Icon:  optionalString(form.Icon),
	}
	raw, err := s.api.Post(ctx, "/admin/brands", payload)
	if err != nil {
		return nil, err
	}
	return decodeBrand(raw), nil
}

// Update actualización parcial de una marca. PUT /admin/brands/:id
func (s *BrandService) Update(ctx context.Context, id int, patch dto.BrandPatch) (*entity.Brand, error) {
	if id <= 0 {
		return nil, fmt.Errorf("id de marca inválido: %w", domain.ErrValidation)
	}
	payload := dto.BrandPayload{}
	if patch.Title != nil {
		payload.Title = ptr(strings.TrimSpace(*patch.Title))
	}
	if patch.Icon != nil {
		payload.Icon = ptr(strings.TrimSpace(*patch.Icon))
	}
	raw, err := s.api.Put(ctx, fmt.Sprintf("/admin/brands/%d", id), payload)
	if err != nil {
		return nil, err
	}
	return decodeBrand(raw), nil
}

// Delete elimina una marca y devuelve el mensaje de confirmación del
// backend. DELETE /admin/brands/:id
func (s *BrandService) Delete(ctx context.Context, id int) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("id de marca inválido: %w", domain.ErrValidation)
	}
	raw, err := s.api.Delete(ctx, fmt.Sprintf("/admin/brands/%d", id))
	if err != nil {
		return "", err
	}
	return decodeMessage(raw), nil
}

// ── Decodificación ────────────────────────────────────────────────────────────

func decodeBrandList(raw []byte) *BrandList {
	payload, shape := dto.Unwrap(raw)
	if shape == dto.ShapeArray {
		var brands []entity.Brand
		if err := json.Unmarshal(payload, &brands); err != nil {
			return &BrandList{Brands: []entity.Brand{}}
		}
		return &BrandList{Brands: brands}
	}
	var body struct {
		Brands     []entity.Brand     `json:"brands"`
		Pagination *entity.Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(payload, &body); err != nil || body.Brands == nil {
		return &BrandList{Brands: []entity.Brand{}, Pagination: body.Pagination}
	}
	return &BrandList{Brands: body.Brands, Pagination: body.Pagination}
}

func decodeBrand(raw []byte) *entity.Brand {
	payload, _ := dto.Unwrap(raw)
	var body struct {
		Brand *entity.Brand `json:"brand"`
	}
	if err := json.Unmarshal(payload, &body); err == nil && body.Brand != nil {
		return body.Brand
	}
	var b entity.Brand
	if err := json.Unmarshal(payload, &b); err != nil {
		return &entity.Brand{}
	}
	return &b
}
