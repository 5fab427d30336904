// Package service contiene los servicios de recurso: la traducción tipada
// entre la forma de los formularios del panel y la forma de alambre del
// backend, un servicio por familia de entidad. Todos comparten la misma
// política: validar antes de tocar la red, recortar cadenas, omitir
// opcionales ausentes y decodificar el sobre {data: …} en un único paso que
// nunca falla (ante una forma inesperada se degrada a lista vacía u objeto
// crudo).
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

// CategoryList resultado normalizado de un listado de categorías.
type CategoryList struct {
	Categories []entity.Category
	Pagination *entity.Pagination
}

// CategoryService acceso tipado a /categories y /admin/categories.
type CategoryService struct {
	api *rest.Client
}

// NewCategoryService construye el servicio.
func NewCategoryService(api *rest.Client) *CategoryService {
	return &CategoryService{api: api}
}

// List lista categorías (plano). GET /categories
func (s *CategoryService) List(ctx context.Context, params dto.ListParams) (*CategoryList, error) {
	path := "/categories"
	if q := params.Encode(); q != "" {
		path += "?" + q
	}
	raw, err := s.api.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeCategoryList(raw), nil
}

// Tree devuelve el árbol jerárquico. GET /categories/tree
func (s *CategoryService) Tree(ctx context.Context) ([]entity.Category, error) {
	raw, err := s.api.Get(ctx, "/categories/tree")
	if err != nil {
		return nil, err
	}
	return decodeCategoryList(raw).Categories, nil
}

// Roots devuelve solo las categorías de primer nivel.
func (s *CategoryService) Roots(ctx context.Context) ([]entity.Category, error) {
	list, err := s.List(ctx, dto.ListParams{})
	if err != nil {
		return nil, err
	}
	roots := make([]entity.Category, 0, len(list.Categories))
	for _, c := range list.Categories {
		if c.IsRoot() {
			roots = append(roots, c)
		}
	}
	return roots, nil
}

// Get obtiene una categoría por id. GET /categories/:id
func (s *CategoryService) Get(ctx context.Context, id int) (*entity.Category, error) {
	if id <= 0 {
		return nil, fmt.Errorf("id de categoría inválido: %w", domain.ErrValidation)
	}
	raw, err := s.api.Get(ctx, fmt.Sprintf("/categories/%d", id))
	if err != nil {
		return nil, err
	}
	return decodeCategory(raw), nil
}

// Create crea una categoría. Valida localmente antes de emitir la petición:
// título no vacío y nivel entre 1 y 3. POST /admin/categories
func (s *CategoryService) Create(ctx context.Context, form dto.CategoryForm) (*entity.Category, error) {
	title := strings.TrimSpace(form.Title)
	if title == "" {
		return nil, fmt.Errorf("el título de la categoría es requerido: %w", domain.ErrValidation)
	}
	if form.Level < entity.CategoryLevelMin || form.Level > entity.CategoryLevelMax {
		return nil, fmt.Errorf("el nivel de categoría debe ser 1, 2 o 3: %w", domain.ErrValidation)
	}

	payload := dto.CategoryPayload{
		Title:      &title,
		Level:      ptr(form.Level),
		TitleTamil: optionalString(form.TitleTamil),
		Icon:       optionalString(form.Icon),
		Color:      optionalString(form.Color),
		Parent:     form.Parent,
		OrderBy:    form.OrderBy,
		Margin:     form.Margin,
	}

	raw, err := s.api.Post(ctx, "/admin/categories", payload)
	if err != nil {
		return nil, err
	}
	return decodeCategory(raw), nil
}

// Update actualiza parcialmente: solo los campos presentes en el patch viajan
// en el payload. PUT /admin/categories/:id
func (s *CategoryService) Update(ctx context.Context, id int, patch dto.CategoryPatch) (*entity.Category, error) {
	if id <= 0 {
		return nil, fmt.Errorf("id de categoría inválido: %w", domain.ErrValidation)
	}
	payload := dto.CategoryPayload{
		Parent:  patch.Parent,
		Level:   patch.Level,
		OrderBy: patch.OrderBy,
		Margin:  patch.Margin,
	}
	if patch.Title != nil {
		payload.Title = ptr(strings.TrimSpace(*patch.Title))
	}
	if patch.TitleTamil != nil {
		payload.TitleTamil = ptr(strings.TrimSpace(*patch.TitleTamil))
	}
	if patch.Icon != nil {
		payload.Icon = ptr(strings.TrimSpace(*patch.Icon))
	}
	if patch.Color != nil {
		payload.Color = ptr(strings.TrimSpace(*patch.Color))
	}

	raw, err := s.api.Put(ctx, fmt.Sprintf("/admin/categories/%d", id), payload)
	if err != nil {
		return nil, err
	}
	return decodeCategory(raw), nil
}

// Delete elimina una categoría y devuelve el mensaje de confirmación del
// backend. DELETE /admin/categories/:id
func (s *CategoryService) Delete(ctx context.Context, id int) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("id de categoría inválido: %w", domain.ErrValidation)
	}
	raw, err := s.api.Delete(ctx, fmt.Sprintf("/admin/categories/%d", id))
	if err != nil {
		return "", err
	}
	return decodeMessage(raw), nil
}

// ── Decodificación ────────────────────────────────────────────────────────────

func decodeCategoryList(raw []byte) *CategoryList {
	payload, shape := dto.Unwrap(raw)
	if shape == dto.ShapeArray {
		var cats []entity.Category
		if err := json.Unmarshal(payload, &cats); err != nil {
			return &CategoryList{Categories: []entity.Category{}}
		}
		return &CategoryList{Categories: cats}
	}
	var body struct {
		Categories []entity.Category  `json:"categories"`
		Pagination *entity.Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(payload, &body); err != nil || body.Categories == nil {
		return &CategoryList{Categories: []entity.Category{}, Pagination: body.Pagination}
	}
	return &CategoryList{Categories: body.Categories, Pagination: body.Pagination}
}

func decodeCategory(raw []byte) *entity.Category {
	payload, _ := dto.Unwrap(raw)
	var body struct {
		Category *entity.Category `json:"category"`
	}
	if err := json.Unmarshal(payload, &body); err == nil && body.Category != nil {
		return body.Category
	}
	var cat entity.Category
	if err := json.Unmarshal(payload, &cat); err != nil {
		return &entity.Category{}
	}
	return &cat
}
