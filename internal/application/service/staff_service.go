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

// Roles admitidos en el formulario de staff.
var staffRoles = map[string]bool{
	entity.RoleAdmin:    true,
	entity.RoleStaff:    true,
	entity.RoleDelivery: true,
}

// StaffList resultado normalizado de un listado de staff.
type StaffList struct {
	Staff      []entity.Staff
	Pagination *entity.Pagination
}

// StaffService acceso tipado a /admin/staff (solo administradores).
type StaffService struct {
	api *rest.Client
}

// NewStaffService construye el servicio.
func NewStaffService(api *rest.Client) *StaffService {
	return &StaffService{api: api}
}

// List lista cuentas de staff. GET /admin/staff
func (s *StaffService) List(ctx context.Context, params dto.ListParams) (*StaffList, error) {
	path := "/admin/staff"
	if q := params.Encode(); q != "" {
		path += "?" + q
	}
	raw, err := s.api.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeStaffList(raw), nil
}

// Create crea una cuenta de staff; nombre, email, contraseña y un rol
// reconocido son requeridos. POST /admin/staff
func (s *StaffService) Create(ctx context.Context, form dto.StaffForm) (*entity.Staff, error) {
	name := strings.TrimSpace(form.Name)
	email := strings.TrimSpace(form.Email)
	if name == "" || email == "" || form.Password == "" {
		return nil, fmt.Errorf("nombre, email y contraseña son requeridos: %w", domain.ErrValidation)
	}
	if !staffRoles[form.Role] {
		return nil, fmt.Errorf("rol de staff desconocido %q: %w", form.Role, domain.ErrValidation)
	}
	payload := dto.StaffPayload{
		Name:     &name,
		Email:    &email,
		Password: &form.Password,
		Role:     &form.Role,
		Phone:    optionalString(form.Phone),
		Branch:   optionalID(form.Branch),
	}
	raw, err := s.api.Post(ctx, "/admin/staff", payload)
	if err != nil {
		return nil, err
	}
	return decodeStaff(raw), nil
}

// Update actualización parcial de una cuenta. PUT /admin/staff/:id
func (s *StaffService) Update(ctx context.Context, id int, patch dto.StaffPatch) (*entity.Staff, error) {
	if id <= 0 {
		return nil, fmt.Errorf("id de staff inválido: %w", domain.ErrValidation)
	}
	if patch.Role != nil && !staffRoles[*patch.Role] {
		return nil, fmt.Errorf("rol de staff desconocido %q: %w", *patch.Role, domain.ErrValidation)
	}
	payload := dto.StaffPayload{
		Password: patch.Password,
		Role:     patch.Role,
		Branch:   patch.Branch,
		Status:   patch.Status,
	}
	if patch.Name != nil {
		payload.Name = ptr(strings.TrimSpace(*patch.Name))
	}
	if patch.Email != nil {
		payload.Email = ptr(strings.TrimSpace(*patch.Email))
	}
	if patch.Phone != nil {
		payload.Phone = ptr(strings.TrimSpace(*patch.Phone))
	}
	raw, err := s.api.Put(ctx, fmt.Sprintf("/admin/staff/%d", id), payload)
	if err != nil {
		return nil, err
	}
	return decodeStaff(raw), nil
}

// Delete elimina una cuenta de staff y devuelve el mensaje de confirmación
// del backend. DELETE /admin/staff/:id
func (s *StaffService) Delete(ctx context.Context, id int) (string, error) {
	if id <= 0 {
		return "", fmt.Errorf("id de staff inválido: %w", domain.ErrValidation)
	}
	raw, err := s.api.Delete(ctx, fmt.Sprintf("/admin/staff/%d", id))
	if err != nil {
		return "", err
	}
	return decodeMessage(raw), nil
}

// ── Decodificación ────────────────────────────────────────────────────────────

func decodeStaffList(raw []byte) *StaffList {
	payload, shape := dto.Unwrap(raw)
	if shape == dto.ShapeArray {
		var staff []entity.Staff
		if err := json.Unmarshal(payload, &staff); err != nil {
			return &StaffList{Staff: []entity.Staff{}}
		}
		return &StaffList{Staff: staff}
	}
	var body struct {
		Staff      []entity.Staff     `json:"staff"`
		Pagination *entity.Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(payload, &body); err != nil || body.Staff == nil {
		return &StaffList{Staff: []entity.Staff{}, Pagination: body.Pagination}
	}
	return &StaffList{Staff: body.Staff, Pagination: body.Pagination}
}

func decodeStaff(raw []byte) *entity.Staff {
	payload, _ := dto.Unwrap(raw)
	var body struct {
		Staff *entity.Staff `json:"staff"`
	}
	if err := json.Unmarshal(payload, &body); err == nil && body.Staff != nil {
		return body.Staff
	}
	var st entity.Staff
	if err := json.Unmarshal(payload, &st); err != nil {
		return &entity.Staff{}
	}
	return &st
}
