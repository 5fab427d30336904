package dto

import "github.com/jhoicas/supermercado-admin/internal/domain/entity"

// LoginRequest credenciales para POST /auth/staff/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginData payload de la respuesta de login: token + usuario.
type LoginData struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

// RegisterData datos del formulario de registro. El backend no expone un
// endpoint público de registro de staff; la operación existe solo para
// conservar la interfaz y siempre falla.
type RegisterData struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"` // Admin | Staff | Delivery
}
