package entity

// Roles de staff reconocidos por el backend.
const (
	RoleAdmin    = "Admin"
	RoleStaff    = "Staff"
	RoleDelivery = "Delivery"
)

// BranchRef referencia mínima a una sucursal, tal como la envía el backend
// incrustada en usuarios y staff.
type BranchRef struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// User usuario autenticado del panel de administración.
// Branch es opcional: los administradores de cadena no pertenecen a una sucursal.
type User struct {
	ID     int        `json:"id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Role   string     `json:"role"`
	Branch *BranchRef `json:"branch,omitempty"`
}
