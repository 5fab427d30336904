package dto

// StaffForm datos del diálogo de cuenta de staff.
type StaffForm struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     string // Admin | Staff | Delivery
	Branch   string // id de sucursal como texto; opcional
}

// StaffPatch actualización parcial de una cuenta de staff.
type StaffPatch struct {
	Name     *string
	Email    *string
	Phone    *string
	Password *string
	Role     *string
	Branch   *int
	Status   *int
}

// StaffPayload cuerpo hacia POST/PUT /admin/staff.
type StaffPayload struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
	Branch   *int    `json:"branch,omitempty"`
	Status   *int    `json:"status,omitempty"`
}
