package entity

// Staff cuenta de empleado administrada vía /admin/staff.
type Staff struct {
	ID     int        `json:"id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Phone  string     `json:"phone,omitempty"`
	Role   string     `json:"role"`
	Branch *BranchRef `json:"branch,omitempty"`
	Status int        `json:"status"`
}
