package domain

// ID is used across domain entities.
type ID int64

// AuthContext carries the authenticated user explicitly into services,
// instead of reading ambient framework state.
type AuthContext struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"`
	Email  string `json:"email"`
}

// IsAdmin reports whether the context belongs to an admin account.
func (a AuthContext) IsAdmin() bool {
	return a.Role == "admin"
}

// Pagination carries paging params and totals.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total,omitempty"`
}
