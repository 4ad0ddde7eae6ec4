package domain

// Roles carried in admin bearer tokens.
const (
	RoleAdmin = "admin"
)
