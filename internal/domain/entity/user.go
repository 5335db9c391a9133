package entity

import "time"

// Roles de usuarios del panel de administración.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// User usuario del panel de administración. La tienda pública no requiere cuenta.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
