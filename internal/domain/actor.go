package domain

import "github.com/google/uuid"

// Role роль пользователя маркетплейса
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Actor аутентифицированный пользователь, от имени которого выполняется операция
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

// IsAdmin returns true if the actor may use admin operations
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsAuthenticated returns true if the actor carries a user id
func (a Actor) IsAuthenticated() bool {
	return a.UserID != uuid.Nil
}
