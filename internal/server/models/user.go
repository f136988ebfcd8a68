// Package models holds the server-side domain types shared by repositories,
// services and shells.
package models

import "time"

// Role decides what an identity may see.
type Role string

const (
	RoleStandard      Role = "standard"
	RoleAdministrator Role = "administrator"
)

// User is a registered account. Never mutated after creation.
type User struct {
	ID               int64
	UserName         string
	PasswordHash     []byte
	SecondFactorHash []byte
	Role             Role
	CreatedAt        time.Time
}

// Identity is what a live session resolves to.
type Identity struct {
	UserName string
	Role     Role
}

func (i Identity) IsAdministrator() bool {
	return i.Role == RoleAdministrator
}
