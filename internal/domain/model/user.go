package model

import "time"

// Role is the privilege level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered customer or administrator.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	Name         string
	Email        string
	Address      string
	City         string
	PostalCode   string
	CreatedAt    time.Time
}

// Elevated reports whether the user may act on any owner's orders.
func (u *User) Elevated() bool {
	return u != nil && u.Role == RoleAdmin
}

// Summary projects the user onto the fields shown alongside orders.
func (u *User) Summary() OwnerSummary {
	return OwnerSummary{
		ID:         u.ID,
		Username:   u.Username,
		Name:       u.Name,
		Email:      u.Email,
		Address:    u.Address,
		City:       u.City,
		PostalCode: u.PostalCode,
	}
}

// Registration carries the fields accepted when creating an account.
type Registration struct {
	Username   string
	Password   string
	Name       string
	Email      string
	Address    string
	City       string
	PostalCode string
}
