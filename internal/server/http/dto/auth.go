package dto

import "github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"

// RegisterRequest describes the account creation payload.
type RegisterRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Name       string `json:"nombre"`
	Email      string `json:"email"`
	Address    string `json:"direccion"`
	City       string `json:"ciudad"`
	PostalCode string `json:"cp"`
}

// Registration converts the payload into the domain type.
func (r RegisterRequest) Registration() model.Registration {
	return model.Registration{
		Username:   r.Username,
		Password:   r.Password,
		Name:       r.Name,
		Email:      r.Email,
		Address:    r.Address,
		City:       r.City,
		PostalCode: r.PostalCode,
	}
}

// LoginRequest accepts the login under any of the names clients use for it.
type LoginRequest struct {
	Login    string `json:"login"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Identifier returns the first non-empty login field.
func (r LoginRequest) Identifier() string {
	switch {
	case r.Login != "":
		return r.Login
	case r.Username != "":
		return r.Username
	default:
		return r.Email
	}
}

// UserResponse is the public view of a user. The password hash never leaves the server.
type UserResponse struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Name       string `json:"nombre"`
	Email      string `json:"email"`
	Address    string `json:"direccion"`
	City       string `json:"ciudad"`
	PostalCode string `json:"cp"`
	Role       string `json:"role"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// NewUserResponse projects a user onto its public view.
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Name:       u.Name,
		Email:      u.Email,
		Address:    u.Address,
		City:       u.City,
		PostalCode: u.PostalCode,
		Role:       string(u.Role),
	}
}
