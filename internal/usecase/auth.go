package usecase

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	domainErrors "github.com/jsersan/ecommerce-backend-pdf/internal/domain/errors"
	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"
	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/repository"
	pkgAuth "github.com/jsersan/ecommerce-backend-pdf/internal/pkg/auth"
)

// ErrInvalidRegistration is returned when required registration fields are missing.
var ErrInvalidRegistration = errors.New("username, password and a valid email are required")

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates a customer account and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, reg model.Registration) (*model.User, string, error) {
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.TrimSpace(reg.Email)
	if reg.Username == "" || reg.Password == "" || reg.Email == "" {
		return nil, "", ErrInvalidRegistration
	}
	if _, err := mail.ParseAddress(reg.Email); err != nil {
		return nil, "", ErrInvalidRegistration
	}

	hash, err := u.hasher.Hash(reg.Password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, model.User{
		Username:     reg.Username,
		PasswordHash: hash,
		Role:         model.RoleUser,
		Name:         strings.TrimSpace(reg.Name),
		Email:        reg.Email,
		Address:      strings.TrimSpace(reg.Address),
		City:         strings.TrimSpace(reg.City),
		PostalCode:   strings.TrimSpace(reg.PostalCode),
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials given as username or email.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// Profile fetches the acting user.
func (u *AuthUseCase) Profile(ctx context.Context, id int64) (*model.User, error) {
	if id <= 0 {
		return nil, domainErrors.ErrUnauthenticated
	}
	return u.users.GetByID(ctx, id)
}
