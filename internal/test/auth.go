package test

import (
	"context"
	"errors"

	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"
	pkgAuth "github.com/jsersan/ecommerce-backend-pdf/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(int64) (string, error)
	ParseFn func(string) (int64, error)
	NameVal string
}

func (s StrategyStub) IssueToken(userID int64) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID)
	}
	return "token", nil
}

func (s StrategyStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	ID      int64
	Err     error
	ParseFn func(string) (int64, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return 0, s.Err
	}
	return s.ID, nil
}

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, model.Registration) (*model.User, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)
	ParseFn        func(string) (int64, error)
	ProfileFn      func(context.Context, int64) (*model.User, error)
}

// Register returns a fresh user and token unless overridden.
func (s AuthFacadeStub) Register(ctx context.Context, reg model.Registration) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, reg)
	}
	return &model.User{ID: 1, Username: reg.Username, Email: reg.Email, Role: model.RoleUser}, "token", nil
}

// Authenticate returns a user and token unless overridden.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return &model.User{ID: 1, Username: login, Role: model.RoleUser}, "token", nil
}

// ParseToken returns stored identifier for authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// Profile returns the acting user.
func (s AuthFacadeStub) Profile(ctx context.Context, id int64) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, id)
	}
	return &model.User{ID: id, Username: "user", Role: model.RoleUser}, nil
}

// ShopFacadeStub aggregates facade dependencies for HTTP layer tests.
type ShopFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
