package test

import (
	"context"

	domainErrors "github.com/jsersan/ecommerce-backend-pdf/internal/domain/errors"
	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub(users ...*model.User) *UserRepositoryStub {
	s := &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
	for _, u := range users {
		s.Users[u.Username] = u
		s.ByID[u.ID] = u
		if u.ID >= s.Next {
			s.Next = u.ID + 1
		}
	}
	return s
}

// Create registers user unless the username or email is taken.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[user.Username]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	for _, existing := range s.Users {
		if user.Email != "" && existing.Email == user.Email {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	if s.Next == 0 {
		s.Next = 1
	}
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	user.ID = s.Next
	s.Next++
	stored := user
	s.Users[user.Username] = &stored
	s.ByID[user.ID] = &stored
	return &user, nil
}

// GetByLogin matches username first, then email.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	for _, user := range s.Users {
		if user.Email != "" && user.Email == login {
			return user, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ProductRepositoryStub serves a fixed catalog.
type ProductRepositoryStub struct {
	Products map[int64]*model.Product
	ExistsFn func(context.Context, int64) (bool, error)
	Checked  []int64
}

// NewProductRepositoryStub returns a catalog holding the given product ids.
func NewProductRepositoryStub(ids ...int64) *ProductRepositoryStub {
	s := &ProductRepositoryStub{Products: make(map[int64]*model.Product)}
	for _, id := range ids {
		s.Products[id] = &model.Product{ID: id, Name: "Product " + RandomASCIIString(4, 4)}
	}
	return s
}

func (s *ProductRepositoryStub) Exists(ctx context.Context, id int64) (bool, error) {
	s.Checked = append(s.Checked, id)
	if s.ExistsFn != nil {
		return s.ExistsFn(ctx, id)
	}
	_, ok := s.Products[id]
	return ok, nil
}

func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if p, ok := s.Products[id]; ok {
		return p, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub records drafts and allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn      func(context.Context, model.OrderDraft) (*model.ComposedOrder, error)
	GetFn         func(context.Context, int64) (*model.ComposedOrder, error)
	ListByOwnerFn func(context.Context, int64) ([]model.ComposedOrder, error)
	ListAllFn     func(context.Context, model.PageRequest) (*model.OrderPage, error)
	SummaryFn     func(context.Context, int64) (*model.OrderSummary, error)

	Drafts []model.OrderDraft
	Orders map[int64]*model.ComposedOrder
	Next   int64
}

// Create stores a composed order built from the draft.
func (s *OrderRepositoryStub) Create(ctx context.Context, draft model.OrderDraft) (*model.ComposedOrder, error) {
	s.Drafts = append(s.Drafts, draft)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, draft)
	}
	if s.Orders == nil {
		s.Orders = make(map[int64]*model.ComposedOrder)
	}
	s.Next++
	order := &model.ComposedOrder{
		Order: model.Order{ID: s.Next, UserID: draft.OwnerID, Date: draft.Date, Total: draft.Total},
		Owner: &model.OwnerSummary{ID: draft.OwnerID, Email: "owner@example.com"},
	}
	for i, line := range draft.Lines {
		order.Lines = append(order.Lines, model.ComposedLine{OrderLine: model.OrderLine{
			ID:        int64(i + 1),
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Color:     line.Color,
			Quantity:  line.Quantity,
			Name:      line.Name,
		}})
	}
	s.Orders[order.ID] = order
	return order, nil
}

func (s *OrderRepositoryStub) Get(ctx context.Context, id int64) (*model.ComposedOrder, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	if order, ok := s.Orders[id]; ok {
		return order, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) ListByOwner(ctx context.Context, ownerID int64) ([]model.ComposedOrder, error) {
	if s.ListByOwnerFn != nil {
		return s.ListByOwnerFn(ctx, ownerID)
	}
	result := make([]model.ComposedOrder, 0)
	for _, order := range s.Orders {
		if order.UserID == ownerID {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (s *OrderRepositoryStub) ListAll(ctx context.Context, page model.PageRequest) (*model.OrderPage, error) {
	if s.ListAllFn != nil {
		return s.ListAllFn(ctx, page)
	}
	total := int64(len(s.Orders))
	return &model.OrderPage{Orders: []model.ComposedOrder{}, Total: total, Page: page.Page, Limit: page.Limit, Pages: model.PageCount(total, page.Limit)}, nil
}

func (s *OrderRepositoryStub) Summary(ctx context.Context, ownerID int64) (*model.OrderSummary, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(ctx, ownerID)
	}
	return &model.OrderSummary{}, nil
}
