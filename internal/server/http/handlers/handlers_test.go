package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/jsersan/ecommerce-backend-pdf/internal/domain/errors"
	"github.com/jsersan/ecommerce-backend-pdf/internal/domain/model"
	"github.com/jsersan/ecommerce-backend-pdf/internal/server/http/dto"
	"github.com/jsersan/ecommerce-backend-pdf/internal/server/http/middleware"
	testhelpers "github.com/jsersan/ecommerce-backend-pdf/internal/test"
	"github.com/jsersan/ecommerce-backend-pdf/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// performRequest routes target through a single handler registered on route
// and authenticates the request as userID when it is positive.
func performRequest(t *testing.T, method, route, target string, handler gin.HandlerFunc, userID int64, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if userID > 0 {
			c.Set(middleware.UserIDContextKey, userID)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", resp.Body.String(), err)
	}
	return body
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	username := testhelpers.RandomASCIIString(7, 14)
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.RegisterRequest{Username: username, Password: password, Email: "new@example.com", City: "Bilbao"})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(_ context.Context, reg model.Registration) (*model.User, string, error) {
		if reg.Username != username || reg.Password != password || reg.City != "Bilbao" {
			t.Fatalf("unexpected registration passed to facade: %+v", reg)
		}
		return &model.User{ID: 7, Username: reg.Username, Email: reg.Email, PasswordHash: "secret-hash", Role: model.RoleUser}, "issued-token", nil
	}})

	resp := performRequest(t, http.MethodPost, "/register", "/register", handler.Register, 0, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer issued-token" {
		t.Fatalf("expected auth header, got %q", got)
	}
	if strings.Contains(resp.Body.String(), "secret-hash") {
		t.Fatal("password hash leaked in response")
	}
	var out dto.AuthResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.User.ID != 7 || out.Token != "issued-token" {
		t.Fatalf("unexpected response %+v", out)
	}
}

func TestAuthHandlerRegisterErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid", usecase.ErrInvalidRegistration, http.StatusBadRequest},
		{"duplicate", domainErrors.ErrAlreadyExists, http.StatusConflict},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}
	body, _ := json.Marshal(dto.RegisterRequest{Username: "user", Password: "pass", Email: "a@b.c"})

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, model.Registration) (*model.User, string, error) {
				return nil, "", tc.err
			}})
			resp := performRequest(t, http.MethodPost, "/register", "/register", handler.Register, 0, body)
			if resp.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, resp.Code)
			}
		})
	}

	resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, 0, []byte("{"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed json, got %d", resp.Code)
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	var gotLogin string
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{AuthenticateFn: func(_ context.Context, login, password string) (*model.User, string, error) {
		gotLogin = login
		if password != "pass" {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return &model.User{ID: 3, Username: "ana"}, "token", nil
	}})

	body, _ := json.Marshal(dto.LoginRequest{Email: "ana@example.com", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/login", "/login", handler.Login, 0, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotLogin != "ana@example.com" {
		t.Fatalf("expected email used as login, got %q", gotLogin)
	}

	body, _ = json.Marshal(dto.LoginRequest{Username: "ana", Password: "wrong"})
	resp = performRequest(t, http.MethodPost, "/login", "/login", handler.Login, 0, body)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthHandlerProfile(t *testing.T) {
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{})
	resp := performRequest(t, http.MethodGet, "/profile", "/profile", handler.Profile, 5, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var out dto.UserResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil || out.ID != 5 {
		t.Fatalf("unexpected profile %s: %v", resp.Body.String(), err)
	}
}

func TestOrderHandlerCreate(t *testing.T) {
	var got model.OrderSubmission
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{PlaceFn: func(_ context.Context, actorID int64, sub model.OrderSubmission) (*model.Placement, error) {
		got = sub
		order := testhelpers.ComposedOrderFixture(11, actorID)
		return &model.Placement{Order: order, Notification: model.NotificationOutcome{Status: model.NotificationSent, Recipient: "owner@example.com"}}, nil
	}})

	body := []byte(`{"total": 29.98, "fecha": "2024-05-17", "lineas": [{"idprod": 7, "cant": 2, "color": "black"}]}`)
	resp := performRequest(t, http.MethodPost, "/orders", "/orders", handler.Create, 42, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if !got.Total.Equal(decimal.RequireFromString("29.98")) || len(got.Lines) != 1 || got.Lines[0].Quantity != 2 {
		t.Fatalf("unexpected submission %+v", got)
	}
	if got.Date == nil || got.Date.Day() != 17 {
		t.Fatalf("expected parsed date, got %v", got.Date)
	}

	var out dto.PlacementResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Order.ID != 11 || out.Order.Total != 29.98 || out.Notification.Status != "sent" {
		t.Fatalf("unexpected response %+v", out)
	}
	if len(out.Order.Lines) != 1 || out.Order.Lines[0].Subtotal == nil || *out.Order.Lines[0].Subtotal != 29.98 {
		t.Fatalf("unexpected lines %+v", out.Order.Lines)
	}
}

func TestOrderHandlerCreateAcceptsEnglishLines(t *testing.T) {
	var lines int
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{PlaceFn: func(_ context.Context, actorID int64, sub model.OrderSubmission) (*model.Placement, error) {
		lines = len(sub.Lines)
		return &model.Placement{Order: testhelpers.ComposedOrderFixture(1, actorID)}, nil
	}})

	body := []byte(`{"total": "10", "lines": [{"idprod": 7, "cant": 1, "color": "red"}]}`)
	resp := performRequest(t, http.MethodPost, "/orders", "/orders", handler.Create, 1, body)
	if resp.Code != http.StatusCreated || lines != 1 {
		t.Fatalf("expected 201 with one line, got %d and %d lines", resp.Code, lines)
	}
}

func TestOrderHandlerCreateErrors(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   int
		line   int
		detail string
	}{
		{"total", domainErrors.ErrInvalidTotal, http.StatusBadRequest, 0, ""},
		{"empty", domainErrors.ErrEmptyOrder, http.StatusBadRequest, 0, ""},
		{"line", &domainErrors.LineError{Line: 2, Reason: domainErrors.ErrInvalidQuantity}, http.StatusBadRequest, 2, ""},
		{"integrity", fmt.Errorf("%w: %s", domainErrors.ErrIntegrity, "product 9 is gone"), http.StatusBadRequest, 0, "product 9 is gone"},
		{"unauthenticated", domainErrors.ErrUnauthenticated, http.StatusUnauthorized, 0, ""},
		{"internal", errors.New("db down"), http.StatusInternalServerError, 0, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewOrderHandler(testhelpers.OrderFacadeStub{PlaceFn: func(context.Context, int64, model.OrderSubmission) (*model.Placement, error) {
				return nil, tc.err
			}})
			resp := performRequest(t, http.MethodPost, "/orders", "/orders", handler.Create, 1, []byte(`{"total": 1}`))
			if resp.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, resp.Code)
			}
			body := decodeError(t, resp)
			if body.Line != tc.line || body.Detail != tc.detail {
				t.Fatalf("unexpected error body %+v", body)
			}
			if tc.code == http.StatusInternalServerError && strings.Contains(body.Error, "db down") {
				t.Fatal("internal error detail leaked to client")
			}
		})
	}

	handler := NewOrderHandler(testhelpers.OrderFacadeStub{})
	if resp := performRequest(t, http.MethodPost, "/orders", "/orders", handler.Create, 1, []byte(`{"total": 1, "fecha": "17/05/2024"}`)); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed date, got %d", resp.Code)
	}
	if resp := performRequest(t, http.MethodPost, "/orders", "/orders", handler.Create, 1, []byte(`[`)); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}
}

func TestOrderHandlerGet(t *testing.T) {
	cases := []struct {
		name   string
		target string
		err    error
		code   int
	}{
		{"ok", "/orders/5", nil, http.StatusOK},
		{"invalid id", "/orders/abc", nil, http.StatusBadRequest},
		{"zero id", "/orders/0", nil, http.StatusBadRequest},
		{"forbidden", "/orders/5", domainErrors.ErrForbidden, http.StatusForbidden},
		{"missing", "/orders/5", domainErrors.ErrNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewOrderHandler(testhelpers.OrderFacadeStub{OrderFn: func(_ context.Context, actorID, orderID int64) (*model.ComposedOrder, error) {
				if tc.err != nil {
					return nil, tc.err
				}
				return testhelpers.ComposedOrderFixture(orderID, actorID), nil
			}})
			resp := performRequest(t, http.MethodGet, "/orders/:id", tc.target, handler.Get, 1, nil)
			if resp.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, resp.Code)
			}
		})
	}
}

func TestOrderHandlerListByOwner(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{OwnerFn: func(_ context.Context, actorID, ownerID int64) ([]model.ComposedOrder, error) {
		if ownerID == 9 {
			return nil, nil
		}
		return []model.ComposedOrder{*testhelpers.ComposedOrderFixture(1, ownerID)}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/orders/user/:userId", "/orders/user/3", handler.ListByOwner, 3, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var out []dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil || len(out) != 1 || out[0].UserID != 3 {
		t.Fatalf("unexpected body %s: %v", resp.Body.String(), err)
	}

	resp = performRequest(t, http.MethodGet, "/orders/user/:userId", "/orders/user/9", handler.ListByOwner, 9, nil)
	if resp.Code != http.StatusOK || strings.TrimSpace(resp.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %d %s", resp.Code, resp.Body.String())
	}
}

func TestOrderHandlerList(t *testing.T) {
	var got model.PageRequest
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{AllFn: func(_ context.Context, actorID int64, page model.PageRequest) (*model.OrderPage, error) {
		if actorID != 2 {
			return nil, domainErrors.ErrForbidden
		}
		got = page
		return &model.OrderPage{Orders: []model.ComposedOrder{}, Total: 41, Page: 3, Limit: 20, Pages: 3}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/orders", "/orders?page=3&limit=20", handler.List, 2, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got.Page != 3 || got.Limit != 20 {
		t.Fatalf("unexpected page request %+v", got)
	}
	var out dto.OrderPageResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Pagination.Total != 41 || out.Pagination.Pages != 3 || out.Orders == nil {
		t.Fatalf("unexpected page %+v", out)
	}

	resp = performRequest(t, http.MethodGet, "/orders", "/orders", handler.List, 1, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestOrderHandlerSummary(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{SummaryFn: func(context.Context, int64) (*model.OrderSummary, error) {
		return &model.OrderSummary{
			TotalOrders: 2,
			TotalSpent:  decimal.RequireFromString("40.50"),
			LastOrder:   &model.Order{ID: 8, Date: testhelpers.FixtureDate, Total: decimal.RequireFromString("10.50")},
		}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/orders/summary", "/orders/summary", handler.Summary, 1, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var out dto.SummaryResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.TotalOrders != 2 || out.TotalSpent != 40.5 || out.LastOrder == nil || out.LastOrder.Date != "2024-05-17" {
		t.Fatalf("unexpected summary %+v", out)
	}
}

func TestOrderHandlerDocument(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{})
	resp := performRequest(t, http.MethodGet, "/orders/:id/document", "/orders/12/document", handler.Document, 1, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := resp.Header().Get("Content-Disposition"); !strings.Contains(cd, "delivery_note_12.pdf") {
		t.Fatalf("unexpected disposition %q", cd)
	}
	if !strings.HasPrefix(resp.Body.String(), "%PDF") {
		t.Fatalf("unexpected body %q", resp.Body.String())
	}
}

func TestOrderHandlerResend(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"sent", nil, http.StatusOK},
		{"missing email", domainErrors.ErrMissingEmail, http.StatusBadRequest},
		{"forbidden", domainErrors.ErrForbidden, http.StatusForbidden},
		{"transport", fmt.Errorf("%w: %v", domainErrors.ErrDispatchFailed, errors.New("dial tcp")), http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewOrderHandler(testhelpers.OrderFacadeStub{ResendFn: func(_ context.Context, _ int64, orderID int64) (*model.DispatchReceipt, error) {
				if tc.err != nil {
					return nil, tc.err
				}
				return &model.DispatchReceipt{OrderID: orderID, Recipient: "owner@example.com"}, nil
			}})
			resp := performRequest(t, http.MethodPost, "/orders/:id/document", "/orders/4/document", handler.Resend, 1, nil)
			if resp.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, resp.Code)
			}
			if tc.err != nil {
				return
			}
			var out dto.ResendResponse
			if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if out.OrderID != 4 || out.Email != "owner@example.com" {
				t.Fatalf("unexpected response %+v", out)
			}
		})
	}
}

var _ ShopFacade = testhelpers.ShopFacadeStub{}
