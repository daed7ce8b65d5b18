package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dpereira/storefront/internal/core/domain"
	"github.com/dpereira/storefront/internal/core/service"
)

type stubDirectory struct {
	accounts map[int64]domain.Account
}

func (s *stubDirectory) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	a, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &a, nil
}

type stubCatalog struct {
	mu         sync.Mutex
	items      map[int64]*domain.Item
	reserveErr error
}

func (s *stubCatalog) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	clone := *it
	return &clone, nil
}

func (s *stubCatalog) Reserve(ctx context.Context, id int64, quantity int) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reserveErr != nil {
		return nil, s.reserveErr
	}
	it := s.items[id]
	if it.Quantity < quantity {
		return nil, domain.ErrInsufficientStock
	}
	it.Quantity -= quantity
	clone := *it
	return &clone, nil
}

func (s *stubCatalog) Release(ctx context.Context, id int64, quantity int) (*domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it := s.items[id]
	it.Quantity += quantity
	clone := *it
	return &clone, nil
}

type stubLedger struct {
	mu     sync.Mutex
	orders []domain.Order
	nextID int64
}

func (s *stubLedger) Insert(ctx context.Context, order domain.Order) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	order.ID = s.nextID
	order.CreatedAt = time.Now().UTC()
	s.orders = append(s.orders, order)
	return &order, nil
}

func (s *stubLedger) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.orders {
		if o.ID == id {
			clone := o
			return &clone, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (s *stubLedger) ListAll(ctx context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out, nil
}

func newTestRouter(catalog *stubCatalog) (*gin.Engine, *stubLedger) {
	gin.SetMode(gin.TestMode)

	directory := &stubDirectory{accounts: map[int64]domain.Account{
		1: {ID: 1, Name: "Admin User", Email: "admin@email.com"},
	}}
	ledger := &stubLedger{}
	svc := service.NewOrderService(directory, catalog, ledger, time.Second, zap.NewNop())

	r := gin.New()
	NewOrderHandler(svc).Register(r)
	return r, ledger
}

func defaultCatalog(stock int) *stubCatalog {
	return &stubCatalog{items: map[int64]*domain.Item{
		7: {ID: 7, Name: "Mouse Logitech", Price: decimal.RequireFromString("150.00"), Quantity: stock},
	}}
}

func placeOrder(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPlaceOrderHTTP_Created(t *testing.T) {
	catalog := defaultCatalog(5)
	r, _ := newTestRouter(catalog)

	w := placeOrder(t, r, `{"accountId":1,"itemId":7,"quantity":2}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var order struct {
		ID         int64  `json:"id"`
		UnitPrice  string `json:"unitPrice"`
		TotalPrice string `json:"totalPrice"`
		Status     string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if order.UnitPrice != "150.00" {
		t.Errorf("expected unit price 150.00, got %s", order.UnitPrice)
	}
	if order.TotalPrice != "300.00" {
		t.Errorf("expected total 300.00, got %s", order.TotalPrice)
	}
	if order.Status != "confirmed" {
		t.Errorf("expected confirmed, got %s", order.Status)
	}
	if got := catalog.items[7].Quantity; got != 3 {
		t.Errorf("expected remaining quantity 3, got %d", got)
	}
}

func TestPlaceOrderHTTP_InsufficientStock(t *testing.T) {
	catalog := defaultCatalog(1)
	r, _ := newTestRouter(catalog)

	w := placeOrder(t, r, `{"accountId":1,"itemId":7,"quantity":5}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if got := catalog.items[7].Quantity; got != 1 {
		t.Errorf("quantity must be unchanged, got %d", got)
	}
}

func TestPlaceOrderHTTP_UnknownAccount(t *testing.T) {
	r, _ := newTestRouter(defaultCatalog(5))

	w := placeOrder(t, r, `{"accountId":999,"itemId":7,"quantity":1}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestPlaceOrderHTTP_UnknownItem(t *testing.T) {
	r, _ := newTestRouter(defaultCatalog(5))

	w := placeOrder(t, r, `{"accountId":1,"itemId":42,"quantity":1}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestPlaceOrderHTTP_CatalogDown(t *testing.T) {
	catalog := defaultCatalog(5)
	catalog.reserveErr = domain.Unavailable("catalog", context.DeadlineExceeded)
	r, ledger := newTestRouter(catalog)

	w := placeOrder(t, r, `{"accountId":1,"itemId":7,"quantity":1}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if len(ledger.orders) != 0 {
		t.Error("no order may be persisted when the reserve fails")
	}
}

func TestPlaceOrderHTTP_MalformedBody(t *testing.T) {
	r, _ := newTestRouter(defaultCatalog(5))

	for _, body := range []string{
		`not json`,
		`{}`,
		`{"accountId":1,"itemId":7,"quantity":0}`,
		`{"accountId":1,"itemId":7,"quantity":-2}`,
	} {
		w := placeOrder(t, r, body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, w.Code)
		}
	}
}

func TestGetOrderHTTP(t *testing.T) {
	r, _ := newTestRouter(defaultCatalog(5))

	w := placeOrder(t, r, `{"accountId":1,"itemId":7,"quantity":1}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("setup placement failed: %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/orders/1", nil)
	got := httptest.NewRecorder()
	r.ServeHTTP(got, req)
	if got.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", got.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/orders/999", nil)
	got = httptest.NewRecorder()
	r.ServeHTTP(got, req)
	if got.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", got.Code)
	}
}

func TestListOrdersHTTP(t *testing.T) {
	r, _ := newTestRouter(defaultCatalog(5))

	placeOrder(t, r, `{"accountId":1,"itemId":7,"quantity":1}`)
	placeOrder(t, r, `{"accountId":1,"itemId":7,"quantity":2}`)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var orders []json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &orders); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(orders) != 2 {
		t.Errorf("expected 2 orders, got %d", len(orders))
	}
}
