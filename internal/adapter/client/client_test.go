package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dpereira/storefront/internal/core/domain"
)

func TestAccountClient_GetAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounts/1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":1,"name":"Admin User","email":"admin@email.com"}`))
	}))
	defer srv.Close()

	c := NewAccountClient(srv.URL, time.Second)

	account, err := c.GetAccount(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.ID != 1 || account.Name != "Admin User" {
		t.Errorf("unexpected account: %+v", account)
	}

	_, err = c.GetAccount(context.Background(), 999)
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected account not found, got %v", err)
	}
}

func TestAccountClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewAccountClient(srv.URL, 20*time.Millisecond)

	_, err := c.GetAccount(context.Background(), 1)
	if domain.KindOf(err) != domain.KindUnavailable {
		t.Fatalf("expected unavailable on timeout, got %v", err)
	}

	var derr *domain.Error
	if !errors.As(err, &derr) || derr.Service != "account" {
		t.Errorf("expected account service tag, got %v", err)
	}
}

func TestCatalogClient_GetItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":7,"name":"Mouse Logitech","price":"150.00","quantity":20}`))
	}))
	defer srv.Close()

	c := NewCatalogClient(srv.URL, time.Second)

	item, err := c.GetItem(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.Price.Equal(decimal.RequireFromString("150.00")) {
		t.Errorf("expected price 150.00, got %s", item.Price)
	}
	if item.Quantity != 20 {
		t.Errorf("expected quantity 20, got %d", item.Quantity)
	}
}

func TestCatalogClient_ReserveConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/items/7/reserve" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	c := NewCatalogClient(srv.URL, time.Second)

	_, err := c.Reserve(context.Background(), 7, 5)
	if !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
}

func TestCatalogClient_ReserveNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewCatalogClient(srv.URL, time.Second)

	_, err := c.Reserve(context.Background(), 42, 1)
	if !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected item not found, got %v", err)
	}
}

func TestCatalogClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewCatalogClient(srv.URL, time.Second)

	_, err := c.Reserve(context.Background(), 7, 1)
	if domain.KindOf(err) != domain.KindUnavailable {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestCatalogClient_Release(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/items/7/release" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":7,"name":"Mouse Logitech","price":"150.00","quantity":21}`))
	}))
	defer srv.Close()

	c := NewCatalogClient(srv.URL, time.Second)

	item, err := c.Release(context.Background(), 7, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Quantity != 21 {
		t.Errorf("expected quantity 21, got %d", item.Quantity)
	}
}
