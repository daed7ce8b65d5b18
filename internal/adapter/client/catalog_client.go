package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dpereira/storefront/internal/core/domain"
)

const catalogServiceName = "catalog"

type CatalogClient struct {
	baseURL string
	http    *http.Client
}

func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	return &CatalogClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *CatalogClient) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/items/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, domain.Unavailable(catalogServiceName, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.Unavailable(catalogServiceName, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return decodeItem(resp)
	case http.StatusNotFound:
		return nil, domain.ErrItemNotFound
	default:
		return nil, domain.Unavailable(catalogServiceName,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
}

// Reserve asks the catalog store to atomically decrement quantity on hand.
// The store re-checks sufficiency server-side; a 409 here is authoritative
// regardless of what an earlier GetItem reported.
func (c *CatalogClient) Reserve(ctx context.Context, id int64, quantity int) (*domain.Item, error) {
	return c.adjust(ctx, id, quantity, "reserve")
}

// Release restores previously reserved quantity; the orchestrator calls it
// to compensate when the ledger insert fails after a successful reserve.
func (c *CatalogClient) Release(ctx context.Context, id int64, quantity int) (*domain.Item, error) {
	return c.adjust(ctx, id, quantity, "release")
}

func (c *CatalogClient) adjust(ctx context.Context, id int64, quantity int, op string) (*domain.Item, error) {
	body, err := json.Marshal(map[string]int{"quantity": quantity})
	if err != nil {
		return nil, domain.Unavailable(catalogServiceName, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		fmt.Sprintf("%s/items/%d/%s", c.baseURL, id, op), bytes.NewReader(body))
	if err != nil {
		return nil, domain.Unavailable(catalogServiceName, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.Unavailable(catalogServiceName, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return decodeItem(resp)
	case http.StatusNotFound:
		return nil, domain.ErrItemNotFound
	case http.StatusConflict:
		return nil, domain.ErrInsufficientStock
	default:
		return nil, domain.Unavailable(catalogServiceName,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
}

func decodeItem(resp *http.Response) (*domain.Item, error) {
	var item domain.Item
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, domain.Unavailable(catalogServiceName, fmt.Errorf("decode item: %w", err))
	}
	return &item, nil
}
