// Package client holds the JSON/HTTP clients the order orchestrator uses to
// talk to the account directory and the catalog store. Every failure is
// converted to a domain error at this boundary; callers never see transport
// details.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dpereira/storefront/internal/core/domain"
)

const accountServiceName = "account"

type AccountClient struct {
	baseURL string
	http    *http.Client
}

func NewAccountClient(baseURL string, timeout time.Duration) *AccountClient {
	return &AccountClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *AccountClient) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/accounts/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, domain.Unavailable(accountServiceName, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.Unavailable(accountServiceName, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var account domain.Account
		if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
			return nil, domain.Unavailable(accountServiceName, fmt.Errorf("decode account: %w", err))
		}
		return &account, nil
	case http.StatusNotFound:
		return nil, domain.ErrAccountNotFound
	default:
		return nil, domain.Unavailable(accountServiceName,
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
}
