// Package gateway implements the edge router: path dispatch to the owning
// service, health aggregation, and nothing else. Entity semantics live in
// the services behind it.
package gateway

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type backend struct {
	name string
	url  string
}

type Gateway struct {
	accounts backend
	catalog  backend
	orders   backend
	client   *http.Client
	log      *zap.Logger
}

func New(accountsURL, catalogURL, ordersURL string, timeout time.Duration, log *zap.Logger) *Gateway {
	return &Gateway{
		accounts: backend{name: "account-service", url: accountsURL},
		catalog:  backend{name: "catalog-service", url: catalogURL},
		orders:   backend{name: "order-service", url: ordersURL},
		client:   &http.Client{Timeout: timeout},
		log:      log,
	}
}

func (g *Gateway) Register(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "api-gateway", "status": "healthy"})
	})
	r.GET("/api/health/all", g.healthAll)

	r.Any("/api/accounts", g.forward(g.accounts))
	r.Any("/api/accounts/*rest", g.forward(g.accounts))
	r.Any("/api/items", g.forward(g.catalog))
	r.Any("/api/items/*rest", g.forward(g.catalog))
	r.Any("/api/orders", g.forward(g.orders))
	r.Any("/api/orders/*rest", g.forward(g.orders))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
}

// forward relays the request to the owning service, stripping the /api
// prefix. The response body and status come back verbatim; only transport
// failures are translated, into 503.
func (g *Gateway) forward(b backend) gin.HandlerFunc {
	return func(c *gin.Context) {
		target := b.url + strings.TrimPrefix(c.Request.URL.Path, "/api")
		if q := c.Request.URL.RawQuery; q != "" {
			target += "?" + q
		}

		req, err := http.NewRequestWithContext(c.Request.Context(),
			c.Request.Method, target, c.Request.Body)
		if err != nil {
			g.unavailable(c, b, err)
			return
		}
		if ct := c.GetHeader("Content-Type"); ct != "" {
			req.Header.Set("Content-Type", ct)
		}
		req.Header.Set("X-Request-Id", c.GetString("request_id"))

		resp, err := g.client.Do(req)
		if err != nil {
			g.unavailable(c, b, err)
			return
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			g.unavailable(c, b, err)
			return
		}
		c.Data(resp.StatusCode, resp.Header.Get("Content-Type"), body)
	}
}

func (g *Gateway) unavailable(c *gin.Context, b backend, err error) {
	g.log.Warn("backend unavailable",
		zap.String("backend", b.name),
		zap.Error(err),
	)
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": b.name + " unavailable"})
}
