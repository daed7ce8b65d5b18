package gateway

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

type serviceHealth struct {
	Name   string          `json:"name"`
	URL    string          `json:"url"`
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// healthAll probes every backend's /health concurrently and reports each as
// healthy or unhealthy. A dead backend degrades its own entry, never the
// gateway's answer.
func (g *Gateway) healthAll(c *gin.Context) {
	backends := []backend{g.accounts, g.catalog, g.orders}
	results := make([]serviceHealth, len(backends))

	var wg sync.WaitGroup
	for i, b := range backends {
		wg.Add(1)
		go func(i int, b backend) {
			defer wg.Done()
			results[i] = g.probe(c, b)
		}(i, b)
	}
	wg.Wait()

	c.JSON(http.StatusOK, gin.H{
		"gateway":  "healthy",
		"services": results,
	})
}

func (g *Gateway) probe(c *gin.Context, b backend) serviceHealth {
	health := serviceHealth{Name: b.name, URL: b.url + "/health"}

	req, err := http.NewRequestWithContext(c.Request.Context(),
		http.MethodGet, health.URL, nil)
	if err != nil {
		health.Status = "unhealthy"
		health.Error = err.Error()
		return health
	}

	resp, err := g.client.Do(req)
	if err != nil {
		health.Status = "unhealthy"
		health.Error = err.Error()
		return health
	}
	defer resp.Body.Close()

	var data json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil || resp.StatusCode != http.StatusOK {
		health.Status = "unhealthy"
		health.Error = "bad health response"
		return health
	}

	health.Status = "healthy"
	health.Data = data
	return health
}
