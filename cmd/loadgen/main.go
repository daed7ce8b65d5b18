// Command loadgen fires concurrent order placements at one item and reports
// the split between created orders and insufficient-stock rejections. Against
// an item with quantity N it should report exactly N successes regardless of
// how many requests race.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

func main() {
	var (
		url       = flag.String("url", "http://localhost:3000/api/orders", "order endpoint")
		accountID = flag.Int64("account", 1, "account id")
		itemID    = flag.Int64("item", 1, "item id")
		quantity  = flag.Int("quantity", 1, "quantity per order")
		requests  = flag.Int("requests", 50, "concurrent requests")
	)
	flag.Parse()

	body, err := json.Marshal(map[string]any{
		"accountId": *accountID,
		"itemId":    *itemID,
		"quantity":  *quantity,
	})
	if err != nil {
		log.Fatalf("marshal request: %v", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}

	var created, rejected, failed atomic.Int32
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < *requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			resp, err := client.Post(*url, "application/json", bytes.NewReader(body))
			if err != nil {
				failed.Add(1)
				return
			}
			defer resp.Body.Close()

			switch resp.StatusCode {
			case http.StatusCreated:
				created.Add(1)
			case http.StatusBadRequest:
				rejected.Add(1)
			default:
				failed.Add(1)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	fmt.Printf("requests:  %d in %s\n", *requests, elapsed)
	fmt.Printf("created:   %d\n", created.Load())
	fmt.Printf("rejected:  %d (insufficient stock)\n", rejected.Load())
	fmt.Printf("failed:    %d\n", failed.Load())
}
