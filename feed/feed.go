// Package feed downloads the public supermarket price feed and ships the
// built-in recipe set.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"supermarkt/models"
)

const userAgent = "supermarkt-sync/1.0"

// rawStore is one entry of supermarkets.json: a store code and its products.
type rawStore struct {
	Code     string       `json:"n"`
	Products []rawProduct `json:"d"`
}

type rawProduct struct {
	Name  string          `json:"n"`
	Price decimal.Decimal `json:"p"`
	Unit  string          `json:"s"`
	Link  string          `json:"l"`
}

// Client fetches the feed over HTTP.
type Client struct {
	url  string
	http *http.Client
}

// NewClient builds a client for url with a generous timeout; the feed is large.
func NewClient(url string) *Client {
	return &Client{url: url, http: &http.Client{Timeout: 60 * time.Second}}
}

// Fetch downloads and decodes the feed.
func (c *Client) Fetch(ctx context.Context) ([]models.StoreCatalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch feed: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return Decode(resp.Body)
}

// Decode parses a supermarkets.json document. Stores without a code are
// skipped; product filtering is left to the store layer.
func Decode(r io.Reader) ([]models.StoreCatalog, error) {
	var raw []rawStore
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	catalogs := make([]models.StoreCatalog, 0, len(raw))
	for _, rs := range raw {
		code := strings.ToLower(strings.TrimSpace(rs.Code))
		if code == "" {
			continue
		}
		sc := models.StoreCatalog{
			Supermarket: Supermarket(code),
			Products:    make([]models.Product, 0, len(rs.Products)),
		}
		for _, rp := range rs.Products {
			sc.Products = append(sc.Products, models.Product{
				Name:      strings.TrimSpace(rp.Name),
				StoreCode: code,
				Price:     rp.Price,
				Unit:      rp.Unit,
				Link:      rp.Link,
			})
		}
		catalogs = append(catalogs, sc)
	}
	return catalogs, nil
}
