package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNoProducts is returned when the source answers without a product list.
var ErrNoProducts = errors.New("no products found in source response")

// RawProduct is the subset of a source record used at ingestion.
type RawProduct struct {
	ProductName string `json:"product_name"`
	Categories  string `json:"categories"`
	Brands      string `json:"brands"`
}

// Source fetches raw catalog records.
type Source interface {
	Fetch(ctx context.Context, limit int) ([]RawProduct, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, limit int) ([]RawProduct, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context, limit int) ([]RawProduct, error) { return f(ctx, limit) }

// OpenFoodFacts queries the Open Food Facts product search endpoint.
type OpenFoodFacts struct {
	baseURL string
	client  *http.Client
}

// NewOpenFoodFacts builds a source for the given search endpoint. A zero
// timeout leaves the request bounded only by its context.
func NewOpenFoodFacts(baseURL string, timeout time.Duration) *OpenFoodFacts {
	return &OpenFoodFacts{baseURL: baseURL, client: &http.Client{Timeout: timeout}}
}

type searchResponse struct {
	Products *[]RawProduct `json:"products"`
}

// Fetch requests up to limit products.
func (o *OpenFoodFacts) Fetch(ctx context.Context, limit int) ([]RawProduct, error) {
	u, err := url.Parse(o.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse source url: %w", err)
	}
	q := u.Query()
	q.Set("search_terms", "*")
	q.Set("json", "1")
	q.Set("page_size", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build source request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fetch products: unexpected status %d", resp.StatusCode)
	}
	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	if body.Products == nil {
		return nil, ErrNoProducts
	}
	return *body.Products, nil
}
