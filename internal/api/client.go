// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"

	"github.com/hashicorp/jsonapi"
	"github.com/tidwall/gjson"

	"github.com/fmctl/fmctl/internal/log"
)

// Client talks to one FreshMart API endpoint.
type Client struct {
	baseURL string
	token   string
	http    *http.Client

	Orders   *OrdersService
	Products *ProductsService
	Triples  *TriplesService
}

// NewClient returns a Client for the given endpoint. The token is sent as a
// bearer Authorization header on every request.
func NewClient(endpoint string, token string) *Client {
	c := &Client{
		baseURL: endpoint,
		token:   token,
		http:    &http.Client{},
	}
	c.Orders = &OrdersService{client: c}
	c.Products = &ProductsService{client: c}
	c.Triples = &TriplesService{client: c}
	return c
}

// BaseURL returns the endpoint the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get issues a GET against path with the provided query string and returns
// the raw response body.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	log.Debugf("api get: %s", u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", jsonapi.MediaType)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, friendlyAPIError(resp.StatusCode, body, u)
	}

	return body, nil
}

// friendlyAPIError maps an error response to something a human can act on.
// JSON:API error detail is surfaced when present.
func friendlyAPIError(status int, body []byte, url string) error {
	detail := gjson.GetBytes(body, "errors.0.detail").String()
	if detail == "" {
		detail = http.StatusText(status)
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("access denied (%d): %s. Check FMCTL_TOKEN or the api.token config value", status, detail)
	case http.StatusNotFound:
		return fmt.Errorf("not found (%d): %s: %s", status, detail, url)
	default:
		return fmt.Errorf("api error (%d): %s", status, detail)
	}
}

// listQuery builds the standard pagination query params.
func listQuery(opts ListOptions) url.Values {
	q := url.Values{}
	if opts.PageNumber > 0 {
		q.Set("page[number]", strconv.Itoa(opts.PageNumber))
	}
	if opts.PageSize > 0 {
		q.Set("page[size]", strconv.Itoa(opts.PageSize))
	}
	return q
}

// parsePagination extracts meta.pagination from a list payload. A missing
// block yields a zero Pagination, which paginating callers treat as "no more
// pages".
func parsePagination(body []byte) *Pagination {
	p := &Pagination{}
	meta := gjson.GetBytes(body, "meta.pagination")
	if meta.Exists() {
		_ = json.Unmarshal([]byte(meta.Raw), p)
	}
	return p
}

// unmarshalMany decodes a JSON:API list payload into typed resources.
func unmarshalMany[T any](body []byte) ([]*T, error) {
	items, err := jsonapi.UnmarshalManyPayload(bytes.NewReader(body), reflect.TypeOf(new(T)))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	results := make([]*T, 0, len(items))
	for _, item := range items {
		typed, ok := item.(*T)
		if !ok {
			return nil, fmt.Errorf("unexpected resource type %T in payload", item)
		}
		results = append(results, typed)
	}
	return results, nil
}

// OrdersService covers /orders and the per-order snapshot endpoints.
type OrdersService struct {
	client *Client
}

// List returns one page of orders.
func (s *OrdersService) List(ctx context.Context, opts *OrderListOptions) ([]*Order, *Pagination, error) {
	q := listQuery(opts.ListOptions)
	if opts.Status != "" {
		q.Set("filter[status]", opts.Status)
	}
	if opts.Store != "" {
		q.Set("filter[store]", opts.Store)
	}
	if opts.Query != "" {
		q.Set("q", opts.Query)
	}

	body, err := s.client.get(ctx, "/orders", q)
	if err != nil {
		return nil, nil, err
	}

	orders, err := unmarshalMany[Order](body)
	if err != nil {
		return nil, nil, err
	}
	return orders, parsePagination(body), nil
}

// Read returns a single order.
func (s *OrdersService) Read(ctx context.Context, orderID string) (*Order, error) {
	body, err := s.client.get(ctx, "/orders/"+url.PathEscape(orderID), nil)
	if err != nil {
		return nil, err
	}

	order := &Order{}
	if err := jsonapi.UnmarshalPayload(bytes.NewReader(body), order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order: %w", err)
	}
	return order, nil
}

// Snapshot returns the current full snapshot document for an order: the
// order with its embedded line items and pricing breakdown, as exported by
// the dashboard backend.
func (s *OrdersService) Snapshot(ctx context.Context, orderID string) ([]byte, error) {
	return s.client.get(ctx, "/orders/"+url.PathEscape(orderID)+"/snapshot", nil)
}

// SnapshotAt returns the archived snapshot document for one version id.
func (s *OrdersService) SnapshotAt(ctx context.Context, orderID string, versionID string) ([]byte, error) {
	return s.client.get(ctx,
		"/orders/"+url.PathEscape(orderID)+"/snapshots/"+url.PathEscape(versionID), nil)
}

// SnapshotVersions returns one page of archived snapshot versions for an
// order, most recent first.
func (s *OrdersService) SnapshotVersions(ctx context.Context, orderID string, opts *SnapshotVersionListOptions) ([]*SnapshotVersion, *Pagination, error) {
	body, err := s.client.get(ctx,
		"/orders/"+url.PathEscape(orderID)+"/snapshots", listQuery(opts.ListOptions))
	if err != nil {
		return nil, nil, err
	}

	versions, err := unmarshalMany[SnapshotVersion](body)
	if err != nil {
		return nil, nil, err
	}
	return versions, parsePagination(body), nil
}

// Cart returns the raw cart document for an order: line items plus the
// dynamic-pricing inputs, as plain JSON rather than JSON:API.
func (s *OrdersService) Cart(ctx context.Context, orderID string) ([]byte, error) {
	return s.client.get(ctx, "/orders/"+url.PathEscape(orderID)+"/cart", nil)
}

// ProductsService covers /products.
type ProductsService struct {
	client *Client
}

// List returns one page of catalog products.
func (s *ProductsService) List(ctx context.Context, opts *ProductListOptions) ([]*Product, *Pagination, error) {
	q := listQuery(opts.ListOptions)
	if opts.Category != "" {
		q.Set("filter[category]", opts.Category)
	}
	if opts.Query != "" {
		q.Set("q", opts.Query)
	}

	body, err := s.client.get(ctx, "/products", q)
	if err != nil {
		return nil, nil, err
	}

	products, err := unmarshalMany[Product](body)
	if err != nil {
		return nil, nil, err
	}
	return products, parsePagination(body), nil
}

// TriplesService covers the generic /triples entity store.
type TriplesService struct {
	client *Client
}

// List returns one page of triples.
func (s *TriplesService) List(ctx context.Context, opts *TripleListOptions) ([]*Triple, *Pagination, error) {
	q := listQuery(opts.ListOptions)
	if opts.Subject != "" {
		q.Set("filter[subject]", opts.Subject)
	}
	if opts.Predicate != "" {
		q.Set("filter[predicate]", opts.Predicate)
	}

	body, err := s.client.get(ctx, "/triples", q)
	if err != nil {
		return nil, nil, err
	}

	triples, err := unmarshalMany[Triple](body)
	if err != nil {
		return nil, nil, err
	}
	return triples, parsePagination(body), nil
}
