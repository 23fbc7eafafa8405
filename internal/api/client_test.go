// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ordersPage1 = `{
  "data": [
    {"type": "orders", "id": "o-100",
     "attributes": {"status": "PICKING", "customer": "Ada L.", "store": "store-42",
                    "channel": "app", "item-count": 3, "total": 41.97,
                    "placed-at": "2026-08-01T10:00:00Z", "updated-at": "2026-08-01T10:05:00Z"}},
    {"type": "orders", "id": "o-101",
     "attributes": {"status": "PENDING", "customer": "Alan T.", "store": "store-42",
                    "channel": "web", "item-count": 1, "total": 3.49,
                    "placed-at": "2026-08-01T10:02:00Z", "updated-at": "2026-08-01T10:02:00Z"}}
  ],
  "meta": {"pagination": {"current-page": 1, "next-page": 2, "total-pages": 2, "total-count": 3}}
}`

func TestOrdersList(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		require.Equal(t, "/orders", r.URL.Path)
		w.Header().Set("Content-Type", "application/vnd.api+json")
		_, _ = w.Write([]byte(ordersPage1))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sekrit")
	orders, pagination, err := client.Orders.List(context.Background(), &OrderListOptions{
		ListOptions: ListOptions{PageNumber: 1, PageSize: 100},
		Status:      "PICKING",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer sekrit", gotAuth)
	assert.Contains(t, gotQuery, "filter%5Bstatus%5D=PICKING")
	require.Len(t, orders, 2)
	assert.Equal(t, "o-100", orders[0].ID)
	assert.Equal(t, "Ada L.", orders[0].Customer)
	assert.InDelta(t, 41.97, orders[0].Total, 0.001)
	assert.Equal(t, 2, pagination.NextPage)
	assert.Equal(t, 3, pagination.TotalCount)
}

func TestOrdersList_MissingPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	orders, pagination, err := client.Orders.List(context.Background(), &OrderListOptions{})
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Zero(t, pagination.NextPage)
}

func TestOrdersRead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders/o-100", r.URL.Path)
		_, _ = w.Write([]byte(`{"data": {"type": "orders", "id": "o-100",
			"attributes": {"status": "DELIVERED", "customer": "Ada L."}}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	order, err := client.Orders.Read(context.Background(), "o-100")
	require.NoError(t, err)
	assert.Equal(t, "DELIVERED", order.Status)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantSub string
	}{
		{"unauthorized", 401, `{"errors":[{"detail":"token expired"}]}`, "token expired"},
		{"not found", 404, `{}`, "not found"},
		{"server error", 500, `{}`, "api error (500)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "")
			_, err := client.Orders.Read(context.Background(), "o-1")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantSub)
		})
	}
}

func TestTriplesList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/triples", r.URL.Path)
		assert.Equal(t, "order:o-100", r.URL.Query().Get("filter[subject]"))
		_, _ = w.Write([]byte(`{"data": [
			{"type": "triples", "id": "t-1",
			 "attributes": {"subject": "order:o-100", "predicate": "status", "object": "PICKING", "datatype": "string"}}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	triples, _, err := client.Triples.List(context.Background(), &TripleListOptions{Subject: "order:o-100"})
	require.NoError(t, err)
	require.Len(t, triples, 1)
	assert.Equal(t, "status", triples[0].Predicate)
	assert.Equal(t, "PICKING", triples[0].Object)
}
