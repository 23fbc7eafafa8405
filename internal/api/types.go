// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package api

import "time"

// Order is one customer order as served by /orders.
type Order struct {
	ID        string    `jsonapi:"primary,orders"`
	Status    string    `jsonapi:"attr,status"`
	Customer  string    `jsonapi:"attr,customer"`
	Store     string    `jsonapi:"attr,store"`
	Channel   string    `jsonapi:"attr,channel"`
	ItemCount int       `jsonapi:"attr,item-count"`
	Total     float64   `jsonapi:"attr,total"`
	PlacedAt  time.Time `jsonapi:"attr,placed-at,iso8601"`
	UpdatedAt time.Time `jsonapi:"attr,updated-at,iso8601"`
}

// Product is one catalog product as served by /products.
type Product struct {
	ID       string  `jsonapi:"primary,products"`
	SKU      string  `jsonapi:"attr,sku"`
	Name     string  `jsonapi:"attr,name"`
	Category string  `jsonapi:"attr,category"`
	Unit     string  `jsonapi:"attr,unit"`
	Price    float64 `jsonapi:"attr,price"`
	InStock  bool    `jsonapi:"attr,in-stock"`
}

// Triple is one subject/predicate/object assertion from the generic entity
// store. Object carries the value in its JSON string form; Datatype says how
// to interpret it.
type Triple struct {
	ID        string `jsonapi:"primary,triples"`
	Subject   string `jsonapi:"attr,subject"`
	Predicate string `jsonapi:"attr,predicate"`
	Object    string `jsonapi:"attr,object"`
	Datatype  string `jsonapi:"attr,datatype"`
}

// SnapshotVersion identifies one archived snapshot of an order document.
// Location is backend-specific: a download URL for the API backend, a file
// path for local exports, an object version id for S3.
type SnapshotVersion struct {
	ID        string    `jsonapi:"primary,snapshot-versions"`
	Serial    int64     `jsonapi:"attr,serial"`
	CreatedAt time.Time `jsonapi:"attr,created-at,iso8601"`
	Location  string    `jsonapi:"attr,location"`
}

// Pagination echoes the meta.pagination block returned by list endpoints.
type Pagination struct {
	CurrentPage  int `json:"current-page"`
	PreviousPage int `json:"prev-page"`
	NextPage     int `json:"next-page"`
	TotalPages   int `json:"total-pages"`
	TotalCount   int `json:"total-count"`
}

// ListOptions is the standard pagination input shared by all list calls.
type ListOptions struct {
	PageNumber int
	PageSize   int
}

// OrderListOptions carries pagination plus the server-side filters the
// /orders endpoint understands.
type OrderListOptions struct {
	ListOptions
	Status string
	Store  string
	Query  string
}

// ProductListOptions carries pagination plus the server-side filters the
// /products endpoint understands.
type ProductListOptions struct {
	ListOptions
	Category string
	Query    string
}

// TripleListOptions carries pagination plus the server-side filters the
// /triples endpoint understands.
type TripleListOptions struct {
	ListOptions
	Subject   string
	Predicate string
}

// SnapshotVersionListOptions carries pagination for snapshot version lists.
type SnapshotVersionListOptions struct {
	ListOptions
}
