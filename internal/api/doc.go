// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package api is a minimal client for the FreshMart operations API. The API
// speaks JSON:API over HTTPS with bearer-token auth and page[number]/
// page[size] pagination. Resources covered are orders, products, the generic
// subject/predicate/object triple store, and order snapshot versions.
package api
