// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package cart decodes cart documents and computes the dynamic-pricing
// breakdown (subtotal, discount, surge, tax, delivery) for an order.
package cart
