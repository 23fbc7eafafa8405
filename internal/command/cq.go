// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/fmctl/fmctl/internal/cart"
	"github.com/fmctl/fmctl/internal/config"
	"github.com/fmctl/fmctl/internal/meta"
	"github.com/fmctl/fmctl/internal/output"
)

var cqDefaultAttrs = []string{".sku", "name", "qty", "unit-price", "line-total"}

// cqCommandAction is the action handler for the "cq" subcommand. It fetches
// one order's cart, computes the pricing breakdown, and emits the line items
// per common flags followed by the breakdown.
func cqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "cq") {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(cart.LineItem{})) {
		return nil
	}

	config.Config.Namespace = "cq"

	order := cmd.String("order")
	if order == "" {
		return fmt.Errorf("no order specified. Use --order or FMCTL_ORDER")
	}

	_, client, err := InitRemoteQuery(ctx, cmd)
	if err != nil {
		return err
	}

	doc, err := client.Orders.Cart(ctx, order)
	if err != nil {
		return fmt.Errorf("fetch cart: %w", err)
	}

	c, err := cart.Parse(doc)
	if err != nil {
		return err
	}

	attrs := BuildAttrs(cmd, cqDefaultAttrs...)
	log.Debugf("attrs: %v", attrs)

	// Extend each line item with its computed total so it renders like any
	// other attribute. Prices are preformatted because the table writer
	// renders floats as integers.
	rows := make([]map[string]interface{}, 0, len(c.Items))
	for _, li := range c.Items {
		rows = append(rows, map[string]interface{}{
			"sku":         li.SKU,
			"name":        li.Name,
			"category":    li.Category,
			"qty":         li.Qty,
			"unit-price":  fmt.Sprintf("%.2f", li.UnitPrice),
			"substituted": li.Substituted,
			"line-total":  fmt.Sprintf("%.2f", li.LineTotal()),
		})
	}

	jsonBytes, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal cart rows: %w", err)
	}

	var raw bytes.Buffer
	raw.Write(jsonBytes)
	output.SliceDiceSpit(raw, attrs, cmd, "", os.Stdout, nil)

	// The breakdown only makes sense in text output. json/yaml consumers get
	// the raw line items and can price them downstream.
	if cmd.String("output") == "text" {
		b := c.Price()
		fmt.Printf("\nsubtotal  %8.2f\n", b.Subtotal)
		if b.Discount != 0 {
			fmt.Printf("discount  %8.2f\n", -b.Discount)
		}
		if b.Surge != 0 {
			fmt.Printf("surge     %8.2f\n", b.Surge)
		}
		if b.Delivery != 0 {
			fmt.Printf("delivery  %8.2f\n", b.Delivery)
		}
		if b.Tax != 0 {
			fmt.Printf("tax       %8.2f\n", b.Tax)
		}
		fmt.Printf("total     %8.2f\n", b.Total)
	}

	return nil
}

// cqCommandBuilder constructs the cli.Command for "cq", wiring metadata,
// flags, and action/validator handlers.
func cqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "cq",
		Usage:     "cart query",
		UsageText: "fmctl cq --order ORDER [options]",
		Flags: []cli.Flag{
			NewEndpointFlag("cq", meta.Config.Source),
			NewTokenFlag("cq", meta.Config.Source),
			orderFlag,
		},
		Action: cqCommandAction,
		Meta:   meta,
	}).Build()
}
