package tools

import (
	"context"
	"fmt"
	"strconv"
)

// InvoiceTools returns the billing wrappers.
func InvoiceTools(c sender) []Tool {
	return []Tool{
		{
			Name: "create_invoice",
			Description: "Create an invoice for an order, optionally for a " +
				"subset of its items. Capture is performed online.",
			Schema: objectSchema(map[string]any{
				"order_id": prop("integer", "Numeric entity ID of the order"),
				"items": map[string]any{
					"type": "array",
					"items": objectSchema(map[string]any{
						"order_item_id": prop("integer", "Order item entity ID"),
						"qty":           prop("number", "Quantity to invoice"),
					}, "order_item_id", "qty"),
					"description": "Items to invoice; omit to invoice the whole order",
				},
				"comment": prop("string", "Invoice comment, default 'Invoice created'"),
				"notify":  prop("boolean", "Email the customer, default true"),
			}, "order_id"),
			Run: func(ctx context.Context, args map[string]any) map[string]any {
				orderID, found := intArg(args, "order_id")
				if !found {
					return failMsg("create_invoice requires an order_id")
				}

				payload := map[string]any{
					"capture":       true,
					"notify":        boolArgOr(args, "notify", true),
					"appendComment": true,
					"comment": map[string]any{
						"comment":             stringArgOr(args, "comment", "Invoice created"),
						"is_visible_on_front": 0,
					},
				}
				if items, isList := args["items"].([]any); isList && len(items) > 0 {
					invoiceItems := make([]map[string]any, 0, len(items))
					for _, it := range items {
						item, isObj := it.(map[string]any)
						if !isObj {
							return failMsg("items must be objects with order_item_id and qty")
						}
						itemID, hasItem := intArg(item, "order_item_id")
						qty, hasQty := floatArg(item, "qty")
						if !hasItem || !hasQty {
							return failMsg("items must be objects with order_item_id and qty")
						}
						invoiceItems = append(invoiceItems, map[string]any{
							"order_item_id": itemID,
							"qty":           qty,
						})
					}
					payload["items"] = invoiceItems
				}

				raw, err := c.Send(ctx, "POST", fmt.Sprintf("order/%d/invoice", orderID), payload)
				if err != nil {
					return fail(fmt.Sprintf("create invoice for order %d", orderID), err)
				}

				return ok(map[string]any{
					"invoice_id": trimQuotes(string(raw)),
					"message":    fmt.Sprintf("Invoice created for order %d.", orderID),
					"done":       true,
				})
			},
		},
		{
			Name:        "get_invoice",
			Description: "Retrieve an invoice by its entity ID.",
			Schema: objectSchema(map[string]any{
				"invoice_id": prop("integer", "Entity ID of the invoice"),
			}, "invoice_id"),
			Run: func(ctx context.Context, args map[string]any) map[string]any {
				invoiceID, found := intArg(args, "invoice_id")
				if !found {
					return failMsg("get_invoice requires an invoice_id")
				}

				raw, err := c.Get(ctx, "invoices/"+strconv.Itoa(invoiceID))
				if err != nil {
					return fail(fmt.Sprintf("retrieve invoice %d", invoiceID), err)
				}
				invoice, err := decodeObject(raw)
				if err != nil {
					return fail(fmt.Sprintf("retrieve invoice %d", invoiceID), err)
				}

				return ok(map[string]any{
					"invoice_id":   invoice["entity_id"],
					"order_id":     invoice["order_id"],
					"grand_total":  invoice["grand_total"],
					"state":        invoice["state"],
					"increment_id": invoice["increment_id"],
					"created_at":   invoice["created_at"],
					"items":        invoice["items"],
				})
			},
		},
	}
}
