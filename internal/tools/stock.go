package tools

import (
	"context"
	"fmt"
	"strconv"
)

// StockTools returns the inventory wrappers.
func StockTools(c sender) []Tool {
	return []Tool{
		{
			Name:        "update_stock_qty",
			Description: "Update stock quantity and in-stock status for a product.",
			Schema: objectSchema(map[string]any{
				"sku":         prop("string", "The unique identifier of the product"),
				"qty":         prop("number", "New quantity to set"),
				"is_in_stock": prop("boolean", "Whether the product is in stock, default true"),
			}, "sku", "qty"),
			Run: func(ctx context.Context, args map[string]any) map[string]any {
				sku, hasSKU := stringArg(args, "sku")
				qty, hasQty := floatArg(args, "qty")
				if !hasSKU || !hasQty {
					return failMsg("update_stock_qty requires sku and qty")
				}
				inStock := boolArgOr(args, "is_in_stock", true)

				// The stock update endpoint needs the numeric item id, which
				// only the product payload carries.
				raw, err := c.Get(ctx, "products/"+sku)
				if err != nil {
					return fail(fmt.Sprintf("update stock for SKU '%s'", sku), err)
				}
				product, err := decodeObject(raw)
				if err != nil {
					return fail(fmt.Sprintf("update stock for SKU '%s'", sku), err)
				}

				itemID, hasItem := extensionStockItem(product)["item_id"].(float64)
				if !hasItem {
					return failMsg("Could not find stock item for SKU '%s'.", sku)
				}

				endpoint := fmt.Sprintf("products/%s/stockItems/%d", sku, int(itemID))
				payload := map[string]any{
					"stockItem": map[string]any{
						"qty":         qty,
						"is_in_stock": inStock,
					},
				}
				if _, err := c.Send(ctx, "PUT", endpoint, payload); err != nil {
					return fail(fmt.Sprintf("update stock for SKU '%s'", sku), err)
				}

				return ok(map[string]any{
					"sku":         sku,
					"updated_qty": qty,
					"is_in_stock": inStock,
					"message":     fmt.Sprintf("Stock quantity for SKU '%s' updated successfully.", sku),
					"done":        true,
				})
			},
		},
		{
			Name: "low_stock_report",
			Description: "List products whose stock quantity is at or below a " +
				"threshold.",
			Schema: objectSchema(map[string]any{
				"threshold": prop("number", "Quantity threshold, default 10"),
				"scope_id":  prop("integer", "Website scope ID, default 0"),
				"limit":     prop("integer", "Maximum number of results, default 100"),
			}),
			Run: func(ctx context.Context, args map[string]any) map[string]any {
				threshold, has := floatArg(args, "threshold")
				if !has {
					threshold = 10
				}

				endpoint := fmt.Sprintf("stockItems/lowStock/?scopeId=%d&qty=%s&pageSize=%d",
					intArgOr(args, "scope_id", 0),
					strconv.FormatFloat(threshold, 'f', -1, 64),
					intArgOr(args, "limit", 100),
				)
				raw, err := c.Get(ctx, endpoint)
				if err != nil {
					return fail("retrieve low stock report", err)
				}
				result, err := decodeObject(raw)
				if err != nil {
					return fail("retrieve low stock report", err)
				}

				return ok(map[string]any{
					"threshold":   threshold,
					"total_count": result["total_count"],
					"items":       result["items"],
				})
			},
		},
	}
}
