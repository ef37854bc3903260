package tools

import (
	"context"
	"fmt"
)

// ShipmentTools returns the fulfillment wrappers.
func ShipmentTools(c sender) []Tool {
	return []Tool{
		{
			Name: "create_shipment",
			Description: "Create a shipment for an order. Requires the order's " +
				"item IDs; fetch the order first if they are unknown.",
			Schema: objectSchema(map[string]any{
				"order_id": prop("integer", "Numeric entity ID of the order"),
				"items": map[string]any{
					"type": "array",
					"items": objectSchema(map[string]any{
						"order_item_id": prop("integer", "Order item entity ID"),
						"qty":           prop("number", "Quantity to ship"),
					}, "order_item_id", "qty"),
					"description": "Order items to include in the shipment",
				},
				"notify":       prop("boolean", "Email the customer, default true"),
				"carrier_code": prop("string", "Carrier code, default custom"),
				"track_number": prop("string", "Tracking number, default N/A"),
				"title":        prop("string", "Carrier title, default Standard Shipping"),
			}, "order_id", "items"),
			Run: func(ctx context.Context, args map[string]any) map[string]any {
				orderID, hasOrder := intArg(args, "order_id")
				items, isList := args["items"].([]any)
				if !hasOrder || !isList || len(items) == 0 {
					return failMsg("create_shipment requires order_id and items")
				}

				shipItems := make([]map[string]any, 0, len(items))
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
					shipItems = append(shipItems, map[string]any{
						"order_item_id": itemID,
						"qty":           qty,
					})
				}

				payload := map[string]any{
					"items":         shipItems,
					"notify":        boolArgOr(args, "notify", true),
					"appendComment": true,
					"comment": map[string]any{
						"comment":             "Auto-generated shipment",
						"is_visible_on_front": 0,
					},
					"tracks": []map[string]any{{
						"track_number": stringArgOr(args, "track_number", "N/A"),
						"title":        stringArgOr(args, "title", "Standard Shipping"),
						"carrier_code": stringArgOr(args, "carrier_code", "custom"),
					}},
					"packages": []any{},
					"arguments": map[string]any{
						"extension_attributes": map[string]any{
							"source_code": "default",
						},
					},
				}

				raw, err := c.Send(ctx, "POST", fmt.Sprintf("order/%d/ship", orderID), payload)
				if err != nil {
					return fail(fmt.Sprintf("create shipment for order %d", orderID), err)
				}

				return ok(map[string]any{
					"shipment_id": trimQuotes(string(raw)),
					"message":     "Shipment created successfully.",
					"done":        true,
				})
			},
		},
		{
			Name: "create_shipment_tracking",
			Description: "Attach a tracking record to an existing shipment. Use " +
				"after the shipment is created.",
			Schema: objectSchema(map[string]any{
				"order_id":     prop("integer", "Numeric entity ID of the order"),
				"shipment_id":  prop("integer", "Entity ID of the shipment"),
				"track_number": prop("string", "Carrier tracking number"),
				"title":        prop("string", "Carrier title"),
				"carrier_code": prop("string", "Carrier code"),
				"weight":       prop("number", "Package weight, default 0"),
				"qty":          prop("integer", "Package count, default 1"),
				"description":  prop("string", "Free-text description"),
			}, "order_id", "shipment_id", "track_number", "title", "carrier_code"),
			Run: func(ctx context.Context, args map[string]any) map[string]any {
				orderID, hasOrder := intArg(args, "order_id")
				shipmentID, hasShipment := intArg(args, "shipment_id")
				trackNumber, hasTrack := stringArg(args, "track_number")
				title, hasTitle := stringArg(args, "title")
				carrierCode, hasCarrier := stringArg(args, "carrier_code")
				if !hasOrder || !hasShipment || !hasTrack || !hasTitle || !hasCarrier {
					return failMsg("create_shipment_tracking requires order_id, shipment_id, track_number, title, and carrier_code")
				}

				weight, _ := floatArg(args, "weight")
				payload := map[string]any{
					"entity": map[string]any{
						"order_id":             orderID,
						"parent_id":            shipmentID,
						"track_number":         trackNumber,
						"title":                title,
						"carrier_code":         carrierCode,
						"weight":               weight,
						"qty":                  intArgOr(args, "qty", 1),
						"description":          stringArgOr(args, "description", ""),
						"extension_attributes": map[string]any{},
					},
				}

				raw, err := c.Send(ctx, "POST", "shipment/track", payload)
				if err != nil {
					return fail(fmt.Sprintf("create tracking for shipment %d", shipmentID), err)
				}
				track, err := decodeObject(raw)
				if err != nil {
					return fail(fmt.Sprintf("create tracking for shipment %d", shipmentID), err)
				}

				return ok(map[string]any{
					"track_id":     track["entity_id"],
					"track_number": trackNumber,
					"message":      fmt.Sprintf("Tracking %s attached to shipment %d.", trackNumber, shipmentID),
					"done":         true,
				})
			},
		},
	}
}
