package tools

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
)

// ProductTools returns the catalog product wrappers. delete_product is
// sensitive and requires operator confirmation before it runs.
func ProductTools(c sender) []Tool {
	return []Tool{
		{
			Name: "view_product",
			Description: "Retrieve detailed information about a specific product: " +
				"name, current price, and available stock quantity.",
			Schema: objectSchema(map[string]any{
				"sku": prop("string", "The unique identifier of the product"),
			}, "sku"),
			Run: func(ctx context.Context, args map[string]any) map[string]any {
				sku, found := stringArg(args, "sku")
				if !found {
					return failMsg("view_product requires a sku")
				}

				raw, err := c.Get(ctx, "products/"+sku)
				if err != nil {
					return fail(fmt.Sprintf("retrieve product with SKU '%s'", sku), err)
				}
				product, err := decodeObject(raw)
				if err != nil {
					return fail(fmt.Sprintf("retrieve product with SKU '%s'", sku), err)
				}

				price, _ := product["price"].(float64)
				stockItem := extensionStockItem(product)
				qty, _ := stockItem["qty"].(float64)
				inStock, _ := stockItem["is_in_stock"].(bool)

				status := "out_of_stock"
				if inStock {
					status = "available"
				}
				return ok(map[string]any{
					"sku":          sku,
					"name":         product["name"],
					"price":        price,
					"stock":        qty,
					"availability": status,
				})
			},
		},
		{
			Name: "search_products",
			Description: "Search for products by name with optional category, " +
				"price range, and sort filters.",
			Schema: objectSchema(map[string]any{
				"query":       prop("string", "Text to match against product names"),
				"category_id": prop("integer", "Restrict results to a category"),
				"min_price":   prop("number", "Minimum price filter"),
				"max_price":   prop("number", "Maximum price filter"),
				"sort_by":     prop("string", "Sort field: relevance, price, name"),
				"limit":       prop("integer", "Maximum number of results, default 10"),
			}, "query"),
			Run: func(ctx context.Context, args map[string]any) map[string]any {
				query, found := stringArg(args, "query")
				if !found {
					return failMsg("search_products requires a query")
				}

				crit := &criteria{}
				crit.filter("name", "%"+query+"%", "like")
				if categoryID, has := intArg(args, "category_id"); has {
					crit.filter("category_id", strconv.Itoa(categoryID), "eq")
				}
				if minPrice, has := floatArg(args, "min_price"); has {
					crit.filter("price", strconv.FormatFloat(minPrice, 'f', -1, 64), "gteq")
				}
				if maxPrice, has := floatArg(args, "max_price"); has {
					crit.filter("price", strconv.FormatFloat(maxPrice, 'f', -1, 64), "lteq")
				}
				if sortBy := stringArgOr(args, "sort_by", ""); sortBy != "" && sortBy != "relevance" {
					crit.sortBy(sortBy, "ASC")
				}
				crit.pageSize(intArgOr(args, "limit", 10))

				raw, err := c.Get(ctx, crit.encode("products"))
				if err != nil {
					return fail(fmt.Sprintf("search products for '%s'", query), err)
				}
				result, err := decodeObject(raw)
				if err != nil {
					return fail(fmt.Sprintf("search products for '%s'", query), err)
				}

				items, _ := result["items"].([]any)
				products := make([]map[string]any, 0, len(items))
				for _, it := range items {
					p, isObj := it.(map[string]any)
					if !isObj {
						continue
					}
					products = append(products, map[string]any{
						"sku":   p["sku"],
						"name":  p["name"],
						"price": p["price"],
					})
				}
				return ok(map[string]any{
					"total_count": result["total_count"],
					"products":    products,
				})
			},
		},
		{
			Name: "create_product",
			Description: "Create a new simple product with SKU, name, price, and " +
				"initial stock quantity.",
			Schema: objectSchema(map[string]any{
				"sku":   prop("string", "Unique SKU for the new product"),
				"name":  prop("string", "Display name"),
				"price": prop("number", "Price in store currency"),
				"qty":   prop("number", "Initial stock quantity, default 0"),
			}, "sku", "name", "price"),
			Run: func(ctx context.Context, args map[string]any) map[string]any {
				sku, hasSKU := stringArg(args, "sku")
				name, hasName := stringArg(args, "name")
				price, hasPrice := floatArg(args, "price")
				if !hasSKU || !hasName || !hasPrice {
					return failMsg("create_product requires sku, name, and price")
				}
				qty, _ := floatArg(args, "qty")

				payload := map[string]any{
					"product": map[string]any{
						"sku":              sku,
						"name":             name,
						"price":            price,
						"attribute_set_id": 4,
						"type_id":          "simple",
						"status":           1,
						"visibility":       4,
						"extension_attributes": map[string]any{
							"stock_item": map[string]any{
								"qty":         qty,
								"is_in_stock": qty > 0,
							},
						},
					},
				}
				if _, err := c.Send(ctx, "POST", "products", payload); err != nil {
					return fail(fmt.Sprintf("create product '%s'", sku), err)
				}

				log.Info().Str("sku", sku).Msg("product created")
				return ok(map[string]any{
					"sku":     sku,
					"message": fmt.Sprintf("Product '%s' created successfully.", sku),
					"done":    true,
				})
			},
		},
		{
			Name: "update_product",
			Description: "Update the name and/or price of an existing product.",
			Schema: objectSchema(map[string]any{
				"sku":   prop("string", "SKU of the product to update"),
				"name":  prop("string", "New display name"),
				"price": prop("number", "New price"),
			}, "sku"),
			Run: func(ctx context.Context, args map[string]any) map[string]any {
				sku, found := stringArg(args, "sku")
				if !found {
					return failMsg("update_product requires a sku")
				}

				fields := map[string]any{"sku": sku}
				if name, has := stringArg(args, "name"); has {
					fields["name"] = name
				}
				if price, has := floatArg(args, "price"); has {
					fields["price"] = price
				}
				if len(fields) == 1 {
					return failMsg("update_product requires a name or price to change")
				}

				if _, err := c.Send(ctx, "PUT", "products/"+sku, map[string]any{"product": fields}); err != nil {
					return fail(fmt.Sprintf("update product '%s'", sku), err)
				}
				return ok(map[string]any{
					"sku":     sku,
					"message": fmt.Sprintf("Product '%s' updated successfully.", sku),
					"done":    true,
				})
			},
		},
		{
			Name:        "delete_product",
			Description: "Permanently delete a product from the catalog.",
			Sensitive:   true,
			Schema: objectSchema(map[string]any{
				"sku": prop("string", "SKU of the product to delete"),
			}, "sku"),
			Run: func(ctx context.Context, args map[string]any) map[string]any {
				sku, found := stringArg(args, "sku")
				if !found {
					return failMsg("delete_product requires a sku")
				}

				if _, err := c.Send(ctx, "DELETE", "products/"+sku, nil); err != nil {
					return fail(fmt.Sprintf("delete product '%s'", sku), err)
				}

				log.Info().Str("sku", sku).Msg("product deleted")
				return ok(map[string]any{
					"sku":     sku,
					"message": fmt.Sprintf("Product '%s' deleted.", sku),
					"done":    true,
				})
			},
		},
	}
}

// extensionStockItem digs extension_attributes.stock_item out of a product
// payload, tolerating absent keys.
func extensionStockItem(product map[string]any) map[string]any {
	ext, _ := product["extension_attributes"].(map[string]any)
	stockItem, _ := ext["stock_item"].(map[string]any)
	if stockItem == nil {
		return map[string]any{}
	}
	return stockItem
}
