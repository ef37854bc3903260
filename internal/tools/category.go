package tools

import (
	"context"
	"fmt"
	"strconv"
)

// CategoryTools returns the catalog category wrappers. delete_category is
// sensitive and requires operator confirmation before it runs.
func CategoryTools(c sender) []Tool {
	return []Tool{
		{
			Name:        "list_all_categories",
			Description: "List all categories as a tree structure.",
			Schema:      objectSchema(map[string]any{}),
			Run: func(ctx context.Context, args map[string]any) map[string]any {
				raw, err := c.Get(ctx, "categories")
				if err != nil {
					return fail("list categories", err)
				}
				tree, err := decodeObject(raw)
				if err != nil {
					return fail("list categories", err)
				}
				return ok(map[string]any{"tree": tree})
			},
		},
		{
			Name:        "create_category",
			Description: "Create a new category under the given parent category.",
			Schema: objectSchema(map[string]any{
				"name":            prop("string", "Category display name"),
				"parent_id":       prop("integer", "Parent category ID, default 2 (root)"),
				"is_active":       prop("boolean", "Whether the category is active, default true"),
				"include_in_menu": prop("boolean", "Whether to show the category in the menu, default true"),
			}, "name"),
			Run: func(ctx context.Context, args map[string]any) map[string]any {
				name, found := stringArg(args, "name")
				if !found {
					return failMsg("create_category requires a name")
				}

				payload := map[string]any{
					"category": map[string]any{
						"name":            name,
						"parent_id":       intArgOr(args, "parent_id", 2),
						"is_active":       boolArgOr(args, "is_active", true),
						"include_in_menu": boolArgOr(args, "include_in_menu", true),
					},
				}
				raw, err := c.Send(ctx, "POST", "categories", payload)
				if err != nil {
					return fail(fmt.Sprintf("create category '%s'", name), err)
				}
				created, err := decodeObject(raw)
				if err != nil {
					return fail(fmt.Sprintf("create category '%s'", name), err)
				}

				return ok(map[string]any{
					"category_id": created["id"],
					"name":        created["name"],
					"done":        true,
				})
			},
		},
		{
			Name:        "update_category",
			Description: "Rename a category or toggle its active state.",
			Schema: objectSchema(map[string]any{
				"category_id": prop("integer", "ID of the category to update"),
				"name":        prop("string", "New display name"),
				"is_active":   prop("boolean", "New active state"),
			}, "category_id"),
			Run: func(ctx context.Context, args map[string]any) map[string]any {
				categoryID, found := intArg(args, "category_id")
				if !found {
					return failMsg("update_category requires a category_id")
				}

				fields := map[string]any{"id": categoryID}
				if name, has := stringArg(args, "name"); has {
					fields["name"] = name
				}
				if active, has := args["is_active"].(bool); has {
					fields["is_active"] = active
				}
				if len(fields) == 1 {
					return failMsg("update_category requires a name or is_active to change")
				}

				endpoint := "categories/" + strconv.Itoa(categoryID)
				if _, err := c.Send(ctx, "PUT", endpoint, map[string]any{"category": fields}); err != nil {
					return fail(fmt.Sprintf("update category %d", categoryID), err)
				}
				return ok(map[string]any{
					"category_id": categoryID,
					"message":     fmt.Sprintf("Category %d updated successfully.", categoryID),
					"done":        true,
				})
			},
		},
		{
			Name:        "delete_category",
			Description: "Permanently delete a category and its product links.",
			Sensitive:   true,
			Schema: objectSchema(map[string]any{
				"category_id": prop("integer", "ID of the category to delete"),
			}, "category_id"),
			Run: func(ctx context.Context, args map[string]any) map[string]any {
				categoryID, found := intArg(args, "category_id")
				if !found {
					return failMsg("delete_category requires a category_id")
				}

				if _, err := c.Send(ctx, "DELETE", "categories/"+strconv.Itoa(categoryID), nil); err != nil {
					return fail(fmt.Sprintf("delete category %d", categoryID), err)
				}
				return ok(map[string]any{
					"category_id": categoryID,
					"message":     fmt.Sprintf("Category %d deleted.", categoryID),
					"done":        true,
				})
			},
		},
		{
			Name: "assign_product_to_categories",
			Description: "Assign a product to one or more categories by " +
				"updating its category links.",
			Schema: objectSchema(map[string]any{
				"sku": prop("string", "Product SKU"),
				"category_ids": map[string]any{
					"type":        "array",
					"items":       prop("integer", "Category ID"),
					"description": "Category IDs to assign the product to",
				},
			}, "sku", "category_ids"),
			Run: func(ctx context.Context, args map[string]any) map[string]any {
				sku, found := stringArg(args, "sku")
				if !found {
					return failMsg("assign_product_to_categories requires a sku")
				}
				ids, isList := args["category_ids"].([]any)
				if !isList || len(ids) == 0 {
					return failMsg("assign_product_to_categories requires category_ids")
				}

				links := make([]map[string]any, 0, len(ids))
				for i, id := range ids {
					categoryID, isNum := id.(float64)
					if !isNum {
						return failMsg("category_ids must be integers")
					}
					links = append(links, map[string]any{
						"position":    i,
						"category_id": int(categoryID),
					})
				}

				payload := map[string]any{
					"product": map[string]any{
						"sku": sku,
						"extension_attributes": map[string]any{
							"category_links": links,
						},
					},
				}
				if _, err := c.Send(ctx, "PUT", "products/"+sku, payload); err != nil {
					return fail(fmt.Sprintf("assign product '%s' to categories", sku), err)
				}
				return ok(map[string]any{
					"sku":     sku,
					"message": fmt.Sprintf("Product '%s' assigned to %d categories.", sku, len(links)),
					"done":    true,
				})
			},
		},
	}
}
