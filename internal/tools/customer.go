package tools

import (
	"context"
	"fmt"
	"strconv"
)

// CustomerTools returns the customer account wrappers.
func CustomerTools(c sender) []Tool {
	return []Tool{
		{
			Name: "get_customer_info",
			Description: "Retrieve a customer by email: name, customer ID, and " +
				"default billing/shipping addresses.",
			Schema: objectSchema(map[string]any{
				"email": prop("string", "Customer email address"),
			}, "email"),
			Run: func(ctx context.Context, args map[string]any) map[string]any {
				email, found := stringArg(args, "email")
				if !found {
					return failMsg("get_customer_info requires an email")
				}

				crit := &criteria{}
				crit.filter("email", email, "eq")

				raw, err := c.Get(ctx, crit.encode("customers/search"))
				if err != nil {
					return fail(fmt.Sprintf("retrieve customer with email '%s'", email), err)
				}
				result, err := decodeObject(raw)
				if err != nil {
					return fail(fmt.Sprintf("retrieve customer with email '%s'", email), err)
				}

				customers, _ := result["items"].([]any)
				if len(customers) == 0 {
					return failMsg("No customer found with email %s", email)
				}
				customer, _ := customers[0].(map[string]any)

				var billing, shipping map[string]any
				if addresses, isList := customer["addresses"].([]any); isList {
					for _, a := range addresses {
						addr, isObj := a.(map[string]any)
						if !isObj {
							continue
						}
						if isDefault, _ := addr["default_billing"].(bool); isDefault {
							billing = addr
						}
						if isDefault, _ := addr["default_shipping"].(bool); isDefault {
							shipping = addr
						}
					}
				}

				return ok(map[string]any{
					"email":            email,
					"firstname":        customer["firstname"],
					"lastname":         customer["lastname"],
					"customer_id":      customer["id"],
					"billing_address":  billing,
					"shipping_address": shipping,
					"done":             true,
				})
			},
		},
		{
			Name:        "create_customer",
			Description: "Create a new customer account.",
			Schema: objectSchema(map[string]any{
				"email":      prop("string", "Customer email address"),
				"firstname":  prop("string", "First name"),
				"lastname":   prop("string", "Last name"),
				"password":   prop("string", "Optional initial password"),
				"website_id": prop("integer", "Website ID, default 1"),
				"group_id":   prop("integer", "Customer group ID, default 1"),
				"store_id":   prop("integer", "Store ID, default 1"),
			}, "email", "firstname", "lastname"),
			Run: func(ctx context.Context, args map[string]any) map[string]any {
				email, hasEmail := stringArg(args, "email")
				firstname, hasFirst := stringArg(args, "firstname")
				lastname, hasLast := stringArg(args, "lastname")
				if !hasEmail || !hasFirst || !hasLast {
					return failMsg("create_customer requires email, firstname, and lastname")
				}

				payload := map[string]any{
					"customer": map[string]any{
						"email":      email,
						"firstname":  firstname,
						"lastname":   lastname,
						"website_id": intArgOr(args, "website_id", 1),
						"store_id":   intArgOr(args, "store_id", 1),
						"group_id":   intArgOr(args, "group_id", 1),
					},
				}
				if password, has := stringArg(args, "password"); has {
					payload["password"] = password
				}

				raw, err := c.Send(ctx, "POST", "customers", payload)
				if err != nil {
					return fail("create customer", err)
				}
				created, err := decodeObject(raw)
				if err != nil {
					return fail("create customer", err)
				}

				return ok(map[string]any{
					"customer_id": created["id"],
					"email":       created["email"],
					"firstname":   created["firstname"],
					"lastname":    created["lastname"],
					"message":     fmt.Sprintf("Customer %v %v with email %s created successfully.", created["firstname"], created["lastname"], email),
					"done":        true,
				})
			},
		},
		{
			Name:        "list_orders_by_customer_id",
			Description: "List all orders placed by a customer ID.",
			Schema: objectSchema(map[string]any{
				"customer_id": prop("integer", "Numeric customer ID"),
				"limit":       prop("integer", "Maximum number of results, default 10"),
			}, "customer_id"),
			Run: func(ctx context.Context, args map[string]any) map[string]any {
				customerID, found := intArg(args, "customer_id")
				if !found {
					return failMsg("list_orders_by_customer_id requires a customer_id")
				}

				crit := &criteria{}
				crit.filter("customer_id", strconv.Itoa(customerID), "eq")
				crit.pageSize(intArgOr(args, "limit", 10))
				crit.sortBy("created_at", "DESC")

				raw, err := c.Get(ctx, crit.encode("orders"))
				if err != nil {
					return fail(fmt.Sprintf("list orders for customer %d", customerID), err)
				}
				result, err := decodeObject(raw)
				if err != nil {
					return fail(fmt.Sprintf("list orders for customer %d", customerID), err)
				}

				items, _ := result["items"].([]any)
				orders := make([]map[string]any, 0, len(items))
				for _, it := range items {
					o, isObj := it.(map[string]any)
					if !isObj {
						continue
					}
					orders = append(orders, map[string]any{
						"order_id":     o["entity_id"],
						"increment_id": o["increment_id"],
						"order_status": o["status"],
						"grand_total":  o["grand_total"],
						"created_at":   o["created_at"],
					})
				}
				return ok(map[string]any{
					"customer_id": customerID,
					"total_count": result["total_count"],
					"orders":      orders,
				})
			},
		},
	}
}
