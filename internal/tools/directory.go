package tools

import (
	"context"
	"encoding/json"
	"fmt"
)

// DirectoryTools returns the store directory wrappers.
func DirectoryTools(c sender) []Tool {
	return []Tool{
		{
			Name:        "list_countries",
			Description: "List all countries available to the store.",
			Schema:      objectSchema(map[string]any{}),
			Run: func(ctx context.Context, args map[string]any) map[string]any {
				raw, err := c.Get(ctx, "directory/countries")
				if err != nil {
					return fail("list countries", err)
				}

				var countries []any
				if err := json.Unmarshal(raw, &countries); err != nil {
					return fail("list countries", err)
				}
				return ok(map[string]any{"countries": countries})
			},
		},
		{
			Name: "get_country_details",
			Description: "Get country and region information by two-letter " +
				"country ID, e.g. US or IN. Region IDs appear under regions.",
			Schema: objectSchema(map[string]any{
				"country_id": prop("string", "Two-letter country ID"),
			}, "country_id"),
			Run: func(ctx context.Context, args map[string]any) map[string]any {
				countryID, found := stringArg(args, "country_id")
				if !found {
					return failMsg("get_country_details requires a country_id")
				}

				raw, err := c.Get(ctx, "directory/countries/"+countryID)
				if err != nil {
					return fail(fmt.Sprintf("retrieve country details for '%s'", countryID), err)
				}
				country, err := decodeObject(raw)
				if err != nil {
					return fail(fmt.Sprintf("retrieve country details for '%s'", countryID), err)
				}

				regions := []map[string]any{}
				if available, isList := country["available_regions"].([]any); isList {
					for _, r := range available {
						region, isObj := r.(map[string]any)
						if !isObj {
							continue
						}
						regions = append(regions, map[string]any{
							"id":   region["id"],
							"code": region["code"],
							"name": region["name"],
						})
					}
				}

				return ok(map[string]any{
					"country_id":                country["id"],
					"two_letter_abbreviation":   country["two_letter_abbreviation"],
					"three_letter_abbreviation": country["three_letter_abbreviation"],
					"full_name_locale":          country["full_name_locale"],
					"full_name_english":         country["full_name_english"],
					"regions":                   regions,
					"done":                      true,
				})
			},
		},
		{
			Name:        "get_currency_info",
			Description: "Get the store's base, default, and current currencies.",
			Schema:      objectSchema(map[string]any{}),
			Run: func(ctx context.Context, args map[string]any) map[string]any {
				raw, err := c.Get(ctx, "directory/currency")
				if err != nil {
					return fail("retrieve currency information", err)
				}
				currency, err := decodeObject(raw)
				if err != nil {
					return fail("retrieve currency information", err)
				}

				return ok(map[string]any{
					"base_currency_code":            currency["base_currency_code"],
					"default_display_currency_code": currency["default_display_currency_code"],
					"available_currency_codes":      currency["available_currency_codes"],
				})
			},
		},
	}
}
