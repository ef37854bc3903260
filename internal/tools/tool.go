// Package tools holds the typed wrappers around commerce REST operations that
// leaf agents can invoke. Every wrapper normalizes its result into a response
// envelope with a status/message/error shape so the reasoning loop never sees
// a raw transport failure.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sivajik34/aifastcommerce/internal/magento"
)

// Tool is one business operation exposed to a leaf agent. Schema is a JSON
// Schema object describing the argument bag for LLM tool binding. Sensitive
// tools are intercepted before execution and require operator confirmation.
type Tool struct {
	Name        string
	Description string
	Sensitive   bool
	Schema      map[string]any
	Run         func(ctx context.Context, args map[string]any) map[string]any
}

// Envelope helpers. Success envelopes carry status=success plus the
// operation-specific fields; failures carry status=error and a human-readable
// error the agent can relay or act on.

func ok(fields map[string]any) map[string]any {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["status"] = "success"
	return fields
}

func fail(action string, err error) map[string]any {
	return map[string]any{
		"status": "error",
		"error":  fmt.Sprintf("Failed to %s: %v", action, err),
	}
}

func failMsg(format string, a ...any) map[string]any {
	return map[string]any{
		"status": "error",
		"error":  fmt.Sprintf(format, a...),
	}
}

// decodeObject unmarshals a client response expected to be a JSON object.
func decodeObject(raw json.RawMessage) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("tools.decodeObject: %w", err)
	}
	return m, nil
}

// Argument bag accessors. LLM-produced args arrive as map[string]any with
// JSON-typed values; numbers are float64.

func stringArg(args map[string]any, key string) (string, bool) {
	v, found := args[key]
	if !found {
		return "", false
	}
	s, isStr := v.(string)
	if !isStr || s == "" {
		return "", false
	}
	return s, true
}

func stringArgOr(args map[string]any, key, fallback string) string {
	if s, found := stringArg(args, key); found {
		return s
	}
	return fallback
}

func floatArg(args map[string]any, key string) (float64, bool) {
	v, found := args[key]
	if !found {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func intArg(args map[string]any, key string) (int, bool) {
	f, found := floatArg(args, key)
	if !found {
		return 0, false
	}
	return int(f), true
}

func intArgOr(args map[string]any, key string, fallback int) int {
	if n, found := intArg(args, key); found {
		return n
	}
	return fallback
}

func boolArgOr(args map[string]any, key string, fallback bool) bool {
	v, found := args[key]
	if !found {
		return fallback
	}
	b, isBool := v.(bool)
	if !isBool {
		return fallback
	}
	return b
}

// JSON Schema builders for tool parameter declarations.

func objectSchema(props map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func prop(typ, description string) map[string]any {
	return map[string]any{"type": typ, "description": description}
}

// criteria builds Magento searchCriteria query strings. Each filter lands in
// its own filter group, so filters combine with AND.
type criteria struct {
	groups int
	params []string
}

func (c *criteria) filter(field, value, condition string) {
	prefix := fmt.Sprintf("searchCriteria[filterGroups][%d][filters][0]", c.groups)
	c.params = append(c.params,
		prefix+"[field]="+url.QueryEscape(field),
		prefix+"[value]="+url.QueryEscape(value),
		prefix+"[conditionType]="+url.QueryEscape(condition),
	)
	c.groups++
}

func (c *criteria) pageSize(n int) {
	c.params = append(c.params, "searchCriteria[pageSize]="+strconv.Itoa(n))
}

func (c *criteria) sortBy(field, direction string) {
	c.params = append(c.params,
		"searchCriteria[sortOrders][0][field]="+url.QueryEscape(field),
		"searchCriteria[sortOrders][0][direction]="+url.QueryEscape(direction),
	)
}

// encode appends the criteria to endpoint as a query string.
func (c *criteria) encode(endpoint string) string {
	if len(c.params) == 0 {
		return endpoint + "?searchCriteria="
	}
	q := c.params[0]
	for _, p := range c.params[1:] {
		q += "&" + p
	}
	return endpoint + "?" + q
}

// sender is the slice of the magento client the wrappers use. Tests swap in a
// stub.
type sender interface {
	Send(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error)
	Get(ctx context.Context, endpoint string) (json.RawMessage, error)
}

var _ sender = (*magento.Client)(nil)
