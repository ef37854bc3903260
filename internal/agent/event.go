package agent

import "github.com/sivajik34/aifastcommerce/internal/domain"

// Event is one item of a runtime invocation's output stream. Exactly one of
// Message, Update, or Err is set. Update carries raw runtime state deltas; a
// pause surfaces as an Update holding an "__interrupt__" key whose shape is
// decoded defensively by the consumer.
type Event struct {
	// Namespace is the emitting agent path, outermost first, e.g.
	// ["supervisor", "sales_supervisor", "order_agent"].
	Namespace []string

	Message *domain.Message
	Update  map[string]any
	Err     error
}

// InterruptUpdate wraps an interrupt record in the container shape emitted on
// a pause: a list of interrupt entries, each with a list-valued "value".
func InterruptUpdate(action string, args map[string]any, description string) map[string]any {
	return map[string]any{
		"__interrupt__": []any{
			map[string]any{
				"value": []any{
					map[string]any{
						"action_request": map[string]any{
							"action": action,
							"args":   args,
						},
						"description": description,
					},
				},
			},
		},
	}
}
