package assistant

import (
	"encoding/json"
	"fmt"
)

// InterruptCard is the operator-facing form of a pause: the raw interrupt
// value as text plus the structured action request.
type InterruptCard struct {
	Response     string       `json:"response"`
	Interruption Interruption `json:"interruption"`
}

type Interruption struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Args    map[string]any `json:"args"`
}

// ParseInterrupt extracts the active interrupt payload from a runtime update.
// The container shape is a list of entries under "__interrupt__", each with a
// list-valued "value"; only the first entry and first value are considered.
// Missing or malformed fields degrade to defaults (action "unknown", empty
// args, empty description) — this is operator-facing diagnostic data, not
// business-critical state.
func ParseInterrupt(update map[string]any) (*InterruptCard, bool) {
	entries, isList := update["__interrupt__"].([]any)
	if !isList || len(entries) == 0 {
		return nil, false
	}
	entry, _ := entries[0].(map[string]any)

	var payload map[string]any
	rawValue, hasValue := entry["value"]
	if values, isValueList := rawValue.([]any); isValueList && len(values) > 0 {
		payload, _ = values[0].(map[string]any)
	}

	card := &InterruptCard{
		Interruption: Interruption{
			Type: "unknown",
			Args: map[string]any{},
		},
	}
	if hasValue {
		card.Response = stringify(rawValue)
	}

	if payload != nil {
		if request, isObj := payload["action_request"].(map[string]any); isObj {
			if action, isStr := request["action"].(string); isStr && action != "" {
				card.Interruption.Type = action
			}
			if args, isObj := request["args"].(map[string]any); isObj {
				card.Interruption.Args = args
			}
		}
		if description, isStr := payload["description"].(string); isStr {
			card.Interruption.Message = description
		}
	}

	return card, true
}

// stringify renders the raw interrupt value for display, preferring JSON.
func stringify(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(raw)
}
