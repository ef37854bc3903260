// Package assistant bridges the agent runtime and the outward transports: it
// selects what the end user sees, formats pause payloads for the operator,
// and manages the interrupt/resume lifecycle per session.
package assistant

import (
	"strings"

	"github.com/sivajik34/aifastcommerce/internal/domain"
)

// NoMeaningfulResponse is returned when a run produced no assistant turn at
// all.
const NoMeaningfulResponse = "No meaningful response found."

// handOffPrefixes open the synthetic narration turns the runtime emits while
// routing between agents.
var handOffPrefixes = []string{
	"transferring",
	"if you have any further",
	"i have successfully",
}

// isMeaningful reports whether an assistant turn is substantive rather than
// hand-off narration or a dangling tool request.
func isMeaningful(m domain.Message) bool {
	if m.Role != domain.RoleAssistant || m.HasToolCalls() {
		return false
	}
	content := strings.ToLower(strings.TrimSpace(m.Content))
	if content == "" {
		return false
	}
	if strings.Contains(content, "transferred") {
		return false
	}
	for _, prefix := range handOffPrefixes {
		if strings.HasPrefix(content, prefix) {
			return false
		}
	}
	return true
}

// fromNamedAgent reports whether the turn came from a leaf agent. Leaf names
// end in "_agent"; router and team supervisors never carry that suffix.
func fromNamedAgent(m domain.Message) bool {
	return strings.HasSuffix(m.Name, "_agent")
}

// ExtractFinalResponse picks the text to display for one user request from
// the turns that request accumulated. Tiers, first match wins:
//
//  1. most recent meaningful turn from a named leaf agent, trimmed
//  2. most recent meaningful assistant turn of any origin, trimmed
//  3. last assistant turn with non-empty content, verbatim
//  4. the NoMeaningfulResponse literal
//
// Pure function; same input always yields the same output.
func ExtractFinalResponse(messages []domain.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if fromNamedAgent(messages[i]) && isMeaningful(messages[i]) {
			return strings.TrimSpace(messages[i].Content)
		}
	}

	for i := len(messages) - 1; i >= 0; i-- {
		if isMeaningful(messages[i]) {
			return strings.TrimSpace(messages[i].Content)
		}
	}

	for i := len(messages) - 1; i >= 0; i-- {
		m := messages[i]
		if m.Role == domain.RoleAssistant && strings.TrimSpace(m.Content) != "" {
			return m.Content
		}
	}

	return NoMeaningfulResponse
}
