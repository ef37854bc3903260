package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sivajik34/aifastcommerce/internal/domain"
	"github.com/sivajik34/aifastcommerce/internal/llm"
	"github.com/sivajik34/aifastcommerce/internal/tools"
)

// errPaused unwinds an execution that persisted a pending sensitive call and
// emitted its interrupt. It is consumed inside run and never leaves the
// package.
var errPaused = errors.New("agent: execution paused")

// ErrTurnBudget is returned when one invocation exceeds the configured
// reasoning turn limit without completing.
var ErrTurnBudget = errors.New("agent: turn budget exhausted")

// GraphRuntime drives the router → team → leaf hierarchy over a chat model,
// checkpointing the conversation per session so a paused run can resume.
type GraphRuntime struct {
	model       llm.ChatModel
	registry    *Registry
	checkpoints domain.CheckpointRepository
	maxTurns    int
}

func NewGraphRuntime(model llm.ChatModel, registry *Registry, checkpoints domain.CheckpointRepository, maxTurns int) *GraphRuntime {
	return &GraphRuntime{
		model:       model,
		registry:    registry,
		checkpoints: checkpoints,
		maxTurns:    maxTurns,
	}
}

// Run starts one invocation. Events arrive on the returned channel in
// emission order; the channel closes when the invocation completes, pauses
// on an interrupt, or fails.
func (g *GraphRuntime) Run(ctx context.Context, sessionID uuid.UUID, in Input) (<-chan Event, error) {
	if (in.Message == "") == (in.Resume == nil) {
		return nil, fmt.Errorf("agent.GraphRuntime.Run: input needs exactly one of message or resume")
	}

	ch := make(chan Event, 16)
	go g.run(ctx, sessionID, in, ch)
	return ch, nil
}

func (g *GraphRuntime) run(ctx context.Context, sessionID uuid.UUID, in Input, ch chan Event) {
	defer close(ch)

	exec := &execution{g: g, ctx: ctx, sessionID: sessionID, ch: ch}

	cp, err := g.checkpoints.Load(ctx, sessionID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		cp = &domain.Checkpoint{SessionID: sessionID}
	case err != nil:
		exec.send(Event{Err: fmt.Errorf("agent.GraphRuntime.run: load checkpoint: %w", err)})
		return
	}
	exec.messages = cp.Messages

	if in.Resume != nil {
		if cp.PendingCall == nil {
			exec.send(Event{Err: domain.ErrNoInterruptPending})
			return
		}
		err = exec.resume(ctx, cp.PendingCall, *in.Resume)
	} else {
		exec.emit([]string{"supervisor"}, domain.Message{
			Role:    domain.RoleHuman,
			Content: in.Message,
		})
		err = exec.route(ctx)
	}

	if errors.Is(err, errPaused) {
		// Checkpoint with the pending call was saved before the interrupt
		// event went out.
		return
	}
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID.String()).Msg("agent run failed")
		exec.send(Event{Err: err})
	}

	// The transcript must survive even when the consumer cancelled mid-stream.
	save := &domain.Checkpoint{SessionID: sessionID, Messages: exec.messages}
	if saveErr := g.checkpoints.Save(context.WithoutCancel(ctx), save); saveErr != nil {
		log.Error().Err(saveErr).Str("session_id", sessionID.String()).Msg("checkpoint save failed")
		if err == nil {
			exec.send(Event{Err: fmt.Errorf("agent.GraphRuntime.run: save checkpoint: %w", saveErr)})
		}
	}
}

// execution is the mutable state of one invocation. Not safe for concurrent
// use; each invocation owns exactly one.
type execution struct {
	g         *GraphRuntime
	ctx       context.Context
	sessionID uuid.UUID
	ch        chan<- Event
	messages  []domain.Message
	turns     int
}

// send delivers an event unless the consumer has gone away. A blocked send
// must never outlive the invocation's context, or abandoned streams would
// leak the run goroutine.
func (e *execution) send(ev Event) {
	select {
	case e.ch <- ev:
	case <-e.ctx.Done():
	}
}

func (e *execution) emit(ns []string, msg domain.Message) {
	e.messages = append(e.messages, msg)
	e.send(Event{Namespace: ns, Message: &msg})
}

func (e *execution) spendTurn() error {
	if err := e.ctx.Err(); err != nil {
		return err
	}
	e.turns++
	if e.turns > e.g.maxTurns {
		return ErrTurnBudget
	}
	return nil
}

// route runs the top-level router until it answers without a hand-off.
func (e *execution) route(ctx context.Context) error {
	ns := []string{"supervisor"}
	defs := make([]llm.ToolDef, 0, len(e.g.registry.Teams))
	for _, team := range e.g.registry.Teams {
		defs = append(defs, transferDef(team.Name))
	}

	for {
		if err := e.spendTurn(); err != nil {
			return err
		}

		resp, err := e.g.model.Complete(ctx, llm.Request{
			System:   routerPrompt,
			Messages: e.messages,
			Tools:    defs,
		})
		if err != nil {
			return fmt.Errorf("agent: router turn: %w", err)
		}

		if !resp.HasToolCalls() {
			resp.Name = "supervisor"
			e.emit(ns, *resp)
			return nil
		}

		target, err := e.handOff(ns, "supervisor", resp)
		if err != nil {
			return err
		}
		team := e.g.registry.findTeam(target)
		if team == nil {
			e.emit(ns, domain.Message{
				Role:    domain.RoleAssistant,
				Name:    "supervisor",
				Content: fmt.Sprintf("I don't have a team named %s.", target),
			})
			return nil
		}
		if err := e.runTeam(ctx, append(ns, team.Name), team); err != nil {
			return err
		}
	}
}

// runTeam runs one team supervisor until it answers without a hand-off.
func (e *execution) runTeam(ctx context.Context, ns []string, team *Team) error {
	defs := make([]llm.ToolDef, 0, len(team.Leaves))
	for _, leaf := range team.Leaves {
		defs = append(defs, transferDef(leaf.Name))
	}

	for {
		if err := e.spendTurn(); err != nil {
			return err
		}

		resp, err := e.g.model.Complete(ctx, llm.Request{
			System:   team.Prompt,
			Messages: e.messages,
			Tools:    defs,
		})
		if err != nil {
			return fmt.Errorf("agent: %s turn: %w", team.Name, err)
		}

		if !resp.HasToolCalls() {
			resp.Name = team.Name
			e.emit(ns, *resp)
			return nil
		}

		target, err := e.handOff(ns, team.Name, resp)
		if err != nil {
			return err
		}
		var leaf *Leaf
		for i := range team.Leaves {
			if team.Leaves[i].Name == target {
				leaf = &team.Leaves[i]
			}
		}
		if leaf == nil {
			e.emit(ns, domain.Message{
				Role:    domain.RoleAssistant,
				Name:    team.Name,
				Content: fmt.Sprintf("No agent named %s on this team.", target),
			})
			return nil
		}
		if err := e.runLeaf(ctx, append(ns, leaf.Name), leaf); err != nil {
			return err
		}
	}
}

// handOff records the synthetic transfer narration for the first transfer
// call in resp and returns the target agent name. The narration turns are
// exactly what the response extraction policy filters out.
func (e *execution) handOff(ns []string, from string, resp *domain.Message) (string, error) {
	call := resp.ToolCalls[0]
	target := strings.TrimPrefix(call.Name, "transfer_to_")
	if target == call.Name {
		return "", fmt.Errorf("agent: %s called unknown tool %q", from, call.Name)
	}

	e.emit(ns, domain.Message{
		Role:      domain.RoleAssistant,
		Name:      from,
		Content:   "Transferring to " + target,
		ToolCalls: resp.ToolCalls,
	})
	e.emit(ns, domain.Message{
		Role:       domain.RoleTool,
		Content:    "Successfully transferred to " + target,
		ToolCallID: call.ID,
	})

	log.Debug().Str("from", from).Str("to", target).Msg("agent hand-off")
	return target, nil
}

// runLeaf drives one leaf agent's reasoning loop: complete, execute tool
// calls, repeat until a plain answer. A sensitive tool call pauses the whole
// execution instead of running.
func (e *execution) runLeaf(ctx context.Context, ns []string, leaf *Leaf) error {
	defs := make([]llm.ToolDef, 0, len(leaf.Tools))
	for _, t := range leaf.Tools {
		defs = append(defs, llm.ToolDef{Name: t.Name, Description: t.Description, Parameters: t.Schema})
	}

	for {
		if err := e.spendTurn(); err != nil {
			return err
		}

		resp, err := e.g.model.Complete(ctx, llm.Request{
			System:   leaf.Prompt,
			Messages: e.messages,
			Tools:    defs,
		})
		if err != nil {
			return fmt.Errorf("agent: %s turn: %w", leaf.Name, err)
		}

		if !resp.HasToolCalls() {
			resp.Name = leaf.Name
			e.emit(ns, *resp)
			return nil
		}

		resp.Name = leaf.Name
		e.emit(ns, *resp)

		for _, call := range resp.ToolCalls {
			tool := findTool(leaf.Tools, call.Name)
			if tool == nil {
				e.emitToolResult(ns, call.ID, map[string]any{
					"status": "error",
					"error":  fmt.Sprintf("Unknown tool '%s'.", call.Name),
				})
				continue
			}

			args := decodeArgs(call.Args)
			if tool.Sensitive {
				return e.pause(ctx, ns, leaf, call, args, tool.Description)
			}

			e.emitToolResult(ns, call.ID, tool.Run(ctx, args))
		}
	}
}

// pause persists the checkpoint with the pending sensitive call, emits the
// interrupt container, and unwinds the execution.
func (e *execution) pause(ctx context.Context, ns []string, leaf *Leaf, call domain.ToolCall, args map[string]any, description string) error {
	cp := &domain.Checkpoint{
		SessionID: e.sessionID,
		Messages:  e.messages,
		PendingCall: &domain.PendingToolCall{
			AgentName: leaf.Name,
			Call:      call,
		},
	}
	if err := e.g.checkpoints.Save(ctx, cp); err != nil {
		return fmt.Errorf("agent: save paused checkpoint: %w", err)
	}

	log.Info().
		Str("session_id", e.sessionID.String()).
		Str("agent", leaf.Name).
		Str("action", call.Name).
		Msg("execution paused for confirmation")

	e.send(Event{Namespace: ns, Update: InterruptUpdate(call.Name, args, description)})
	return errPaused
}

// resume replays the operator decision as the pending tool's outcome, then
// lets the paused leaf agent finish its loop.
func (e *execution) resume(ctx context.Context, pending *domain.PendingToolCall, decision domain.ResumeDecision) error {
	team, leaf := e.g.registry.findLeaf(pending.AgentName)
	if leaf == nil {
		return fmt.Errorf("agent: resume for unknown agent %q", pending.AgentName)
	}
	ns := []string{"supervisor", team.Name, leaf.Name}
	call := pending.Call

	switch decision.Type {
	case domain.DecisionAccept:
		tool := findTool(leaf.Tools, call.Name)
		if tool == nil {
			return fmt.Errorf("agent: resume for unknown tool %q", call.Name)
		}
		e.emitToolResult(ns, call.ID, tool.Run(ctx, decodeArgs(call.Args)))

	case domain.DecisionEdit:
		tool := findTool(leaf.Tools, call.Name)
		if tool == nil {
			return fmt.Errorf("agent: resume for unknown tool %q", call.Name)
		}
		e.emitToolResult(ns, call.ID, tool.Run(ctx, decision.Args))

	case domain.DecisionResponse:
		// The operator's text stands in for the tool's answer; the tool never
		// runs.
		e.emit(ns, domain.Message{
			Role:       domain.RoleTool,
			Content:    decision.Text,
			ToolCallID: call.ID,
		})

	default:
		return fmt.Errorf("agent: resume type %q: %w", decision.Type, domain.ErrInvalidDecision)
	}

	return e.runLeaf(ctx, ns, leaf)
}

func (e *execution) emitToolResult(ns []string, callID string, envelope map[string]any) {
	content, err := json.Marshal(envelope)
	if err != nil {
		content = []byte(`{"status":"error","error":"unserializable tool result"}`)
	}
	e.emit(ns, domain.Message{
		Role:       domain.RoleTool,
		Content:    string(content),
		ToolCallID: callID,
	})
}

func transferDef(name string) llm.ToolDef {
	return llm.ToolDef{
		Name:        "transfer_to_" + name,
		Description: "Hand the conversation to " + name + ".",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}
}

func findTool(ts []tools.Tool, name string) *tools.Tool {
	for i := range ts {
		if ts[i].Name == name {
			return &ts[i]
		}
	}
	return nil
}

// decodeArgs tolerates malformed or absent tool-call arguments, yielding an
// empty bag instead of failing the run.
func decodeArgs(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return map[string]any{}
	}
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil || args == nil {
		return map[string]any{}
	}
	return args
}
