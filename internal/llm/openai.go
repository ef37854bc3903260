package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/sivajik34/aifastcommerce/internal/config"
	"github.com/sivajik34/aifastcommerce/internal/domain"
)

// OpenAIModel talks to any OpenAI-compatible chat completion endpoint.
type OpenAIModel struct {
	client      openai.Client
	model       string
	temperature float64
}

func NewOpenAIModel(cfg config.LLMConfig) *OpenAIModel {
	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if trimmed := strings.TrimRight(cfg.BaseURL, "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}

	return &OpenAIModel{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

// Complete runs one chat completion and maps the first choice back into a
// domain message.
func (m *OpenAIModel) Complete(ctx context.Context, req Request) (*domain.Message, error) {
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(m.model),
		Temperature: openai.Float(m.temperature),
		Messages:    toParams(req),
	}
	for _, t := range req.Tools {
		params.Tools = append(params.Tools, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        t.Name,
				Description: openai.String(t.Description),
				Parameters:  openai.FunctionParameters(t.Parameters),
			},
		})
	}

	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("llm.OpenAIModel.Complete: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("llm.OpenAIModel.Complete: empty choices")
	}

	choice := resp.Choices[0].Message
	msg := &domain.Message{
		Role:    domain.RoleAssistant,
		Content: choice.Content,
	}
	for _, tc := range choice.ToolCalls {
		msg.ToolCalls = append(msg.ToolCalls, domain.ToolCall{
			ID:   tc.ID,
			Name: tc.Function.Name,
			Args: json.RawMessage(tc.Function.Arguments),
		})
	}

	return msg, nil
}

// toParams maps the domain conversation onto the SDK's message union.
func toParams(req Request) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.System != "" {
		out = append(out, openai.SystemMessage(req.System))
	}

	for _, msg := range req.Messages {
		switch msg.Role {
		case domain.RoleHuman:
			out = append(out, openai.UserMessage(msg.Content))

		case domain.RoleAssistant:
			assistant := openai.ChatCompletionAssistantMessageParam{}
			if msg.Content != "" {
				assistant.Content.OfString = openai.String(msg.Content)
			}
			for _, tc := range msg.ToolCalls {
				assistant.ToolCalls = append(assistant.ToolCalls, openai.ChatCompletionMessageToolCallParam{
					ID: tc.ID,
					Function: openai.ChatCompletionMessageToolCallFunctionParam{
						Name:      tc.Name,
						Arguments: string(tc.Args),
					},
				})
			}
			out = append(out, openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant})

		case domain.RoleTool:
			out = append(out, openai.ToolMessage(msg.Content, msg.ToolCallID))

		case domain.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		}
	}

	return out
}
