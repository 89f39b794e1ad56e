package agent

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"github.com/hgrant/datascribe/internal/observability"
)

// Completer is the text-completion collaborator behind every agent. All
// conversation state is serialized into the prompts; implementations hold
// no per-call state.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ModelCompleter adapts a langchaingo llms.Model to the Completer interface.
// When Log is set, every successful completion is recorded as an llm event.
type ModelCompleter struct {
	Model llms.Model
	Log   *observability.Logger
}

func NewModelCompleter(model llms.Model) *ModelCompleter {
	return &ModelCompleter{Model: model}
}

func (m *ModelCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	var messages []llms.MessageContent
	if system != "" {
		messages = append(messages, llms.MessageContent{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(system)},
		})
	}
	messages = append(messages, llms.MessageContent{
		Role:  llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{llms.TextPart(user)},
	})

	resp, err := m.Model.GenerateContent(ctx, messages)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}

	out := resp.Choices[0].Content
	if m.Log != nil {
		m.Log.LogLLM(map[string]string{"system": system, "user": user}, out)
	}
	return out, nil
}
