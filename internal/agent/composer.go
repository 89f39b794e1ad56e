package agent

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Composer merges step results with the original question into a final
// natural-language answer and carries the conversation context forward.
// Completion failures surface as a readable error answer, never as a
// returned error.
type Composer struct {
	LLM        Completer
	Prompt     string
	ChatPrompt string
}

func NewComposer(llm Completer) *Composer {
	return &Composer{LLM: llm, Prompt: composerSystemPrompt, ChatPrompt: chatSystemPrompt}
}

// Compose renders every step result (successes and errors alike), asks the
// model for the final answer and returns it with the next context.
func (c *Composer) Compose(ctx context.Context, question string, results []StepResult, conv Context) (string, Context) {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, r.Render())
	}

	user := fmt.Sprintf("Original Question: %s\n\nDatabase Results:\n%s\n\nPrevious Context:\n%s",
		question, strings.Join(blocks, "\n\n"), conv.PromptText())

	answer, err := c.LLM.Complete(ctx, c.Prompt, user)
	if err != nil {
		log.Printf("composer: completion failed: %v", err)
		answer = fmt.Sprintf("I wasn't able to put together a final answer: %v", err)
	}
	return answer, advance(conv, question, answer)
}

// Chat answers a question that needs no database access, using the same
// context bookkeeping as Compose.
func (c *Composer) Chat(ctx context.Context, question string, conv Context) (string, Context) {
	user := fmt.Sprintf("Previous context:\n%s\nUser message: %s", conv.PromptText(), question)

	answer, err := c.LLM.Complete(ctx, c.ChatPrompt, user)
	if err != nil {
		log.Printf("composer: chat completion failed: %v", err)
		answer = fmt.Sprintf("I wasn't able to put together a final answer: %v", err)
	}
	return answer, advance(conv, question, answer)
}

// advance builds the next context value. The (question, answer) pair is
// appended to history only when the question differs from the last recorded
// one, so repeating a turn never duplicates a history entry.
func advance(conv Context, question, answer string) Context {
	next := Context{History: append([]Turn(nil), conv.History...)}
	if question != conv.LastQuestion {
		next.History = append(next.History, Turn{Question: question, Response: answer})
	}
	next.LastQuestion = question
	next.LastResponse = answer
	return next
}
