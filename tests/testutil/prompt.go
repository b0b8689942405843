package testutil

import (
	"context"
	"fmt"
	"sync"

	"license-audit/internal/types"
)

// ScriptedPrompt answers prompts from a fixed script and records every
// question it was asked. Running out of answers is an error.
type ScriptedPrompt struct {
	mu        sync.Mutex
	answers   []types.Answer
	Questions []string
}

func NewScriptedPrompt(answers ...types.Answer) *ScriptedPrompt {
	return &ScriptedPrompt{answers: answers}
}

func (p *ScriptedPrompt) Ask(_ context.Context, question string, _ []types.Answer) (types.Answer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Questions = append(p.Questions, question)
	if len(p.answers) == 0 {
		return "", fmt.Errorf("unexpected prompt: %s", question)
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

// Remaining reports how many scripted answers were never consumed.
func (p *ScriptedPrompt) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.answers)
}
