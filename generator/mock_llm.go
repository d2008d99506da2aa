package generator

import (
	"context"
	"strings"
)

// MockLLM is a stand-in for local runs; it never calls a model and echoes
// the prompt back as a small markdown document.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	var sb strings.Builder
	sb.WriteString("# Mock Article\n\n")
	sb.WriteString("Generated locally without calling a model.\n\n")
	sb.WriteString("```\n")
	sb.WriteString(prompt.User)
	sb.WriteString("\n```\n")
	return strings.TrimSpace(sb.String()), nil
}
