package generator

import (
	"context"
	"fmt"
	"strings"
)

// MockLLM 一个简单的占位实现，便于本地调试，不调用外部模型。
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	switch prompt.System {
	case titleSystem:
		return "**A Friendly Guide to Your Topic**", nil
	case outlineSystem:
		var sb strings.Builder
		sb.WriteString("Here is a detailed outline:\n")
		for i, h := range []string{"Introduction", "Getting Started", "Common Pitfalls", "Conclusion"} {
			sb.WriteString(fmt.Sprintf("%d. %s - a short description\n", i+1, h))
		}
		return sb.String(), nil
	default:
		var sb strings.Builder
		sb.WriteString("Overview:\n")
		sb.WriteString("This section was generated locally for the request below.\n")
		sb.WriteString("- it does not call a model\n")
		sb.WriteString("- it is deterministic\n")
		sb.WriteString(prompt.User)
		sb.WriteString("\n")
		return sb.String(), nil
	}
}
