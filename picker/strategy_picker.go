package picker

import (
	"strings"

	"github.com/fatih/color"
	"magpie/logger"
	"magpie/models"
	"magpie/prompts"
)

// Strategy is the routing decision for one question: which model(s) answer
// and in what order. Parsing always lands on one of the four values.
type Strategy int

const (
	UseQwen Strategy = iota
	UseGPT
	UseBoth
	UseQwenThenGPT
)

// Fallback when the coordinator fails or answers something unrecognized.
const FallbackStrategy = UseGPT

func (s Strategy) String() string {
	switch s {
	case UseQwen:
		return "QWEN"
	case UseGPT:
		return "GPT"
	case UseBoth:
		return "BOTH"
	case UseQwenThenGPT:
		return "QWEN_THEN_GPT"
	}
	return "GPT"
}

// ParseStrategy normalizes the coordinator's raw output (trim + uppercase)
// and maps it onto a Strategy. ok is false when the label is unrecognized.
func ParseStrategy(raw string) (Strategy, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "QWEN":
		return UseQwen, true
	case "GPT":
		return UseGPT, true
	case "BOTH":
		return UseBoth, true
	case "QWEN_THEN_GPT":
		return UseQwenThenGPT, true
	}
	return FallbackStrategy, false
}

// DecideStrategy asks the coordinator model which model(s) should answer the
// question. Any failure on this path degrades the routing decision, never the
// answer itself.
func DecideStrategy(question string, context string, coordinator models.Model) Strategy {
	prompt, err := prompts.Render(prompts.Coordinator, map[string]string{
		"question": question,
		"context":  context,
	})
	if err != nil {
		panic(err) // missing template variable is a programming error
	}

	raw, err := coordinator.Invoke(prompt)
	if err != nil {
		logger.Screen("⚠️ Strategy determination failed: "+err.Error(), color.New(color.FgYellow))
		logger.Debug.Printf("coordinator call failed: %v", err)
		return FallbackStrategy
	}

	strategy, ok := ParseStrategy(raw)
	if !ok {
		logger.Debug.Printf("coordinator answered %q, falling back to %s", raw, FallbackStrategy)
	}
	return strategy
}
