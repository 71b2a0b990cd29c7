package picker

import (
	"fmt"
	"strings"
	"testing"
)

type stubModel struct {
	out     string
	err     error
	prompts []string
}

func (m *stubModel) Label() string { return "GPT-OSS" }
func (m *stubModel) Name() string  { return "gpt-oss:120b-cloud" }

func (m *stubModel) Invoke(prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.out, m.err
}

func TestParseStrategy(t *testing.T) {
	cases := []struct {
		raw  string
		want Strategy
		ok   bool
	}{
		{"QWEN", UseQwen, true},
		{"GPT", UseGPT, true},
		{"BOTH", UseBoth, true},
		{"QWEN_THEN_GPT", UseQwenThenGPT, true},
		{"  qwen \n", UseQwen, true},
		{"both", UseBoth, true},
		{"MAYBE", UseGPT, false},
		{"", UseGPT, false},
		{"QWEN AND GPT", UseGPT, false},
	}

	for _, c := range cases {
		got, ok := ParseStrategy(c.raw)
		if got != c.want || ok != c.ok {
			t.Errorf("ParseStrategy(%q) = %s, %v; want %s, %v", c.raw, got, ok, c.want, c.ok)
		}
	}
}

func TestDecideStrategy_UsesCoordinatorAnswer(t *testing.T) {
	coordinator := &stubModel{out: "BOTH"}

	got := DecideStrategy("what's new?", "ctx", coordinator)

	if got != UseBoth {
		t.Errorf("Expected BOTH, got %s", got)
	}
	if len(coordinator.prompts) != 1 {
		t.Fatalf("Expected one coordinator call, got %d", len(coordinator.prompts))
	}
	if !strings.Contains(coordinator.prompts[0], "what's new?") {
		t.Errorf("Coordinator prompt missing the question: %q", coordinator.prompts[0])
	}
	if !strings.Contains(coordinator.prompts[0], "ctx") {
		t.Errorf("Coordinator prompt missing the search context: %q", coordinator.prompts[0])
	}
}

func TestDecideStrategy_UnrecognizedLabelFallsBack(t *testing.T) {
	coordinator := &stubModel{out: "MAYBE"}

	if got := DecideStrategy("q", "c", coordinator); got != UseGPT {
		t.Errorf("Expected GPT fallback for unrecognized label, got %s", got)
	}
}

func TestDecideStrategy_InvocationFailureFallsBack(t *testing.T) {
	coordinator := &stubModel{err: fmt.Errorf("unreachable")}

	if got := DecideStrategy("q", "c", coordinator); got != UseGPT {
		t.Errorf("Expected GPT fallback on coordinator failure, got %s", got)
	}
}

func TestStrategyString(t *testing.T) {
	cases := map[Strategy]string{
		UseQwen:        "QWEN",
		UseGPT:         "GPT",
		UseBoth:        "BOTH",
		UseQwenThenGPT: "QWEN_THEN_GPT",
	}
	for strategy, want := range cases {
		if strategy.String() != want {
			t.Errorf("Strategy(%d).String() = %q, want %q", strategy, strategy.String(), want)
		}
	}
}
