package services

import (
	"fmt"
	"strings"
	"testing"

	"magpie/data"
	"magpie/picker"
)

type scriptedStep struct {
	out string
	err error
}

// scriptedModel plays back canned responses in call order and captures every
// prompt it receives.
type scriptedModel struct {
	label   string
	name    string
	script  []scriptedStep
	prompts []string
}

func (m *scriptedModel) Label() string { return m.label }
func (m *scriptedModel) Name() string  { return m.name }

func (m *scriptedModel) Invoke(prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if len(m.script) == 0 {
		return "", fmt.Errorf("unexpected call %d", len(m.prompts))
	}
	step := m.script[0]
	m.script = m.script[1:]
	return step.out, step.err
}

type stubSearch struct {
	context string
}

func (s stubSearch) Fetch(question string) string { return s.context }

func newTestWorkflow(qwen, gpt *scriptedModel, context string) *Workflow {
	return &Workflow{Qwen: qwen, GPT: gpt, Search: stubSearch{context: context}}
}

func TestCombineResponses_FallbackIsLiteral(t *testing.T) {
	qwen := &scriptedModel{label: "Qwen3-VL", name: "qwen3-vl:235b-cloud"}
	gpt := &scriptedModel{
		label:  "GPT-OSS",
		name:   "gpt-oss:120b-cloud",
		script: []scriptedStep{{err: fmt.Errorf("connection refused")}},
	}
	w := newTestWorkflow(qwen, gpt, "ctx")

	got := w.CombineResponses("q", "ctx", "first answer", "second answer")

	want := "**Combined Response:**\n\n**Qwen3-VL:** first answer\n\n**GPT-OSS:** second answer"
	if got != want {
		t.Errorf("Combiner fallback mismatch.\ngot:  %q\nwant: %q", got, want)
	}
}

func TestCombineResponses_UsesCombinerOutput(t *testing.T) {
	qwen := &scriptedModel{label: "Qwen3-VL"}
	gpt := &scriptedModel{label: "GPT-OSS", script: []scriptedStep{{out: "merged"}}}
	w := newTestWorkflow(qwen, gpt, "ctx")

	if got := w.CombineResponses("q", "ctx", "a", "b"); got != "merged" {
		t.Errorf("Expected combiner output, got %q", got)
	}
	if len(gpt.prompts) != 1 || !strings.Contains(gpt.prompts[0], "Qwen3-VL response: a") {
		t.Errorf("Combiner prompt missing the first response: %v", gpt.prompts)
	}
}

func TestModelResponse_ErrorSubstitution(t *testing.T) {
	qwen := &scriptedModel{
		label:  "Qwen3-VL",
		name:   "qwen3-vl:235b-cloud",
		script: []scriptedStep{{err: fmt.Errorf("boom")}},
	}
	gpt := &scriptedModel{label: "GPT-OSS"}
	w := newTestWorkflow(qwen, gpt, "ctx")

	got := w.ModelResponse(qwen, "qwen", map[string]string{"question": "q", "context": "c"})
	if got != "Qwen3-VL model error: boom" {
		t.Errorf("Expected diagnostic substitution, got %q", got)
	}
}

func TestProcessQuestion_QwenThenGPTRefinedContext(t *testing.T) {
	qwen := &scriptedModel{
		label:  "Qwen3-VL",
		script: []scriptedStep{{out: "qwen analysis"}},
	}
	gpt := &scriptedModel{
		label: "GPT-OSS",
		script: []scriptedStep{
			{out: "QWEN_THEN_GPT"}, // coordinator
			{out: "refined answer"},
		},
	}
	w := newTestWorkflow(qwen, gpt, "original ctx")

	response, strategy := w.ProcessQuestion("q")

	if strategy != picker.UseQwenThenGPT {
		t.Fatalf("Expected QWEN_THEN_GPT strategy, got %s", strategy)
	}
	if len(gpt.prompts) != 2 {
		t.Fatalf("Expected 2 GPT calls, got %d", len(gpt.prompts))
	}

	refined := "Previous analysis: qwen analysis\n\nOriginal context: original ctx"
	if !strings.Contains(gpt.prompts[1], refined) {
		t.Errorf("Refinement prompt missing the framed context.\nprompt: %q", gpt.prompts[1])
	}
	if !strings.HasPrefix(response, "**Models Used:** Qwen3-VL → GPT-OSS (Sequential)\n\n") {
		t.Errorf("Expected sequential header, got %q", response)
	}
	if !strings.HasSuffix(response, "refined answer") {
		t.Errorf("Expected refined answer in response, got %q", response)
	}
}

func TestProcessQuestion_BothWithCombinerFailure(t *testing.T) {
	qwen := &scriptedModel{
		label:  "Qwen3-VL",
		script: []scriptedStep{{out: "Paris"}},
	}
	gpt := &scriptedModel{
		label: "GPT-OSS",
		script: []scriptedStep{
			{out: "BOTH"},                      // coordinator
			{out: "The capital is Paris."},     // gpt answer
			{err: fmt.Errorf("combiner down")}, // combiner
		},
	}
	w := newTestWorkflow(qwen, gpt, "Paris is the capital of France.")

	response, strategy := w.ProcessQuestion("capital of France")

	if strategy != picker.UseBoth {
		t.Fatalf("Expected BOTH strategy, got %s", strategy)
	}
	if !strings.Contains(response, "**Combined Response:**") {
		t.Errorf("Expected concatenation fallback, got %q", response)
	}
	if !strings.Contains(response, "**Qwen3-VL:** Paris") {
		t.Errorf("Expected labeled Qwen response, got %q", response)
	}
	if !strings.Contains(response, "**GPT-OSS:** The capital is Paris.") {
		t.Errorf("Expected labeled GPT response, got %q", response)
	}
	qwenIdx := strings.Index(response, "**Qwen3-VL:**")
	gptIdx := strings.Index(response, "**GPT-OSS:**")
	if qwenIdx < 0 || gptIdx < 0 || qwenIdx > gptIdx {
		t.Errorf("Qwen's label must precede GPT's in combined output: %q", response)
	}
}

func TestProcessQuestion_SingleModelBranches(t *testing.T) {
	qwen := &scriptedModel{label: "Qwen3-VL", script: []scriptedStep{{out: "qwen answer"}}}
	gpt := &scriptedModel{label: "GPT-OSS", script: []scriptedStep{{out: "QWEN"}}}
	w := newTestWorkflow(qwen, gpt, "ctx")

	response, strategy := w.ProcessQuestion("q")

	if strategy != picker.UseQwen {
		t.Fatalf("Expected QWEN strategy, got %s", strategy)
	}
	if response != "**Model Used:** Qwen3-VL\n\nqwen answer" {
		t.Errorf("Unexpected response: %q", response)
	}
}

func TestProcessQuestion_CoordinatorFailureFallsBackToGPT(t *testing.T) {
	qwen := &scriptedModel{label: "Qwen3-VL"}
	gpt := &scriptedModel{
		label: "GPT-OSS",
		script: []scriptedStep{
			{err: fmt.Errorf("coordinator unreachable")},
			{out: "gpt answer"},
		},
	}
	w := newTestWorkflow(qwen, gpt, "ctx")

	response, strategy := w.ProcessQuestion("q")

	if strategy != picker.UseGPT {
		t.Fatalf("Expected fallback GPT strategy, got %s", strategy)
	}
	if response != "**Model Used:** GPT-OSS\n\ngpt answer" {
		t.Errorf("Unexpected response: %q", response)
	}
	if len(qwen.prompts) != 0 {
		t.Errorf("Qwen should not be called on the GPT branch")
	}
}

func TestAnswerWithHistory_IncludesHistoryAndContext(t *testing.T) {
	qwen := &scriptedModel{label: "Qwen3-VL"}
	gpt := &scriptedModel{label: "GPT-OSS", script: []scriptedStep{{out: "answer"}}}
	w := newTestWorkflow(qwen, gpt, "web ctx")

	session := data.NewSession(nil, 200)
	session.Record("earlier question", "earlier answer")

	got := w.AnswerWithHistory("new question", session, gpt)

	if got != "answer" {
		t.Errorf("Expected model answer, got %q", got)
	}
	prompt := gpt.prompts[0]
	if !strings.Contains(prompt, "earlier question") {
		t.Errorf("Prompt missing conversation history: %q", prompt)
	}
	if !strings.Contains(prompt, "web ctx") {
		t.Errorf("Prompt missing search context: %q", prompt)
	}
}

func TestCompareResponses_OrderAndDegradation(t *testing.T) {
	qwen := &scriptedModel{label: "Qwen3-VL", script: []scriptedStep{{err: fmt.Errorf("down")}}}
	gpt := &scriptedModel{label: "GPT-OSS", script: []scriptedStep{{out: "fine"}}}
	w := newTestWorkflow(qwen, gpt, "ctx")

	qwenResponse, gptResponse := w.CompareResponses("q")

	if qwenResponse != "Qwen3-VL model error: down" {
		t.Errorf("Expected degraded Qwen response, got %q", qwenResponse)
	}
	if gptResponse != "fine" {
		t.Errorf("Expected GPT response, got %q", gptResponse)
	}
}
