package services

import (
	"fmt"

	"github.com/fatih/color"
	"magpie/data"
	"magpie/logger"
	"magpie/models"
	"magpie/picker"
	"magpie/prompts"
)

var (
	grayStatus   = color.RGB(150, 150, 150)
	yellowStatus = color.New(color.FgYellow)
	blueStatus   = color.New(color.FgBlue)
)

// ContextProvider supplies web context for a question. The contract is
// string in, string out: retrieval failures arrive as readable fallback text,
// never as an error.
type ContextProvider interface {
	Fetch(question string) string
}

// Workflow wires the two models and the search provider into the per-question
// answer pipeline. The GPT model doubles as the coordinator and the combiner,
// matching the original assistant's division of labor.
type Workflow struct {
	Qwen   models.Model
	GPT    models.Model
	Search ContextProvider
}

// ProcessQuestion runs the dual-model pipeline: fetch context, pick a
// strategy, execute the matching branch. It always returns displayable text.
func (w *Workflow) ProcessQuestion(question string) (string, picker.Strategy) {
	logger.Screen("🔍 Searching web...", grayStatus)
	context := w.Search.Fetch(question)

	logger.Screen("🤖 Determining optimal model strategy...", grayStatus)
	strategy := picker.DecideStrategy(question, context, w.GPT)
	logger.Screen("📋 Strategy: "+strategy.String(), grayStatus)

	vars := map[string]string{"question": question, "context": context}

	var response string
	var modelInfo string

	switch strategy {
	case picker.UseQwen:
		logger.Screen("🟡 Using Qwen3-VL model...", yellowStatus)
		response = w.ModelResponse(w.Qwen, prompts.Qwen, vars)
		modelInfo = "**Model Used:** Qwen3-VL"

	case picker.UseBoth:
		logger.Screen("🟡 Getting Qwen3-VL response...", yellowStatus)
		qwenResponse := w.ModelResponse(w.Qwen, prompts.Qwen, vars)
		logger.Screen("🔵 Getting GPT-OSS response...", blueStatus)
		gptResponse := w.ModelResponse(w.GPT, prompts.GPT, vars)
		logger.Screen("🔄 Combining responses...", grayStatus)
		response = w.CombineResponses(question, context, qwenResponse, gptResponse)
		modelInfo = "**Models Used:** Qwen3-VL + GPT-OSS (Combined)"

	case picker.UseQwenThenGPT:
		logger.Screen("🟡 Getting Qwen3-VL response...", yellowStatus)
		qwenResponse := w.ModelResponse(w.Qwen, prompts.Qwen, vars)
		logger.Screen("🔵 Refining with GPT-OSS...", blueStatus)
		// The refinement call sees Qwen's answer ahead of the original
		// search context. The framing is part of the contract.
		refined := "Previous analysis: " + qwenResponse + "\n\nOriginal context: " + context
		response = w.ModelResponse(w.GPT, prompts.GPT, map[string]string{
			"question": question,
			"context":  refined,
		})
		modelInfo = "**Models Used:** Qwen3-VL → GPT-OSS (Sequential)"

	default: // picker.UseGPT
		logger.Screen("🔵 Using GPT-OSS model...", blueStatus)
		response = w.ModelResponse(w.GPT, prompts.GPT, vars)
		modelInfo = "**Model Used:** GPT-OSS"
	}

	return modelInfo + "\n\n" + response, strategy
}

// AnswerWithHistory is the single-model pipeline: one model, recent
// conversation folded into the prompt.
func (w *Workflow) AnswerWithHistory(question string, session *data.Session, model models.Model) string {
	logger.Screen("🤖 Searching and thinking...", grayStatus)
	context := w.Search.Fetch(question)

	return w.ModelResponse(model, prompts.Assistant, map[string]string{
		"question": question,
		"context":  context,
		"history":  session.FormatHistory(),
	})
}

// CompareResponses asks both models independently, no coordinator and no
// combining. Qwen's answer always comes first.
func (w *Workflow) CompareResponses(question string) (string, string) {
	logger.Screen("🔍 Searching web and thinking with both models...", grayStatus)
	context := w.Search.Fetch(question)

	vars := map[string]string{"question": question, "context": context}

	logger.Screen("🟡 Getting Qwen3-VL response...", yellowStatus)
	qwenResponse := w.ModelResponse(w.Qwen, prompts.Qwen, vars)
	logger.Screen("🔵 Getting GPT-OSS response...", blueStatus)
	gptResponse := w.ModelResponse(w.GPT, prompts.GPT, vars)

	return qwenResponse, gptResponse
}

// ModelResponse renders the template and invokes the model. A failed
// invocation degrades into a diagnostic string standing in for the answer, so
// downstream steps treat it as ordinary text.
func (w *Workflow) ModelResponse(model models.Model, templateId string, vars map[string]string) string {
	prompt, err := prompts.Render(templateId, vars)
	if err != nil {
		panic(err) // a template/variable mismatch is a programming error
	}

	response, err := model.Invoke(prompt)
	if err != nil {
		logger.Debug.Printf("%s invocation failed: %v", model.Name(), err)
		return fmt.Sprintf("%s model error: %v", model.Label(), err)
	}
	return response
}

// CombineResponses merges the two answers with one combiner call. On failure
// it falls back to a fixed concatenation, byte-for-byte reproducible from the
// two inputs.
func (w *Workflow) CombineResponses(question, context, qwenResponse, gptResponse string) string {
	prompt, err := prompts.Render(prompts.Combiner, map[string]string{
		"question":      question,
		"context":       context,
		"qwen_response": qwenResponse,
		"gpt_response":  gptResponse,
	})
	if err != nil {
		panic(err)
	}

	combined, err := w.GPT.Invoke(prompt)
	if err != nil {
		logger.Debug.Printf("combiner call failed, falling back to concatenation: %v", err)
		return fmt.Sprintf("**Combined Response:**\n\n**%s:** %s\n\n**%s:** %s",
			w.Qwen.Label(), qwenResponse, w.GPT.Label(), gptResponse)
	}
	return combined
}
