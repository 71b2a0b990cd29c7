package prompts

import (
	"fmt"
	"strings"
	"text/template"
)

// Template ids. Every prompt the assistant sends is rendered from one of
// these, the workflow never builds prompt strings by hand.
const (
	Coordinator = "coordinator"
	Qwen        = "qwen"
	GPT         = "gpt"
	Combiner    = "combiner"
	Assistant   = "assistant"
)

type promptTemplate struct {
	text     string
	required []string
}

var registry = map[string]promptTemplate{
	Coordinator: {
		required: []string{"question", "context"},
		text: `You are a model coordinator. Analyze the user's question and determine which model(s) to use:

Available models:
- qwen3-vl:235b-cloud - Best for: vision tasks, image analysis, multimodal content, Chinese language
- gpt-oss:120b-cloud - Best for: general reasoning, complex analysis, English text generation

User question: {{.question}}
Search context: {{.context}}

Respond with ONLY one of these options:
- "QWEN" - Use Qwen3-VL model only
- "GPT" - Use GPT-OSS model only
- "BOTH" - Use both models and combine responses
- "QWEN_THEN_GPT" - Use Qwen first, then GPT to refine
`,
	},
	Qwen: {
		required: []string{"question", "context"},
		text: `You are Qwen3-VL, a multimodal AI assistant with vision capabilities.
Use the search context to provide accurate, current information.

Search context: {{.context}}
Question: {{.question}}

Provide a helpful response:
`,
	},
	GPT: {
		required: []string{"question", "context"},
		text: `You are GPT-OSS, a powerful reasoning AI assistant.
Use the search context to provide detailed, analytical responses.

Search context: {{.context}}
Question: {{.question}}

Provide a comprehensive response:
`,
	},
	Combiner: {
		required: []string{"question", "context", "qwen_response", "gpt_response"},
		text: `You are combining responses from two AI models. Create a unified, coherent answer.

Original question: {{.question}}
Search context: {{.context}}

Qwen3-VL response: {{.qwen_response}}
GPT-OSS response: {{.gpt_response}}

Combine these responses into a single, comprehensive answer:
`,
	},
	Assistant: {
		required: []string{"question", "context", "history"},
		text: `You are a helpful AI assistant with access to real-time information.
Use the following context from web search results to answer the user's question.

IMPORTANT:
- If you use information from the search results, mention that it's from recent web search
- Be specific about what information comes from search vs your training knowledge
- If the search results don't contain relevant information, rely on your general knowledge

Previous conversation context:
{{.history}}

Current web search results:
{{.context}}

Current question: {{.question}}

Provide a helpful, accurate answer:
`,
	},
}

var parsed = map[string]*template.Template{}

func init() {
	for id, pt := range registry {
		parsed[id] = template.Must(template.New(id).Option("missingkey=error").Parse(pt.text))
	}
}

// Validate checks that every registered template references exactly the
// variables it declares. Called once at startup.
func Validate() error {
	for id, pt := range registry {
		vars := map[string]string{}
		for _, name := range pt.required {
			vars[name] = "x"
		}
		if _, err := Render(id, vars); err != nil {
			return fmt.Errorf("template %q does not render with its declared variables: %w", id, err)
		}
	}
	return nil
}

// Render fills the named template with the given variables. A missing
// required variable is a caller bug and comes back as an error.
func Render(id string, vars map[string]string) (string, error) {
	pt, ok := registry[id]
	if !ok {
		return "", fmt.Errorf("unknown prompt template: %s", id)
	}

	for _, name := range pt.required {
		if _, ok := vars[name]; !ok {
			return "", fmt.Errorf("template %q requires variable %q", id, name)
		}
	}

	var sb strings.Builder
	if err := parsed[id].Execute(&sb, vars); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Required returns the variable names the named template expects.
func Required(id string) []string {
	return registry[id].required
}
