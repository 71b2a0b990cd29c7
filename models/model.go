package models

// Model is a hosted text-completion service addressed by name. Invoke sends
// one prompt and returns the raw completion. The caller owns the policy for
// what to do with a failed call.
type Model interface {
	// Label is the human readable identity used in combined output
	// ("Qwen3-VL", "GPT-OSS").
	Label() string
	// Name is the service-side model identifier ("qwen3-vl:235b-cloud").
	Name() string
	Invoke(prompt string) (string, error)
}
