package ollama_model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"magpie/logger"
)

// OllamaModel talks to a hosted model through Ollama's OpenAI-compatible
// /v1/chat/completions endpoint. One Invoke is one blocking request, no
// retries and no timeout: a hung call blocks the caller, which is the
// accepted behavior for the interactive loop.
type OllamaModel struct {
	label     string
	modelName string
	ollamaURL string
	client    *http.Client
}

func NewOllamaModel(label string, modelName string) *OllamaModel {
	if modelName == "" {
		modelName = "gpt-oss:120b-cloud" // default model
	}

	ollamaURL := os.Getenv("OLLAMA_URL")
	if ollamaURL == "" {
		ollamaURL = "http://localhost:11434" // default Ollama URL
	}

	return &OllamaModel{
		label:     label,
		modelName: modelName,
		ollamaURL: ollamaURL,
		client:    &http.Client{},
	}
}

func (model *OllamaModel) Label() string {
	return model.label
}

func (model *OllamaModel) Name() string {
	return model.modelName
}

func (model *OllamaModel) Invoke(prompt string) (string, error) {
	payload := ChatCompletionRequest{
		Model:  model.modelName,
		Stream: false,
		Messages: []RequestMessage{
			{Role: "user", Content: []RequestContent{{Type: "text", Text: prompt}}},
		},
	}

	req, err := model.createRequest(payload)
	if err != nil {
		return "", err
	}

	resp, err := model.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %v", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Debug.Printf("non-OK response from %s: %s", model.modelName, string(bodyBytes))
		return "", fmt.Errorf("received non-OK response status: %d", resp.StatusCode)
	}

	var apiResponse ChatCompletion
	if err := json.Unmarshal(bodyBytes, &apiResponse); err != nil {
		return "", fmt.Errorf("error unmarshalling response body: %v", err)
	}

	if len(apiResponse.Choices) == 0 {
		return "", fmt.Errorf("response from %s contained no choices", model.modelName)
	}

	return apiResponse.Choices[0].Message.Content, nil
}

func (model *OllamaModel) createRequest(payload ChatCompletionRequest) (*http.Request, error) {
	// Ollama doesn't require an API key for local instances, but cloud
	// models routed through a remote instance might.
	apiKey := os.Getenv("OLLAMA_API_KEY")

	jsonpayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %v", err)
	}

	url := fmt.Sprintf("%s/v1/chat/completions", model.ollamaURL)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonpayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", apiKey))
	}

	return req, nil
}
