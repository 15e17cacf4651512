package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nicksukie/livesub/internal/core"
)

type OpenAILLM struct {
	apiKey string
	url    string
	model  string
	client *http.Client
}

func NewOpenAILLM(apiKey, model string) *OpenAILLM {
	if model == "" {
		model = "gpt-4o"
	}
	return &OpenAILLM{
		apiKey: apiKey,
		url:    "https://api.openai.com/v1/chat/completions",
		model:  model,
		client: http.DefaultClient,
	}
}

func (l *OpenAILLM) Name() string { return "openai" }

func (l *OpenAILLM) IsLLM() bool { return true }

func (l *OpenAILLM) Translate(ctx context.Context, req core.TranslateRequest) (string, error) {
	messages := []map[string]string{{"role": "system", "content": targetedSystemPrompt(req.TargetLang)}}
	for _, pair := range req.Context {
		messages = append(messages, map[string]string{"role": "user", "content": pair.Source})
		messages = append(messages, map[string]string{"role": "assistant", "content": pair.Translation})
	}
	messages = append(messages, map[string]string{"role": "user", "content": req.SourceText})

	payload := map[string]interface{}{"model": l.model, "messages": messages}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", l.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+l.apiKey)

	resp, err := l.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp interface{}
		json.NewDecoder(resp.Body).Decode(&errResp)
		return "", fmt.Errorf("openai error (status %d): %v", resp.StatusCode, errResp)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from openai")
	}
	return result.Choices[0].Message.Content, nil
}

var _ core.Translator = (*OpenAILLM)(nil)
