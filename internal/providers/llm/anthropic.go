// Package llm implements the dispatcher's LLM translation providers,
// adapted from the teacher's chat-completion clients into a translation-
// oriented Translate(ctx, TranslateRequest) method that folds recent
// (source, translation) pairs in as conversational context.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nicksukie/livesub/internal/core"
)

const systemRulePrompt = "You are a subtitle translator. Translate the user's text into the target language. " +
	"Respond with only the translation, no commentary, no quotation marks."

type AnthropicLLM struct {
	apiKey string
	url    string
	model  string
	client *http.Client
}

func NewAnthropicLLM(apiKey, model string) *AnthropicLLM {
	if model == "" {
		model = "claude-3-5-sonnet-20240620"
	}
	return &AnthropicLLM{
		apiKey: apiKey,
		url:    "https://api.anthropic.com/v1/messages",
		model:  model,
		client: http.DefaultClient,
	}
}

func (l *AnthropicLLM) Name() string { return "anthropic" }

func (l *AnthropicLLM) IsLLM() bool { return true }

func (l *AnthropicLLM) Translate(ctx context.Context, req core.TranslateRequest) (string, error) {
	var messages []map[string]string
	for _, pair := range req.Context {
		messages = append(messages, map[string]string{"role": "user", "content": pair.Source})
		messages = append(messages, map[string]string{"role": "assistant", "content": pair.Translation})
	}
	messages = append(messages, map[string]string{"role": "user", "content": req.SourceText})

	payload := map[string]interface{}{
		"model":      l.model,
		"messages":   messages,
		"max_tokens": 1024,
		"system":     targetedSystemPrompt(req.TargetLang),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", l.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", l.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := l.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp interface{}
		json.NewDecoder(resp.Body).Decode(&errResp)
		return "", fmt.Errorf("anthropic error (status %d): %v", resp.StatusCode, errResp)
	}

	var result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Content) == 0 {
		return "", fmt.Errorf("no content returned from anthropic")
	}
	return result.Content[0].Text, nil
}

func targetedSystemPrompt(target core.Language) string {
	return systemRulePrompt + " Target language: " + string(target) + "."
}

var _ core.Translator = (*AnthropicLLM)(nil)
