package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nicksukie/livesub/internal/core"
)

type GoogleLLM struct {
	apiKey string
	url    string
	model  string
	client *http.Client
}

func NewGoogleLLM(apiKey, model string) *GoogleLLM {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GoogleLLM{
		apiKey: apiKey,
		url:    "https://generativelanguage.googleapis.com/v1beta/models/" + model + ":generateContent",
		model:  model,
		client: http.DefaultClient,
	}
}

func (l *GoogleLLM) Name() string { return "google-llm" }

func (l *GoogleLLM) IsLLM() bool { return true }

func (l *GoogleLLM) Translate(ctx context.Context, req core.TranslateRequest) (string, error) {
	type part struct {
		Text string `json:"text"`
	}
	type message struct {
		Role  string `json:"role"`
		Parts []part `json:"parts"`
	}

	var contents []message
	contents = append(contents, message{Role: "user", Parts: []part{{Text: targetedSystemPrompt(req.TargetLang)}}})
	for _, pair := range req.Context {
		contents = append(contents, message{Role: "user", Parts: []part{{Text: pair.Source}}})
		contents = append(contents, message{Role: "model", Parts: []part{{Text: pair.Translation}}})
	}
	contents = append(contents, message{Role: "user", Parts: []part{{Text: req.SourceText}}})

	payload := map[string]interface{}{"contents": contents}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", l.url+"?key="+l.apiKey, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp interface{}
		json.NewDecoder(resp.Body).Decode(&errResp)
		return "", fmt.Errorf("google llm error (status %d): %v", resp.StatusCode, errResp)
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []part `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from google llm")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

var _ core.Translator = (*GoogleLLM)(nil)
