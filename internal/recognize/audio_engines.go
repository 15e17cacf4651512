package recognize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/nicksukie/livesub/internal/audio"
	"github.com/nicksukie/livesub/internal/core"
)

// GroqRecognizer and DeepgramRecognizer are real audio-mode engines for C2,
// adapted from the teacher's pkg/providers/stt GroqSTT/DeepgramSTT: same
// HTTP request shapes, rehomed onto core.Recognizer and run through the
// Chain filter every real engine's output must pass (spec §4.2) before it
// reaches the gate.
type GroqRecognizer struct {
	apiKey     string
	url        string
	model      string
	sampleRate int
	filter     *Chain
	client     *http.Client
}

func NewGroqRecognizer(apiKey, model string, filter *Chain) *GroqRecognizer {
	if model == "" {
		model = "whisper-large-v3-turbo"
	}
	if filter == nil {
		filter = NewChain(nil)
	}
	return &GroqRecognizer{
		apiKey:     apiKey,
		url:        "https://api.groq.com/openai/v1/audio/transcriptions",
		model:      model,
		sampleRate: 44100,
		filter:     filter,
		client:     &http.Client{Timeout: 20 * time.Second},
	}
}

func (g *GroqRecognizer) Name() string { return "groq-stt" }

func (g *GroqRecognizer) Process(ctx context.Context, in core.RecognitionInput) (core.RecognitionResult, error) {
	if len(in.Audio) == 0 {
		return core.RecognitionResult{}, nil
	}
	wavData := audio.NewWavBuffer(in.Audio, g.sampleRate)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if err := writer.WriteField("model", g.model); err != nil {
		return core.RecognitionResult{}, err
	}
	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return core.RecognitionResult{}, err
	}
	if _, err := io.Copy(part, bytes.NewReader(wavData)); err != nil {
		return core.RecognitionResult{}, err
	}
	if err := writer.Close(); err != nil {
		return core.RecognitionResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.url, body)
	if err != nil {
		return core.RecognitionResult{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return core.RecognitionResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp interface{}
		json.NewDecoder(resp.Body).Decode(&errResp)
		return core.RecognitionResult{}, fmt.Errorf("groq stt error (status %d): %v", resp.StatusCode, errResp)
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return core.RecognitionResult{}, err
	}

	cleaned, ok := g.filter.Apply(result.Text, in.Prompt)
	if !ok {
		return core.RecognitionResult{}, nil
	}
	return core.RecognitionResult{Text: cleaned, Timestamp: time.Now()}, nil
}

var _ core.Recognizer = (*GroqRecognizer)(nil)

type DeepgramRecognizer struct {
	apiKey string
	url    string
	filter *Chain
	client *http.Client
}

func NewDeepgramRecognizer(apiKey string, filter *Chain) *DeepgramRecognizer {
	if filter == nil {
		filter = NewChain(nil)
	}
	return &DeepgramRecognizer{
		apiKey: apiKey,
		url:    "https://api.deepgram.com/v1/listen",
		filter: filter,
		client: &http.Client{Timeout: 20 * time.Second},
	}
}

func (d *DeepgramRecognizer) Name() string { return "deepgram-stt" }

func (d *DeepgramRecognizer) Process(ctx context.Context, in core.RecognitionInput) (core.RecognitionResult, error) {
	if len(in.Audio) == 0 {
		return core.RecognitionResult{}, nil
	}
	u, err := url.Parse(d.url)
	if err != nil {
		return core.RecognitionResult{}, err
	}
	params := u.Query()
	params.Set("model", "nova-2")
	params.Set("smart_format", "true")
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, "POST", u.String(), bytes.NewReader(in.Audio))
	if err != nil {
		return core.RecognitionResult{}, err
	}
	req.Header.Set("Authorization", "Token "+d.apiKey)
	req.Header.Set("Content-Type", "audio/l16; rate=44100; channels=1")

	resp, err := d.client.Do(req)
	if err != nil {
		return core.RecognitionResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return core.RecognitionResult{}, fmt.Errorf("deepgram error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Results struct {
			Channels []struct {
				Alternatives []struct {
					Transcript string `json:"transcript"`
				} `json:"alternatives"`
			} `json:"channels"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return core.RecognitionResult{}, err
	}
	if len(result.Results.Channels) == 0 || len(result.Results.Channels[0].Alternatives) == 0 {
		return core.RecognitionResult{}, nil
	}

	cleaned, ok := d.filter.Apply(result.Results.Channels[0].Alternatives[0].Transcript, in.Prompt)
	if !ok {
		return core.RecognitionResult{}, nil
	}
	return core.RecognitionResult{Text: cleaned, Timestamp: time.Now()}, nil
}

var _ core.Recognizer = (*DeepgramRecognizer)(nil)
