package manager

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// llamaServerAdapter implements InferenceAdapter by talking to a running llama.cpp server
// over its OpenAI-compatible /v1/completions endpoint.
type llamaServerAdapter struct {
	baseURL    string
	apiKey     string
	reqTimeout time.Duration
	httpClient *http.Client
	log        zerolog.Logger
}

// NewLlamaServerAdapter constructs a server-backed adapter.
func NewLlamaServerAdapter(baseURL, apiKey string, reqTimeout, connectTimeout time.Duration, log zerolog.Logger) InferenceAdapter {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   connectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	// Timeout=0: all requests carry context-based deadlines (see Generate).
	cli := &http.Client{Transport: tr, Timeout: 0}
	return &llamaServerAdapter{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		reqTimeout: reqTimeout,
		httpClient: cli,
		log:        log,
	}
}

type llamaServerSession struct {
	adapter *llamaServerAdapter
	modelID string
}

func (a *llamaServerAdapter) Start(ctx context.Context, spec ModelSpec) (InferSession, error) {
	// Model selection is conveyed by id to the server; we do not use an on-disk path.
	return &llamaServerSession{adapter: a, modelID: strings.TrimSpace(spec.ID)}, nil
}

// openAICompletionRequest represents the payload for /v1/completions.
type openAICompletionRequest struct {
	Model       string  `json:"model,omitempty"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float32 `json:"temperature"`
	TopP        float32 `json:"top_p,omitempty"`
	TopK        int     `json:"top_k,omitempty"`
	Seed        int     `json:"seed,omitempty"`
	Stream      bool    `json:"stream"`
	// llama.cpp extensions; servers that do not know them ignore them.
	RepeatPenalty float32 `json:"repeat_penalty,omitempty"`
	MinKeep       int     `json:"min_keep,omitempty"`
}

// openAIStreamChoice is a minimal subset of an OpenAI completions stream frame.
type openAIStreamChoice struct {
	Text  string `json:"text"`
	Delta struct {
		Content string `json:"content"`
	} `json:"delta"`
	FinishReason string `json:"finish_reason"`
}

type openAIStreamResponse struct {
	Object  string               `json:"object"`
	Choices []openAIStreamChoice `json:"choices"`
}

func (s *llamaServerSession) Generate(ctx context.Context, prompt string, params InferParams) (FinalResult, error) {
	if s.adapter == nil || s.adapter.httpClient == nil {
		return FinalResult{}, errors.New("llama server adapter not initialized")
	}
	if s.adapter.reqTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.adapter.reqTimeout)
		defer cancel()
	}
	payload := openAICompletionRequest{
		Model:         s.modelID,
		Prompt:        prompt,
		MaxTokens:     params.MaxLength,
		TopK:          params.TopK,
		Seed:          params.Seed,
		Stream:        true,
		RepeatPenalty: params.RepetitionPenalty,
	}
	// Deterministic decoding maps to greedy sampling; llama.cpp has no beam search here.
	if params.DoSample {
		payload.Temperature = params.Temperature
		payload.TopP = params.TopP
	}
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.adapter.baseURL+"/v1/completions", bytes.NewReader(body))
	if err != nil {
		return FinalResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.adapter.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.adapter.apiKey)
	}
	resp, err := s.adapter.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return FinalResult{}, ctx.Err()
		}
		return FinalResult{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return FinalResult{}, errors.New("llama server http error: " + resp.Status + ": " + string(b))
	}
	// Servers emit Server-Sent Events with lines beginning with "data: ".
	r := bufio.NewReader(resp.Body)
	var (
		final FinalResult
		b     strings.Builder
	)
	for {
		line, err := r.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" && strings.HasPrefix(strings.ToLower(line), "data:") {
			data := strings.TrimSpace(line[len("data:"):])
			if data == "[DONE]" {
				break
			}
			var msg openAIStreamResponse
			if jerr := json.Unmarshal([]byte(data), &msg); jerr == nil && len(msg.Choices) > 0 {
				b.WriteString(msg.Choices[0].Text)
				b.WriteString(msg.Choices[0].Delta.Content)
				if fr := msg.Choices[0].FinishReason; fr != "" {
					final.FinishReason = fr
				}
			} else {
				// Some servers stream raw JSON objects per line (native /completion shape).
				var generic map[string]any
				if jerr := json.Unmarshal([]byte(data), &generic); jerr == nil {
					if tok, ok := generic["content"].(string); ok {
						b.WriteString(tok)
					}
				} else {
					s.adapter.log.Debug().Str("adapter", "llama_server").Str("line", line).Msg("unknown stream line")
				}
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if ctx.Err() != nil {
				return final, ctx.Err()
			}
			return final, err
		}
	}
	final.Content = b.String()
	return final, nil
}

func (s *llamaServerSession) Close() error { return nil }
