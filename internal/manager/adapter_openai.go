package manager

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openAIAdapter talks to an OpenAI-compatible chat completions API.
type openAIAdapter struct {
	client openai.Client
}

// NewOpenAIAdapter constructs an adapter for baseURL (e.g. https://api.openai.com/v1).
// Retries are disabled; a failed generation surfaces to the caller.
func NewOpenAIAdapter(baseURL, apiKey string, reqTimeout time.Duration) InferenceAdapter {
	opts := []option.RequestOption{
		option.WithBaseURL(strings.TrimRight(baseURL, "/") + "/"),
		option.WithMaxRetries(0),
	}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if reqTimeout > 0 {
		opts = append(opts, option.WithRequestTimeout(reqTimeout))
	}
	return &openAIAdapter{client: openai.NewClient(opts...)}
}

type openAISession struct {
	client openai.Client
	model  string
}

func (a *openAIAdapter) Start(ctx context.Context, spec ModelSpec) (InferSession, error) {
	if strings.TrimSpace(spec.ID) == "" {
		return nil, errors.New("model id is empty")
	}
	return &openAISession{client: a.client, model: spec.ID}, nil
}

func (s *openAISession) Generate(ctx context.Context, prompt string, params InferParams) (FinalResult, error) {
	req := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
	}
	if params.MaxLength > 0 {
		req.MaxCompletionTokens = openai.Int(int64(params.MaxLength))
	}
	if params.DoSample {
		if params.Temperature > 0 {
			req.Temperature = openai.Float(float64(params.Temperature))
		}
		if params.TopP > 0 {
			req.TopP = openai.Float(float64(params.TopP))
		}
	} else {
		req.Temperature = openai.Float(0)
	}
	// repetition_penalty > 1 discourages repeats; the closest knob here is frequency_penalty.
	if params.RepetitionPenalty > 1 {
		req.FrequencyPenalty = openai.Float(float64(params.RepetitionPenalty - 1))
	}
	if params.Seed != 0 {
		req.Seed = openai.Int(int64(params.Seed))
	}
	resp, err := s.client.Chat.Completions.New(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return FinalResult{}, ctx.Err()
		}
		return FinalResult{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return FinalResult{}, errors.New("chat completion choices are missing")
	}
	return FinalResult{
		Content:      resp.Choices[0].Message.Content,
		FinishReason: string(resp.Choices[0].FinishReason),
		Usage: Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}

func (s *openAISession) Close() error { return nil }
