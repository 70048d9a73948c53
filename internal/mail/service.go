// Package mail implements reply and summary generation on top of the shared model.
package mail

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"mailgen/internal/manager"
	"mailgen/internal/postprocess"
)

// Service generates replies and summaries for email text.
type Service interface {
	GenerateReply(ctx context.Context, email string) (string, error)
	GenerateSummary(ctx context.Context, text string) (string, error)
}

// Generator runs one generation on the loaded model. *manager.Manager satisfies it.
type Generator interface {
	Generate(ctx context.Context, prompt string, params manager.InferParams) (string, error)
}

type service struct {
	gen     Generator
	prompts *Prompts
	log     zerolog.Logger
}

// NewService wires a Service to the model handle gen. A nil prompts uses the defaults.
func NewService(gen Generator, prompts *Prompts, log zerolog.Logger) Service {
	if prompts == nil {
		prompts, _ = ParsePrompts("", "")
	}
	return &service{gen: gen, prompts: prompts, log: log}
}

func (s *service) GenerateReply(ctx context.Context, email string) (string, error) {
	const op = "generate reply"
	email = strings.TrimSpace(email)
	prompt, err := s.prompts.Reply(email)
	if err != nil {
		return "", s.fail(op, "reply generation failed", err)
	}
	raw, err := s.run(ctx, prompt, ReplyPreset)
	if err != nil {
		return "", s.fail(op, "reply generation failed", err)
	}
	return postprocess.Format(postprocess.Deduplicate(raw)), nil
}

func (s *service) GenerateSummary(ctx context.Context, text string) (string, error) {
	const op = "generate summary"
	prompt, err := s.prompts.Summary(strings.TrimSpace(text))
	if err != nil {
		return "", s.fail(op, "summary generation failed", err)
	}
	raw, err := s.run(ctx, prompt, SummaryPreset)
	if err != nil {
		return "", s.fail(op, "summary generation failed", err)
	}
	return strings.TrimSpace(raw), nil
}

func (s *service) run(ctx context.Context, prompt string, params manager.InferParams) (string, error) {
	start := time.Now()
	s.log.Info().Str("task", params.Label).Int("prompt_chars", len(prompt)).Msg("generation start")
	out, err := s.gen.Generate(ctx, prompt, params)
	if err != nil {
		return "", err
	}
	s.log.Info().Str("task", params.Label).Dur("dur", time.Since(start)).Int("output_chars", len(out)).Msg("generation done")
	s.log.Debug().Str("task", params.Label).Str("raw", out).Msg("model output")
	return out, nil
}

// fail logs the full cause and returns a generation error with a generic message.
func (s *service) fail(op, msg string, err error) error {
	s.log.Error().Err(err).Str("op", op).Msg(msg)
	return &Error{Kind: KindGeneration, Op: op, Msg: msg, Err: err}
}
