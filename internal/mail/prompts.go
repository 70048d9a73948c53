package mail

import (
	"fmt"
	"strings"
	"text/template"

	"mailgen/internal/manager"
)

// DefaultReplyTemplate asks for a reply. It does not reference .Email, so the
// original message is not sent to the model unless a custom template includes it.
const DefaultReplyTemplate = `As the recipient, write a concise, professional reply to the following email:

Guidelines:
- Acknowledge the email.
- Confirm participation or respond to specific requests.
- Include a professional greeting and closing.

Write your reply:`

// DefaultSummaryTemplate asks for a list oriented summary of .Text.
const DefaultSummaryTemplate = `You are a friendly assistant helping users who don't understand the content.
Help users quickly grasp the main ideas.
Summarize the following text in a clear and concise way, and organize the key points into a list:
{{.Text}}`

// ReplyPreset is the decoding configuration for replies.
var ReplyPreset = manager.InferParams{
	Label:             "reply",
	MaxInputTokens:    300,
	MaxLength:         350,
	MinLength:         100,
	NumBeams:          5,
	LengthPenalty:     1.5,
	NoRepeatNgramSize: 3,
	EarlyStopping:     true,
	DoSample:          false,
	RepetitionPenalty: 1.2,
}

// SummaryPreset is the decoding configuration for summaries.
var SummaryPreset = manager.InferParams{
	Label:             "summary",
	MaxInputTokens:    1024,
	MaxLength:         150,
	MinLength:         40,
	NumBeams:          4,
	LengthPenalty:     2.0,
	NoRepeatNgramSize: 3,
	EarlyStopping:     true,
}

// promptData is what templates can reference.
type promptData struct {
	// Email is the trimmed original email (reply prompts).
	Email string
	// Text is the trimmed text to summarize (summary prompts).
	Text string
}

// Prompts holds the parsed task templates.
type Prompts struct {
	reply   *template.Template
	summary *template.Template
}

// ParsePrompts compiles the reply and summary templates. Empty strings select the defaults.
func ParsePrompts(reply, summary string) (*Prompts, error) {
	if strings.TrimSpace(reply) == "" {
		reply = DefaultReplyTemplate
	}
	if strings.TrimSpace(summary) == "" {
		summary = DefaultSummaryTemplate
	}
	rt, err := template.New("reply").Option("missingkey=error").Parse(reply)
	if err != nil {
		return nil, fmt.Errorf("parse reply template: %w", err)
	}
	st, err := template.New("summary").Option("missingkey=error").Parse(summary)
	if err != nil {
		return nil, fmt.Errorf("parse summary template: %w", err)
	}
	return &Prompts{reply: rt, summary: st}, nil
}

// Reply renders the reply prompt for email.
func (p *Prompts) Reply(email string) (string, error) {
	return render(p.reply, promptData{Email: email, Text: email})
}

// Summary renders the summary prompt for text.
func (p *Prompts) Summary(text string) (string, error) {
	return render(p.summary, promptData{Email: text, Text: text})
}

func render(t *template.Template, data promptData) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", t.Name(), err)
	}
	return b.String(), nil
}
