package manager

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkoukk/tiktoken-go"
)

// TokenTruncator clips prompts with a BPE tokenizer. Encoding data is downloaded once
// and kept under the model cache directory.
type TokenTruncator struct {
	enc *tiktoken.Tiktoken
}

// NewTokenTruncator loads encoding (e.g. cl100k_base), caching its data in cacheDir/tiktoken.
func NewTokenTruncator(encoding, cacheDir string) (*TokenTruncator, error) {
	if cacheDir != "" {
		dir := filepath.Join(cacheDir, "tiktoken")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("tokenizer cache: %w", err)
		}
		if os.Getenv("TIKTOKEN_CACHE_DIR") == "" {
			_ = os.Setenv("TIKTOKEN_CACHE_DIR", dir)
		}
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer %s: %w", encoding, err)
	}
	return &TokenTruncator{enc: enc}, nil
}

// Truncate keeps the first maxTokens tokens of text.
func (t *TokenTruncator) Truncate(text string, maxTokens int) string {
	if t == nil || t.enc == nil || maxTokens <= 0 {
		return text
	}
	ids := t.enc.Encode(text, nil, nil)
	if len(ids) <= maxTokens {
		return text
	}
	return t.enc.Decode(ids[:maxTokens])
}
