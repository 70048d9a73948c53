package mail

import (
	"strings"
	"unicode/utf8"
)

// Content length bounds, counted in characters after trimming whitespace.
const (
	MinContentChars = 10
	MaxContentChars = 5000
)

// ValidateContent checks an incoming email body. A nil pointer means the field was absent.
// It returns the trimmed content.
func ValidateContent(content *string) (string, error) {
	if content == nil {
		return "", validationError(MsgMissingContent)
	}
	s := strings.TrimSpace(*content)
	n := utf8.RuneCountInString(s)
	switch {
	case n < MinContentChars:
		return "", validationError(MsgTooShort)
	case n > MaxContentChars:
		return "", validationError(MsgTooLong)
	}
	return s, nil
}
