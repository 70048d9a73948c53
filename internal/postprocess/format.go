package postprocess

import "strings"

const (
	defaultGreeting  = "Dear [Name],\n\n"
	defaultClosing   = "\n\nBest regards,\n[Your name]"
	signatureDetails = "\n[Position]\n[Organization]"
)

var (
	greetings = []string{"dear", "hello", "hi", "greetings"}
	closings  = []string{"best regards", "kind regards", "sincerely", "best wishes", "regards", "yours truly", "yours sincerely"}
)

// Format shapes text into a professional email: a salutation, one paragraph per line with
// terminal punctuation, a closing and signature placeholders. Once text carries a greeting
// and a closing, Format(Format(x)) == Format(x).
func Format(text string) string {
	text = strings.TrimSpace(text)
	if !hasGreeting(text) {
		text = defaultGreeting + text
	}

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}

	closingIdx := -1
	for i, l := range lines {
		if containsClosing(l) {
			closingIdx = i
			break
		}
	}

	// Everything after the closing line is the signature block and stays as written.
	head, sig := lines, []string(nil)
	if closingIdx >= 0 {
		head, sig = lines[:closingIdx+1], lines[closingIdx+1:]
	}
	for i, l := range head {
		if i == closingIdx {
			head[i] = punctuateClosing(l)
			continue
		}
		head[i] = punctuate(l)
	}
	out := strings.Join(head, "\n\n")
	if len(sig) > 0 {
		out += "\n" + strings.Join(sig, "\n")
	}

	if closingIdx < 0 {
		out += defaultClosing
	}
	lower := strings.ToLower(out)
	if strings.Contains(lower, "[your name]") && !strings.Contains(lower, "[position]") {
		out += signatureDetails
	}
	return out
}

// hasGreeting reports whether text starts with a greeting word.
func hasGreeting(text string) bool {
	lower := strings.ToLower(text)
	for _, g := range greetings {
		if !strings.HasPrefix(lower, g) {
			continue
		}
		rest := lower[len(g):]
		if rest == "" || !isWordByte(rest[0]) {
			return true
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('0' <= b && b <= '9') || b >= 0x80
}

func containsClosing(line string) bool {
	lower := strings.ToLower(line)
	for _, c := range closings {
		if strings.Contains(lower, c) {
			return true
		}
	}
	return false
}

// punctuate ends a body line with '.', leaving lines that already end a sentence or a
// salutation alone.
func punctuate(line string) string {
	switch line[len(line)-1] {
	case '.', '!', '?', ',':
		return line
	}
	return line + "."
}

// punctuateClosing ends a bare closing phrase ("Best regards") with a comma.
func punctuateClosing(line string) string {
	switch line[len(line)-1] {
	case '.', '!', '?', ',':
		return line
	}
	return line + ","
}
