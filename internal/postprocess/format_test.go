package postprocess

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormat_AddsGreetingAndClosing(t *testing.T) {
	got := Format("Thank you for the invitation. I will attend the meeting")
	require.Equal(t, "Dear [Name],\n\nThank you for the invitation. I will attend the meeting.\n\nBest regards,\n[Your name]\n[Position]\n[Organization]", got)
}

func TestFormat_KeepsExistingGreeting(t *testing.T) {
	for _, in := range []string{"Hi Anna,\nSee you then", "hello team\nok", "Greetings!\nok", "Dear Bob,\nok"} {
		got := Format(in)
		require.False(t, strings.HasPrefix(got, "Dear [Name]"), "input %q got %q", in, got)
	}
}

func TestFormat_GreetingIsWholeWord(t *testing.T) {
	got := Format("His schedule is full")
	require.True(t, strings.HasPrefix(got, "Dear [Name],\n\nHis schedule is full."), got)
}

func TestFormat_Paragraphs(t *testing.T) {
	got := Format("Dear Sam,\n\n  first point  \n\n\nsecond point!\nthird?\nKind regards\nSam\nACME")
	require.Equal(t, "Dear Sam,\n\nfirst point.\n\nsecond point!\n\nthird?\n\nKind regards,\nSam\nACME", got)
}

func TestFormat_ExistingPlaceholderName(t *testing.T) {
	got := Format("Hello,\nSure.\nSincerely,\n[Your Name]")
	require.True(t, strings.HasSuffix(got, "Sincerely,\n[Your Name]\n[Position]\n[Organization]"), got)
	require.Equal(t, 1, strings.Count(strings.ToLower(got), "[position]"))
}

func TestFormat_Idempotent(t *testing.T) {
	inputs := []string{
		"Dear Sam,\nI will attend.\nBest regards,\nKim",
		"Hi all\nconfirmed\nregards",
		"Hello,\nThanks.\nBest regards,\n[Your name]",
	}
	for _, in := range inputs {
		once := Format(in)
		require.Equal(t, once, Format(once), "input %q", in)
	}
	// Format output always carries a greeting and a closing, so a second pass is stable.
	for _, in := range []string{"plain text", "", "As requested. Done"} {
		once := Format(in)
		require.Equal(t, once, Format(once), "input %q", in)
	}
}

func TestFormat_AfterDeduplicate(t *testing.T) {
	got := Format(Deduplicate("I confirm my participation. I confirm my participation. See you there"))
	require.Equal(t, "Dear [Name],\n\nI confirm my participation. See you there.\n\nBest regards,\n[Your name]\n[Position]\n[Organization]", got)
}

// With no closing from the model, the placeholder signature is the last thing in the reply.
func TestFormat_PlaceholderSignatureEndsReply(t *testing.T) {
	got := Format(Deduplicate("Thank you for the invitation. I will attend"))
	require.True(t, strings.HasSuffix(got, "Best regards,\n[Your name]\n[Position]\n[Organization]"), got)
	require.False(t, strings.HasSuffix(got, "."), got)
}

func TestFormat_EmptyModelOutput(t *testing.T) {
	got := Format(Deduplicate(""))
	require.Equal(t, "Dear [Name],\n\n.\n\nBest regards,\n[Your name]\n[Position]\n[Organization]", got)
}
