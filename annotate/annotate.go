// Package annotate decorates assistant replies with cosmetic metadata.
// Everything here is keyword matching; nothing is model-verified.
package annotate

import (
	"clementus360/smarti-ai/types"
	"context"
	"errors"
	"net"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxConfidence = 0.95
	minConfidence = 0.5

	baseTypingDelay = 500 * time.Millisecond
	maxCharDelay    = 1000 * time.Millisecond
	perCharDelay    = 2 * time.Millisecond

	maxFollowUps = 2
)

var (
	codeIndicators = []string{"```", "function", "const", "let", "var", "class", "import", "export"}
	mathIndicators = []string{"=", "+", "-", "*", "/", "^", "sqrt", "sum", "pi", "∫", "∑"}

	uncertaintyPhrases = []string{"might", "maybe", "possibly", "i think", "could be"}
)

// Checked in order, first hit wins.
var codeLanguages = []struct {
	name     string
	patterns []string
}{
	{"javascript", []string{"const", "let", "var", "function", "=>"}},
	{"python", []string{"def", "import", "class", "if __name__"}},
	{"java", []string{"public class", "private", "protected"}},
	{"typescript", []string{"interface", "type", "enum"}},
	{"html", []string{"<html>", "<div>", "<body>"}},
	{"css", []string{"{", "margin:", "padding:", "@media"}},
}

// ContentType classifies a reply as code, math or general text.
func ContentType(text string) string {
	if containsAny(text, codeIndicators) {
		return types.ContentCode
	}
	if containsAny(text, mathIndicators) {
		return types.ContentMath
	}
	return types.ContentGeneral
}

// CodeLanguage guesses the language of a code reply, "" when nothing matches.
func CodeLanguage(text string) string {
	for _, lang := range codeLanguages {
		if containsAny(text, lang.patterns) {
			return lang.name
		}
	}
	return ""
}

// Confidence is a fabricated score in [0.5, 0.95].
func Confidence(text string) float64 {
	confidence := maxConfidence

	if containsAny(strings.ToLower(text), uncertaintyPhrases) {
		confidence -= 0.15
	}
	if utf8.RuneCountInString(text) < 50 {
		confidence -= 0.1
	}
	confidence -= float64(strings.Count(text, "?")) * 0.05

	return max(minConfidence, min(maxConfidence, confidence))
}

// FollowUps returns at most two canned follow-up questions.
func FollowUps(text string) []string {
	var questions []string

	if strings.Contains(text, "code") {
		questions = append(questions,
			"Explain this code in more detail?",
			"Show an example of how to use this code?",
		)
	}
	if strings.Contains(text, "error") {
		questions = append(questions,
			"See common solutions for this error?",
			"Explain how to debug this issue?",
		)
	}

	if len(questions) > maxFollowUps {
		questions = questions[:maxFollowUps]
	}
	return questions
}

// TypingDelay paces a request by the length of the outgoing text.
func TypingDelay(text string) time.Duration {
	charDelay := time.Duration(utf8.RuneCountInString(text)) * perCharDelay
	return baseTypingDelay + min(charDelay, maxCharDelay)
}

const (
	networkErrorMessage = "I'm having trouble connecting to the server. Please check your internet connection and try again."
	timeoutErrorMessage = "The request took too long to process. Please try again with a simpler question."
	defaultErrorMessage = "I encountered an unexpected error. Could you please rephrase your question?"
)

// ErrorMessage picks the user-facing text for a failed request.
// Errors that are neither timeouts nor network errors get the default text.
func ErrorMessage(err error) string {
	switch ErrorName(err) {
	case "TimeoutError":
		return timeoutErrorMessage
	case "NetworkError":
		return networkErrorMessage
	default:
		return defaultErrorMessage
	}
}

// ErrorName maps an error onto the coarse names the chat client knows.
func ErrorName(err error) string {
	if err == nil {
		return "default"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "TimeoutError"
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return "TimeoutError"
		}
		return "NetworkError"
	}
	return "default"
}

// Reply builds the metadata for a successful assistant reply.
func Reply(text string, elapsed time.Duration) *types.Metadata {
	contentType := ContentType(text)
	confidence := Confidence(text)

	meta := &types.Metadata{
		Timestamp:          time.Now().UnixMilli(),
		Type:               contentType,
		Confidence:         &confidence,
		ProcessingTime:     millis(elapsed),
		SuggestedFollowUps: FollowUps(text),
	}
	if contentType == types.ContentCode {
		meta.CodeLanguage = CodeLanguage(text)
	}
	return meta
}

// Failure builds the metadata for a reply standing in for a failed request.
func Failure(elapsed time.Duration) *types.Metadata {
	zero := 0.0
	return &types.Metadata{
		Timestamp:      time.Now().UnixMilli(),
		Type:           types.ContentError,
		Confidence:     &zero,
		ProcessingTime: millis(elapsed),
	}
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
