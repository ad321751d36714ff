package sessions

import (
	"clementus360/smarti-ai/types"
	"regexp"
	"strings"
)

const (
	DefaultTitle = "New Chat"

	maxTitleRunes   = 40
	maxPreviewRunes = 50
	ellipsis        = "..."
)

var codeFence = regexp.MustCompile("(?s)```.*?```")

// GenerateTitle derives a session title from the first user message:
// fenced code blocks are dropped and only the first line is kept.
func GenerateTitle(message string) string {
	cleaned := codeFence.ReplaceAllString(message, "")
	firstLine, _, _ := strings.Cut(cleaned, "\n")
	title := strings.TrimSpace(firstLine)

	if title == "" {
		return DefaultTitle
	}
	return truncate(title, maxTitleRunes)
}

// Preview is the start of the last message's text.
func Preview(messages []types.Message) string {
	if len(messages) == 0 {
		return ""
	}
	return truncate(messages[len(messages)-1].Text, maxPreviewRunes)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + ellipsis
}
