package types

// Message is one entry of a conversation as the chat client sees it.
type Message struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	IsSent    bool      `json:"isSent"`
	IsLoading bool      `json:"isLoading,omitempty"`
	Image     *Image    `json:"image,omitempty"`
	File      *File     `json:"file,omitempty"`
	Status    string    `json:"status,omitempty"` // sent | delivered | seen
	Metadata  *Metadata `json:"metadata,omitempty"`
}

type Image struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"` // low | high | auto
}

type File struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// Metadata carries the cosmetic annotations attached to assistant replies.
type Metadata struct {
	Timestamp          int64    `json:"timestamp"` // unix millis
	Type               string   `json:"type,omitempty"`
	Confidence         *float64 `json:"confidence,omitempty"`
	ProcessingTime     float64  `json:"processingTime,omitempty"` // millis
	SuggestedFollowUps []string `json:"suggestedFollowUps,omitempty"`
	CodeLanguage       string   `json:"codeLanguage,omitempty"`
}

const (
	StatusSent      = "sent"
	StatusDelivered = "delivered"
	StatusSeen      = "seen"
)

const (
	ContentCode    = "code"
	ContentMath    = "math"
	ContentGeneral = "general"
	ContentError   = "error"
	ContentWarning = "warning"
)

// CompletionRequest is the body of POST /api/chat.
type CompletionRequest struct {
	Messages []Message `json:"messages"`
}

type CompletionResponse struct {
	Response string `json:"response"`
}

// CompletionError is the failure body of POST /api/chat.
type CompletionError struct {
	Error string `json:"error"`
}

// Draft is an outgoing user message before the store accepts it.
type Draft struct {
	Text  string `json:"text"`
	Image *Image `json:"image,omitempty"`
	File  *File  `json:"file,omitempty"`
}

type SendResponse struct {
	Success      bool         `json:"success"`
	Reply        *Message     `json:"reply,omitempty"`
	Session      *ChatSession `json:"session,omitempty"`
	ErrorMessage string       `json:"error,omitempty"`
}
