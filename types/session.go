package types

import "time"

// ChatSession is one independent conversation thread.
type ChatSession struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
	Preview   string    `json:"preview"`
	Messages  []Message `json:"messages"`
}

// Staged holds attachments picked by the user but not sent yet.
type Staged struct {
	Image *Image `json:"image,omitempty"`
	File  *File  `json:"file,omitempty"`
}

type GetSessionsResponse struct {
	Success  bool          `json:"success"`
	Sessions []ChatSession `json:"sessions"`
	ActiveID string        `json:"active_id"`
}

type SessionResponse struct {
	Success      bool         `json:"success"`
	Session      *ChatSession `json:"session,omitempty"`
	ActiveID     string       `json:"active_id,omitempty"`
	ErrorMessage string       `json:"error,omitempty"` // only set on failure
}

type StagedResponse struct {
	Success      bool   `json:"success"`
	Staged       Staged `json:"staged"`
	ErrorMessage string `json:"error,omitempty"`
}

type SelectSessionRequest struct {
	ID string `json:"id"`
}

type ErrorResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error"`
}
