package sessions

import "errors"

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrLastSession        = errors.New("cannot delete the last session")
	ErrEmptyMessage       = errors.New("message has no text, image or file")
	ErrRequestInFlight    = errors.New("a request is already in flight for this session")
	ErrInvalidAttachment  = errors.New("invalid attachment")
	ErrPlaceholderMissing = errors.New("loading placeholder is no longer the last message")
)
