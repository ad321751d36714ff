package sessions

import (
	"clementus360/smarti-ai/annotate"
	"clementus360/smarti-ai/config"
	"clementus360/smarti-ai/llm"
	"clementus360/smarti-ai/types"
	"context"
	"time"
)

const emptyReplyText = "Sorry, I couldn't process that."

// Conversation runs the request lifecycle of a send: placeholder, pacing
// delay, upstream call, placeholder replacement.
type Conversation struct {
	Completer llm.Completer

	// Annotate and Delay are swappable; a nil Delay sends immediately.
	Annotate func(text string, elapsed time.Duration) *types.Metadata
	Delay    func(text string) time.Duration
}

func NewConversation(completer llm.Completer, pacing bool) *Conversation {
	c := &Conversation{
		Completer: completer,
		Annotate:  annotate.Reply,
	}
	if pacing {
		c.Delay = annotate.TypingDelay
	}
	return c
}

// Send appends the draft to the session and waits for the reply. Upstream
// failures do not fail the send: the placeholder is replaced with a canned
// error message instead. The returned message is the one that replaced the
// placeholder.
func (c *Conversation) Send(ctx context.Context, store *Store, sessionID string, draft types.Draft) (types.Message, types.ChatSession, error) {
	pending, err := store.BeginSend(sessionID, draft)
	if err != nil {
		return types.Message{}, types.ChatSession{}, err
	}
	start := time.Now()

	reply, err := c.complete(ctx, pending)
	elapsed := time.Since(start)

	var final types.Message
	if err != nil {
		config.Logger.Error("Failed to get AI response:", err)
		final = types.Message{
			Text:     annotate.ErrorMessage(err),
			Metadata: annotate.Failure(elapsed),
		}
	} else {
		if reply == "" {
			reply = emptyReplyText
		}
		final = types.Message{Text: reply}
		if c.Annotate != nil {
			final.Metadata = c.Annotate(reply, elapsed)
		}
	}

	updated, err := store.Resolve(sessionID, pending.PlaceholderID, final)
	if err != nil {
		config.Logger.Warn("Failed to integrate AI response:", sessionID, err)
		return types.Message{}, types.ChatSession{}, err
	}
	final.ID = pending.PlaceholderID
	return final, updated, nil
}

func (c *Conversation) complete(ctx context.Context, pending Pending) (string, error) {
	if c.Delay != nil {
		timer := time.NewTimer(c.Delay(pending.Text))
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return c.Completer.Complete(ctx, pending.History)
}
