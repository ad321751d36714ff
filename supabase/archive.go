package supabase

import (
	"clementus360/smarti-ai/types"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
)

const sessionsTable = "chat_sessions"

// sessionRow is the chat_sessions table layout; messages live in a jsonb column.
type sessionRow struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Title     string          `json:"title"`
	Preview   string          `json:"preview"`
	Timestamp time.Time       `json:"timestamp"`
	Messages  []types.Message `json:"messages"`
}

// Archive stores chat sessions in Supabase. The PostgREST client takes no
// context: ctx is checked before each request, but a request already sent
// cannot be cancelled.
type Archive struct {
	client *supabase.Client
}

func NewArchive(client *supabase.Client) *Archive {
	return &Archive{client: client}
}

func (a *Archive) SaveSession(ctx context.Context, userID string, session types.ChatSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if userID == "" {
		return fmt.Errorf("missing user ID")
	}

	_, _, err := a.client.From(sessionsTable).
		Upsert(toRow(userID, session), "id", "", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to upsert session %s: %w", session.ID, err)
	}
	return nil
}

func (a *Archive) DeleteSession(ctx context.Context, userID, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, _, err := a.client.From(sessionsTable).
		Delete("", "").
		Eq("id", sessionID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	return nil
}

// LoadSessions returns the user's sessions, newest first.
func (a *Archive) LoadSessions(ctx context.Context, userID string) ([]types.ChatSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, fmt.Errorf("missing user ID")
	}

	resp, _, err := a.client.From(sessionsTable).
		Select("*", "", false).
		Eq("user_id", userID).
		Order("timestamp", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, err
	}

	return decodeRows(resp)
}

func toRow(userID string, session types.ChatSession) sessionRow {
	return sessionRow{
		ID:        session.ID,
		UserID:    userID,
		Title:     session.Title,
		Preview:   session.Preview,
		Timestamp: session.Timestamp,
		Messages:  session.Messages,
	}
}

func decodeRows(data []byte) ([]types.ChatSession, error) {
	var rows []sessionRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode session data: %w", err)
	}

	sessions := make([]types.ChatSession, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, types.ChatSession{
			ID:        row.ID,
			Title:     row.Title,
			Timestamp: row.Timestamp,
			Preview:   row.Preview,
			Messages:  row.Messages,
		})
	}
	return sessions, nil
}
