package sessions

import (
	"clementus360/smarti-ai/config"
	"clementus360/smarti-ai/types"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	GreetingText    = "Hey! I'm Smarti. I can help answer your questions about your homework and schoolwork."
	GreetingPreview = "Hey! I'm Smarti..."
	LoadingText     = "..."
)

// Archive persists sessions outside the process. Failures are logged by the
// store and never surface to callers. Implementations may only honour ctx
// between requests.
type Archive interface {
	SaveSession(ctx context.Context, userID string, session types.ChatSession) error
	DeleteSession(ctx context.Context, userID, sessionID string) error
	LoadSessions(ctx context.Context, userID string) ([]types.ChatSession, error)
}

type session struct {
	types.ChatSession
	nextID   int
	staged   types.Staged
	inFlight bool
}

// Store holds one user's sessions and the active selection. At least one
// session exists at all times.
type Store struct {
	mu       sync.Mutex
	owner    string
	sessions []*session // newest first
	activeID string
	archive  Archive

	// archiveMu orders archive writes; a deleted session is never saved again
	archiveMu sync.Mutex
}

// Pending describes a send accepted by the store whose reply is outstanding.
type Pending struct {
	SessionID     string
	PlaceholderID int
	Text          string
	History       []types.Message
}

// NewStore returns a store seeded with one greeting session.
func NewStore(owner string, archive Archive) *Store {
	return RestoreStore(owner, archive, nil)
}

// RestoreStore rebuilds a store from archived sessions. Loading placeholders
// left behind by an interrupted request are dropped.
func RestoreStore(owner string, archive Archive, archived []types.ChatSession) *Store {
	s := &Store{owner: owner, archive: archive}

	for _, cs := range archived {
		restored := &session{ChatSession: cloneSession(cs), nextID: 1}
		restored.Messages = slices.DeleteFunc(restored.Messages, func(m types.Message) bool {
			return m.IsLoading
		})
		for _, m := range restored.Messages {
			restored.nextID = max(restored.nextID, m.ID+1)
		}
		if len(restored.Messages) > 0 {
			restored.Preview = Preview(restored.Messages)
		}
		s.sessions = append(s.sessions, restored)
	}

	if len(s.sessions) == 0 {
		seeded := newSession()
		s.sessions = append(s.sessions, seeded)
		s.persist(seeded.ChatSession)
	}
	s.activeID = s.sessions[0].ID
	return s
}

func newSession() *session {
	return &session{
		ChatSession: types.ChatSession{
			ID:        uuid.NewString(),
			Title:     DefaultTitle,
			Timestamp: time.Now(),
			Preview:   GreetingPreview,
			Messages: []types.Message{{
				ID:     1,
				Text:   GreetingText,
				IsSent: false,
				Status: types.StatusSeen,
			}},
		},
		nextID: 2,
	}
}

// Create starts a new chat and makes it active.
func (s *Store) Create() types.ChatSession {
	s.mu.Lock()
	created := newSession()
	s.sessions = append([]*session{created}, s.sessions...)
	s.activeID = created.ID
	snapshot := cloneSession(created.ChatSession)
	s.mu.Unlock()

	s.persist(snapshot)
	return snapshot
}

func (s *Store) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.find(id) == nil {
		return ErrSessionNotFound
	}
	s.activeID = id
	return nil
}

// Delete removes a session. The last remaining session cannot be deleted.
// Deleting the active session activates the first remaining one.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	idx := slices.IndexFunc(s.sessions, func(cs *session) bool { return cs.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	if len(s.sessions) <= 1 {
		s.mu.Unlock()
		return ErrLastSession
	}

	s.sessions = slices.Delete(s.sessions, idx, idx+1)
	if s.activeID == id {
		s.activeID = s.sessions[0].ID
	}
	s.mu.Unlock()

	if s.archive != nil {
		s.archiveMu.Lock()
		defer s.archiveMu.Unlock()
		if err := s.archive.DeleteSession(context.Background(), s.owner, id); err != nil {
			config.Logger.Warn("Failed to delete archived session:", id, err)
		}
	}
	return nil
}

// List returns every session, newest first, and the active id.
func (s *Store) List() ([]types.ChatSession, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.ChatSession, 0, len(s.sessions))
	for _, cs := range s.sessions {
		out = append(out, cloneSession(cs.ChatSession))
	}
	return out, s.activeID
}

func (s *Store) Get(id string) (types.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cs := s.find(id)
	if cs == nil {
		return types.ChatSession{}, ErrSessionNotFound
	}
	return cloneSession(cs.ChatSession), nil
}

func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Stage holds an image and/or file on a session until the next send.
// Attachments passed as nil leave the current staged value untouched.
func (s *Store) Stage(id string, staged types.Staged) (types.Staged, error) {
	if err := validateImage(staged.Image); err != nil {
		return types.Staged{}, err
	}
	if err := validateFile(staged.File); err != nil {
		return types.Staged{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cs := s.find(id)
	if cs == nil {
		return types.Staged{}, ErrSessionNotFound
	}
	if staged.Image != nil {
		img := *staged.Image
		cs.staged.Image = &img
	}
	if staged.File != nil {
		file := *staged.File
		cs.staged.File = &file
	}
	return cloneStaged(cs.staged), nil
}

func (s *Store) Staged(id string) (types.Staged, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cs := s.find(id)
	if cs == nil {
		return types.Staged{}, ErrSessionNotFound
	}
	return cloneStaged(cs.staged), nil
}

func (s *Store) ClearStaged(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cs := s.find(id)
	if cs == nil {
		return ErrSessionNotFound
	}
	cs.staged = types.Staged{}
	return nil
}

// BeginSend appends the user's message followed by a loading placeholder.
// Staged attachments fill in whatever the draft leaves empty and are cleared
// in the same step. A draft without text, image or file is rejected and
// nothing is appended.
func (s *Store) BeginSend(id string, draft types.Draft) (Pending, error) {
	if err := validateImage(draft.Image); err != nil {
		return Pending{}, err
	}
	if err := validateFile(draft.File); err != nil {
		return Pending{}, err
	}

	s.mu.Lock()
	cs := s.find(id)
	if cs == nil {
		s.mu.Unlock()
		return Pending{}, ErrSessionNotFound
	}
	if cs.inFlight {
		s.mu.Unlock()
		return Pending{}, ErrRequestInFlight
	}

	text := strings.TrimSpace(draft.Text)
	image, file := draft.Image, draft.File
	if image == nil {
		image = cs.staged.Image
	}
	if file == nil {
		file = cs.staged.File
	}
	if text == "" && image == nil && file == nil {
		s.mu.Unlock()
		return Pending{}, ErrEmptyMessage
	}

	if !hasUserMessage(cs.Messages) {
		cs.Title = GenerateTitle(text)
	}

	userMsg := types.Message{
		ID:     cs.nextID,
		Text:   text,
		IsSent: true,
		Image:  cloneImage(image),
		File:   cloneFile(file),
		Status: types.StatusSent,
	}
	placeholder := types.Message{
		ID:        cs.nextID + 1,
		Text:      LoadingText,
		IsSent:    false,
		IsLoading: true,
		Metadata: &types.Metadata{
			Timestamp: time.Now().UnixMilli(),
			Type:      types.ContentGeneral,
		},
	}
	cs.nextID += 2
	cs.staged = types.Staged{}
	cs.Messages = append(cs.Messages, userMsg, placeholder)
	cs.Preview = Preview(cs.Messages)
	cs.inFlight = true

	history := cloneMessages(cs.Messages[:len(cs.Messages)-1])
	snapshot := cloneSession(cs.ChatSession)
	s.mu.Unlock()

	s.persist(snapshot)
	return Pending{
		SessionID:     id,
		PlaceholderID: placeholder.ID,
		Text:          text,
		History:       history,
	}, nil
}

// Resolve replaces the pending placeholder, which must still be the last
// message, with the final reply. The placeholder's id is kept.
func (s *Store) Resolve(id string, placeholderID int, reply types.Message) (types.ChatSession, error) {
	s.mu.Lock()
	cs := s.find(id)
	if cs == nil {
		s.mu.Unlock()
		return types.ChatSession{}, ErrSessionNotFound
	}
	cs.inFlight = false

	last := len(cs.Messages) - 1
	if last < 0 || cs.Messages[last].ID != placeholderID || !cs.Messages[last].IsLoading {
		s.mu.Unlock()
		return types.ChatSession{}, ErrPlaceholderMissing
	}

	reply.ID = placeholderID
	reply.IsSent = false
	reply.IsLoading = false
	cs.Messages[last] = reply
	cs.Preview = Preview(cs.Messages)
	snapshot := cloneSession(cs.ChatSession)
	s.mu.Unlock()

	s.persist(snapshot)
	return snapshot, nil
}

func (s *Store) find(id string) *session {
	for _, cs := range s.sessions {
		if cs.ID == id {
			return cs
		}
	}
	return nil
}

func (s *Store) persist(snapshot types.ChatSession) {
	if s.archive == nil {
		return
	}
	s.archiveMu.Lock()
	defer s.archiveMu.Unlock()

	s.mu.Lock()
	live := s.find(snapshot.ID) != nil
	s.mu.Unlock()
	if !live {
		return
	}
	if err := s.archive.SaveSession(context.Background(), s.owner, snapshot); err != nil {
		config.Logger.Warn("Failed to archive session:", snapshot.ID, err)
	}
}

func hasUserMessage(messages []types.Message) bool {
	return slices.ContainsFunc(messages, func(m types.Message) bool { return m.IsSent })
}

func cloneSession(cs types.ChatSession) types.ChatSession {
	cs.Messages = cloneMessages(cs.Messages)
	return cs
}

func cloneMessages(messages []types.Message) []types.Message {
	out := make([]types.Message, len(messages))
	for i, m := range messages {
		m.Image = cloneImage(m.Image)
		m.File = cloneFile(m.File)
		if m.Metadata != nil {
			meta := *m.Metadata
			meta.SuggestedFollowUps = slices.Clone(meta.SuggestedFollowUps)
			if meta.Confidence != nil {
				c := *meta.Confidence
				meta.Confidence = &c
			}
			m.Metadata = &meta
		}
		out[i] = m
	}
	return out
}

func cloneStaged(staged types.Staged) types.Staged {
	return types.Staged{Image: cloneImage(staged.Image), File: cloneFile(staged.File)}
}

func cloneImage(img *types.Image) *types.Image {
	if img == nil {
		return nil
	}
	c := *img
	return &c
}

func cloneFile(file *types.File) *types.File {
	if file == nil {
		return nil
	}
	c := *file
	return &c
}
