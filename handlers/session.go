package handlers

import (
	"clementus360/smarti-ai/config"
	"clementus360/smarti-ai/types"
	"encoding/json"
	"net/http"
)

func (h *Handler) GetSessionsHandler(w http.ResponseWriter, r *http.Request) {
	store, ok := h.workspace(w, r)
	if !ok {
		return
	}

	sessions, activeID := store.List()
	writeJSON(w, http.StatusOK, types.GetSessionsResponse{
		Success:  true,
		Sessions: sessions,
		ActiveID: activeID,
	})
}

func (h *Handler) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	store, ok := h.workspace(w, r)
	if !ok {
		return
	}

	created := store.Create()
	writeJSON(w, http.StatusCreated, types.SessionResponse{
		Success:  true,
		Session:  &created,
		ActiveID: created.ID,
	})
}

func (h *Handler) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	store, ok := h.workspace(w, r)
	if !ok {
		return
	}
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	session, err := store.Get(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.SessionResponse{
		Success:  true,
		Session:  &session,
		ActiveID: store.ActiveID(),
	})
}

func (h *Handler) SelectSessionHandler(w http.ResponseWriter, r *http.Request) {
	store, ok := h.workspace(w, r)
	if !ok {
		return
	}

	var body types.SelectSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == "" {
		config.Logger.Warn("Invalid or missing session id in request body:", err)
		writeError(w, "Invalid or missing session id", http.StatusBadRequest)
		return
	}

	if err := store.Select(body.ID); err != nil {
		writeStoreError(w, err)
		return
	}
	session, err := store.Get(body.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.SessionResponse{
		Success:  true,
		Session:  &session,
		ActiveID: body.ID,
	})
}

func (h *Handler) DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	store, ok := h.workspace(w, r)
	if !ok {
		return
	}
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	if err := store.Delete(id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.SessionResponse{
		Success:  true,
		ActiveID: store.ActiveID(),
	})
}

func (h *Handler) StageAttachmentHandler(w http.ResponseWriter, r *http.Request) {
	store, ok := h.workspace(w, r)
	if !ok {
		return
	}
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var body types.Staged
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if body.Image == nil && body.File == nil {
		writeError(w, "Missing image or file", http.StatusBadRequest)
		return
	}

	staged, err := store.Stage(id, body)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.StagedResponse{
		Success: true,
		Staged:  staged,
	})
}

func (h *Handler) ClearAttachmentsHandler(w http.ResponseWriter, r *http.Request) {
	store, ok := h.workspace(w, r)
	if !ok {
		return
	}
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	if err := store.ClearStaged(id); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.StagedResponse{Success: true})
}

// SendMessageHandler appends the user's message and answers with the
// assistant message that replaced the loading placeholder.
func (h *Handler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	store, ok := h.workspace(w, r)
	if !ok {
		return
	}
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var draft types.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	reply, session, err := h.Conversation.Send(r.Context(), store, id, draft)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.SendResponse{
		Success: true,
		Reply:   &reply,
		Session: &session,
	})
}
