package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/studypilot/backend/internal/artifact"
	"github.com/studypilot/backend/internal/auth"
)

type ArtifactHandler struct {
	store *artifact.Store
}

func NewArtifactHandler(store *artifact.Store) *ArtifactHandler {
	return &ArtifactHandler{store: store}
}

func (h *ArtifactHandler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserIDFromContext(r.Context())
	docID, limit, offset, err := listParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	cards, err := h.store.ListFlashcards(r.Context(), ownerID, docID, limit, offset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"flashcards": cards, "count": len(cards)})
}

func (h *ArtifactHandler) ListQuizQuestions(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserIDFromContext(r.Context())
	docID, limit, offset, err := listParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	questions, err := h.store.ListQuizQuestions(r.Context(), ownerID, docID, limit, offset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"questions": questions, "count": len(questions)})
}

func listParams(r *http.Request) (docID *uuid.UUID, limit, offset int, err error) {
	if s := r.URL.Query().Get("document_id"); s != "" {
		id, perr := uuid.Parse(s)
		if perr != nil {
			return nil, 0, 0, perr
		}
		docID = &id
	}

	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 50
	}
	return docID, limit, offset, nil
}
