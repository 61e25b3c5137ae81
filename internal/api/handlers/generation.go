package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/studypilot/backend/internal/auth"
	"github.com/studypilot/backend/internal/document"
	"github.com/studypilot/backend/internal/models"
	"github.com/studypilot/backend/internal/queue"
)

type GenerationHandler struct {
	docSvc      *document.Service
	queueClient *queue.Client
}

func NewGenerationHandler(docSvc *document.Service, qc *queue.Client) *GenerationHandler {
	return &GenerationHandler{docSvc: docSvc, queueClient: qc}
}

type generateRequest struct {
	Kind     string   `json:"kind"` // "flashcard" or "quiz"
	MaxItems int      `json:"max_items,omitempty"`
	Subject  string   `json:"subject,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// Generate accepts a generation request and returns immediately: the
// document is marked queued and the run happens on the worker. Re-triggering
// is always allowed, including while a previous run is still processing.
func (h *GenerationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid document ID"})
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Kind != models.ArtifactKindFlashcard && req.Kind != models.ArtifactKindQuiz {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "kind must be \"flashcard\" or \"quiz\""})
		return
	}

	ownerID := auth.UserIDFromContext(r.Context())

	doc, err := h.docSvc.Get(r.Context(), ownerID, id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "document not found"})
		return
	}

	if err := h.docSvc.MarkQueued(r.Context(), doc.ID); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if err := h.queueClient.EnqueueArtifactGenerate(queue.ArtifactGeneratePayload{
		DocumentID: doc.ID.String(),
		OwnerID:    ownerID.String(),
		Kind:       req.Kind,
		MaxItems:   req.MaxItems,
		Subject:    req.Subject,
		Tags:       req.Tags,
	}); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"document_id": doc.ID.String(),
		"kind":        req.Kind,
		"status":      models.DocStatusQueued,
	})
}
