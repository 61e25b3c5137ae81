package queue

const (
	TypeArtifactGenerate = "artifact:generate"
)

// ArtifactGeneratePayload is the wire form of a generation request. It is
// consumed once and never retried: a failed run is observable only through
// the document's status fields and the emitted notification.
type ArtifactGeneratePayload struct {
	DocumentID string   `json:"document_id"`
	OwnerID    string   `json:"owner_id"`
	Kind       string   `json:"kind"`
	MaxItems   int      `json:"max_items"`
	Subject    string   `json:"subject,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}
