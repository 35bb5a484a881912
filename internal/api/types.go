package api

import (
	"encoding/json"

	"zoomdocs/internal/models"
)

// FileRef points at a generated artifact stored server-side.
type FileRef struct {
	FileName string `json:"fileName"`
}

// IdentityResult is the payload of POST /auth/user/generate.
type IdentityResult struct {
	AuthID     string `json:"zoomdocs_auth_id"`
	UserID     string `json:"zoomdocs_user_id"`
	StatusCode int    `json:"-"`
}

// StatusResult is the payload of the check/start operations.
type StatusResult struct {
	Status     bool   `json:"status"`
	Message    string `json:"message,omitempty"`
	StatusCode int    `json:"-"`
}

// CreditsResult is the payload of POST /credits.
type CreditsResult struct {
	Credits    float64 `json:"credits"`
	Plan       string  `json:"plan,omitempty"`
	ExpiresAt  string  `json:"expires_at,omitempty"`
	StatusCode int     `json:"-"`
}

// GenerateRequest is the body of POST /documents/types/{type}/generate.
// DocumentType rides in the URL path, not the body.
type GenerateRequest struct {
	DocumentType string            `json:"-" validate:"required"`
	ToneLevel    int               `json:"tone_level"`
	UserInputs   map[string]string `json:"user_inputs" validate:"required,min=1"`
	AuthID       string            `json:"zoomdocs_auth_id" validate:"required"`
	UserID       string            `json:"zoomdocs_user_id" validate:"required"`
	UserFileName string            `json:"user_file_name,omitempty"`
}

// GenerateResult is the payload of the generate operation. Error carries the
// application-level failure string the server embeds in otherwise-OK bodies.
type GenerateResult struct {
	Letter     string   `json:"letter"`
	RawContent string   `json:"raw_content"`
	HTML       *FileRef `json:"html"`
	PDF        *FileRef `json:"pdf"`
	Error      string   `json:"error"`
	StatusCode int      `json:"-"`
}

// ArtifactResult is the binary payload of GET /documents/generated/{kind}/{file}.
// The payload is only trustworthy when StatusCode is 200.
type ArtifactResult struct {
	Data       []byte
	StatusCode int
}

// DocumentsListResult is the payload of POST /auth/generated_documents/list.
type DocumentsListResult struct {
	Documents  []models.DocumentRecord `json:"documents"`
	StatusCode int                     `json:"-"`
}

// DocumentTypesResult is the payload of GET /documents/types.
type DocumentTypesResult struct {
	Types      []string `json:"types"`
	StatusCode int      `json:"-"`
}

// TemplateResult carries a document template. The template schema is owned by
// the server and opaque to this client, so it is kept as raw JSON.
type TemplateResult struct {
	Template   json.RawMessage `json:"template"`
	StatusCode int             `json:"-"`
}

// DecideResult is the payload of POST /help-me-decide.
type DecideResult struct {
	DocumentType   string `json:"document_type"`
	Recommendation string `json:"recommendation"`
	RawContent     string `json:"raw_content"`
	StatusCode     int    `json:"-"`
}
