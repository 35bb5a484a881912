package models

import "time"

// RunStatus tracks a generation run through its pipeline stages.
type RunStatus string

const (
	RunIdle         RunStatus = "idle"
	RunGenerating   RunStatus = "generating"
	RunAwaitingHTML RunStatus = "awaiting_html"
	RunReady        RunStatus = "ready"
	RunErrored      RunStatus = "errored"
)

// ErrorKind classifies a failed generation for the UI error panel.
type ErrorKind string

const (
	ErrorNone                   ErrorKind = ""
	ErrorAuthenticationRequired ErrorKind = "authentication_required"
	ErrorInsufficientCredits    ErrorKind = "insufficient_credits"
	ErrorRateLimited            ErrorKind = "rate_limited"
	ErrorServerError            ErrorKind = "server_error"
	ErrorGenerationFailed       ErrorKind = "generation_failed"
)

// GenerationRun is the ephemeral record of one document generation attempt.
// It is created on submit and replaced on the next submit or explicit retry.
type GenerationRun struct {
	DocumentType string            `json:"documentType"`
	Fields       map[string]string `json:"fields"`
	ToneLevel    int               `json:"toneLevel"`

	Status       RunStatus `json:"status"`
	ErrorKind    ErrorKind `json:"errorKind,omitempty"`
	ErrorMessage string    `json:"errorMessage,omitempty"`

	Letter      string `json:"letter"`
	HTMLContent string `json:"htmlContent"`
	HTMLFile    string `json:"htmlFile,omitempty"`
	PDFFile     string `json:"pdfFile,omitempty"`

	// Editing holds the user-driven edit sub-state of a ready run.
	Editing     bool   `json:"editing"`
	EditedHTML  string `json:"editedHtml,omitempty"`
	StartedAt   time.Time
	CompletedAt time.Time
}

// Clone returns an independent copy so callers cannot mutate the live run.
func (r *GenerationRun) Clone() *GenerationRun {
	if r == nil {
		return nil
	}
	out := *r
	out.Fields = make(map[string]string, len(r.Fields))
	for k, v := range r.Fields {
		out.Fields[k] = v
	}
	return &out
}

// PDFDownload carries a fetched PDF artifact back to the UI for saving.
type PDFDownload struct {
	FileName string `json:"fileName"`
	Data     []byte `json:"data"`
}
