package services

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"zoomdocs/internal/api"
	"zoomdocs/internal/events"
	"zoomdocs/internal/models"
	"zoomdocs/internal/repositories"
)

const fallbackLetter = "Sample generated letter content goes here."

// GenerationService converts a validated form submission into a displayable
// document artifact. The pipeline is strictly sequential: generate, fetch the
// rendered HTML, then refresh account state (credits + recent documents).
// Only stage-1 failures surface to the UI; later stages degrade silently.
type GenerationService struct {
	api         api.API
	session     *SessionService
	credentials CredentialStore
	documents   repositories.DocumentRepository
	prefs       PrefsService
	log         *zap.Logger

	mu      sync.Mutex
	ctx     context.Context
	run     *models.GenerationRun
	started bool
	runKey  string
}

func NewGenerationService(apiClient api.API, session *SessionService, credentials CredentialStore, documents repositories.DocumentRepository, prefs PrefsService, log *zap.Logger) *GenerationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &GenerationService{
		api:         apiClient,
		session:     session,
		credentials: credentials,
		documents:   documents,
		prefs:       prefs,
		log:         log,
	}
}

func (s *GenerationService) Startup(ctx context.Context) error {
	if s.api == nil {
		return fmt.Errorf("api client not configured")
	}
	if s.session == nil {
		return fmt.Errorf("session service not configured")
	}
	if s.credentials == nil {
		return fmt.Errorf("credential store not configured")
	}
	if s.documents == nil {
		return fmt.Errorf("document repository not configured")
	}
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()
	return nil
}

// Generate runs the full pipeline for the submitted form. Repeated calls with
// the same input while a run exists are absorbed by the started guard and
// return the current run without touching the network; a different input
// replaces the run.
func (s *GenerationService) Generate(documentType string, fields map[string]string) (*models.GenerationRun, error) {
	documentType = strings.TrimSpace(documentType)
	if documentType == "" {
		return nil, fmt.Errorf("document type is required")
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("form fields are required")
	}

	key := inputKey(documentType, fields)

	s.mu.Lock()
	if s.started && s.runKey == key {
		run := s.run.Clone()
		s.mu.Unlock()
		return run, nil
	}
	// The guard is set before any network call so a re-triggered submit can
	// never dispatch a second generate for the same input.
	s.started = true
	s.runKey = key
	s.run = &models.GenerationRun{
		DocumentType: documentType,
		Fields:       cloneFields(fields),
		Status:       models.RunIdle,
		StartedAt:    time.Now(),
	}
	ctx := s.ctx
	s.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}
	s.execute(ctx)
	return s.Run(), nil
}

// Retry resets the started guard and all cached output, then re-runs the
// pipeline with the run's original inputs.
func (s *GenerationService) Retry() (*models.GenerationRun, error) {
	s.mu.Lock()
	if s.run == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("no generation to retry")
	}
	documentType := s.run.DocumentType
	fields := cloneFields(s.run.Fields)
	s.started = false
	s.runKey = ""
	s.mu.Unlock()

	return s.Generate(documentType, fields)
}

// execute is the pipeline. Stage N never starts before stage N-1 has settled.
func (s *GenerationService) execute(ctx context.Context) {
	s.mu.Lock()
	documentType := s.run.DocumentType
	fields := cloneFields(s.run.Fields)
	s.mu.Unlock()

	id := s.resolveIdentity()
	if !id.Complete() {
		s.failRun(ctx, models.ErrorAuthenticationRequired, "no identity available")
		return
	}

	// Tone level rides inside the form fields; it is pulled out and removed
	// before the payload goes to the server.
	tone := s.defaultToneLevel()
	if raw, ok := fields["tone_level"]; ok {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			tone = n
		} else {
			tone = 0
		}
		delete(fields, "tone_level")
	}

	s.updateRun(ctx, func(run *models.GenerationRun) {
		run.Status = models.RunGenerating
		run.ToneLevel = tone
		run.ErrorKind = models.ErrorNone
		run.ErrorMessage = ""
	})

	// Stage 1: generate.
	res, err := s.api.GenerateDocument(ctx, api.GenerateRequest{
		DocumentType: documentType,
		ToneLevel:    tone,
		UserInputs:   fields,
		AuthID:       id.AuthID,
		UserID:       id.UserID,
	})
	if kind, msg := classifyGeneration(res, err); kind != models.ErrorNone {
		s.failRun(ctx, kind, msg)
		return
	}

	letter := res.Letter
	if letter == "" {
		letter = res.RawContent
	}
	if letter == "" {
		letter = fallbackLetter
	}

	htmlFile := ""
	if res.HTML != nil {
		htmlFile = res.HTML.FileName
	}
	pdfFile := ""
	if res.PDF != nil {
		pdfFile = res.PDF.FileName
	}
	s.updateRun(ctx, func(run *models.GenerationRun) {
		run.Letter = letter
		run.HTMLFile = htmlFile
		run.PDFFile = pdfFile
		if htmlFile != "" {
			run.Status = models.RunAwaitingHTML
		}
	})

	// Stage 2: fetch the rendered HTML preview. Any failure here is logged
	// and swallowed; an unrenderable preview must not block stage 3.
	if htmlFile != "" {
		s.fetchRenderedHTML(ctx, htmlFile, id)
	}

	// Stage 3: refresh account state, exactly once per successful generate,
	// regardless of how stage 2 went.
	s.refreshAccount(ctx, id)

	s.updateRun(ctx, func(run *models.GenerationRun) {
		run.Status = models.RunReady
		run.CompletedAt = time.Now()
	})
}

func (s *GenerationService) fetchRenderedHTML(ctx context.Context, fileName string, id models.Identity) {
	art, err := s.api.FetchArtifact(ctx, "html", fileName, id)
	if err != nil {
		s.log.Warn("html artifact fetch failed", zap.String("file", fileName), zap.Error(err))
		return
	}
	if art.StatusCode != http.StatusOK {
		s.log.Warn("html artifact fetch returned non-200",
			zap.String("file", fileName), zap.Int("status", art.StatusCode))
		return
	}
	text, err := decodeArtifactText(art.Data)
	if err != nil {
		s.log.Warn("html artifact decode failed", zap.String("file", fileName), zap.Error(err))
		return
	}
	s.mu.Lock()
	if s.run != nil {
		s.run.HTMLContent = text
	}
	s.mu.Unlock()
}

// refreshAccount sequentially refreshes credits then the recent-documents
// cache. Outcomes are log-only and never surface as pipeline errors.
func (s *GenerationService) refreshAccount(ctx context.Context, id models.Identity) {
	if err := s.session.RefreshCredits(ctx); err != nil {
		s.log.Warn("credits refresh after generation failed", zap.Error(err))
	}

	limit := s.recentDocsLimit()
	res, err := s.api.ListGeneratedDocuments(ctx, id, limit)
	if err != nil {
		s.log.Warn("recent documents refresh failed", zap.Error(err))
		return
	}
	if res.StatusCode != http.StatusOK {
		s.log.Warn("recent documents refresh returned non-200", zap.Int("status", res.StatusCode))
		return
	}
	if err := s.documents.ReplaceRecent(ctx, res.Documents); err != nil {
		s.log.Warn("recent documents cache update failed", zap.Error(err))
	}
}

// DownloadPDF fetches the PDF artifact of the current run on demand. There is
// no retry; failures are logged and returned.
func (s *GenerationService) DownloadPDF() (*models.PDFDownload, error) {
	s.mu.Lock()
	ctx := s.ctx
	var pdfFile string
	if s.run != nil {
		pdfFile = s.run.PDFFile
	}
	s.mu.Unlock()

	if pdfFile == "" {
		s.log.Info("pdf download requested but no file handle available")
		return nil, fmt.Errorf("pdf not available")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	id := s.resolveIdentity()
	art, err := s.api.FetchArtifact(ctx, "pdf", pdfFile, id)
	if err != nil {
		s.log.Error("pdf download failed", zap.String("file", pdfFile), zap.Error(err))
		return nil, err
	}
	if art.StatusCode != http.StatusOK {
		s.log.Error("pdf download returned non-200",
			zap.String("file", pdfFile), zap.Int("status", art.StatusCode))
		return nil, fmt.Errorf("pdf fetch returned status %d", art.StatusCode)
	}
	return &models.PDFDownload{FileName: pdfFile, Data: art.Data}, nil
}

// ToggleEdit flips the editing sub-state. Entering edit mode seeds the edit
// buffer with the displayed HTML.
func (s *GenerationService) ToggleEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run == nil {
		return
	}
	if !s.run.Editing {
		s.run.EditedHTML = s.run.HTMLContent
	}
	s.run.Editing = !s.run.Editing
}

// SaveEdits copies the edited text into the displayed artifact without
// leaving edit mode.
func (s *GenerationService) SaveEdits(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run == nil || !s.run.Editing {
		return fmt.Errorf("not in edit mode")
	}
	s.run.EditedHTML = text
	s.run.HTMLContent = text
	return nil
}

// Run returns a snapshot of the current run, or nil before the first submit.
func (s *GenerationService) Run() *models.GenerationRun {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run.Clone()
}

func (s *GenerationService) failRun(ctx context.Context, kind models.ErrorKind, msg string) {
	s.log.Warn("generation failed", zap.String("kind", string(kind)), zap.String("message", msg))
	s.updateRun(ctx, func(run *models.GenerationRun) {
		run.Status = models.RunErrored
		run.ErrorKind = kind
		run.ErrorMessage = msg
		run.Letter = ""
		run.HTMLContent = ""
	})
}

func (s *GenerationService) updateRun(ctx context.Context, mutate func(*models.GenerationRun)) {
	s.mu.Lock()
	if s.run == nil {
		s.mu.Unlock()
		return
	}
	mutate(s.run)
	evt := events.NewInfo("generation: " + string(s.run.Status))
	if s.run.Status == models.RunErrored {
		evt = events.NewError("generation: " + s.run.ErrorMessage)
	} else if s.run.Status == models.RunReady {
		evt = events.NewSuccess("generation: ready")
	}
	evt.RunKey = s.runKey
	evt.Metadata = map[string]string{
		"status":       string(s.run.Status),
		"errorKind":    string(s.run.ErrorKind),
		"documentType": s.run.DocumentType,
	}
	s.mu.Unlock()
	events.Emit(ctx, events.GenerationStatus, evt)
}

// resolveIdentity prefers the live session identity and falls back to durable
// storage, mirroring the UI's state-then-localStorage lookup.
func (s *GenerationService) resolveIdentity() models.Identity {
	if id := s.session.Identity(); id.Complete() {
		return id
	}
	if id, err := s.credentials.Load(); err == nil {
		return id
	}
	return models.Identity{}
}

func (s *GenerationService) defaultToneLevel() int {
	if s.prefs == nil {
		return 0
	}
	prefs, err := s.prefs.Get()
	if err != nil || prefs == nil {
		return 0
	}
	return prefs.DefaultToneLevel
}

func (s *GenerationService) recentDocsLimit() int {
	if s.prefs == nil {
		return 3
	}
	prefs, err := s.prefs.Get()
	if err != nil || prefs == nil {
		return 3
	}
	return prefs.RecentDocsLimit
}

// classifyGeneration maps a generate outcome onto the UI error taxonomy. The
// server has no stable machine-readable error code, so embedded messages are
// matched on the word "credit"; if the wording ever changes this silently
// degrades to the generic kind.
func classifyGeneration(res *api.GenerateResult, err error) (models.ErrorKind, string) {
	if err != nil {
		msg := err.Error()
		if containsCredit(msg) {
			return models.ErrorInsufficientCredits, msg
		}
		return models.ErrorGenerationFailed, msg
	}

	switch {
	case res.StatusCode == http.StatusUnauthorized:
		return models.ErrorAuthenticationRequired, nonEmpty(res.Error, "authentication required")
	case res.StatusCode == http.StatusForbidden:
		return models.ErrorInsufficientCredits, nonEmpty(res.Error, "insufficient credits")
	case res.StatusCode == http.StatusTooManyRequests:
		return models.ErrorRateLimited, nonEmpty(res.Error, "rate limited")
	case res.StatusCode >= http.StatusInternalServerError:
		return models.ErrorServerError, nonEmpty(res.Error, fmt.Sprintf("server error (status %d)", res.StatusCode))
	case res.StatusCode != http.StatusOK:
		return models.ErrorGenerationFailed, nonEmpty(res.Error, fmt.Sprintf("unexpected status %d", res.StatusCode))
	}

	if res.Error != "" {
		if containsCredit(res.Error) {
			return models.ErrorInsufficientCredits, res.Error
		}
		return models.ErrorGenerationFailed, res.Error
	}
	return models.ErrorNone, ""
}

func containsCredit(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "credit")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func decodeArtifactText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("artifact is not valid utf-8 text")
	}
	return string(data), nil
}

// inputKey builds a stable key for the started guard from the submitted form.
func inputKey(documentType string, fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(documentType)
	for _, k := range keys {
		b.WriteByte('\x1f')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(fields[k])
	}
	return b.String()
}

func cloneFields(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
