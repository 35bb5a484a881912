package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"zoomdocs/internal/api"
	"zoomdocs/internal/models"
	"zoomdocs/internal/repositories"
)

// DocumentService serves the document catalog (types and their form
// templates), the recent-documents list, and the help-me-decide assistant.
type DocumentService struct {
	api       api.API
	session   *SessionService
	documents repositories.DocumentRepository
	prefs     PrefsService
	log       *zap.Logger

	ctx context.Context
}

func NewDocumentService(apiClient api.API, session *SessionService, documents repositories.DocumentRepository, prefs PrefsService, log *zap.Logger) *DocumentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &DocumentService{
		api:       apiClient,
		session:   session,
		documents: documents,
		prefs:     prefs,
		log:       log,
	}
}

func (s *DocumentService) Startup(ctx context.Context) error {
	if s.api == nil {
		return fmt.Errorf("api client not configured")
	}
	if s.documents == nil {
		return fmt.Errorf("document repository not configured")
	}
	s.ctx = ctx
	return nil
}

// ListTypes returns the server's document type catalog.
func (s *DocumentService) ListTypes() ([]string, error) {
	res, err := s.api.DocumentTypes(s.context())
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("document types fetch returned status %d", res.StatusCode)
	}
	return res.Types, nil
}

// Template returns the form template for a document type as raw JSON; the
// template schema belongs to the server and is passed through untouched.
func (s *DocumentService) Template(docType string) (json.RawMessage, error) {
	docType = strings.TrimSpace(docType)
	if docType == "" {
		return nil, fmt.Errorf("document type is required")
	}
	res, err := s.api.DocumentTemplate(s.context(), docType)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("template fetch for %q returned status %d", docType, res.StatusCode)
	}
	return res.Template, nil
}

// RecentDocuments returns the locally cached recent-documents list. The cache
// is refreshed by RefreshRecent and by the generation pipeline.
func (s *DocumentService) RecentDocuments() ([]models.DocumentRecord, error) {
	limit := 3
	if s.prefs != nil {
		if prefs, err := s.prefs.Get(); err == nil && prefs != nil {
			limit = prefs.RecentDocsLimit
		}
	}
	return s.documents.ListRecent(s.context(), limit)
}

// RefreshRecent pulls the latest recent-documents snapshot from the server
// and replaces the local cache with it.
func (s *DocumentService) RefreshRecent() ([]models.DocumentRecord, error) {
	id := s.session.Identity()
	if !id.Complete() {
		return nil, fmt.Errorf("no identity available")
	}

	limit := 3
	if s.prefs != nil {
		if prefs, err := s.prefs.Get(); err == nil && prefs != nil {
			limit = prefs.RecentDocsLimit
		}
	}

	res, err := s.api.ListGeneratedDocuments(s.context(), id, limit)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recent documents fetch returned status %d", res.StatusCode)
	}
	if err := s.documents.ReplaceRecent(s.context(), res.Documents); err != nil {
		return nil, err
	}
	return res.Documents, nil
}

// HelpMeDecide asks the server to recommend a document type for the user's
// situation.
func (s *DocumentService) HelpMeDecide(situation, expectation string) (*api.DecideResult, error) {
	situation = strings.TrimSpace(situation)
	expectation = strings.TrimSpace(expectation)
	if situation == "" || expectation == "" {
		return nil, fmt.Errorf("situation and expectation are both required")
	}

	id := s.session.Identity()
	if !id.Complete() {
		return nil, fmt.Errorf("no identity available")
	}

	res, err := s.api.HelpMeDecide(s.context(), id, situation, expectation)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("help-me-decide returned status %d", res.StatusCode)
	}
	if res.Recommendation == "" {
		res.Recommendation = res.RawContent
	}
	return res, nil
}

func (s *DocumentService) context() context.Context {
	if s.ctx != nil {
		return s.ctx
	}
	return context.Background()
}
