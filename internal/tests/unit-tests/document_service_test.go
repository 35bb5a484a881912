package unit_tests

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"zoomdocs/internal/api"
	"zoomdocs/internal/models"
	"zoomdocs/internal/services"
	"zoomdocs/internal/tests/mocks"

	"github.com/stretchr/testify/assert"
)

func newDocumentService(t *testing.T, mockAPI *mocks.APIMock, docs *mocks.DocumentRepositoryMock) *services.DocumentService {
	t.Helper()
	store := &mocks.CredentialStoreMock{
		LoadFunc: func() (models.Identity, error) { return storedIdentity(), nil },
	}
	session := services.NewSessionService(mockAPI, store, nil)
	prefs := services.NewPrefsService(&mocks.PrefsRepositoryMock{})
	service := services.NewDocumentService(mockAPI, session, docs, prefs, nil)
	assert.NoError(t, service.Startup(context.Background()))
	return service
}

func TestDocumentService_ListTypes_Success(t *testing.T) {
	mockAPI := &mocks.APIMock{
		DocumentTypesFunc: func(ctx context.Context) (*api.DocumentTypesResult, error) {
			return &api.DocumentTypesResult{
				Types:      []string{"complaint_letter", "resignation_letter"},
				StatusCode: 200,
			}, nil
		},
	}
	service := newDocumentService(t, mockAPI, &mocks.DocumentRepositoryMock{})

	types, err := service.ListTypes()
	assert.NoError(t, err)
	assert.Equal(t, []string{"complaint_letter", "resignation_letter"}, types)
}

func TestDocumentService_ListTypes_Non200(t *testing.T) {
	mockAPI := &mocks.APIMock{
		DocumentTypesFunc: func(ctx context.Context) (*api.DocumentTypesResult, error) {
			return &api.DocumentTypesResult{StatusCode: 500}, nil
		},
	}
	service := newDocumentService(t, mockAPI, &mocks.DocumentRepositoryMock{})

	_, err := service.ListTypes()
	assert.Error(t, err)
}

func TestDocumentService_Template_Success(t *testing.T) {
	raw := json.RawMessage(`{"fields":["recipient","reason"]}`)
	mockAPI := &mocks.APIMock{
		DocumentTemplateFunc: func(ctx context.Context, docType string) (*api.TemplateResult, error) {
			assert.Equal(t, "complaint_letter", docType)
			return &api.TemplateResult{Template: raw, StatusCode: 200}, nil
		},
	}
	service := newDocumentService(t, mockAPI, &mocks.DocumentRepositoryMock{})

	tmpl, err := service.Template("complaint_letter")
	assert.NoError(t, err)
	assert.JSONEq(t, string(raw), string(tmpl))
}

func TestDocumentService_Template_RequiresType(t *testing.T) {
	service := newDocumentService(t, &mocks.APIMock{}, &mocks.DocumentRepositoryMock{})

	_, err := service.Template("  ")
	assert.Error(t, err)
}

func TestDocumentService_RecentDocuments_UsesLocalCache(t *testing.T) {
	docs := &mocks.DocumentRepositoryMock{
		ListRecentFunc: func(ctx context.Context, limit int) ([]models.DocumentRecord, error) {
			assert.Equal(t, 3, limit)
			return []models.DocumentRecord{{DocumentType: "complaint_letter"}}, nil
		},
	}
	service := newDocumentService(t, &mocks.APIMock{}, docs)

	records, err := service.RecentDocuments()
	assert.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestDocumentService_RefreshRecent_ReplacesCache(t *testing.T) {
	replaced := false
	mockAPI := &mocks.APIMock{
		ListGeneratedDocumentsFunc: func(ctx context.Context, id models.Identity, records int) (*api.DocumentsListResult, error) {
			assert.Equal(t, storedIdentity(), id)
			assert.Equal(t, 3, records)
			return &api.DocumentsListResult{
				Documents:  []models.DocumentRecord{{DocumentType: "nda"}},
				StatusCode: 200,
			}, nil
		},
	}
	docs := &mocks.DocumentRepositoryMock{
		ReplaceRecentFunc: func(ctx context.Context, records []models.DocumentRecord) error {
			replaced = true
			assert.Len(t, records, 1)
			return nil
		},
	}
	service := newDocumentService(t, mockAPI, docs)

	records, err := service.RefreshRecent()
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.True(t, replaced)
}

func TestDocumentService_RefreshRecent_RequiresIdentity(t *testing.T) {
	mockAPI := &mocks.APIMock{}
	session := services.NewSessionService(mockAPI, &mocks.CredentialStoreMock{}, nil)
	prefs := services.NewPrefsService(&mocks.PrefsRepositoryMock{})
	service := services.NewDocumentService(mockAPI, session, &mocks.DocumentRepositoryMock{}, prefs, nil)
	assert.NoError(t, service.Startup(context.Background()))

	_, err := service.RefreshRecent()
	assert.Error(t, err)
}

func TestDocumentService_HelpMeDecide_Success(t *testing.T) {
	mockAPI := &mocks.APIMock{
		HelpMeDecideFunc: func(ctx context.Context, id models.Identity, situation, expectation string) (*api.DecideResult, error) {
			assert.Equal(t, "my landlord won't fix the heating", situation)
			return &api.DecideResult{DocumentType: "complaint_letter", Recommendation: "Send a formal complaint.", StatusCode: 200}, nil
		},
	}
	service := newDocumentService(t, mockAPI, &mocks.DocumentRepositoryMock{})

	res, err := service.HelpMeDecide("my landlord won't fix the heating", "get it repaired")
	assert.NoError(t, err)
	assert.Equal(t, "complaint_letter", res.DocumentType)
}

func TestDocumentService_HelpMeDecide_RawContentFallback(t *testing.T) {
	mockAPI := &mocks.APIMock{
		HelpMeDecideFunc: func(ctx context.Context, id models.Identity, situation, expectation string) (*api.DecideResult, error) {
			return &api.DecideResult{RawContent: "try a demand letter", StatusCode: 200}, nil
		},
	}
	service := newDocumentService(t, mockAPI, &mocks.DocumentRepositoryMock{})

	res, err := service.HelpMeDecide("situation", "expectation")
	assert.NoError(t, err)
	assert.Equal(t, "try a demand letter", res.Recommendation)
}

func TestDocumentService_HelpMeDecide_RequiresBothInputs(t *testing.T) {
	service := newDocumentService(t, &mocks.APIMock{}, &mocks.DocumentRepositoryMock{})

	_, err := service.HelpMeDecide("", "expectation")
	assert.Error(t, err)

	_, err = service.HelpMeDecide("situation", "   ")
	assert.Error(t, err)
}

func TestDocumentService_RecentDocuments_RepositoryError(t *testing.T) {
	docs := &mocks.DocumentRepositoryMock{
		ListRecentFunc: func(ctx context.Context, limit int) ([]models.DocumentRecord, error) {
			return nil, errors.New("database locked")
		},
	}
	service := newDocumentService(t, &mocks.APIMock{}, docs)

	_, err := service.RecentDocuments()
	assert.Error(t, err)
}
