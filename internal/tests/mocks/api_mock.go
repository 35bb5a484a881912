package mocks

import (
	"context"

	"zoomdocs/internal/api"
	"zoomdocs/internal/models"
)

type APIMock struct {
	GenerateUserFunc           func(ctx context.Context) (*api.IdentityResult, error)
	CheckUserFunc              func(ctx context.Context, id models.Identity) (*api.StatusResult, error)
	StartUserFunc              func(ctx context.Context, id models.Identity) (*api.StatusResult, error)
	GetCreditsFunc             func(ctx context.Context, id models.Identity) (*api.CreditsResult, error)
	GenerateDocumentFunc       func(ctx context.Context, req api.GenerateRequest) (*api.GenerateResult, error)
	FetchArtifactFunc          func(ctx context.Context, kind, fileName string, id models.Identity) (*api.ArtifactResult, error)
	ListGeneratedDocumentsFunc func(ctx context.Context, id models.Identity, records int) (*api.DocumentsListResult, error)
	DocumentTypesFunc          func(ctx context.Context) (*api.DocumentTypesResult, error)
	DocumentTemplateFunc       func(ctx context.Context, docType string) (*api.TemplateResult, error)
	HelpMeDecideFunc           func(ctx context.Context, id models.Identity, situation, expectation string) (*api.DecideResult, error)
}

func (m *APIMock) GenerateUser(ctx context.Context) (*api.IdentityResult, error) {
	if m.GenerateUserFunc != nil {
		return m.GenerateUserFunc(ctx)
	}
	return &api.IdentityResult{StatusCode: 200}, nil
}

func (m *APIMock) CheckUser(ctx context.Context, id models.Identity) (*api.StatusResult, error) {
	if m.CheckUserFunc != nil {
		return m.CheckUserFunc(ctx, id)
	}
	return &api.StatusResult{Status: true, StatusCode: 200}, nil
}

func (m *APIMock) StartUser(ctx context.Context, id models.Identity) (*api.StatusResult, error) {
	if m.StartUserFunc != nil {
		return m.StartUserFunc(ctx, id)
	}
	return &api.StatusResult{Status: true, StatusCode: 200}, nil
}

func (m *APIMock) GetCredits(ctx context.Context, id models.Identity) (*api.CreditsResult, error) {
	if m.GetCreditsFunc != nil {
		return m.GetCreditsFunc(ctx, id)
	}
	return &api.CreditsResult{Credits: 0, StatusCode: 200}, nil
}

func (m *APIMock) GenerateDocument(ctx context.Context, req api.GenerateRequest) (*api.GenerateResult, error) {
	if m.GenerateDocumentFunc != nil {
		return m.GenerateDocumentFunc(ctx, req)
	}
	return &api.GenerateResult{StatusCode: 200}, nil
}

func (m *APIMock) FetchArtifact(ctx context.Context, kind, fileName string, id models.Identity) (*api.ArtifactResult, error) {
	if m.FetchArtifactFunc != nil {
		return m.FetchArtifactFunc(ctx, kind, fileName, id)
	}
	return &api.ArtifactResult{StatusCode: 200}, nil
}

func (m *APIMock) ListGeneratedDocuments(ctx context.Context, id models.Identity, records int) (*api.DocumentsListResult, error) {
	if m.ListGeneratedDocumentsFunc != nil {
		return m.ListGeneratedDocumentsFunc(ctx, id, records)
	}
	return &api.DocumentsListResult{StatusCode: 200}, nil
}

func (m *APIMock) DocumentTypes(ctx context.Context) (*api.DocumentTypesResult, error) {
	if m.DocumentTypesFunc != nil {
		return m.DocumentTypesFunc(ctx)
	}
	return &api.DocumentTypesResult{StatusCode: 200}, nil
}

func (m *APIMock) DocumentTemplate(ctx context.Context, docType string) (*api.TemplateResult, error) {
	if m.DocumentTemplateFunc != nil {
		return m.DocumentTemplateFunc(ctx, docType)
	}
	return &api.TemplateResult{StatusCode: 200}, nil
}

func (m *APIMock) HelpMeDecide(ctx context.Context, id models.Identity, situation, expectation string) (*api.DecideResult, error) {
	if m.HelpMeDecideFunc != nil {
		return m.HelpMeDecideFunc(ctx, id, situation, expectation)
	}
	return &api.DecideResult{StatusCode: 200}, nil
}
