package mocks

import (
	"context"

	"zoomdocs/internal/models"
)

type PrefsRepositoryMock struct {
	GetFunc    func(ctx context.Context) (*models.GenerationPrefs, error)
	UpdateFunc func(ctx context.Context, prefs *models.GenerationPrefs) error
}

func (m *PrefsRepositoryMock) Get(ctx context.Context) (*models.GenerationPrefs, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	return &models.GenerationPrefs{ID: 1, Version: 1, DefaultToneLevel: 0, RecentDocsLimit: 3}, nil
}

func (m *PrefsRepositoryMock) Update(ctx context.Context, prefs *models.GenerationPrefs) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, prefs)
	}
	return nil
}
