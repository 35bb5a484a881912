package mocks

import (
	"context"

	"zoomdocs/internal/models"
)

type DocumentRepositoryMock struct {
	ReplaceRecentFunc func(ctx context.Context, docs []models.DocumentRecord) error
	ListRecentFunc    func(ctx context.Context, limit int) ([]models.DocumentRecord, error)
	DeleteAllFunc     func(ctx context.Context) error
}

func (m *DocumentRepositoryMock) ReplaceRecent(ctx context.Context, docs []models.DocumentRecord) error {
	if m.ReplaceRecentFunc != nil {
		return m.ReplaceRecentFunc(ctx, docs)
	}
	return nil
}

func (m *DocumentRepositoryMock) ListRecent(ctx context.Context, limit int) ([]models.DocumentRecord, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return []models.DocumentRecord{}, nil
}

func (m *DocumentRepositoryMock) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFunc != nil {
		return m.DeleteAllFunc(ctx)
	}
	return nil
}
