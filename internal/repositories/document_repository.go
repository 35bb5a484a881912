package repositories

import (
	"context"

	"gorm.io/gorm"

	"zoomdocs/internal/models"
)

type DocumentRepository interface {
	ReplaceRecent(ctx context.Context, docs []models.DocumentRecord) error
	ListRecent(ctx context.Context, limit int) ([]models.DocumentRecord, error)
	DeleteAll(ctx context.Context) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// ReplaceRecent swaps the cached recent-documents list for the server's
// latest snapshot in one transaction.
func (r *documentRepository) ReplaceRecent(ctx context.Context, docs []models.DocumentRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.DocumentRecord{}).Error; err != nil {
			return err
		}
		if len(docs) == 0 {
			return nil
		}
		return tx.Create(&docs).Error
	})
}

func (r *documentRepository) ListRecent(ctx context.Context, limit int) ([]models.DocumentRecord, error) {
	var docs []models.DocumentRecord
	q := r.db.WithContext(ctx).Order("generated_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *documentRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&models.DocumentRecord{}).Error
}
