package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"zoomdocs/internal/models"
)

type PrefsRepository interface {
	Get(ctx context.Context) (*models.GenerationPrefs, error)
	Update(ctx context.Context, prefs *models.GenerationPrefs) error
}

type prefsRepository struct {
	db *gorm.DB
}

func NewPrefsRepository(db *gorm.DB) PrefsRepository {
	return &prefsRepository{db: db}
}

func (r *prefsRepository) Get(ctx context.Context) (*models.GenerationPrefs, error) {
	var prefs models.GenerationPrefs
	if err := r.db.WithContext(ctx).First(&prefs, 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Return default preferences if not found
			return &models.GenerationPrefs{
				ID:               1,
				Version:          1,
				DefaultToneLevel: 0,
				RecentDocsLimit:  3,
			}, nil
		}
		return nil, err
	}
	return &prefs, nil
}

func (r *prefsRepository) Update(ctx context.Context, prefs *models.GenerationPrefs) error {
	// Ensure ID is set to 1 for single-row table
	prefs.ID = 1
	return r.db.WithContext(ctx).Save(prefs).Error
}
