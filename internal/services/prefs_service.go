package services

import (
	"context"
	"errors"

	"zoomdocs/internal/models"
	"zoomdocs/internal/repositories"
)

type PrefsService interface {
	Get() (*models.GenerationPrefs, error)
	Update(defaultToneLevel, recentDocsLimit int) (*models.GenerationPrefs, error)
	Startup(ctx context.Context)
}

type prefsService struct {
	prefs   repositories.PrefsRepository
	context context.Context
}

func (s *prefsService) Startup(ctx context.Context) {
	s.context = ctx
}

func NewPrefsService(prefs repositories.PrefsRepository) PrefsService {
	return &prefsService{prefs: prefs}
}

func (s *prefsService) Get() (*models.GenerationPrefs, error) {
	return s.prefs.Get(context.Background())
}

func (s *prefsService) Update(defaultToneLevel, recentDocsLimit int) (*models.GenerationPrefs, error) {
	if defaultToneLevel < 0 || defaultToneLevel > 10 {
		return nil, errors.New("default tone level must be between 0 and 10")
	}
	if recentDocsLimit < 1 || recentDocsLimit > 20 {
		return nil, errors.New("recent documents limit must be between 1 and 20")
	}

	current, err := s.prefs.Get(context.Background())
	if err != nil {
		return nil, err
	}

	current.DefaultToneLevel = defaultToneLevel
	current.RecentDocsLimit = recentDocsLimit

	if err := s.prefs.Update(context.Background(), current); err != nil {
		return nil, err
	}

	return current, nil
}
