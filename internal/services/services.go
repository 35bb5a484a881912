package services

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zoomdocs/internal/api"
	"zoomdocs/internal/repositories"
)

// Services aggregates the domain services and wires them to their
// repositories and to the shared API client.
type Services struct {
	Session     *SessionService
	Generation  *GenerationService
	Documents   *DocumentService
	Prefs       PrefsService
	Credentials CredentialStore
}

// NewServices constructs the service container using repositories backed by db.
func NewServices(db *gorm.DB, apiClient api.API, log *zap.Logger) *Services {
	documentRepo := repositories.NewDocumentRepository(db)
	prefsRepo := repositories.NewPrefsRepository(db)

	credentials := NewKeyringCredentials()
	prefs := NewPrefsService(prefsRepo)
	session := NewSessionService(apiClient, credentials, log)
	generation := NewGenerationService(apiClient, session, credentials, documentRepo, prefs, log)
	documents := NewDocumentService(apiClient, session, documentRepo, prefs, log)

	return &Services{
		Session:     session,
		Generation:  generation,
		Documents:   documents,
		Prefs:       prefs,
		Credentials: credentials,
	}
}
