package services

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"zoomdocs/internal/models"
)

const (
	keyringService = "zoomdocs"
	authIDKey      = "auth_id"
	userIDKey      = "user_id"
)

// CredentialStore is the durable home of the anonymous identity pair.
// Implementations must keep the pair atomic: after any call the store holds
// either both tokens or neither.
type CredentialStore interface {
	Store(id models.Identity) error
	Load() (models.Identity, error)
	Clear() error
}

// KeyringCredentials stores the identity pair in the OS keyring.
type KeyringCredentials struct{}

func NewKeyringCredentials() *KeyringCredentials {
	return &KeyringCredentials{}
}

func (s *KeyringCredentials) Store(id models.Identity) error {
	if !id.Complete() {
		return errors.New("both auth id and user id are required")
	}
	if err := keyring.Set(keyringService, authIDKey, id.AuthID); err != nil {
		return fmt.Errorf("store auth id: %w", err)
	}
	if err := keyring.Set(keyringService, userIDKey, id.UserID); err != nil {
		// Roll back so the store never holds half a pair.
		_ = keyring.Delete(keyringService, authIDKey)
		return fmt.Errorf("store user id: %w", err)
	}
	return nil
}

// Load returns the stored pair, or a zero Identity when none is stored.
// A half-written pair is treated as absent and cleaned up.
func (s *KeyringCredentials) Load() (models.Identity, error) {
	authID, authErr := keyring.Get(keyringService, authIDKey)
	userID, userErr := keyring.Get(keyringService, userIDKey)

	if errors.Is(authErr, keyring.ErrNotFound) || errors.Is(userErr, keyring.ErrNotFound) {
		if authErr == nil || userErr == nil {
			_ = s.Clear()
		}
		return models.Identity{}, nil
	}
	if authErr != nil {
		return models.Identity{}, fmt.Errorf("load auth id: %w", authErr)
	}
	if userErr != nil {
		return models.Identity{}, fmt.Errorf("load user id: %w", userErr)
	}

	id := models.Identity{AuthID: authID, UserID: userID}
	if !id.Complete() {
		_ = s.Clear()
		return models.Identity{}, nil
	}
	return id, nil
}

func (s *KeyringCredentials) Clear() error {
	authErr := keyring.Delete(keyringService, authIDKey)
	userErr := keyring.Delete(keyringService, userIDKey)
	if authErr != nil && !errors.Is(authErr, keyring.ErrNotFound) {
		return fmt.Errorf("clear auth id: %w", authErr)
	}
	if userErr != nil && !errors.Is(userErr, keyring.ErrNotFound) {
		return fmt.Errorf("clear user id: %w", userErr)
	}
	return nil
}
