package mocks

import (
	"zoomdocs/internal/models"
)

type CredentialStoreMock struct {
	StoreFunc func(id models.Identity) error
	LoadFunc  func() (models.Identity, error)
	ClearFunc func() error
}

func (m *CredentialStoreMock) Store(id models.Identity) error {
	if m.StoreFunc != nil {
		return m.StoreFunc(id)
	}
	return nil
}

func (m *CredentialStoreMock) Load() (models.Identity, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return models.Identity{}, nil
}

func (m *CredentialStoreMock) Clear() error {
	if m.ClearFunc != nil {
		return m.ClearFunc()
	}
	return nil
}
