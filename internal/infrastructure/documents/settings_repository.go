package documents

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo documento settings/general.
type SettingsRepo struct {
	acc accessor
}

// NewSettingsRepository construye el repositorio de configuración.
func NewSettingsRepository(store repository.DocumentStore) *SettingsRepo {
	return &SettingsRepo{acc: storeAccessor{store: store}}
}

func (r *SettingsRepo) Get(ctx context.Context) (*entity.Settings, error) {
	doc, err := r.acc.get(ctx, repository.CollectionSettings, entity.SettingsID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	var s entity.Settings
	if err := fromDocument(doc, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepo) Save(ctx context.Context, s *entity.Settings) error {
	fields, err := toFields(s)
	if err != nil {
		return err
	}
	if err := r.acc.set(ctx, repository.CollectionSettings, entity.SettingsID, fields); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

var _ repository.CredentialRepository = (*CredentialRepo)(nil)

// CredentialRepo credenciales del proveedor local, id = uid del usuario.
type CredentialRepo struct {
	acc accessor
}

// NewCredentialRepository construye el repositorio de credenciales.
func NewCredentialRepository(store repository.DocumentStore) *CredentialRepo {
	return &CredentialRepo{acc: storeAccessor{store: store}}
}

func (r *CredentialRepo) GetByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	docs, err := r.acc.query(ctx, repository.Query{
		Collection: repository.CollectionCredentials,
		Filters:    []repository.Filter{repository.Eq("email", strings.ToLower(strings.TrimSpace(email)))},
		Limit:      1,
	})
	if err != nil {
		return nil, fmt.Errorf("get credential: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	var c entity.Credential
	if err := fromDocument(&docs[0], &c); err != nil {
		return nil, err
	}
	c.UserID = docs[0].ID
	return &c, nil
}

func (r *CredentialRepo) Save(ctx context.Context, c *entity.Credential) error {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	fields, err := toFields(c)
	if err != nil {
		return err
	}
	if err := r.acc.set(ctx, repository.CollectionCredentials, c.UserID, fields); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

func (r *CredentialRepo) Delete(ctx context.Context, userID string) error {
	if err := r.acc.remove(ctx, repository.CollectionCredentials, userID); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}
