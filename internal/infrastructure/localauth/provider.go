// Package localauth proveedor de identidad propio: hashes bcrypt en la colección credentials.
package localauth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Comedor-api/internal/application/ports"
	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
)

// MinPasswordLength mismo mínimo que exige Firebase Auth.
const MinPasswordLength = 6

var _ ports.AuthProvider = (*Provider)(nil)

// Provider implementa ports.AuthProvider sin servicios externos.
type Provider struct {
	creds repository.CredentialRepository
	cost  int
	now   func() time.Time
}

// New crea el proveedor. cost 0 usa bcrypt.DefaultCost.
func New(creds repository.CredentialRepository, cost int) *Provider {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Provider{creds: creds, cost: cost, now: time.Now}
}

func (p *Provider) Name() string { return "local" }

// SignIn no distingue email inexistente de contraseña incorrecta.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*ports.AuthIdentity, error) {
	cred, err := p.creds.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return &ports.AuthIdentity{UID: cred.UserID, Email: cred.Email}, nil
}

func (p *Provider) VerifyToken(ctx context.Context, idToken string) (*ports.AuthIdentity, error) {
	return nil, domain.ErrNotSupported.WithCause(errors.New("el proveedor local no emite ID tokens"))
}

func (p *Provider) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(password) < MinPasswordLength {
		return "", domain.ErrWeakPassword
	}
	existing, err := p.creds.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	uid := uuid.New().String()
	if err := p.creds.Save(ctx, &entity.Credential{
		UserID:       uid,
		Email:        email,
		PasswordHash: string(hash),
		UpdatedAt:    p.now(),
	}); err != nil {
		return "", err
	}
	return uid, nil
}

func (p *Provider) DeleteUser(ctx context.Context, uid string) error {
	return p.creds.Delete(ctx, uid)
}

// SignOut no hace nada: la sesión vive en el servidor y se borra en el logout.
func (p *Provider) SignOut(ctx context.Context, uid string) error { return nil }

func (p *Provider) PasswordResetLink(ctx context.Context, email string) (string, error) {
	return "", domain.ErrNotSupported.WithCause(errors.New("restablecimiento por enlace no disponible con el proveedor local"))
}
