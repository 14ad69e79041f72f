package firebase

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	pkgerrors "github.com/pkg/errors"
	"google.golang.org/api/googleapi"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"github.com/jhoicas/Comedor-api/internal/application/ports"
	"github.com/jhoicas/Comedor-api/internal/domain"
)

var _ ports.AuthProvider = (*AuthProvider)(nil)

const providerName = "firebase"

// AuthProvider Firebase Auth. El login con contraseña usa Identity Toolkit con la Web API key;
// el resto de operaciones usa el Admin SDK.
type AuthProvider struct {
	client  *auth.Client
	toolkit *identitytoolkit.Service
}

// NewAuthProvider construye el proveedor. apiKey puede ser vacío si solo se canjean ID tokens.
func NewAuthProvider(ctx context.Context, app *firebase.App, apiKey string) (*AuthProvider, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get auth client: %w", err)
	}
	p := &AuthProvider{client: client}
	if apiKey != "" {
		svc, err := identitytoolkit.NewService(ctx, option.WithAPIKey(apiKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create identity toolkit client: %w", err)
		}
		p.toolkit = svc
	}
	return p, nil
}

func (p *AuthProvider) Name() string { return providerName }

func (p *AuthProvider) SignIn(ctx context.Context, email, password string) (*ports.AuthIdentity, error) {
	if p.toolkit == nil {
		return nil, domain.ErrNotSupported.WithCause(errors.New("FIREBASE_API_KEY no configurada"))
	}
	res, err := p.toolkit.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, toolkitError(err)
	}
	return &ports.AuthIdentity{UID: res.LocalId, Email: res.Email}, nil
}

func (p *AuthProvider) VerifyToken(ctx context.Context, idToken string) (*ports.AuthIdentity, error) {
	tok, err := p.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, adminError(err)
	}
	email, _ := tok.Claims["email"].(string)
	return &ports.AuthIdentity{UID: tok.UID, Email: email}, nil
}

func (p *AuthProvider) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).Email(email).Password(password).DisplayName(displayName)
	rec, err := p.client.CreateUser(ctx, params)
	if err != nil {
		return "", adminError(err)
	}
	return rec.UID, nil
}

func (p *AuthProvider) DeleteUser(ctx context.Context, uid string) error {
	if err := p.client.DeleteUser(ctx, uid); err != nil && !auth.IsUserNotFound(err) {
		return adminError(err)
	}
	return nil
}

func (p *AuthProvider) SignOut(ctx context.Context, uid string) error {
	if err := p.client.RevokeRefreshTokens(ctx, uid); err != nil {
		return adminError(err)
	}
	return nil
}

func (p *AuthProvider) PasswordResetLink(ctx context.Context, email string) (string, error) {
	link, err := p.client.PasswordResetLink(ctx, email)
	if err != nil {
		return "", adminError(err)
	}
	return link, nil
}

// toolkitError conserva el código de Identity Toolkit (INVALID_PASSWORD, EMAIL_NOT_FOUND, ...).
func toolkitError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Message != "" {
		return &domain.ProviderError{Provider: providerName, Code: gerr.Message, Err: err}
	}
	return domain.ErrUnavailable.WithCause(pkgerrors.WithStack(err))
}

func adminError(err error) error {
	code := ""
	switch {
	case auth.IsUserNotFound(err):
		code = "auth/user-not-found"
	case auth.IsEmailAlreadyExists(err):
		code = "auth/email-already-exists"
	case auth.IsIDTokenExpired(err):
		code = "auth/id-token-expired"
	case auth.IsIDTokenRevoked(err):
		code = "auth/id-token-revoked"
	case auth.IsUserDisabled(err):
		code = "auth/user-disabled"
	case auth.IsIDTokenInvalid(err):
		code = "INVALID_ID_TOKEN"
	}
	if code != "" {
		return &domain.ProviderError{Provider: providerName, Code: code, Err: err}
	}
	return pkgerrors.WithStack(err)
}
