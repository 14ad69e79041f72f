package localauth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/documents"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/localauth"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/memory"
)

func newProvider() *localauth.Provider {
	store := memory.NewDocumentStore()
	return localauth.New(documents.NewCredentialRepository(store), bcrypt.MinCost)
}

func TestLocal_CrearYLogin(t *testing.T) {
	p := newProvider()
	ctx := context.Background()

	uid, err := p.CreateUser(ctx, " Ana@Avika.mx ", "secreto1", "Ana")
	require.NoError(t, err)
	require.NotEmpty(t, uid)

	id, err := p.SignIn(ctx, "ana@avika.mx", "secreto1")
	require.NoError(t, err)
	assert.Equal(t, uid, id.UID)
	assert.Equal(t, "ana@avika.mx", id.Email)
}

func TestLocal_CredencialesInvalidas(t *testing.T) {
	p := newProvider()
	ctx := context.Background()
	_, err := p.CreateUser(ctx, "ana@avika.mx", "secreto1", "Ana")
	require.NoError(t, err)

	_, err = p.SignIn(ctx, "ana@avika.mx", "otra")
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))

	_, err = p.SignIn(ctx, "nadie@avika.mx", "secreto1")
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials), "email desconocido no se distingue")
}

func TestLocal_EmailDuplicadoYPasswordDebil(t *testing.T) {
	p := newProvider()
	ctx := context.Background()
	_, err := p.CreateUser(ctx, "ana@avika.mx", "secreto1", "Ana")
	require.NoError(t, err)

	_, err = p.CreateUser(ctx, "ANA@avika.mx", "secreto2", "Ana 2")
	assert.True(t, errors.Is(err, domain.ErrEmailAlreadyExists))

	_, err = p.CreateUser(ctx, "luis@avika.mx", "123", "Luis")
	assert.True(t, errors.Is(err, domain.ErrWeakPassword))
}

func TestLocal_BorrarUsuario(t *testing.T) {
	p := newProvider()
	ctx := context.Background()
	uid, err := p.CreateUser(ctx, "ana@avika.mx", "secreto1", "Ana")
	require.NoError(t, err)

	require.NoError(t, p.DeleteUser(ctx, uid))
	_, err = p.SignIn(ctx, "ana@avika.mx", "secreto1")
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
}

func TestLocal_OperacionesNoSoportadas(t *testing.T) {
	p := newProvider()
	_, err := p.VerifyToken(context.Background(), "token")
	assert.True(t, errors.Is(err, domain.ErrNotSupported))
	_, err = p.PasswordResetLink(context.Background(), "ana@avika.mx")
	assert.True(t, errors.Is(err, domain.ErrNotSupported))
}
