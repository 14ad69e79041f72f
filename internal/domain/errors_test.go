package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Comedor-api/internal/domain"
)

func TestAppError_IsSobreCopias(t *testing.T) {
	err := domain.ErrWindowClosed.WithCause(errors.New("fin 2026-10-17 10:00"))
	assert.True(t, errors.Is(err, domain.ErrWindowClosed))
	assert.False(t, errors.Is(err, domain.ErrWindowNotOpen))

	wrapped := fmt.Errorf("guardar confirmación: %w", err)
	assert.True(t, errors.Is(wrapped, domain.ErrWindowClosed))
}

func TestInvalidf(t *testing.T) {
	err := domain.Invalidf("name es requerido")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, "name es requerido", err.Error())

	app := domain.AsAppError(err)
	assert.Equal(t, domain.CategoryValidation, app.Category)
	assert.Equal(t, domain.SeverityWarning, app.Severity)
}

func TestAsAppError_Desconocido(t *testing.T) {
	app := domain.AsAppError(errors.New("boom"))
	assert.Equal(t, domain.CategoryUnknown, app.Category)
	assert.Equal(t, "UNKNOWN", app.Code)
	assert.Nil(t, domain.AsAppError(nil))
}

func TestDatabaseError(t *testing.T) {
	err := domain.DatabaseError("get employee", errors.New("connection reset"))
	assert.True(t, errors.Is(err, domain.ErrDatabase))
	assert.Equal(t, domain.SeverityCritical, domain.AsAppError(err).Severity)

	// un AppError existente pasa intacto
	assert.Equal(t, domain.ErrNotFound, domain.DatabaseError("get", domain.ErrNotFound))
	assert.Nil(t, domain.DatabaseError("get", nil))
}

func TestProviderError_Traduccion(t *testing.T) {
	err := fmt.Errorf("login: %w", &domain.ProviderError{Provider: "firebase", Code: "INVALID_PASSWORD"})
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
	assert.Equal(t, "INVALID_CREDENTIALS", domain.AsAppError(err).Code)

	app := domain.AsAppError(&domain.ProviderError{Provider: "firebase", Code: "TOO_MANY_ATTEMPTS_TRY_LATER : Access disabled"})
	assert.Equal(t, domain.ErrTooManyAttempts.Code, app.Code)

	app = domain.AsAppError(&domain.ProviderError{Provider: "firebase", Code: "auth/user-not-found"})
	assert.Equal(t, domain.CategoryAuth, app.Category)

	app = domain.AsAppError(&domain.ProviderError{Provider: "firebase", Code: "SOMETHING_NEW"})
	assert.Equal(t, domain.CategoryUnknown, app.Category)
}
