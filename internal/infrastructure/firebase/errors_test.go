package firebase

import (
	"errors"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jhoicas/Comedor-api/internal/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		code codes.Code
		want *domain.AppError
	}{
		{"no existe", codes.NotFound, domain.ErrNotFound},
		{"sin permiso", codes.PermissionDenied, domain.ErrForbidden},
		{"caído", codes.Unavailable, domain.ErrUnavailable},
		{"plazo vencido", codes.DeadlineExceeded, domain.ErrUnavailable},
		{"interno", codes.Internal, domain.ErrDatabase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapError("set document", status.Error(tt.code, "boom"))
			assert.True(t, errors.Is(err, tt.want), "%v", err)
		})
	}
}

func TestSnapshotToDocument(t *testing.T) {
	doc, err := snapshotToDocument(nil, status.Error(codes.NotFound, "no existe"))
	require.NoError(t, err)
	assert.Nil(t, doc)

	doc, err = snapshotToDocument(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, doc)

	_, err = snapshotToDocument(nil, status.Error(codes.Unavailable, "sin red"))
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
}

func TestToUpdates_OrdenEstable(t *testing.T) {
	updates := toUpdates(map[string]any{"status": "published", "confirm_end": "x", "days": map[string]any{}})
	require.Len(t, updates, 3)
	assert.Equal(t, []firestore.Update{
		{Path: "confirm_end", Value: "x"},
		{Path: "days", Value: map[string]any{}},
		{Path: "status", Value: "published"},
	}, updates)
	assert.Empty(t, toUpdates(nil))
}

func TestToolkitError(t *testing.T) {
	tests := []struct {
		message string
		want    *domain.AppError
	}{
		{"INVALID_PASSWORD", domain.ErrInvalidCredentials},
		{"EMAIL_NOT_FOUND", domain.ErrInvalidCredentials},
		{"USER_DISABLED", domain.ErrUserDisabled},
		{"TOO_MANY_ATTEMPTS_TRY_LATER : Access to this account has been temporarily disabled", domain.ErrTooManyAttempts},
		{"EMAIL_EXISTS", domain.ErrEmailAlreadyExists},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			err := toolkitError(&googleapi.Error{Code: 400, Message: tt.message})
			var perr *domain.ProviderError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, providerName, perr.Provider)
			assert.True(t, errors.Is(err, tt.want), "%v", err)
		})
	}

	err := toolkitError(errors.New("dial tcp: timeout"))
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
}

func TestAdminError_SinCodigoConocido(t *testing.T) {
	cause := errors.New("respuesta inesperada")
	err := adminError(cause)

	var perr *domain.ProviderError
	assert.False(t, errors.As(err, &perr))
	assert.True(t, errors.Is(err, cause))
}
