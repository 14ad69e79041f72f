package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Comedor-api/internal/application/dto"
	"github.com/jhoicas/Comedor-api/internal/application/ports"
	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/access"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

// UserUseCase administración de usuarios. La cuenta vive en el proveedor de autenticación
// y el perfil (rol, sucursal) en la colección users con el mismo id.
type UserUseCase struct {
	users    repository.UserRepository
	branches repository.BranchRepository
	provider ports.AuthProvider
	clock    Clock
	log      *logger.Logger
}

func NewUserUseCase(users repository.UserRepository, branches repository.BranchRepository, provider ports.AuthProvider, clock Clock, log *logger.Logger) *UserUseCase {
	return &UserUseCase{users: users, branches: branches, provider: provider, clock: clock, log: log}
}

// Create crea la cuenta en el proveedor y luego el perfil. Si el perfil no se puede
// guardar, la cuenta se elimina para no dejar usuarios sin rol.
func (uc *UserUseCase) Create(ctx context.Context, actorID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	role := access.NormalizeRole(in.Role)
	if role == "" {
		return nil, domain.Invalidf("rol desconocido %q", in.Role)
	}
	branchID, err := uc.branchFor(ctx, role, in.BranchID)
	if err != nil {
		return nil, err
	}
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	uid, err := uc.provider.CreateUser(ctx, email, in.Password, in.Name)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	u := &entity.User{
		ID:          uid,
		Name:        strings.TrimSpace(in.Name),
		Email:       email,
		Role:        role,
		BranchID:    branchID,
		Permissions: in.Permissions,
		Active:      true,
		CreatedBy:   actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.users.Save(ctx, u); err != nil {
		if derr := uc.provider.DeleteUser(ctx, uid); derr != nil {
			uc.log.Error().Err(derr).Str("uid", uid).Msg("no se pudo revertir la cuenta del proveedor")
		}
		return nil, err
	}
	uc.log.Info().Str("uid", uid).Str("role", role).Str("actor", actorID).Msg("usuario creado")
	resp := ToUserResponse(u)
	return &resp, nil
}

// Get perfil por id.
func (uc *UserUseCase) Get(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(u)
	return &resp, nil
}

// List usuarios, opcionalmente de un rol (acepta alias como "coordinador").
func (uc *UserUseCase) List(ctx context.Context, role string) ([]dto.UserResponse, error) {
	if role != "" {
		canonical := access.NormalizeRole(role)
		if canonical == "" {
			return nil, domain.Invalidf("rol desconocido %q", role)
		}
		role = canonical
	}
	list, err := uc.users.List(ctx, role)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, ToUserResponse(u))
	}
	return out, nil
}

// Update cambios de perfil. El email no se cambia aquí: es la llave del proveedor.
func (uc *UserUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalidf("name es requerido")
		}
		u.Name = name
	}
	if in.Role != nil {
		role := access.NormalizeRole(*in.Role)
		if role == "" {
			return nil, domain.Invalidf("rol desconocido %q", *in.Role)
		}
		if id == actorID && role != u.Role {
			return nil, domain.ErrConflict.WithCause(domain.Invalidf("no puede cambiar su propio rol"))
		}
		u.Role = role
	}
	if in.BranchID != nil {
		u.BranchID = strings.TrimSpace(*in.BranchID)
	}
	if u.BranchID, err = uc.branchFor(ctx, u.Role, u.BranchID); err != nil {
		return nil, err
	}
	if in.Permissions != nil {
		u.Permissions = in.Permissions
	}
	if in.Active != nil {
		if id == actorID && !*in.Active {
			return nil, domain.ErrConflict.WithCause(domain.Invalidf("no puede desactivarse a sí mismo"))
		}
		u.Active = *in.Active
	}
	u.UpdatedAt = uc.clock.Now()
	if err := uc.users.Save(ctx, u); err != nil {
		return nil, err
	}
	resp := ToUserResponse(u)
	return &resp, nil
}

// Delete elimina la cuenta del proveedor y el perfil. Nadie puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id string) error {
	if id == actorID {
		return domain.ErrConflict
	}
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	if err := uc.provider.DeleteUser(ctx, id); err != nil {
		return err
	}
	if err := uc.users.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("uid", id).Str("actor", actorID).Msg("usuario eliminado")
	return nil
}

// PasswordReset enlace de restablecimiento para el usuario.
func (uc *UserUseCase) PasswordReset(ctx context.Context, id string) (*dto.PasswordResetResponse, error) {
	u, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	link, err := uc.provider.PasswordResetLink(ctx, u.Email)
	if err != nil {
		return nil, err
	}
	return &dto.PasswordResetResponse{Email: u.Email, Link: link}, nil
}

func (uc *UserUseCase) load(ctx context.Context, id string) (*entity.User, error) {
	u, err := uc.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

// branchFor los coordinadores deben tener una sucursal existente; los demás roles no llevan.
func (uc *UserUseCase) branchFor(ctx context.Context, role, branchID string) (string, error) {
	branchID = strings.TrimSpace(branchID)
	if role != entity.RoleCoordinator {
		return "", nil
	}
	if branchID == "" {
		return "", domain.Invalidf("branch_id es requerido para coordinadores")
	}
	b, err := uc.branches.Get(ctx, branchID)
	if err != nil {
		return "", err
	}
	if b == nil {
		return "", domain.Invalidf("la sucursal %q no existe", branchID)
	}
	return branchID, nil
}
