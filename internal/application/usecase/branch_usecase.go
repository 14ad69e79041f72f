package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Comedor-api/internal/application/dto"
	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/internal/domain/menu"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

// BranchUseCase sucursales. EmployeeCount solo lo mueve EmployeeUseCase.
type BranchUseCase struct {
	branches repository.BranchRepository
	users    repository.UserRepository
	clock    Clock
	log      *logger.Logger
}

func NewBranchUseCase(branches repository.BranchRepository, users repository.UserRepository, clock Clock, log *logger.Logger) *BranchUseCase {
	return &BranchUseCase{branches: branches, users: users, clock: clock, log: log}
}

// Create alta de sucursal; el id se deriva del nombre ("Sucursal Centro" → "sucursal-centro").
func (uc *BranchUseCase) Create(ctx context.Context, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	name := strings.TrimSpace(in.Name)
	id := slugify(name)
	if id == "" {
		return nil, domain.Invalidf("name es requerido")
	}
	existing, err := uc.branches.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.checkCoordinator(ctx, in.CoordinatorID); err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	b := &entity.Branch{
		ID:            id,
		Name:          name,
		CoordinatorID: in.CoordinatorID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.branches.Save(ctx, b); err != nil {
		return nil, err
	}
	uc.log.Info().Str("branch_id", id).Msg("sucursal creada")
	resp := toBranchResponse(b)
	return &resp, nil
}

// Get sucursal por id; un coordinador solo ve la suya.
func (uc *BranchUseCase) Get(ctx context.Context, scope, id string) (*dto.BranchResponse, error) {
	if scope != "" && scope != id {
		return nil, domain.ErrNotFound
	}
	b, err := uc.branches.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	resp := toBranchResponse(b)
	return &resp, nil
}

// List todas las sucursales, o solo la del coordinador.
func (uc *BranchUseCase) List(ctx context.Context, scope string) ([]dto.BranchResponse, error) {
	if scope != "" {
		b, err := uc.Get(ctx, scope, scope)
		if err != nil {
			return nil, err
		}
		return []dto.BranchResponse{*b}, nil
	}
	list, err := uc.branches.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBranchResponse(b))
	}
	return out, nil
}

// Update renombra o cambia el coordinador.
func (uc *BranchUseCase) Update(ctx context.Context, id string, in dto.UpdateBranchRequest) (*dto.BranchResponse, error) {
	b, err := uc.branches.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalidf("name es requerido")
		}
		b.Name = name
	}
	if in.CoordinatorID != nil {
		if err := uc.checkCoordinator(ctx, *in.CoordinatorID); err != nil {
			return nil, err
		}
		b.CoordinatorID = *in.CoordinatorID
	}
	b.UpdatedAt = uc.clock.Now()
	if err := uc.branches.UpdateDetails(ctx, b); err != nil {
		return nil, err
	}
	// el contador pudo cambiar mientras tanto
	if fresh, err := uc.branches.Get(ctx, id); err == nil && fresh != nil {
		b = fresh
	}
	resp := toBranchResponse(b)
	return &resp, nil
}

func (uc *BranchUseCase) checkCoordinator(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	u, err := uc.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil || u.Role != entity.RoleCoordinator {
		return domain.Invalidf("coordinator_id %q no es un coordinador", userID)
	}
	return nil
}

// slugify minúsculas sin tildes; cualquier otro carácter se vuelve guion.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range menu.NormalizeDayKey(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
