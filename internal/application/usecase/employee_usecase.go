package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Comedor-api/internal/application/dto"
	"github.com/jhoicas/Comedor-api/internal/application/ports"
	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

// EmployeeUseCase nómina de cada sucursal. Toda alta, baja o cambio de estado activo
// ajusta Branch.EmployeeCount en la misma transacción.
//
// scope es la sucursal a la que está limitado quien llama (coordinador); vacío = sin límite.
type EmployeeUseCase struct {
	employees repository.EmployeeRepository
	branches  repository.BranchRepository
	tx        repository.TxRunner
	parser    ports.RosterParser
	encoder   ports.TableEncoder
	clock     Clock
	log       *logger.Logger
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(
	employees repository.EmployeeRepository,
	branches repository.BranchRepository,
	tx repository.TxRunner,
	parser ports.RosterParser,
	encoder ports.TableEncoder,
	clock Clock,
	log *logger.Logger,
) *EmployeeUseCase {
	return &EmployeeUseCase{
		employees: employees, branches: branches, tx: tx,
		parser: parser, encoder: encoder, clock: clock, log: log,
	}
}

// Create alta de empleado en la sucursal indicada (o la del coordinador).
func (uc *EmployeeUseCase) Create(ctx context.Context, actorID, scope string, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	branchID, err := resolveBranch(scope, in.BranchID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalidf("name es requerido")
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := uc.clock.Now()
	e := &entity.Employee{
		ID:                  uuid.New().String(),
		Name:                name,
		BranchID:            branchID,
		Position:            strings.TrimSpace(in.Position),
		DietaryRestrictions: strings.TrimSpace(in.DietaryRestrictions),
		Active:              active,
		CreatedBy:           actorID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err = uc.tx.Run(ctx, func(ctx context.Context, r repository.Repos) error {
		b, err := r.Branches.Get(ctx, branchID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.Invalidf("la sucursal %q no existe", branchID)
		}
		if err := r.Employees.Save(ctx, e); err != nil {
			return err
		}
		if active {
			b.AdjustEmployeeCount(1)
			b.UpdatedAt = now
			return r.Branches.Save(ctx, b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toEmployeeResponse(e)
	return &resp, nil
}

// Get empleado por id; ErrNotFound si no existe o pertenece a otra sucursal.
func (uc *EmployeeUseCase) Get(ctx context.Context, scope, id string) (*dto.EmployeeResponse, error) {
	e, err := uc.employees.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil || (scope != "" && e.BranchID != scope) {
		return nil, domain.ErrNotFound
	}
	resp := toEmployeeResponse(e)
	return &resp, nil
}

// List empleados de una sucursal, o de todas las sucursales si branchID es vacío y no hay scope.
func (uc *EmployeeUseCase) List(ctx context.Context, scope, branchID string, onlyActive bool) ([]dto.EmployeeResponse, error) {
	if scope != "" {
		if branchID != "" && branchID != scope {
			return nil, domain.ErrForbidden
		}
		branchID = scope
	}
	var (
		list []*entity.Employee
		err  error
	)
	switch {
	case branchID != "":
		list, err = uc.employees.ListByBranch(ctx, branchID, onlyActive)
	case onlyActive:
		list, err = uc.employees.ListActive(ctx)
	default:
		return nil, domain.Invalidf("branch_id es requerido")
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEmployeeResponse(e))
	}
	return out, nil
}

// Update cambios parciales. Cambiar Active ajusta el contador de la sucursal.
func (uc *EmployeeUseCase) Update(ctx context.Context, scope, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	var out *entity.Employee
	err := uc.tx.Run(ctx, func(ctx context.Context, r repository.Repos) error {
		e, err := r.Employees.Get(ctx, id)
		if err != nil {
			return err
		}
		if e == nil || (scope != "" && e.BranchID != scope) {
			return domain.ErrNotFound
		}
		b, err := r.Branches.Get(ctx, e.BranchID)
		if err != nil {
			return err
		}
		wasActive := e.Active
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.Invalidf("name es requerido")
			}
			e.Name = name
		}
		if in.Position != nil {
			e.Position = strings.TrimSpace(*in.Position)
		}
		if in.DietaryRestrictions != nil {
			e.DietaryRestrictions = strings.TrimSpace(*in.DietaryRestrictions)
		}
		if in.Active != nil {
			e.Active = *in.Active
		}
		e.UpdatedAt = uc.clock.Now()
		if err := r.Employees.Save(ctx, e); err != nil {
			return err
		}
		out = e
		return uc.syncCount(ctx, r, b, wasActive, e.Active)
	})
	if err != nil {
		return nil, err
	}
	resp := toEmployeeResponse(out)
	return &resp, nil
}

// SetActive activa o desactiva; activar y desactivar deja el contador igual que antes.
func (uc *EmployeeUseCase) SetActive(ctx context.Context, scope, id string, active bool) (*dto.EmployeeResponse, error) {
	return uc.Update(ctx, scope, id, dto.UpdateEmployeeRequest{Active: &active})
}

// Delete borra el empleado y, si estaba activo, descuenta uno de su sucursal.
func (uc *EmployeeUseCase) Delete(ctx context.Context, scope, id string) error {
	return uc.tx.Run(ctx, func(ctx context.Context, r repository.Repos) error {
		e, err := r.Employees.Get(ctx, id)
		if err != nil {
			return err
		}
		if e == nil || (scope != "" && e.BranchID != scope) {
			return domain.ErrNotFound
		}
		b, err := r.Branches.Get(ctx, e.BranchID)
		if err != nil {
			return err
		}
		if err := r.Employees.Delete(ctx, id); err != nil {
			return err
		}
		return uc.syncCount(ctx, r, b, e.Active, false)
	})
}

func (uc *EmployeeUseCase) syncCount(ctx context.Context, r repository.Repos, b *entity.Branch, before, after bool) error {
	if b == nil || before == after {
		return nil
	}
	if after {
		b.AdjustEmployeeCount(1)
	} else {
		b.AdjustEmployeeCount(-1)
	}
	b.UpdatedAt = uc.clock.Now()
	return r.Branches.Save(ctx, b)
}

// Import agrega a la sucursal los empleados de una nómina xlsx o csv en un solo lote.
// Las filas inválidas se informan en el resultado y no detienen la importación.
func (uc *EmployeeUseCase) Import(ctx context.Context, actorID, scope, branchID, filename string, data []byte) (*dto.ImportResult, error) {
	branchID, err := resolveBranch(scope, branchID)
	if err != nil {
		return nil, err
	}
	rows, rowErrs, err := uc.parser.ParseRoster(filename, data)
	if err != nil {
		return nil, domain.Invalidf("archivo de nómina: %v", err)
	}

	now := uc.clock.Now()
	result := &dto.ImportResult{BranchID: branchID, Errors: rowErrs}
	if result.Errors == nil {
		result.Errors = []dto.ImportRowError{}
	}
	emps := make([]*entity.Employee, 0, len(rows))
	for _, row := range rows {
		emps = append(emps, &entity.Employee{
			ID:                  uuid.New().String(),
			Name:                row.Name,
			BranchID:            branchID,
			Position:            row.Position,
			DietaryRestrictions: row.DietaryRestrictions,
			Active:              row.Active,
			CreatedBy:           actorID,
			CreatedAt:           now,
			UpdatedAt:           now,
		})
		if row.Active {
			result.Active++
		}
	}
	result.Imported = len(emps)
	result.Skipped = len(rowErrs)

	err = uc.tx.Run(ctx, func(ctx context.Context, r repository.Repos) error {
		b, err := r.Branches.Get(ctx, branchID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.Invalidf("la sucursal %q no existe", branchID)
		}
		if len(emps) == 0 {
			return nil
		}
		b.AdjustEmployeeCount(result.Active)
		b.UpdatedAt = now
		return r.Employees.SaveAll(ctx, emps, b)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("branch_id", branchID).Int("imported", result.Imported).Int("skipped", result.Skipped).Msg("nómina importada")
	return result, nil
}

// ExportCSV nómina de la sucursal con las mismas columnas que acepta Import, más el nombre de archivo.
func (uc *EmployeeUseCase) ExportCSV(ctx context.Context, scope, branchID string) ([]byte, string, error) {
	branchID, err := resolveBranch(scope, branchID)
	if err != nil {
		return nil, "", err
	}
	list, err := uc.employees.ListByBranch(ctx, branchID, false)
	if err != nil {
		return nil, "", err
	}
	rows := make([][]string, 0, len(list))
	for _, e := range list {
		active := "No"
		if e.Active {
			active = "Sí"
		}
		rows = append(rows, []string{e.Name, e.Position, e.DietaryRestrictions, active})
	}
	out, err := uc.encoder.Encode([]string{"Nombre", "Puesto", "Restricciones Alimentarias", "Activo"}, rows)
	if err != nil {
		return nil, "", err
	}
	return out, "empleados-" + branchID + ".csv", nil
}

// resolveBranch aplica el alcance del coordinador: solo puede operar en su sucursal.
func resolveBranch(scope, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	if scope != "" {
		if requested != "" && requested != scope {
			return "", domain.ErrForbidden
		}
		return scope, nil
	}
	if requested == "" {
		return "", domain.Invalidf("branch_id es requerido")
	}
	return requested, nil
}
