package documents

import (
	"context"
	"fmt"

	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo empleados en la colección employees.
type EmployeeRepo struct {
	acc accessor
}

// NewEmployeeRepository construye el repositorio de empleados.
func NewEmployeeRepository(store repository.DocumentStore) *EmployeeRepo {
	return &EmployeeRepo{acc: storeAccessor{store: store}}
}

func (r *EmployeeRepo) Get(ctx context.Context, id string) (*entity.Employee, error) {
	doc, err := r.acc.get(ctx, repository.CollectionEmployees, id)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	return decodeEmployee(doc)
}

func decodeEmployee(doc *repository.Document) (*entity.Employee, error) {
	var e entity.Employee
	if err := fromDocument(doc, &e); err != nil {
		return nil, err
	}
	e.ID = doc.ID
	return &e, nil
}

func (r *EmployeeRepo) Save(ctx context.Context, e *entity.Employee) error {
	fields, err := toFields(e)
	if err != nil {
		return err
	}
	if err := r.acc.set(ctx, repository.CollectionEmployees, e.ID, fields); err != nil {
		return fmt.Errorf("save employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	if err := r.acc.remove(ctx, repository.CollectionEmployees, id); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) ListByBranch(ctx context.Context, branchID string, onlyActive bool) ([]*entity.Employee, error) {
	filters := []repository.Filter{repository.Eq("branch_id", branchID)}
	if onlyActive {
		filters = append(filters, repository.Eq("active", true))
	}
	return r.list(ctx, filters)
}

func (r *EmployeeRepo) ListActive(ctx context.Context) ([]*entity.Employee, error) {
	return r.list(ctx, []repository.Filter{repository.Eq("active", true)})
}

func (r *EmployeeRepo) list(ctx context.Context, filters []repository.Filter) ([]*entity.Employee, error) {
	docs, err := r.acc.query(ctx, repository.Query{Collection: repository.CollectionEmployees, Filters: filters})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	out := make([]*entity.Employee, 0, len(docs))
	for i := range docs {
		e, err := decodeEmployee(&docs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *EmployeeRepo) SaveAll(ctx context.Context, employees []*entity.Employee, branch *entity.Branch) error {
	ops := make([]repository.WriteOp, 0, len(employees)+1)
	for _, e := range employees {
		fields, err := toFields(e)
		if err != nil {
			return err
		}
		ops = append(ops, repository.SetOp(repository.CollectionEmployees, e.ID, fields))
	}
	if branch != nil {
		fields, err := toFields(branch)
		if err != nil {
			return err
		}
		ops = append(ops, repository.SetOp(repository.CollectionBranches, branch.ID, fields))
	}
	if err := r.acc.batch(ctx, ops); err != nil {
		return fmt.Errorf("save employees batch: %w", err)
	}
	return nil
}
