package documents

import (
	"context"
	"fmt"

	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo sucursales en la colección branches.
type BranchRepo struct {
	acc accessor
}

// NewBranchRepository construye el repositorio de sucursales.
func NewBranchRepository(store repository.DocumentStore) *BranchRepo {
	return &BranchRepo{acc: storeAccessor{store: store}}
}

func (r *BranchRepo) Get(ctx context.Context, id string) (*entity.Branch, error) {
	doc, err := r.acc.get(ctx, repository.CollectionBranches, id)
	if err != nil {
		return nil, fmt.Errorf("get branch: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	return decodeBranch(doc)
}

func decodeBranch(doc *repository.Document) (*entity.Branch, error) {
	var b entity.Branch
	if err := fromDocument(doc, &b); err != nil {
		return nil, err
	}
	b.ID = doc.ID
	if b.EmployeeCount < 0 {
		b.EmployeeCount = 0
	}
	return &b, nil
}

func (r *BranchRepo) Save(ctx context.Context, b *entity.Branch) error {
	fields, err := toFields(b)
	if err != nil {
		return err
	}
	if err := r.acc.set(ctx, repository.CollectionBranches, b.ID, fields); err != nil {
		return fmt.Errorf("save branch: %w", err)
	}
	return nil
}

func (r *BranchRepo) UpdateDetails(ctx context.Context, b *entity.Branch) error {
	all, err := toFields(b)
	if err != nil {
		return err
	}
	fields := map[string]any{
		"name":           all["name"],
		"coordinator_id": b.CoordinatorID,
		"updated_at":     all["updated_at"],
	}
	if err := r.acc.update(ctx, repository.CollectionBranches, b.ID, fields); err != nil {
		return fmt.Errorf("update branch: %w", err)
	}
	return nil
}

func (r *BranchRepo) List(ctx context.Context) ([]*entity.Branch, error) {
	docs, err := r.acc.query(ctx, repository.Query{Collection: repository.CollectionBranches})
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	out := make([]*entity.Branch, 0, len(docs))
	for i := range docs {
		b, err := decodeBranch(&docs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
