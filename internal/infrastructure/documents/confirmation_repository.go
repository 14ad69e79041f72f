package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/internal/domain/menu"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
)

var _ repository.ConfirmationRepository = (*ConfirmationRepo)(nil)

// ConfirmationRepo confirmaciones por semana y sucursal; id {weekId}_{branchId}.
type ConfirmationRepo struct {
	acc accessor
}

// NewConfirmationRepository construye el repositorio de confirmaciones.
func NewConfirmationRepository(store repository.DocumentStore) *ConfirmationRepo {
	return &ConfirmationRepo{acc: storeAccessor{store: store}}
}

type confirmationRecord struct {
	WeekID    string `json:"week_id"`
	BranchID  string `json:"branch_id"`
	Employees []struct {
		EmployeeID string   `json:"employee_id"`
		Name       string   `json:"name"`
		Days       []string `json:"days"`
	} `json:"employees"`
	UpdatedBy string    `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *ConfirmationRepo) Get(ctx context.Context, weekID, branchID string) (*entity.Confirmation, error) {
	doc, err := r.acc.get(ctx, repository.CollectionConfirmations, entity.ConfirmationID(weekID, branchID))
	if err != nil {
		return nil, fmt.Errorf("get confirmation: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	return decodeConfirmation(doc)
}

// decodeConfirmation normaliza los días guardados y descarta los que no son canónicos.
func decodeConfirmation(doc *repository.Document) (*entity.Confirmation, error) {
	var rec confirmationRecord
	if err := fromDocument(doc, &rec); err != nil {
		return nil, err
	}
	c := &entity.Confirmation{
		ID:        doc.ID,
		WeekID:    rec.WeekID,
		BranchID:  rec.BranchID,
		Employees: make([]entity.EmployeeDays, 0, len(rec.Employees)),
		UpdatedBy: rec.UpdatedBy,
		UpdatedAt: rec.UpdatedAt,
	}
	for _, e := range rec.Employees {
		days, _ := menu.ParseDays(e.Days)
		c.Employees = append(c.Employees, entity.EmployeeDays{EmployeeID: e.EmployeeID, Name: e.Name, Days: days})
	}
	return c, nil
}

func (r *ConfirmationRepo) Save(ctx context.Context, c *entity.Confirmation) error {
	c.ID = entity.ConfirmationID(c.WeekID, c.BranchID)
	fields, err := toFields(c)
	if err != nil {
		return err
	}
	if err := r.acc.set(ctx, repository.CollectionConfirmations, c.ID, fields); err != nil {
		return fmt.Errorf("save confirmation: %w", err)
	}
	return nil
}

func (r *ConfirmationRepo) ListByWeek(ctx context.Context, weekID string) ([]*entity.Confirmation, error) {
	docs, err := r.acc.query(ctx, repository.Query{
		Collection: repository.CollectionConfirmations,
		Filters:    []repository.Filter{repository.Eq("week_id", weekID)},
	})
	if err != nil {
		return nil, fmt.Errorf("list confirmations: %w", err)
	}
	out := make([]*entity.Confirmation, 0, len(docs))
	for i := range docs {
		c, err := decodeConfirmation(&docs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
