package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/internal/domain/menu"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
)

var _ repository.MenuRepository = (*MenuRepo)(nil)

// MenuRepo menús semanales en weeklyMenus; lee menus como respaldo para documentos antiguos.
type MenuRepo struct {
	acc accessor
}

// NewMenuRepository construye el repositorio de menús.
func NewMenuRepository(store repository.DocumentStore) *MenuRepo {
	return &MenuRepo{acc: storeAccessor{store: store}}
}

// menuRecord forma almacenada: las claves de día pueden venir con tildes en documentos antiguos.
type menuRecord struct {
	Status             entity.MenuStatus         `json:"status"`
	ConfirmStart       *time.Time                `json:"confirm_start,omitempty"`
	ConfirmEnd         *time.Time                `json:"confirm_end,omitempty"`
	Days               map[string]entity.DayMenu `json:"days"`
	TotalEmployees     int                       `json:"total_employees"`
	ConfirmedEmployees int                       `json:"confirmed_employees"`
	ActualAttendees    int                       `json:"actual_attendees"`
	WasteReduction     decimal.Decimal           `json:"waste_reduction"`
	CreatedBy          string                    `json:"created_by,omitempty"`
	CreatedAt          time.Time                 `json:"created_at"`
	UpdatedAt          time.Time                 `json:"updated_at"`
}

func (r *MenuRepo) Get(ctx context.Context, weekID string) (*entity.WeeklyMenu, error) {
	doc, err := r.acc.get(ctx, repository.CollectionWeeklyMenus, weekID)
	if err != nil {
		return nil, fmt.Errorf("get menu: %w", err)
	}
	if doc == nil {
		doc, err = r.acc.get(ctx, repository.CollectionLegacyMenus, weekID)
		if err != nil {
			return nil, fmt.Errorf("get legacy menu: %w", err)
		}
	}
	if doc == nil {
		return nil, nil
	}
	return decodeMenu(doc)
}

func decodeMenu(doc *repository.Document) (*entity.WeeklyMenu, error) {
	var rec menuRecord
	if err := fromDocument(doc, &rec); err != nil {
		return nil, err
	}
	if rec.Status == "" {
		rec.Status = entity.MenuDraft
	}
	return &entity.WeeklyMenu{
		ID:                 doc.ID,
		Status:             rec.Status,
		ConfirmStart:       rec.ConfirmStart,
		ConfirmEnd:         rec.ConfirmEnd,
		Days:               menu.NormalizeDays(rec.Days),
		TotalEmployees:     rec.TotalEmployees,
		ConfirmedEmployees: rec.ConfirmedEmployees,
		ActualAttendees:    rec.ActualAttendees,
		WasteReduction:     rec.WasteReduction,
		CreatedBy:          rec.CreatedBy,
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
	}, nil
}

func (r *MenuRepo) Save(ctx context.Context, m *entity.WeeklyMenu) error {
	cp := *m
	cp.Days = menu.CanonicalDays(m.Days)
	fields, err := toFields(&cp)
	if err != nil {
		return err
	}
	if err := r.acc.set(ctx, repository.CollectionWeeklyMenus, m.ID, fields); err != nil {
		return fmt.Errorf("save menu: %w", err)
	}
	return nil
}

func (r *MenuRepo) List(ctx context.Context, statuses []entity.MenuStatus, limit int) ([]*entity.WeeklyMenu, error) {
	q := repository.Query{Collection: repository.CollectionWeeklyMenus, Limit: limit}
	if len(statuses) > 0 {
		values := make([]any, len(statuses))
		for i, s := range statuses {
			values[i] = string(s)
		}
		q.Filters = append(q.Filters, repository.In("status", values...))
	}
	docs, err := r.acc.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	out := make([]*entity.WeeklyMenu, 0, len(docs))
	for i := range docs {
		m, err := decodeMenu(&docs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *MenuRepo) UpdateStats(ctx context.Context, weekID string, stats repository.MenuStats) error {
	fields, err := toFields(struct {
		TotalEmployees     int             `json:"total_employees"`
		ConfirmedEmployees int             `json:"confirmed_employees"`
		WasteReduction     decimal.Decimal `json:"waste_reduction"`
	}{stats.TotalEmployees, stats.ConfirmedEmployees, stats.WasteReduction})
	if err != nil {
		return err
	}
	if err := r.acc.update(ctx, repository.CollectionWeeklyMenus, weekID, fields); err != nil {
		return fmt.Errorf("update menu stats: %w", err)
	}
	return nil
}
