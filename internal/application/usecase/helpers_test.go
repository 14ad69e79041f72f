package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comedor-api/internal/application/dto"
	"github.com/jhoicas/Comedor-api/internal/application/ports"
	"github.com/jhoicas/Comedor-api/internal/application/usecase"
	"github.com/jhoicas/Comedor-api/internal/domain/confirmation"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/documents"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/memory"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

// viernes 16/10/2026 12:00: la ventana por defecto de la semana del 19 está abierta
// (jueves 15 16:10 a sábado 17 10:00).
var fridayNoon = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

const (
	thisWeek = "2026-10-12"
	nextWeek = "2026-10-19"
)

// ─── Dobles ──────────────────────────────────────────────────────────────────

type eventRecorder struct {
	mu     sync.Mutex
	events []ports.Event
}

func (r *eventRecorder) Publish(ctx context.Context, e ports.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *eventRecorder) Close() error { return nil }

func (r *eventRecorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type notifierRecorder struct {
	weeks []string
}

func (n *notifierRecorder) NotifyMenuPublished(ctx context.Context, weekID, label string) error {
	n.weeks = append(n.weeks, weekID)
	return nil
}

// ─── Fixture ─────────────────────────────────────────────────────────────────

type fixture struct {
	now   time.Time
	clock usecase.Clock
	store *memory.DocumentStore

	menuRepo         *documents.MenuRepo
	employeeRepo     *documents.EmployeeRepo
	branchRepo       *documents.BranchRepo
	confirmationRepo *documents.ConfirmationRepo
	userRepo         *documents.UserRepo

	events   *eventRecorder
	notifier *notifierRecorder

	settings      *usecase.SettingsUseCase
	menus         *usecase.MenuUseCase
	employees     *usecase.EmployeeUseCase
	branches      *usecase.BranchUseCase
	confirmations *usecase.ConfirmationUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{now: fridayNoon, store: memory.NewDocumentStore()}
	f.clock = usecase.Clock{Loc: time.UTC, NowFn: func() time.Time { return f.now }}
	log := logger.Nop()

	f.menuRepo = documents.NewMenuRepository(f.store)
	f.employeeRepo = documents.NewEmployeeRepository(f.store)
	f.branchRepo = documents.NewBranchRepository(f.store)
	f.confirmationRepo = documents.NewConfirmationRepository(f.store)
	f.userRepo = documents.NewUserRepository(f.store)
	f.events = &eventRecorder{}
	f.notifier = &notifierRecorder{}

	f.settings = usecase.NewSettingsUseCase(documents.NewSettingsRepository(f.store), entity.DefaultSettings(), f.clock, log)
	_, err := f.settings.Load(context.Background())
	require.NoError(t, err)

	ev := confirmation.StrictEvaluator{}
	f.menus = usecase.NewMenuUseCase(f.menuRepo, f.settings, ev, f.events, f.notifier, f.clock, log)
	f.employees = usecase.NewEmployeeUseCase(f.employeeRepo, f.branchRepo, documents.NewTxRunner(f.store),
		spreadsheet.RosterParser{}, spreadsheet.CSVEncoder{}, f.clock, log)
	f.branches = usecase.NewBranchUseCase(f.branchRepo, f.userRepo, f.clock, log)
	f.confirmations = usecase.NewConfirmationUseCase(f.confirmationRepo, f.menuRepo, f.employeeRepo,
		f.settings, ev, f.events, spreadsheet.CSVEncoder{}, f.clock, log)
	return f
}

func (f *fixture) branch(t *testing.T, id, name string) {
	t.Helper()
	require.NoError(t, f.branchRepo.Save(context.Background(), &entity.Branch{ID: id, Name: name, CreatedAt: f.now, UpdatedAt: f.now}))
}

func (f *fixture) employee(t *testing.T, branchID, name string) string {
	t.Helper()
	e, err := f.employees.Create(context.Background(), "admin-1", "", dto.CreateEmployeeRequest{Name: name, BranchID: branchID})
	require.NoError(t, err)
	return e.ID
}

func (f *fixture) branchCount(t *testing.T, id string) int {
	t.Helper()
	b, err := f.branchRepo.Get(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, b)
	return b.EmployeeCount
}

func fullWeek() map[string][]dto.MenuItemDTO {
	return map[string][]dto.MenuItemDTO{
		"Lunes":     {{Name: "Pozole"}},
		"Martes":    {{Name: "Enchiladas"}},
		"Miércoles": {{Name: "Mole"}},
		"jueves":    {{Name: "Tacos"}},
		"VIERNES":   {{Name: "Pescado"}},
	}
}

// publishedMenu menú completo y publicado con la ventana por defecto.
func (f *fixture) publishedMenu(t *testing.T, weekID string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.menus.Create(ctx, "admin-1", dto.CreateMenuRequest{WeekStart: weekID, Days: fullWeek()})
	require.NoError(t, err)
	_, err = f.menus.Publish(ctx, "admin-1", weekID)
	require.NoError(t, err)
}
