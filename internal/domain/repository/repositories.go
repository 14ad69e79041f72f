package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comedor-api/internal/domain/entity"
)

// Los repositorios devuelven (nil, nil) cuando el documento no existe.
// Dentro de una transacción los métodos de listado devuelven domain.ErrNotSupported.

// MenuStats contadores agregados de un menú semanal.
type MenuStats struct {
	TotalEmployees     int
	ConfirmedEmployees int
	WasteReduction     decimal.Decimal
}

// MenuRepository puerto de persistencia de WeeklyMenu.
type MenuRepository interface {
	Get(ctx context.Context, weekID string) (*entity.WeeklyMenu, error)
	Save(ctx context.Context, m *entity.WeeklyMenu) error
	List(ctx context.Context, statuses []entity.MenuStatus, limit int) ([]*entity.WeeklyMenu, error)
	UpdateStats(ctx context.Context, weekID string, stats MenuStats) error
}

// EmployeeRepository puerto de persistencia de Employee.
type EmployeeRepository interface {
	Get(ctx context.Context, id string) (*entity.Employee, error)
	Save(ctx context.Context, e *entity.Employee) error
	Delete(ctx context.Context, id string) error
	// ListByBranch empleados de la sucursal; onlyActive filtra los inactivos.
	ListByBranch(ctx context.Context, branchID string, onlyActive bool) ([]*entity.Employee, error)
	ListActive(ctx context.Context) ([]*entity.Employee, error)
	// SaveAll guarda los empleados y el contador de la sucursal en un solo lote.
	SaveAll(ctx context.Context, employees []*entity.Employee, branch *entity.Branch) error
}

// BranchRepository puerto de persistencia de Branch.
type BranchRepository interface {
	Get(ctx context.Context, id string) (*entity.Branch, error)
	Save(ctx context.Context, b *entity.Branch) error
	// UpdateDetails escribe nombre, coordinador y fecha sin tocar employee_count.
	UpdateDetails(ctx context.Context, b *entity.Branch) error
	List(ctx context.Context) ([]*entity.Branch, error)
}

// ConfirmationRepository puerto de persistencia de Confirmation.
type ConfirmationRepository interface {
	Get(ctx context.Context, weekID, branchID string) (*entity.Confirmation, error)
	Save(ctx context.Context, c *entity.Confirmation) error
	ListByWeek(ctx context.Context, weekID string) ([]*entity.Confirmation, error)
}

// UserRepository puerto de persistencia de User.
type UserRepository interface {
	Get(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Save(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
	// List usuarios; role vacío devuelve todos.
	List(ctx context.Context, role string) ([]*entity.User, error)
}

// SettingsRepository documento único de configuración.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.Settings, error)
	Save(ctx context.Context, s *entity.Settings) error
}

// CredentialRepository hashes del proveedor de autenticación local.
type CredentialRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.Credential, error)
	Save(ctx context.Context, c *entity.Credential) error
	Delete(ctx context.Context, userID string) error
}

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Menus         MenuRepository
	Employees     EmployeeRepository
	Branches      BranchRepository
	Confirmations ConfirmationRepository
	Users         UserRepository
}

// TxRunner ejecuta fn dentro de una transacción del almacén y confirma si fn no falla.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}

// SessionStore sesiones del lado del servidor (memoria o Redis).
type SessionStore interface {
	Save(ctx context.Context, s *entity.Session) error
	// Get devuelve (nil, nil) si la sesión no existe o ya venció.
	Get(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}
