// Package access decide si una identidad puede entrar a una sección según su rol.
package access

import (
	"strings"

	"github.com/jhoicas/Comedor-api/internal/domain/entity"
)

// Decision estado terminal de la verificación de acceso.
type Decision string

const (
	Granted              Decision = "GRANTED"
	RedirectLogin        Decision = "REDIRECT_LOGIN"
	RedirectOwnDashboard Decision = "REDIRECT_OWN_DASHBOARD"
)

// LoginPath punto de entrada de la aplicación.
const LoginPath = "/index.html"

var dashboards = map[string]string{
	entity.RoleAdmin:       "/admin/dashboard.html",
	entity.RoleCoordinator: "/coordinador/dashboard.html",
	entity.RoleEmployee:    "/empleado/menu.html",
}

var roleAliases = map[string]string{
	"admin":         entity.RoleAdmin,
	"administrador": entity.RoleAdmin,
	"administrator": entity.RoleAdmin,
	"coordinator":   entity.RoleCoordinator,
	"coordinador":   entity.RoleCoordinator,
	"coord":         entity.RoleCoordinator,
	"employee":      entity.RoleEmployee,
	"empleado":      entity.RoleEmployee,
}

// Principal identidad ya verificada de quien hace la petición.
type Principal struct {
	UserID    string
	Name      string
	Email     string
	Role      string
	BranchID  string
	SessionID string
}

// Result decisión más la ruta a la que debe ir el cliente cuando no es Granted.
type Result struct {
	Decision Decision `json:"decision"`
	Redirect string   `json:"redirect,omitempty"`
}

// Allowed indica si el resultado concede acceso.
func (r Result) Allowed() bool { return r.Decision == Granted }

// NormalizeRole traduce alias ("administrador", "Coordinador") al rol canónico; "" si no se reconoce.
func NormalizeRole(role string) string {
	return roleAliases[strings.ToLower(strings.TrimSpace(role))]
}

// DashboardFor página inicial del rol; LoginPath si el rol no se reconoce.
func DashboardFor(role string) string {
	if p, ok := dashboards[NormalizeRole(role)]; ok {
		return p
	}
	return LoginPath
}

// Check verifica que p tenga el rol requerido.
func Check(p *Principal, required string) Result {
	return CheckAny(p, required)
}

// CheckAny concede acceso si el rol de p coincide con alguno de los requeridos.
// Sin identidad, o con un rol desconocido, se redirige al login.
func CheckAny(p *Principal, required ...string) Result {
	if p == nil || p.UserID == "" {
		return Result{Decision: RedirectLogin, Redirect: LoginPath}
	}
	role := NormalizeRole(p.Role)
	if role == "" {
		return Result{Decision: RedirectLogin, Redirect: LoginPath}
	}
	for _, r := range required {
		if NormalizeRole(r) == role {
			return Result{Decision: Granted}
		}
	}
	return Result{Decision: RedirectOwnDashboard, Redirect: dashboards[role]}
}
