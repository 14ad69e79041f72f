package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Comedor-api/internal/domain/access"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
)

func TestCheck_SinIdentidad_RedirigeLogin(t *testing.T) {
	r := access.Check(nil, entity.RoleAdmin)
	assert.Equal(t, access.RedirectLogin, r.Decision)
	assert.Equal(t, "/index.html", r.Redirect)

	r = access.Check(&access.Principal{}, entity.RoleAdmin)
	assert.Equal(t, access.RedirectLogin, r.Decision)
}

func TestCheck_RolCoincide(t *testing.T) {
	p := &access.Principal{UserID: "u1", Role: entity.RoleCoordinator}
	r := access.Check(p, entity.RoleCoordinator)
	assert.True(t, r.Allowed())
	assert.Empty(t, r.Redirect)
}

func TestCheck_AliasDeRol(t *testing.T) {
	p := &access.Principal{UserID: "u1", Role: "Administrador"}
	assert.True(t, access.Check(p, entity.RoleAdmin).Allowed())
	assert.True(t, access.Check(p, "admin").Allowed())

	p.Role = "coordinador"
	assert.True(t, access.Check(p, "coordinator").Allowed())
}

func TestCheck_RolDistinto_RedirigeASuDashboard(t *testing.T) {
	cases := map[string]string{
		entity.RoleAdmin:       "/admin/dashboard.html",
		entity.RoleCoordinator: "/coordinador/dashboard.html",
		entity.RoleEmployee:    "/empleado/menu.html",
	}
	for role, want := range cases {
		required := entity.RoleAdmin
		if role == entity.RoleAdmin {
			required = entity.RoleEmployee
		}
		r := access.Check(&access.Principal{UserID: "u", Role: role}, required)
		assert.Equal(t, access.RedirectOwnDashboard, r.Decision, role)
		assert.Equal(t, want, r.Redirect, role)
	}
}

func TestCheck_RolDesconocido(t *testing.T) {
	r := access.Check(&access.Principal{UserID: "u", Role: "bodeguero"}, entity.RoleAdmin)
	assert.Equal(t, access.RedirectLogin, r.Decision)
}

func TestCheckAny(t *testing.T) {
	p := &access.Principal{UserID: "u", Role: entity.RoleAdmin}
	assert.True(t, access.CheckAny(p, entity.RoleCoordinator, entity.RoleAdmin).Allowed())
	assert.False(t, access.CheckAny(p, entity.RoleCoordinator).Allowed())
}
