package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Comedor-api/internal/domain/entity"
)

func TestConfirmableDays(t *testing.T) {
	assert.Equal(t, []entity.Weekday{entity.Lunes, entity.Martes, entity.Miercoles, entity.Jueves, entity.Viernes},
		entity.ConfirmableDays(5))
	assert.Len(t, entity.ConfirmableDays(7), 7)
	assert.Len(t, entity.ConfirmableDays(0), 5, "valor desconocido cae a 5")
}

func TestIsConfirmable(t *testing.T) {
	assert.True(t, entity.IsConfirmable(entity.Viernes, 5))
	assert.False(t, entity.IsConfirmable(entity.Sabado, 5))
	assert.True(t, entity.IsConfirmable(entity.Domingo, 7))
	assert.False(t, entity.IsConfirmable(entity.Weekday("Miércoles"), 7))
}

func TestBranch_AdjustEmployeeCountNoNegativo(t *testing.T) {
	b := entity.Branch{EmployeeCount: 1}
	b.AdjustEmployeeCount(-3)
	assert.Equal(t, 0, b.EmployeeCount)
	b.AdjustEmployeeCount(2)
	assert.Equal(t, 2, b.EmployeeCount)
}
