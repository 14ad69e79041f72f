package confirmation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Comedor-api/internal/domain/confirmation"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
)

func ptr(t time.Time) *time.Time { return &t }

func TestEvaluate_AlrededorDeT(t *testing.T) {
	T := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
	start, end := ptr(T.Add(-time.Hour)), ptr(T.Add(time.Hour))

	assert.Equal(t, confirmation.WindowOpen, confirmation.Evaluate(T, start, end))
	assert.Equal(t, confirmation.WindowNotYetOpen, confirmation.Evaluate(T.Add(-2*time.Hour), start, end))
	assert.Equal(t, confirmation.WindowClosed, confirmation.Evaluate(T.Add(2*time.Hour), start, end))
}

func TestEvaluate_ExtremosIncluidos(t *testing.T) {
	T := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
	start, end := ptr(T), ptr(T.Add(time.Hour))
	assert.Equal(t, confirmation.WindowOpen, confirmation.Evaluate(*start, start, end))
	assert.Equal(t, confirmation.WindowOpen, confirmation.Evaluate(*end, start, end))
}

func TestEvaluate_SinVentana(t *testing.T) {
	T := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, confirmation.WindowUndefined, confirmation.Evaluate(T, nil, ptr(T)))
	assert.Equal(t, confirmation.WindowUndefined, confirmation.Evaluate(T, ptr(T), nil))
	assert.Equal(t, confirmation.WindowUndefined, confirmation.StrictEvaluator{}.Evaluate(T, nil, nil))
	assert.False(t, confirmation.WindowUndefined.Editable())
}

func TestOverrideEvaluator(t *testing.T) {
	T := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
	ev := confirmation.OverrideEvaluator{}
	assert.Equal(t, confirmation.WindowOpen, ev.Evaluate(T, nil, nil))
	// con ventana configurada se respeta
	assert.Equal(t, confirmation.WindowClosed, ev.Evaluate(T, ptr(T.Add(-2*time.Hour)), ptr(T.Add(-time.Hour))))
}

func TestDefaultWindow(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	monday := time.Date(2026, time.October, 19, 0, 0, 0, 0, bogota)

	w := confirmation.DefaultWindow(monday, entity.DefaultSettings())
	assert.Equal(t, time.Date(2026, time.October, 15, 16, 10, 0, 0, bogota), w.Start)
	assert.Equal(t, time.Thursday, w.Start.Weekday())
	assert.Equal(t, time.Date(2026, time.October, 17, 10, 0, 0, 0, bogota), w.End)
	assert.Equal(t, time.Saturday, w.End.Weekday())

	// cualquier día de la semana produce la misma ventana
	assert.Equal(t, w, confirmation.DefaultWindow(monday.AddDate(0, 0, 3), entity.DefaultSettings()))
}

func TestDefaultWindow_Configurable(t *testing.T) {
	s := entity.DefaultSettings()
	s.WindowStartOffsetDays, s.WindowStartHour, s.WindowStartMinute = 7, 8, 0
	s.WindowEndOffsetDays, s.WindowEndHour, s.WindowEndMinute = 1, 18, 30
	monday := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)

	w := confirmation.DefaultWindow(monday, s)
	assert.Equal(t, time.Date(2026, time.October, 12, 8, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2026, time.October, 18, 18, 30, 0, 0, time.UTC), w.End)
}
