package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Comedor-api/internal/application/state"
)

func eqInt(a, b int) bool { return a == b }

func TestObservable_NotificaSoloCambios(t *testing.T) {
	o := state.New(5, eqInt)
	var seen []int
	o.Subscribe(func(v int) { seen = append(seen, v) })

	assert.False(t, o.Set(5), "mismo valor no notifica")
	assert.True(t, o.Set(7))
	assert.False(t, o.Set(7))
	assert.True(t, o.Set(5))

	assert.Equal(t, []int{7, 5}, seen)
	assert.Equal(t, 5, o.Get())
}

func TestObservable_OrdenYCancelacion(t *testing.T) {
	o := state.New(0, eqInt)
	var calls []string
	unsubA := o.Subscribe(func(int) { calls = append(calls, "a") })
	o.Subscribe(func(int) { calls = append(calls, "b") })

	o.Set(1)
	unsubA()
	unsubA()
	o.Set(2)

	assert.Equal(t, []string{"a", "b", "b"}, calls)
}

func TestObservable_SuscriptorPuedeLeer(t *testing.T) {
	o := state.New("draft", func(a, b string) bool { return a == b })
	var got string
	o.Subscribe(func(string) { got = o.Get() })
	o.Set("published")
	assert.Equal(t, "published", got)
}
