// Package state contenedor observable tipado para valores vivos de la aplicación.
package state

import "sync"

// Observable guarda un valor y avisa a los suscriptores de forma síncrona cuando cambia.
// Set con un valor igual al actual (según equal) no notifica.
type Observable[T any] struct {
	mu     sync.RWMutex
	value  T
	equal  func(a, b T) bool
	nextID int
	subs   map[int]func(T)
	order  []int
}

// New crea el observable con valor inicial. equal no puede ser nil.
func New[T any](initial T, equal func(a, b T) bool) *Observable[T] {
	return &Observable[T]{value: initial, equal: equal, subs: make(map[int]func(T))}
}

// Get devuelve el valor actual.
func (o *Observable[T]) Get() T {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.value
}

// Set reemplaza el valor. Devuelve true si cambió (y se notificó); un valor igual según
// equal se guarda igualmente, sin avisar.
func (o *Observable[T]) Set(v T) bool {
	o.mu.Lock()
	changed := !o.equal(o.value, v)
	o.value = v
	if !changed {
		o.mu.Unlock()
		return false
	}
	fns := make([]func(T), 0, len(o.order))
	for _, id := range o.order {
		fns = append(fns, o.subs[id])
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
	return true
}

// Subscribe registra fn; se llama en orden de suscripción tras cada cambio.
// La función devuelta cancela la suscripción.
func (o *Observable[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	id := o.nextID
	o.nextID++
	o.subs[id] = fn
	o.order = append(o.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			delete(o.subs, id)
			for i, x := range o.order {
				if x == id {
					o.order = append(o.order[:i], o.order[i+1:]...)
					break
				}
			}
		})
	}
}
