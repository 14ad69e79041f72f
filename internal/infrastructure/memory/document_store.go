// Package memory implementa los puertos de persistencia en memoria (desarrollo y pruebas).
package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)

// DocumentStore almacén documental en memoria. Un mutex serializa escrituras y transacciones.
type DocumentStore struct {
	mu   sync.Mutex
	data map[string]map[string]map[string]any
}

// NewDocumentStore crea un almacén vacío.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{data: make(map[string]map[string]map[string]any)}
}

// Get devuelve una copia del documento o (nil, nil).
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*repository.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(collection, id), nil
}

func (s *DocumentStore) get(collection, id string) *repository.Document {
	f, ok := s.data[collection][id]
	if !ok {
		return nil
	}
	return &repository.Document{ID: id, Fields: cloneFields(f)}
}

// Set sobrescribe el documento.
func (s *DocumentStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply([]repository.WriteOp{repository.SetOp(collection, id, fields)})
}

// Update mezcla campos de primer nivel.
func (s *DocumentStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply([]repository.WriteOp{repository.UpdateOp(collection, id, fields)})
}

// Delete borra el documento si existe.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply([]repository.WriteOp{repository.DeleteOp(collection, id)})
}

// Query filtra la colección y ordena por id.
func (s *DocumentStore) Query(ctx context.Context, q repository.Query) ([]repository.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.data[q.Collection]))
	for id := range s.data[q.Collection] {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := []repository.Document{}
	for _, id := range ids {
		f := s.data[q.Collection][id]
		ok, err := matches(f, q.Filters)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out = append(out, repository.Document{ID: id, Fields: cloneFields(f)})
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

// Batch aplica todas las escrituras o ninguna.
func (s *DocumentStore) Batch(ctx context.Context, ops []repository.WriteOp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(ops)
}

// RunTransaction ejecuta fn con el almacén bloqueado; las escrituras se aplican al final si fn no falla.
func (s *DocumentStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.apply(tx.ops)
}

// Close no hace nada.
func (s *DocumentStore) Close() error { return nil }

// apply valida todo el lote antes de escribir. Debe llamarse con mu tomado.
func (s *DocumentStore) apply(ops []repository.WriteOp) error {
	exists := func(c, id string) bool {
		_, ok := s.data[c][id]
		return ok
	}
	// simula el lote para validar los Update contra el estado intermedio
	pending := map[string]bool{}
	for _, op := range ops {
		if op.Collection == "" || op.ID == "" {
			return domain.Invalidf("colección e id son requeridos")
		}
		key := op.Collection + "/" + op.ID
		switch op.Kind {
		case repository.WriteSet:
			pending[key] = true
		case repository.WriteDelete:
			pending[key] = false
		case repository.WriteUpdate:
			alive, seen := pending[key]
			if (seen && !alive) || (!seen && !exists(op.Collection, op.ID)) {
				return domain.ErrNotFound.WithCause(fmt.Errorf("%s no existe", key))
			}
		default:
			return fmt.Errorf("tipo de escritura desconocido: %d", op.Kind)
		}
	}

	for _, op := range ops {
		col := s.data[op.Collection]
		if col == nil {
			col = make(map[string]map[string]any)
			s.data[op.Collection] = col
		}
		switch op.Kind {
		case repository.WriteSet:
			col[op.ID] = cloneFields(op.Fields)
		case repository.WriteUpdate:
			cur := col[op.ID]
			for k, v := range cloneFields(op.Fields) {
				cur[k] = v
			}
		case repository.WriteDelete:
			delete(col, op.ID)
		}
	}
	return nil
}

type memTx struct {
	store *DocumentStore
	ops   []repository.WriteOp
}

func (t *memTx) Get(ctx context.Context, collection, id string) (*repository.Document, error) {
	if len(t.ops) > 0 {
		return nil, fmt.Errorf("lectura %s/%s después de una escritura en la transacción", collection, id)
	}
	return t.store.get(collection, id), nil
}

func (t *memTx) Set(collection, id string, fields map[string]any) error {
	t.ops = append(t.ops, repository.SetOp(collection, id, fields))
	return nil
}

func (t *memTx) Update(collection, id string, fields map[string]any) error {
	t.ops = append(t.ops, repository.UpdateOp(collection, id, fields))
	return nil
}

func (t *memTx) Delete(collection, id string) error {
	t.ops = append(t.ops, repository.DeleteOp(collection, id))
	return nil
}

func matches(fields map[string]any, filters []repository.Filter) (bool, error) {
	for _, f := range filters {
		v, ok := fields[f.Field]
		if !ok {
			return false, nil
		}
		switch f.Op {
		case repository.OpEqual:
			if !sameValue(v, f.Value) {
				return false, nil
			}
		case repository.OpIn:
			values, ok := f.Value.([]any)
			if !ok {
				return false, domain.Invalidf("filtro in sobre %q requiere una lista", f.Field)
			}
			found := false
			for _, candidate := range values {
				if sameValue(v, candidate) {
					found = true
					break
				}
			}
			if !found {
				return false, nil
			}
		default:
			return false, domain.Invalidf("operador no soportado: %s", f.Op)
		}
	}
	return true, nil
}

// sameValue compara por su forma JSON: 3 == 3.0 y "a" == "a" sin importar el tipo Go.
func sameValue(a, b any) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	return errA == nil && errB == nil && bytes.Equal(ja, jb)
}

func cloneFields(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return cloneFields(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
