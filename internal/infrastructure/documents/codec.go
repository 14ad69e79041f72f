// Package documents implementa los repositorios tipados sobre repository.DocumentStore,
// con cualquiera de sus backends.
package documents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
)

// toFields convierte una entidad a campos de documento usando sus etiquetas json.
func toFields(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return fields, nil
}

// fromDocument decodifica los campos del documento en out.
func fromDocument(doc *repository.Document, out any) error {
	b, err := json.Marshal(doc.Fields)
	if err != nil {
		return fmt.Errorf("decode document %s: %w", doc.ID, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode document %s: %w", doc.ID, err)
	}
	return nil
}

// accessor une el almacén y la transacción para que los repositorios sirvan en ambos casos.
type accessor interface {
	get(ctx context.Context, collection, id string) (*repository.Document, error)
	set(ctx context.Context, collection, id string, fields map[string]any) error
	update(ctx context.Context, collection, id string, fields map[string]any) error
	remove(ctx context.Context, collection, id string) error
	query(ctx context.Context, q repository.Query) ([]repository.Document, error)
	batch(ctx context.Context, ops []repository.WriteOp) error
}

type storeAccessor struct{ store repository.DocumentStore }

func (a storeAccessor) get(ctx context.Context, c, id string) (*repository.Document, error) {
	return a.store.Get(ctx, c, id)
}

func (a storeAccessor) set(ctx context.Context, c, id string, f map[string]any) error {
	return a.store.Set(ctx, c, id, f)
}

func (a storeAccessor) update(ctx context.Context, c, id string, f map[string]any) error {
	return a.store.Update(ctx, c, id, f)
}

func (a storeAccessor) remove(ctx context.Context, c, id string) error {
	return a.store.Delete(ctx, c, id)
}

func (a storeAccessor) query(ctx context.Context, q repository.Query) ([]repository.Document, error) {
	return a.store.Query(ctx, q)
}

func (a storeAccessor) batch(ctx context.Context, ops []repository.WriteOp) error {
	return a.store.Batch(ctx, ops)
}

type txAccessor struct{ tx repository.Tx }

func (a txAccessor) get(ctx context.Context, c, id string) (*repository.Document, error) {
	return a.tx.Get(ctx, c, id)
}

func (a txAccessor) set(_ context.Context, c, id string, f map[string]any) error {
	return a.tx.Set(c, id, f)
}

func (a txAccessor) update(_ context.Context, c, id string, f map[string]any) error {
	return a.tx.Update(c, id, f)
}

func (a txAccessor) remove(_ context.Context, c, id string) error {
	return a.tx.Delete(c, id)
}

func (a txAccessor) query(context.Context, repository.Query) ([]repository.Document, error) {
	return nil, domain.ErrNotSupported.WithCause(fmt.Errorf("consultas dentro de una transacción"))
}

func (a txAccessor) batch(_ context.Context, ops []repository.WriteOp) error {
	for _, op := range ops {
		var err error
		switch op.Kind {
		case repository.WriteSet:
			err = a.tx.Set(op.Collection, op.ID, op.Fields)
		case repository.WriteUpdate:
			err = a.tx.Update(op.Collection, op.ID, op.Fields)
		case repository.WriteDelete:
			err = a.tx.Delete(op.Collection, op.ID)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// TxRunner ejecuta callbacks con repositorios atados a una transacción del almacén.
type TxRunner struct {
	store repository.DocumentStore
}

var _ repository.TxRunner = (*TxRunner)(nil)

// NewTxRunner construye el runner con el almacén.
func NewTxRunner(store repository.DocumentStore) *TxRunner {
	return &TxRunner{store: store}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y confirma si fn no falla.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos repository.Repos) error) error {
	return r.store.RunTransaction(ctx, func(ctx context.Context, tx repository.Tx) error {
		acc := txAccessor{tx: tx}
		return fn(ctx, repository.Repos{
			Menus:         &MenuRepo{acc: acc},
			Employees:     &EmployeeRepo{acc: acc},
			Branches:      &BranchRepo{acc: acc},
			Confirmations: &ConfirmationRepo{acc: acc},
			Users:         &UserRepo{acc: acc},
		})
	})
}
