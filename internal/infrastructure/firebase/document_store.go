package firebase

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)

// DocumentStore almacén documental sobre Cloud Firestore.
type DocumentStore struct {
	client *firestore.Client
}

// NewDocumentStore abre el cliente de Firestore de la app.
func NewDocumentStore(ctx context.Context, app *firebase.App) (*DocumentStore, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get firestore client: %w", err)
	}
	return &DocumentStore{client: client}, nil
}

func (s *DocumentStore) ref(collection, id string) *firestore.DocumentRef {
	return s.client.Collection(collection).Doc(id)
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*repository.Document, error) {
	snap, err := s.ref(collection, id).Get(ctx)
	return snapshotToDocument(snap, err)
}

func (s *DocumentStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	if _, err := s.ref(collection, id).Set(ctx, fields); err != nil {
		return mapError("set document", err)
	}
	return nil
}

func (s *DocumentStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if _, err := s.ref(collection, id).Update(ctx, toUpdates(fields)); err != nil {
		return mapError("update document", err)
	}
	return nil
}

func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.ref(collection, id).Delete(ctx); err != nil {
		return mapError("delete document", err)
	}
	return nil
}

// Query ordena por id en memoria: ordenar por __name__ junto con filtros exige índices compuestos.
func (s *DocumentStore) Query(ctx context.Context, q repository.Query) ([]repository.Document, error) {
	query := s.client.Collection(q.Collection).Query
	for _, f := range q.Filters {
		switch f.Op {
		case repository.OpEqual:
			query = query.Where(f.Field, "==", f.Value)
		case repository.OpIn:
			values, ok := f.Value.([]any)
			if !ok || len(values) == 0 {
				return nil, domain.Invalidf("filtro in sobre %q requiere una lista no vacía", f.Field)
			}
			query = query.Where(f.Field, "in", values)
		default:
			return nil, domain.Invalidf("operador no soportado: %s", f.Op)
		}
	}
	snaps, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, mapError("query documents", err)
	}
	out := make([]repository.Document, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, repository.Document{ID: snap.Ref.ID, Fields: snap.Data()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// Batch se ejecuta como transacción para que un Update sobre un documento inexistente aborte todo.
func (s *DocumentStore) Batch(ctx context.Context, ops []repository.WriteOp) error {
	return s.RunTransaction(ctx, func(ctx context.Context, tx repository.Tx) error {
		for _, op := range ops {
			var err error
			switch op.Kind {
			case repository.WriteSet:
				err = tx.Set(op.Collection, op.ID, op.Fields)
			case repository.WriteUpdate:
				err = tx.Update(op.Collection, op.ID, op.Fields)
			case repository.WriteDelete:
				err = tx.Delete(op.Collection, op.ID)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *DocumentStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	var fnErr error
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		fnErr = fn(ctx, &fsTx{store: s, tx: tx})
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return mapError("transaction", err)
	}
	return nil
}

func (s *DocumentStore) Close() error {
	return s.client.Close()
}

type fsTx struct {
	store *DocumentStore
	tx    *firestore.Transaction
}

func (t *fsTx) Get(_ context.Context, collection, id string) (*repository.Document, error) {
	snap, err := t.tx.Get(t.store.ref(collection, id))
	return snapshotToDocument(snap, err)
}

func (t *fsTx) Set(collection, id string, fields map[string]any) error {
	return t.tx.Set(t.store.ref(collection, id), fields)
}

func (t *fsTx) Update(collection, id string, fields map[string]any) error {
	return t.tx.Update(t.store.ref(collection, id), toUpdates(fields))
}

func (t *fsTx) Delete(collection, id string) error {
	return t.tx.Delete(t.store.ref(collection, id))
}

func snapshotToDocument(snap *firestore.DocumentSnapshot, err error) (*repository.Document, error) {
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, mapError("get document", err)
	}
	if snap == nil || !snap.Exists() {
		return nil, nil
	}
	return &repository.Document{ID: snap.Ref.ID, Fields: snap.Data()}, nil
}

func toUpdates(fields map[string]any) []firestore.Update {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	updates := make([]firestore.Update, 0, len(keys))
	for _, k := range keys {
		updates = append(updates, firestore.Update{Path: k, Value: fields[k]})
	}
	return updates
}

// mapError traduce los códigos gRPC de Firestore a errores del dominio.
func mapError(op string, err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return domain.ErrNotFound.WithCause(fmt.Errorf("%s: %w", op, err))
	case codes.PermissionDenied:
		return &domain.ProviderError{Provider: "firestore", Code: "permission-denied", Err: err}
	case codes.Unavailable, codes.DeadlineExceeded:
		return domain.ErrUnavailable.WithCause(fmt.Errorf("%s: %w", op, err))
	default:
		return domain.DatabaseError(op, err)
	}
}
