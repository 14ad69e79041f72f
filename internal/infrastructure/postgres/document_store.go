package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)

// querier lo cumplen tanto *pgxpool.Pool como pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DocumentStore documentos JSONB en la tabla documents(collection, id, data).
type DocumentStore struct {
	pool *pgxpool.Pool
}

// NewDocumentStore construye el adaptador sobre el pool.
func NewDocumentStore(pool *pgxpool.Pool) *DocumentStore {
	return &DocumentStore{pool: pool}
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*repository.Document, error) {
	return getDocument(ctx, s.pool, collection, id, false)
}

func (s *DocumentStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	return setDocument(ctx, s.pool, collection, id, fields)
}

func (s *DocumentStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	return updateDocument(ctx, s.pool, collection, id, fields)
}

func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	return deleteDocument(ctx, s.pool, collection, id)
}

func (s *DocumentStore) Query(ctx context.Context, q repository.Query) ([]repository.Document, error) {
	sql, args, err := buildQuery(q)
	if err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, domain.DatabaseError("query documents", err)
	}
	defer rows.Close()

	out := []repository.Document{}
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, domain.DatabaseError("scan document", err)
		}
		fields, err := decodeData(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, repository.Document{ID: id, Fields: fields})
	}
	if err := rows.Err(); err != nil {
		return nil, domain.DatabaseError("query documents", err)
	}
	return out, nil
}

// Batch aplica las escrituras en una transacción.
func (s *DocumentStore) Batch(ctx context.Context, ops []repository.WriteOp) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		for _, op := range ops {
			var err error
			switch op.Kind {
			case repository.WriteSet:
				err = setDocument(ctx, tx, op.Collection, op.ID, op.Fields)
			case repository.WriteUpdate:
				err = updateDocument(ctx, tx, op.Collection, op.ID, op.Fields)
			case repository.WriteDelete:
				err = deleteDocument(ctx, tx, op.Collection, op.ID)
			default:
				err = fmt.Errorf("tipo de escritura desconocido: %d", op.Kind)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// RunTransaction bloquea con FOR UPDATE las filas leídas hasta el commit.
func (s *DocumentStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		return fn(ctx, &pgTx{ctx: ctx, tx: tx})
	})
}

func (s *DocumentStore) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.DatabaseError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.DatabaseError("commit transaction", err)
	}
	return nil
}

// Close cierra el pool.
func (s *DocumentStore) Close() error {
	s.pool.Close()
	return nil
}

type pgTx struct {
	ctx context.Context
	tx  pgx.Tx
}

func (t *pgTx) Get(ctx context.Context, collection, id string) (*repository.Document, error) {
	return getDocument(ctx, t.tx, collection, id, true)
}

func (t *pgTx) Set(collection, id string, fields map[string]any) error {
	return setDocument(t.ctx, t.tx, collection, id, fields)
}

func (t *pgTx) Update(collection, id string, fields map[string]any) error {
	return updateDocument(t.ctx, t.tx, collection, id, fields)
}

func (t *pgTx) Delete(collection, id string) error {
	return deleteDocument(t.ctx, t.tx, collection, id)
}

func getDocument(ctx context.Context, q querier, collection, id string, forUpdate bool) (*repository.Document, error) {
	sql := `SELECT data FROM documents WHERE collection = $1 AND id = $2`
	if forUpdate {
		sql += ` FOR UPDATE`
	}
	var raw []byte
	err := q.QueryRow(ctx, sql, collection, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.DatabaseError("get document", err)
	}
	fields, err := decodeData(raw)
	if err != nil {
		return nil, err
	}
	return &repository.Document{ID: id, Fields: fields}, nil
}

func setDocument(ctx context.Context, q querier, collection, id string, fields map[string]any) error {
	data, err := encodeData(fields)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO documents (collection, id, data, updated_at)
		VALUES ($1, $2, $3::jsonb, now())
		ON CONFLICT (collection, id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`
	if _, err := q.Exec(ctx, query, collection, id, data); err != nil {
		return domain.DatabaseError("set document", err)
	}
	return nil
}

func updateDocument(ctx context.Context, q querier, collection, id string, fields map[string]any) error {
	data, err := encodeData(fields)
	if err != nil {
		return err
	}
	query := `UPDATE documents SET data = data || $3::jsonb, updated_at = now() WHERE collection = $1 AND id = $2`
	tag, err := q.Exec(ctx, query, collection, id, data)
	if err != nil {
		return domain.DatabaseError("update document", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound.WithCause(fmt.Errorf("%s/%s no existe", collection, id))
	}
	return nil
}

func deleteDocument(ctx context.Context, q querier, collection, id string) error {
	if _, err := q.Exec(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id); err != nil {
		return domain.DatabaseError("delete document", err)
	}
	return nil
}

// buildQuery traduce los filtros a contención JSONB (data @> '{"campo": valor}'), que usa el índice GIN.
func buildQuery(q repository.Query) (string, []any, error) {
	var sb strings.Builder
	args := []any{q.Collection}
	sb.WriteString(`SELECT id, data FROM documents WHERE collection = $1`)

	for _, f := range q.Filters {
		switch f.Op {
		case repository.OpEqual:
			frag, err := encodeData(map[string]any{f.Field: f.Value})
			if err != nil {
				return "", nil, err
			}
			args = append(args, frag)
			fmt.Fprintf(&sb, ` AND data @> $%d::jsonb`, len(args))
		case repository.OpIn:
			values, ok := f.Value.([]any)
			if !ok || len(values) == 0 {
				return "", nil, domain.Invalidf("filtro in sobre %q requiere una lista no vacía", f.Field)
			}
			parts := make([]string, 0, len(values))
			for _, v := range values {
				frag, err := encodeData(map[string]any{f.Field: v})
				if err != nil {
					return "", nil, err
				}
				args = append(args, frag)
				parts = append(parts, fmt.Sprintf(`data @> $%d::jsonb`, len(args)))
			}
			sb.WriteString(` AND (` + strings.Join(parts, ` OR `) + `)`)
		default:
			return "", nil, domain.Invalidf("operador no soportado: %s", f.Op)
		}
	}
	sb.WriteString(` ORDER BY id`)
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&sb, ` LIMIT $%d`, len(args))
	}
	return sb.String(), args, nil
}

func encodeData(fields map[string]any) (string, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode jsonb: %w", err)
	}
	return string(b), nil
}

func decodeData(raw []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(raw) == 0 {
		return fields, nil
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode jsonb: %w", err)
	}
	return fields, nil
}
