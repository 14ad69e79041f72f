// Package mongodb implementa el almacén documental sobre MongoDB: una colección de Mongo por colección
// del dominio y el id del documento en _id.
package mongodb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)

// DocumentStore almacén documental sobre una base de MongoDB.
// Batch y RunTransaction usan transacciones de sesión (requieren replica set).
type DocumentStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect abre el cliente y verifica la conexión contra el primario.
func Connect(ctx context.Context, uri, database string) (*DocumentStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &DocumentStore{client: client, db: client.Database(database)}, nil
}

func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*repository.Document, error) {
	raw, err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.DatabaseError("find document", err)
	}
	return decodeRaw(raw)
}

func (s *DocumentStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	_, err := s.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, withID(id, fields), options.Replace().SetUpsert(true))
	if err != nil {
		return domain.DatabaseError("replace document", err)
	}
	return nil
}

func (s *DocumentStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": withoutID(fields)})
	if err != nil {
		return domain.DatabaseError("update document", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound.WithCause(fmt.Errorf("%s/%s no existe", collection, id))
	}
	return nil
}

func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return domain.DatabaseError("delete document", err)
	}
	return nil
}

func (s *DocumentStore) Query(ctx context.Context, q repository.Query) ([]repository.Document, error) {
	filter, err := buildFilter(q.Filters)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	cursor, err := s.db.Collection(q.Collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, domain.DatabaseError("find documents", err)
	}
	defer cursor.Close(ctx)

	out := []repository.Document{}
	for cursor.Next(ctx) {
		doc, err := decodeRaw(cursor.Current)
		if err != nil {
			return nil, err
		}
		out = append(out, *doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, domain.DatabaseError("iterate documents", err)
	}
	return out, nil
}

// Batch aplica las escrituras dentro de una transacción de sesión.
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
	sess, err := s.client.StartSession()
	if err != nil {
		return domain.DatabaseError("start session", err)
	}
	defer sess.EndSession(ctx)

	var fnErr error
	_, err = sess.WithTransaction(ctx, func(sessCtx context.Context) (any, error) {
		fnErr = fn(sessCtx, &mongoTx{ctx: sessCtx, store: s})
		return nil, fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return domain.DatabaseError("transaction", err)
	}
	return nil
}

func (s *DocumentStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// mongoTx ejecuta cada operación con el contexto de la sesión, así queda dentro de la transacción.
type mongoTx struct {
	ctx   context.Context
	store *DocumentStore
}

func (t *mongoTx) Get(ctx context.Context, collection, id string) (*repository.Document, error) {
	return t.store.Get(t.ctx, collection, id)
}

func (t *mongoTx) Set(collection, id string, fields map[string]any) error {
	return t.store.Set(t.ctx, collection, id, fields)
}

func (t *mongoTx) Update(collection, id string, fields map[string]any) error {
	return t.store.Update(t.ctx, collection, id, fields)
}

func (t *mongoTx) Delete(collection, id string) error {
	return t.store.Delete(t.ctx, collection, id)
}

func buildFilter(filters []repository.Filter) (bson.D, error) {
	out := bson.D{}
	for _, f := range filters {
		switch f.Op {
		case repository.OpEqual:
			out = append(out, bson.E{Key: f.Field, Value: f.Value})
		case repository.OpIn:
			values, ok := f.Value.([]any)
			if !ok || len(values) == 0 {
				return nil, domain.Invalidf("filtro in sobre %q requiere una lista no vacía", f.Field)
			}
			out = append(out, bson.E{Key: f.Field, Value: bson.M{"$in": bson.A(values)}})
		default:
			return nil, domain.Invalidf("operador no soportado: %s", f.Op)
		}
	}
	return out, nil
}

// decodeRaw pasa el documento BSON a JSON extendido relajado y de ahí a tipos Go simples.
func decodeRaw(raw bson.Raw) (*repository.Document, error) {
	b, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return nil, fmt.Errorf("decode bson: %w", err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, fmt.Errorf("decode bson: %w", err)
	}
	id, _ := fields["_id"].(string)
	delete(fields, "_id")
	return &repository.Document{ID: id, Fields: fields}, nil
}

func withID(id string, fields map[string]any) bson.M {
	doc := bson.M{}
	for k, v := range fields {
		doc[k] = v
	}
	doc["_id"] = id
	return doc
}

func withoutID(fields map[string]any) bson.M {
	doc := bson.M{}
	for k, v := range fields {
		if k != "_id" {
			doc[k] = v
		}
	}
	return doc
}
