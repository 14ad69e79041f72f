package repository

import "context"

// Colecciones del almacén documental.
const (
	CollectionUsers         = "users"
	CollectionEmployees     = "employees"
	CollectionBranches      = "branches"
	CollectionConfirmations = "confirmations"
	CollectionWeeklyMenus   = "weeklyMenus"
	CollectionLegacyMenus   = "menus"
	CollectionSettings      = "settings"
	CollectionCredentials   = "credentials"
)

// Document documento leído del almacén: id más campos de primer nivel.
type Document struct {
	ID     string
	Fields map[string]any
}

// Operator operador de filtro soportado por todos los backends.
type Operator string

const (
	OpEqual Operator = "=="
	OpIn    Operator = "in"
)

// Filter condición sobre un campo de primer nivel.
type Filter struct {
	Field string
	Op    Operator
	Value any
}

// Eq filtro de igualdad.
func Eq(field string, value any) Filter {
	return Filter{Field: field, Op: OpEqual, Value: value}
}

// In filtro de pertenencia; values no debe estar vacío.
func In(field string, values ...any) Filter {
	return Filter{Field: field, Op: OpIn, Value: values}
}

// Query consulta sobre una colección. Los resultados vienen ordenados por id.
// Limit <= 0 significa sin límite.
type Query struct {
	Collection string
	Filters    []Filter
	Limit      int
}

// WriteKind tipo de escritura dentro de un lote.
type WriteKind int

const (
	WriteSet WriteKind = iota
	WriteUpdate
	WriteDelete
)

// WriteOp escritura de un lote atómico.
type WriteOp struct {
	Kind       WriteKind
	Collection string
	ID         string
	Fields     map[string]any
}

// SetOp sobrescribe el documento completo.
func SetOp(collection, id string, fields map[string]any) WriteOp {
	return WriteOp{Kind: WriteSet, Collection: collection, ID: id, Fields: fields}
}

// UpdateOp mezcla campos de primer nivel; el documento debe existir.
func UpdateOp(collection, id string, fields map[string]any) WriteOp {
	return WriteOp{Kind: WriteUpdate, Collection: collection, ID: id, Fields: fields}
}

// DeleteOp borra el documento; no falla si no existe.
func DeleteOp(collection, id string) WriteOp {
	return WriteOp{Kind: WriteDelete, Collection: collection, ID: id}
}

// Tx transacción del almacén. Todas las lecturas deben hacerse antes de la primera escritura
// (restricción de Firestore que respetan todos los backends).
type Tx interface {
	Get(ctx context.Context, collection, id string) (*Document, error)
	Set(collection, id string, fields map[string]any) error
	Update(collection, id string, fields map[string]any) error
	Delete(collection, id string) error
}

// DocumentStore acceso a documentos por colección e id (memory, postgres, mongo, firestore).
//
// Get devuelve (nil, nil) si el documento no existe. Update devuelve domain.ErrNotFound si
// no existe. Batch aplica todas las escrituras o ninguna.
type DocumentStore interface {
	Get(ctx context.Context, collection, id string) (*Document, error)
	Set(ctx context.Context, collection, id string, fields map[string]any) error
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	Query(ctx context.Context, q Query) ([]Document, error)
	Batch(ctx context.Context, ops []WriteOp) error
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Close() error
}
