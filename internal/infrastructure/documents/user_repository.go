package documents

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en la colección users; el id es el uid del proveedor de autenticación.
type UserRepo struct {
	acc accessor
}

// NewUserRepository construye el repositorio de usuarios.
func NewUserRepository(store repository.DocumentStore) *UserRepo {
	return &UserRepo{acc: storeAccessor{store: store}}
}

func (r *UserRepo) Get(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.acc.get(ctx, repository.CollectionUsers, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	return decodeUser(doc)
}

func decodeUser(doc *repository.Document) (*entity.User, error) {
	var u entity.User
	if err := fromDocument(doc, &u); err != nil {
		return nil, err
	}
	u.ID = doc.ID
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	docs, err := r.acc.query(ctx, repository.Query{
		Collection: repository.CollectionUsers,
		Filters:    []repository.Filter{repository.Eq("email", strings.ToLower(strings.TrimSpace(email)))},
		Limit:      1,
	})
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return decodeUser(&docs[0])
}

func (r *UserRepo) Save(ctx context.Context, u *entity.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	fields, err := toFields(u)
	if err != nil {
		return err
	}
	if err := r.acc.set(ctx, repository.CollectionUsers, u.ID, fields); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	if err := r.acc.remove(ctx, repository.CollectionUsers, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *UserRepo) List(ctx context.Context, role string) ([]*entity.User, error) {
	q := repository.Query{Collection: repository.CollectionUsers}
	if role != "" {
		q.Filters = []repository.Filter{repository.Eq("role", role)}
	}
	docs, err := r.acc.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]*entity.User, 0, len(docs))
	for i := range docs {
		u, err := decodeUser(&docs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}
