// Package bootstrap abre los backends elegidos por configuración (almacén documental,
// Firebase, Redis, proveedor de identidad y sesiones). Lo comparten la API y los comandos.
package bootstrap

import (
	"context"
	"fmt"

	firebaseapp "firebase.google.com/go/v4"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Comedor-api/internal/application/ports"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/documents"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/firebase"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/localauth"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/memory"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/redis"
	"github.com/jhoicas/Comedor-api/pkg/config"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

// Infra backends abiertos. Close libera todo en orden inverso.
type Infra struct {
	Store    repository.DocumentStore
	Firebase *firebaseapp.App
	Redis    *goredis.Client

	cfg     *config.Config
	log     *logger.Logger
	closers []func() error
}

// Open abre el almacén documental y, si la configuración los pide, Firebase y Redis.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Infra, error) {
	in := &Infra{cfg: cfg, log: log}

	if needsFirebase(cfg) {
		app, err := firebase.NewApp(ctx, cfg.Firebase)
		if err != nil {
			return nil, err
		}
		in.Firebase = app
	}

	store, err := in.openStore(ctx)
	if err != nil {
		in.Close()
		return nil, err
	}
	in.Store = store
	in.closers = append(in.closers, store.Close)

	if cfg.Session.Driver == "redis" || cfg.Events.Provider == "redis" {
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			in.Close()
			return nil, err
		}
		in.Redis = client
		in.closers = append(in.closers, client.Close)
	}
	log.Info().
		Str("store", cfg.Store.Driver).
		Bool("firebase", in.Firebase != nil).
		Bool("redis", in.Redis != nil).
		Msg("backends abiertos")
	return in, nil
}

func needsFirebase(cfg *config.Config) bool {
	return cfg.Store.Driver == "firestore" || cfg.Auth.Provider == "firebase" || cfg.Notify.Provider == "firebase"
}

func (in *Infra) openStore(ctx context.Context) (repository.DocumentStore, error) {
	switch in.cfg.Store.Driver {
	case "memory":
		in.log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		return memory.NewDocumentStore(), nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, in.cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return postgres.NewDocumentStore(pool), nil
	case "mongo":
		store, err := mongodb.Connect(ctx, in.cfg.Mongo.URI, in.cfg.Mongo.Database)
		if err != nil {
			return nil, fmt.Errorf("conexión a MongoDB: %w", err)
		}
		return store, nil
	case "firestore":
		store, err := firebase.NewDocumentStore(ctx, in.Firebase)
		if err != nil {
			return nil, fmt.Errorf("conexión a Firestore: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("STORE_DRIVER desconocido %q", in.cfg.Store.Driver)
	}
}

// AuthProvider proveedor de identidad: local (bcrypt sobre la colección credentials) o Firebase Auth.
func (in *Infra) AuthProvider(ctx context.Context) (ports.AuthProvider, error) {
	switch in.cfg.Auth.Provider {
	case "firebase":
		p, err := firebase.NewAuthProvider(ctx, in.Firebase, in.cfg.Firebase.APIKey)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return localauth.New(documents.NewCredentialRepository(in.Store), bcrypt.DefaultCost), nil
	}
}

// SessionStore sesiones del servidor en memoria o en Redis.
func (in *Infra) SessionStore() repository.SessionStore {
	if in.cfg.Session.Driver == "redis" && in.Redis != nil {
		return redis.NewSessionStore(in.Redis, nil)
	}
	return memory.NewSessionStore(nil)
}

// Notifier avisos FCM; nil si NOTIFY_PROVIDER no es firebase.
func (in *Infra) Notifier(ctx context.Context) (ports.Notifier, error) {
	if in.cfg.Notify.Provider != "firebase" {
		return nil, nil
	}
	n, err := firebase.NewNotifier(ctx, in.Firebase, in.cfg.Notify.Topic)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Close cierra los backends; los errores solo se registran.
func (in *Infra) Close() {
	for i := len(in.closers) - 1; i >= 0; i-- {
		if err := in.closers[i](); err != nil {
			in.log.Warn().Err(err).Msg("cerrar backend")
		}
	}
	in.closers = nil
}
