// seed_admin crea el primer administrador (y opcionalmente su sucursal) en el almacén configurado.
//
// Uso: go run ./cmd/seed_admin -email admin@avika.mx -password secreto -name "Administración"
// Lee la misma configuración que la API (variables de entorno / .env).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Comedor-api/internal/application/dto"
	"github.com/jhoicas/Comedor-api/internal/application/usecase"
	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/bootstrap"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/documents"
	"github.com/jhoicas/Comedor-api/pkg/config"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

func main() {
	email := flag.String("email", "", "email del administrador")
	password := flag.String("password", "", "contraseña inicial (mínimo 6 caracteres)")
	name := flag.String("name", "Administrador", "nombre visible")
	branch := flag.String("branch", "", "nombre de una sucursal a crear si no existe")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "Uso: seed_admin -email <email> -password <contraseña> [-name <nombre>] [-branch <sucursal>]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	infra, err := bootstrap.Open(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Backends: %v\n", err)
		os.Exit(1)
	}
	defer infra.Close()

	provider, err := infra.AuthProvider(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Proveedor de identidad: %v\n", err)
		os.Exit(1)
	}

	clock := usecase.SystemClock(time.UTC)
	users := documents.NewUserRepository(infra.Store)
	branches := documents.NewBranchRepository(infra.Store)

	if *branch != "" {
		branchUC := usecase.NewBranchUseCase(branches, users, clock, log)
		b, err := branchUC.Create(ctx, dto.CreateBranchRequest{Name: *branch})
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			fmt.Printf("La sucursal %q ya existe\n", *branch)
		case err != nil:
			fmt.Fprintf(os.Stderr, "Crear sucursal: %v\n", err)
			os.Exit(1)
		default:
			fmt.Printf("Sucursal creada: %s (%s)\n", b.Name, b.ID)
		}
	}

	userUC := usecase.NewUserUseCase(users, branches, provider, clock, log)
	u, err := userUC.Create(ctx, "", dto.CreateUserRequest{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Role:     entity.RoleAdmin,
	})
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		fmt.Printf("El usuario %s ya existe; no se modificó\n", *email)
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear administrador: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Administrador creado: %s <%s> id=%s\n", u.Name, u.Email, u.ID)
}
