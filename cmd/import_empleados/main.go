// import_empleados carga la nómina de una sucursal desde un CSV o XLSX.
//
// Uso: go run ./cmd/import_empleados -branch centro -file nomina.xlsx
// Reemplaza la nómina de la sucursal igual que POST /api/employees/import.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jhoicas/Comedor-api/internal/application/usecase"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/bootstrap"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/documents"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/Comedor-api/pkg/config"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

func main() {
	branchID := flag.String("branch", "", "id de la sucursal destino")
	file := flag.String("file", "", "ruta del archivo .csv o .xlsx")
	actor := flag.String("actor", "import_empleados", "usuario registrado como autor")
	flag.Parse()

	if *branchID == "" || *file == "" {
		fmt.Fprintln(os.Stderr, "Uso: import_empleados -branch <sucursal> -file <nomina.csv|nomina.xlsx>")
		os.Exit(2)
	}
	data, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer archivo: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	infra, err := bootstrap.Open(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Backends: %v\n", err)
		os.Exit(1)
	}
	defer infra.Close()

	uc := usecase.NewEmployeeUseCase(
		documents.NewEmployeeRepository(infra.Store),
		documents.NewBranchRepository(infra.Store),
		documents.NewTxRunner(infra.Store),
		spreadsheet.RosterParser{},
		spreadsheet.CSVEncoder{},
		usecase.SystemClock(time.UTC),
		log.Named("import"),
	)
	res, err := uc.Import(ctx, *actor, "", *branchID, filepath.Base(*file), data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Importar: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sucursal %s: %d importados, %d activos, %d omitidos\n", res.BranchID, res.Imported, res.Active, res.Skipped)
	for _, e := range res.Errors {
		fmt.Printf("  fila %d: %s\n", e.Row, e.Message)
	}
}
