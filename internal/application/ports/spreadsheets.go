package ports

import "github.com/jhoicas/Comedor-api/internal/application/dto"

// RosterRow fila válida de una nómina importada. Row es el número de fila en el archivo (1 = encabezado).
type RosterRow struct {
	Row                 int
	Name                string
	Position            string
	DietaryRestrictions string
	Active              bool
}

// RosterParser lee nóminas en xlsx o csv con columnas Nombre, Puesto,
// Restricciones Alimentarias y Activo. Las filas inválidas se informan sin abortar.
type RosterParser interface {
	ParseRoster(filename string, data []byte) ([]RosterRow, []dto.ImportRowError, error)
}

// TableEncoder serializa una tabla (CSV).
type TableEncoder interface {
	Encode(header []string, rows [][]string) ([]byte, error)
}
