package ports

import (
	"context"

	"github.com/jhoicas/Comedor-api/internal/application/dto"
)

// WeeklyReportRenderer convierte el reporte semanal en un archivo (PDF o XLSX).
type WeeklyReportRenderer interface {
	ContentType() string
	Extension() string
	Render(ctx context.Context, r *dto.WeeklyReport) ([]byte, error)
}
