package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jhoicas/Comedor-api/internal/application/ports"
)

// CSVEncoder exporta tablas como CSV UTF-8 con BOM para que Excel respete los acentos.
// Los campos con comas, comillas o saltos de línea se entrecomillan y las comillas se duplican.
type CSVEncoder struct{}

var _ ports.TableEncoder = CSVEncoder{}

func (CSVEncoder) Encode(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\xef\xbb\xbf")
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return buf.Bytes(), nil
}
