//go:build devtools

package main

import (
	"github.com/jhoicas/Comedor-api/internal/domain/confirmation"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

// newEvaluator build de desarrollo: los menús sin ventana se tratan como abiertos
// durante [now-3d, now+3d]. Compilar con -tags devtools.
func newEvaluator(log *logger.Logger) confirmation.Evaluator {
	log.Warn().Dur("span", confirmation.OverrideSpan).Msg("devtools: ventana de confirmación sintética activa")
	return confirmation.OverrideEvaluator{}
}
