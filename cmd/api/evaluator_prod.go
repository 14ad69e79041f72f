//go:build !devtools

package main

import (
	"github.com/jhoicas/Comedor-api/internal/domain/confirmation"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

// newEvaluator ventana estricta: sin ventana configurada no se confirma.
func newEvaluator(*logger.Logger) confirmation.Evaluator {
	return confirmation.StrictEvaluator{}
}
