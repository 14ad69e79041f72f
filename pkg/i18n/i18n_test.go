package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comedor-api/pkg/i18n"
)

func TestTranslator_EspanolPorDefecto(t *testing.T) {
	tr, err := i18n.New("es")
	require.NoError(t, err)

	assert.Equal(t, "es", tr.Match(""))
	assert.Equal(t, "es", tr.Match("fr-FR,fr;q=0.9"))
	assert.Equal(t, "Correo o contraseña incorrectos.", tr.Message("es", "INVALID_CREDENTIALS", nil))
}

func TestTranslator_Ingles(t *testing.T) {
	tr, err := i18n.New("es")
	require.NoError(t, err)

	loc := tr.Match("en-US,en;q=0.9,es;q=0.5")
	assert.Equal(t, "en", loc)
	assert.Equal(t, "Wrong email or password.", tr.Message(loc, "INVALID_CREDENTIALS", nil))
}

func TestTranslator_Plantilla(t *testing.T) {
	tr, err := i18n.New("es")
	require.NoError(t, err)

	msg := tr.Message("es", "MENU_INCOMPLETE", map[string]any{"Days": "Martes, Jueves"})
	assert.Equal(t, "El menú está incompleto: faltan platillos en Martes, Jueves.", msg)
}

func TestTranslator_CodigoDesconocido(t *testing.T) {
	tr, err := i18n.New("es")
	require.NoError(t, err)
	assert.Equal(t, "Ocurrió un error inesperado.", tr.Message("es", "NO_EXISTE", nil))
}
