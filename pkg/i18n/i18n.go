// Package i18n mensajes amigables por código de error, en español (por defecto) e inglés.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resuelve mensajes por código y locale.
type Translator struct {
	bundle   *goi18n.Bundle
	matcher  language.Matcher
	fallback language.Tag
}

// New carga los catálogos embebidos. defaultLocale se usa cuando el cliente no pide
// un idioma soportado.
func New(defaultLocale string) (*Translator, error) {
	def, err := language.Parse(defaultLocale)
	if err != nil {
		def = language.Spanish
	}

	bundle := goi18n.NewBundle(def)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("i18n: leer locales: %w", err)
	}
	for _, e := range entries {
		data, err := localeFS.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("i18n: leer %s: %w", e.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, e.Name()); err != nil {
			return nil, fmt.Errorf("i18n: %s: %w", e.Name(), err)
		}
	}

	// el primer tag del matcher es el que se elige sin coincidencias
	tags := []language.Tag{def}
	for _, t := range bundle.LanguageTags() {
		if t != def {
			tags = append(tags, t)
		}
	}
	return &Translator{bundle: bundle, matcher: language.NewMatcher(tags), fallback: def}, nil
}

// Match elige el locale soportado para un encabezado Accept-Language.
func (t *Translator) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return t.fallback.String()
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return t.fallback.String()
	}
	tag, _, _ := t.matcher.Match(prefs...)
	base, _ := tag.Base()
	return base.String()
}

// Message traduce code; si no existe en el catálogo devuelve el mensaje de UNKNOWN.
func (t *Translator) Message(locale, code string, data map[string]any) string {
	l := goi18n.NewLocalizer(t.bundle, locale, t.fallback.String())
	msg, err := l.Localize(&goi18n.LocalizeConfig{MessageID: code, TemplateData: data})
	if err == nil {
		return msg
	}
	if code != "UNKNOWN" {
		return t.Message(locale, "UNKNOWN", nil)
	}
	return code
}
