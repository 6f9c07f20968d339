// Package i18n localizes the human-readable messages returned by the API.
// Spanish is the canonical locale; English is served when the client's
// Accept-Language prefers it. Matching uses golang.org/x/text so quality
// values and region subtags ("es-PE", "en-GB;q=0.8") behave correctly.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// supported lists the serving locales; the first entry is the fallback.
var supported = []language.Tag{
	language.Spanish,
	language.English,
}

var matcher = language.NewMatcher(supported)

// Match resolves an Accept-Language header to one of the supported
// locales. An empty or malformed header yields Spanish.
func Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return supported[0]
	}
	_, idx, _ := matcher.Match(tags...)
	return supported[idx]
}

// entry holds the per-locale texts for one message key. Texts may contain
// a single %s verb filled with a caller-supplied parameter.
type entry struct {
	es string
	en string
}

// catalog keys follow "<field>.<rule>" for validation messages plus a few
// standalone keys for response envelopes.
var catalog = map[string]entry{
	"tipo_documento.required": {
		es: "El Tipo de Documento es obligatorio.",
		en: "The document type field is required.",
	},
	"tipo_documento.in": {
		es: "El Tipo de Documento debe ser uno de los siguientes valores: %s.",
		en: "The document type must be one of the following values: %s.",
	},
	"numero_documento.required": {
		es: "El Número de Documento es obligatorio.",
		en: "The document number field is required.",
	},
	"numero_documento.unique": {
		es: "El Número de Documento ya está registrado.",
		en: "The document number is already registered.",
	},
	"razon_social.required": {
		es: "La Razón Social es obligatoria.",
		en: "The business name field is required.",
	},
	"razon_social.max": {
		es: "La Razón Social no debe superar los %s caracteres.",
		en: "The business name may not be greater than %s characters.",
	},
	"direccion.max": {
		es: "La Dirección no debe superar los %s caracteres.",
		en: "The address may not be greater than %s characters.",
	},
	"telefono.max": {
		es: "El Teléfono no debe superar los %s caracteres.",
		en: "The phone number may not be greater than %s characters.",
	},
	"email.required": {
		es: "El Correo Electrónico es obligatorio.",
		en: "The email field is required.",
	},
	"email.email": {
		es: "El Correo Electrónico debe ser una dirección de correo electrónico válida.",
		en: "The email must be a valid email address.",
	},
	"email.unique": {
		es: "El Correo Electrónico ya está registrado.",
		en: "The email is already registered.",
	},
	"cliente.not_found": {
		es: "Cliente no encontrado",
		en: "Cliente no encontrado", // kept verbatim: clients match on this exact message
	},
	"cliente.duplicate": {
		es: "El cliente entra en conflicto con un registro existente.",
		en: "The cliente conflicts with an existing record.",
	},
	"validation.failed": {
		es: "Los datos proporcionados no son válidos.",
		en: "The given data was invalid.",
	},
}

// Message renders the catalog entry for key in the given locale, filling
// the %s verb with param when present. Unknown keys return the key itself
// so a missing translation stays visible instead of blank.
func Message(tag language.Tag, key, param string) string {
	e, ok := catalog[key]
	if !ok {
		return key
	}
	text := e.es
	if tag == language.English {
		text = e.en
	}
	if strings.Contains(text, "%s") {
		return fmt.Sprintf(text, param)
	}
	return text
}
